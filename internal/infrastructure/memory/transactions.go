package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/Sparepart-api/internal/domain"
	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
	"github.com/jhoicas/Sparepart-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación en memoria de TransactionRepository.
type TransactionRepo struct {
	s  *Store
	tx bool
}

func (r *TransactionRepo) lock() func()  { return r.s.lockUnless(r.tx) }
func (r *TransactionRepo) rlock() func() { return r.s.rlockUnless(r.tx) }

func (r *TransactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	defer r.lock()()
	if _, ok := r.s.parts[t.SparePartID]; !ok {
		return domain.ErrConflict
	}
	r.s.trxs[t.ID] = *t
	r.s.trxOrder = append(r.s.trxOrder, t.ID)
	return nil
}

func (r *TransactionRepo) GetByID(_ context.Context, id string) (*entity.TransactionWithRelations, error) {
	defer r.rlock()()
	t, ok := r.s.trxs[id]
	if !ok {
		return nil, nil
	}
	return r.s.trxWithRelations(t), nil
}

func (r *TransactionRepo) Update(_ context.Context, t *entity.Transaction) error {
	defer r.lock()()
	if _, ok := r.s.trxs[t.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.trxs[t.ID] = *t
	return nil
}

func (r *TransactionRepo) Delete(_ context.Context, id string) error {
	defer r.lock()()
	if _, ok := r.s.trxs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.trxs, id)
	for i, tid := range r.s.trxOrder {
		if tid == id {
			r.s.trxOrder = append(r.s.trxOrder[:i], r.s.trxOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (r *TransactionRepo) List(_ context.Context, f repository.TransactionFilter) ([]*entity.TransactionWithRelations, error) {
	defer r.rlock()()
	rows := r.s.filterTrx(f)
	sortTrx(rows, f.SortField, f.SortAsc)

	if f.Offset > 0 {
		if f.Offset >= len(rows) {
			rows = nil
		} else {
			rows = rows[f.Offset:]
		}
	}
	if f.Limit > 0 && len(rows) > f.Limit {
		rows = rows[:f.Limit]
	}
	out := make([]*entity.TransactionWithRelations, 0, len(rows))
	for _, t := range rows {
		out = append(out, r.s.trxWithRelations(t))
	}
	return out, nil
}

func (r *TransactionRepo) Count(_ context.Context, f repository.TransactionFilter) (int, error) {
	defer r.rlock()()
	return len(r.s.filterTrx(f)), nil
}

func (s *Store) filterTrx(f repository.TransactionFilter) []entity.Transaction {
	var allowed map[string]bool
	if f.SparePartIDs != nil {
		allowed = make(map[string]bool, len(f.SparePartIDs))
		for _, id := range f.SparePartIDs {
			allowed[id] = true
		}
	}
	out := []entity.Transaction{}
	for _, id := range s.trxOrder {
		t := s.trxs[id]
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		if f.SparePartID != "" && t.SparePartID != f.SparePartID {
			continue
		}
		if allowed != nil && !allowed[t.SparePartID] {
			continue
		}
		if f.From != nil && t.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && t.Date.After(*f.To) {
			continue
		}
		if f.Search != "" && !containsFold(t.Note, f.Search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func sortTrx(rows []entity.Transaction, field string, asc bool) {
	less := func(a, b entity.Transaction) bool {
		switch field {
		case "id_transaksi":
			return a.ID < b.ID
		case "jumlah":
			return a.Quantity < b.Quantity
		case "harga_total":
			return a.TotalPrice.LessThan(b.TotalPrice)
		case "tipe":
			return a.Type < b.Type
		case "keterangan":
			return strings.ToLower(a.Note) < strings.ToLower(b.Note)
		case "id_sparepart":
			return a.SparePartID < b.SparePartID
		default:
			return a.Date.Before(b.Date)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if asc {
			return less(rows[i], rows[j])
		}
		return less(rows[j], rows[i])
	})
}

func (s *Store) trxWithRelations(t entity.Transaction) *entity.TransactionWithRelations {
	out := &entity.TransactionWithRelations{Transaction: t}
	if p, ok := s.parts[t.SparePartID]; ok {
		out.SparePart = s.withRelations(p)
	}
	return out
}
