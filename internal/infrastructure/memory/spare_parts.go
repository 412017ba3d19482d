package memory

import (
	"context"

	"github.com/jhoicas/Sparepart-api/internal/domain"
	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
	"github.com/jhoicas/Sparepart-api/internal/domain/repository"
)

var _ repository.SparePartRepository = (*SparePartRepo)(nil)

// SparePartRepo implementación en memoria de SparePartRepository.
type SparePartRepo struct {
	s  *Store
	tx bool // dentro de TxRunner.Run: mu ya está tomado
}

func (r *SparePartRepo) lock() func()  { return r.s.lockUnless(r.tx) }
func (r *SparePartRepo) rlock() func() { return r.s.rlockUnless(r.tx) }

func (r *SparePartRepo) Create(_ context.Context, p *entity.SparePart) error {
	defer r.lock()()
	for _, other := range r.s.parts {
		if other.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.parts[p.ID] = *p
	return nil
}

func (r *SparePartRepo) GetByID(_ context.Context, id string) (*entity.SparePart, error) {
	defer r.rlock()()
	p, ok := r.s.parts[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// GetForUpdate equivale a GetByID; dentro de TxRunner el store entero queda bloqueado.
func (r *SparePartRepo) GetForUpdate(ctx context.Context, id string) (*entity.SparePart, error) {
	return r.GetByID(ctx, id)
}

func (r *SparePartRepo) Update(_ context.Context, p *entity.SparePart) error {
	defer r.lock()()
	if _, ok := r.s.parts[p.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, other := range r.s.parts {
		if id != p.ID && other.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.parts[p.ID] = *p
	return nil
}

func (r *SparePartRepo) UpdateStock(_ context.Context, id string, onHand, sold, remaining int64) error {
	defer r.lock()()
	p, ok := r.s.parts[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.OnHand, p.Sold, p.Remaining = onHand, sold, remaining
	r.s.parts[id] = p
	return nil
}

func (r *SparePartRepo) Delete(_ context.Context, id string) error {
	defer r.lock()()
	if _, ok := r.s.parts[id]; !ok {
		return domain.ErrNotFound
	}
	for _, t := range r.s.trxs {
		if t.SparePartID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.parts, id)
	return nil
}

func (r *SparePartRepo) List(ctx context.Context) ([]*entity.SparePart, error) {
	return r.Search(ctx, repository.SparePartFilter{})
}

func (r *SparePartRepo) ListWithRelations(_ context.Context) ([]*entity.SparePartWithRelations, error) {
	defer r.rlock()()
	out := make([]*entity.SparePartWithRelations, 0, len(r.s.parts))
	for _, p := range r.s.parts {
		out = append(out, r.s.withRelations(p))
	}
	sortByName(out, func(p *entity.SparePartWithRelations) string { return p.Name })
	return out, nil
}

func (r *SparePartRepo) Search(_ context.Context, f repository.SparePartFilter) ([]*entity.SparePart, error) {
	defer r.rlock()()
	out := []*entity.SparePart{}
	for _, p := range r.s.parts {
		if f.Name != "" && !containsFold(p.Name, f.Name) {
			continue
		}
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		if f.BrandID != "" && p.BrandID != f.BrandID {
			continue
		}
		if f.CreatedFrom != nil && p.CreatedAt.Before(*f.CreatedFrom) {
			continue
		}
		if f.CreatedTo != nil && p.CreatedAt.After(*f.CreatedTo) {
			continue
		}
		if f.MaxRemaining != nil && p.Remaining > *f.MaxRemaining {
			continue
		}
		out = append(out, &p)
	}
	sortByName(out, func(p *entity.SparePart) string { return p.Name })
	return out, nil
}

func (r *SparePartRepo) IDsByCategory(_ context.Context, categoryID string) ([]string, error) {
	defer r.rlock()()
	ids := []string{}
	for id, p := range r.s.parts {
		if p.CategoryID == categoryID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// withRelations une marca y categoría; el caller debe tener mu tomado.
func (s *Store) withRelations(p entity.SparePart) *entity.SparePartWithRelations {
	out := &entity.SparePartWithRelations{SparePart: p}
	if b, ok := s.brands[p.BrandID]; ok {
		out.Brand = &b
	}
	if c, ok := s.categories[p.CategoryID]; ok {
		out.Category = &c
	}
	return out
}
