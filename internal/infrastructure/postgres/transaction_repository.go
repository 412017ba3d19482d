package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
	"github.com/jhoicas/Sparepart-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación de TransactionRepository sobre transaksi.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	sqlStr, args, err := psql.Insert("transaksi").
		Columns("id_transaksi", "id_sparepart", "tipe", "jumlah", "harga_total", "keterangan", "tanggal").
		Values(t.ID, t.SparePartID, t.Type, t.Quantity, t.TotalPrice, t.Note, t.Date).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, sqlStr, args...); err != nil {
		return wrapErr("insert transaksi", err)
	}
	return nil
}

func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.TransactionWithRelations, error) {
	sqlStr, args, err := transactionSelect().Where(sq.Eq{"t.id_transaksi": id}).ToSql()
	if err != nil {
		return nil, err
	}
	t, err := scanTransaction(r.q.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaksi: %w", err)
	}
	return t, nil
}

func (r *TransactionRepo) Update(ctx context.Context, t *entity.Transaction) error {
	return execAffected(ctx, r.q, "update transaksi", psql.Update("transaksi").
		SetMap(map[string]any{
			"id_sparepart": t.SparePartID,
			"tipe":         t.Type,
			"jumlah":       t.Quantity,
			"harga_total":  t.TotalPrice,
			"keterangan":   t.Note,
			"tanggal":      t.Date,
		}).
		Where(sq.Eq{"id_transaksi": t.ID}))
}

func (r *TransactionRepo) Delete(ctx context.Context, id string) error {
	return execAffected(ctx, r.q, "delete transaksi", psql.Delete("transaksi").Where(sq.Eq{"id_transaksi": id}))
}

func (r *TransactionRepo) List(ctx context.Context, f repository.TransactionFilter) ([]*entity.TransactionWithRelations, error) {
	order := "DESC"
	if f.SortAsc {
		order = "ASC"
	}
	field := f.SortField
	if !repository.TransactionSortFields[field] {
		field = "tanggal"
	}
	b := applyTransactionFilter(transactionSelect(), f).
		OrderBy(fmt.Sprintf("t.%s %s", field, order), "t.id_transaksi "+order)
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, wrapErr("list transaksi", err)
	}
	defer rows.Close()

	out := []*entity.TransactionWithRelations{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaksi: %w", err)
		}
		out = append(out, t)
	}
	if err := rowsErr("list transaksi", rows); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TransactionRepo) Count(ctx context.Context, f repository.TransactionFilter) (int, error) {
	sqlStr, args, err := applyTransactionFilter(psql.Select("COUNT(*)").From("transaksi t"), f).ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := r.q.QueryRow(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, wrapErr("count transaksi", err)
	}
	return n, nil
}

func applyTransactionFilter(b sq.SelectBuilder, f repository.TransactionFilter) sq.SelectBuilder {
	if f.Type != "" {
		b = b.Where(sq.Eq{"t.tipe": f.Type})
	}
	if f.SparePartID != "" {
		b = b.Where(sq.Eq{"t.id_sparepart": f.SparePartID})
	}
	if f.SparePartIDs != nil {
		if len(f.SparePartIDs) == 0 {
			b = b.Where(sq.Expr("FALSE"))
		} else {
			b = b.Where(sq.Eq{"t.id_sparepart": f.SparePartIDs})
		}
	}
	if f.From != nil {
		b = b.Where(sq.GtOrEq{"t.tanggal": *f.From})
	}
	if f.To != nil {
		b = b.Where(sq.LtOrEq{"t.tanggal": *f.To})
	}
	if f.Search != "" {
		b = b.Where(sq.ILike{"t.keterangan": "%" + f.Search + "%"})
	}
	return b
}

// transactionSelect transaksi con su repuesto (FK NOT NULL) y marca/categoría.
func transactionSelect() sq.SelectBuilder {
	cols := append([]string{
		"t.id_transaksi", "t.id_sparepart", "t.tipe", "t.jumlah", "t.harga_total", "t.keterangan", "t.tanggal",
	}, sparePartColumns...)
	cols = append(cols, "m.id_merek", "m.nama_merek", "k.id_kategori_barang", "k.nama_kategori")
	return psql.Select(cols...).
		From("transaksi t").
		Join("sparepart sp ON sp.id_sparepart = t.id_sparepart").
		LeftJoin("merek m ON m.id_merek = sp.id_merek").
		LeftJoin("kategori_barang k ON k.id_kategori_barang = sp.id_kategori_barang")
}

func scanTransaction(row pgx.Row) (*entity.TransactionWithRelations, error) {
	var (
		t                  entity.TransactionWithRelations
		part               entity.SparePartWithRelations
		brandID, brandName *string
		catID, catName     *string
	)
	dest := []any{&t.ID, &t.SparePartID, &t.Type, &t.Quantity, &t.TotalPrice, &t.Note, &t.Date}
	dest = append(dest, sparePartDest(&part.SparePart)...)
	dest = append(dest, &brandID, &brandName, &catID, &catName)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if brandID != nil {
		part.Brand = &entity.Brand{ID: *brandID, Name: *brandName}
	}
	if catID != nil {
		part.Category = &entity.Category{ID: *catID, Name: *catName}
	}
	t.SparePart = &part
	return &t, nil
}
