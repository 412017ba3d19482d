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

var _ repository.SparePartRepository = (*SparePartRepo)(nil)

var sparePartColumns = []string{
	"sp.id_sparepart", "sp.kode_barang", "sp.nama_barang", "sp.id_merek", "sp.id_kategori_barang", "sp.sumber",
	"sp.jumlah", "sp.terjual", "sp.sisa", "sp.harga_modal", "sp.harga_jual", "sp.created_at",
}

// SparePartRepo implementación de SparePartRepository (usable con pool o tx).
type SparePartRepo struct {
	q Querier
}

// NewSparePartRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSparePartRepository(q Querier) *SparePartRepo {
	return &SparePartRepo{q: q}
}

func (r *SparePartRepo) Create(ctx context.Context, p *entity.SparePart) error {
	sqlStr, args, err := psql.Insert("sparepart").
		Columns("id_sparepart", "kode_barang", "nama_barang", "id_merek", "id_kategori_barang", "sumber",
			"jumlah", "terjual", "sisa", "harga_modal", "harga_jual", "created_at").
		Values(p.ID, p.Code, p.Name, p.BrandID, p.CategoryID, p.Source,
			p.OnHand, p.Sold, p.Remaining, p.CostPrice, p.SalePrice, p.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, sqlStr, args...); err != nil {
		return wrapErr("insert sparepart", err)
	}
	return nil
}

func (r *SparePartRepo) GetByID(ctx context.Context, id string) (*entity.SparePart, error) {
	return r.get(ctx, sparePartSelect().Where(sq.Eq{"sp.id_sparepart": id}))
}

// GetForUpdate SELECT ... FOR UPDATE; solo tiene efecto dentro de una tx.
func (r *SparePartRepo) GetForUpdate(ctx context.Context, id string) (*entity.SparePart, error) {
	return r.get(ctx, sparePartSelect().Where(sq.Eq{"sp.id_sparepart": id}).Suffix("FOR UPDATE"))
}

func (r *SparePartRepo) Update(ctx context.Context, p *entity.SparePart) error {
	return execAffected(ctx, r.q, "update sparepart", psql.Update("sparepart").
		SetMap(map[string]any{
			"kode_barang":        p.Code,
			"nama_barang":        p.Name,
			"id_merek":           p.BrandID,
			"id_kategori_barang": p.CategoryID,
			"sumber":             p.Source,
			"jumlah":             p.OnHand,
			"terjual":            p.Sold,
			"sisa":               p.Remaining,
			"harga_modal":        p.CostPrice,
			"harga_jual":         p.SalePrice,
		}).
		Where(sq.Eq{"id_sparepart": p.ID}))
}

func (r *SparePartRepo) UpdateStock(ctx context.Context, id string, onHand, sold, remaining int64) error {
	return execAffected(ctx, r.q, "update stok sparepart", psql.Update("sparepart").
		Set("jumlah", onHand).
		Set("terjual", sold).
		Set("sisa", remaining).
		Where(sq.Eq{"id_sparepart": id}))
}

// Delete falla con ErrConflict si hay transacciones del repuesto.
func (r *SparePartRepo) Delete(ctx context.Context, id string) error {
	return execAffected(ctx, r.q, "delete sparepart", psql.Delete("sparepart").Where(sq.Eq{"id_sparepart": id}))
}

func (r *SparePartRepo) List(ctx context.Context) ([]*entity.SparePart, error) {
	return r.list(ctx, sparePartSelect())
}

// ListWithRelations LEFT JOIN con merek y kategori_barang.
func (r *SparePartRepo) ListWithRelations(ctx context.Context) ([]*entity.SparePartWithRelations, error) {
	sqlStr, args, err := sparePartSelect().
		Columns("m.id_merek", "m.nama_merek", "k.id_kategori_barang", "k.nama_kategori").
		LeftJoin("merek m ON m.id_merek = sp.id_merek").
		LeftJoin("kategori_barang k ON k.id_kategori_barang = sp.id_kategori_barang").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, wrapErr("list sparepart", err)
	}
	defer rows.Close()

	out := []*entity.SparePartWithRelations{}
	for rows.Next() {
		var (
			p                  entity.SparePartWithRelations
			brandID, brandName *string
			catID, catName     *string
		)
		dest := append(sparePartDest(&p.SparePart), &brandID, &brandName, &catID, &catName)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan sparepart: %w", err)
		}
		if brandID != nil {
			p.Brand = &entity.Brand{ID: *brandID, Name: *brandName}
		}
		if catID != nil {
			p.Category = &entity.Category{ID: *catID, Name: *catName}
		}
		out = append(out, &p)
	}
	if err := rowsErr("list sparepart relations", rows); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SparePartRepo) Search(ctx context.Context, f repository.SparePartFilter) ([]*entity.SparePart, error) {
	b := sparePartSelect()
	if f.Name != "" {
		b = b.Where(sq.ILike{"sp.nama_barang": "%" + f.Name + "%"})
	}
	if f.CategoryID != "" {
		b = b.Where(sq.Eq{"sp.id_kategori_barang": f.CategoryID})
	}
	if f.BrandID != "" {
		b = b.Where(sq.Eq{"sp.id_merek": f.BrandID})
	}
	if f.CreatedFrom != nil {
		b = b.Where(sq.GtOrEq{"sp.created_at": *f.CreatedFrom})
	}
	if f.CreatedTo != nil {
		b = b.Where(sq.LtOrEq{"sp.created_at": *f.CreatedTo})
	}
	if f.MaxRemaining != nil {
		b = b.Where(sq.LtOrEq{"sp.sisa": *f.MaxRemaining})
	}
	return r.list(ctx, b)
}

func (r *SparePartRepo) IDsByCategory(ctx context.Context, categoryID string) ([]string, error) {
	sqlStr, args, err := psql.Select("id_sparepart").From("sparepart").
		Where(sq.Eq{"id_kategori_barang": categoryID}).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, wrapErr("ids sparepart", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id_sparepart: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rowsErr("ids sparepart", rows); err != nil {
		return nil, err
	}
	return ids, nil
}

func sparePartSelect() sq.SelectBuilder {
	return psql.Select(sparePartColumns...).From("sparepart sp").OrderBy("sp.nama_barang ASC")
}

func sparePartDest(p *entity.SparePart) []any {
	return []any{
		&p.ID, &p.Code, &p.Name, &p.BrandID, &p.CategoryID, &p.Source,
		&p.OnHand, &p.Sold, &p.Remaining, &p.CostPrice, &p.SalePrice, &p.CreatedAt,
	}
}

func (r *SparePartRepo) get(ctx context.Context, b sq.SelectBuilder) (*entity.SparePart, error) {
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	var p entity.SparePart
	if err := r.q.QueryRow(ctx, sqlStr, args...).Scan(sparePartDest(&p)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sparepart: %w", err)
	}
	return &p, nil
}

func (r *SparePartRepo) list(ctx context.Context, b sq.SelectBuilder) ([]*entity.SparePart, error) {
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, wrapErr("list sparepart", err)
	}
	defer rows.Close()

	out := []*entity.SparePart{}
	for rows.Next() {
		var p entity.SparePart
		if err := rows.Scan(sparePartDest(&p)...); err != nil {
			return nil, fmt.Errorf("scan sparepart: %w", err)
		}
		out = append(out, &p)
	}
	if err := rowsErr("list sparepart", rows); err != nil {
		return nil, err
	}
	return out, nil
}
