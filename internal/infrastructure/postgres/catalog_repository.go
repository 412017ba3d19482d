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

var (
	_ repository.BrandRepository    = (*BrandRepo)(nil)
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
)

// BrandRepo implementación de BrandRepository sobre la tabla merek.
type BrandRepo struct {
	q Querier
}

// NewBrandRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBrandRepository(q Querier) *BrandRepo {
	return &BrandRepo{q: q}
}

func (r *BrandRepo) Create(ctx context.Context, b *entity.Brand) error {
	sqlStr, args, err := psql.Insert("merek").
		Columns("id_merek", "nama_merek", "created_at").
		Values(b.ID, b.Name, b.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, sqlStr, args...); err != nil {
		return wrapErr("insert merek", err)
	}
	return nil
}

func (r *BrandRepo) GetByID(ctx context.Context, id string) (*entity.Brand, error) {
	sqlStr, args, err := psql.Select("id_merek", "nama_merek", "created_at").
		From("merek").Where(sq.Eq{"id_merek": id}).ToSql()
	if err != nil {
		return nil, err
	}
	var b entity.Brand
	err = r.q.QueryRow(ctx, sqlStr, args...).Scan(&b.ID, &b.Name, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get merek: %w", err)
	}
	return &b, nil
}

func (r *BrandRepo) Update(ctx context.Context, b *entity.Brand) error {
	return execAffected(ctx, r.q, "update merek",
		psql.Update("merek").Set("nama_merek", b.Name).Where(sq.Eq{"id_merek": b.ID}))
}

// Delete falla con ErrConflict (23503) si hay repuestos de la marca.
func (r *BrandRepo) Delete(ctx context.Context, id string) error {
	return execAffected(ctx, r.q, "delete merek", psql.Delete("merek").Where(sq.Eq{"id_merek": id}))
}

func (r *BrandRepo) List(ctx context.Context) ([]*entity.Brand, error) {
	return r.list(ctx, brandSelect())
}

// Search ILIKE sobre nama_merek; q vacío lista todo.
func (r *BrandRepo) Search(ctx context.Context, q string) ([]*entity.Brand, error) {
	b := brandSelect()
	if q != "" {
		b = b.Where(sq.ILike{"nama_merek": "%" + q + "%"})
	}
	return r.list(ctx, b)
}

// ListByCategory marcas con al menos un repuesto en la categoría.
func (r *BrandRepo) ListByCategory(ctx context.Context, categoryID string) ([]*entity.Brand, error) {
	return r.list(ctx, brandSelect().Where(sq.Expr(
		"id_merek IN (SELECT id_merek FROM sparepart WHERE id_kategori_barang = ?)", categoryID)))
}

func brandSelect() sq.SelectBuilder {
	return psql.Select("id_merek", "nama_merek", "created_at").From("merek").OrderBy("nama_merek ASC")
}

func (r *BrandRepo) list(ctx context.Context, b sq.SelectBuilder) ([]*entity.Brand, error) {
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, wrapErr("list merek", err)
	}
	defer rows.Close()

	out := []*entity.Brand{}
	for rows.Next() {
		var m entity.Brand
		if err := rows.Scan(&m.ID, &m.Name, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan merek: %w", err)
		}
		out = append(out, &m)
	}
	if err := rowsErr("list merek", rows); err != nil {
		return nil, err
	}
	return out, nil
}

// CategoryRepo implementación de CategoryRepository sobre kategori_barang.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	sqlStr, args, err := psql.Insert("kategori_barang").
		Columns("id_kategori_barang", "nama_kategori", "created_at").
		Values(c.ID, c.Name, c.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, sqlStr, args...); err != nil {
		return wrapErr("insert kategori_barang", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	sqlStr, args, err := psql.Select("id_kategori_barang", "nama_kategori", "created_at").
		From("kategori_barang").Where(sq.Eq{"id_kategori_barang": id}).ToSql()
	if err != nil {
		return nil, err
	}
	var c entity.Category
	err = r.q.QueryRow(ctx, sqlStr, args...).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get kategori_barang: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	return execAffected(ctx, r.q, "update kategori_barang",
		psql.Update("kategori_barang").Set("nama_kategori", c.Name).Where(sq.Eq{"id_kategori_barang": c.ID}))
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	return execAffected(ctx, r.q, "delete kategori_barang",
		psql.Delete("kategori_barang").Where(sq.Eq{"id_kategori_barang": id}))
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	return r.list(ctx, categorySelect())
}

func (r *CategoryRepo) Search(ctx context.Context, q string) ([]*entity.Category, error) {
	b := categorySelect()
	if q != "" {
		b = b.Where(sq.ILike{"nama_kategori": "%" + q + "%"})
	}
	return r.list(ctx, b)
}

// ListByBrand categorías con al menos un repuesto de la marca.
func (r *CategoryRepo) ListByBrand(ctx context.Context, brandID string) ([]*entity.Category, error) {
	return r.list(ctx, categorySelect().Where(sq.Expr(
		"id_kategori_barang IN (SELECT id_kategori_barang FROM sparepart WHERE id_merek = ?)", brandID)))
}

func categorySelect() sq.SelectBuilder {
	return psql.Select("id_kategori_barang", "nama_kategori", "created_at").
		From("kategori_barang").OrderBy("nama_kategori ASC")
}

func (r *CategoryRepo) list(ctx context.Context, b sq.SelectBuilder) ([]*entity.Category, error) {
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, wrapErr("list kategori_barang", err)
	}
	defer rows.Close()

	out := []*entity.Category{}
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan kategori_barang: %w", err)
		}
		out = append(out, &c)
	}
	if err := rowsErr("list kategori_barang", rows); err != nil {
		return nil, err
	}
	return out, nil
}
