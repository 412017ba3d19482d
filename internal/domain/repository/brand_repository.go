package repository

import (
	"context"

	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
)

// BrandRepository define el puerto de persistencia para Brand (DIP).
type BrandRepository interface {
	Create(ctx context.Context, brand *entity.Brand) error
	GetByID(ctx context.Context, id string) (*entity.Brand, error)
	Update(ctx context.Context, brand *entity.Brand) error
	Delete(ctx context.Context, id string) error
	// List devuelve todas las marcas ordenadas por nombre.
	List(ctx context.Context) ([]*entity.Brand, error)
	// Search filtra por nombre (ILIKE %q%); q vacío equivale a List.
	Search(ctx context.Context, q string) ([]*entity.Brand, error)
	// ListByCategory marcas que tienen al menos un repuesto en la categoría.
	ListByCategory(ctx context.Context, categoryID string) ([]*entity.Brand, error)
}
