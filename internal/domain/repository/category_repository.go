package repository

import (
	"context"

	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Category, error)
	Search(ctx context.Context, q string) ([]*entity.Category, error)
	// ListByBrand categorías que tienen al menos un repuesto de la marca.
	ListByBrand(ctx context.Context, brandID string) ([]*entity.Category, error)
}
