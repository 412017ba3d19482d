package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
)

// SparePartFilter filtros combinables para búsqueda y exportación de repuestos.
type SparePartFilter struct {
	Name         string // ILIKE sobre nama_barang
	CategoryID   string
	BrandID      string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	MaxRemaining *int64 // sisa <= MaxRemaining (stok rendah)
}

// SparePartRepository define el puerto de persistencia para SparePart.
// Los getters devuelven (nil, nil) cuando la fila no existe.
type SparePartRepository interface {
	Create(ctx context.Context, part *entity.SparePart) error
	GetByID(ctx context.Context, id string) (*entity.SparePart, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE); usar dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.SparePart, error)
	Update(ctx context.Context, part *entity.SparePart) error
	// UpdateStock persiste solo los tres contadores.
	UpdateStock(ctx context.Context, id string, onHand, sold, remaining int64) error
	Delete(ctx context.Context, id string) error
	// List devuelve todos los repuestos sin relaciones (estadísticas).
	List(ctx context.Context) ([]*entity.SparePart, error)
	// ListWithRelations devuelve todos los repuestos con marca y categoría, ordenados por nombre.
	ListWithRelations(ctx context.Context) ([]*entity.SparePartWithRelations, error)
	Search(ctx context.Context, f SparePartFilter) ([]*entity.SparePart, error)
	// IDsByCategory ids de los repuestos de una categoría.
	IDsByCategory(ctx context.Context, categoryID string) ([]string, error)
}
