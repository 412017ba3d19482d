package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SparePart representa un repuesto del inventario (tabla sparepart).
// OnHand, Sold y Remaining son contadores independientes: cada uno se mantiene >= 0
// pero no se exige OnHand - Sold == Remaining.
type SparePart struct {
	ID         string
	Code       string // kode_barang
	Name       string // nama_barang
	BrandID    string
	CategoryID string
	Source     string // proveedor u origen (sumber)
	OnHand     int64  // jumlah
	Sold       int64  // terjual
	Remaining  int64  // sisa
	CostPrice  decimal.Decimal
	SalePrice  decimal.Decimal
	CreatedAt  time.Time
}

// SparePartWithRelations repuesto junto con su marca y categoría (nil si la referencia no existe).
type SparePartWithRelations struct {
	SparePart
	Brand    *Brand
	Category *Category
}

// BrandName devuelve el nombre de la marca o "" si no hay relación.
func (s *SparePartWithRelations) BrandName() string {
	if s == nil || s.Brand == nil {
		return ""
	}
	return s.Brand.Name
}

// CategoryName devuelve el nombre de la categoría o "" si no hay relación.
func (s *SparePartWithRelations) CategoryName() string {
	if s == nil || s.Category == nil {
		return ""
	}
	return s.Category.Name
}
