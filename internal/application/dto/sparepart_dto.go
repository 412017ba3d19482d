package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSparePartRequest entrada para crear un repuesto; los numéricos ausentes valen 0.
type CreateSparePartRequest struct {
	Code       string           `json:"kode_barang"`
	Name       string           `json:"nama_barang"`
	BrandID    string           `json:"id_merek"`
	CategoryID string           `json:"id_kategori_barang"`
	Source     string           `json:"sumber"`
	OnHand     *int64           `json:"jumlah"`
	Sold       *int64           `json:"terjual"`
	Remaining  *int64           `json:"sisa"`
	CostPrice  *decimal.Decimal `json:"harga_modal"`
	SalePrice  *decimal.Decimal `json:"harga_jual"`
}

// UpdateSparePartRequest actualización parcial: solo se aplican los campos presentes.
type UpdateSparePartRequest struct {
	Code       *string          `json:"kode_barang"`
	Name       *string          `json:"nama_barang"`
	BrandID    *string          `json:"id_merek"`
	CategoryID *string          `json:"id_kategori_barang"`
	Source     *string          `json:"sumber"`
	OnHand     *int64           `json:"jumlah"`
	Sold       *int64           `json:"terjual"`
	Remaining  *int64           `json:"sisa"`
	CostPrice  *decimal.Decimal `json:"harga_modal"`
	SalePrice  *decimal.Decimal `json:"harga_jual"`
}

// BrandNameRef relación embebida merek(nama_merek).
type BrandNameRef struct {
	Name string `json:"nama_merek"`
}

// CategoryNameRef relación embebida kategori_barang(nama_kategori).
type CategoryNameRef struct {
	Name string `json:"nama_kategori"`
}

// SparePartResponse salida de un repuesto.
type SparePartResponse struct {
	ID         string           `json:"id_sparepart"`
	Code       string           `json:"kode_barang"`
	Name       string           `json:"nama_barang"`
	BrandID    string           `json:"id_merek"`
	CategoryID string           `json:"id_kategori_barang"`
	Source     string           `json:"sumber"`
	OnHand     int64            `json:"jumlah"`
	Sold       int64            `json:"terjual"`
	Remaining  int64            `json:"sisa"`
	CostPrice  decimal.Decimal  `json:"harga_modal"`
	SalePrice  decimal.Decimal  `json:"harga_jual"`
	CreatedAt  time.Time        `json:"created_at"`
	Merek      *BrandNameRef    `json:"merek,omitempty"`
	Kategori   *CategoryNameRef `json:"kategori_barang,omitempty"`
}

// SparePartSearchRequest filtros de /sparepart/search.
type SparePartSearchRequest struct {
	Name       string `query:"nama"`
	CategoryID string `query:"kategori"`
	BrandID    string `query:"merek"`
}

// StockAdjustmentRequest entrada de /sparepart/update-by-transaksi.
type StockAdjustmentRequest struct {
	SparePartID string `json:"id_sparepart"`
	Type        string `json:"tipe"`
	Quantity    *int64 `json:"jumlah"`
}

// StockAdjustmentResponse contadores resultantes del ajuste directo.
type StockAdjustmentResponse struct {
	Message   string `json:"message"`
	OnHand    int64  `json:"jumlah"`
	Sold      int64  `json:"terjual"`
	Remaining int64  `json:"sisa"`
}

// SparePartStatisticsResponse salida de /sparepart/statistik.
type SparePartStatisticsResponse struct {
	TotalSparepart int                 `json:"total_sparepart"`
	TotalStok      int64               `json:"total_stok"`
	TotalTerjual   int64               `json:"total_terjual"`
	TotalSisa      int64               `json:"total_sisa"`
	TotalModal     decimal.Decimal     `json:"total_modal"`
	TotalJual      decimal.Decimal     `json:"total_jual"`
	Detail         []SparePartResponse `json:"detail"`
}

// LowStockResponse salida de /sparepart/stok-rendah.
type LowStockResponse struct {
	Threshold int64               `json:"threshold"`
	Items     []SparePartResponse `json:"sparepart_stok_rendah"`
}
