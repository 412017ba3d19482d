package dto

import "time"

// BrandRequest entrada para crear o renombrar una marca.
type BrandRequest struct {
	Name string `json:"nama_merek"`
}

// BrandResponse salida de una marca.
type BrandResponse struct {
	ID        string     `json:"id_merek"`
	Name      string     `json:"nama_merek"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// BrandStatResponse fila de /merek/statistik y /merek/statistik-penjualan.
type BrandStatResponse struct {
	ID                string                  `json:"id_merek"`
	Name              string                  `json:"nama_merek"`
	TotalSparepart    int                     `json:"total_sparepart"`
	TotalStok         int64                   `json:"total_stok"`
	TotalTerjual      int64                   `json:"total_terjual"`
	TotalSisa         int64                   `json:"total_sisa"`
	KategoriBreakdown []CategoryBreakdownItem `json:"kategori_breakdown,omitempty"`
}

// CategoryBreakdownItem repuestos de una marca en una categoría.
type CategoryBreakdownItem struct {
	ID     string `json:"id_kategori_barang"`
	Name   string `json:"nama_kategori"`
	Jumlah int    `json:"jumlah"`
}
