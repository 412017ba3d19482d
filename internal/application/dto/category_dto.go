package dto

import "time"

// CategoryRequest entrada para crear o renombrar una categoría.
type CategoryRequest struct {
	Name string `json:"nama_kategori"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        string     `json:"id_kategori_barang"`
	Name      string     `json:"nama_kategori"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// CategoryStatResponse fila de /kategori-barang/statistik*.
type CategoryStatResponse struct {
	ID             string `json:"id_kategori_barang"`
	Name           string `json:"nama_kategori"`
	TotalSparepart int    `json:"total_sparepart"`
	TotalStok      int64  `json:"total_stok"`
	TotalTerjual   int64  `json:"total_terjual"`
	TotalSisa      int64  `json:"total_sisa"`
}
