package entity

import "time"

// Category representa una categoría de repuestos (tabla kategori_barang).
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
