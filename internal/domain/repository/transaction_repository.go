package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
)

// Columnas por las que se puede ordenar el listado de transacciones.
var TransactionSortFields = map[string]bool{
	"id_transaksi": true,
	"tanggal":      true,
	"jumlah":       true,
	"harga_total":  true,
	"tipe":         true,
	"keterangan":   true,
	"id_sparepart": true,
}

// TransactionFilter filtros, orden y paginación para transaksi.
// SparePartIDs nil = sin filtro; slice vacío = ninguna coincidencia.
type TransactionFilter struct {
	Type         string
	SparePartID  string
	SparePartIDs []string
	From         *time.Time
	To           *time.Time
	Search       string // ILIKE sobre keterangan
	SortField    string // vacío = tanggal
	SortAsc      bool
	Limit        int // 0 = sin límite
	Offset       int
}

// TransactionRepository define el puerto de persistencia para Transaction.
type TransactionRepository interface {
	Create(ctx context.Context, trx *entity.Transaction) error
	// GetByID devuelve la transacción con su repuesto (nil, nil si no existe).
	GetByID(ctx context.Context, id string) (*entity.TransactionWithRelations, error)
	Update(ctx context.Context, trx *entity.Transaction) error
	Delete(ctx context.Context, id string) error
	// List devuelve transacciones con repuesto, marca y categoría cargados.
	List(ctx context.Context, f TransactionFilter) ([]*entity.TransactionWithRelations, error)
	// Count ignora Limit/Offset/orden.
	Count(ctx context.Context, f TransactionFilter) (int, error)
}
