package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos canónicos de transacción persistidos en transaksi.tipe.
const (
	TransactionReceipt = "receipt" // entrada de mercancía
	TransactionSale    = "sale"    // salida de mercancía (venta)
)

// Transaction evento de entrada/salida sobre un único repuesto (tabla transaksi).
// Editar o borrar una transacción no recalcula los contadores del repuesto.
type Transaction struct {
	ID          string
	SparePartID string
	Type        string
	Quantity    int64
	TotalPrice  decimal.Decimal
	Note        string
	Date        time.Time
}

// TransactionWithRelations transacción con el repuesto (y su marca/categoría) cargados.
type TransactionWithRelations struct {
	Transaction
	SparePart *SparePartWithRelations
}
