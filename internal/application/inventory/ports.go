package inventory

import (
	"context"

	"github.com/jhoicas/Sparepart-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el registro de transacciones y el ajuste de stock.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		partRepo repository.SparePartRepository,
		trxRepo repository.TransactionRepository,
	) error) error
}
