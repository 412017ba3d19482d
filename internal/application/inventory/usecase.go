package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Sparepart-api/internal/application/dto"
	"github.com/jhoicas/Sparepart-api/internal/domain"
	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
	"github.com/jhoicas/Sparepart-api/internal/domain/repository"
	"github.com/jhoicas/Sparepart-api/internal/domain/stock"
)

// StockUseCase registra transacciones y ajustes directos de stock.
// Ambos caminos bloquean la fila del repuesto (SELECT FOR UPDATE) dentro de una transacción
// y aplican la misma regla de stock.Apply.
type StockUseCase struct {
	txRunner TxRunner
	now      func() time.Time
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner TxRunner) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, now: time.Now}
}

// PostTransaction valida, bloquea el repuesto, inserta la transacción y actualiza los contadores.
// Si el repuesto no existe no se escribe nada (domain.ErrNotFound).
func (uc *StockUseCase) PostTransaction(ctx context.Context, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if strings.TrimSpace(in.SparePartID) == "" || in.Type == "" || in.Quantity == nil || in.TotalPrice == nil || in.TotalPrice.IsZero() {
		return nil, fmt.Errorf("%w: id_sparepart, tipe, jumlah, harga_total wajib diisi", domain.ErrInvalidInput)
	}
	if in.TotalPrice.IsNegative() {
		return nil, fmt.Errorf("%w: harga_total tidak boleh negatif", domain.ErrInvalidInput)
	}
	movement, err := stock.ParseMovement(in.Type)
	if err != nil {
		return nil, err
	}
	qty := *in.Quantity
	if qty <= 0 {
		return nil, fmt.Errorf("%w: jumlah harus lebih dari 0", domain.ErrInvalidInput)
	}

	trx := &entity.Transaction{
		ID:          uuid.New().String(),
		SparePartID: in.SparePartID,
		Type:        string(movement),
		Quantity:    qty,
		TotalPrice:  *in.TotalPrice,
		Note:        in.Note,
		Date:        uc.now().UTC(),
	}

	err = uc.txRunner.Run(ctx, func(partRepo repository.SparePartRepository, trxRepo repository.TransactionRepository) error {
		part, err := partRepo.GetForUpdate(ctx, in.SparePartID)
		if err != nil {
			return err
		}
		if part == nil {
			return fmt.Errorf("%w: sparepart tidak ditemukan", domain.ErrNotFound)
		}
		next, err := stock.Apply(stock.LevelsOf(part), movement, qty)
		if err != nil {
			return err
		}
		if err := trxRepo.Create(ctx, trx); err != nil {
			return err
		}
		return partRepo.UpdateStock(ctx, part.ID, next.OnHand, next.Sold, next.Remaining)
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewTransactionResponse(trx)
	return &out, nil
}

// AdjustStock aplica un movimiento directamente sobre el repuesto, sin crear Transaction.
func (uc *StockUseCase) AdjustStock(ctx context.Context, in dto.StockAdjustmentRequest) (*dto.StockAdjustmentResponse, error) {
	if strings.TrimSpace(in.SparePartID) == "" || in.Type == "" || in.Quantity == nil {
		return nil, fmt.Errorf("%w: id_sparepart, tipe, dan jumlah wajib diisi", domain.ErrInvalidInput)
	}
	movement, err := stock.ParseMovement(in.Type)
	if err != nil {
		return nil, err
	}
	qty := *in.Quantity
	if qty <= 0 {
		return nil, fmt.Errorf("%w: jumlah harus lebih dari 0", domain.ErrInvalidInput)
	}

	var next stock.Levels
	err = uc.txRunner.Run(ctx, func(partRepo repository.SparePartRepository, _ repository.TransactionRepository) error {
		part, err := partRepo.GetForUpdate(ctx, in.SparePartID)
		if err != nil {
			return err
		}
		if part == nil {
			return fmt.Errorf("%w: sparepart tidak ditemukan", domain.ErrNotFound)
		}
		next, err = stock.Apply(stock.LevelsOf(part), movement, qty)
		if err != nil {
			return err
		}
		return partRepo.UpdateStock(ctx, part.ID, next.OnHand, next.Sold, next.Remaining)
	})
	if err != nil {
		return nil, err
	}
	return &dto.StockAdjustmentResponse{
		Message:   "Sparepart berhasil diupdate",
		OnHand:    next.OnHand,
		Sold:      next.Sold,
		Remaining: next.Remaining,
	}, nil
}
