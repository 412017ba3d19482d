package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/jhoicas/Sparepart-api/internal/application/dto"
	"github.com/jhoicas/Sparepart-api/internal/domain"
	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
	"github.com/jhoicas/Sparepart-api/internal/domain/report"
	"github.com/jhoicas/Sparepart-api/internal/domain/repository"
	"github.com/jhoicas/Sparepart-api/internal/domain/stock"
)

// TransactionUseCase consultas y corrección administrativa de transacciones.
// El alta (con ajuste de stock) vive en inventory.StockUseCase.
type TransactionUseCase struct {
	repo     repository.TransactionRepository
	partRepo repository.SparePartRepository
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(repo repository.TransactionRepository, partRepo repository.SparePartRepository) *TransactionUseCase {
	return &TransactionUseCase{repo: repo, partRepo: partRepo}
}

type sortSpec struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

// List filtra, ordena y pagina. Si la categoría no tiene repuestos devuelve
// {data: [], total: 0} sin consultar transaksi.
func (uc *TransactionUseCase) List(ctx context.Context, in dto.TransactionListRequest) (*dto.TransactionListResponse, error) {
	page := dto.PageRequest{Page: in.Page, Limit: in.Limit}
	page.DefaultPage()

	f, err := baseFilter(in.Type, in.From, in.To)
	if err != nil {
		return nil, err
	}
	f.SparePartID = in.SparePartID
	f.Search = strings.TrimSpace(in.Search)

	if in.CategoryID != "" {
		ids, err := uc.partRepo.IDsByCategory(ctx, in.CategoryID)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return &dto.TransactionListResponse{Data: []dto.TransactionResponse{}, Total: 0}, nil
		}
		f.SparePartIDs = ids
	}

	f.SortField, f.SortAsc = "tanggal", false
	if in.Sort != "" {
		var s sortSpec
		// JSON inválido: se conserva el orden por defecto.
		if json.Unmarshal([]byte(in.Sort), &s) == nil && s.Field != "" {
			if !repository.TransactionSortFields[s.Field] {
				return nil, fmt.Errorf("%w: kolom sort tidak dikenal: %q", domain.ErrInvalidInput, s.Field)
			}
			f.SortField, f.SortAsc = s.Field, strings.EqualFold(s.Order, "asc")
		}
	}
	f.Limit, f.Offset = page.Limit, page.Offset()

	rows, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.TransactionListResponse{
		Data: lo.Map(rows, func(t *entity.TransactionWithRelations, _ int) dto.TransactionResponse {
			return dto.NewTransactionWithPartResponse(t)
		}),
		Total: total,
	}, nil
}

// Get detalle con el nombre del repuesto.
func (uc *TransactionUseCase) Get(ctx context.Context, id string) (*dto.TransactionResponse, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: transaksi tidak ditemukan", domain.ErrNotFound)
	}
	out := dto.NewTransactionWithPartResponse(t)
	return &out, nil
}

// Update corrige campos de la transacción. No recalcula los contadores del repuesto.
func (uc *TransactionUseCase) Update(ctx context.Context, id string, in dto.UpdateTransactionRequest) (*dto.TransactionResponse, error) {
	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("%w: transaksi tidak ditemukan", domain.ErrNotFound)
	}
	t := current.Transaction
	if in.Type != nil {
		m, err := stock.ParseMovement(*in.Type)
		if err != nil {
			return nil, err
		}
		t.Type = string(m)
	}
	if in.Quantity != nil {
		if *in.Quantity <= 0 {
			return nil, fmt.Errorf("%w: jumlah harus lebih dari 0", domain.ErrInvalidInput)
		}
		t.Quantity = *in.Quantity
	}
	if in.TotalPrice != nil {
		if in.TotalPrice.IsNegative() {
			return nil, fmt.Errorf("%w: harga_total tidak boleh negatif", domain.ErrInvalidInput)
		}
		t.TotalPrice = *in.TotalPrice
	}
	if in.Note != nil {
		t.Note = *in.Note
	}
	if err := uc.repo.Update(ctx, &t); err != nil {
		return nil, err
	}
	out := dto.NewTransactionResponse(&t)
	return &out, nil
}

// Delete borra la transacción sin tocar el repuesto.
func (uc *TransactionUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// Summary totales monetarios por dirección de caja.
func (uc *TransactionUseCase) Summary(ctx context.Context, in dto.TransactionExportRequest) (*dto.TransactionSummaryResponse, error) {
	f, err := baseFilter(in.Type, in.From, in.To)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	s := report.Summarize(lo.Map(rows, func(t *entity.TransactionWithRelations, _ int) *entity.Transaction {
		return &t.Transaction
	}))
	tipe := "all"
	if f.Type != "" {
		tipe = f.Type
	}
	return &dto.TransactionSummaryResponse{
		Tipe:        tipe,
		Total:       s.Total,
		Cashflow:    s.Cashflow,
		TotalMasuk:  s.CashIn,
		TotalKeluar: s.CashOut,
	}, nil
}

// baseFilter tipe normalizado y rango de fechas (solo si llegan ambas fechas).
func baseFilter(tipe, from, to string) (repository.TransactionFilter, error) {
	var f repository.TransactionFilter
	if tipe != "" {
		m, err := stock.ParseMovement(tipe)
		if err != nil {
			return f, err
		}
		f.Type = string(m)
	}
	if from != "" && to != "" {
		start, err := dto.ParseDate(from, false)
		if err != nil {
			return f, err
		}
		end, err := dto.ParseDate(to, true)
		if err != nil {
			return f, err
		}
		f.From, f.To = start, end
	}
	return f, nil
}
