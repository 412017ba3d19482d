package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Sparepart-api/internal/application/dto"
	"github.com/jhoicas/Sparepart-api/internal/domain"
	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
	"github.com/jhoicas/Sparepart-api/internal/domain/repository"
)

// SparePartUseCase casos de uso CRUD y consultas de repuestos.
// Los contadores de stock se modifican aquí solo por edición administrativa;
// los movimientos pasan por inventory.StockUseCase.
type SparePartUseCase struct {
	repo              repository.SparePartRepository
	brandRepo         repository.BrandRepository
	categoryRepo      repository.CategoryRepository
	trxRepo           repository.TransactionRepository
	lowStockThreshold int64
}

// NewSparePartUseCase construye el caso de uso. lowStockThreshold es el umbral por defecto de stok-rendah.
func NewSparePartUseCase(
	repo repository.SparePartRepository,
	brandRepo repository.BrandRepository,
	categoryRepo repository.CategoryRepository,
	trxRepo repository.TransactionRepository,
	lowStockThreshold int,
) *SparePartUseCase {
	return &SparePartUseCase{
		repo:              repo,
		brandRepo:         brandRepo,
		categoryRepo:      categoryRepo,
		trxRepo:           trxRepo,
		lowStockThreshold: int64(lowStockThreshold),
	}
}

// List devuelve todos los repuestos con merek y kategori_barang, ordenados por nombre.
func (uc *SparePartUseCase) List(ctx context.Context) ([]dto.SparePartResponse, error) {
	parts, err := uc.repo.ListWithRelations(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(parts, func(p *entity.SparePartWithRelations, _ int) dto.SparePartResponse {
		return dto.NewSparePartWithRelationsResponse(p)
	}), nil
}

// Create crea un repuesto. Los campos numéricos ausentes se inicializan en 0.
func (uc *SparePartUseCase) Create(ctx context.Context, in dto.CreateSparePartRequest) (*dto.SparePartResponse, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	if in.Code == "" || in.Name == "" || in.BrandID == "" || in.CategoryID == "" || strings.TrimSpace(in.Source) == "" {
		return nil, fmt.Errorf("%w: field wajib: kode_barang, nama_barang, id_merek, id_kategori_barang, sumber", domain.ErrInvalidInput)
	}
	if err := uc.checkRefs(ctx, in.BrandID, in.CategoryID); err != nil {
		return nil, err
	}
	part := &entity.SparePart{
		ID:         uuid.New().String(),
		Code:       in.Code,
		Name:       in.Name,
		BrandID:    in.BrandID,
		CategoryID: in.CategoryID,
		Source:     in.Source,
		OnHand:     lo.FromPtr(in.OnHand),
		Sold:       lo.FromPtr(in.Sold),
		Remaining:  lo.FromPtr(in.Remaining),
		CostPrice:  lo.FromPtrOr(in.CostPrice, decimal.Zero),
		SalePrice:  lo.FromPtrOr(in.SalePrice, decimal.Zero),
		CreatedAt:  time.Now().UTC(),
	}
	if err := validateCounters(part); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, part); err != nil {
		return nil, err
	}
	out := dto.NewSparePartResponse(part)
	return &out, nil
}

// Update aplica solo los campos presentes en la petición.
func (uc *SparePartUseCase) Update(ctx context.Context, id string, in dto.UpdateSparePartRequest) (*dto.SparePartResponse, error) {
	part, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, fmt.Errorf("%w: sparepart tidak ditemukan", domain.ErrNotFound)
	}
	if in.Code != nil {
		part.Code = strings.TrimSpace(*in.Code)
	}
	if in.Name != nil {
		part.Name = strings.TrimSpace(*in.Name)
	}
	if in.Source != nil {
		part.Source = *in.Source
	}
	if in.BrandID != nil {
		part.BrandID = *in.BrandID
	}
	if in.CategoryID != nil {
		part.CategoryID = *in.CategoryID
	}
	if in.OnHand != nil {
		part.OnHand = *in.OnHand
	}
	if in.Sold != nil {
		part.Sold = *in.Sold
	}
	if in.Remaining != nil {
		part.Remaining = *in.Remaining
	}
	if in.CostPrice != nil {
		part.CostPrice = *in.CostPrice
	}
	if in.SalePrice != nil {
		part.SalePrice = *in.SalePrice
	}
	if part.Code == "" || part.Name == "" {
		return nil, fmt.Errorf("%w: kode_barang dan nama_barang tidak boleh kosong", domain.ErrInvalidInput)
	}
	if in.BrandID != nil || in.CategoryID != nil {
		if err := uc.checkRefs(ctx, part.BrandID, part.CategoryID); err != nil {
			return nil, err
		}
	}
	if err := validateCounters(part); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, part); err != nil {
		return nil, err
	}
	out := dto.NewSparePartResponse(part)
	return &out, nil
}

// Delete elimina un repuesto; ErrConflict si tiene transacciones.
func (uc *SparePartUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// Search filtra por nombre parcial, categoría y marca.
func (uc *SparePartUseCase) Search(ctx context.Context, in dto.SparePartSearchRequest) ([]dto.SparePartResponse, error) {
	parts, err := uc.repo.Search(ctx, repository.SparePartFilter{
		Name:       strings.TrimSpace(in.Name),
		CategoryID: in.CategoryID,
		BrandID:    in.BrandID,
	})
	if err != nil {
		return nil, err
	}
	return toSparePartResponses(parts), nil
}

// LowStock repuestos con sisa <= threshold. threshold <= 0 usa el umbral configurado.
func (uc *SparePartUseCase) LowStock(ctx context.Context, threshold int64) (*dto.LowStockResponse, error) {
	if threshold <= 0 {
		threshold = uc.lowStockThreshold
	}
	parts, err := uc.repo.Search(ctx, repository.SparePartFilter{MaxRemaining: &threshold})
	if err != nil {
		return nil, err
	}
	return &dto.LowStockResponse{Threshold: threshold, Items: toSparePartResponses(parts)}, nil
}

// History transacciones de un repuesto, la más reciente primero.
func (uc *SparePartUseCase) History(ctx context.Context, sparePartID string) ([]dto.TransactionResponse, error) {
	if strings.TrimSpace(sparePartID) == "" {
		return nil, fmt.Errorf("%w: id_sparepart wajib diisi", domain.ErrInvalidInput)
	}
	rows, err := uc.trxRepo.List(ctx, repository.TransactionFilter{SparePartID: sparePartID, SortField: "tanggal"})
	if err != nil {
		return nil, err
	}
	return lo.Map(rows, func(t *entity.TransactionWithRelations, _ int) dto.TransactionResponse {
		return dto.NewTransactionResponse(&t.Transaction)
	}), nil
}

func (uc *SparePartUseCase) checkRefs(ctx context.Context, brandID, categoryID string) error {
	brand, err := uc.brandRepo.GetByID(ctx, brandID)
	if err != nil {
		return err
	}
	if brand == nil {
		return fmt.Errorf("%w: id_merek tidak ditemukan", domain.ErrInvalidInput)
	}
	cat, err := uc.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if cat == nil {
		return fmt.Errorf("%w: id_kategori_barang tidak ditemukan", domain.ErrInvalidInput)
	}
	return nil
}

func validateCounters(p *entity.SparePart) error {
	if p.OnHand < 0 || p.Sold < 0 || p.Remaining < 0 {
		return fmt.Errorf("%w: jumlah, terjual, dan sisa tidak boleh negatif", domain.ErrInvalidInput)
	}
	if p.CostPrice.IsNegative() || p.SalePrice.IsNegative() {
		return fmt.Errorf("%w: harga tidak boleh negatif", domain.ErrInvalidInput)
	}
	return nil
}

func toSparePartResponses(parts []*entity.SparePart) []dto.SparePartResponse {
	return lo.Map(parts, func(p *entity.SparePart, _ int) dto.SparePartResponse { return dto.NewSparePartResponse(p) })
}
