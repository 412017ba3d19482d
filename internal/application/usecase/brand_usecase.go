package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/jhoicas/Sparepart-api/internal/application/dto"
	"github.com/jhoicas/Sparepart-api/internal/domain"
	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
	"github.com/jhoicas/Sparepart-api/internal/domain/repository"
)

// BrandUseCase casos de uso CRUD para marcas (merek).
type BrandUseCase struct {
	repo         repository.BrandRepository
	categoryRepo repository.CategoryRepository
}

// NewBrandUseCase construye el caso de uso.
func NewBrandUseCase(repo repository.BrandRepository, categoryRepo repository.CategoryRepository) *BrandUseCase {
	return &BrandUseCase{repo: repo, categoryRepo: categoryRepo}
}

// List devuelve todas las marcas ordenadas por nombre.
func (uc *BrandUseCase) List(ctx context.Context) ([]dto.BrandResponse, error) {
	brands, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toBrandResponses(brands), nil
}

// Search búsqueda parcial por nombre.
func (uc *BrandUseCase) Search(ctx context.Context, q string) ([]dto.BrandResponse, error) {
	brands, err := uc.repo.Search(ctx, strings.TrimSpace(q))
	if err != nil {
		return nil, err
	}
	return toBrandResponses(brands), nil
}

// Create crea una marca. nama_merek es obligatorio.
func (uc *BrandUseCase) Create(ctx context.Context, in dto.BrandRequest) (*dto.BrandResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nama merek wajib diisi", domain.ErrInvalidInput)
	}
	brand := &entity.Brand{ID: uuid.New().String(), Name: name, CreatedAt: time.Now().UTC()}
	if err := uc.repo.Create(ctx, brand); err != nil {
		return nil, err
	}
	out := dto.NewBrandResponse(brand)
	return &out, nil
}

// Update renombra una marca.
func (uc *BrandUseCase) Update(ctx context.Context, id string, in dto.BrandRequest) (*dto.BrandResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nama merek wajib diisi", domain.ErrInvalidInput)
	}
	brand, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, fmt.Errorf("%w: merek tidak ditemukan", domain.ErrNotFound)
	}
	brand.Name = name
	if err := uc.repo.Update(ctx, brand); err != nil {
		return nil, err
	}
	out := dto.NewBrandResponse(brand)
	return &out, nil
}

// Delete elimina una marca; falla con ErrConflict si tiene repuestos.
func (uc *BrandUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// Categories categorías en las que la marca tiene repuestos.
func (uc *BrandUseCase) Categories(ctx context.Context, brandID string) ([]dto.CategoryResponse, error) {
	cats, err := uc.categoryRepo.ListByBrand(ctx, brandID)
	if err != nil {
		return nil, err
	}
	return toCategoryResponses(cats), nil
}

func toBrandResponses(brands []*entity.Brand) []dto.BrandResponse {
	return lo.Map(brands, func(b *entity.Brand, _ int) dto.BrandResponse { return dto.NewBrandResponse(b) })
}
