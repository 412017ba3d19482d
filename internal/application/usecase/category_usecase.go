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

// CategoryUseCase casos de uso CRUD para categorías (kategori_barang).
type CategoryUseCase struct {
	repo      repository.CategoryRepository
	brandRepo repository.BrandRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, brandRepo repository.BrandRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, brandRepo: brandRepo}
}

func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	cats, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toCategoryResponses(cats), nil
}

func (uc *CategoryUseCase) Search(ctx context.Context, q string) ([]dto.CategoryResponse, error) {
	cats, err := uc.repo.Search(ctx, strings.TrimSpace(q))
	if err != nil {
		return nil, err
	}
	return toCategoryResponses(cats), nil
}

// Create crea una categoría. nama_kategori es obligatorio.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nama kategori wajib diisi", domain.ErrInvalidInput)
	}
	cat := &entity.Category{ID: uuid.New().String(), Name: name, CreatedAt: time.Now().UTC()}
	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}
	out := dto.NewCategoryResponse(cat)
	return &out, nil
}

func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nama kategori wajib diisi", domain.ErrInvalidInput)
	}
	cat, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, fmt.Errorf("%w: kategori tidak ditemukan", domain.ErrNotFound)
	}
	cat.Name = name
	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	out := dto.NewCategoryResponse(cat)
	return &out, nil
}

func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// Brands marcas con repuestos en la categoría.
func (uc *CategoryUseCase) Brands(ctx context.Context, categoryID string) ([]dto.BrandResponse, error) {
	brands, err := uc.brandRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return toBrandResponses(brands), nil
}

func toCategoryResponses(cats []*entity.Category) []dto.CategoryResponse {
	return lo.Map(cats, func(c *entity.Category, _ int) dto.CategoryResponse { return dto.NewCategoryResponse(c) })
}
