// Package analytics contiene los casos de uso de estadísticas de inventario y
// el reporte de transacciones para gráficos (laporan).
package analytics

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/jhoicas/Sparepart-api/internal/application/dto"
	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
	"github.com/jhoicas/Sparepart-api/internal/domain/report"
	"github.com/jhoicas/Sparepart-api/internal/domain/repository"
)

// StatsUseCase estadísticas por categoría, por marca y globales de repuestos.
//
// Fuente de datos: los repositorios de catálogo (lecturas completas).
// La agregación es pura y vive en domain/report.
type StatsUseCase struct {
	brandRepo    repository.BrandRepository
	categoryRepo repository.CategoryRepository
	partRepo     repository.SparePartRepository
}

// NewStatsUseCase construye el caso de uso.
func NewStatsUseCase(
	brandRepo repository.BrandRepository,
	categoryRepo repository.CategoryRepository,
	partRepo repository.SparePartRepository,
) *StatsUseCase {
	return &StatsUseCase{brandRepo: brandRepo, categoryRepo: categoryRepo, partRepo: partRepo}
}

// snapshot colecciones completas leídas en paralelo.
type snapshot struct {
	brands     []*entity.Brand
	categories []*entity.Category
	parts      []*entity.SparePart
}

// load lanza las lecturas pedidas en paralelo.
func (uc *StatsUseCase) load(ctx context.Context, withBrands, withCategories bool) (*snapshot, error) {
	type brandsResult struct {
		rows []*entity.Brand
		err  error
	}
	type categoriesResult struct {
		rows []*entity.Category
		err  error
	}
	type partsResult struct {
		rows []*entity.SparePart
		err  error
	}

	brandsCh := make(chan brandsResult, 1)
	categoriesCh := make(chan categoriesResult, 1)
	partsCh := make(chan partsResult, 1)

	if withBrands {
		go func() {
			rows, err := uc.brandRepo.List(ctx)
			brandsCh <- brandsResult{rows, err}
		}()
	} else {
		brandsCh <- brandsResult{}
	}
	if withCategories {
		go func() {
			rows, err := uc.categoryRepo.List(ctx)
			categoriesCh <- categoriesResult{rows, err}
		}()
	} else {
		categoriesCh <- categoriesResult{}
	}
	go func() {
		rows, err := uc.partRepo.List(ctx)
		partsCh <- partsResult{rows, err}
	}()

	brands := <-brandsCh
	categories := <-categoriesCh
	parts := <-partsCh

	if brands.err != nil {
		return nil, fmt.Errorf("statistik: merek: %w", brands.err)
	}
	if categories.err != nil {
		return nil, fmt.Errorf("statistik: kategori: %w", categories.err)
	}
	if parts.err != nil {
		return nil, fmt.Errorf("statistik: sparepart: %w", parts.err)
	}
	return &snapshot{brands: brands.rows, categories: categories.rows, parts: parts.rows}, nil
}

// CategoryStats una fila por categoría con conteo y sumas de contadores.
func (uc *StatsUseCase) CategoryStats(ctx context.Context) ([]dto.CategoryStatResponse, error) {
	snap, err := uc.load(ctx, false, true)
	if err != nil {
		return nil, err
	}
	return lo.Map(report.CategoryStats(snap.categories, snap.parts), func(s report.CategoryStat, _ int) dto.CategoryStatResponse {
		return dto.CategoryStatResponse{
			ID:             s.Category.ID,
			Name:           s.Category.Name,
			TotalSparepart: s.Parts,
			TotalStok:      s.OnHand,
			TotalTerjual:   s.Sold,
			TotalSisa:      s.Remaining,
		}
	}), nil
}

// BrandStats una fila por marca. Con withBreakdown añade kategori_breakdown
// (todas las categorías, ceros incluidos).
func (uc *StatsUseCase) BrandStats(ctx context.Context, withBreakdown bool) ([]dto.BrandStatResponse, error) {
	snap, err := uc.load(ctx, true, withBreakdown)
	if err != nil {
		return nil, err
	}
	return lo.Map(report.BrandStats(snap.brands, snap.categories, snap.parts), func(s report.BrandStat, _ int) dto.BrandStatResponse {
		out := dto.BrandStatResponse{
			ID:             s.Brand.ID,
			Name:           s.Brand.Name,
			TotalSparepart: s.Parts,
			TotalStok:      s.OnHand,
			TotalTerjual:   s.Sold,
			TotalSisa:      s.Remaining,
		}
		if withBreakdown {
			out.KategoriBreakdown = lo.Map(s.Breakdown, func(c report.CategoryCount, _ int) dto.CategoryBreakdownItem {
				return dto.CategoryBreakdownItem{ID: c.Category.ID, Name: c.Category.Name, Jumlah: c.Parts}
			})
		}
		return out
	}), nil
}

// SparePartStatistics totales globales y detalle de /sparepart/statistik.
func (uc *StatsUseCase) SparePartStatistics(ctx context.Context) (*dto.SparePartStatisticsResponse, error) {
	parts, err := uc.partRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	t := report.SparePartTotals(parts)
	return &dto.SparePartStatisticsResponse{
		TotalSparepart: t.Parts,
		TotalStok:      t.OnHand,
		TotalTerjual:   t.Sold,
		TotalSisa:      t.Remaining,
		TotalModal:     t.CostValue,
		TotalJual:      t.SaleValue,
		Detail: lo.Map(parts, func(p *entity.SparePart, _ int) dto.SparePartResponse {
			return dto.NewSparePartResponse(p)
		}),
	}, nil
}
