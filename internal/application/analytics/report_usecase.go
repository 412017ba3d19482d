package analytics

import (
	"context"

	"github.com/jhoicas/Sparepart-api/internal/application/dto"
	"github.com/jhoicas/Sparepart-api/internal/domain/report"
	"github.com/jhoicas/Sparepart-api/internal/domain/repository"
)

// Colores de los gráficos del panel web.
const (
	categoryColor = "#3b82f6"
	itemColor     = "#6366f1"
	datasetLabel  = "Transaksi"
)

var brandPalette = []string{"#3b82f6", "#10b981", "#f59e42", "#ef4444"}

// ReportUseCase laporan: conteo de transacciones por categoría, marca y repuesto.
type ReportUseCase struct {
	trxRepo repository.TransactionRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(trxRepo repository.TransactionRepository) *ReportUseCase {
	return &ReportUseCase{trxRepo: trxRepo}
}

// Statistics carga las transacciones (rango de fechas en la consulta) y
// aplica los filtros de categoría, marca y repuesto en memoria.
func (uc *ReportUseCase) Statistics(ctx context.Context, in dto.ReportRequest) (*dto.ReportResponse, error) {
	var f repository.TransactionFilter
	from, err := dto.ParseDate(in.From, false)
	if err != nil {
		return nil, err
	}
	to, err := dto.ParseDate(in.To, true)
	if err != nil {
		return nil, err
	}
	f.From, f.To = from, to
	f.SortField = "tanggal"

	rows, err := uc.trxRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	rep := report.BuildTransactionReport(rows, report.Filter{
		CategoryID:  in.CategoryID,
		BrandID:     in.BrandID,
		SparePartID: in.SparePartID,
	})
	return &dto.ReportResponse{
		Kategori: chart(rep.Category, datasetLabel, categoryColor),
		Merek:    chart(rep.Brand, "", brandPalette),
		Barang:   chart(rep.Item, datasetLabel, itemColor),
		Analisis: rep.Analysis,
	}, nil
}

func chart(t report.Tally, label string, color any) dto.ChartData {
	return dto.ChartData{
		Labels:   t.Labels,
		Datasets: []dto.ChartDataset{{Label: label, Data: t.Counts, BackgroundColor: color}},
	}
}
