package usecase

import (
	"bytes"
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/jhoicas/Sparepart-api/internal/application/dto"
	"github.com/jhoicas/Sparepart-api/internal/application/ports"
	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
	"github.com/jhoicas/Sparepart-api/internal/domain/repository"
)

const (
	contentTypeCSV  = "text/csv"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"

	noBrand    = "Tanpa Merek"
	noCategory = "Tanpa Kategori"
)

// ExportUseCase genera los archivos descargables de transaksi y sparepart.
type ExportUseCase struct {
	trxRepo  repository.TransactionRepository
	partRepo repository.SparePartRepository
	exporter ports.Exporter
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(trxRepo repository.TransactionRepository, partRepo repository.SparePartRepository, exporter ports.Exporter) *ExportUseCase {
	return &ExportUseCase{trxRepo: trxRepo, partRepo: partRepo, exporter: exporter}
}

// TransactionsCSV transaksi.csv con los filtros tipe y rango de fechas.
func (uc *ExportUseCase) TransactionsCSV(ctx context.Context, in dto.TransactionExportRequest) (*ports.File, error) {
	rows, err := uc.transactionRows(ctx, in)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := uc.exporter.TransactionsCSV(&buf, rows); err != nil {
		return nil, fmt.Errorf("generate csv: %w", err)
	}
	return &ports.File{Name: "transaksi.csv", ContentType: contentTypeCSV, Data: buf.Bytes()}, nil
}

// TransactionsXLSX transaksi.xlsx, hoja "Transaksi".
func (uc *ExportUseCase) TransactionsXLSX(ctx context.Context, in dto.TransactionExportRequest) (*ports.File, error) {
	rows, err := uc.transactionRows(ctx, in)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := uc.exporter.TransactionsXLSX(&buf, rows); err != nil {
		return nil, fmt.Errorf("generate excel: %w", err)
	}
	return &ports.File{Name: "transaksi.xlsx", ContentType: contentTypeXLSX, Data: buf.Bytes()}, nil
}

// TransactionsPDF transaksi.pdf con tabla y total.
func (uc *ExportUseCase) TransactionsPDF(ctx context.Context, in dto.TransactionExportRequest) (*ports.File, error) {
	rows, err := uc.transactionRows(ctx, in)
	if err != nil {
		return nil, err
	}
	data, err := uc.exporter.TransactionsPDF(ctx, "Laporan Transaksi", rows)
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return &ports.File{Name: "transaksi.pdf", ContentType: contentTypePDF, Data: data}, nil
}

// SparePartsCSV sparepart_export.csv; start/end filtran por created_at.
func (uc *ExportUseCase) SparePartsCSV(ctx context.Context, start, end string) (*ports.File, error) {
	from, err := dto.ParseDate(start, false)
	if err != nil {
		return nil, err
	}
	to, err := dto.ParseDate(end, true)
	if err != nil {
		return nil, err
	}
	parts, err := uc.partRepo.Search(ctx, repository.SparePartFilter{CreatedFrom: from, CreatedTo: to})
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := uc.exporter.SparePartsCSV(&buf, parts); err != nil {
		return nil, fmt.Errorf("generate csv: %w", err)
	}
	return &ports.File{Name: "sparepart_export.csv", ContentType: contentTypeCSV, Data: buf.Bytes()}, nil
}

// SparePartsXLSX sparepart_export.xlsx: una hoja por marca, filas agrupadas por categoría.
func (uc *ExportUseCase) SparePartsXLSX(ctx context.Context) (*ports.File, error) {
	parts, err := uc.partRepo.ListWithRelations(ctx)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := uc.exporter.SparePartsXLSX(&buf, GroupByBrand(parts)); err != nil {
		return nil, fmt.Errorf("generate excel: %w", err)
	}
	return &ports.File{Name: "sparepart_export.xlsx", ContentType: contentTypeXLSX, Data: buf.Bytes()}, nil
}

// GroupByBrand agrupa por marca y luego por categoría conservando el orden de aparición.
func GroupByBrand(parts []*entity.SparePartWithRelations) []ports.BrandSheet {
	brandOf := func(p *entity.SparePartWithRelations) string {
		return lo.Ternary(p.Brand != nil, p.BrandName(), noBrand)
	}
	categoryOf := func(p *entity.SparePartWithRelations) string {
		return lo.Ternary(p.Category != nil, p.CategoryName(), noCategory)
	}

	byBrand := lo.GroupBy(parts, brandOf)
	brands := lo.Uniq(lo.Map(parts, func(p *entity.SparePartWithRelations, _ int) string { return brandOf(p) }))

	sheets := make([]ports.BrandSheet, 0, len(brands))
	for _, brand := range brands {
		members := byBrand[brand]
		byCategory := lo.GroupBy(members, categoryOf)
		categories := lo.Uniq(lo.Map(members, func(p *entity.SparePartWithRelations, _ int) string { return categoryOf(p) }))

		sheet := ports.BrandSheet{Brand: brand}
		for _, cat := range categories {
			sheet.Groups = append(sheet.Groups, ports.CategoryGroup{
				Category: cat,
				Items: lo.Map(byCategory[cat], func(p *entity.SparePartWithRelations, _ int) *entity.SparePart {
					return &p.SparePart
				}),
			})
		}
		sheets = append(sheets, sheet)
	}
	return sheets
}

func (uc *ExportUseCase) transactionRows(ctx context.Context, in dto.TransactionExportRequest) ([]ports.TransactionRow, error) {
	f, err := baseFilter(in.Type, in.From, in.To)
	if err != nil {
		return nil, err
	}
	f.SortField = "tanggal"
	trx, err := uc.trxRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return lo.Map(trx, func(t *entity.TransactionWithRelations, _ int) ports.TransactionRow {
		row := ports.TransactionRow{
			ID:         t.ID,
			Type:       t.Type,
			Quantity:   t.Quantity,
			TotalPrice: t.TotalPrice,
			Date:       t.Date,
			Note:       t.Note,
		}
		if t.SparePart != nil {
			row.Item = t.SparePart.Name
		}
		return row
	}), nil
}
