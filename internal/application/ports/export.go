package ports

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
)

// TransactionRow fila plana de transacción para exportar.
type TransactionRow struct {
	ID         string
	Item       string // nama_barang, "" si no hay repuesto
	Type       string
	Quantity   int64
	TotalPrice decimal.Decimal
	Date       time.Time
	Note       string
}

// CategoryGroup repuestos de una categoría dentro de la hoja de una marca.
type CategoryGroup struct {
	Category string
	Items    []*entity.SparePart
}

// BrandSheet una hoja del libro de repuestos.
type BrandSheet struct {
	Brand  string
	Groups []CategoryGroup
}

// Exporter serializa listados a CSV, XLSX y PDF.
type Exporter interface {
	TransactionsCSV(w io.Writer, rows []TransactionRow) error
	TransactionsXLSX(w io.Writer, rows []TransactionRow) error
	TransactionsPDF(ctx context.Context, title string, rows []TransactionRow) ([]byte, error)
	SparePartsCSV(w io.Writer, parts []*entity.SparePart) error
	SparePartsXLSX(w io.Writer, sheets []BrandSheet) error
}

// File archivo listo para enviar como adjunto.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}
