// Package export serializa transacciones y repuestos a CSV, XLSX y PDF.
package export

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Sparepart-api/internal/application/ports"
)

var _ ports.Exporter = (*Exporter)(nil)

// Columnas de las exportaciones de transacciones (mismo orden en CSV y XLSX).
var transactionHeader = []string{"id_transaksi", "barang", "tipe", "jumlah", "harga_total", "tanggal", "keterangan"}

// Exporter implementa ports.Exporter.
type Exporter struct {
	loc *time.Location
}

// New construye el exportador; las fechas del PDF se muestran en loc (UTC si es nil).
func New(loc *time.Location) *Exporter {
	if loc == nil {
		loc = time.UTC
	}
	return &Exporter{loc: loc}
}

// formatRupiah "Rp 1.250.000" (separador de miles indonesio, sin decimales).
func formatRupiah(d decimal.Decimal) string {
	return message.NewPrinter(language.Indonesian).Sprintf("Rp %d", d.Round(0).IntPart())
}
