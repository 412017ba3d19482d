package export

// Layout del reporte A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Tanggal | Barang | Tipe | Jumlah | Harga Total       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Masuk (penjualan) / Keluar (pembelian) / Total     │
//	└─────────────────────────────────────────────────────────────┘

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Sparepart-api/internal/application/ports"
	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 37, Green: 99, Blue: 235}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// TransactionsPDF genera el listado de transacciones y devuelve sus bytes.
func (e *Exporter) TransactionsPDF(_ context.Context, title string, rows []ports.TransactionRow) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, time.Now().In(e.loc)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Tidak ada transaksi.", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}
	m.AddRows(e.tableDetailRows(rows)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Dicetak: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Tanggal", 2, align.Left),
		h("Barang", 4, align.Left),
		h("Tipe", 2, align.Center),
		h("Jumlah", 1, align.Right),
		h("Harga Total", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func (e *Exporter) tableDetailRows(rows []ports.TransactionRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(r.Date.In(e.loc).Format("02/01/2006"),
				props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(nonEmpty(r.Item, "-"),
				props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(typeLabel(r.Type),
				props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", r.Quantity),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(formatRupiah(r.TotalPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRow: ventas (entra dinero), compras (sale dinero) y total.
func totalsRow(rows []ports.TransactionRow) core.Row {
	in, out, all := decimal.Zero, decimal.Zero, decimal.Zero
	for _, r := range rows {
		all = all.Add(r.TotalPrice)
		switch r.Type {
		case entity.TransactionSale:
			in = in.Add(r.TotalPrice)
		case entity.TransactionReceipt:
			out = out.Add(r.TotalPrice)
		}
	}
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Total masuk:", 1),
			label("Total keluar:", 7),
			label("Total transaksi:", 13),
		),
		col.New(3).Add(
			value(formatRupiah(in), 1),
			value(formatRupiah(out), 7),
			text.New(formatRupiah(all), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 13,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func typeLabel(t string) string {
	switch t {
	case entity.TransactionSale:
		return "Penjualan"
	case entity.TransactionReceipt:
		return "Pembelian"
	}
	return t
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
