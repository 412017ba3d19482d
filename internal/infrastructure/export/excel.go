package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Sparepart-api/internal/application/ports"
)

const (
	defaultSheet     = "Sheet1"
	transactionSheet = "Transaksi"
	maxSheetName     = 31
)

var sparePartColumns = []struct {
	header string
	width  float64
}{
	{"Kategori", 20},
	{"Nama Barang", 30},
	{"Stok", 10},
	{"Terjual", 10},
	{"Sisa", 10},
}

// TransactionsXLSX hoja "Transaksi" con las mismas columnas que el CSV.
// Sin filas el libro queda con la hoja vacía.
func (e *Exporter) TransactionsXLSX(w io.Writer, rows []ports.TransactionRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, transactionSheet); err != nil {
		return err
	}
	if len(rows) > 0 {
		header := make([]any, len(transactionHeader))
		for i, h := range transactionHeader {
			header[i] = h
		}
		if err := f.SetSheetRow(transactionSheet, "A1", &header); err != nil {
			return err
		}
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{r.ID, r.Item, r.Type, r.Quantity, r.TotalPrice.InexactFloat64(), r.Date.Format(time.RFC3339), r.Note}
		if err := f.SetSheetRow(transactionSheet, cell, &values); err != nil {
			return err
		}
	}
	return f.Write(w)
}

// SparePartsXLSX una hoja por marca; dentro, las filas agrupadas por categoría
// con una fila en blanco después de cada grupo.
func (e *Exporter) SparePartsXLSX(w io.Writer, sheets []ports.BrandSheet) error {
	f := excelize.NewFile()
	defer f.Close()

	if len(sheets) == 0 {
		sheets = []ports.BrandSheet{{Brand: "Sparepart"}}
	}
	used := map[string]bool{}
	for i, s := range sheets {
		name := uniqueSheetName(s.Brand, used)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("sheet %q: %w", name, err)
		}
		if err := writeBrandSheet(f, name, s); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func writeBrandSheet(f *excelize.File, name string, s ports.BrandSheet) error {
	header := make([]any, len(sparePartColumns))
	for i, c := range sparePartColumns {
		header[i] = c.header
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(name, colName, colName, c.width); err != nil {
			return err
		}
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}

	rowNo := 2
	for _, g := range s.Groups {
		for _, p := range g.Items {
			cell, err := excelize.CoordinatesToCellName(1, rowNo)
			if err != nil {
				return err
			}
			values := []any{g.Category, p.Name, p.OnHand, p.Sold, p.Remaining}
			if err := f.SetSheetRow(name, cell, &values); err != nil {
				return err
			}
			rowNo++
		}
		rowNo++ // fila en blanco entre categorías
	}
	return nil
}

// uniqueSheetName limpia los caracteres prohibidos por Excel, corta a 31 y evita repetidos.
func uniqueSheetName(brand string, used map[string]bool) string {
	clean := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, strings.Trim(strings.TrimSpace(brand), "'"))
	if clean == "" {
		clean = "Tanpa Merek"
	}
	name := truncateRunes(clean, maxSheetName)
	for n := 2; used[strings.ToLower(name)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		name = truncateRunes(clean, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
