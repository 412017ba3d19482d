package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/jhoicas/Sparepart-api/internal/application/ports"
	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
)

var sparePartHeader = []string{
	"id_sparepart", "kode_barang", "nama_barang", "id_merek", "id_kategori_barang", "sumber",
	"jumlah", "terjual", "sisa", "harga_modal", "harga_jual", "created_at",
}

// TransactionsCSV escribe la cabecera y una fila por transacción.
func (e *Exporter) TransactionsCSV(w io.Writer, rows []ports.TransactionRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(transactionHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{
			r.ID,
			r.Item,
			r.Type,
			strconv.FormatInt(r.Quantity, 10),
			r.TotalPrice.String(),
			r.Date.Format(time.RFC3339),
			r.Note,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SparePartsCSV todas las columnas de sparepart.
func (e *Exporter) SparePartsCSV(w io.Writer, parts []*entity.SparePart) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(sparePartHeader); err != nil {
		return err
	}
	for _, p := range parts {
		if err := cw.Write([]string{
			p.ID,
			p.Code,
			p.Name,
			p.BrandID,
			p.CategoryID,
			p.Source,
			strconv.FormatInt(p.OnHand, 10),
			strconv.FormatInt(p.Sold, 10),
			strconv.FormatInt(p.Remaining, 10),
			p.CostPrice.String(),
			p.SalePrice.String(),
			p.CreatedAt.Format(time.RFC3339),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
