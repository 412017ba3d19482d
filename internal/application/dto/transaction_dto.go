package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransactionRequest entrada de POST /transaksi.
type CreateTransactionRequest struct {
	SparePartID string           `json:"id_sparepart"`
	Type        string           `json:"tipe"`
	Quantity    *int64           `json:"jumlah"`
	TotalPrice  *decimal.Decimal `json:"harga_total"`
	Note        string           `json:"keterangan"`
}

// UpdateTransactionRequest corrección administrativa; no toca los contadores del repuesto.
type UpdateTransactionRequest struct {
	Type       *string          `json:"tipe"`
	Quantity   *int64           `json:"jumlah"`
	TotalPrice *decimal.Decimal `json:"harga_total"`
	Note       *string          `json:"keterangan"`
}

// TransactionPartRef datos del repuesto embebidos en una transacción.
type TransactionPartRef struct {
	Name     string  `json:"nama_barang"`
	Kategori *string `json:"kategori,omitempty"`
}

// TransactionResponse salida de una transacción.
type TransactionResponse struct {
	ID          string              `json:"id_transaksi"`
	SparePartID string              `json:"id_sparepart"`
	Type        string              `json:"tipe"`
	Quantity    int64               `json:"jumlah"`
	TotalPrice  decimal.Decimal     `json:"harga_total"`
	Note        string              `json:"keterangan"`
	Date        time.Time           `json:"tanggal"`
	SparePart   *TransactionPartRef `json:"sparepart,omitempty"`
}

// TransactionListRequest filtros, orden y página de GET /transaksi.
// Sort es JSON: {"field":"tanggal","order":"asc"}.
type TransactionListRequest struct {
	Page        int    `query:"page"`
	Limit       int    `query:"limit"`
	Type        string `query:"tipe"`
	SparePartID string `query:"id_sparepart"`
	CategoryID  string `query:"kategori"`
	From        string `query:"tanggal_mulai"`
	To          string `query:"tanggal_selesai"`
	Search      string `query:"search"`
	Sort        string `query:"sort"`
}

// TransactionListResponse página de transacciones con total filtrado.
type TransactionListResponse struct {
	Data  []TransactionResponse `json:"data"`
	Total int                   `json:"total"`
}

// TransactionExportRequest filtros de exportación y ringkasan.
type TransactionExportRequest struct {
	Type string `query:"tipe"`
	From string `query:"tanggal_mulai"`
	To   string `query:"tanggal_selesai"`
}

// TransactionSummaryResponse salida de /transaksi/ringkasan.
// total_masuk = ventas (entra dinero), total_keluar = entradas de mercancía (sale dinero).
type TransactionSummaryResponse struct {
	Tipe        string          `json:"tipe"`
	Total       decimal.Decimal `json:"total_transaksi"`
	Cashflow    decimal.Decimal `json:"cashflow"`
	TotalMasuk  decimal.Decimal `json:"total_masuk"`
	TotalKeluar decimal.Decimal `json:"total_keluar"`
}
