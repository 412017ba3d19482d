package dto

// ReportRequest filtros de /laporan/statistik.
type ReportRequest struct {
	CategoryID  string `query:"kategori"`
	BrandID     string `query:"merek"`
	SparePartID string `query:"barang"`
	From        string `query:"tanggal_mulai"`
	To          string `query:"tanggal_selesai"`
}

// ChartDataset serie para Chart.js.
type ChartDataset struct {
	Label           string `json:"label,omitempty"`
	Data            []int  `json:"data"`
	BackgroundColor any    `json:"backgroundColor"`
}

// ChartData labels + datasets paralelos.
type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// ReportResponse salida de /laporan/statistik.
type ReportResponse struct {
	Kategori ChartData `json:"kategori"`
	Merek    ChartData `json:"merek"`
	Barang   ChartData `json:"barang"`
	Analisis []string  `json:"analisis"`
}
