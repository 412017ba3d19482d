// Package report agrega transacciones y repuestos para estadísticas y gráficos.
// Todo es puro: recibe colecciones ya cargadas y no toca la base de datos.
package report

import (
	"fmt"

	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
)

// Placeholder etiqueta usada cuando falta la relación.
const Placeholder = "-"

// NoTransactionsMessage único análisis emitido cuando el filtro no deja filas.
const NoTransactionsMessage = "Tidak ada transaksi pada filter ini."

// Filter filtros exactos aplicados antes de agregar. Vacío = sin filtro.
type Filter struct {
	CategoryID  string
	BrandID     string
	SparePartID string
}

func (f Filter) match(t *entity.TransactionWithRelations) bool {
	if f.CategoryID != "" && (t.SparePart == nil || t.SparePart.CategoryID != f.CategoryID) {
		return false
	}
	if f.BrandID != "" && (t.SparePart == nil || t.SparePart.BrandID != f.BrandID) {
		return false
	}
	if f.SparePartID != "" && t.SparePartID != f.SparePartID {
		return false
	}
	return true
}

// Tally conteo por etiqueta en orden de primera aparición.
type Tally struct {
	Labels []string
	Counts []int
	index  map[string]int
}

func newTally() Tally {
	return Tally{Labels: []string{}, Counts: []int{}, index: map[string]int{}}
}

func (t *Tally) add(label string) {
	if label == "" {
		label = Placeholder
	}
	i, ok := t.index[label]
	if !ok {
		i = len(t.Labels)
		t.index[label] = i
		t.Labels = append(t.Labels, label)
		t.Counts = append(t.Counts, 0)
	}
	t.Counts[i]++
}

// Top devuelve la etiqueta con más filas; en empate gana la primera en aparecer.
func (t Tally) Top() (string, int, bool) {
	best := -1
	for i, c := range t.Counts {
		if best < 0 || c > t.Counts[best] {
			best = i
		}
	}
	if best < 0 {
		return "", 0, false
	}
	return t.Labels[best], t.Counts[best], true
}

// TransactionReport resultado de BuildTransactionReport.
type TransactionReport struct {
	Category Tally
	Brand    Tally
	Item     Tally
	Total    int
	Analysis []string
}

// BuildTransactionReport cuenta transacciones (filas, no cantidades) por categoría,
// marca y repuesto, y arma el análisis textual.
func BuildTransactionReport(rows []*entity.TransactionWithRelations, f Filter) TransactionReport {
	rep := TransactionReport{Category: newTally(), Brand: newTally(), Item: newTally()}
	for _, t := range rows {
		if t == nil || !f.match(t) {
			continue
		}
		rep.Total++
		var cat, brand, item string
		if t.SparePart != nil {
			cat = t.SparePart.CategoryName()
			brand = t.SparePart.BrandName()
			item = t.SparePart.Name
		}
		rep.Category.add(cat)
		rep.Brand.add(brand)
		rep.Item.add(item)
	}
	rep.Analysis = analyse(rep)
	return rep
}

func analyse(rep TransactionReport) []string {
	if rep.Total == 0 {
		return []string{NoTransactionsMessage}
	}
	lines := make([]string, 0, 4)
	if label, n, ok := rep.Category.Top(); ok {
		lines = append(lines, fmt.Sprintf("Kategori paling banyak transaksi: %s (%d transaksi)", label, n))
	}
	if label, n, ok := rep.Brand.Top(); ok {
		lines = append(lines, fmt.Sprintf("Merek paling banyak transaksi: %s (%d transaksi)", label, n))
	}
	if label, n, ok := rep.Item.Top(); ok {
		lines = append(lines, fmt.Sprintf("Barang paling banyak transaksi: %s (%d transaksi)", label, n))
	}
	lines = append(lines, fmt.Sprintf("Total transaksi: %d", rep.Total))
	return lines
}
