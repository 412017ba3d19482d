package report

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
)

// Totals sumas de contadores sobre un conjunto de repuestos.
type Totals struct {
	Parts     int
	OnHand    int64
	Sold      int64
	Remaining int64
}

func totalsOf(parts []*entity.SparePart) Totals {
	return Totals{
		Parts:     len(parts),
		OnHand:    lo.SumBy(parts, func(p *entity.SparePart) int64 { return p.OnHand }),
		Sold:      lo.SumBy(parts, func(p *entity.SparePart) int64 { return p.Sold }),
		Remaining: lo.SumBy(parts, func(p *entity.SparePart) int64 { return p.Remaining }),
	}
}

// CategoryStat totales de una categoría.
type CategoryStat struct {
	Category *entity.Category
	Totals
}

// CategoryCount repuestos de una marca dentro de una categoría.
type CategoryCount struct {
	Category *entity.Category
	Parts    int
}

// BrandStat totales de una marca con desglose por categoría.
type BrandStat struct {
	Brand *entity.Brand
	Totals
	Breakdown []CategoryCount
}

// CategoryStats una fila por categoría (incluidas las que no tienen repuestos).
func CategoryStats(categories []*entity.Category, parts []*entity.SparePart) []CategoryStat {
	byCategory := lo.GroupBy(parts, func(p *entity.SparePart) string { return p.CategoryID })
	out := make([]CategoryStat, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryStat{Category: c, Totals: totalsOf(byCategory[c.ID])})
	}
	return out
}

// BrandStats una fila por marca; Breakdown lista todas las categorías, con ceros.
func BrandStats(brands []*entity.Brand, categories []*entity.Category, parts []*entity.SparePart) []BrandStat {
	byBrand := lo.GroupBy(parts, func(p *entity.SparePart) string { return p.BrandID })
	out := make([]BrandStat, 0, len(brands))
	for _, b := range brands {
		own := byBrand[b.ID]
		perCategory := lo.CountValuesBy(own, func(p *entity.SparePart) string { return p.CategoryID })
		breakdown := make([]CategoryCount, 0, len(categories))
		for _, c := range categories {
			breakdown = append(breakdown, CategoryCount{Category: c, Parts: perCategory[c.ID]})
		}
		out = append(out, BrandStat{Brand: b, Totals: totalsOf(own), Breakdown: breakdown})
	}
	return out
}

// InventoryTotals resumen global de inventario.
type InventoryTotals struct {
	Totals
	CostValue decimal.Decimal // Σ jumlah × harga_modal
	SaleValue decimal.Decimal // Σ terjual × harga_jual
}

// SparePartTotals resumen de /sparepart/statistik.
func SparePartTotals(parts []*entity.SparePart) InventoryTotals {
	t := InventoryTotals{Totals: totalsOf(parts), CostValue: decimal.Zero, SaleValue: decimal.Zero}
	for _, p := range parts {
		t.CostValue = t.CostValue.Add(p.CostPrice.Mul(decimal.NewFromInt(p.OnHand)))
		t.SaleValue = t.SaleValue.Add(p.SalePrice.Mul(decimal.NewFromInt(p.Sold)))
	}
	return t
}

// CashSummary totales monetarios de /transaksi/ringkasan.
// CashIn suma las ventas, CashOut las entradas de mercancía.
type CashSummary struct {
	Total    decimal.Decimal
	CashIn   decimal.Decimal
	CashOut  decimal.Decimal
	Cashflow decimal.Decimal
}

// Summarize suma harga_total por dirección de caja.
func Summarize(rows []*entity.Transaction) CashSummary {
	s := CashSummary{Total: decimal.Zero, CashIn: decimal.Zero, CashOut: decimal.Zero}
	for _, t := range rows {
		s.Total = s.Total.Add(t.TotalPrice)
		switch t.Type {
		case entity.TransactionSale:
			s.CashIn = s.CashIn.Add(t.TotalPrice)
		case entity.TransactionReceipt:
			s.CashOut = s.CashOut.Add(t.TotalPrice)
		}
	}
	s.Cashflow = s.CashIn.Sub(s.CashOut)
	return s
}
