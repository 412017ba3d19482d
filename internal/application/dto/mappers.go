package dto

import "github.com/jhoicas/Sparepart-api/internal/domain/entity"

// NewBrandResponse mapea entidad a salida.
func NewBrandResponse(b *entity.Brand) BrandResponse {
	r := BrandResponse{ID: b.ID, Name: b.Name}
	if !b.CreatedAt.IsZero() {
		t := b.CreatedAt
		r.CreatedAt = &t
	}
	return r
}

// NewCategoryResponse mapea entidad a salida.
func NewCategoryResponse(c *entity.Category) CategoryResponse {
	r := CategoryResponse{ID: c.ID, Name: c.Name}
	if !c.CreatedAt.IsZero() {
		t := c.CreatedAt
		r.CreatedAt = &t
	}
	return r
}

// NewSparePartResponse mapea un repuesto sin relaciones.
func NewSparePartResponse(p *entity.SparePart) SparePartResponse {
	return SparePartResponse{
		ID:         p.ID,
		Code:       p.Code,
		Name:       p.Name,
		BrandID:    p.BrandID,
		CategoryID: p.CategoryID,
		Source:     p.Source,
		OnHand:     p.OnHand,
		Sold:       p.Sold,
		Remaining:  p.Remaining,
		CostPrice:  p.CostPrice,
		SalePrice:  p.SalePrice,
		CreatedAt:  p.CreatedAt,
	}
}

// NewSparePartWithRelationsResponse incluye merek y kategori_barang si existen.
func NewSparePartWithRelationsResponse(p *entity.SparePartWithRelations) SparePartResponse {
	r := NewSparePartResponse(&p.SparePart)
	if p.Brand != nil {
		r.Merek = &BrandNameRef{Name: p.Brand.Name}
	}
	if p.Category != nil {
		r.Kategori = &CategoryNameRef{Name: p.Category.Name}
	}
	return r
}

// NewTransactionResponse mapea una transacción sin relaciones.
func NewTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		SparePartID: t.SparePartID,
		Type:        t.Type,
		Quantity:    t.Quantity,
		TotalPrice:  t.TotalPrice,
		Note:        t.Note,
		Date:        t.Date,
	}
}

// NewTransactionWithPartResponse añade sparepart{nama_barang, kategori}.
func NewTransactionWithPartResponse(t *entity.TransactionWithRelations) TransactionResponse {
	r := NewTransactionResponse(&t.Transaction)
	if t.SparePart != nil {
		ref := &TransactionPartRef{Name: t.SparePart.Name}
		if t.SparePart.Category != nil {
			name := t.SparePart.Category.Name
			ref.Kategori = &name
		}
		r.SparePart = ref
	}
	return r
}
