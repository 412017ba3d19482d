// Package stock concentra la reconciliación de contadores de un repuesto
// ante un movimiento de inventario. No tiene dependencias de infraestructura.
package stock

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Sparepart-api/internal/domain"
	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
)

// Movement tipo canónico de movimiento.
type Movement string

const (
	Receipt Movement = entity.TransactionReceipt // entra mercancía
	Sale    Movement = entity.TransactionSale    // sale mercancía
)

// aliases aceptados en la API; el valor persistido siempre es el canónico.
var aliases = map[string]Movement{
	"receipt":  Receipt,
	"inbound":  Receipt,
	"masuk":    Receipt,
	"sale":     Sale,
	"outbound": Sale,
	"keluar":   Sale,
}

// Levels los tres contadores independientes de un repuesto.
type Levels struct {
	OnHand    int64
	Sold      int64
	Remaining int64
}

// LevelsOf extrae los contadores de un repuesto.
func LevelsOf(p *entity.SparePart) Levels {
	return Levels{OnHand: p.OnHand, Sold: p.Sold, Remaining: p.Remaining}
}

// ParseMovement normaliza una etiqueta de tipo (insensible a mayúsculas).
func ParseMovement(label string) (Movement, error) {
	m, ok := aliases[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return "", fmt.Errorf("%w: tipe transaksi tidak valid: %q", domain.ErrInvalidInput, label)
	}
	return m, nil
}

// Apply calcula los contadores resultantes. qty debe ser > 0.
// Cada contador se recorta a 0 de forma independiente.
func Apply(l Levels, m Movement, qty int64) (Levels, error) {
	if qty <= 0 {
		return l, fmt.Errorf("%w: jumlah harus lebih dari 0", domain.ErrInvalidInput)
	}
	switch m {
	case Receipt:
		l.OnHand += qty
		l.Remaining += qty
	case Sale:
		l.OnHand = clamp(l.OnHand - qty)
		l.Sold += qty
		l.Remaining = clamp(l.Remaining - qty)
	default:
		return l, fmt.Errorf("%w: tipe transaksi tidak valid: %q", domain.ErrInvalidInput, m)
	}
	return l, nil
}

func clamp(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
