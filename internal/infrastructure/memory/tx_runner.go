package memory

import (
	"context"
	"maps"
	"slices"

	"github.com/jhoicas/Sparepart-api/internal/application/inventory"
	"github.com/jhoicas/Sparepart-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta fn con el store bloqueado en escritura; si fn falla restaura
// repuestos y transacciones. Nadie más escribe mientras tanto, así que la copia
// previa coincide con el estado a restaurar.
type TxRunner struct{ s *Store }

// Run ejecuta fn con repositorios que no vuelven a tomar el lock del store.
// fn no debe usar otros repositorios del mismo store.
func (r *TxRunner) Run(_ context.Context, fn func(
	partRepo repository.SparePartRepository,
	trxRepo repository.TransactionRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	parts := maps.Clone(r.s.parts)
	trxs := maps.Clone(r.s.trxs)
	order := slices.Clone(r.s.trxOrder)

	err := fn(&SparePartRepo{s: r.s, tx: true}, &TransactionRepo{s: r.s, tx: true})
	if err != nil {
		r.s.parts, r.s.trxs, r.s.trxOrder = parts, trxs, order
	}
	return err
}
