// Package memory implementa todos los repositorios en memoria.
// Se usa en tests y con DB_DRIVER=memory; los datos se pierden al reiniciar.
package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
)

// Store contiene las tablas. mu protege los mapas; TxRunner lo mantiene tomado
// durante toda la transacción.
type Store struct {
	mu sync.RWMutex

	brands      map[string]entity.Brand
	categories  map[string]entity.Category
	parts       map[string]entity.SparePart
	trxs        map[string]entity.Transaction
	trxOrder    []string
	profiles    map[string]entity.UserProfile
	credentials map[string]entity.Credential
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		brands:      map[string]entity.Brand{},
		categories:  map[string]entity.Category{},
		parts:       map[string]entity.SparePart{},
		trxs:        map[string]entity.Transaction{},
		profiles:    map[string]entity.UserProfile{},
		credentials: map[string]entity.Credential{},
	}
}

// Brands repositorio de marcas.
func (s *Store) Brands() *BrandRepo { return &BrandRepo{s: s} }

// Categories repositorio de categorías.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }

// SpareParts repositorio de repuestos.
func (s *Store) SpareParts() *SparePartRepo { return &SparePartRepo{s: s} }

// Transactions repositorio de transacciones.
func (s *Store) Transactions() *TransactionRepo { return &TransactionRepo{s: s} }

// Profiles repositorio de perfiles.
func (s *Store) Profiles() *ProfileRepo { return &ProfileRepo{s: s} }

// Credentials repositorio de credenciales locales.
func (s *Store) Credentials() *CredentialRepo { return &CredentialRepo{s: s} }

// TxRunner runner transaccional sobre este store.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

func (s *Store) lockUnless(held bool) func() {
	if held {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) rlockUnless(held bool) func() {
	if held {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func sortByName[T any](items []T, name func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(name(items[i])) < strings.ToLower(name(items[j]))
	})
}
