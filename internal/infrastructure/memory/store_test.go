package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Sparepart-api/internal/domain"
	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
	"github.com/jhoicas/Sparepart-api/internal/domain/repository"
)

func seed(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.Brands().Create(ctx, &entity.Brand{ID: "b1", Name: "Yamaha"}))
	require.NoError(t, s.Brands().Create(ctx, &entity.Brand{ID: "b2", Name: "Honda"}))
	require.NoError(t, s.Categories().Create(ctx, &entity.Category{ID: "c1", Name: "Oli"}))
	require.NoError(t, s.SpareParts().Create(ctx, &entity.SparePart{ID: "p1", Code: "X1", Name: "Oli Mesin", BrandID: "b1", CategoryID: "c1", Remaining: 2}))
}

func TestBrandRepo_OrderedAndConflict(t *testing.T) {
	s := NewStore()
	seed(t, s)
	ctx := context.Background()

	list, err := s.Brands().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Honda", list[0].Name)

	assert.ErrorIs(t, s.Brands().Delete(ctx, "b1"), domain.ErrConflict)
	assert.NoError(t, s.Brands().Delete(ctx, "b2"))
	assert.ErrorIs(t, s.Brands().Delete(ctx, "b2"), domain.ErrNotFound)
}

func TestSparePartRepo_DuplicateCodeAndLowStock(t *testing.T) {
	s := NewStore()
	seed(t, s)
	ctx := context.Background()

	err := s.SpareParts().Create(ctx, &entity.SparePart{ID: "p2", Code: "X1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	threshold := int64(2)
	low, err := s.SpareParts().Search(ctx, repository.SparePartFilter{MaxRemaining: &threshold})
	require.NoError(t, err)
	assert.Len(t, low, 1)
}

func TestTransactionRepo_FilterSortPage(t *testing.T) {
	s := NewStore()
	seed(t, s)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, note := range []string{"servis", "jual oli", "restock"} {
		require.NoError(t, s.Transactions().Create(ctx, &entity.Transaction{
			ID: string(rune('a' + i)), SparePartID: "p1", Type: entity.TransactionSale,
			Quantity: int64(i + 1), Note: note, Date: base.AddDate(0, 0, i),
		}))
	}

	rows, err := s.Transactions().List(ctx, repository.TransactionFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "c", rows[0].ID) // tanggal desc por defecto
	assert.Equal(t, "Oli", rows[0].SparePart.Category.Name)

	rows, err = s.Transactions().List(ctx, repository.TransactionFilter{SortField: "jumlah", SortAsc: true, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, []string{rows[0].ID, rows[1].ID})

	n, err := s.Transactions().Count(ctx, repository.TransactionFilter{Search: "OLI"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.Transactions().Count(ctx, repository.TransactionFilter{SparePartIDs: []string{}})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTxRunner_RollsBackOnError(t *testing.T) {
	s := NewStore()
	seed(t, s)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.TxRunner().Run(ctx, func(parts repository.SparePartRepository, trxs repository.TransactionRepository) error {
		require.NoError(t, trxs.Create(ctx, &entity.Transaction{ID: "t1", SparePartID: "p1"}))
		require.NoError(t, parts.UpdateStock(ctx, "p1", 99, 99, 99))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, _ := s.SpareParts().GetByID(ctx, "p1")
	assert.Equal(t, int64(2), p.Remaining)
	n, _ := s.Transactions().Count(ctx, repository.TransactionFilter{})
	assert.Zero(t, n)
}

func TestTxRunner_FailedRunKeepsConcurrentWrites(t *testing.T) {
	s := NewStore()
	seed(t, s)
	ctx := context.Background()
	const n = 500

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			_ = s.TxRunner().Run(ctx, func(parts repository.SparePartRepository, _ repository.TransactionRepository) error {
				p, err := parts.GetForUpdate(ctx, "tidak-ada")
				if err != nil {
					return err
				}
				if p == nil {
					return domain.ErrNotFound
				}
				return nil
			})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			err := s.SpareParts().Create(ctx, &entity.SparePart{ID: fmt.Sprintf("q%d", i), Code: fmt.Sprintf("Q%d", i), BrandID: "b1", CategoryID: "c1"})
			assert.NoError(t, err)
		}
	}()
	wg.Wait()

	all, err := s.SpareParts().List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, n+1)
}
