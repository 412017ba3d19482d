package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/Sparepart-api/internal/application/dto"
	"github.com/jhoicas/Sparepart-api/internal/application/inventory"
	"github.com/jhoicas/Sparepart-api/internal/domain"
	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
	"github.com/jhoicas/Sparepart-api/internal/domain/repository"
	"github.com/jhoicas/Sparepart-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Sparepart-api/pkg/config"
)

const pgImage = "postgres:17.0-alpine3.20"

// startPostgres levanta un contenedor, abre el pool con NewPool y aplica Migrate.
// Se omite con -short o si no hay Docker disponible.
func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("integración con Postgres omitida en -short")
	}
	tc.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx, pgImage,
		tcpostgres.WithDatabase("sparepart"),
		tcpostgres.WithUsername("sparepart"),
		tcpostgres.WithPassword("rahasia"),
		tc.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctr.Terminate(context.Background()) })

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	var pool *pgxpool.Pool
	require.Eventually(t, func() bool {
		pool, err = postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, Pool: config.PoolConfig{MaxConns: 16}})
		return err == nil
	}, 15*time.Second, 200*time.Millisecond)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(pool))
	return pool
}

func seedSparePart(t *testing.T, pool *pgxpool.Pool, stock int64) *entity.SparePart {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	brand := &entity.Brand{ID: uuid.NewString(), Name: gofakeit.Company(), CreatedAt: now}
	require.NoError(t, postgres.NewBrandRepository(pool).Create(ctx, brand))
	cat := &entity.Category{ID: uuid.NewString(), Name: gofakeit.Word(), CreatedAt: now}
	require.NoError(t, postgres.NewCategoryRepository(pool).Create(ctx, cat))

	part := &entity.SparePart{
		ID:         uuid.NewString(),
		Code:       gofakeit.Regex("SP-[A-Z]{3}[0-9]{5}"),
		Name:       gofakeit.ProductName(),
		BrandID:    brand.ID,
		CategoryID: cat.ID,
		OnHand:     stock,
		Remaining:  stock,
		CostPrice:  decimal.NewFromInt(25000),
		SalePrice:  decimal.NewFromInt(40000),
		CreatedAt:  now,
	}
	require.NoError(t, postgres.NewSparePartRepository(pool).Create(ctx, part))
	return part
}

func countTransactions(t *testing.T, pool *pgxpool.Pool) int {
	t.Helper()
	var n int
	require.NoError(t, pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM transaksi`).Scan(&n))
	return n
}

func posting(partID, tipe string, qty int64) dto.CreateTransactionRequest {
	price := decimal.NewFromInt(10000 * qty)
	return dto.CreateTransactionRequest{SparePartID: partID, Type: tipe, Quantity: &qty, TotalPrice: &price}
}

func TestPostgres(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()
	stock := inventory.NewStockUseCase(postgres.NewTxRunner(pool))

	t.Run("migrate es idempotente", func(t *testing.T) {
		require.NoError(t, postgres.Migrate(pool))

		var table *string
		require.NoError(t, pool.QueryRow(ctx, `SELECT to_regclass('public.transaksi')::text`).Scan(&table))
		require.NotNil(t, table)
		assert.Equal(t, "transaksi", *table)
	})

	t.Run("postings concurrentes no pierden actualizaciones", func(t *testing.T) {
		part := seedSparePart(t, pool, 50)
		before := countTransactions(t, pool)

		const n = 20
		var wg sync.WaitGroup
		errs := make(chan error, 2*n)
		for i := 0; i < n; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_, err := stock.PostTransaction(ctx, posting(part.ID, "receipt", 1))
				errs <- err
			}()
			go func() {
				defer wg.Done()
				_, err := stock.PostTransaction(ctx, posting(part.ID, "keluar", 1))
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		got, err := postgres.NewSparePartRepository(pool).GetByID(ctx, part.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, int64(50), got.OnHand)
		assert.Equal(t, int64(n), got.Sold)
		assert.Equal(t, int64(50), got.Remaining)
		assert.Equal(t, before+2*n, countTransactions(t, pool))
	})

	t.Run("repuesto inexistente no deja transaksi", func(t *testing.T) {
		before := countTransactions(t, pool)

		for _, id := range []string{uuid.NewString(), "bukan-uuid"} {
			_, err := stock.PostTransaction(ctx, posting(id, "sale", 2))
			assert.ErrorIs(t, err, domain.ErrNotFound, id)
		}
		assert.Equal(t, before, countTransactions(t, pool))
	})

	t.Run("error dentro de Run hace rollback", func(t *testing.T) {
		part := seedSparePart(t, pool, 5)
		before := countTransactions(t, pool)
		boom := errors.New("boom")

		err := postgres.NewTxRunner(pool).Run(ctx, func(parts repository.SparePartRepository, trxs repository.TransactionRepository) error {
			require.NoError(t, trxs.Create(ctx, &entity.Transaction{
				ID: uuid.NewString(), SparePartID: part.ID, Type: entity.TransactionSale,
				Quantity: 1, TotalPrice: decimal.NewFromInt(1000), Date: time.Now().UTC(),
			}))
			require.NoError(t, parts.UpdateStock(ctx, part.ID, 0, 5, 0))
			return boom
		})
		assert.ErrorIs(t, err, boom)

		got, err := postgres.NewSparePartRepository(pool).GetByID(ctx, part.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(5), got.Remaining)
		assert.Equal(t, before, countTransactions(t, pool))
	})

	t.Run("lectura con relaciones e ids malformados", func(t *testing.T) {
		part := seedSparePart(t, pool, 3)
		res, err := stock.PostTransaction(ctx, posting(part.ID, "sale", 1))
		require.NoError(t, err)

		trxRepo := postgres.NewTransactionRepository(pool)
		got, err := trxRepo.GetByID(ctx, res.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, entity.TransactionSale, got.Type)
		require.NotNil(t, got.SparePart)
		assert.Equal(t, part.Code, got.SparePart.Code)
		assert.NotEmpty(t, got.SparePart.BrandName())
		assert.NotEmpty(t, got.SparePart.CategoryName())

		missing, err := trxRepo.GetByID(ctx, "bukan-uuid")
		assert.NoError(t, err)
		assert.Nil(t, missing)

		_, err = trxRepo.List(ctx, repository.TransactionFilter{SparePartID: "bukan-uuid"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		assert.ErrorIs(t, trxRepo.Delete(ctx, "bukan-uuid"), domain.ErrNotFound)
		assert.ErrorIs(t, postgres.NewSparePartRepository(pool).Delete(ctx, part.ID), domain.ErrConflict)
	})
}
