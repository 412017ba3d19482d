package usecase_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Sparepart-api/internal/application/dto"
	"github.com/jhoicas/Sparepart-api/internal/application/ports"
	"github.com/jhoicas/Sparepart-api/internal/application/usecase"
	"github.com/jhoicas/Sparepart-api/internal/domain"
	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
	"github.com/jhoicas/Sparepart-api/internal/domain/repository"
	"github.com/jhoicas/Sparepart-api/internal/infrastructure/memory"
)

func ptr[T any](v T) *T { return &v }

var day = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func seedStore(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Brands().Create(ctx, &entity.Brand{ID: "b1", Name: "Honda"}))
	require.NoError(t, s.Brands().Create(ctx, &entity.Brand{ID: "b2", Name: "Yamaha"}))
	require.NoError(t, s.Categories().Create(ctx, &entity.Category{ID: "c1", Name: "Oli"}))
	require.NoError(t, s.Categories().Create(ctx, &entity.Category{ID: "c2", Name: "Rem"}))
	require.NoError(t, s.Categories().Create(ctx, &entity.Category{ID: "c3", Name: "Busi"}))
	require.NoError(t, s.SpareParts().Create(ctx, &entity.SparePart{
		ID: "p1", Code: "OLI-1", Name: "Oli Mesin", BrandID: "b1", CategoryID: "c1",
		OnHand: 10, Remaining: 10, CreatedAt: day,
	}))
	require.NoError(t, s.SpareParts().Create(ctx, &entity.SparePart{
		ID: "p2", Code: "REM-1", Name: "Kampas Rem", BrandID: "b2", CategoryID: "c2",
		OnHand: 3, Remaining: 3, CreatedAt: day.AddDate(0, 0, 5),
	}))
	trx := []entity.Transaction{
		{ID: "t1", SparePartID: "p1", Type: entity.TransactionSale, Quantity: 2, TotalPrice: decimal.NewFromInt(100000), Note: "jual bengkel", Date: day},
		{ID: "t2", SparePartID: "p1", Type: entity.TransactionReceipt, Quantity: 5, TotalPrice: decimal.NewFromInt(40000), Note: "restock", Date: day.AddDate(0, 0, 1)},
		{ID: "t3", SparePartID: "p2", Type: entity.TransactionSale, Quantity: 1, TotalPrice: decimal.NewFromInt(25000), Note: "jual", Date: day.AddDate(0, 0, 2)},
	}
	for i := range trx {
		require.NoError(t, s.Transactions().Create(ctx, &trx[i]))
	}
	return s
}

// spyTransactions cuenta las llamadas a List/Count.
type spyTransactions struct {
	repository.TransactionRepository
	calls int
}

func (s *spyTransactions) List(ctx context.Context, f repository.TransactionFilter) ([]*entity.TransactionWithRelations, error) {
	s.calls++
	return s.TransactionRepository.List(ctx, f)
}

func (s *spyTransactions) Count(ctx context.Context, f repository.TransactionFilter) (int, error) {
	s.calls++
	return s.TransactionRepository.Count(ctx, f)
}

func TestSparePartCreate_DefaultsNumericFieldsToZero(t *testing.T) {
	s := seedStore(t)
	uc := usecase.NewSparePartUseCase(s.SpareParts(), s.Brands(), s.Categories(), s.Transactions(), 5)

	out, err := uc.Create(context.Background(), dto.CreateSparePartRequest{
		Code: gofakeit.LetterN(6), Name: "Busi Iridium", BrandID: "b1", CategoryID: "c3", Source: "supplier",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, []int64{0, 0, 0}, []int64{out.OnHand, out.Sold, out.Remaining})
	assert.True(t, out.CostPrice.IsZero())
	assert.True(t, out.SalePrice.IsZero())
}

func TestSparePartCreate_Validation(t *testing.T) {
	s := seedStore(t)
	uc := usecase.NewSparePartUseCase(s.SpareParts(), s.Brands(), s.Categories(), s.Transactions(), 5)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateSparePartRequest{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateSparePartRequest{Code: "A", Name: "x", BrandID: "nope", CategoryID: "c1", Source: "s"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateSparePartRequest{Code: "A", Name: "x", BrandID: "b1", CategoryID: "c1", Source: "s", OnHand: ptr(int64(-1))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateSparePartRequest{Code: "OLI-1", Name: "x", BrandID: "b1", CategoryID: "c1", Source: "s"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestSparePartUpdate_Partial(t *testing.T) {
	s := seedStore(t)
	uc := usecase.NewSparePartUseCase(s.SpareParts(), s.Brands(), s.Categories(), s.Transactions(), 5)
	ctx := context.Background()

	out, err := uc.Update(ctx, "p1", dto.UpdateSparePartRequest{SalePrice: ptr(decimal.NewFromInt(55000))})
	require.NoError(t, err)
	assert.Equal(t, "Oli Mesin", out.Name)
	assert.Equal(t, int64(10), out.OnHand)
	assert.True(t, decimal.NewFromInt(55000).Equal(out.SalePrice))

	_, err = uc.Update(ctx, "missing", dto.UpdateSparePartRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSparePartLowStockAndHistory(t *testing.T) {
	s := seedStore(t)
	uc := usecase.NewSparePartUseCase(s.SpareParts(), s.Brands(), s.Categories(), s.Transactions(), 5)
	ctx := context.Background()

	low, err := uc.LowStock(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), low.Threshold)
	require.Len(t, low.Items, 1)
	assert.Equal(t, "p2", low.Items[0].ID)

	hist, err := uc.History(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, "t2", hist[0].ID)
}

func TestSparePartDelete_WithTransactionsConflicts(t *testing.T) {
	s := seedStore(t)
	uc := usecase.NewSparePartUseCase(s.SpareParts(), s.Brands(), s.Categories(), s.Transactions(), 5)
	assert.ErrorIs(t, uc.Delete(context.Background(), "p1"), domain.ErrConflict)
}

func TestBrandUseCase_CRUD(t *testing.T) {
	s := seedStore(t)
	uc := usecase.NewBrandUseCase(s.Brands(), s.Categories())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.BrandRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	created, err := uc.Create(ctx, dto.BrandRequest{Name: "Astra"})
	require.NoError(t, err)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Astra", list[0].Name)

	_, err = uc.Update(ctx, "missing", dto.BrandRequest{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, uc.Delete(ctx, created.ID))
	assert.ErrorIs(t, uc.Delete(ctx, "b1"), domain.ErrConflict)

	cats, err := uc.Categories(ctx, "b2")
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Rem", cats[0].Name)
}

func TestTransactionList_EmptyCategoryShortCircuits(t *testing.T) {
	s := seedStore(t)
	spy := &spyTransactions{TransactionRepository: s.Transactions()}
	uc := usecase.NewTransactionUseCase(spy, s.SpareParts())

	out, err := uc.List(context.Background(), dto.TransactionListRequest{CategoryID: "c3"})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Total)
	assert.NotNil(t, out.Data)
	assert.Empty(t, out.Data)
	assert.Zero(t, spy.calls)
}

func TestTransactionList_FiltersSortAndPage(t *testing.T) {
	s := seedStore(t)
	uc := usecase.NewTransactionUseCase(s.Transactions(), s.SpareParts())
	ctx := context.Background()

	out, err := uc.List(ctx, dto.TransactionListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Total)
	assert.Equal(t, "t3", out.Data[0].ID)
	require.NotNil(t, out.Data[0].SparePart)
	assert.Equal(t, "Kampas Rem", out.Data[0].SparePart.Name)

	out, err = uc.List(ctx, dto.TransactionListRequest{Type: "keluar", Sort: `{"field":"jumlah","order":"asc"}`})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Total)
	assert.Equal(t, "t3", out.Data[0].ID)

	out, err = uc.List(ctx, dto.TransactionListRequest{CategoryID: "c1", Page: 2, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Total)
	require.Len(t, out.Data, 1)
	assert.Equal(t, "t1", out.Data[0].ID)

	// solo una fecha: el rango se ignora
	out, err = uc.List(ctx, dto.TransactionListRequest{From: "2030-01-01"})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Total)

	out, err = uc.List(ctx, dto.TransactionListRequest{From: "2025-03-10", To: "2025-03-11"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Total)

	out, err = uc.List(ctx, dto.TransactionListRequest{Sort: "{no-json"})
	require.NoError(t, err)
	assert.Equal(t, "t3", out.Data[0].ID)

	_, err = uc.List(ctx, dto.TransactionListRequest{Sort: `{"field":"password"}`})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.List(ctx, dto.TransactionListRequest{Type: "transfer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransactionUpdate_DoesNotTouchStock(t *testing.T) {
	s := seedStore(t)
	uc := usecase.NewTransactionUseCase(s.Transactions(), s.SpareParts())
	ctx := context.Background()

	out, err := uc.Update(ctx, "t1", dto.UpdateTransactionRequest{Quantity: ptr(int64(7)), Type: ptr("masuk")})
	require.NoError(t, err)
	assert.Equal(t, int64(7), out.Quantity)
	assert.Equal(t, entity.TransactionReceipt, out.Type)

	p, _ := s.SpareParts().GetByID(ctx, "p1")
	assert.Equal(t, int64(10), p.OnHand)

	_, err = uc.Update(ctx, "t1", dto.UpdateTransactionRequest{Quantity: ptr(int64(0))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Get(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, uc.Delete(ctx, "t3"))
	assert.ErrorIs(t, uc.Delete(ctx, "t3"), domain.ErrNotFound)
}

func TestTransactionSummary(t *testing.T) {
	s := seedStore(t)
	uc := usecase.NewTransactionUseCase(s.Transactions(), s.SpareParts())

	out, err := uc.Summary(context.Background(), dto.TransactionExportRequest{})
	require.NoError(t, err)
	assert.Equal(t, "all", out.Tipe)
	assert.True(t, decimal.NewFromInt(165000).Equal(out.Total))
	assert.True(t, decimal.NewFromInt(125000).Equal(out.TotalMasuk))
	assert.True(t, decimal.NewFromInt(40000).Equal(out.TotalKeluar))
	assert.True(t, decimal.NewFromInt(85000).Equal(out.Cashflow))

	out, err = uc.Summary(context.Background(), dto.TransactionExportRequest{Type: "sale"})
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionSale, out.Tipe)
	assert.True(t, decimal.NewFromInt(125000).Equal(out.Total))
}

// recordingExporter guarda lo que recibe y escribe un marcador.
type recordingExporter struct {
	rows   []ports.TransactionRow
	parts  []*entity.SparePart
	sheets []ports.BrandSheet
}

func (e *recordingExporter) TransactionsCSV(w io.Writer, rows []ports.TransactionRow) error {
	e.rows = rows
	_, err := io.WriteString(w, "csv")
	return err
}

func (e *recordingExporter) TransactionsXLSX(w io.Writer, rows []ports.TransactionRow) error {
	e.rows = rows
	_, err := io.WriteString(w, "xlsx")
	return err
}

func (e *recordingExporter) TransactionsPDF(_ context.Context, _ string, rows []ports.TransactionRow) ([]byte, error) {
	e.rows = rows
	return []byte("%PDF"), nil
}

func (e *recordingExporter) SparePartsCSV(w io.Writer, parts []*entity.SparePart) error {
	e.parts = parts
	_, err := io.WriteString(w, "csv")
	return err
}

func (e *recordingExporter) SparePartsXLSX(w io.Writer, sheets []ports.BrandSheet) error {
	e.sheets = sheets
	_, err := io.WriteString(w, "xlsx")
	return err
}

func TestExportTransactions(t *testing.T) {
	s := seedStore(t)
	exp := &recordingExporter{}
	uc := usecase.NewExportUseCase(s.Transactions(), s.SpareParts(), exp)
	ctx := context.Background()

	f, err := uc.TransactionsCSV(ctx, dto.TransactionExportRequest{Type: "sale"})
	require.NoError(t, err)
	assert.Equal(t, "transaksi.csv", f.Name)
	assert.Equal(t, "text/csv", f.ContentType)
	assert.Equal(t, "csv", string(f.Data))
	require.Len(t, exp.rows, 2)
	assert.Equal(t, "t3", exp.rows[0].ID)
	assert.Equal(t, "Kampas Rem", exp.rows[0].Item)

	f, err = uc.TransactionsXLSX(ctx, dto.TransactionExportRequest{})
	require.NoError(t, err)
	assert.Equal(t, "transaksi.xlsx", f.Name)
	assert.Len(t, exp.rows, 3)

	f, err = uc.TransactionsPDF(ctx, dto.TransactionExportRequest{})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", f.ContentType)
}

func TestExportSpareParts(t *testing.T) {
	s := seedStore(t)
	exp := &recordingExporter{}
	uc := usecase.NewExportUseCase(s.Transactions(), s.SpareParts(), exp)
	ctx := context.Background()

	f, err := uc.SparePartsCSV(ctx, "2025-03-01", "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "sparepart_export.csv", f.Name)
	require.Len(t, exp.parts, 1)
	assert.Equal(t, "p1", exp.parts[0].ID)

	_, err = uc.SparePartsCSV(ctx, "10/03/2025", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	f, err = uc.SparePartsXLSX(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sparepart_export.xlsx", f.Name)
	require.Len(t, exp.sheets, 2)
}

func TestGroupByBrand_MissingRelations(t *testing.T) {
	parts := []*entity.SparePartWithRelations{
		{SparePart: entity.SparePart{ID: "1"}, Brand: &entity.Brand{Name: "Honda"}, Category: &entity.Category{Name: "Oli"}},
		{SparePart: entity.SparePart{ID: "2"}},
		{SparePart: entity.SparePart{ID: "3"}, Brand: &entity.Brand{Name: "Honda"}},
		{SparePart: entity.SparePart{ID: "4"}, Brand: &entity.Brand{Name: "Honda"}, Category: &entity.Category{Name: "Oli"}},
	}

	sheets := usecase.GroupByBrand(parts)
	require.Len(t, sheets, 2)
	assert.Equal(t, "Honda", sheets[0].Brand)
	require.Len(t, sheets[0].Groups, 2)
	assert.Equal(t, "Oli", sheets[0].Groups[0].Category)
	assert.Len(t, sheets[0].Groups[0].Items, 2)
	assert.Equal(t, "Tanpa Kategori", sheets[0].Groups[1].Category)
	assert.Equal(t, "Tanpa Merek", sheets[1].Brand)
}
