package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Sparepart-api/internal/application/analytics"
	"github.com/jhoicas/Sparepart-api/internal/application/auth"
	"github.com/jhoicas/Sparepart-api/internal/application/inventory"
	"github.com/jhoicas/Sparepart-api/internal/application/ports"
	"github.com/jhoicas/Sparepart-api/internal/application/usecase"
	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
	"github.com/jhoicas/Sparepart-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	BrandUC       *usecase.BrandUseCase
	CategoryUC    *usecase.CategoryUseCase
	SparePartUC   *usecase.SparePartUseCase
	TransactionUC *usecase.TransactionUseCase
	ExportUC      *usecase.ExportUseCase
	StockUC       *inventory.StockUseCase
	StatsUC       *analytics.StatsUseCase
	ReportUC      *analytics.ReportUseCase
	Identity      ports.IdentityProvider
	Profiles      repository.UserProfileRepository
	LoginLimiter  *RateLimiter // nil = sin límite
}

// Router registra las rutas de la API (paths del API original, sin prefijo).
func Router(app *fiber.App, deps RouterDeps) {
	authMW := AuthMiddleware(deps.Identity)
	writers := RequireRole(deps.Profiles, entity.RoleOwner, entity.RoleAdmin)
	ownerOnly := RequireRole(deps.Profiles, entity.RoleOwner)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := app.Group("/auth")
	if deps.LoginLimiter != nil {
		authGroup.Post("/login", deps.LoginLimiter.Handler(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/add-admin", authMW, ownerOnly, authHandler.AddAdmin)
	authGroup.Get("/me", authMW, authHandler.Me)

	// Merek
	brandHandler := NewBrandHandler(deps.BrandUC, deps.StatsUC)
	merek := app.Group("/merek", authMW)
	merek.Get("/statistik", brandHandler.Statistics)
	merek.Get("/statistik-penjualan", brandHandler.SalesStatistics)
	merek.Get("/search", brandHandler.Search)
	merek.Get("/", brandHandler.List)
	merek.Post("/", writers, brandHandler.Create)
	merek.Get("/:id/kategori-barang", brandHandler.Categories)
	merek.Put("/:id", writers, brandHandler.Update)
	merek.Delete("/:id", writers, brandHandler.Delete)

	// Kategori barang
	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.StatsUC)
	kategori := app.Group("/kategori-barang", authMW)
	kategori.Get("/statistik", categoryHandler.Statistics)
	kategori.Get("/statistik-penjualan", categoryHandler.Statistics)
	kategori.Get("/search", categoryHandler.Search)
	kategori.Get("/", categoryHandler.List)
	kategori.Post("/", writers, categoryHandler.Create)
	kategori.Get("/:id/merek", categoryHandler.Brands)
	kategori.Put("/:id", writers, categoryHandler.Update)
	kategori.Delete("/:id", writers, categoryHandler.Delete)

	// Sparepart
	partHandler := NewSparePartHandler(deps.SparePartUC, deps.StockUC, deps.StatsUC, deps.ExportUC)
	sparepart := app.Group("/sparepart", authMW)
	sparepart.Get("/statistik", partHandler.Statistics)
	sparepart.Get("/search", partHandler.Search)
	sparepart.Get("/stok-rendah", partHandler.LowStock)
	sparepart.Get("/export-excel", partHandler.ExportExcel)
	sparepart.Get("/export-csv", partHandler.ExportCSV)
	sparepart.Post("/update-by-transaksi", writers, partHandler.AdjustStock)
	sparepart.Get("/", partHandler.List)
	sparepart.Post("/", writers, partHandler.Create)
	sparepart.Get("/:id/riwayat-transaksi", partHandler.History)
	sparepart.Put("/:id", writers, partHandler.Update)
	sparepart.Delete("/:id", writers, partHandler.Delete)

	// Transaksi
	trxHandler := NewTransactionHandler(deps.TransactionUC, deps.StockUC, deps.ExportUC)
	transaksi := app.Group("/transaksi", authMW)
	transaksi.Get("/ringkasan", trxHandler.Summary)
	transaksi.Get("/export/csv", trxHandler.ExportCSV)
	transaksi.Get("/export/excel", trxHandler.ExportExcel)
	transaksi.Get("/export/pdf", trxHandler.ExportPDF)
	transaksi.Get("/", trxHandler.List)
	transaksi.Post("/", writers, trxHandler.Create)
	transaksi.Get("/:id", trxHandler.Get)
	transaksi.Put("/:id", writers, trxHandler.Update)
	transaksi.Delete("/:id", writers, trxHandler.Delete)

	// Laporan (público)
	reportHandler := NewReportHandler(deps.ReportUC)
	app.Get("/laporan/statistik", reportHandler.Statistics)
}
