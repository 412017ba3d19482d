package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/Sparepart-api/internal/application/analytics"
	"github.com/jhoicas/Sparepart-api/internal/application/auth"
	"github.com/jhoicas/Sparepart-api/internal/application/inventory"
	"github.com/jhoicas/Sparepart-api/internal/application/ports"
	"github.com/jhoicas/Sparepart-api/internal/application/usecase"
	"github.com/jhoicas/Sparepart-api/internal/domain/repository"
	"github.com/jhoicas/Sparepart-api/internal/infrastructure/export"
	"github.com/jhoicas/Sparepart-api/internal/infrastructure/identity"
	"github.com/jhoicas/Sparepart-api/internal/infrastructure/memory"
	"github.com/jhoicas/Sparepart-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Sparepart-api/internal/interfaces/http"
	"github.com/jhoicas/Sparepart-api/pkg/config"
	"github.com/jhoicas/Sparepart-api/pkg/logger"
)

// repositories adaptadores de persistencia elegidos por DB_DRIVER.
type repositories struct {
	brands       repository.BrandRepository
	categories   repository.CategoryRepository
	parts        repository.SparePartRepository
	transactions repository.TransactionRepository
	profiles     repository.UserProfileRepository
	credentials  repository.CredentialRepository
	txRunner     inventory.TxRunner
	close        func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Str("identity", cfg.Identity.Provider).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer repos.close()

	var idp ports.IdentityProvider
	switch cfg.Identity.Provider {
	case config.IdentitySupabase:
		idp = identity.NewGoTrue(identity.GoTrueConfig{
			URL:            cfg.Identity.SupabaseURL,
			AnonKey:        cfg.Identity.AnonKey,
			ServiceRoleKey: cfg.Identity.ServiceRoleKey,
		})
	default:
		idp = identity.NewLocal(repos.credentials, identity.LocalConfig{
			Secret:            cfg.JWT.Secret,
			ExpMinutes:        cfg.JWT.Expiration,
			RefreshExpMinutes: cfg.JWT.RefreshExpiration,
			Issuer:            cfg.JWT.Issuer,
		})
	}

	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		loc = time.UTC
	}

	loginLimiter := httpRouter.NewRateLimiter(cfg.RateLimit.LoginPerSecond, cfg.RateLimit.LoginBurst)
	go loginLimiter.Cleanup(ctx)

	app := httpRouter.NewServer(httpRouter.ServerConfig{
		Name:        cfg.App.Name,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Docs:        cfg.App.Docs,
	}, httpRouter.RouterDeps{
		AuthUC:        auth.NewAuthUseCase(idp, repos.profiles),
		BrandUC:       usecase.NewBrandUseCase(repos.brands, repos.categories),
		CategoryUC:    usecase.NewCategoryUseCase(repos.categories, repos.brands),
		SparePartUC:   usecase.NewSparePartUseCase(repos.parts, repos.brands, repos.categories, repos.transactions, cfg.Inventory.LowStockThreshold),
		TransactionUC: usecase.NewTransactionUseCase(repos.transactions, repos.parts),
		ExportUC:      usecase.NewExportUseCase(repos.transactions, repos.parts, export.New(loc)),
		StockUC:       inventory.NewStockUseCase(repos.txRunner),
		StatsUC:       analytics.NewStatsUseCase(repos.brands, repos.categories, repos.parts),
		ReportUC:      analytics.NewReportUseCase(repos.transactions),
		Identity:      idp,
		Profiles:      repos.profiles,
		LoginLimiter:  loginLimiter,
	}, log)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openRepositories(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repositories, error) {
	if cfg.DB.Driver == config.DriverMemory {
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &repositories{
			brands:       s.Brands(),
			categories:   s.Categories(),
			parts:        s.SpareParts(),
			transactions: s.Transactions(),
			profiles:     s.Profiles(),
			credentials:  s.Credentials(),
			txRunner:     s.TxRunner(),
			close:        func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return &repositories{
		brands:       postgres.NewBrandRepository(pool),
		categories:   postgres.NewCategoryRepository(pool),
		parts:        postgres.NewSparePartRepository(pool),
		transactions: postgres.NewTransactionRepository(pool),
		profiles:     postgres.NewProfileRepository(pool),
		credentials:  postgres.NewCredentialRepository(pool),
		txRunner:     postgres.NewTxRunner(pool),
		close:        pool.Close,
	}, nil
}
