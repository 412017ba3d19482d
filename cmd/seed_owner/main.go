// seed_owner crea la cuenta owner inicial: usuario en el proveedor de identidad y perfil en user_profiles.
//
// Uso: go run ./cmd/seed_owner -email owner@bengkel.id -password rahasia123 -name "Pemilik"
// Lee la misma configuración que la API (DATABASE_URL, IDENTITY_PROVIDER, JWT_SECRET, SUPABASE_*).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jhoicas/Sparepart-api/internal/application/ports"
	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
	"github.com/jhoicas/Sparepart-api/internal/infrastructure/identity"
	"github.com/jhoicas/Sparepart-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Sparepart-api/pkg/config"
)

func main() {
	email := flag.String("email", "", "email del owner")
	password := flag.String("password", "", "password (mínimo 8 caracteres)")
	name := flag.String("name", "Owner", "nombre visible")
	flag.Parse()

	if strings.TrimSpace(*email) == "" || len(*password) < 8 {
		fmt.Fprintln(os.Stderr, "email y password (>= 8 caracteres) son requeridos")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.DB.Driver != config.DriverPostgres {
		fmt.Fprintln(os.Stderr, "seed_owner requiere DB_DRIVER=postgres")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conectar PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(pool); err != nil {
			fmt.Fprintf(os.Stderr, "Migrar: %v\n", err)
			os.Exit(1)
		}
	}

	var idp ports.IdentityProvider
	if cfg.Identity.Provider == config.IdentitySupabase {
		idp = identity.NewGoTrue(identity.GoTrueConfig{
			URL:            cfg.Identity.SupabaseURL,
			AnonKey:        cfg.Identity.AnonKey,
			ServiceRoleKey: cfg.Identity.ServiceRoleKey,
		})
	} else {
		idp = identity.NewLocal(postgres.NewCredentialRepository(pool), identity.LocalConfig{
			Secret: cfg.JWT.Secret,
			Issuer: cfg.JWT.Issuer,
		})
	}

	ident, err := idp.SignUp(ctx, strings.TrimSpace(*email), *password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Registrar usuario: %v\n", err)
		os.Exit(1)
	}
	profile := &entity.UserProfile{
		ID:        ident.ID,
		Name:      strings.TrimSpace(*name),
		Role:      entity.RoleOwner,
		Status:    entity.StatusActive,
		CreatedAt: time.Now().UTC(),
	}
	if err := postgres.NewProfileRepository(pool).Create(ctx, profile); err != nil {
		fmt.Fprintf(os.Stderr, "Crear perfil: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Owner creado: %s (%s)\n", ident.Email, ident.ID)
}
