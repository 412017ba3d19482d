package ports

import (
	"context"

	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
)

// IdentityProvider puerto hacia el proveedor de identidad (Supabase GoTrue o local).
// Los errores de credenciales o token se devuelven envueltos en domain.ErrUnauthorized;
// las caídas del proveedor en domain.ErrUnavailable.
type IdentityProvider interface {
	VerifyToken(ctx context.Context, accessToken string) (*entity.Identity, error)
	SignIn(ctx context.Context, email, password string) (*entity.Identity, *entity.Session, error)
	// SignUp devuelve domain.ErrInvalidInput si el proveedor rechaza los datos.
	SignUp(ctx context.Context, email, password string) (*entity.Identity, error)
	RefreshSession(ctx context.Context, refreshToken string) (*entity.Identity, *entity.Session, error)
	// ListUsers operación administrativa.
	ListUsers(ctx context.Context) ([]*entity.Identity, error)
}
