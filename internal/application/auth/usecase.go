package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/jhoicas/Sparepart-api/internal/application/dto"
	"github.com/jhoicas/Sparepart-api/internal/application/ports"
	"github.com/jhoicas/Sparepart-api/internal/domain"
	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
	"github.com/jhoicas/Sparepart-api/internal/domain/repository"
)

const minPasswordLen = 8

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthUseCase login, refresh y alta de administradores.
// Las credenciales viven en el proveedor de identidad; el rol y el estado en user_profiles.
type AuthUseCase struct {
	idp      ports.IdentityProvider
	profiles repository.UserProfileRepository
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(idp ports.IdentityProvider, profiles repository.UserProfileRepository) *AuthUseCase {
	return &AuthUseCase{idp: idp, profiles: profiles}
}

// Login autentica contra el proveedor y devuelve tokens + perfil.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: Email dan password wajib diisi.", domain.ErrInvalidInput)
	}
	ident, session, err := uc.idp.SignIn(ctx, strings.TrimSpace(in.Email), in.Password)
	if err != nil {
		return nil, err
	}
	return uc.authResponse(ctx, ident, session)
}

// Refresh renueva la sesión con el refresh token.
func (uc *AuthUseCase) Refresh(ctx context.Context, in dto.RefreshRequest) (*dto.AuthResponse, error) {
	if strings.TrimSpace(in.RefreshToken) == "" {
		return nil, fmt.Errorf("%w: Refresh token wajib diisi.", domain.ErrInvalidInput)
	}
	ident, session, err := uc.idp.RefreshSession(ctx, in.RefreshToken)
	if err != nil {
		return nil, err
	}
	return uc.authResponse(ctx, ident, session)
}

// AddAdmin registra un usuario en el proveedor y crea su perfil admin activo.
func (uc *AuthUseCase) AddAdmin(ctx context.Context, in dto.AddAdminRequest) (*dto.AddAdminResponse, error) {
	email := strings.TrimSpace(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || in.Password == "" || name == "" {
		return nil, fmt.Errorf("%w: Email, password, dan nama wajib diisi.", domain.ErrInvalidInput)
	}
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: Format email tidak valid.", domain.ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: Password minimal 8 karakter.", domain.ErrInvalidInput)
	}

	users, err := uc.idp.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("gagal cek email: %w", err)
	}
	if lo.ContainsBy(users, func(u *entity.Identity) bool { return strings.EqualFold(u.Email, email) }) {
		return nil, fmt.Errorf("%w: Email sudah terdaftar.", domain.ErrEmailAlreadyExists)
	}

	ident, err := uc.idp.SignUp(ctx, email, in.Password)
	if err != nil {
		return nil, err
	}
	profile := &entity.UserProfile{
		ID:        ident.ID,
		Name:      name,
		Role:      entity.RoleAdmin,
		Status:    entity.StatusActive,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	return &dto.AddAdminResponse{Message: "Admin berhasil ditambahkan", UserID: ident.ID}, nil
}

// Profile perfil del usuario autenticado.
func (uc *AuthUseCase) Profile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	p, err := uc.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: profil tidak ditemukan", domain.ErrNotFound)
	}
	return &dto.ProfileResponse{ID: p.ID, Name: p.Name, Role: p.Role, Status: p.Status}, nil
}

func (uc *AuthUseCase) authResponse(ctx context.Context, ident *entity.Identity, session *entity.Session) (*dto.AuthResponse, error) {
	if ident == nil || session == nil {
		return nil, errors.New("auth: respuesta vacía del proveedor de identidad")
	}
	p, err := uc.profiles.GetByID(ctx, ident.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: profil pengguna tidak ditemukan", domain.ErrForbidden)
	}
	if p.Status != entity.StatusActive {
		return nil, fmt.Errorf("%w: akun tidak aktif", domain.ErrForbidden)
	}
	return &dto.AuthResponse{
		User: dto.AuthUserResponse{
			ID:     ident.ID,
			Email:  ident.Email,
			Name:   p.Name,
			Role:   p.Role,
			Status: p.Status,
		},
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
	}, nil
}
