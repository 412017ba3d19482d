// Package identity implementa ports.IdentityProvider: GoTrue de Supabase
// por HTTP o un proveedor local con JWT propios y hashes bcrypt.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Sparepart-api/internal/application/ports"
	"github.com/jhoicas/Sparepart-api/internal/domain"
	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
	"github.com/jhoicas/Sparepart-api/internal/domain/repository"
	"github.com/jhoicas/Sparepart-api/pkg/jwt"
)

var _ ports.IdentityProvider = (*Local)(nil)

// LocalConfig configuración de tokens del proveedor local.
type LocalConfig struct {
	Secret            string
	ExpMinutes        int
	RefreshExpMinutes int
	Issuer            string
}

// Local proveedor de identidad sin dependencias externas.
type Local struct {
	creds repository.CredentialRepository
	cfg   LocalConfig
}

// NewLocal construye el proveedor local.
func NewLocal(creds repository.CredentialRepository, cfg LocalConfig) *Local {
	if cfg.RefreshExpMinutes <= 0 {
		cfg.RefreshExpMinutes = 7 * 24 * 60
	}
	return &Local{creds: creds, cfg: cfg}
}

func (l *Local) VerifyToken(ctx context.Context, accessToken string) (*entity.Identity, error) {
	claims, err := jwt.Parse(l.cfg.Secret, accessToken, jwt.TypeAccess)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return &entity.Identity{ID: claims.UserID, Email: claims.Email}, nil
}

func (l *Local) SignIn(ctx context.Context, email, password string) (*entity.Identity, *entity.Session, error) {
	cred, err := l.creds.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if cred == nil {
		return nil, nil, fmt.Errorf("%w: Invalid login credentials", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, nil, fmt.Errorf("%w: Invalid login credentials", domain.ErrUnauthorized)
	}
	ident := &entity.Identity{ID: cred.ID, Email: cred.Email}
	session, err := l.issue(ident)
	if err != nil {
		return nil, nil, err
	}
	return ident, session, nil
}

func (l *Local) SignUp(ctx context.Context, email, password string) (*entity.Identity, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password terlalu panjang", domain.ErrInvalidInput)
		}
		return nil, err
	}
	cred := &entity.Credential{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := l.creds.Create(ctx, cred); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) || errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: User already registered", domain.ErrInvalidInput)
		}
		return nil, err
	}
	return &entity.Identity{ID: cred.ID, Email: cred.Email}, nil
}

func (l *Local) RefreshSession(ctx context.Context, refreshToken string) (*entity.Identity, *entity.Session, error) {
	claims, err := jwt.Parse(l.cfg.Secret, refreshToken, jwt.TypeRefresh)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	cred, err := l.creds.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, nil, err
	}
	if cred == nil {
		return nil, nil, fmt.Errorf("%w: user not found", domain.ErrUnauthorized)
	}
	ident := &entity.Identity{ID: cred.ID, Email: cred.Email}
	session, err := l.issue(ident)
	if err != nil {
		return nil, nil, err
	}
	return ident, session, nil
}

func (l *Local) ListUsers(ctx context.Context) ([]*entity.Identity, error) {
	creds, err := l.creds.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(creds, func(c *entity.Credential, _ int) *entity.Identity {
		return &entity.Identity{ID: c.ID, Email: c.Email}
	}), nil
}

func (l *Local) issue(ident *entity.Identity) (*entity.Session, error) {
	access, err := jwt.Generate(l.cfg.Secret, ident.ID, ident.Email, jwt.TypeAccess, l.cfg.Issuer, l.cfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	refresh, err := jwt.Generate(l.cfg.Secret, ident.ID, ident.Email, jwt.TypeRefresh, l.cfg.Issuer, l.cfg.RefreshExpMinutes)
	if err != nil {
		return nil, err
	}
	return &entity.Session{AccessToken: access, RefreshToken: refresh}, nil
}
