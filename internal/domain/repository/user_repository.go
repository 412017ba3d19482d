package repository

import (
	"context"

	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
)

// UserProfileRepository puerto para user_profiles.
type UserProfileRepository interface {
	Create(ctx context.Context, profile *entity.UserProfile) error
	GetByID(ctx context.Context, id string) (*entity.UserProfile, error)
}

// CredentialRepository puerto para las credenciales del proveedor de identidad local.
type CredentialRepository interface {
	Create(ctx context.Context, cred *entity.Credential) error
	GetByEmail(ctx context.Context, email string) (*entity.Credential, error)
	GetByID(ctx context.Context, id string) (*entity.Credential, error)
	List(ctx context.Context) ([]*entity.Credential, error)
}
