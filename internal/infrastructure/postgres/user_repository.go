package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Sparepart-api/internal/domain"
	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
	"github.com/jhoicas/Sparepart-api/internal/domain/repository"
)

var (
	_ repository.UserProfileRepository = (*ProfileRepo)(nil)
	_ repository.CredentialRepository  = (*CredentialRepo)(nil)
)

// ProfileRepo implementación de UserProfileRepository sobre user_profiles.
type ProfileRepo struct {
	q Querier
}

// NewProfileRepository construye el adaptador de perfiles.
func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

// Create persiste un nuevo perfil; el id es el del proveedor de identidad.
func (r *ProfileRepo) Create(ctx context.Context, p *entity.UserProfile) error {
	query := `
		INSERT INTO user_profiles (id, name, role, status, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, p.ID, p.Name, p.Role, p.Status, p.CreatedAt)
	if err != nil {
		return wrapErr("insert user_profile", err)
	}
	return nil
}

// GetByID devuelve el perfil o (nil, nil) si no existe.
func (r *ProfileRepo) GetByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	query := `SELECT id, name, role, status, created_at FROM user_profiles WHERE id = $1`
	var p entity.UserProfile
	err := r.q.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Role, &p.Status, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user_profile: %w", err)
	}
	return &p, nil
}

// CredentialRepo credenciales del proveedor de identidad local (auth_users).
type CredentialRepo struct {
	q Querier
}

// NewCredentialRepository construye el adaptador de credenciales.
func NewCredentialRepository(q Querier) *CredentialRepo {
	return &CredentialRepo{q: q}
}

func (r *CredentialRepo) Create(ctx context.Context, c *entity.Credential) error {
	query := `
		INSERT INTO auth_users (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, c.ID, c.Email, c.PasswordHash, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert auth_user: %w", err)
	}
	return nil
}

// GetByEmail busca sin distinguir mayúsculas (índice único sobre lower(email)).
func (r *CredentialRepo) GetByEmail(ctx context.Context, email string) (*entity.Credential, error) {
	query := `SELECT id, email, password_hash, created_at FROM auth_users WHERE lower(email) = lower($1)`
	return r.get(ctx, query, email)
}

func (r *CredentialRepo) GetByID(ctx context.Context, id string) (*entity.Credential, error) {
	query := `SELECT id, email, password_hash, created_at FROM auth_users WHERE id = $1`
	return r.get(ctx, query, id)
}

func (r *CredentialRepo) List(ctx context.Context) ([]*entity.Credential, error) {
	rows, err := r.q.Query(ctx, `SELECT id, email, password_hash, created_at FROM auth_users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list auth_users: %w", err)
	}
	defer rows.Close()

	out := []*entity.Credential{}
	for rows.Next() {
		var c entity.Credential
		if err := rows.Scan(&c.ID, &c.Email, &c.PasswordHash, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan auth_user: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *CredentialRepo) get(ctx context.Context, query string, arg string) (*entity.Credential, error) {
	var c entity.Credential
	err := r.q.QueryRow(ctx, query, arg).Scan(&c.ID, &c.Email, &c.PasswordHash, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get auth_user: %w", err)
	}
	return &c, nil
}
