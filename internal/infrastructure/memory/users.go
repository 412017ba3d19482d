package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/Sparepart-api/internal/domain"
	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
	"github.com/jhoicas/Sparepart-api/internal/domain/repository"
)

var (
	_ repository.UserProfileRepository = (*ProfileRepo)(nil)
	_ repository.CredentialRepository  = (*CredentialRepo)(nil)
)

// ProfileRepo implementación en memoria de UserProfileRepository.
type ProfileRepo struct{ s *Store }

func (r *ProfileRepo) Create(_ context.Context, p *entity.UserProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.profiles[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.profiles[p.ID] = *p
	return nil
}

func (r *ProfileRepo) GetByID(_ context.Context, id string) (*entity.UserProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.profiles[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// CredentialRepo implementación en memoria de CredentialRepository.
type CredentialRepo struct{ s *Store }

func (r *CredentialRepo) Create(_ context.Context, c *entity.Credential) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.credentials {
		if strings.EqualFold(other.Email, c.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.credentials[c.ID] = *c
	return nil
}

func (r *CredentialRepo) GetByEmail(_ context.Context, email string) (*entity.Credential, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.credentials {
		if strings.EqualFold(c.Email, email) {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *CredentialRepo) GetByID(_ context.Context, id string) (*entity.Credential, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.credentials[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CredentialRepo) List(_ context.Context) ([]*entity.Credential, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Credential, 0, len(r.s.credentials))
	for _, c := range r.s.credentials {
		out = append(out, &c)
	}
	return out, nil
}
