package memory

import (
	"context"

	"github.com/jhoicas/Sparepart-api/internal/domain"
	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
	"github.com/jhoicas/Sparepart-api/internal/domain/repository"
)

var (
	_ repository.BrandRepository    = (*BrandRepo)(nil)
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
)

// BrandRepo implementación en memoria de BrandRepository.
type BrandRepo struct{ s *Store }

func (r *BrandRepo) Create(_ context.Context, b *entity.Brand) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.brands[b.ID] = *b
	return nil
}

func (r *BrandRepo) GetByID(_ context.Context, id string) (*entity.Brand, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.brands[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *BrandRepo) Update(_ context.Context, b *entity.Brand) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.brands[b.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.brands[b.ID] = *b
	return nil
}

func (r *BrandRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.brands[id]; !ok {
		return domain.ErrNotFound
	}
	for _, p := range r.s.parts {
		if p.BrandID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.brands, id)
	return nil
}

func (r *BrandRepo) List(ctx context.Context) ([]*entity.Brand, error) {
	return r.Search(ctx, "")
}

func (r *BrandRepo) Search(_ context.Context, q string) ([]*entity.Brand, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Brand, 0, len(r.s.brands))
	for _, b := range r.s.brands {
		if q == "" || containsFold(b.Name, q) {
			out = append(out, &b)
		}
	}
	sortByName(out, func(b *entity.Brand) string { return b.Name })
	return out, nil
}

func (r *BrandRepo) ListByCategory(_ context.Context, categoryID string) ([]*entity.Brand, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	seen := map[string]bool{}
	out := []*entity.Brand{}
	for _, p := range r.s.parts {
		if p.CategoryID != categoryID || seen[p.BrandID] {
			continue
		}
		seen[p.BrandID] = true
		if b, ok := r.s.brands[p.BrandID]; ok {
			out = append(out, &b)
		}
	}
	sortByName(out, func(b *entity.Brand) string { return b.Name })
	return out, nil
}

// CategoryRepo implementación en memoria de CategoryRepository.
type CategoryRepo struct{ s *Store }

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return domain.ErrNotFound
	}
	for _, p := range r.s.parts {
		if p.CategoryID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.categories, id)
	return nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	return r.Search(ctx, "")
}

func (r *CategoryRepo) Search(_ context.Context, q string) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		if q == "" || containsFold(c.Name, q) {
			out = append(out, &c)
		}
	}
	sortByName(out, func(c *entity.Category) string { return c.Name })
	return out, nil
}

func (r *CategoryRepo) ListByBrand(_ context.Context, brandID string) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	seen := map[string]bool{}
	out := []*entity.Category{}
	for _, p := range r.s.parts {
		if p.BrandID != brandID || seen[p.CategoryID] {
			continue
		}
		seen[p.CategoryID] = true
		if c, ok := r.s.categories[p.CategoryID]; ok {
			out = append(out, &c)
		}
	}
	sortByName(out, func(c *entity.Category) string { return c.Name })
	return out, nil
}
