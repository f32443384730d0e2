package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/templecycle/templecycle-api/internal/domain"
	"github.com/templecycle/templecycle-api/internal/domain/entity"
	"github.com/templecycle/templecycle-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implements ProductRepository over the in-process store.
type ProductRepo struct {
	s *Store
}

// NewProductRepository builds the adapter.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{s: s}
}

// Create persists a new product.
func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[p.ID] = clone(p)
	return nil
}

// GetByID returns a product by id, nil when absent.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return clone(p), nil
}

// Update persists the mutable product fields.
func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.products[p.ID] = clone(p)
	return nil
}

// Delete removes a product by id.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.products, id)
	return nil
}

// List returns the filtered catalog page.
func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	list := r.filtered(f)
	sort.Slice(list, func(i, j int) bool {
		var less bool
		if f.SortBy == "price_min" {
			less = list[i].Pricing.PriceMin.LessThan(list[j].Pricing.PriceMin)
		} else {
			less = list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		if f.SortDesc {
			return !less
		}
		return less
	})

	list = page(list, f.Limit, f.Offset)
	out := make([]*entity.Product, 0, len(list))
	for _, p := range list {
		out = append(out, clone(p))
	}
	return out, nil
}

// Count returns the total rows matching the filter.
func (r *ProductRepo) Count(_ context.Context, f repository.ProductFilter) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.filtered(f))), nil
}

// IDsBySHG returns the ids of every product owned by the given shg.
func (r *ProductRepo) IDsBySHG(_ context.Context, shgID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var ids []string
	for _, p := range r.s.products {
		if p.SHGID == shgID {
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

func (r *ProductRepo) filtered(f repository.ProductFilter) []*entity.Product {
	var list []*entity.Product
	for _, p := range r.s.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.SHGID != "" && p.SHGID != f.SHGID {
			continue
		}
		if f.Search != "" {
			needle := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(p.Name), needle) &&
				!strings.Contains(strings.ToLower(p.Description), needle) {
				continue
			}
		}
		if f.HasPrice {
			if !f.MinPrice.IsZero() && p.Pricing.PriceMax.LessThan(f.MinPrice) {
				continue
			}
			if !f.MaxPrice.IsZero() && p.Pricing.PriceMin.GreaterThan(f.MaxPrice) {
				continue
			}
		}
		list = append(list, p)
	}
	return list
}
