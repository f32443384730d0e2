package memory

import (
	"context"
	"sort"

	"github.com/templecycle/templecycle-api/internal/domain"
	"github.com/templecycle/templecycle-api/internal/domain/entity"
	"github.com/templecycle/templecycle-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implements OrderRepository over the in-process store.
type OrderRepo struct {
	s *Store
}

// NewOrderRepository builds the adapter.
func NewOrderRepository(s *Store) *OrderRepo {
	return &OrderRepo{s: s}
}

// Create claims the next order number and persists the order.
func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.orderSeq++
	o.OrderNumber = entity.FormatOrderNumber(r.s.orderSeq)
	r.s.orders[o.ID] = clone(o)
	return nil
}

// GetByID returns an order by id, nil when absent.
func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	return clone(o), nil
}

// Update persists the mutable order fields.
func (r *OrderRepo) Update(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[o.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.orders[o.ID] = clone(o)
	return nil
}

// List returns the filtered order page, newest first.
func (r *OrderRepo) List(_ context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	list := r.filtered(f)
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })

	list = page(list, f.Limit, f.Offset)
	out := make([]*entity.Order, 0, len(list))
	for _, o := range list {
		out = append(out, clone(o))
	}
	return out, nil
}

// Count returns the total rows matching the filter.
func (r *OrderRepo) Count(_ context.Context, f repository.OrderFilter) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.filtered(f))), nil
}

func (r *OrderRepo) filtered(f repository.OrderFilter) []*entity.Order {
	var list []*entity.Order
	for _, o := range r.s.orders {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.BuyerID != "" && o.BuyerID != f.BuyerID {
			continue
		}
		if f.SHGID != "" && o.SHGID != f.SHGID {
			continue
		}
		list = append(list, o)
	}
	return list
}
