package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/templecycle/templecycle-api/internal/domain"
	"github.com/templecycle/templecycle-api/internal/domain/entity"
	"github.com/templecycle/templecycle-api/internal/domain/repository"
)

var _ repository.RFQRepository = (*RFQRepo)(nil)

// RFQRepo implements RFQRepository over the in-process store.
type RFQRepo struct {
	s *Store
}

// NewRFQRepository builds the adapter.
func NewRFQRepository(s *Store) *RFQRepo {
	return &RFQRepo{s: s}
}

// Create claims the next RFQ number and persists the RFQ.
func (r *RFQRepo) Create(_ context.Context, rfq *entity.RFQ) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.rfqSeq++
	rfq.RFQNumber = entity.FormatRFQNumber(r.s.rfqSeq)
	r.s.rfqs[rfq.ID] = clone(rfq)
	return nil
}

// GetByID returns an RFQ by id, nil when absent.
func (r *RFQRepo) GetByID(_ context.Context, id string) (*entity.RFQ, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rfq, ok := r.s.rfqs[id]
	if !ok {
		return nil, nil
	}
	return clone(rfq), nil
}

// Update persists the mutable RFQ fields.
func (r *RFQRepo) Update(_ context.Context, rfq *entity.RFQ) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.rfqs[rfq.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.rfqs[rfq.ID] = clone(rfq)
	return nil
}

// List returns the filtered RFQ page, newest first.
func (r *RFQRepo) List(_ context.Context, f repository.RFQFilter) ([]*entity.RFQ, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	list := r.filtered(f)
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })

	list = page(list, f.Limit, f.Offset)
	out := make([]*entity.RFQ, 0, len(list))
	for _, rfq := range list {
		out = append(out, clone(rfq))
	}
	return out, nil
}

// Count returns the total rows matching the filter.
func (r *RFQRepo) Count(_ context.Context, f repository.RFQFilter) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.filtered(f))), nil
}

func (r *RFQRepo) filtered(f repository.RFQFilter) []*entity.RFQ {
	var list []*entity.RFQ
	for _, rfq := range r.s.rfqs {
		if f.Status != "" && rfq.Status != f.Status {
			continue
		}
		if f.BuyerID != "" && rfq.BuyerID != f.BuyerID {
			continue
		}
		if f.ProductID != "" && rfq.ProductID != f.ProductID {
			continue
		}
		if len(f.ProductIDs) > 0 && !slices.Contains(f.ProductIDs, rfq.ProductID) {
			continue
		}
		list = append(list, rfq)
	}
	return list
}
