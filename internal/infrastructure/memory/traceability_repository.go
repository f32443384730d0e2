package memory

import (
	"context"
	"sort"
	"time"

	"github.com/templecycle/templecycle-api/internal/domain"
	"github.com/templecycle/templecycle-api/internal/domain/entity"
	"github.com/templecycle/templecycle-api/internal/domain/repository"
)

var _ repository.TraceabilityRepository = (*TraceabilityRepo)(nil)

// TraceabilityRepo implements TraceabilityRepository over the in-process
// store.
type TraceabilityRepo struct {
	s *Store
}

// NewTraceabilityRepository builds the adapter.
func NewTraceabilityRepository(s *Store) *TraceabilityRepo {
	return &TraceabilityRepo{s: s}
}

// Create persists a batch record.
func (r *TraceabilityRepo) Create(_ context.Context, t *entity.Traceability) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.traces[t.BatchNumber] = clone(t)
	return nil
}

// GetByBatchNumber returns a batch by its number, nil when absent.
func (r *TraceabilityRepo) GetByBatchNumber(_ context.Context, batchNumber string) (*entity.Traceability, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.traces[batchNumber]
	if !ok {
		return nil, nil
	}
	return clone(t), nil
}

// ListByProduct returns all batches for a product, newest first.
func (r *TraceabilityRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Traceability, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var list []*entity.Traceability
	for _, t := range r.s.traces {
		if t.ProductID == productID {
			list = append(list, clone(t))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

// IncrementScanCount bumps the QR scan counter atomically and returns the
// new value.
func (r *TraceabilityRepo) IncrementScanCount(_ context.Context, batchNumber string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.traces[batchNumber]
	if !ok {
		return 0, domain.ErrNotFound
	}
	t.QR.ScanCount++
	t.UpdatedAt = time.Now()
	return t.QR.ScanCount, nil
}
