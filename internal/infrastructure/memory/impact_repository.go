package memory

import (
	"context"
	"sort"
	"time"

	"github.com/templecycle/templecycle-api/internal/domain/entity"
	"github.com/templecycle/templecycle-api/internal/domain/repository"
)

var _ repository.ImpactRepository = (*ImpactRepo)(nil)

// ImpactRepo implements ImpactRepository over the in-process store.
type ImpactRepo struct {
	s *Store
}

// NewImpactRepository builds the adapter.
func NewImpactRepository(s *Store) *ImpactRepo {
	return &ImpactRepo{s: s}
}

// Create persists a snapshot.
func (r *ImpactRepo) Create(_ context.Context, m *entity.ImpactMetric) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.metrics = append(r.s.metrics, clone(m))
	return nil
}

// LatestByPeriod returns the newest snapshot for a period, nil when none.
func (r *ImpactRepo) LatestByPeriod(_ context.Context, period string) (*entity.ImpactMetric, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var latest *entity.ImpactMetric
	for _, m := range r.s.metrics {
		if m.Period != period {
			continue
		}
		if latest == nil || m.Date.After(latest.Date) {
			latest = m
		}
	}
	if latest == nil {
		return nil, nil
	}
	return clone(latest), nil
}

// ListByPeriod returns snapshots for a period within [from, to], newest
// first.
func (r *ImpactRepo) ListByPeriod(_ context.Context, period string, from, to time.Time) ([]*entity.ImpactMetric, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var list []*entity.ImpactMetric
	for _, m := range r.s.metrics {
		if m.Period != period || m.Date.Before(from) || m.Date.After(to) {
			continue
		}
		list = append(list, clone(m))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	return list, nil
}
