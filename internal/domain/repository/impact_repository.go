package repository

import (
	"context"
	"time"

	"github.com/templecycle/templecycle-api/internal/domain/entity"
)

// ImpactRepository is the persistence port for impact snapshots.
type ImpactRepository interface {
	Create(ctx context.Context, m *entity.ImpactMetric) error
	// LatestByPeriod returns the newest snapshot for a period, or nil.
	LatestByPeriod(ctx context.Context, period string) (*entity.ImpactMetric, error)
	// ListByPeriod returns snapshots for a period within [from, to],
	// newest first.
	ListByPeriod(ctx context.Context, period string, from, to time.Time) ([]*entity.ImpactMetric, error)
}
