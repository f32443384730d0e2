package repository

import (
	"context"

	"github.com/templecycle/templecycle-api/internal/domain/entity"
)

// TraceabilityRepository is the persistence port for batch provenance
// records.
type TraceabilityRepository interface {
	Create(ctx context.Context, t *entity.Traceability) error
	GetByBatchNumber(ctx context.Context, batchNumber string) (*entity.Traceability, error)
	// ListByProduct returns all batches for a product, newest first.
	ListByProduct(ctx context.Context, productID string) ([]*entity.Traceability, error)
	// IncrementScanCount bumps the QR scan counter atomically and returns
	// the new value. ErrNotFound if the batch does not exist.
	IncrementScanCount(ctx context.Context, batchNumber string) (int64, error)
}
