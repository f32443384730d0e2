package repository

import (
	"context"

	"github.com/templecycle/templecycle-api/internal/domain/entity"
)

// RFQFilter narrows RFQ listings. ProductIDs scopes an shg to RFQs that
// reference its own products.
type RFQFilter struct {
	Status     string
	BuyerID    string
	ProductID  string
	ProductIDs []string
	Limit      int
	Offset     int
}

// RFQRepository is the persistence port for RFQ. Create claims the next
// sequential RFQ number atomically.
type RFQRepository interface {
	Create(ctx context.Context, rfq *entity.RFQ) error
	GetByID(ctx context.Context, id string) (*entity.RFQ, error)
	Update(ctx context.Context, rfq *entity.RFQ) error
	List(ctx context.Context, f RFQFilter) ([]*entity.RFQ, error)
	Count(ctx context.Context, f RFQFilter) (int64, error)
}
