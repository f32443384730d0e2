package repository

import (
	"context"

	"github.com/templecycle/templecycle-api/internal/domain/entity"
)

// OrderFilter narrows order listings.
type OrderFilter struct {
	Status  string
	BuyerID string
	SHGID   string
	Limit   int
	Offset  int
}

// OrderRepository is the persistence port for Order. Create claims the next
// sequential order number atomically.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	List(ctx context.Context, f OrderFilter) ([]*entity.Order, error)
	Count(ctx context.Context, f OrderFilter) (int64, error)
}
