package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/templecycle/templecycle-api/internal/domain/entity"
)

// ProductFilter narrows catalog listings. Zero values mean "no filter".
type ProductFilter struct {
	Category string
	Status   string
	Search   string // matches name/description
	SHGID    string
	MinPrice decimal.Decimal
	MaxPrice decimal.Decimal
	HasPrice bool // MinPrice/MaxPrice are meaningful
	Limit    int
	Offset   int
	SortBy   string // created_at | price_min
	SortDesc bool
}

// ProductRepository is the persistence port for Product.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ProductFilter) ([]*entity.Product, error)
	Count(ctx context.Context, f ProductFilter) (int64, error)
	// IDsBySHG returns the ids of every product owned by the given shg;
	// used to scope RFQ visibility.
	IDsBySHG(ctx context.Context, shgID string) ([]string, error)
}
