package order

import (
	"context"

	"github.com/templecycle/templecycle-api/internal/domain/entity"
	"github.com/templecycle/templecycle-api/internal/domain/repository"
)

// TxRunner runs a function inside one DB transaction, passing repositories
// bound to that transaction. Order creation and RFQ closing commit or roll
// back together.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		rfqRepo repository.RFQRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// InvoiceRenderer renders the order invoice document.
type InvoiceRenderer interface {
	Render(order *entity.Order, buyer, shg *entity.User, product *entity.Product) ([]byte, error)
}
