package memory

import (
	"context"

	"github.com/templecycle/templecycle-api/internal/application/order"
	"github.com/templecycle/templecycle-api/internal/domain/repository"
)

// Ensure TxRunner implements order.TxRunner.
var _ order.TxRunner = (*TxRunner)(nil)

// TxRunner serializes transactional sections against the store. There is no
// rollback; callbacks must order their writes so an early failure leaves the
// store consistent, which the order-creation flow does.
type TxRunner struct {
	s *Store
}

// NewTxRunner builds the runner with the store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run serializes fn against every other transactional section.
func (r *TxRunner) Run(_ context.Context, fn func(
	rfqRepo repository.RFQRepository,
	orderRepo repository.OrderRepository,
) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	return fn(NewRFQRepository(r.s), NewOrderRepository(r.s))
}
