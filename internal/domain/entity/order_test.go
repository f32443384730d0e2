package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/templecycle/templecycle-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Order transition table
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderCanTransition_HappyPath(t *testing.T) {
	path := []string{
		entity.OrderConfirmed,
		entity.OrderProcessing,
		entity.OrderShipped,
		entity.OrderDelivered,
		entity.OrderCompleted,
	}
	for i := 0; i < len(path)-1; i++ {
		assert.True(t, entity.OrderCanTransition(path[i], path[i+1]),
			"%s -> %s should be allowed", path[i], path[i+1])
	}
}

func TestOrderCanTransition_CancellationWindows(t *testing.T) {
	// Cancellable until shipped completes; never after delivery.
	assert.True(t, entity.OrderCanTransition(entity.OrderConfirmed, entity.OrderCancelled))
	assert.True(t, entity.OrderCanTransition(entity.OrderProcessing, entity.OrderCancelled))
	assert.True(t, entity.OrderCanTransition(entity.OrderShipped, entity.OrderCancelled))
	assert.False(t, entity.OrderCanTransition(entity.OrderDelivered, entity.OrderCancelled))
	assert.False(t, entity.OrderCanTransition(entity.OrderCompleted, entity.OrderCancelled))
}

func TestOrderCanTransition_TerminalStates(t *testing.T) {
	for _, to := range []string{
		entity.OrderConfirmed, entity.OrderProcessing, entity.OrderShipped,
		entity.OrderDelivered, entity.OrderCompleted,
	} {
		assert.False(t, entity.OrderCanTransition(entity.OrderCancelled, to),
			"cancelled -> %s must be refused", to)
		assert.False(t, entity.OrderCanTransition(entity.OrderCompleted, to),
			"completed -> %s must be refused", to)
	}
}

func TestOrderCanTransition_NoSkippingBackwards(t *testing.T) {
	assert.False(t, entity.OrderCanTransition(entity.OrderShipped, entity.OrderConfirmed))
	assert.False(t, entity.OrderCanTransition(entity.OrderDelivered, entity.OrderShipped))
	assert.False(t, entity.OrderCanTransition(entity.OrderConfirmed, entity.OrderDelivered))
}

func TestValidOrderStatus(t *testing.T) {
	assert.True(t, entity.ValidOrderStatus(entity.OrderConfirmed))
	assert.True(t, entity.ValidOrderStatus(entity.OrderCancelled))
	assert.False(t, entity.ValidOrderStatus("pending"))
	assert.False(t, entity.ValidOrderStatus(""))
}

func TestValidDocumentType(t *testing.T) {
	for _, d := range []string{
		entity.DocInvoice, entity.DocPackingList, entity.DocQualityCertificate,
		entity.DocTransportReceipt, entity.DocDeliveryProof,
	} {
		assert.True(t, entity.ValidDocumentType(d), "%s is a known type", d)
	}
	assert.False(t, entity.ValidDocumentType("receipt"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Payment ledger
// ──────────────────────────────────────────────────────────────────────────────

func orderWithTotal(total int64) *entity.Order {
	return &entity.Order{
		Details: entity.OrderDetails{
			TotalAmount: decimal.NewFromInt(total),
			Currency:    "INR",
		},
		Payment: entity.Payment{PaymentStatus: entity.PaymentPending},
	}
}

func TestRecomputePayment_NoPayments(t *testing.T) {
	o := orderWithTotal(1000)
	o.RecomputePayment()

	assert.True(t, o.Payment.AdvancePaid.IsZero())
	assert.True(t, o.Payment.BalanceDue.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, entity.PaymentPending, o.Payment.PaymentStatus,
		"empty ledger keeps the pending status")
}

func TestRecomputePayment_PartialThenPaid(t *testing.T) {
	o := orderWithTotal(1000)
	o.Payment.History = append(o.Payment.History, entity.PaymentRecord{Amount: decimal.NewFromInt(300)})
	o.RecomputePayment()

	assert.True(t, o.Payment.AdvancePaid.Equal(decimal.NewFromInt(300)))
	assert.True(t, o.Payment.BalanceDue.Equal(decimal.NewFromInt(700)))
	assert.Equal(t, entity.PaymentPartial, o.Payment.PaymentStatus)

	o.Payment.History = append(o.Payment.History, entity.PaymentRecord{Amount: decimal.NewFromInt(700)})
	o.RecomputePayment()

	assert.True(t, o.Payment.BalanceDue.IsZero())
	assert.Equal(t, entity.PaymentPaid, o.Payment.PaymentStatus)
}

func TestRecomputePayment_OverpaymentStillPaid(t *testing.T) {
	o := orderWithTotal(500)
	o.Payment.History = append(o.Payment.History, entity.PaymentRecord{Amount: decimal.NewFromInt(600)})
	o.RecomputePayment()

	assert.Equal(t, entity.PaymentPaid, o.Payment.PaymentStatus)
	assert.True(t, o.Payment.BalanceDue.Equal(decimal.NewFromInt(-100)),
		"balance goes negative on overpayment, never clamped silently")
}

// Re-deriving twice from the same ledger must not change anything.
func TestRecomputePayment_Idempotent(t *testing.T) {
	o := orderWithTotal(1000)
	o.Payment.History = append(o.Payment.History, entity.PaymentRecord{Amount: decimal.NewFromInt(400)})

	o.RecomputePayment()
	paid1, due1, status1 := o.Payment.AdvancePaid, o.Payment.BalanceDue, o.Payment.PaymentStatus

	o.RecomputePayment()
	assert.True(t, o.Payment.AdvancePaid.Equal(paid1))
	assert.True(t, o.Payment.BalanceDue.Equal(due1))
	assert.Equal(t, status1, o.Payment.PaymentStatus)
}

func TestFormatOrderNumber(t *testing.T) {
	assert.Equal(t, "ORD-0001", entity.FormatOrderNumber(1))
	assert.Equal(t, "ORD-0099", entity.FormatOrderNumber(99))
	assert.Equal(t, "ORD-12345", entity.FormatOrderNumber(12345))
}
