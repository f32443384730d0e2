package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Order fulfillment states.
const (
	OrderConfirmed  = "confirmed"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
	OrderCompleted  = "completed"
)

// Payment statuses.
const (
	PaymentPending = "pending"
	PaymentPartial = "partial"
	PaymentPaid    = "paid"
	PaymentOverdue = "overdue"
)

// Order document types (fixed enum; one URL per type, latest upload wins).
const (
	DocInvoice            = "invoice"
	DocPackingList        = "packing_list"
	DocQualityCertificate = "quality_certificate"
	DocTransportReceipt   = "transport_receipt"
	DocDeliveryProof      = "delivery_proof"
)

// orderTransitions is the explicit fulfillment transition table. Cancelled
// is reachable from every non-terminal state except delivered.
var orderTransitions = map[string][]string{
	OrderConfirmed:  {OrderProcessing, OrderShipped, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered, OrderCancelled},
	OrderDelivered:  {OrderCompleted},
	OrderCancelled:  {},
	OrderCompleted:  {},
}

// OrderCanTransition reports whether an Order may move from one status to
// another.
func OrderCanTransition(from, to string) bool {
	for _, t := range orderTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// ValidOrderStatus reports whether s is a known fulfillment status.
func ValidOrderStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}

// ValidDocumentType reports whether s is a known order document type.
func ValidDocumentType(s string) bool {
	switch s {
	case DocInvoice, DocPackingList, DocQualityCertificate, DocTransportReceipt, DocDeliveryProof:
		return true
	}
	return false
}

// OrderDetails commercial terms fixed at order creation.
type OrderDetails struct {
	QuantityKg  float64         `json:"quantity_kg"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Currency    string          `json:"currency"`
}

// Delivery shipping terms and tracking.
type Delivery struct {
	Address          Address    `json:"delivery_address"`
	DeliveryDate     *time.Time `json:"delivery_date,omitempty"`
	DeliveryMethod   string     `json:"delivery_method,omitempty"`
	TransportDetails string     `json:"transport_details,omitempty"`
	TrackingNumber   string     `json:"tracking_number,omitempty"`
}

// PaymentRecord one entry in the payment ledger.
type PaymentRecord struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"payment_date"`
	PaymentMethod string          `json:"payment_method"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// Payment embeds the ledger and the figures derived from it. AdvancePaid and
// BalanceDue are always recomputed from History, never patched in place.
type Payment struct {
	PaymentTerms      string          `json:"payment_terms,omitempty"`
	AdvancePercentage float64         `json:"advance_percentage"`
	AdvancePaid       decimal.Decimal `json:"advance_paid"`
	BalanceDue        decimal.Decimal `json:"balance_due"`
	PaymentStatus     string          `json:"payment_status"`
	History           []PaymentRecord `json:"payment_history"`
}

// Order is created from exactly one accepted RFQ. The RFQ is closed in the
// same transaction, which is what enforces the at-most-one-order rule.
type Order struct {
	ID          string
	OrderNumber string
	RFQID       string
	BuyerID     string
	SHGID       string
	ProductID   string
	Details     OrderDetails
	Delivery    Delivery
	Payment     Payment
	Status      string
	Timeline    []TimelineEntry
	Documents   map[string]string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecomputePayment re-derives advance_paid, balance_due and payment_status
// from the ledger. Idempotent for a given payment history.
func (o *Order) RecomputePayment() {
	paid := decimal.Zero
	for _, p := range o.Payment.History {
		paid = paid.Add(p.Amount)
	}
	o.Payment.AdvancePaid = paid
	o.Payment.BalanceDue = o.Details.TotalAmount.Sub(paid)
	switch {
	case paid.GreaterThanOrEqual(o.Details.TotalAmount):
		o.Payment.PaymentStatus = PaymentPaid
	case paid.GreaterThan(decimal.Zero):
		o.Payment.PaymentStatus = PaymentPartial
	}
	// Zero paid leaves the status as previously set (default pending).
}

// AppendTimeline records a status-change event.
func (o *Order) AppendTimeline(status, message, actorID string) {
	o.Timeline = append(o.Timeline, TimelineEntry{
		Status:    status,
		Message:   message,
		UpdatedBy: actorID,
		Timestamp: time.Now(),
	})
}

// FormatOrderNumber renders the human-readable order number from a claimed
// sequence value.
func FormatOrderNumber(seq int64) string {
	return fmt.Sprintf("ORD-%04d", seq)
}
