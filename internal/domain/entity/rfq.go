package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RFQ lifecycle states.
const (
	RFQPending     = "pending"
	RFQUnderReview = "under_review"
	RFQQuoted      = "quoted"
	RFQAccepted    = "accepted"
	RFQRejected    = "rejected"
	RFQClosed      = "closed"
)

// rfqTransitions is the explicit transition table for RFQs. The original
// workflow accepted any target status; here illegal moves (rejected back to
// accepted, reopening a closed RFQ) are refused.
var rfqTransitions = map[string][]string{
	RFQPending:     {RFQUnderReview, RFQQuoted, RFQAccepted, RFQRejected, RFQClosed},
	RFQUnderReview: {RFQQuoted, RFQAccepted, RFQRejected, RFQClosed},
	RFQQuoted:      {RFQAccepted, RFQRejected, RFQClosed},
	RFQAccepted:    {RFQClosed},
	RFQRejected:    {},
	RFQClosed:      {},
}

// RFQCanTransition reports whether an RFQ may move from one status to
// another.
func RFQCanTransition(from, to string) bool {
	for _, t := range rfqTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// RFQSettableStatus reports whether s is one of the statuses a buyer or
// admin may set explicitly (everything except the system-managed initial
// states).
func RFQSettableStatus(s string) bool {
	switch s {
	case RFQQuoted, RFQAccepted, RFQRejected, RFQClosed:
		return true
	}
	return false
}

// RFQQuantity requested volume and the buyer's indicative pricing.
type RFQQuantity struct {
	RequestedKg float64         `json:"requested_kg"`
	UnitPrice   decimal.Decimal `json:"unit_price,omitempty"`
	TotalValue  decimal.Decimal `json:"total_value,omitempty"`
}

// RFQSpecs quality and commercial terms requested by the buyer.
type RFQSpecs struct {
	MoistureContentMax  float64 `json:"moisture_content_max,omitempty"`
	PurityMin           float64 `json:"purity_min,omitempty"`
	MeshSize            string  `json:"mesh_size,omitempty"`
	DeliveryTimeline    string  `json:"delivery_timeline,omitempty"`
	PaymentTerms        string  `json:"payment_terms,omitempty"`
	SpecialRequirements string  `json:"special_requirements,omitempty"`
}

// Quote is a processing unit's priced response to an RFQ. At most one quote
// per shg per RFQ.
type Quote struct {
	SHGID        string          `json:"shg"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalAmount  decimal.Decimal `json:"total_amount,omitempty"`
	LeadTimeDays int             `json:"lead_time_days,omitempty"`
	ValidityDays int             `json:"validity_days"`
	Message      string          `json:"message,omitempty"`
	Documents    []string        `json:"documents,omitempty"`
	SubmittedAt  time.Time       `json:"submitted_at"`
}

// TimelineEntry is one append-only audit record on an RFQ or Order.
type TimelineEntry struct {
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
	UpdatedBy string    `json:"updated_by,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// RFQ is a buyer's request for quote against one product. Quotes and
// timeline are embedded, append-only documents.
type RFQ struct {
	ID             string
	RFQNumber      string
	BuyerID        string
	ProductID      string
	Quantity       RFQQuantity
	Specifications RFQSpecs
	Status         string
	Quotes         []Quote
	Timeline       []TimelineEntry
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OpenForQuotes reports whether new quotes are accepted in the current
// state.
func (r *RFQ) OpenForQuotes() bool {
	return r.Status == RFQPending || r.Status == RFQUnderReview
}

// QuoteFrom returns the quote submitted by the given shg, or nil.
func (r *RFQ) QuoteFrom(shgID string) *Quote {
	for i := range r.Quotes {
		if r.Quotes[i].SHGID == shgID {
			return &r.Quotes[i]
		}
	}
	return nil
}

// AppendTimeline records a status-change event.
func (r *RFQ) AppendTimeline(status, message, actorID string) {
	r.Timeline = append(r.Timeline, TimelineEntry{
		Status:    status,
		Message:   message,
		UpdatedBy: actorID,
		Timestamp: time.Now(),
	})
}

// FormatRFQNumber renders the human-readable RFQ number from a claimed
// sequence value.
func FormatRFQNumber(seq int64) string {
	return fmt.Sprintf("RFQ-%03d", seq)
}
