package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/templecycle/templecycle-api/internal/domain/entity"
)

// CreateRFQRequest payload for POST /api/rfq.
type CreateRFQRequest struct {
	Product        string             `json:"product"`
	Quantity       entity.RFQQuantity `json:"quantity"`
	Specifications entity.RFQSpecs    `json:"specifications"`
}

// Validate checks the payload.
func (r *CreateRFQRequest) Validate() []string {
	var errs []string
	if r.Product == "" {
		errs = append(errs, "product is required")
	}
	if r.Quantity.RequestedKg <= 0 {
		errs = append(errs, "requested quantity must be positive")
	}
	if r.Quantity.UnitPrice.IsNegative() {
		errs = append(errs, "unit price cannot be negative")
	}
	return errs
}

// SubmitQuoteRequest payload for POST /api/rfq/:id/quote.
type SubmitQuoteRequest struct {
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LeadTimeDays int             `json:"lead_time_days"`
	ValidityDays int             `json:"validity_days"`
	Message      string          `json:"message"`
	Documents    []string        `json:"documents"`
}

// Validate checks the payload; defaults quote validity to 30 days.
func (r *SubmitQuoteRequest) Validate() []string {
	var errs []string
	if !r.UnitPrice.IsPositive() {
		errs = append(errs, "unit price must be positive")
	}
	if r.LeadTimeDays < 0 {
		errs = append(errs, "lead time cannot be negative")
	}
	if r.ValidityDays == 0 {
		r.ValidityDays = 30
	}
	if r.ValidityDays < 0 {
		errs = append(errs, "validity cannot be negative")
	}
	return errs
}

// UpdateRFQStatusRequest payload for PUT /api/rfq/:id/status.
type UpdateRFQStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// Validate checks the target status is one a caller may set at all;
// transition legality is checked against the current state later.
func (r *UpdateRFQStatusRequest) Validate() []string {
	var errs []string
	if !entity.RFQSettableStatus(r.Status) {
		errs = append(errs, "status must be one of quoted, accepted, rejected, closed")
	}
	return errs
}

// RFQListQuery query parameters for GET /api/rfq.
type RFQListQuery struct {
	PageRequest
	Status string `query:"status"`
}

// QuoteResponse one quote with its shg summary populated.
type QuoteResponse struct {
	SHG          *UserSummary    `json:"shg,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalAmount  decimal.Decimal `json:"total_amount,omitempty"`
	LeadTimeDays int             `json:"lead_time_days,omitempty"`
	ValidityDays int             `json:"validity_days"`
	Message      string          `json:"message,omitempty"`
	Documents    []string        `json:"documents,omitempty"`
	SubmittedAt  time.Time       `json:"submitted_at"`
}

// RFQResponse an RFQ with buyer and product summaries populated.
type RFQResponse struct {
	ID             string                 `json:"id"`
	RFQNumber      string                 `json:"rfqNumber"`
	Buyer          *UserSummary           `json:"buyer,omitempty"`
	Product        *ProductSummary        `json:"product,omitempty"`
	Quantity       entity.RFQQuantity     `json:"quantity"`
	Specifications entity.RFQSpecs        `json:"specifications"`
	Status         string                 `json:"status"`
	Quotes         []QuoteResponse        `json:"quotes"`
	Timeline       []entity.TimelineEntry `json:"timeline"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

// RFQListResponse paged RFQ listing.
type RFQListResponse struct {
	RFQs       []RFQResponse `json:"rfqs"`
	Pagination Pagination    `json:"pagination"`
}
