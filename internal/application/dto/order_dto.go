package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/templecycle/templecycle-api/internal/domain/entity"
)

// CreateOrderRequest payload for POST /api/orders. The RFQ must be in
// accepted state; buyer, shg, product and pricing are derived from it.
type CreateOrderRequest struct {
	RFQ      string `json:"rfq"`
	Delivery struct {
		Address          entity.Address `json:"delivery_address"`
		DeliveryDate     *time.Time     `json:"delivery_date"`
		DeliveryMethod   string         `json:"delivery_method"`
		TransportDetails string         `json:"transport_details"`
	} `json:"delivery"`
	Payment struct {
		PaymentTerms      string  `json:"payment_terms"`
		AdvancePercentage float64 `json:"advance_percentage"`
	} `json:"payment"`
}

// Validate checks the payload.
func (r *CreateOrderRequest) Validate() []string {
	var errs []string
	if r.RFQ == "" {
		errs = append(errs, "rfq is required")
	}
	if r.Payment.AdvancePercentage < 0 || r.Payment.AdvancePercentage > 100 {
		errs = append(errs, "advance percentage must be between 0 and 100")
	}
	return errs
}

// UpdateOrderStatusRequest payload for PUT /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status         string `json:"status"`
	Notes          string `json:"notes"`
	TrackingNumber string `json:"tracking_number"`
}

// Validate checks the target status exists; transition legality is checked
// against the current state later.
func (r *UpdateOrderStatusRequest) Validate() []string {
	var errs []string
	if !entity.ValidOrderStatus(r.Status) {
		errs = append(errs, "status must be one of confirmed, processing, shipped, delivered, cancelled, completed")
	}
	return errs
}

// AddPaymentRequest payload for POST /api/orders/:id/payment.
type AddPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	TransactionID string          `json:"transaction_id"`
	Notes         string          `json:"notes"`
}

// Validate checks the payload.
func (r *AddPaymentRequest) Validate() []string {
	var errs []string
	if !r.Amount.IsPositive() {
		errs = append(errs, "payment amount must be positive")
	}
	if r.PaymentMethod == "" {
		errs = append(errs, "payment method is required")
	}
	return errs
}

// UploadDocumentRequest payload for POST /api/orders/:id/documents.
type UploadDocumentRequest struct {
	DocumentType string `json:"document_type"`
	DocumentURL  string `json:"document_url"`
}

// Validate checks the payload.
func (r *UploadDocumentRequest) Validate() []string {
	var errs []string
	if !entity.ValidDocumentType(r.DocumentType) {
		errs = append(errs, "document_type must be one of invoice, packing_list, quality_certificate, transport_receipt, delivery_proof")
	}
	if r.DocumentURL == "" {
		errs = append(errs, "document_url is required")
	}
	return errs
}

// OrderListQuery query parameters for GET /api/orders.
type OrderListQuery struct {
	PageRequest
	Status string `query:"status"`
}

// OrderResponse an order with party and product summaries populated.
type OrderResponse struct {
	ID          string                 `json:"id"`
	OrderNumber string                 `json:"orderNumber"`
	RFQID       string                 `json:"rfq"`
	Buyer       *UserSummary           `json:"buyer,omitempty"`
	SHG         *UserSummary           `json:"shg,omitempty"`
	Product     *ProductSummary        `json:"product,omitempty"`
	Details     entity.OrderDetails    `json:"order_details"`
	Delivery    entity.Delivery        `json:"delivery"`
	Payment     entity.Payment         `json:"payment"`
	Status      string                 `json:"status"`
	Timeline    []entity.TimelineEntry `json:"timeline"`
	Documents   map[string]string      `json:"documents"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

// OrderListResponse paged order listing.
type OrderListResponse struct {
	Orders     []OrderResponse `json:"orders"`
	Pagination Pagination      `json:"pagination"`
}
