package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/templecycle/templecycle-api/internal/application/dto"
	"github.com/templecycle/templecycle-api/internal/domain"
	"github.com/templecycle/templecycle-api/internal/domain/authz"
	"github.com/templecycle/templecycle-api/internal/domain/entity"
	"github.com/templecycle/templecycle-api/internal/domain/repository"
)

// UseCase the order lifecycle: creation from an accepted RFQ, fulfillment
// status machine, payment ledger and documents.
type UseCase struct {
	orders   repository.OrderRepository
	rfqs     repository.RFQRepository
	products repository.ProductRepository
	users    repository.UserRepository
	txRunner TxRunner
	invoices InvoiceRenderer
}

// NewUseCase builds the order use case.
func NewUseCase(
	orders repository.OrderRepository,
	rfqs repository.RFQRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
	txRunner TxRunner,
	invoices InvoiceRenderer,
) *UseCase {
	return &UseCase{
		orders:   orders,
		rfqs:     rfqs,
		products: products,
		users:    users,
		txRunner: txRunner,
		invoices: invoices,
	}
}

// Create converts an accepted RFQ into an order and closes the RFQ in the
// same transaction, so a second create against the same RFQ fails with
// ErrRFQNotAccepted. Pricing is taken from the product owner's quote when
// present, otherwise from the buyer's indicative figures.
func (uc *UseCase) Create(ctx context.Context, actor authz.Actor, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	var created *entity.Order

	err := uc.txRunner.Run(ctx, func(rfqRepo repository.RFQRepository, orderRepo repository.OrderRepository) error {
		r, err := rfqRepo.GetByID(ctx, in.RFQ)
		if err != nil {
			return err
		}
		if r == nil {
			return domain.ErrNotFound
		}

		product, err := uc.products.GetByID(ctx, r.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		if !authz.Can(actor, authz.ActionSetRFQStatus, authz.RFQResource(r, product.SHGID)) {
			return domain.ErrForbidden
		}
		if r.Status != entity.RFQAccepted {
			return domain.ErrRFQNotAccepted
		}

		unitPrice := r.Quantity.UnitPrice
		if q := r.QuoteFrom(product.SHGID); q != nil {
			unitPrice = q.UnitPrice
		} else if n := len(r.Quotes); n > 0 {
			unitPrice = r.Quotes[n-1].UnitPrice
		}
		total := unitPrice.Mul(decimal.NewFromFloat(r.Quantity.RequestedKg))

		now := time.Now()
		o := &entity.Order{
			ID:        uuid.New().String(),
			RFQID:     r.ID,
			BuyerID:   r.BuyerID,
			SHGID:     product.SHGID,
			ProductID: product.ID,
			Details: entity.OrderDetails{
				QuantityKg:  r.Quantity.RequestedKg,
				UnitPrice:   unitPrice,
				TotalAmount: total,
				Currency:    "INR",
			},
			Delivery: entity.Delivery{
				Address:          in.Delivery.Address,
				DeliveryDate:     in.Delivery.DeliveryDate,
				DeliveryMethod:   in.Delivery.DeliveryMethod,
				TransportDetails: in.Delivery.TransportDetails,
			},
			Payment: entity.Payment{
				PaymentTerms:      in.Payment.PaymentTerms,
				AdvancePercentage: in.Payment.AdvancePercentage,
				AdvancePaid:       decimal.Zero,
				BalanceDue:        total,
				PaymentStatus:     entity.PaymentPending,
			},
			Status:    entity.OrderConfirmed,
			Documents: map[string]string{},
			CreatedAt: now,
			UpdatedAt: now,
		}
		o.AppendTimeline(entity.OrderConfirmed, "Order created from "+r.RFQNumber, actor.ID)

		if err := orderRepo.Create(ctx, o); err != nil {
			return err
		}

		r.Status = entity.RFQClosed
		r.AppendTimeline(entity.RFQClosed, "Order "+o.OrderNumber+" created", actor.ID)
		r.UpdatedAt = now
		if err := rfqRepo.Update(ctx, r); err != nil {
			return err
		}

		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, created), nil
}

// List returns orders visible to the actor: admins and csr see everything,
// buyers and shg units their own sides.
func (uc *UseCase) List(ctx context.Context, actor authz.Actor, q dto.OrderListQuery) (*dto.OrderListResponse, error) {
	q.Normalize()
	f := repository.OrderFilter{
		Status: q.Status,
		Limit:  q.Limit,
		Offset: q.Offset(),
	}
	switch actor.Role {
	case entity.RoleBuyer:
		f.BuyerID = actor.ID
	case entity.RoleSHG:
		f.SHGID = actor.ID
	}

	list, err := uc.orders.List(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := uc.orders.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *uc.toResponse(ctx, o))
	}
	return &dto.OrderListResponse{
		Orders:     items,
		Pagination: dto.NewPagination(q.Page, q.Limit, total),
	}, nil
}

// GetByID returns one order after a per-resource visibility check.
func (uc *UseCase) GetByID(ctx context.Context, actor authz.Actor, id string) (*dto.OrderResponse, error) {
	o, err := uc.loadAuthorized(ctx, actor, id, authz.ActionView)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, o), nil
}

// UpdateStatus moves the order through its fulfillment machine. Either
// party or an admin; illegal moves return ErrInvalidTransition. A delivered
// transition stamps the actual delivery date.
func (uc *UseCase) UpdateStatus(ctx context.Context, actor authz.Actor, id string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	o, err := uc.loadAuthorized(ctx, actor, id, authz.ActionSetOrderStatus)
	if err != nil {
		return nil, err
	}
	if !entity.OrderCanTransition(o.Status, in.Status) {
		return nil, domain.ErrInvalidTransition
	}

	o.Status = in.Status
	if in.TrackingNumber != "" {
		o.Delivery.TrackingNumber = in.TrackingNumber
	}
	if in.Status == entity.OrderDelivered {
		now := time.Now()
		o.Delivery.DeliveryDate = &now
	}
	o.AppendTimeline(in.Status, in.Notes, actor.ID)
	o.UpdatedAt = time.Now()

	if err := uc.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, o), nil
}

// AddPayment appends a ledger entry and re-derives the payment figures.
// Owning buyer or admin only.
func (uc *UseCase) AddPayment(ctx context.Context, actor authz.Actor, id string, in dto.AddPaymentRequest) (*dto.OrderResponse, error) {
	o, err := uc.loadAuthorized(ctx, actor, id, authz.ActionRecordPayment)
	if err != nil {
		return nil, err
	}

	o.Payment.History = append(o.Payment.History, entity.PaymentRecord{
		Amount:        in.Amount,
		PaymentDate:   time.Now(),
		PaymentMethod: in.PaymentMethod,
		TransactionID: in.TransactionID,
		Notes:         in.Notes,
	})
	o.RecomputePayment()
	o.UpdatedAt = time.Now()

	if err := uc.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, o), nil
}

// UploadDocument attaches a document URL under its type; the latest upload
// per type wins. Owning shg or admin only.
func (uc *UseCase) UploadDocument(ctx context.Context, actor authz.Actor, id string, in dto.UploadDocumentRequest) (*dto.OrderResponse, error) {
	o, err := uc.loadAuthorized(ctx, actor, id, authz.ActionAttachDocument)
	if err != nil {
		return nil, err
	}

	if o.Documents == nil {
		o.Documents = map[string]string{}
	}
	o.Documents[in.DocumentType] = in.DocumentURL
	o.UpdatedAt = time.Now()

	if err := uc.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, o), nil
}

// Invoice renders the order invoice PDF for any party allowed to view the
// order.
func (uc *UseCase) Invoice(ctx context.Context, actor authz.Actor, id string) ([]byte, error) {
	o, err := uc.loadAuthorized(ctx, actor, id, authz.ActionView)
	if err != nil {
		return nil, err
	}
	buyer, err := uc.users.GetByID(ctx, o.BuyerID)
	if err != nil {
		return nil, err
	}
	shg, err := uc.users.GetByID(ctx, o.SHGID)
	if err != nil {
		return nil, err
	}
	product, err := uc.products.GetByID(ctx, o.ProductID)
	if err != nil {
		return nil, err
	}
	return uc.invoices.Render(o, buyer, shg, product)
}

func (uc *UseCase) loadAuthorized(ctx context.Context, actor authz.Actor, id string, action authz.Action) (*entity.Order, error) {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if !authz.Can(actor, action, authz.OrderResource(o)) {
		return nil, domain.ErrForbidden
	}
	return o, nil
}

func (uc *UseCase) toResponse(ctx context.Context, o *entity.Order) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		RFQID:       o.RFQID,
		Details:     o.Details,
		Delivery:    o.Delivery,
		Payment:     o.Payment,
		Status:      o.Status,
		Timeline:    o.Timeline,
		Documents:   o.Documents,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	if buyer, err := uc.users.GetByID(ctx, o.BuyerID); err == nil && buyer != nil {
		resp.Buyer = &dto.UserSummary{
			ID:           buyer.ID,
			Name:         buyer.Name,
			Organization: buyer.Organization,
			Email:        buyer.Email,
			Phone:        buyer.Phone,
		}
	}
	if shg, err := uc.users.GetByID(ctx, o.SHGID); err == nil && shg != nil {
		resp.SHG = &dto.UserSummary{
			ID:           shg.ID,
			Name:         shg.Name,
			Organization: shg.Organization,
			Email:        shg.Email,
			Phone:        shg.Phone,
		}
	}
	if product, err := uc.products.GetByID(ctx, o.ProductID); err == nil && product != nil {
		resp.Product = &dto.ProductSummary{
			ID:       product.ID,
			Name:     product.Name,
			Category: product.Category,
			Images:   product.Images,
		}
	}
	return resp
}
