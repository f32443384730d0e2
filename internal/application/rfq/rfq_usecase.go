package rfq

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

// UseCase the RFQ workflow: creation, role-scoped listing, quoting and
// the status machine.
type UseCase struct {
	rfqs     repository.RFQRepository
	products repository.ProductRepository
	users    repository.UserRepository
}

// NewUseCase builds the RFQ use case.
func NewUseCase(rfqs repository.RFQRepository, products repository.ProductRepository, users repository.UserRepository) *UseCase {
	return &UseCase{rfqs: rfqs, products: products, users: users}
}

// Create opens an RFQ against one product. The referenced product must
// exist; the RFQ starts in pending with a creation timeline entry.
func (uc *UseCase) Create(ctx context.Context, actor authz.Actor, in dto.CreateRFQRequest) (*dto.RFQResponse, error) {
	product, err := uc.products.GetByID(ctx, in.Product)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if in.Quantity.UnitPrice.IsPositive() && in.Quantity.TotalValue.IsZero() {
		in.Quantity.TotalValue = in.Quantity.UnitPrice.Mul(decimal.NewFromFloat(in.Quantity.RequestedKg))
	}

	now := time.Now()
	r := &entity.RFQ{
		ID:             uuid.New().String(),
		BuyerID:        actor.ID,
		ProductID:      product.ID,
		Quantity:       in.Quantity,
		Specifications: in.Specifications,
		Status:         entity.RFQPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	r.AppendTimeline(entity.RFQPending, "RFQ created", actor.ID)

	if err := uc.rfqs.Create(ctx, r); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, r), nil
}

// List returns RFQs visible to the actor: admins and csr see everything,
// buyers their own, shg units those referencing their products.
func (uc *UseCase) List(ctx context.Context, actor authz.Actor, q dto.RFQListQuery) (*dto.RFQListResponse, error) {
	q.Normalize()
	f := repository.RFQFilter{
		Status: q.Status,
		Limit:  q.Limit,
		Offset: q.Offset(),
	}
	switch actor.Role {
	case entity.RoleBuyer:
		f.BuyerID = actor.ID
	case entity.RoleSHG:
		ids, err := uc.products.IDsBySHG(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return &dto.RFQListResponse{
				RFQs:       []dto.RFQResponse{},
				Pagination: dto.NewPagination(q.Page, q.Limit, 0),
			}, nil
		}
		f.ProductIDs = ids
	}
	return uc.list(ctx, f, q.Page, q.Limit)
}

// ListMine returns the buyer actor's own RFQs.
func (uc *UseCase) ListMine(ctx context.Context, actorID string, q dto.RFQListQuery) (*dto.RFQListResponse, error) {
	q.Normalize()
	f := repository.RFQFilter{
		Status:  q.Status,
		BuyerID: actorID,
		Limit:   q.Limit,
		Offset:  q.Offset(),
	}
	return uc.list(ctx, f, q.Page, q.Limit)
}

func (uc *UseCase) list(ctx context.Context, f repository.RFQFilter, page, limit int) (*dto.RFQListResponse, error) {
	list, err := uc.rfqs.List(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := uc.rfqs.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RFQResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *uc.toResponse(ctx, r))
	}
	return &dto.RFQListResponse{
		RFQs:       items,
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}

// GetByID returns one RFQ after a per-resource visibility check.
func (uc *UseCase) GetByID(ctx context.Context, actor authz.Actor, id string) (*dto.RFQResponse, error) {
	r, product, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.Can(actor, authz.ActionView, authz.RFQResource(r, productOwner(product))) {
		return nil, domain.ErrForbidden
	}
	return uc.toResponse(ctx, r), nil
}

// SubmitQuote records the shg owner's priced response. One quote per shg;
// only pending and under_review RFQs accept quotes. The first quote moves a
// pending RFQ to under_review.
func (uc *UseCase) SubmitQuote(ctx context.Context, actor authz.Actor, id string, in dto.SubmitQuoteRequest) (*dto.RFQResponse, error) {
	r, product, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.Can(actor, authz.ActionSubmitQuote, authz.RFQResource(r, productOwner(product))) {
		return nil, domain.ErrForbidden
	}
	if !r.OpenForQuotes() {
		return nil, domain.ErrRFQNotOpen
	}
	if r.QuoteFrom(actor.ID) != nil {
		return nil, domain.ErrDuplicateQuote
	}

	r.Quotes = append(r.Quotes, entity.Quote{
		SHGID:        actor.ID,
		UnitPrice:    in.UnitPrice,
		TotalAmount:  in.UnitPrice.Mul(decimal.NewFromFloat(r.Quantity.RequestedKg)),
		LeadTimeDays: in.LeadTimeDays,
		ValidityDays: in.ValidityDays,
		Message:      in.Message,
		Documents:    in.Documents,
		SubmittedAt:  time.Now(),
	})
	if r.Status == entity.RFQPending {
		r.Status = entity.RFQUnderReview
	}
	// Distinct event label so quote submissions stay distinguishable from
	// plain status changes in the audit trail.
	r.AppendTimeline("quote_submitted", "Quote submitted", actor.ID)
	r.UpdatedAt = time.Now()

	if err := uc.rfqs.Update(ctx, r); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, r), nil
}

// UpdateStatus moves the RFQ through its state machine. Owning buyer or
// admin only; illegal moves return ErrInvalidTransition.
func (uc *UseCase) UpdateStatus(ctx context.Context, actor authz.Actor, id string, in dto.UpdateRFQStatusRequest) (*dto.RFQResponse, error) {
	r, product, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.Can(actor, authz.ActionSetRFQStatus, authz.RFQResource(r, productOwner(product))) {
		return nil, domain.ErrForbidden
	}
	if !entity.RFQCanTransition(r.Status, in.Status) {
		return nil, domain.ErrInvalidTransition
	}

	r.Status = in.Status
	r.AppendTimeline(in.Status, in.Notes, actor.ID)
	r.UpdatedAt = time.Now()

	if err := uc.rfqs.Update(ctx, r); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, r), nil
}

// load fetches an RFQ plus its referenced product. The product may be nil
// if it was deleted after the RFQ was opened.
func (uc *UseCase) load(ctx context.Context, id string) (*entity.RFQ, *entity.Product, error) {
	r, err := uc.rfqs.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if r == nil {
		return nil, nil, domain.ErrNotFound
	}
	product, err := uc.products.GetByID(ctx, r.ProductID)
	if err != nil {
		return nil, nil, err
	}
	return r, product, nil
}

func productOwner(p *entity.Product) string {
	if p == nil {
		return ""
	}
	return p.SHGID
}

func (uc *UseCase) toResponse(ctx context.Context, r *entity.RFQ) *dto.RFQResponse {
	resp := &dto.RFQResponse{
		ID:             r.ID,
		RFQNumber:      r.RFQNumber,
		Quantity:       r.Quantity,
		Specifications: r.Specifications,
		Status:         r.Status,
		Quotes:         make([]dto.QuoteResponse, 0, len(r.Quotes)),
		Timeline:       r.Timeline,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if buyer, err := uc.users.GetByID(ctx, r.BuyerID); err == nil && buyer != nil {
		resp.Buyer = &dto.UserSummary{
			ID:           buyer.ID,
			Name:         buyer.Name,
			Organization: buyer.Organization,
		}
	}
	if product, err := uc.products.GetByID(ctx, r.ProductID); err == nil && product != nil {
		resp.Product = &dto.ProductSummary{
			ID:       product.ID,
			Name:     product.Name,
			Category: product.Category,
			Images:   product.Images,
		}
	}
	for _, q := range r.Quotes {
		item := dto.QuoteResponse{
			UnitPrice:    q.UnitPrice,
			TotalAmount:  q.TotalAmount,
			LeadTimeDays: q.LeadTimeDays,
			ValidityDays: q.ValidityDays,
			Message:      q.Message,
			Documents:    q.Documents,
			SubmittedAt:  q.SubmittedAt,
		}
		if shg, err := uc.users.GetByID(ctx, q.SHGID); err == nil && shg != nil {
			item.SHG = &dto.UserSummary{
				ID:           shg.ID,
				Name:         shg.Name,
				Organization: shg.Organization,
			}
		}
		resp.Quotes = append(resp.Quotes, item)
	}
	return resp
}
