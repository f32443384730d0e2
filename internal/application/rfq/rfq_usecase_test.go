package rfq_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templecycle/templecycle-api/internal/application/dto"
	"github.com/templecycle/templecycle-api/internal/application/rfq"
	"github.com/templecycle/templecycle-api/internal/domain"
	"github.com/templecycle/templecycle-api/internal/domain/authz"
	"github.com/templecycle/templecycle-api/internal/domain/entity"
	"github.com/templecycle/templecycle-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test fixture: memory store with one buyer, one shg and one product
// ──────────────────────────────────────────────────────────────────────────────

type rfqFixture struct {
	uc      *rfq.UseCase
	buyer   authz.Actor
	shg     authz.Actor
	admin   authz.Actor
	product *entity.Product
}

func newRFQFixture(t *testing.T) *rfqFixture {
	t.Helper()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	products := memory.NewProductRepository(store)
	rfqs := memory.NewRFQRepository(store)

	ctx := context.Background()
	now := time.Now()

	buyer := &entity.User{ID: uuid.NewString(), Name: "Buyer Co", Email: "buyer@test.in", Role: entity.RoleBuyer, IsActive: true, CreatedAt: now, UpdatedAt: now}
	shg := &entity.User{ID: uuid.NewString(), Name: "Meenakshi SHG", Email: "shg@test.in", Role: entity.RoleSHG, IsActive: true, CreatedAt: now, UpdatedAt: now}
	admin := &entity.User{ID: uuid.NewString(), Name: "Admin", Email: "admin@test.in", Role: entity.RoleAdmin, IsActive: true, CreatedAt: now, UpdatedAt: now}
	for _, u := range []*entity.User{buyer, shg, admin} {
		require.NoError(t, users.Create(ctx, u))
	}

	product := &entity.Product{
		ID:       uuid.NewString(),
		SHGID:    shg.ID,
		Name:     "Marigold Powder",
		Category: entity.CategoryIncensePowder,
		Status:   entity.ProductAvailable,
		Pricing: entity.Pricing{
			PriceMin: decimal.NewFromInt(45),
			PriceMax: decimal.NewFromInt(65),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, products.Create(ctx, product))

	return &rfqFixture{
		uc:      rfq.NewUseCase(rfqs, products, users),
		buyer:   authz.Actor{ID: buyer.ID, Role: buyer.Role},
		shg:     authz.Actor{ID: shg.ID, Role: shg.Role},
		admin:   authz.Actor{ID: admin.ID, Role: admin.Role},
		product: product,
	}
}

func (f *rfqFixture) createRFQ(t *testing.T) *dto.RFQResponse {
	t.Helper()
	out, err := f.uc.Create(context.Background(), f.buyer, dto.CreateRFQRequest{
		Product: f.product.ID,
		Quantity: entity.RFQQuantity{
			RequestedKg: 500,
			UnitPrice:   decimal.NewFromInt(50),
		},
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Creation
// ──────────────────────────────────────────────────────────────────────────────

func TestRFQCreate_StartsPendingWithNumberAndTimeline(t *testing.T) {
	f := newRFQFixture(t)
	out := f.createRFQ(t)

	assert.Equal(t, entity.RFQPending, out.Status)
	assert.Equal(t, "RFQ-001", out.RFQNumber, "first RFQ claims the first sequence value")
	require.Len(t, out.Timeline, 1)
	assert.Equal(t, "RFQ created", out.Timeline[0].Message)
	assert.True(t, out.Quantity.TotalValue.Equal(decimal.NewFromInt(25000)),
		"total value derived from unit price x kg")
}

func TestRFQCreate_UnknownProduct(t *testing.T) {
	f := newRFQFixture(t)
	_, err := f.uc.Create(context.Background(), f.buyer, dto.CreateRFQRequest{
		Product:  uuid.NewString(),
		Quantity: entity.RFQQuantity{RequestedKg: 100},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Quoting
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmitQuote_OwnerMovesRFQToUnderReview(t *testing.T) {
	f := newRFQFixture(t)
	created := f.createRFQ(t)

	out, err := f.uc.SubmitQuote(context.Background(), f.shg, created.ID, dto.SubmitQuoteRequest{
		UnitPrice:    decimal.NewFromInt(55),
		LeadTimeDays: 7,
		ValidityDays: 30,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RFQUnderReview, out.Status, "first quote moves pending to under_review")
	require.Len(t, out.Quotes, 1)
	assert.True(t, out.Quotes[0].TotalAmount.Equal(decimal.NewFromInt(27500)),
		"quote total = unit price x requested kg")
}

func TestSubmitQuote_TimelineRecordsQuoteEvent(t *testing.T) {
	f := newRFQFixture(t)
	created := f.createRFQ(t)

	out, err := f.uc.SubmitQuote(context.Background(), f.shg, created.ID, dto.SubmitQuoteRequest{
		UnitPrice: decimal.NewFromInt(55),
	})
	require.NoError(t, err)

	last := out.Timeline[len(out.Timeline)-1]
	assert.Equal(t, "quote_submitted", last.Status,
		"quote submissions carry their own event label, not the RFQ status")
	assert.Equal(t, f.shg.ID, last.UpdatedBy)
}

func TestSubmitQuote_SecondQuoteFromSameSHGRefused(t *testing.T) {
	f := newRFQFixture(t)
	created := f.createRFQ(t)

	_, err := f.uc.SubmitQuote(context.Background(), f.shg, created.ID, dto.SubmitQuoteRequest{UnitPrice: decimal.NewFromInt(55)})
	require.NoError(t, err)

	_, err = f.uc.SubmitQuote(context.Background(), f.shg, created.ID, dto.SubmitQuoteRequest{UnitPrice: decimal.NewFromInt(52)})
	assert.ErrorIs(t, err, domain.ErrDuplicateQuote)
}

func TestSubmitQuote_AdminHasNoProductToPrice(t *testing.T) {
	f := newRFQFixture(t)
	created := f.createRFQ(t)

	_, err := f.uc.SubmitQuote(context.Background(), f.admin, created.ID, dto.SubmitQuoteRequest{UnitPrice: decimal.NewFromInt(55)})
	assert.ErrorIs(t, err, domain.ErrForbidden, "quote submission has no admin bypass")
}

func TestSubmitQuote_ForeignSHGRefused(t *testing.T) {
	f := newRFQFixture(t)
	created := f.createRFQ(t)

	stranger := authz.Actor{ID: uuid.NewString(), Role: entity.RoleSHG}
	_, err := f.uc.SubmitQuote(context.Background(), stranger, created.ID, dto.SubmitQuoteRequest{UnitPrice: decimal.NewFromInt(55)})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSubmitQuote_ClosedRFQRefused(t *testing.T) {
	f := newRFQFixture(t)
	created := f.createRFQ(t)

	_, err := f.uc.UpdateStatus(context.Background(), f.buyer, created.ID, dto.UpdateRFQStatusRequest{Status: entity.RFQRejected})
	require.NoError(t, err)

	_, err = f.uc.SubmitQuote(context.Background(), f.shg, created.ID, dto.SubmitQuoteRequest{UnitPrice: decimal.NewFromInt(55)})
	assert.ErrorIs(t, err, domain.ErrRFQNotOpen)
}

// ──────────────────────────────────────────────────────────────────────────────
// Status machine
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStatus_BuyerAcceptsQuotedRFQ(t *testing.T) {
	f := newRFQFixture(t)
	created := f.createRFQ(t)

	_, err := f.uc.SubmitQuote(context.Background(), f.shg, created.ID, dto.SubmitQuoteRequest{UnitPrice: decimal.NewFromInt(55)})
	require.NoError(t, err)

	out, err := f.uc.UpdateStatus(context.Background(), f.buyer, created.ID, dto.UpdateRFQStatusRequest{
		Status: entity.RFQAccepted,
		Notes:  "price agreed",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RFQAccepted, out.Status)
	assert.Equal(t, "price agreed", out.Timeline[len(out.Timeline)-1].Message)
}

func TestUpdateStatus_IllegalTransitionRefused(t *testing.T) {
	f := newRFQFixture(t)
	created := f.createRFQ(t)

	_, err := f.uc.UpdateStatus(context.Background(), f.buyer, created.ID, dto.UpdateRFQStatusRequest{Status: entity.RFQRejected})
	require.NoError(t, err)

	// A rejected RFQ is terminal; it cannot be accepted afterwards.
	_, err = f.uc.UpdateStatus(context.Background(), f.buyer, created.ID, dto.UpdateRFQStatusRequest{Status: entity.RFQAccepted})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateStatus_ForeignBuyerRefused(t *testing.T) {
	f := newRFQFixture(t)
	created := f.createRFQ(t)

	stranger := authz.Actor{ID: uuid.NewString(), Role: entity.RoleBuyer}
	_, err := f.uc.UpdateStatus(context.Background(), stranger, created.ID, dto.UpdateRFQStatusRequest{Status: entity.RFQAccepted})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Role-scoped listing
// ──────────────────────────────────────────────────────────────────────────────

func TestList_SHGSeesOnlyRFQsAgainstItsProducts(t *testing.T) {
	f := newRFQFixture(t)
	f.createRFQ(t)

	out, err := f.uc.List(context.Background(), f.shg, dto.RFQListQuery{})
	require.NoError(t, err)
	assert.Len(t, out.RFQs, 1)

	// An shg with no products sees an empty page, not everything.
	stranger := authz.Actor{ID: uuid.NewString(), Role: entity.RoleSHG}
	out, err = f.uc.List(context.Background(), stranger, dto.RFQListQuery{})
	require.NoError(t, err)
	assert.Empty(t, out.RFQs)
	assert.Equal(t, int64(0), out.Pagination.Total)
}

func TestList_BuyerScopedToOwnRFQs(t *testing.T) {
	f := newRFQFixture(t)
	f.createRFQ(t)

	out, err := f.uc.List(context.Background(), f.buyer, dto.RFQListQuery{})
	require.NoError(t, err)
	assert.Len(t, out.RFQs, 1)

	stranger := authz.Actor{ID: uuid.NewString(), Role: entity.RoleBuyer}
	out, err = f.uc.List(context.Background(), stranger, dto.RFQListQuery{})
	require.NoError(t, err)
	assert.Empty(t, out.RFQs)
}

func TestGetByID_VisibilityEnforced(t *testing.T) {
	f := newRFQFixture(t)
	created := f.createRFQ(t)

	_, err := f.uc.GetByID(context.Background(), f.shg, created.ID)
	assert.NoError(t, err, "product owner sees the RFQ")

	stranger := authz.Actor{ID: uuid.NewString(), Role: entity.RoleBuyer}
	_, err = f.uc.GetByID(context.Background(), stranger, created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
