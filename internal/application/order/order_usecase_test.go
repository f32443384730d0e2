package order_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templecycle/templecycle-api/internal/application/dto"
	apporder "github.com/templecycle/templecycle-api/internal/application/order"
	"github.com/templecycle/templecycle-api/internal/application/rfq"
	"github.com/templecycle/templecycle-api/internal/domain"
	"github.com/templecycle/templecycle-api/internal/domain/authz"
	"github.com/templecycle/templecycle-api/internal/domain/entity"
	"github.com/templecycle/templecycle-api/internal/infrastructure/memory"
)

// stubRenderer satisfies the invoice port without pulling in the PDF engine.
type stubRenderer struct{}

func (stubRenderer) Render(_ *entity.Order, _, _ *entity.User, _ *entity.Product) ([]byte, error) {
	return []byte("%PDF-stub"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: full memory wiring with an RFQ taken through quoting to accepted
// ──────────────────────────────────────────────────────────────────────────────

type orderFixture struct {
	orderUC *apporder.UseCase
	rfqUC   *rfq.UseCase
	buyer   authz.Actor
	shg     authz.Actor
	rfqID   string
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	products := memory.NewProductRepository(store)
	rfqs := memory.NewRFQRepository(store)
	orders := memory.NewOrderRepository(store)

	ctx := context.Background()
	now := time.Now()

	buyer := &entity.User{ID: uuid.NewString(), Name: "Buyer Co", Email: "buyer@test.in", Role: entity.RoleBuyer, IsActive: true, CreatedAt: now, UpdatedAt: now}
	shg := &entity.User{ID: uuid.NewString(), Name: "Meenakshi SHG", Email: "shg@test.in", Role: entity.RoleSHG, IsActive: true, CreatedAt: now, UpdatedAt: now}
	for _, u := range []*entity.User{buyer, shg} {
		require.NoError(t, users.Create(ctx, u))
	}

	product := &entity.Product{
		ID:        uuid.NewString(),
		SHGID:     shg.ID,
		Name:      "Marigold Powder",
		Category:  entity.CategoryIncensePowder,
		Status:    entity.ProductAvailable,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, products.Create(ctx, product))

	f := &orderFixture{
		orderUC: apporder.NewUseCase(orders, rfqs, products, users, memory.NewTxRunner(store), stubRenderer{}),
		rfqUC:   rfq.NewUseCase(rfqs, products, users),
		buyer:   authz.Actor{ID: buyer.ID, Role: buyer.Role},
		shg:     authz.Actor{ID: shg.ID, Role: shg.Role},
	}

	created, err := f.rfqUC.Create(ctx, f.buyer, dto.CreateRFQRequest{
		Product:  product.ID,
		Quantity: entity.RFQQuantity{RequestedKg: 500, UnitPrice: decimal.NewFromInt(50)},
	})
	require.NoError(t, err)
	f.rfqID = created.ID

	_, err = f.rfqUC.SubmitQuote(ctx, f.shg, f.rfqID, dto.SubmitQuoteRequest{
		UnitPrice:    decimal.NewFromInt(55),
		ValidityDays: 30,
	})
	require.NoError(t, err)

	_, err = f.rfqUC.UpdateStatus(ctx, f.buyer, f.rfqID, dto.UpdateRFQStatusRequest{Status: entity.RFQAccepted})
	require.NoError(t, err)

	return f
}

func (f *orderFixture) createOrder(t *testing.T) *dto.OrderResponse {
	t.Helper()
	in := dto.CreateOrderRequest{RFQ: f.rfqID}
	in.Delivery.Address = entity.Address{City: "Salem", State: "Tamil Nadu"}
	in.Payment.PaymentTerms = "30% advance"
	in.Payment.AdvancePercentage = 30

	out, err := f.orderUC.Create(context.Background(), f.buyer, in)
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Creation
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderCreate_PricesFromOwnerQuoteAndClosesRFQ(t *testing.T) {
	f := newOrderFixture(t)
	out := f.createOrder(t)

	assert.Equal(t, entity.OrderConfirmed, out.Status)
	assert.Equal(t, "ORD-0001", out.OrderNumber)
	assert.True(t, out.Details.UnitPrice.Equal(decimal.NewFromInt(55)),
		"unit price comes from the product owner's quote, not the buyer's indicative price")
	assert.True(t, out.Details.TotalAmount.Equal(decimal.NewFromInt(27500)))
	assert.Equal(t, "INR", out.Details.Currency)
	assert.Equal(t, entity.PaymentPending, out.Payment.PaymentStatus)
	assert.True(t, out.Payment.BalanceDue.Equal(decimal.NewFromInt(27500)))

	got, err := f.rfqUC.GetByID(context.Background(), f.buyer, f.rfqID)
	require.NoError(t, err)
	assert.Equal(t, entity.RFQClosed, got.Status, "the source RFQ closes in the same transaction")
}

func TestOrderCreate_SecondOrderAgainstSameRFQRefused(t *testing.T) {
	f := newOrderFixture(t)
	f.createOrder(t)

	in := dto.CreateOrderRequest{RFQ: f.rfqID}
	_, err := f.orderUC.Create(context.Background(), f.buyer, in)
	assert.ErrorIs(t, err, domain.ErrRFQNotAccepted,
		"the RFQ was closed by the first order, so a second create fails")
}

func TestOrderCreate_RFQNotAcceptedRefused(t *testing.T) {
	f := newOrderFixture(t)

	// Close the RFQ without an order; accepted -> closed is legal.
	_, err := f.rfqUC.UpdateStatus(context.Background(), f.buyer, f.rfqID, dto.UpdateRFQStatusRequest{Status: entity.RFQClosed})
	require.NoError(t, err)

	in := dto.CreateOrderRequest{RFQ: f.rfqID}
	_, err = f.orderUC.Create(context.Background(), f.buyer, in)
	assert.ErrorIs(t, err, domain.ErrRFQNotAccepted)
}

func TestOrderCreate_ForeignBuyerRefused(t *testing.T) {
	f := newOrderFixture(t)

	stranger := authz.Actor{ID: uuid.NewString(), Role: entity.RoleBuyer}
	in := dto.CreateOrderRequest{RFQ: f.rfqID}
	_, err := f.orderUC.Create(context.Background(), stranger, in)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestOrderCreate_UnknownRFQ(t *testing.T) {
	f := newOrderFixture(t)
	in := dto.CreateOrderRequest{RFQ: uuid.NewString()}
	_, err := f.orderUC.Create(context.Background(), f.buyer, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fulfillment status machine
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderUpdateStatus_SHGMovesThroughFulfillment(t *testing.T) {
	f := newOrderFixture(t)
	created := f.createOrder(t)
	ctx := context.Background()

	out, err := f.orderUC.UpdateStatus(ctx, f.shg, created.ID, dto.UpdateOrderStatusRequest{
		Status:         entity.OrderProcessing,
		TrackingNumber: "TRK-778",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderProcessing, out.Status)
	assert.Equal(t, "TRK-778", out.Delivery.TrackingNumber)

	out, err = f.orderUC.UpdateStatus(ctx, f.shg, created.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderShipped})
	require.NoError(t, err)

	out, err = f.orderUC.UpdateStatus(ctx, f.buyer, created.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderDelivered})
	require.NoError(t, err)
	assert.NotNil(t, out.Delivery.DeliveryDate, "delivery stamps the actual date")
}

func TestOrderUpdateStatus_IllegalTransitionRefused(t *testing.T) {
	f := newOrderFixture(t)
	created := f.createOrder(t)

	_, err := f.orderUC.UpdateStatus(context.Background(), f.buyer, created.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderCompleted})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "confirmed cannot jump straight to completed")
}

// ──────────────────────────────────────────────────────────────────────────────
// Payments and documents
// ──────────────────────────────────────────────────────────────────────────────

func TestAddPayment_LedgerDrivesStatus(t *testing.T) {
	f := newOrderFixture(t)
	created := f.createOrder(t)
	ctx := context.Background()

	out, err := f.orderUC.AddPayment(ctx, f.buyer, created.ID, dto.AddPaymentRequest{
		Amount:        decimal.NewFromInt(8250),
		PaymentMethod: "bank_transfer",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPartial, out.Payment.PaymentStatus)
	assert.True(t, out.Payment.BalanceDue.Equal(decimal.NewFromInt(19250)))

	out, err = f.orderUC.AddPayment(ctx, f.buyer, created.ID, dto.AddPaymentRequest{
		Amount:        decimal.NewFromInt(19250),
		PaymentMethod: "bank_transfer",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPaid, out.Payment.PaymentStatus)
	assert.True(t, out.Payment.BalanceDue.IsZero())
	assert.Len(t, out.Payment.History, 2)
}

func TestAddPayment_SHGSideRefused(t *testing.T) {
	f := newOrderFixture(t)
	created := f.createOrder(t)

	_, err := f.orderUC.AddPayment(context.Background(), f.shg, created.ID, dto.AddPaymentRequest{
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: "cash",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUploadDocument_LatestPerTypeWins(t *testing.T) {
	f := newOrderFixture(t)
	created := f.createOrder(t)
	ctx := context.Background()

	_, err := f.orderUC.UploadDocument(ctx, f.shg, created.ID, dto.UploadDocumentRequest{
		DocumentType: entity.DocPackingList,
		DocumentURL:  "https://files.test/v1.pdf",
	})
	require.NoError(t, err)

	out, err := f.orderUC.UploadDocument(ctx, f.shg, created.ID, dto.UploadDocumentRequest{
		DocumentType: entity.DocPackingList,
		DocumentURL:  "https://files.test/v2.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://files.test/v2.pdf", out.Documents[entity.DocPackingList])
	assert.Len(t, out.Documents, 1)
}

func TestUploadDocument_BuyerSideRefused(t *testing.T) {
	f := newOrderFixture(t)
	created := f.createOrder(t)

	_, err := f.orderUC.UploadDocument(context.Background(), f.buyer, created.ID, dto.UploadDocumentRequest{
		DocumentType: entity.DocDeliveryProof,
		DocumentURL:  "https://files.test/proof.pdf",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Visibility and invoice
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderList_ScopedPerRole(t *testing.T) {
	f := newOrderFixture(t)
	f.createOrder(t)
	ctx := context.Background()

	for _, actor := range []authz.Actor{f.buyer, f.shg} {
		out, err := f.orderUC.List(ctx, actor, dto.OrderListQuery{})
		require.NoError(t, err)
		assert.Len(t, out.Orders, 1, "%s side sees its order", actor.Role)
	}

	stranger := authz.Actor{ID: uuid.NewString(), Role: entity.RoleBuyer}
	out, err := f.orderUC.List(ctx, stranger, dto.OrderListQuery{})
	require.NoError(t, err)
	assert.Empty(t, out.Orders)
}

func TestInvoice_RenderedForParties(t *testing.T) {
	f := newOrderFixture(t)
	created := f.createOrder(t)

	pdf, err := f.orderUC.Invoice(context.Background(), f.shg, created.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	stranger := authz.Actor{ID: uuid.NewString(), Role: entity.RoleSHG}
	_, err = f.orderUC.Invoice(context.Background(), stranger, created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
