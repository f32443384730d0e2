package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templecycle/templecycle-api/internal/application/analytics"
	"github.com/templecycle/templecycle-api/internal/domain/entity"
	"github.com/templecycle/templecycle-api/internal/infrastructure/memory"
)

type dashboardFixture struct {
	uc       *analytics.UseCase
	shgID    string
	buyerID  string
	products *memory.ProductRepo
	rfqs     *memory.RFQRepo
	orders   *memory.OrderRepo
}

func newDashboardFixture(t *testing.T) *dashboardFixture {
	t.Helper()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	ctx := context.Background()
	now := time.Now()

	shg := &entity.User{ID: uuid.NewString(), Name: "Meenakshi SHG", Email: "shg@test.in", Role: entity.RoleSHG, IsActive: true, CreatedAt: now, UpdatedAt: now}
	buyer := &entity.User{ID: uuid.NewString(), Name: "Buyer Co", Email: "buyer@test.in", Role: entity.RoleBuyer, IsActive: true, CreatedAt: now, UpdatedAt: now}
	dormant := &entity.User{ID: uuid.NewString(), Name: "Gone Co", Email: "gone@test.in", Role: entity.RoleBuyer, IsActive: false, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, users.Create(ctx, shg))
	require.NoError(t, users.Create(ctx, buyer))
	require.NoError(t, users.Create(ctx, dormant))

	return &dashboardFixture{
		uc:       analytics.NewUseCase(memory.NewAnalyticsRepository(store)),
		shgID:    shg.ID,
		buyerID:  buyer.ID,
		products: memory.NewProductRepository(store),
		rfqs:     memory.NewRFQRepository(store),
		orders:   memory.NewOrderRepository(store),
	}
}

func (f *dashboardFixture) addProduct(t *testing.T, category string, monthlyTonnes float64) string {
	t.Helper()
	p := &entity.Product{
		ID:           uuid.NewString(),
		SHGID:        f.shgID,
		Name:         "Product",
		Category:     category,
		Status:       entity.ProductAvailable,
		Availability: entity.Availability{MonthlyAvailabilityTonnes: monthlyTonnes},
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, f.products.Create(context.Background(), p))
	return p.ID
}

func (f *dashboardFixture) addRFQ(t *testing.T, productID, status string) {
	t.Helper()
	require.NoError(t, f.rfqs.Create(context.Background(), &entity.RFQ{
		ID:        uuid.NewString(),
		BuyerID:   f.buyerID,
		ProductID: productID,
		Status:    status,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}))
}

func (f *dashboardFixture) addOrder(t *testing.T, status string, total int64, createdAt time.Time) {
	t.Helper()
	require.NoError(t, f.orders.Create(context.Background(), &entity.Order{
		ID:        uuid.NewString(),
		RFQID:     uuid.NewString(),
		BuyerID:   f.buyerID,
		SHGID:     f.shgID,
		ProductID: uuid.NewString(),
		Details:   entity.OrderDetails{TotalAmount: decimal.NewFromInt(total), Currency: "INR"},
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Admin dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestAdminDashboard_OverviewCounts(t *testing.T) {
	f := newDashboardFixture(t)
	productID := f.addProduct(t, entity.CategoryIncensePowder, 50)
	f.addRFQ(t, productID, entity.RFQPending)
	f.addOrder(t, entity.OrderCompleted, 27500, time.Now())

	out, err := f.uc.Admin(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), out.Overview.TotalUsers)
	assert.Equal(t, int64(1), out.Overview.TotalProducts)
	assert.Equal(t, int64(1), out.Overview.TotalRFQs)
	assert.Equal(t, int64(1), out.Overview.TotalOrders)
	assert.Equal(t, int64(1), out.Overview.ActiveSHGs)
	assert.Equal(t, int64(1), out.Overview.ActiveBuyers, "inactive accounts are not counted")
}

func TestAdminDashboard_RevenueCountsFulfilledOrdersOnly(t *testing.T) {
	f := newDashboardFixture(t)
	now := time.Now()
	f.addOrder(t, entity.OrderCompleted, 10000, now)
	f.addOrder(t, entity.OrderDelivered, 5000, now)
	f.addOrder(t, entity.OrderConfirmed, 99999, now)
	f.addOrder(t, entity.OrderCancelled, 99999, now)

	out, err := f.uc.Admin(context.Background())
	require.NoError(t, err)

	require.Len(t, out.MonthlyRevenue, 1)
	assert.True(t, out.MonthlyRevenue[0].Revenue.Equal(decimal.NewFromInt(15000)),
		"confirmed and cancelled orders contribute no revenue")
	assert.Equal(t, int64(2), out.MonthlyRevenue[0].Orders)
}

func TestAdminDashboard_Alerts(t *testing.T) {
	f := newDashboardFixture(t)
	// One product under the 10-tonne availability threshold.
	lowStockID := f.addProduct(t, entity.CategoryCompost, 4)
	f.addProduct(t, entity.CategoryIncensePowder, 50)
	// Six open RFQs, one past the pending alert floor of five.
	for i := 0; i < 6; i++ {
		f.addRFQ(t, lowStockID, entity.RFQPending)
	}

	out, err := f.uc.Admin(context.Background())
	require.NoError(t, err)

	require.Len(t, out.Alerts, 2)
	assert.Equal(t, "low_stock", out.Alerts[0].Type)
	assert.Equal(t, int64(1), out.Alerts[0].Count)
	assert.Equal(t, "pending_rfqs", out.Alerts[1].Type)
	assert.Equal(t, int64(6), out.Alerts[1].Count)
}

func TestAdminDashboard_QuietPlatformHasNoAlerts(t *testing.T) {
	f := newDashboardFixture(t)
	f.addProduct(t, entity.CategoryCompost, 50)

	out, err := f.uc.Admin(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out.Alerts)
}

// ──────────────────────────────────────────────────────────────────────────────
// SHG dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestSHGDashboard_StatsScopedToUnit(t *testing.T) {
	f := newDashboardFixture(t)
	productID := f.addProduct(t, entity.CategoryIncensePowder, 50)
	f.addRFQ(t, productID, entity.RFQQuoted)
	f.addRFQ(t, uuid.NewString(), entity.RFQPending) // someone else's product
	f.addOrder(t, entity.OrderCompleted, 27500, time.Now())
	f.addOrder(t, entity.OrderConfirmed, 5000, time.Now())

	out, err := f.uc.SHG(context.Background(), f.shgID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), out.Stats.Products)
	assert.Equal(t, int64(1), out.Stats.RFQs, "only RFQs against the unit's own products count")
	assert.Equal(t, int64(2), out.Stats.Orders)
	assert.True(t, out.Stats.Revenue.Equal(decimal.NewFromInt(27500)),
		"revenue counts fulfilled orders only")
	assert.NotEmpty(t, out.WeeklyOrders)
}

func TestSHGDashboard_UnknownUnitIsEmpty(t *testing.T) {
	f := newDashboardFixture(t)
	out, err := f.uc.SHG(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Zero(t, out.Stats.Products)
	assert.Empty(t, out.WeeklyOrders)
}

// ──────────────────────────────────────────────────────────────────────────────
// Buyer dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestBuyerDashboard_Breakdowns(t *testing.T) {
	f := newDashboardFixture(t)
	productID := f.addProduct(t, entity.CategoryIncensePowder, 50)
	f.addRFQ(t, productID, entity.RFQPending)
	f.addRFQ(t, productID, entity.RFQAccepted)
	f.addRFQ(t, productID, entity.RFQAccepted)
	f.addOrder(t, entity.OrderCompleted, 27500, time.Now())
	f.addOrder(t, entity.OrderConfirmed, 5000, time.Now())

	out, err := f.uc.Buyer(context.Background(), f.buyerID)
	require.NoError(t, err)

	assert.Equal(t, int64(3), out.Stats.RFQs)
	assert.Equal(t, int64(2), out.Stats.Orders)
	assert.True(t, out.Stats.Spend.Equal(decimal.NewFromInt(27500)))

	// Breakdowns come back sorted by status name.
	require.Len(t, out.RFQBreakdown, 2)
	assert.Equal(t, entity.RFQAccepted, out.RFQBreakdown[0].Status)
	assert.Equal(t, int64(2), out.RFQBreakdown[0].Count)
	assert.Equal(t, entity.RFQPending, out.RFQBreakdown[1].Status)

	require.Len(t, out.OrderBreakdown, 2)
	assert.Equal(t, entity.OrderCompleted, out.OrderBreakdown[0].Status)
	assert.Equal(t, entity.OrderConfirmed, out.OrderBreakdown[1].Status)
}
