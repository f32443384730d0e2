package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/templecycle/templecycle-api/internal/application/dto"
	"github.com/templecycle/templecycle-api/internal/domain/repository"
)

// Alert thresholds.
const (
	lowStockThresholdTonnes = 10.0
	pendingRFQAlertFloor    = 5
)

// UseCase the role dashboards, built on the read-only aggregation port.
type UseCase struct {
	analytics repository.AnalyticsRepository
}

// NewUseCase builds the dashboard use case.
func NewUseCase(analytics repository.AnalyticsRepository) *UseCase {
	return &UseCase{analytics: analytics}
}

// Admin returns the platform-wide dashboard: totals, six months of revenue,
// category breakdown and attention alerts.
func (uc *UseCase) Admin(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	counts, err := uc.analytics.PlatformCounts(ctx)
	if err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, -6, 0)
	monthly, err := uc.analytics.MonthlyOrderSeries(ctx, since)
	if err != nil {
		return nil, err
	}
	categories, err := uc.analytics.CategoryCounts(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.AdminDashboardResponse{}
	resp.Overview.TotalUsers = counts.TotalUsers
	resp.Overview.TotalProducts = counts.TotalProducts
	resp.Overview.TotalRFQs = counts.TotalRFQs
	resp.Overview.TotalOrders = counts.TotalOrders
	resp.Overview.ActiveSHGs = counts.ActiveSHGs
	resp.Overview.ActiveBuyers = counts.ActiveBuyers

	resp.MonthlyRevenue = make([]dto.RevenuePoint, 0, len(monthly))
	for _, m := range monthly {
		resp.MonthlyRevenue = append(resp.MonthlyRevenue, dto.RevenuePoint{
			Label:   fmt.Sprintf("%s %d", m.Month.String()[:3], m.Year),
			Revenue: m.Revenue,
			Orders:  m.Orders,
		})
	}

	resp.Categories = make([]dto.CategoryBreakdown, 0, len(categories))
	for _, c := range categories {
		resp.Categories = append(resp.Categories, dto.CategoryBreakdown{Category: c.Category, Count: c.Count})
	}

	alerts, err := uc.alerts(ctx)
	if err != nil {
		return nil, err
	}
	resp.Alerts = alerts
	return resp, nil
}

func (uc *UseCase) alerts(ctx context.Context) ([]dto.DashboardAlert, error) {
	alerts := []dto.DashboardAlert{}

	lowStock, err := uc.analytics.LowStockProductCount(ctx, lowStockThresholdTonnes)
	if err != nil {
		return nil, err
	}
	if lowStock > 0 {
		alerts = append(alerts, dto.DashboardAlert{
			Type:    "low_stock",
			Message: fmt.Sprintf("%d products below %.0f tonnes monthly availability", lowStock, lowStockThresholdTonnes),
			Count:   lowStock,
		})
	}

	pending, err := uc.analytics.PendingRFQCount(ctx)
	if err != nil {
		return nil, err
	}
	if pending > pendingRFQAlertFloor {
		alerts = append(alerts, dto.DashboardAlert{
			Type:    "pending_rfqs",
			Message: fmt.Sprintf("%d RFQs awaiting review", pending),
			Count:   pending,
		})
	}
	return alerts, nil
}

// SHG returns the per-unit dashboard: rollup stats and the last week of
// orders by day.
func (uc *UseCase) SHG(ctx context.Context, shgID string) (*dto.SHGDashboardResponse, error) {
	stats, err := uc.analytics.SHGStats(ctx, shgID)
	if err != nil {
		return nil, err
	}
	since := time.Now().AddDate(0, 0, -7)
	weekly, err := uc.analytics.WeeklyOrderSeries(ctx, shgID, since)
	if err != nil {
		return nil, err
	}

	resp := &dto.SHGDashboardResponse{}
	resp.Stats.Products = stats.Products
	resp.Stats.RFQs = stats.RFQs
	resp.Stats.Orders = stats.Orders
	resp.Stats.Revenue = stats.Revenue

	resp.WeeklyOrders = make([]dto.RevenuePoint, 0, len(weekly))
	for _, d := range weekly {
		resp.WeeklyOrders = append(resp.WeeklyOrders, dto.RevenuePoint{
			Label:   d.Weekday.String()[:3],
			Revenue: d.Revenue,
			Orders:  d.Orders,
		})
	}
	return resp, nil
}

// Buyer returns the per-buyer dashboard: rollup stats plus RFQ and order
// status breakdowns.
func (uc *UseCase) Buyer(ctx context.Context, buyerID string) (*dto.BuyerDashboardResponse, error) {
	stats, err := uc.analytics.BuyerStats(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	rfqBreakdown, err := uc.analytics.RFQStatusBreakdown(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	orderBreakdown, err := uc.analytics.OrderStatusBreakdown(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	resp := &dto.BuyerDashboardResponse{}
	resp.Stats.RFQs = stats.RFQs
	resp.Stats.Orders = stats.Orders
	resp.Stats.Spend = stats.Revenue

	resp.RFQBreakdown = make([]dto.StatusBreakdown, 0, len(rfqBreakdown))
	for _, s := range rfqBreakdown {
		resp.RFQBreakdown = append(resp.RFQBreakdown, dto.StatusBreakdown{Status: s.Status, Count: s.Count})
	}
	resp.OrderBreakdown = make([]dto.StatusBreakdown, 0, len(orderBreakdown))
	for _, s := range orderBreakdown {
		resp.OrderBreakdown = append(resp.OrderBreakdown, dto.StatusBreakdown{Status: s.Status, Count: s.Count})
	}
	return resp, nil
}
