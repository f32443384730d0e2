package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PlatformCounts key admin-dashboard totals.
type PlatformCounts struct {
	TotalUsers    int64
	TotalProducts int64
	TotalRFQs     int64
	TotalOrders   int64
	ActiveSHGs    int64
	ActiveBuyers  int64
}

// MonthlyPoint revenue/order count for one calendar month.
type MonthlyPoint struct {
	Year    int
	Month   time.Month
	Revenue decimal.Decimal
	Orders  int64
}

// DailyPoint revenue/order count for one day of week (0=Sunday).
type DailyPoint struct {
	Weekday time.Weekday
	Revenue decimal.Decimal
	Orders  int64
}

// CategoryCount product count per catalog category.
type CategoryCount struct {
	Category string
	Count    int64
}

// StatusCount entity count per lifecycle status.
type StatusCount struct {
	Status string
	Count  int64
}

// PartyStats per-buyer or per-shg rollup.
type PartyStats struct {
	Products int64
	RFQs     int64
	Orders   int64
	Revenue  decimal.Decimal // delivered/completed orders only
}

// AnalyticsRepository exposes the read-only aggregations behind the
// dashboards. No write-side logic.
type AnalyticsRepository interface {
	PlatformCounts(ctx context.Context) (*PlatformCounts, error)
	MonthlyOrderSeries(ctx context.Context, since time.Time) ([]MonthlyPoint, error)
	CategoryCounts(ctx context.Context) ([]CategoryCount, error)
	LowStockProductCount(ctx context.Context, thresholdTonnes float64) (int64, error)
	PendingRFQCount(ctx context.Context) (int64, error)
	SHGStats(ctx context.Context, shgID string) (*PartyStats, error)
	WeeklyOrderSeries(ctx context.Context, shgID string, since time.Time) ([]DailyPoint, error)
	BuyerStats(ctx context.Context, buyerID string) (*PartyStats, error)
	RFQStatusBreakdown(ctx context.Context, buyerID string) ([]StatusCount, error)
	OrderStatusBreakdown(ctx context.Context, buyerID string) ([]StatusCount, error)
}
