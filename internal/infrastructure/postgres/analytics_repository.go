package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/templecycle/templecycle-api/internal/domain/entity"
	"github.com/templecycle/templecycle-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo implements the dashboard aggregations over PostgreSQL.
// Revenue figures come from the embedded order details and count only
// delivered and completed orders.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository builds the read-only analytics adapter.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

const revenueExpr = `COALESCE(SUM((details->>'total_amount')::numeric), 0)`
const revenueStatuses = `('delivered', 'completed')`

// PlatformCounts returns the admin-dashboard totals.
func (r *AnalyticsRepo) PlatformCounts(ctx context.Context) (*repository.PlatformCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM rfqs),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM users WHERE role = 'shg' AND is_active),
			(SELECT COUNT(*) FROM users WHERE role = 'buyer' AND is_active)`
	var c repository.PlatformCounts
	err := r.q.QueryRow(ctx, query).Scan(
		&c.TotalUsers, &c.TotalProducts, &c.TotalRFQs, &c.TotalOrders,
		&c.ActiveSHGs, &c.ActiveBuyers,
	)
	if err != nil {
		return nil, fmt.Errorf("platform counts: %w", err)
	}
	return &c, nil
}

// MonthlyOrderSeries returns revenue and order counts per month since the
// given time.
func (r *AnalyticsRepo) MonthlyOrderSeries(ctx context.Context, since time.Time) ([]repository.MonthlyPoint, error) {
	query := `
		SELECT EXTRACT(YEAR FROM created_at)::int, EXTRACT(MONTH FROM created_at)::int,
		       ` + revenueExpr + `, COUNT(*)
		FROM orders
		WHERE created_at >= $1 AND status IN ` + revenueStatuses + `
		GROUP BY 1, 2
		ORDER BY 1, 2`
	rows, err := r.q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("monthly order series: %w", err)
	}
	defer rows.Close()

	var series []repository.MonthlyPoint
	for rows.Next() {
		var p repository.MonthlyPoint
		var month int
		if err := rows.Scan(&p.Year, &month, &p.Revenue, &p.Orders); err != nil {
			return nil, fmt.Errorf("scan monthly point: %w", err)
		}
		p.Month = time.Month(month)
		series = append(series, p)
	}
	return series, rows.Err()
}

// CategoryCounts returns product counts per catalog category.
func (r *AnalyticsRepo) CategoryCounts(ctx context.Context) ([]repository.CategoryCount, error) {
	rows, err := r.q.Query(ctx,
		`SELECT category, COUNT(*) FROM products GROUP BY category ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("category counts: %w", err)
	}
	defer rows.Close()

	var counts []repository.CategoryCount
	for rows.Next() {
		var c repository.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// LowStockProductCount counts available products under the monthly
// availability threshold.
func (r *AnalyticsRepo) LowStockProductCount(ctx context.Context, thresholdTonnes float64) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM products
		WHERE status = $1
		  AND (availability->>'monthly_availability_tonnes')::float < $2`
	var count int64
	if err := r.q.QueryRow(ctx, query, entity.ProductAvailable, thresholdTonnes).Scan(&count); err != nil {
		return 0, fmt.Errorf("low stock count: %w", err)
	}
	return count, nil
}

// PendingRFQCount counts RFQs still awaiting review.
func (r *AnalyticsRepo) PendingRFQCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM rfqs WHERE status IN ($1, $2)`,
		entity.RFQPending, entity.RFQUnderReview).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("pending rfq count: %w", err)
	}
	return count, nil
}

// SHGStats returns the per-unit rollup.
func (r *AnalyticsRepo) SHGStats(ctx context.Context, shgID string) (*repository.PartyStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM products WHERE shg_id = $1),
			(SELECT COUNT(*) FROM rfqs WHERE product_id IN (SELECT id FROM products WHERE shg_id = $1)),
			(SELECT COUNT(*) FROM orders WHERE shg_id = $1),
			(SELECT ` + revenueExpr + ` FROM orders WHERE shg_id = $1 AND status IN ` + revenueStatuses + `)`
	var s repository.PartyStats
	if err := r.q.QueryRow(ctx, query, shgID).Scan(&s.Products, &s.RFQs, &s.Orders, &s.Revenue); err != nil {
		return nil, fmt.Errorf("shg stats: %w", err)
	}
	return &s, nil
}

// WeeklyOrderSeries returns revenue and order counts per day of week for one
// shg since the given time.
func (r *AnalyticsRepo) WeeklyOrderSeries(ctx context.Context, shgID string, since time.Time) ([]repository.DailyPoint, error) {
	query := `
		SELECT EXTRACT(DOW FROM created_at)::int, ` + revenueExpr + `, COUNT(*)
		FROM orders
		WHERE shg_id = $1 AND created_at >= $2
		GROUP BY 1
		ORDER BY 1`
	rows, err := r.q.Query(ctx, query, shgID, since)
	if err != nil {
		return nil, fmt.Errorf("weekly order series: %w", err)
	}
	defer rows.Close()

	var series []repository.DailyPoint
	for rows.Next() {
		var p repository.DailyPoint
		var dow int
		if err := rows.Scan(&dow, &p.Revenue, &p.Orders); err != nil {
			return nil, fmt.Errorf("scan daily point: %w", err)
		}
		p.Weekday = time.Weekday(dow)
		series = append(series, p)
	}
	return series, rows.Err()
}

// BuyerStats returns the per-buyer rollup. Products is always zero for
// buyers.
func (r *AnalyticsRepo) BuyerStats(ctx context.Context, buyerID string) (*repository.PartyStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM rfqs WHERE buyer_id = $1),
			(SELECT COUNT(*) FROM orders WHERE buyer_id = $1),
			(SELECT ` + revenueExpr + ` FROM orders WHERE buyer_id = $1 AND status IN ` + revenueStatuses + `)`
	s := repository.PartyStats{Revenue: decimal.Zero}
	if err := r.q.QueryRow(ctx, query, buyerID).Scan(&s.RFQs, &s.Orders, &s.Revenue); err != nil {
		return nil, fmt.Errorf("buyer stats: %w", err)
	}
	return &s, nil
}

// RFQStatusBreakdown returns RFQ counts per status for one buyer.
func (r *AnalyticsRepo) RFQStatusBreakdown(ctx context.Context, buyerID string) ([]repository.StatusCount, error) {
	return r.statusBreakdown(ctx, `rfqs`, buyerID)
}

// OrderStatusBreakdown returns order counts per status for one buyer.
func (r *AnalyticsRepo) OrderStatusBreakdown(ctx context.Context, buyerID string) ([]repository.StatusCount, error) {
	return r.statusBreakdown(ctx, `orders`, buyerID)
}

func (r *AnalyticsRepo) statusBreakdown(ctx context.Context, table, buyerID string) ([]repository.StatusCount, error) {
	query := fmt.Sprintf(`SELECT status, COUNT(*) FROM %s WHERE buyer_id = $1 GROUP BY status ORDER BY status`, table)
	rows, err := r.q.Query(ctx, query, buyerID)
	if err != nil {
		return nil, fmt.Errorf("status breakdown: %w", err)
	}
	defer rows.Close()

	var counts []repository.StatusCount
	for rows.Next() {
		var c repository.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
