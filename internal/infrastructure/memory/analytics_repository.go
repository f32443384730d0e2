package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/templecycle/templecycle-api/internal/domain/entity"
	"github.com/templecycle/templecycle-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo implements the dashboard aggregations over the in-process
// store, mirroring the SQL driver's definitions: revenue counts delivered
// and completed orders only.
type AnalyticsRepo struct {
	s *Store
}

// NewAnalyticsRepository builds the read-only analytics adapter.
func NewAnalyticsRepository(s *Store) *AnalyticsRepo {
	return &AnalyticsRepo{s: s}
}

func revenueOrder(o *entity.Order) bool {
	return o.Status == entity.OrderDelivered || o.Status == entity.OrderCompleted
}

// PlatformCounts returns the admin-dashboard totals.
func (r *AnalyticsRepo) PlatformCounts(_ context.Context) (*repository.PlatformCounts, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c := repository.PlatformCounts{
		TotalUsers:    int64(len(r.s.users)),
		TotalProducts: int64(len(r.s.products)),
		TotalRFQs:     int64(len(r.s.rfqs)),
		TotalOrders:   int64(len(r.s.orders)),
	}
	for _, u := range r.s.users {
		if !u.IsActive {
			continue
		}
		switch u.Role {
		case entity.RoleSHG:
			c.ActiveSHGs++
		case entity.RoleBuyer:
			c.ActiveBuyers++
		}
	}
	return &c, nil
}

// MonthlyOrderSeries returns revenue and order counts per month since the
// given time.
func (r *AnalyticsRepo) MonthlyOrderSeries(_ context.Context, since time.Time) ([]repository.MonthlyPoint, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	type key struct {
		year  int
		month time.Month
	}
	buckets := map[key]*repository.MonthlyPoint{}
	for _, o := range r.s.orders {
		if o.CreatedAt.Before(since) || !revenueOrder(o) {
			continue
		}
		k := key{o.CreatedAt.Year(), o.CreatedAt.Month()}
		p, ok := buckets[k]
		if !ok {
			p = &repository.MonthlyPoint{Year: k.year, Month: k.month, Revenue: decimal.Zero}
			buckets[k] = p
		}
		p.Revenue = p.Revenue.Add(o.Details.TotalAmount)
		p.Orders++
	}

	series := make([]repository.MonthlyPoint, 0, len(buckets))
	for _, p := range buckets {
		series = append(series, *p)
	}
	sort.Slice(series, func(i, j int) bool {
		if series[i].Year != series[j].Year {
			return series[i].Year < series[j].Year
		}
		return series[i].Month < series[j].Month
	})
	return series, nil
}

// CategoryCounts returns product counts per catalog category.
func (r *AnalyticsRepo) CategoryCounts(_ context.Context) ([]repository.CategoryCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	buckets := map[string]int64{}
	for _, p := range r.s.products {
		buckets[p.Category]++
	}
	counts := make([]repository.CategoryCount, 0, len(buckets))
	for category, count := range buckets {
		counts = append(counts, repository.CategoryCount{Category: category, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	return counts, nil
}

// LowStockProductCount counts available products under the monthly
// availability threshold.
func (r *AnalyticsRepo) LowStockProductCount(_ context.Context, thresholdTonnes float64) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	for _, p := range r.s.products {
		if p.Status == entity.ProductAvailable && p.Availability.MonthlyAvailabilityTonnes < thresholdTonnes {
			count++
		}
	}
	return count, nil
}

// PendingRFQCount counts RFQs still awaiting review.
func (r *AnalyticsRepo) PendingRFQCount(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	for _, rfq := range r.s.rfqs {
		if rfq.Status == entity.RFQPending || rfq.Status == entity.RFQUnderReview {
			count++
		}
	}
	return count, nil
}

// SHGStats returns the per-unit rollup.
func (r *AnalyticsRepo) SHGStats(_ context.Context, shgID string) (*repository.PartyStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	s := repository.PartyStats{Revenue: decimal.Zero}
	owned := map[string]bool{}
	for _, p := range r.s.products {
		if p.SHGID == shgID {
			s.Products++
			owned[p.ID] = true
		}
	}
	for _, rfq := range r.s.rfqs {
		if owned[rfq.ProductID] {
			s.RFQs++
		}
	}
	for _, o := range r.s.orders {
		if o.SHGID != shgID {
			continue
		}
		s.Orders++
		if revenueOrder(o) {
			s.Revenue = s.Revenue.Add(o.Details.TotalAmount)
		}
	}
	return &s, nil
}

// WeeklyOrderSeries returns revenue and order counts per day of week for one
// shg since the given time.
func (r *AnalyticsRepo) WeeklyOrderSeries(_ context.Context, shgID string, since time.Time) ([]repository.DailyPoint, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	buckets := map[time.Weekday]*repository.DailyPoint{}
	for _, o := range r.s.orders {
		if o.SHGID != shgID || o.CreatedAt.Before(since) {
			continue
		}
		wd := o.CreatedAt.Weekday()
		p, ok := buckets[wd]
		if !ok {
			p = &repository.DailyPoint{Weekday: wd, Revenue: decimal.Zero}
			buckets[wd] = p
		}
		p.Revenue = p.Revenue.Add(o.Details.TotalAmount)
		p.Orders++
	}

	series := make([]repository.DailyPoint, 0, len(buckets))
	for _, p := range buckets {
		series = append(series, *p)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Weekday < series[j].Weekday })
	return series, nil
}

// BuyerStats returns the per-buyer rollup. Products is always zero for
// buyers.
func (r *AnalyticsRepo) BuyerStats(_ context.Context, buyerID string) (*repository.PartyStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	s := repository.PartyStats{Revenue: decimal.Zero}
	for _, rfq := range r.s.rfqs {
		if rfq.BuyerID == buyerID {
			s.RFQs++
		}
	}
	for _, o := range r.s.orders {
		if o.BuyerID != buyerID {
			continue
		}
		s.Orders++
		if revenueOrder(o) {
			s.Revenue = s.Revenue.Add(o.Details.TotalAmount)
		}
	}
	return &s, nil
}

// RFQStatusBreakdown returns RFQ counts per status for one buyer.
func (r *AnalyticsRepo) RFQStatusBreakdown(_ context.Context, buyerID string) ([]repository.StatusCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	buckets := map[string]int64{}
	for _, rfq := range r.s.rfqs {
		if rfq.BuyerID == buyerID {
			buckets[rfq.Status]++
		}
	}
	return statusCounts(buckets), nil
}

// OrderStatusBreakdown returns order counts per status for one buyer.
func (r *AnalyticsRepo) OrderStatusBreakdown(_ context.Context, buyerID string) ([]repository.StatusCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	buckets := map[string]int64{}
	for _, o := range r.s.orders {
		if o.BuyerID == buyerID {
			buckets[o.Status]++
		}
	}
	return statusCounts(buckets), nil
}

func statusCounts(buckets map[string]int64) []repository.StatusCount {
	counts := make([]repository.StatusCount, 0, len(buckets))
	for status, count := range buckets {
		counts = append(counts, repository.StatusCount{Status: status, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Status < counts[j].Status })
	return counts
}
