package dto

import "github.com/shopspring/decimal"

// RevenuePoint one point in a revenue time series.
type RevenuePoint struct {
	Label   string          `json:"label"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int64           `json:"orders"`
}

// CategoryBreakdown product count for one catalog category.
type CategoryBreakdown struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// StatusBreakdown entity count for one lifecycle status.
type StatusBreakdown struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// DashboardAlert an attention item surfaced on the admin dashboard.
type DashboardAlert struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Count   int64  `json:"count"`
}

// AdminDashboardResponse platform-wide rollup for GET /api/dashboard/admin.
type AdminDashboardResponse struct {
	Overview struct {
		TotalUsers    int64 `json:"totalUsers"`
		TotalProducts int64 `json:"totalProducts"`
		TotalRFQs     int64 `json:"totalRFQs"`
		TotalOrders   int64 `json:"totalOrders"`
		ActiveSHGs    int64 `json:"activeSHGs"`
		ActiveBuyers  int64 `json:"activeBuyers"`
	} `json:"overview"`
	MonthlyRevenue []RevenuePoint      `json:"monthlyRevenue"`
	Categories     []CategoryBreakdown `json:"categoryBreakdown"`
	Alerts         []DashboardAlert    `json:"alerts"`
}

// SHGDashboardResponse per-unit rollup for GET /api/dashboard/shg.
type SHGDashboardResponse struct {
	Stats struct {
		Products int64           `json:"products"`
		RFQs     int64           `json:"rfqs"`
		Orders   int64           `json:"orders"`
		Revenue  decimal.Decimal `json:"revenue"`
	} `json:"stats"`
	WeeklyOrders []RevenuePoint `json:"weeklyOrders"`
}

// BuyerDashboardResponse per-buyer rollup for GET /api/dashboard/buyer.
type BuyerDashboardResponse struct {
	Stats struct {
		RFQs   int64           `json:"rfqs"`
		Orders int64           `json:"orders"`
		Spend  decimal.Decimal `json:"spend"`
	} `json:"stats"`
	RFQBreakdown   []StatusBreakdown `json:"rfqBreakdown"`
	OrderBreakdown []StatusBreakdown `json:"orderBreakdown"`
}
