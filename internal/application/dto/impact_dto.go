package dto

import (
	"time"

	"github.com/templecycle/templecycle-api/internal/domain/entity"
)

// ImpactQuery query parameters for GET /api/impact/metrics.
type ImpactQuery struct {
	Period string `query:"period"`
	From   string `query:"from"` // YYYY-MM-DD
	To     string `query:"to"`
}

// ImpactTotals cumulative figures across the selected snapshots.
type ImpactTotals struct {
	FlowersCollectedKg    float64 `json:"flowers_collected_kg"`
	FlowersProcessedKg    float64 `json:"flowers_processed_kg"`
	CO2EmissionsAvoidedKg float64 `json:"co2_emissions_avoided_kg"`
	WaterSavedLiters      float64 `json:"water_saved_liters"`
	WomenEmployed         int     `json:"women_employed"`
	RevenueGeneratedINR   float64 `json:"revenue_generated_inr"`
}

// ImpactMetricResponse one snapshot.
type ImpactMetricResponse struct {
	ID            string                     `json:"id"`
	Date          time.Time                  `json:"date"`
	Period        string                     `json:"period"`
	Waste         entity.WasteManagement     `json:"waste_management"`
	Environmental entity.EnvironmentalImpact `json:"environmental_impact"`
	Social        entity.SocialImpact        `json:"social_impact"`
	Economic      entity.EconomicImpact      `json:"economic_impact"`
	Districts     []entity.DistrictData      `json:"district_data,omitempty"`
}

// ImpactMetricsResponse snapshots plus cumulative totals.
type ImpactMetricsResponse struct {
	Metrics []ImpactMetricResponse `json:"metrics"`
	Totals  ImpactTotals           `json:"totals"`
}

// ImpactSummaryResponse the public landing-page headline figures, taken
// from the latest monthly snapshot.
type ImpactSummaryResponse struct {
	FlowersRecycledKg   float64 `json:"flowers_recycled_kg"`
	CO2SavedKg          float64 `json:"co2_saved_kg"`
	WomenEmployed       int     `json:"women_employed"`
	TemplesOnboarded    int     `json:"temples_onboarded"`
	SHGUnitsActive      int     `json:"shg_units_active"`
	RevenueGeneratedINR float64 `json:"revenue_generated_inr"`
}

// TraceabilityResponse one batch with its provenance chain.
type TraceabilityResponse struct {
	ID          string                    `json:"id"`
	ProductID   string                    `json:"product"`
	BatchNumber string                    `json:"batch_number"`
	SupplyChain []entity.SupplyChainStage `json:"supply_chain"`
	Temple      entity.TempleSource       `json:"temple_source"`
	Processing  entity.SHGProcessing      `json:"shg_processing"`
	QR          entity.QRCode             `json:"qr_code"`
	CreatedAt   time.Time                 `json:"createdAt"`
}

// ScanResponse returned by the public QR scan endpoint.
type ScanResponse struct {
	Batch     TraceabilityResponse `json:"batch"`
	ScanCount int64                `json:"scan_count"`
}
