package entity

import "time"

// Reporting periods for impact snapshots.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

// WasteManagement collection and processing volumes for one period.
type WasteManagement struct {
	FlowersCollectedKg          float64 `json:"flowers_collected_kg"`
	FlowersProcessedKg          float64 `json:"flowers_processed_kg"`
	WasteDivertedFromLandfillKg float64 `json:"waste_diverted_from_landfill_kg"`
}

// EnvironmentalImpact avoided emissions and resource savings.
type EnvironmentalImpact struct {
	CO2EmissionsAvoidedKg      float64 `json:"co2_emissions_avoided_kg"`
	WaterSavedLiters           float64 `json:"water_saved_liters"`
	ChemicalFertilizersAvoided float64 `json:"chemical_fertilizers_avoided_kg"`
}

// SocialImpact employment and onboarding figures.
type SocialImpact struct {
	WomenEmployed       int `json:"women_employed"`
	SHGUnitsActive      int `json:"shg_units_active"`
	TemplesOnboarded    int `json:"temples_onboarded"`
	DistrictsActive     int `json:"districts_active"`
	FairWageJobsCreated int `json:"fair_wage_jobs_created"`
}

// EconomicImpact revenue figures in INR.
type EconomicImpact struct {
	RevenueGeneratedINR      float64 `json:"revenue_generated_inr"`
	SHGEarningsINR           float64 `json:"shg_earnings_inr"`
	CostSavingsForTemplesINR float64 `json:"cost_savings_for_temples_inr"`
}

// DistrictData district-level rollup inside a snapshot.
type DistrictData struct {
	DistrictName       string  `json:"district_name"`
	TemplesCount       int     `json:"temples_count"`
	FlowersCollectedKg float64 `json:"flowers_collected_kg"`
	SHGUnits           int     `json:"shg_units"`
	WomenEmployed      int     `json:"women_employed"`
}

// ImpactMetric is an append-only reporting snapshot. Read-mostly; populated
// by the seeding/reporting side, never by the transactional core.
type ImpactMetric struct {
	ID            string
	Date          time.Time
	Period        string
	Waste         WasteManagement
	Environmental EnvironmentalImpact
	Social        SocialImpact
	Economic      EconomicImpact
	Districts     []DistrictData
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
