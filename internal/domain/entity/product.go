package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product categories (closed enum).
const (
	CategoryIncensePowder = "incense_powder"
	CategoryCompost       = "compost"
	CategoryNaturalDye    = "natural_dye"
	CategoryEssentialOil  = "essential_oil"
	CategoryFlower        = "flower"
)

// Product availability statuses.
const (
	ProductAvailable  = "available"
	ProductLimited    = "limited"
	ProductOutOfStock = "out_of_stock"
	ProductComingSoon = "coming_soon"
)

// ValidCategory reports whether s is a known product category.
func ValidCategory(s string) bool {
	switch s {
	case CategoryIncensePowder, CategoryCompost, CategoryNaturalDye, CategoryEssentialOil, CategoryFlower:
		return true
	}
	return false
}

// ValidProductStatus reports whether s is a known availability status.
func ValidProductStatus(s string) bool {
	switch s {
	case ProductAvailable, ProductLimited, ProductOutOfStock, ProductComingSoon:
		return true
	}
	return false
}

// ProductSpecs physical/chemical characteristics of a processed product.
type ProductSpecs struct {
	MoistureContent   float64 `json:"moisture_content,omitempty"`
	MeshSize          string  `json:"mesh_size,omitempty"`
	Purity            float64 `json:"purity,omitempty"`
	ShelfLife         string  `json:"shelf_life,omitempty"` // months
	StorageConditions string  `json:"storage_conditions,omitempty"`
}

// Availability supply figures quoted by the processing unit.
type Availability struct {
	MonthlyAvailabilityTonnes float64 `json:"monthly_availability_tonnes"`
	MOQKg                     float64 `json:"moq_kg"`
	LeadTimeDays              int     `json:"lead_time_days"`
}

// Pricing per-kg price range in INR. PriceMin <= PriceMax is assumed, not
// enforced by the store.
type Pricing struct {
	PriceMin decimal.Decimal `json:"price_min"`
	PriceMax decimal.Decimal `json:"price_max"`
}

// TempleInfo source temple of the floral waste.
type TempleInfo struct {
	Name     string `json:"name,omitempty"`
	Location string `json:"location,omitempty"`
	District string `json:"district,omitempty"`
}

// Sustainability per-product impact figures.
type Sustainability struct {
	WasteDivertedKg float64 `json:"waste_diverted_kg,omitempty"`
	CO2SavedKg      float64 `json:"co2_saved_kg,omitempty"`
	WaterSavedL     float64 `json:"water_saved_liters,omitempty"`
}

// Product is a catalog item owned by exactly one shg User. Mutated only by
// its owner or an admin.
type Product struct {
	ID             string
	SHGID          string
	Name           string
	Category       string
	Description    string
	Specifications ProductSpecs
	Availability   Availability
	Pricing        Pricing
	Certifications []string
	Status         string
	Images         []string
	Temple         TempleInfo
	Sustainability Sustainability
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
