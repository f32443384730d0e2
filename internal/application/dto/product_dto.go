package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/templecycle/templecycle-api/internal/domain/entity"
)

// CreateProductRequest payload for POST /api/products.
type CreateProductRequest struct {
	Name           string                `json:"name"`
	Category       string                `json:"category"`
	Description    string                `json:"description"`
	Specifications entity.ProductSpecs   `json:"specifications"`
	Availability   entity.Availability   `json:"availability"`
	Pricing        entity.Pricing        `json:"pricing"`
	Certifications []string              `json:"certifications"`
	Status         string                `json:"status"`
	Images         []string              `json:"images"`
	Temple         entity.TempleInfo     `json:"temple_info"`
	Sustainability entity.Sustainability `json:"sustainability"`
}

// Validate checks the payload; defaults status to available.
func (r *CreateProductRequest) Validate() []string {
	var errs []string
	if len(r.Name) < 2 || len(r.Name) > 200 {
		errs = append(errs, "name must be between 2 and 200 characters")
	}
	if !entity.ValidCategory(r.Category) {
		errs = append(errs, "category must be one of incense_powder, compost, natural_dye, essential_oil, flower")
	}
	if r.Status == "" {
		r.Status = entity.ProductAvailable
	}
	if !entity.ValidProductStatus(r.Status) {
		errs = append(errs, "status must be one of available, limited, out_of_stock, coming_soon")
	}
	if r.Pricing.PriceMin.IsNegative() || r.Pricing.PriceMax.IsNegative() {
		errs = append(errs, "prices cannot be negative")
	}
	if r.Pricing.PriceMax.LessThan(r.Pricing.PriceMin) {
		errs = append(errs, "price_max cannot be below price_min")
	}
	if r.Availability.MOQKg < 0 || r.Availability.MonthlyAvailabilityTonnes < 0 {
		errs = append(errs, "availability figures cannot be negative")
	}
	return errs
}

// UpdateProductRequest whitelisted mutable fields; nil means unchanged.
type UpdateProductRequest struct {
	Name           *string                `json:"name"`
	Description    *string                `json:"description"`
	Specifications *entity.ProductSpecs   `json:"specifications"`
	Availability   *entity.Availability   `json:"availability"`
	Pricing        *entity.Pricing        `json:"pricing"`
	Certifications *[]string              `json:"certifications"`
	Status         *string                `json:"status"`
	Images         *[]string              `json:"images"`
	Temple         *entity.TempleInfo     `json:"temple_info"`
	Sustainability *entity.Sustainability `json:"sustainability"`
}

// Validate checks only the fields present.
func (r *UpdateProductRequest) Validate() []string {
	var errs []string
	if r.Name != nil && (len(*r.Name) < 2 || len(*r.Name) > 200) {
		errs = append(errs, "name must be between 2 and 200 characters")
	}
	if r.Status != nil && !entity.ValidProductStatus(*r.Status) {
		errs = append(errs, "status must be one of available, limited, out_of_stock, coming_soon")
	}
	if r.Pricing != nil {
		if r.Pricing.PriceMin.IsNegative() || r.Pricing.PriceMax.IsNegative() {
			errs = append(errs, "prices cannot be negative")
		}
		if r.Pricing.PriceMax.LessThan(r.Pricing.PriceMin) {
			errs = append(errs, "price_max cannot be below price_min")
		}
	}
	return errs
}

// ProductListQuery query parameters for GET /api/products.
type ProductListQuery struct {
	PageRequest
	Category string          `query:"category"`
	Status   string          `query:"status"`
	Search   string          `query:"search"`
	SHG      string          `query:"shg"`
	MinPrice decimal.Decimal `query:"minPrice"`
	MaxPrice decimal.Decimal `query:"maxPrice"`
	SortBy   string          `query:"sortBy"`
	Order    string          `query:"order"`
}

// ProductResponse a catalog item with its owning shg summary populated.
type ProductResponse struct {
	ID             string                `json:"id"`
	SHG            *UserSummary          `json:"shg,omitempty"`
	Name           string                `json:"name"`
	Category       string                `json:"category"`
	Description    string                `json:"description,omitempty"`
	Specifications entity.ProductSpecs   `json:"specifications"`
	Availability   entity.Availability   `json:"availability"`
	Pricing        entity.Pricing        `json:"pricing"`
	Certifications []string              `json:"certifications,omitempty"`
	Status         string                `json:"status"`
	Images         []string              `json:"images,omitempty"`
	Temple         entity.TempleInfo     `json:"temple_info"`
	Sustainability entity.Sustainability `json:"sustainability"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

// ProductListResponse paged catalog listing.
type ProductListResponse struct {
	Products   []ProductResponse `json:"products"`
	Pagination Pagination        `json:"pagination"`
}
