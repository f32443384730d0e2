package dto

// Envelope is the uniform response body: HTTP status mirrors the logical
// error kind, the envelope carries the human-readable outcome.
type Envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// Pagination metadata returned with every list.
type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
}

// NewPagination derives page metadata from a total row count.
func NewPagination(page, limit int, total int64) Pagination {
	if limit <= 0 {
		limit = 20
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Current: page, Pages: pages, Total: total}
}

// PageRequest common paging query parameters.
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// Normalize applies defaults and caps.
func (p *PageRequest) Normalize() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// Offset converts page/limit to a row offset.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// UserSummary is the trimmed identity embedded in cross-entity responses
// (populate semantics).
type UserSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Organization string `json:"organization,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// ProductSummary is the trimmed product embedded in RFQ/Order responses.
type ProductSummary struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Images   []string `json:"images,omitempty"`
}
