package domain

import "strings"

// Product represents a catalog entry. Products are created and updated only
// by the remote catalog source; this service treats them as read-only.
type Product struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	SellingPrice    int64    `json:"selling_price"`
	DiscountedPrice *int64   `json:"discounted_price,omitempty"`
	Category        string   `json:"category"`
	SubCategory     string   `json:"sub_category,omitempty"`
	Sizes           []string `json:"sizes"`
	Color           string   `json:"color,omitempty"`
	BestSellerRank  int      `json:"best_seller_rank"`
	MainImage       string   `json:"main_image"`
	Images          []string `json:"images,omitempty"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

// EffectivePrice returns the discounted price when present, otherwise the
// selling price. All purchase totals are computed from this value.
func (p *Product) EffectivePrice() int64 {
	if p.DiscountedPrice != nil {
		return *p.DiscountedPrice
	}
	return p.SellingPrice
}

// HasSize reports whether the product is available in the given size.
// Comparison is case-insensitive.
func (p *Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if strings.EqualFold(s, size) {
			return true
		}
	}
	return false
}

// ProductFilters is a transient browse query. Nil price bounds are unbounded;
// both bounds are inclusive.
type ProductFilters struct {
	Categories []string
	Sizes      []string
	Colors     []string
	MinPrice   *int64
	MaxPrice   *int64
}

// SortField identifies the product attribute a browse result is ordered by.
type SortField string

// Sortable product fields.
const (
	SortByPrice      SortField = "price"
	SortByPopularity SortField = "popularity"
	SortByCreated    SortField = "created"
	SortByName       SortField = "name"
)

// SortDirection is the ordering direction for a browse result.
type SortDirection string

// Sort directions.
const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ProductSort is a transient sort request for a browse session.
type ProductSort struct {
	Field     SortField     `json:"field"`
	Direction SortDirection `json:"direction"`
}

// ValidSortField reports whether the given string names a sortable field.
func ValidSortField(field string) bool {
	switch SortField(field) {
	case SortByPrice, SortByPopularity, SortByCreated, SortByName:
		return true
	}
	return false
}
