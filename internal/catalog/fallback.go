package catalog

import (
	"context"

	apperrors "github.com/stylehaus/storefront/pkg/errors"

	"github.com/stylehaus/storefront/internal/domain"
)

// FallbackSource serves a small built-in product list so the storefront keeps
// working when the remote catalog is unreachable or empty. It ignores the
// query; the service applies filters and sorting on top.
type FallbackSource struct {
	products []domain.Product
}

// NewFallbackSource creates a fallback source with the built-in product list.
func NewFallbackSource() *FallbackSource {
	return &FallbackSource{products: fallbackProducts()}
}

// Name identifies the source in logs and metrics.
func (s *FallbackSource) Name() string { return "fallback" }

// Fetch returns a copy of the built-in product list.
func (s *FallbackSource) Fetch(_ context.Context, _ Query) ([]domain.Product, error) {
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

// FetchByID returns the built-in product with the given id.
func (s *FallbackSource) FetchByID(_ context.Context, id string) (*domain.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p, nil
		}
	}
	return nil, apperrors.NotFound("product", id)
}

func int64p(v int64) *int64 { return &v }

func fallbackProducts() []domain.Product {
	return []domain.Product{
		{
			ID:              "prod-a",
			Name:            "Classic Pinstripe Suit",
			Description:     "Two-piece pinstripe suit in a tailored fit.",
			SellingPrice:    500,
			DiscountedPrice: int64p(199),
			Category:        "Suits",
			SubCategory:     "Two Piece",
			Sizes:           []string{"XS", "S", "M", "L", "XL"},
			Color:           "Navy",
			BestSellerRank:  45,
			MainImage:       "/images/products/classic-pinstripe-suit.jpg",
			Images: []string{
				"/images/products/classic-pinstripe-suit.jpg",
				"/images/products/classic-pinstripe-suit-detail.jpg",
			},
			CreatedAt: "2025-01-12T09:00:00Z",
			UpdatedAt: "2025-01-12T09:00:00Z",
		},
		{
			ID:              "prod-b",
			Name:            "Modern Blazer Set",
			Description:     "Relaxed blazer with matching trousers.",
			SellingPrice:    199,
			DiscountedPrice: int64p(179),
			Category:        "Suits",
			SubCategory:     "Blazer",
			Sizes:           []string{"XS", "S", "M", "L", "XL"},
			Color:           "Black",
			BestSellerRank:  32,
			MainImage:       "/images/products/modern-blazer-set.jpg",
			CreatedAt:       "2025-02-03T09:00:00Z",
			UpdatedAt:       "2025-02-03T09:00:00Z",
		},
		{
			ID:              "prod-c",
			Name:            "Tailored Wool Coat",
			Description:     "Mid-length wool coat with horn buttons.",
			SellingPrice:    299,
			DiscountedPrice: int64p(249),
			Category:        "Coats",
			Sizes:           []string{"XS", "S", "M", "L", "XL"},
			Color:           "Camel",
			BestSellerRank:  28,
			MainImage:       "/images/products/tailored-wool-coat.jpg",
			CreatedAt:       "2025-02-20T09:00:00Z",
			UpdatedAt:       "2025-02-20T09:00:00Z",
		},
		{
			ID:              "prod-d",
			Name:            "Statement Trouser Suit",
			Description:     "Wide-leg trouser suit in a bold cut.",
			SellingPrice:    249,
			DiscountedPrice: int64p(219),
			Category:        "Suits",
			SubCategory:     "Trouser Suit",
			Sizes:           []string{"XS", "S", "M", "L", "XL"},
			Color:           "Burgundy",
			BestSellerRank:  18,
			MainImage:       "/images/products/statement-trouser-suit.jpg",
			CreatedAt:       "2025-03-08T09:00:00Z",
			UpdatedAt:       "2025-03-08T09:00:00Z",
		},
	}
}
