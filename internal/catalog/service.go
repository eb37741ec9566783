package catalog

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/stylehaus/storefront/internal/domain"
	"github.com/stylehaus/storefront/internal/event"
)

// DefaultFeaturedCount is the number of best sellers shown when the caller
// does not ask for a specific count. MaxFeaturedCount caps what a caller may
// request.
const (
	DefaultFeaturedCount = 4
	MaxFeaturedCount     = 20
)

// Service is the browse API over a product source. Every constraint is
// applied here regardless of how much the source already narrowed, so
// remote and fallback reads behave identically.
type Service struct {
	source  Source
	tracker *event.Producer
	logger  *slog.Logger
}

// NewService creates a new catalog service.
func NewService(source Source, tracker *event.Producer, logger *slog.Logger) *Service {
	return &Service{
		source:  source,
		tracker: tracker,
		logger:  logger,
	}
}

// GetAll returns products matching the filters in the requested order.
func (s *Service) GetAll(ctx context.Context, filters domain.ProductFilters, sortBy *domain.ProductSort) ([]domain.Product, error) {
	products, err := s.source.Fetch(ctx, Query{Filters: filters, Sort: sortBy})
	if err != nil {
		return nil, err
	}

	products = applyFilters(products, filters)
	SortProducts(products, sortBy)
	return products, nil
}

// GetByCategory returns the category's products in the requested order.
func (s *Service) GetByCategory(ctx context.Context, category string, sortBy *domain.ProductSort) ([]domain.Product, error) {
	return s.GetAll(ctx, domain.ProductFilters{Categories: []string{category}}, sortBy)
}

// GetFeatured returns the top count best sellers for the landing page. A
// count outside [1, MaxFeaturedCount] falls back to DefaultFeaturedCount.
func (s *Service) GetFeatured(ctx context.Context, count int) ([]domain.Product, error) {
	if count < 1 || count > MaxFeaturedCount {
		count = DefaultFeaturedCount
	}

	products, err := s.GetAll(ctx, domain.ProductFilters{}, &domain.ProductSort{
		Field:     domain.SortByPopularity,
		Direction: domain.SortDesc,
	})
	if err != nil {
		return nil, err
	}

	if len(products) > count {
		products = products[:count]
	}
	return products, nil
}

// GetByID returns a single product and records the view.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	s.tracker.ProductView(ctx, product.ID, product.Name)
	return product, nil
}

// Lookup returns a single product without recording a view. Internal flows
// like cart adds use it so only real product-page visits count as views.
func (s *Service) Lookup(ctx context.Context, id string) (*domain.Product, error) {
	return s.source.FetchByID(ctx, id)
}

// applyFilters narrows the list to products matching every constraint.
// Category, size, and color matching is case-insensitive; price bounds are
// inclusive on the effective price.
func applyFilters(products []domain.Product, f domain.ProductFilters) []domain.Product {
	out := products[:0]
	for i := range products {
		if matches(&products[i], f) {
			out = append(out, products[i])
		}
	}
	return out
}

func matches(p *domain.Product, f domain.ProductFilters) bool {
	if len(f.Categories) > 0 && !containsFold(f.Categories, p.Category) {
		return false
	}
	if len(f.Colors) > 0 && !containsFold(f.Colors, p.Color) {
		return false
	}
	if len(f.Sizes) > 0 {
		any := false
		for _, size := range f.Sizes {
			if p.HasSize(size) {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}
	price := p.EffectivePrice()
	if f.MinPrice != nil && price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && price > *f.MaxPrice {
		return false
	}
	return true
}

func containsFold(values []string, v string) bool {
	for _, c := range values {
		if strings.EqualFold(c, v) {
			return true
		}
	}
	return false
}

// SortProducts orders the slice in place. A nil sort means best sellers
// first. The sort is stable, so equal keys keep their incoming order.
func SortProducts(products []domain.Product, sortBy *domain.ProductSort) {
	if sortBy == nil {
		sortBy = &domain.ProductSort{Field: domain.SortByPopularity, Direction: domain.SortDesc}
	}

	desc := sortBy.Direction == domain.SortDesc
	var less func(a, b *domain.Product) bool

	switch sortBy.Field {
	case domain.SortByPrice:
		less = func(a, b *domain.Product) bool { return a.EffectivePrice() < b.EffectivePrice() }
	case domain.SortByCreated:
		// RFC 3339 timestamps order correctly as strings.
		less = func(a, b *domain.Product) bool { return a.CreatedAt < b.CreatedAt }
	case domain.SortByName:
		cl := collate.New(language.English, collate.IgnoreCase)
		less = func(a, b *domain.Product) bool { return cl.CompareString(a.Name, b.Name) < 0 }
	case domain.SortByPopularity:
		less = func(a, b *domain.Product) bool { return a.BestSellerRank < b.BestSellerRank }
	default:
		// Unknown field: leave the incoming order untouched.
		less = func(a, b *domain.Product) bool { return false }
	}

	sort.SliceStable(products, func(i, j int) bool {
		if desc {
			return less(&products[j], &products[i])
		}
		return less(&products[i], &products[j])
	})
}
