// Package catalog serves the product listing. Products come from a remote
// source when it is healthy and from a built-in fallback list otherwise, so
// the storefront always has something to show.
package catalog

import (
	"context"

	"github.com/stylehaus/storefront/internal/domain"
)

// Query is a catalog fetch request. A source applies as much of it as it
// supports; the service re-applies every constraint client-side, so partial
// support is never visible to callers.
type Query struct {
	Filters domain.ProductFilters
	Sort    *domain.ProductSort
}

// Source supplies catalog products.
type Source interface {
	// Name identifies the source in logs and metrics.
	Name() string

	// Fetch returns products matching the query.
	Fetch(ctx context.Context, q Query) ([]domain.Product, error)

	// FetchByID returns a single product or ErrNotFound.
	FetchByID(ctx context.Context, id string) (*domain.Product, error)
}
