package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/stylehaus/storefront/pkg/errors"

	"github.com/stylehaus/storefront/internal/domain"
	"github.com/stylehaus/storefront/internal/event"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTracker() *event.Producer {
	return event.NewProducer(nil, testLogger())
}

// stubSource is a scriptable source for service and resilience tests.
type stubSource struct {
	mu       sync.Mutex
	products []domain.Product
	err      error
	fetches  int
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Fetch(_ context.Context, _ Query) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches++
	if s.err != nil {
		return nil, s.err
	}
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *stubSource) FetchByID(_ context.Context, id string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p, nil
		}
	}
	return nil, apperrors.NotFound("product", id)
}

func TestFallbackSourceServesBuiltInProducts(t *testing.T) {
	src := NewFallbackSource()

	products, err := src.Fetch(context.Background(), Query{})
	require.NoError(t, err)
	require.Len(t, products, 4)

	p, err := src.FetchByID(context.Background(), "prod-a")
	require.NoError(t, err)
	assert.Equal(t, "Classic Pinstripe Suit", p.Name)
	assert.Equal(t, int64(199), p.EffectivePrice())

	_, err = src.FetchByID(context.Background(), "prod-zzz")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestServiceFiltersSuitsFromFallback(t *testing.T) {
	svc := NewService(NewFallbackSource(), testTracker(), testLogger())

	products, err := svc.GetByCategory(context.Background(), "Suits", nil)
	require.NoError(t, err)
	require.Len(t, products, 3, "one of the four built-in products is a coat")
	for _, p := range products {
		assert.Equal(t, "Suits", p.Category)
	}
}

func TestServiceFiltersSizeColorAndPrice(t *testing.T) {
	svc := NewService(NewFallbackSource(), testTracker(), testLogger())
	ctx := context.Background()

	// Size and color matching is case-insensitive.
	products, err := svc.GetAll(ctx, domain.ProductFilters{
		Sizes:  []string{"m"},
		Colors: []string{"navy"},
	}, nil)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "prod-a", products[0].ID)

	// Price bounds are inclusive on the effective price.
	min := int64(199)
	max := int64(219)
	products, err = svc.GetAll(ctx, domain.ProductFilters{MinPrice: &min, MaxPrice: &max}, nil)
	require.NoError(t, err)
	var ids []string
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []string{"prod-a", "prod-d"}, ids)
}

func TestServiceDefaultSortIsBestSellersFirst(t *testing.T) {
	svc := NewService(NewFallbackSource(), testTracker(), testLogger())

	products, err := svc.GetAll(context.Background(), domain.ProductFilters{}, nil)
	require.NoError(t, err)
	require.Len(t, products, 4)

	for i := 1; i < len(products); i++ {
		assert.GreaterOrEqual(t, products[i-1].BestSellerRank, products[i].BestSellerRank)
	}
}

func TestServiceSortByPriceAscending(t *testing.T) {
	svc := NewService(NewFallbackSource(), testTracker(), testLogger())

	products, err := svc.GetAll(context.Background(), domain.ProductFilters{}, &domain.ProductSort{
		Field:     domain.SortByPrice,
		Direction: domain.SortAsc,
	})
	require.NoError(t, err)
	require.Len(t, products, 4)

	for i := 1; i < len(products); i++ {
		assert.LessOrEqual(t, products[i-1].EffectivePrice(), products[i].EffectivePrice())
	}
}

func TestSortProductsByNameIgnoresCase(t *testing.T) {
	products := []domain.Product{
		{ID: "1", Name: "zip jacket"},
		{ID: "2", Name: "Ankle Boot"},
		{ID: "3", Name: "mule"},
	}

	SortProducts(products, &domain.ProductSort{Field: domain.SortByName, Direction: domain.SortAsc})

	assert.Equal(t, []string{"2", "3", "1"}, []string{products[0].ID, products[1].ID, products[2].ID})
}

func TestSortProductsIsStable(t *testing.T) {
	products := []domain.Product{
		{ID: "first", SellingPrice: 100},
		{ID: "second", SellingPrice: 100},
		{ID: "third", SellingPrice: 50},
	}

	SortProducts(products, &domain.ProductSort{Field: domain.SortByPrice, Direction: domain.SortAsc})

	assert.Equal(t, "third", products[0].ID)
	assert.Equal(t, "first", products[1].ID, "equal prices keep incoming order")
	assert.Equal(t, "second", products[2].ID)
}

func TestServiceGetFeaturedCapsCount(t *testing.T) {
	src := &stubSource{products: []domain.Product{
		{ID: "1", BestSellerRank: 5}, {ID: "2", BestSellerRank: 50},
		{ID: "3", BestSellerRank: 20}, {ID: "4", BestSellerRank: 40},
		{ID: "5", BestSellerRank: 30}, {ID: "6", BestSellerRank: 10},
	}}
	svc := NewService(src, testTracker(), testLogger())
	ctx := context.Background()

	products, err := svc.GetFeatured(ctx, DefaultFeaturedCount)
	require.NoError(t, err)
	require.Len(t, products, DefaultFeaturedCount)
	assert.Equal(t, "2", products[0].ID, "highest rank leads")

	products, err = svc.GetFeatured(ctx, 2)
	require.NoError(t, err)
	require.Len(t, products, 2)

	// Out-of-range counts fall back to the default.
	products, err = svc.GetFeatured(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, products, DefaultFeaturedCount)

	products, err = svc.GetFeatured(ctx, MaxFeaturedCount+1)
	require.NoError(t, err)
	assert.Len(t, products, DefaultFeaturedCount)
}

func TestResilientSourceFallsBackOnError(t *testing.T) {
	remote := &stubSource{err: errors.New("connection refused")}
	rs := NewResilientSource(remote, NewFallbackSource(), DefaultBreakerConfig(), testLogger())

	products, err := rs.Fetch(context.Background(), Query{})
	require.NoError(t, err)
	assert.Len(t, products, 4)

	p, err := rs.FetchByID(context.Background(), "prod-c")
	require.NoError(t, err)
	assert.Equal(t, "Tailored Wool Coat", p.Name)
}

func TestResilientSourceFallsBackOnEmptyResult(t *testing.T) {
	remote := &stubSource{}
	rs := NewResilientSource(remote, NewFallbackSource(), DefaultBreakerConfig(), testLogger())

	products, err := rs.Fetch(context.Background(), Query{})
	require.NoError(t, err)
	assert.Len(t, products, 4, "an empty remote catalog serves the fallback list")
}

func TestResilientSourcePrefersRemote(t *testing.T) {
	remote := &stubSource{products: []domain.Product{{ID: "remote-1", Name: "Remote Suit"}}}
	rs := NewResilientSource(remote, NewFallbackSource(), DefaultBreakerConfig(), testLogger())

	products, err := rs.Fetch(context.Background(), Query{})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "remote-1", products[0].ID)
}

func TestResilientSourceOpensAfterRepeatedFailures(t *testing.T) {
	remote := &stubSource{err: errors.New("connection refused")}
	cfg := DefaultBreakerConfig()
	cfg.MinRequests = 3
	rs := NewResilientSource(remote, NewFallbackSource(), cfg, testLogger())

	for i := 0; i < 10; i++ {
		_, err := rs.Fetch(context.Background(), Query{})
		require.NoError(t, err, "fallback keeps serving while the breaker trips")
	}

	remote.mu.Lock()
	fetches := remote.fetches
	remote.mu.Unlock()
	assert.Less(t, fetches, 10, "an open breaker stops hitting the remote")
}

func TestResilientSourceRemoteNotFoundFallsThrough(t *testing.T) {
	remote := &stubSource{products: []domain.Product{{ID: "remote-1"}}}
	rs := NewResilientSource(remote, NewFallbackSource(), DefaultBreakerConfig(), testLogger())

	// Unknown remotely but present in the built-in list.
	p, err := rs.FetchByID(context.Background(), "prod-a")
	require.NoError(t, err)
	assert.Equal(t, "Classic Pinstripe Suit", p.Name)

	// Unknown everywhere.
	_, err = rs.FetchByID(context.Background(), "prod-zzz")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
