package catalog

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylehaus/storefront/internal/domain"
)

func newTestSession() *Session {
	return NewSession(NewService(NewFallbackSource(), testTracker(), testLogger()))
}

func TestSessionRefreshAppliesCurrentState(t *testing.T) {
	s := newTestSession()
	ctx := context.Background()

	assert.Nil(t, s.View(), "no view before the first refresh")

	view, err := s.Refresh(ctx)
	require.NoError(t, err)
	assert.Len(t, view.Products, 4)

	s.SetFilters(domain.ProductFilters{Categories: []string{"Coats"}})
	view, err = s.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, view.Products, 1)
	assert.Equal(t, "prod-c", view.Products[0].ID)

	s.Reset()
	view, err = s.Refresh(ctx)
	require.NoError(t, err)
	assert.Len(t, view.Products, 4)
}

func TestSessionNewerStateWinsOverStaleRefresh(t *testing.T) {
	s := newTestSession()
	ctx := context.Background()

	// Capture the pre-change generation the way an in-flight fetch would.
	staleGen := s.gen

	s.SetFilters(domain.ProductFilters{Categories: []string{"Coats"}})
	fresh, err := s.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, fresh.Products, 1)

	// A stale result must not replace the fresher view.
	stale := &SessionView{Generation: staleGen, Products: nil}
	cur := s.current.Load()
	assert.Greater(t, cur.Generation, stale.Generation)

	got := s.View()
	assert.Equal(t, fresh.Generation, got.Generation)
	assert.Len(t, got.Products, 1)
}

// gateSource blocks its first unfiltered fetch until released, so a test can
// hold a refresh in flight while the session state changes underneath it.
type gateSource struct {
	inner   Source
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gateSource) Name() string { return "gate" }

func (g *gateSource) Fetch(ctx context.Context, q Query) ([]domain.Product, error) {
	if len(q.Filters.Categories) == 0 {
		g.once.Do(func() {
			close(g.entered)
			<-g.release
		})
	}
	return g.inner.Fetch(ctx, q)
}

func (g *gateSource) FetchByID(ctx context.Context, id string) (*domain.Product, error) {
	return g.inner.FetchByID(ctx, id)
}

func TestSessionInFlightRefreshDiscardedAfterFilterChange(t *testing.T) {
	src := &gateSource{
		inner:   NewFallbackSource(),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := NewSession(NewService(src, testTracker(), testLogger()))
	ctx := context.Background()

	staleDone := make(chan *SessionView)
	go func() {
		view, err := s.Refresh(ctx)
		assert.NoError(t, err)
		staleDone <- view
	}()
	<-src.entered

	// The filters change while the unfiltered fetch is still in flight.
	s.SetFilters(domain.ProductFilters{Categories: []string{"Coats"}})
	fresh, err := s.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, fresh.Products, 1)

	close(src.release)
	stale := <-staleDone

	// The stale result is discarded in favour of the fresher view, and the
	// losing refresh returns that fresher view rather than its own.
	assert.Equal(t, fresh.Generation, stale.Generation)
	require.Len(t, stale.Products, 1)
	assert.Equal(t, "prod-c", stale.Products[0].ID)

	got := s.View()
	require.Len(t, got.Products, 1)
	assert.Equal(t, "prod-c", got.Products[0].ID)
}

func TestSessionViewGenerationMatchesItsFilters(t *testing.T) {
	// The source echoes one product per built-in category, so every view
	// reveals exactly which filters produced it.
	src := &stubSource{products: []domain.Product{
		{ID: "echo-suits", Category: "Suits", BestSellerRank: 2},
		{ID: "echo-coats", Category: "Coats", BestSellerRank: 1},
	}}
	s := NewSession(NewService(src, testTracker(), testLogger()))
	ctx := context.Background()

	// Generation g is produced by the g-th filter change, so the category
	// a view must hold is a pure function of its generation tag.
	categories := []string{"Suits", "Coats"}
	const changes = 40

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < changes; i++ {
			s.SetFilters(domain.ProductFilters{Categories: []string{categories[i%2]}})
		}
	}()

	for r := 0; r < 8; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < changes; i++ {
				view, err := s.Refresh(ctx)
				if !assert.NoError(t, err) {
					return
				}
				if view.Generation == 0 {
					continue
				}
				want := categories[(view.Generation-1)%2]
				for _, p := range view.Products {
					assert.Equal(t, want, p.Category,
						"view at generation %d must hold the products of that generation's filters", view.Generation)
				}
			}
		}()
	}
	wg.Wait()
}

func TestSessionConcurrentRefreshesConverge(t *testing.T) {
	s := newTestSession()
	ctx := context.Background()

	s.SetFilters(domain.ProductFilters{Categories: []string{"Suits"}})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Refresh(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	view := s.View()
	require.NotNil(t, view)
	assert.Len(t, view.Products, 3)
}
