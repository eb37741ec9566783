package catalog

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/stylehaus/storefront/internal/domain"
)

// Session is a shopper's transient browse state: the current filters and
// sort, never persisted. Concurrent refreshes are resolved last-write-wins
// with a generation number, so a slow older fetch can never clobber the
// result of a newer one.
type Session struct {
	service *Service

	mu      sync.Mutex
	filters domain.ProductFilters
	sort    *domain.ProductSort
	gen     uint64

	current atomic.Pointer[SessionView]
}

// SessionView is the product list a refresh produced, tagged with the
// generation of the state it was computed from.
type SessionView struct {
	Generation uint64
	Products   []domain.Product
}

// NewSession creates a browse session over the catalog service.
func NewSession(service *Service) *Session {
	return &Session{service: service}
}

// SetFilters replaces the session's filters and bumps the generation.
func (s *Session) SetFilters(filters domain.ProductFilters) {
	s.mu.Lock()
	s.filters = filters
	s.gen++
	s.mu.Unlock()
}

// SetSort replaces the session's sort and bumps the generation.
func (s *Session) SetSort(sortBy *domain.ProductSort) {
	s.mu.Lock()
	s.sort = sortBy
	s.gen++
	s.mu.Unlock()
}

// Reset clears filters and sort and bumps the generation.
func (s *Session) Reset() {
	s.mu.Lock()
	s.filters = domain.ProductFilters{}
	s.sort = nil
	s.gen++
	s.mu.Unlock()
}

// Refresh fetches products for the session's current state. If the state
// changed while the fetch was in flight, the stale result is discarded and
// the previously published view is returned instead.
func (s *Session) Refresh(ctx context.Context) (*SessionView, error) {
	// The generation must be read under the same lock as the state it
	// tags; otherwise a concurrent change could stamp old filters with a
	// fresh generation and let a stale result win the publish race.
	s.mu.Lock()
	filters := s.filters
	sortBy := s.sort
	gen := s.gen
	s.mu.Unlock()

	products, err := s.service.GetAll(ctx, filters, sortBy)
	if err != nil {
		return nil, err
	}

	view := &SessionView{Generation: gen, Products: products}
	for {
		cur := s.current.Load()
		if cur != nil && cur.Generation > gen {
			return cur, nil
		}
		if s.current.CompareAndSwap(cur, view) {
			return view, nil
		}
	}
}

// View returns the last published view, or nil before the first refresh.
func (s *Session) View() *SessionView {
	return s.current.Load()
}
