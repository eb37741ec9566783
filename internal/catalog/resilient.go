package catalog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker/v2"

	apperrors "github.com/stylehaus/storefront/pkg/errors"

	"github.com/stylehaus/storefront/internal/domain"
)

var (
	catalogBreakerState = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_breaker_state",
		Help: "Current state of the catalog circuit breaker (0=closed, 1=half-open, 2=open)",
	})

	catalogFallbackTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_fallback_total",
		Help: "Total number of catalog reads served from the fallback source",
	}, []string{"reason"})
)

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// BreakerConfig tunes the circuit breaker guarding the remote source.
type BreakerConfig struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	FailureRatio float64
	MinRequests  uint32
}

// DefaultBreakerConfig returns the breaker settings used in production.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:  1,
		Interval:     60 * time.Second,
		Timeout:      30 * time.Second,
		FailureRatio: 0.5,
		MinRequests:  5,
	}
}

// ResilientSource reads from the remote source through a circuit breaker and
// serves the fallback source when the remote fails, is open, or has nothing
// to show. Reads never fail outright as long as the fallback can answer.
type ResilientSource struct {
	remote   Source
	fallback Source
	breaker  *gobreaker.CircuitBreaker[[]domain.Product]
	logger   *slog.Logger
}

// NewResilientSource wraps the remote source with breaker protection and the
// given fallback.
func NewResilientSource(remote, fallback Source, cfg BreakerConfig, logger *slog.Logger) *ResilientSource {
	settings := gobreaker.Settings{
		Name:        "catalog-" + remote.Name(),
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			catalogBreakerState.Set(stateToFloat(to))
		},
		// A missing product is an answer, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, apperrors.ErrNotFound)
		},
	}

	return &ResilientSource{
		remote:   remote,
		fallback: fallback,
		breaker:  gobreaker.NewCircuitBreaker[[]domain.Product](settings),
		logger:   logger,
	}
}

// Name identifies the source in logs and metrics.
func (s *ResilientSource) Name() string { return "resilient(" + s.remote.Name() + ")" }

// Fetch returns remote products, or the fallback list when the remote errors
// or comes back empty.
func (s *ResilientSource) Fetch(ctx context.Context, q Query) ([]domain.Product, error) {
	products, err := s.breaker.Execute(func() ([]domain.Product, error) {
		return s.remote.Fetch(ctx, q)
	})
	if err != nil {
		s.logger.WarnContext(ctx, "remote catalog unavailable, serving fallback",
			slog.String("source", s.remote.Name()),
			slog.String("error", err.Error()),
		)
		catalogFallbackTotal.WithLabelValues("error").Inc()
		return s.fallback.Fetch(ctx, q)
	}
	if len(products) == 0 {
		catalogFallbackTotal.WithLabelValues("empty").Inc()
		return s.fallback.Fetch(ctx, q)
	}
	return products, nil
}

// FetchByID returns the remote product, falling back to the built-in list
// when the remote errors or does not know the id.
func (s *ResilientSource) FetchByID(ctx context.Context, id string) (*domain.Product, error) {
	products, err := s.breaker.Execute(func() ([]domain.Product, error) {
		p, err := s.remote.FetchByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return []domain.Product{*p}, nil
	})
	if err == nil {
		return &products[0], nil
	}

	if !errors.Is(err, apperrors.ErrNotFound) {
		s.logger.WarnContext(ctx, "remote catalog unavailable, serving fallback",
			slog.String("source", s.remote.Name()),
			slog.String("product_id", id),
			slog.String("error", err.Error()),
		)
		catalogFallbackTotal.WithLabelValues("error").Inc()
	}

	return s.fallback.FetchByID(ctx, id)
}
