// Package app wires the storefront's dependencies and runs the service.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/stylehaus/storefront/pkg/database"
	"github.com/stylehaus/storefront/pkg/health"
	pkgkafka "github.com/stylehaus/storefront/pkg/kafka"
	"github.com/stylehaus/storefront/pkg/middleware"
	"github.com/stylehaus/storefront/pkg/tracing"

	"github.com/stylehaus/storefront/internal/catalog"
	catalogpg "github.com/stylehaus/storefront/internal/catalog/postgres"
	"github.com/stylehaus/storefront/internal/config"
	"github.com/stylehaus/storefront/internal/event"
	handler "github.com/stylehaus/storefront/internal/handler/http"
	kvredis "github.com/stylehaus/storefront/internal/kv/redis"
	"github.com/stylehaus/storefront/internal/order"
	"github.com/stylehaus/storefront/internal/store"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	redis          *goredis.Client
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "storefront",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SampleRate:     cfg.TraceSampleRate,
		Enabled:        cfg.OTLPEndpoint != "",
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	pgCfg := cfg.Postgres()
	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.String("database", cfg.PostgresDB),
	)

	redisClient, err := database.NewRedisClient(ctx, cfg.Redis())
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis", slog.String("addr", cfg.RedisAddr))

	// Tracking is optional: without brokers every event is dropped locally.
	var producer *pkgkafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	// Build the dependency graph.
	kvStore := kvredis.NewStore(redisClient, logger)
	tracker := newTracker(producer, logger)

	remote := catalogpg.NewSource(pool)
	resilient := catalog.NewResilientSource(remote, catalog.NewFallbackSource(), catalog.DefaultBreakerConfig(), logger)
	catalogSvc := catalog.NewService(resilient, tracker, logger)

	carts := store.NewCartStore(kvStore, tracker, logger)
	favorites := store.NewFavoritesStore(kvStore, tracker, logger)
	profiles := store.NewProfileStore(kvStore, logger)

	formatter := order.NewFormatter(cfg.StoreName, cfg.CurrencySymbol, nil)
	orders := order.NewService(
		formatter,
		order.NewWhatsAppChannel(cfg.WhatsAppNumber),
		order.NewInstagramChannel(cfg.InstagramUsername, kvStore, logger),
		tracker,
		logger,
	)

	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("redis", func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})
	if producer != nil {
		healthHandler.Register("kafka", producer.Ping)
	}

	router := handler.NewRouter(handler.RouterDeps{
		Catalog:   catalogSvc,
		Carts:     carts,
		Favorites: favorites,
		Profiles:  profiles,
		Orders:    orders,
		Tracker:   tracker,
		Health:    healthHandler,
		Logger:    logger,
		CORS:      corsConfig(cfg),
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		redis:          redisClient,
		producer:       producer,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

func newTracker(producer *pkgkafka.Producer, logger *slog.Logger) *event.Producer {
	if producer == nil {
		return event.NewProducer(nil, logger)
	}
	return event.NewProducer(producer, logger)
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	c := middleware.DefaultCORSConfig()
	c.AllowedOrigins = cfg.CORSAllowedOrigins
	c.Environment = cfg.Environment
	return c
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components: the HTTP server first so
// in-flight requests drain, then the tracer so their spans flush, then the
// producer and stores.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if err := a.redis.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
