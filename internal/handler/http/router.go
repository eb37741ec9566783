package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stylehaus/storefront/pkg/health"
	"github.com/stylehaus/storefront/pkg/middleware"

	"github.com/stylehaus/storefront/internal/catalog"
	"github.com/stylehaus/storefront/internal/event"
	"github.com/stylehaus/storefront/internal/order"
	"github.com/stylehaus/storefront/internal/store"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Catalog   *catalog.Service
	Carts     *store.CartStore
	Favorites *store.FavoritesStore
	Profiles  *store.ProfileStore
	Orders    *order.Service
	Tracker   *event.Producer
	Health    *health.Handler
	Logger    *slog.Logger
	CORS      middleware.CORSConfig
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS(deps.CORS))
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(chimiddleware.Compress(5))
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(deps.Logger))

	r.Get("/health/live", deps.Health.LivenessHandler())
	r.Get("/health/ready", deps.Health.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	catalogHandler := NewCatalogHandler(deps.Catalog, deps.Logger)
	cartHandler := NewCartHandler(deps.Carts, deps.Catalog, deps.Logger)
	favoritesHandler := NewFavoritesHandler(deps.Favorites, deps.Catalog, deps.Logger)
	profileHandler := NewProfileHandler(deps.Profiles, deps.Logger)
	orderHandler := NewOrderHandler(deps.Orders, deps.Carts, deps.Profiles, deps.Catalog, deps.Logger)
	browseHandler := NewBrowseHandler(deps.Catalog, deps.Logger)
	trackingHandler := NewTrackingHandler(deps.Tracker, deps.Logger)

	// Public catalog endpoints
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", catalogHandler.List)
		r.Get("/featured", catalogHandler.Featured)
		r.Get("/{id}", catalogHandler.Get)
		r.Post("/{id}/share", trackingHandler.Share)
		r.Post("/{id}/image-view", trackingHandler.ImageView)
	})
	r.Get("/api/v1/categories/{category}/products", catalogHandler.ByCategory)
	r.With(ContentTypeJSON).Post("/api/v1/track/page-view", trackingHandler.PageView)

	// Per-shopper state
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(RequireUser)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.Get)
			r.Delete("/", cartHandler.Clear)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{productID}", cartHandler.UpdateItem)
			r.Delete("/items/{productID}", cartHandler.RemoveItem)
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", favoritesHandler.List)
			r.Get("/{productID}", favoritesHandler.Contains)
			r.Put("/{productID}", favoritesHandler.Add)
			r.Delete("/{productID}", favoritesHandler.Remove)
			r.Post("/{productID}/toggle", favoritesHandler.Toggle)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", profileHandler.Get)
			r.Put("/", profileHandler.Save)
			r.Patch("/", profileHandler.Patch)
			r.Delete("/", profileHandler.Delete)
			r.Get("/complete", profileHandler.Completeness)
		})

		r.Route("/browse", func(r chi.Router) {
			r.Get("/products", browseHandler.Products)
			r.Put("/filters", browseHandler.SetFilters)
			r.Put("/sort", browseHandler.SetSort)
			r.Delete("/", browseHandler.Reset)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/checkout", orderHandler.Checkout)
			r.Post("/buy-now", orderHandler.BuyNow)
		})
	})

	return r
}
