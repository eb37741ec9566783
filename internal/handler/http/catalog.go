package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/stylehaus/storefront/pkg/errors"
	"github.com/stylehaus/storefront/pkg/httputil"

	"github.com/stylehaus/storefront/internal/catalog"
	"github.com/stylehaus/storefront/internal/domain"
)

// CatalogHandler handles product browse endpoints.
type CatalogHandler struct {
	service *catalog.Service
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(service *catalog.Service, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{service: service, logger: logger}
}

// List handles GET /api/v1/products
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, err := parseFilters(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	sortBy, err := parseSort(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	products, err := h.service.GetAll(r.Context(), filters, sortBy)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// Featured handles GET /api/v1/products/featured
func (h *CatalogHandler) Featured(w http.ResponseWriter, r *http.Request) {
	count := catalog.DefaultFeaturedCount
	if v := r.URL.Query().Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > catalog.MaxFeaturedCount {
			httputil.WriteError(w, r, apperrors.InvalidInput("count must be between 1 and 20"), h.logger)
			return
		}
		count = n
	}

	products, err := h.service.GetFeatured(r.Context(), count)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// Get handles GET /api/v1/products/{id}
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// ByCategory handles GET /api/v1/categories/{category}/products
func (h *CatalogHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	sortBy, err := parseSort(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	products, err := h.service.GetByCategory(r.Context(), category, sortBy)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

func parseFilters(r *http.Request) (domain.ProductFilters, error) {
	q := r.URL.Query()

	filters := domain.ProductFilters{
		Categories: q["category"],
		Sizes:      q["size"],
		Colors:     q["color"],
	}

	if v := q.Get("min_price"); v != "" {
		p, err := strconv.ParseInt(v, 10, 64)
		if err != nil || p < 0 {
			return filters, apperrors.InvalidInput("min_price must be a non-negative integer")
		}
		filters.MinPrice = &p
	}

	if v := q.Get("max_price"); v != "" {
		p, err := strconv.ParseInt(v, 10, 64)
		if err != nil || p < 0 {
			return filters, apperrors.InvalidInput("max_price must be a non-negative integer")
		}
		filters.MaxPrice = &p
	}

	if filters.MinPrice != nil && filters.MaxPrice != nil && *filters.MinPrice > *filters.MaxPrice {
		return filters, apperrors.InvalidInput("min_price must not exceed max_price")
	}

	return filters, nil
}

func parseSort(r *http.Request) (*domain.ProductSort, error) {
	field := r.URL.Query().Get("sort")
	if field == "" {
		return nil, nil
	}
	if !domain.ValidSortField(field) {
		return nil, apperrors.InvalidInput("unknown sort field: " + field)
	}

	direction := domain.SortDesc
	switch r.URL.Query().Get("direction") {
	case "", "desc":
	case "asc":
		direction = domain.SortAsc
	default:
		return nil, apperrors.InvalidInput("direction must be asc or desc")
	}

	return &domain.ProductSort{Field: domain.SortField(field), Direction: direction}, nil
}
