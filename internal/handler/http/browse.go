package http

import (
	"log/slog"
	"net/http"
	"sync"

	apperrors "github.com/stylehaus/storefront/pkg/errors"
	"github.com/stylehaus/storefront/pkg/httputil"
	"github.com/stylehaus/storefront/pkg/validator"

	"github.com/stylehaus/storefront/internal/catalog"
	"github.com/stylehaus/storefront/internal/domain"
)

// BrowseHandler holds per-shopper browse sessions: the transient filter and
// sort state behind the product listing. Sessions live in memory only.
type BrowseHandler struct {
	catalog *catalog.Service
	logger  *slog.Logger

	mu       sync.Mutex
	sessions map[string]*catalog.Session
}

// NewBrowseHandler creates a new browse HTTP handler.
func NewBrowseHandler(catalogSvc *catalog.Service, logger *slog.Logger) *BrowseHandler {
	return &BrowseHandler{
		catalog:  catalogSvc,
		logger:   logger,
		sessions: make(map[string]*catalog.Session),
	}
}

// FiltersRequest is the body for replacing the session's filters.
type FiltersRequest struct {
	Categories []string `json:"categories"`
	Sizes      []string `json:"sizes"`
	Colors     []string `json:"colors"`
	MinPrice   *int64   `json:"min_price" validate:"omitempty,min=0"`
	MaxPrice   *int64   `json:"max_price" validate:"omitempty,min=0"`
}

// SortRequest is the body for replacing the session's sort.
type SortRequest struct {
	Field     string `json:"field" validate:"required"`
	Direction string `json:"direction" validate:"omitempty,oneof=asc desc"`
}

func (h *BrowseHandler) session(uid string) *catalog.Session {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[uid]
	if !ok {
		s = catalog.NewSession(h.catalog)
		h.sessions[uid] = s
	}
	return s
}

// SetFilters handles PUT /api/v1/browse/filters
func (h *BrowseHandler) SetFilters(w http.ResponseWriter, r *http.Request) {
	var req FiltersRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}
	if req.MinPrice != nil && req.MaxPrice != nil && *req.MinPrice > *req.MaxPrice {
		httputil.WriteError(w, r, apperrors.InvalidInput("min_price must not exceed max_price"), h.logger)
		return
	}

	h.session(userID(r)).SetFilters(domain.ProductFilters{
		Categories: req.Categories,
		Sizes:      req.Sizes,
		Colors:     req.Colors,
		MinPrice:   req.MinPrice,
		MaxPrice:   req.MaxPrice,
	})

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]string{"status": "updated"},
	})
}

// SetSort handles PUT /api/v1/browse/sort
func (h *BrowseHandler) SetSort(w http.ResponseWriter, r *http.Request) {
	var req SortRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}
	if !domain.ValidSortField(req.Field) {
		httputil.WriteError(w, r, apperrors.InvalidInput("unknown sort field: "+req.Field), h.logger)
		return
	}

	direction := domain.SortDesc
	if req.Direction == "asc" {
		direction = domain.SortAsc
	}

	h.session(userID(r)).SetSort(&domain.ProductSort{
		Field:     domain.SortField(req.Field),
		Direction: direction,
	})

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]string{"status": "updated"},
	})
}

// Reset handles DELETE /api/v1/browse
func (h *BrowseHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.session(userID(r)).Reset()

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]string{"status": "reset"},
	})
}

// Products handles GET /api/v1/browse/products
func (h *BrowseHandler) Products(w http.ResponseWriter, r *http.Request) {
	view, err := h.session(userID(r)).Refresh(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: view.Products})
}
