package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stylehaus/storefront/pkg/httputil"

	"github.com/stylehaus/storefront/internal/catalog"
	"github.com/stylehaus/storefront/internal/store"
)

// FavoritesHandler handles favorites endpoints.
type FavoritesHandler struct {
	favorites *store.FavoritesStore
	catalog   *catalog.Service
	logger    *slog.Logger
}

// NewFavoritesHandler creates a new favorites HTTP handler.
func NewFavoritesHandler(favorites *store.FavoritesStore, catalogSvc *catalog.Service, logger *slog.Logger) *FavoritesHandler {
	return &FavoritesHandler{favorites: favorites, catalog: catalogSvc, logger: logger}
}

// ToggleResponse reports a favorite's membership after a toggle.
type ToggleResponse struct {
	ProductID string   `json:"product_id"`
	Favorite  bool     `json:"favorite"`
	IDs       []string `json:"ids"`
}

// List handles GET /api/v1/favorites
func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	set, err := h.favorites.List(r.Context(), userID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: set})
}

// Contains handles GET /api/v1/favorites/{productID}
func (h *FavoritesHandler) Contains(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	favorite, err := h.favorites.Contains(r.Context(), userID(r), productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]any{"product_id": productID, "favorite": favorite},
	})
}

// Toggle handles POST /api/v1/favorites/{productID}/toggle
func (h *FavoritesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	product, err := h.catalog.Lookup(r.Context(), productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	favorite, set, err := h.favorites.Toggle(r.Context(), userID(r), product.ID, product.Name)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: ToggleResponse{ProductID: product.ID, Favorite: favorite, IDs: set.IDs},
	})
}

// Add handles PUT /api/v1/favorites/{productID}
func (h *FavoritesHandler) Add(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	product, err := h.catalog.Lookup(r.Context(), productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	set, err := h.favorites.Add(r.Context(), userID(r), product.ID, product.Name)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: set})
}

// Remove handles DELETE /api/v1/favorites/{productID}
func (h *FavoritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	set, err := h.favorites.Remove(r.Context(), userID(r), productID, "")
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: set})
}
