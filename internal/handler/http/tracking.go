package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stylehaus/storefront/pkg/httputil"
	"github.com/stylehaus/storefront/pkg/validator"

	"github.com/stylehaus/storefront/internal/event"
)

// TrackingHandler accepts client-side interaction events and forwards them to
// the tracking sink. All endpoints answer 202; a lost event is never the
// shopper's problem.
type TrackingHandler struct {
	tracker *event.Producer
	logger  *slog.Logger
}

// NewTrackingHandler creates a new tracking HTTP handler.
func NewTrackingHandler(tracker *event.Producer, logger *slog.Logger) *TrackingHandler {
	return &TrackingHandler{tracker: tracker, logger: logger}
}

// PageViewRequest is the body for a page view event.
type PageViewRequest struct {
	Page string `json:"page" validate:"required"`
}

// ShareRequest is the body for a product share event.
type ShareRequest struct {
	Method string `json:"method" validate:"required"`
}

// ImageViewRequest is the body for a gallery image view event.
type ImageViewRequest struct {
	ImageIndex int `json:"image_index" validate:"min=0"`
}

// PageView handles POST /api/v1/track/page-view
func (h *TrackingHandler) PageView(w http.ResponseWriter, r *http.Request) {
	var req PageViewRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	h.tracker.PageView(r.Context(), req.Page)
	w.WriteHeader(http.StatusAccepted)
}

// Share handles POST /api/v1/products/{id}/share
func (h *TrackingHandler) Share(w http.ResponseWriter, r *http.Request) {
	var req ShareRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	h.tracker.Share(r.Context(), chi.URLParam(r, "id"), req.Method)
	w.WriteHeader(http.StatusAccepted)
}

// ImageView handles POST /api/v1/products/{id}/image-view
func (h *TrackingHandler) ImageView(w http.ResponseWriter, r *http.Request) {
	var req ImageViewRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	h.tracker.ImageInteraction(r.Context(), chi.URLParam(r, "id"), req.ImageIndex)
	w.WriteHeader(http.StatusAccepted)
}
