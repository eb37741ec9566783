package http

import (
	"log/slog"
	"net/http"

	apperrors "github.com/stylehaus/storefront/pkg/errors"
	"github.com/stylehaus/storefront/pkg/httputil"
	"github.com/stylehaus/storefront/pkg/validator"

	"github.com/stylehaus/storefront/internal/domain"
	"github.com/stylehaus/storefront/internal/store"
)

// ProfileHandler handles shipping profile endpoints.
type ProfileHandler struct {
	profiles *store.ProfileStore
	logger   *slog.Logger
}

// NewProfileHandler creates a new profile HTTP handler.
func NewProfileHandler(profiles *store.ProfileStore, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: logger}
}

// SaveProfileRequest is the body for saving the whole profile.
type SaveProfileRequest struct {
	Name              string `json:"name" validate:"required"`
	FullAddress       string `json:"full_address" validate:"required"`
	Pincode           string `json:"pincode" validate:"required"`
	Mobile            string `json:"mobile" validate:"required"`
	AlternativeNumber string `json:"alternative_number"`
	Email             string `json:"email" validate:"omitempty,email"`
}

// Get handles GET /api/v1/profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.Load(r.Context(), userID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if profile == nil {
		httputil.WriteError(w, r, apperrors.NotFound("profile", userID(r)), h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: profile})
}

// Save handles PUT /api/v1/profile
func (h *ProfileHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req SaveProfileRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	profile := domain.UserProfile{
		Name:              req.Name,
		FullAddress:       req.FullAddress,
		Pincode:           req.Pincode,
		Mobile:            req.Mobile,
		AlternativeNumber: req.AlternativeNumber,
		Email:             req.Email,
	}

	if err := h.profiles.Save(r.Context(), userID(r), profile); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: profile})
}

// Patch handles PATCH /api/v1/profile
func (h *ProfileHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var patch domain.ProfilePatch
	if err := validator.DecodeAndValidate(r, &patch); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	profile, err := h.profiles.Update(r.Context(), userID(r), patch)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if profile == nil {
		httputil.WriteError(w, r, apperrors.NotFound("profile", userID(r)), h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: profile})
}

// Delete handles DELETE /api/v1/profile
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.profiles.Clear(r.Context(), userID(r)); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]string{"status": "cleared"},
	})
}

// Completeness handles GET /api/v1/profile/complete
func (h *ProfileHandler) Completeness(w http.ResponseWriter, r *http.Request) {
	complete, err := h.profiles.IsComplete(r.Context(), userID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]bool{"complete": complete},
	})
}
