package http

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/stylehaus/storefront/pkg/errors"
	"github.com/stylehaus/storefront/pkg/httputil"
	"github.com/stylehaus/storefront/pkg/logger"
	"github.com/stylehaus/storefront/pkg/validator"

	"github.com/stylehaus/storefront/internal/catalog"
	"github.com/stylehaus/storefront/internal/domain"
	"github.com/stylehaus/storefront/internal/order"
	"github.com/stylehaus/storefront/internal/store"
)

// OrderHandler handles order hand-off endpoints.
type OrderHandler struct {
	orders   *order.Service
	carts    *store.CartStore
	profiles *store.ProfileStore
	catalog  *catalog.Service
	logger   *slog.Logger
}

// NewOrderHandler creates a new order HTTP handler.
func NewOrderHandler(orders *order.Service, carts *store.CartStore, profiles *store.ProfileStore, catalogSvc *catalog.Service, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orders:   orders,
		carts:    carts,
		profiles: profiles,
		catalog:  catalogSvc,
		logger:   logger,
	}
}

// BuyNowRequest is the body for a single-product quick buy.
type BuyNowRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size" validate:"required"`
}

// Checkout handles POST /api/v1/orders/checkout. It hands the whole cart to
// the store and clears the cart once a channel has carried the message.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)

	profile, err := h.requireCompleteProfile(w, r, uid)
	if err != nil {
		return
	}

	cart, err := h.carts.Get(r.Context(), uid)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	handoff, err := h.orders.SendOrder(r.Context(), uid, cart.Items, profile)
	if err != nil {
		h.writeHandoffError(w, r, handoff, err)
		return
	}

	if handoff.Delivered {
		if err := h.carts.Clear(r.Context(), uid); err != nil {
			logger.WithContext(r.Context(), h.logger).WarnContext(r.Context(),
				"order handed off but cart not cleared",
				slog.String("error", err.Error()),
			)
		}
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: handoff})
}

// BuyNow handles POST /api/v1/orders/buy-now. The cart is untouched.
func (h *OrderHandler) BuyNow(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)

	var req BuyNowRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	profile, err := h.requireCompleteProfile(w, r, uid)
	if err != nil {
		return
	}

	product, err := h.catalog.Lookup(r.Context(), req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	handoff, err := h.orders.BuyNow(r.Context(), uid, *product, req.Size, profile)
	if err != nil {
		h.writeHandoffError(w, r, handoff, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: handoff})
}

// requireCompleteProfile loads the profile and rejects the request when it is
// missing or incomplete. On rejection the response is already written.
func (h *OrderHandler) requireCompleteProfile(w http.ResponseWriter, r *http.Request, uid string) (*domain.UserProfile, error) {
	profile, err := h.profiles.Load(r.Context(), uid)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return nil, err
	}
	if profile == nil || !profile.IsComplete() {
		err := apperrors.InvalidInput("complete your delivery profile before ordering")
		httputil.WriteError(w, r, err, h.logger)
		return nil, err
	}
	return profile, nil
}

// writeHandoffError writes hand-off failures. A total channel failure keeps
// the formatted message in the body so the shopper can send it manually.
func (h *OrderHandler) writeHandoffError(w http.ResponseWriter, r *http.Request, handoff *order.Handoff, err error) {
	if errors.Is(err, apperrors.ErrHandoffFailed) && handoff != nil {
		requestID := logger.CorrelationIDFromContext(r.Context())
		httputil.WriteJSON(w, http.StatusBadGateway, httputil.Response{
			Data: handoff,
			Error: &httputil.ErrorResponse{
				Code:      "HANDOFF_FAILED",
				Message:   "could not reach WhatsApp or Instagram; send the message manually",
				RequestID: requestID,
			},
		})
		return
	}
	httputil.WriteError(w, r, err, h.logger)
}
