// Package http exposes the storefront over REST.
package http

import (
	"net/http"
	"strings"

	"github.com/stylehaus/storefront/pkg/httputil"
	"github.com/stylehaus/storefront/pkg/logger"
)

// userIDHeader carries the shopper's anonymous identity. The storefront
// client generates a stable id per browser and sends it on every request.
const userIDHeader = "X-User-ID"

// ContentTypeJSON rejects mutating requests that do not declare a JSON body.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.Response{
					Error: &httputil.ErrorResponse{
						Code:    "UNSUPPORTED_MEDIA_TYPE",
						Message: "Content-Type must be application/json",
					},
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUser extracts the shopper id header and stores it on the context.
// Requests without one are rejected; per-shopper state has no meaning then.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(userIDHeader)
		if userID == "" {
			httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
				Error: &httputil.ErrorResponse{
					Code:    "UNAUTHORIZED",
					Message: "X-User-ID header is required",
				},
			})
			return
		}
		next.ServeHTTP(w, r.WithContext(logger.WithUserID(r.Context(), userID)))
	})
}

func userID(r *http.Request) string {
	return logger.UserIDFromContext(r.Context())
}
