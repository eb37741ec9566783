package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := NotFound("product", "prod-9")
	assert.Contains(t, err.Error(), "NOT_FOUND")
	assert.Contains(t, err.Error(), "prod-9")

	withCause := &AppError{Code: "X", Message: "boom", Err: errors.New("cause")}
	assert.Contains(t, withCause.Error(), "cause")
}

func TestAppError_Unwrap(t *testing.T) {
	assert.ErrorIs(t, NotFound("product", "1"), ErrNotFound)
	assert.ErrorIs(t, InvalidInput("bad"), ErrInvalidInput)
	assert.ErrorIs(t, Conflict("clash"), ErrConflict)
	assert.ErrorIs(t, Unavailable("down"), ErrServiceUnavail)
	assert.ErrorIs(t, HandoffFailed("no channel"), ErrHandoffFailed)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NotFound("product", "1"), http.StatusNotFound},
		{InvalidInput("bad"), http.StatusBadRequest},
		{Conflict("clash"), http.StatusConflict},
		{Unavailable("down"), http.StatusServiceUnavailable},
		{HandoffFailed("no channel"), http.StatusBadGateway},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", ErrNotFound), http.StatusNotFound},
		{errors.New("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), "error: %v", tt.err)
	}
}

func TestWrap(t *testing.T) {
	base := errors.New("base")
	wrapped := Wrap(base, "context")
	assert.ErrorIs(t, wrapped, base)
	assert.Contains(t, wrapped.Error(), "context")
}
