package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/theme"
)

const maxBodyBytes = 1 << 20

var errBadRequest = errors.New("bad request")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, middleware.ErrorResponse{
		Error:         msg,
		CorrelationID: middleware.GetCorrelationID(r.Context()),
	})
}

// statusFor maps domain errors onto HTTP statuses.
func statusFor(err error) int {
	var (
		userErrs  cart.UserErrors
		transport *cart.TransportError
	)
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, cart.ErrInvalidQuantity):
		return http.StatusBadRequest
	case errors.As(err, &userErrs):
		return http.StatusUnprocessableEntity
	case errors.Is(err, cart.ErrNoCart), errors.Is(err, catalog.ErrNotFound), errors.Is(err, theme.ErrUnknownMode):
		return http.StatusNotFound
	case errors.Is(err, cart.ErrCartNotFound), errors.As(err, &transport):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err with its mapped status. Server-side failures are
// logged and their details kept out of the body.
func respondError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	status := statusFor(err)
	msg := err.Error()
	switch {
	case status == http.StatusBadGateway:
		msg = "storefront api unavailable"
	case status >= 500:
		msg = "internal error"
	}
	if status >= 500 {
		logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.String("correlation_id", middleware.GetCorrelationID(r.Context())),
			zap.Error(err),
		)
	}
	writeError(w, r, status, msg)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}
