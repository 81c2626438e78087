package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"storefront/internal/apiclient"
	"storefront/internal/model"
	"storefront/internal/schema"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already sent, so an encode failure cannot be reported.
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response derived from err.
func writeError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	status := statusFor(err)
	code := codeFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Int("status", status).Msg("handler error")
	} else {
		logger.Warn().Err(err).Int("status", status).Msg("request rejected")
	}
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: messageFor(err)})
}

// statusFor maps domain and backend errors to HTTP statuses. Anything
// unrecognised is treated as an upstream failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrDishNotFound),
		errors.Is(err, model.ErrCategoryNotFound),
		errors.Is(err, model.ErrInvalidSlug),
		errors.Is(err, model.ErrUnsupportedLocale),
		errors.Is(err, apiclient.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrDishUnavailable):
		return http.StatusConflict
	case errors.Is(err, model.ErrInvalidQuantity):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrEmptyCart),
		errors.Is(err, schema.ErrInvalid),
		errors.Is(err, apiclient.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apiclient.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusBadGateway
	}
}

func codeFor(err error) string {
	var de *model.DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	if errors.Is(err, schema.ErrInvalid) || errors.Is(err, apiclient.ErrValidation) {
		return model.ErrCodeValidation
	}
	return model.ErrCodeInternalError
}

func messageFor(err error) string {
	var de *model.DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return http.StatusText(statusFor(err))
}
