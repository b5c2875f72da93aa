package handler

import (
	"encoding/json"
	"errors"
	"imagetools/internal/core/domain"
	"net/http"

	"github.com/rs/zerolog/log"
)

const (
	msgNotConfigured = "service is not configured, contact the administrator"
	msgServerError   = "server error, please try again later"
	msgTooLarge      = "uploaded file is too large"
	msgBadRequest    = "invalid request body"
)

func respondJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	respondJSON(w, r, status, errorResponse{Error: message})
}

// respondDomainError maps err onto a status and a user-facing message. upstreamFallback is used when the vendor
// failed without a message worth showing.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error, upstreamFallback string) {
	status, message := statusFor(err, upstreamFallback)

	l := log.Ctx(r.Context())
	if status >= http.StatusInternalServerError {
		l.Error().Err(err).Int("status", status).Msg("request failed")
	} else {
		l.Warn().Err(err).Int("status", status).Msg("request rejected")
	}

	respondError(w, r, status, message)
}

func statusFor(err error, upstreamFallback string) (int, string) {
	var (
		validationErr *domain.ValidationError
		configErr     *domain.ConfigError
		upstreamErr   *domain.UpstreamError
		decodeErr     *domain.DecodeError
		maxBytesErr   *http.MaxBytesError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Message
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge, msgTooLarge
	case errors.As(err, &configErr):
		return http.StatusInternalServerError, msgNotConfigured
	case errors.As(err, &upstreamErr):
		if upstreamErr.Message != "" {
			return upstreamErr.Status(), upstreamErr.Message
		}
		return upstreamErr.Status(), upstreamFallback
	case errors.As(err, &decodeErr):
		return http.StatusUnprocessableEntity, "could not decode the uploaded image"
	default:
		return http.StatusInternalServerError, msgServerError
	}
}
