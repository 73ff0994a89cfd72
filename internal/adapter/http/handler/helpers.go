package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/thara/minibank/internal/adapter/http/dto"
	"github.com/thara/minibank/internal/domain"
)

// AccountPasswordHeader carries the account password on read-only
// endpoints, where a request body is not available.
const AccountPasswordHeader = "X-Account-Password"

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAuthenticationFailed),
		errors.Is(err, domain.ErrAdminAuthenticationFailed):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrRecipientNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidInitialBalance),
		errors.Is(err, domain.ErrInvalidHolderName),
		errors.Is(err, domain.ErrInvalidPassword),
		errors.Is(err, domain.ErrInvalidInterestTerms),
		errors.Is(err, domain.ErrSameAccount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
