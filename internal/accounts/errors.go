package accounts

import (
	"errors"
	"net/http"
)

// Domain errors for account operations.
var (
	ErrNotFound        = errors.New("account not found")
	ErrDuplicate       = errors.New("account code already exists")
	ErrInvalidCategory = errors.New("category must be realisation, cost, distribution, or trading")
	ErrInvalidAccount  = errors.New("invalid account")
)

// MapHTTPStatus maps account domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidCategory) || errors.Is(err, ErrInvalidAccount) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
