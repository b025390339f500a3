package cases

import (
	"errors"
	"net/http"
)

// Domain errors for case operations.
var (
	ErrNotFound    = errors.New("case not found")
	ErrDuplicate   = errors.New("case reference already registered")
	ErrInvalidCase = errors.New("invalid case")
	ErrArchived    = errors.New("case is archived")
)

// MapHTTPStatus maps case domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidCase) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrArchived) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
