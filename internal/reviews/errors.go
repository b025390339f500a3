package reviews

import (
	"errors"
	"net/http"
)

// Domain errors for review operations.
var (
	ErrNotFound            = errors.New("review not found")
	ErrInvalidSlot         = errors.New("invalid review slot")
	ErrLocked              = errors.New("review is locked")
	ErrSessionClosed       = errors.New("review session closed")
	ErrConfirmationMissing = errors.New("removal requires confirmation")
)

// MapHTTPStatus maps review domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidSlot) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrLocked) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrSessionClosed) {
		return http.StatusGone
	}
	if errors.Is(err, ErrConfirmationMissing) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
