package users

import (
	"errors"
	"net/http"
)

// Domain errors for user operations.
var (
	ErrNotFound      = errors.New("user not found")
	ErrDuplicate     = errors.New("email already registered")
	ErrInvalidUser   = errors.New("invalid user")
	ErrInvalidGrade  = errors.New("grade must be administrator, senior, manager, or partner")
	ErrInvalidModule = errors.New("unknown module")
)

// MapHTTPStatus maps user domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidUser) ||
		errors.Is(err, ErrInvalidGrade) ||
		errors.Is(err, ErrInvalidModule) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
