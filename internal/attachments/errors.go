package attachments

import (
	"errors"
	"net/http"
)

// Domain errors for attachment operations.
var (
	ErrNotFound     = errors.New("attachment not found")
	ErrDuplicate    = errors.New("attachment already exists")
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
	ErrInvalidFile  = errors.New("invalid file")
	ErrInvalidKind  = errors.New("invalid attachment kind")

	ErrNotPDF         = errors.New("attachment is not a PDF")
	ErrPageOutOfRange = errors.New("page out of range")
)

// MapHTTPStatus maps attachment domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrInvalidFile) || errors.Is(err, ErrInvalidKind) ||
		errors.Is(err, ErrNotPDF) || errors.Is(err, ErrPageOutOfRange) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
