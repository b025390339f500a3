package reports

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/docket/internal/workflow"
)

// Domain errors for report operations.
var (
	ErrNotFound  = errors.New("report not found")
	ErrDuplicate = errors.New("report already exists")
)

// MapHTTPStatus maps report domain errors to appropriate HTTP status codes.
// Drafting workflow failures surface as 502 since the failure originates
// with the model provider, not this service.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, workflow.ErrCaseNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, workflow.ErrDraftFailed) ||
		errors.Is(err, workflow.ErrReviseFailed) ||
		errors.Is(err, workflow.ErrFinalizeFailed) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
