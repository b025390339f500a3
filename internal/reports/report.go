// Package reports implements the progress report domain for Docket.
// It provides types, data access, and business logic for storing, querying,
// and generating case progress reports produced by the drafting workflow.
package reports

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/docket/internal/workflow"
)

// Report represents a stored progress report for a case. A case accumulates
// reports over its life; each generation inserts a new row. ModelName and
// ProviderName record which model drafted the report.
type Report struct {
	ID           uuid.UUID                `json:"id"`
	CaseID       uuid.UUID                `json:"case_id"`
	Title        string                   `json:"title"`
	Summary      string                   `json:"summary"`
	Sections     []workflow.ReportSection `json:"sections"`
	GeneratedAt  time.Time                `json:"generated_at"`
	ModelName    string                   `json:"model_name"`
	ProviderName string                   `json:"provider_name"`
}
