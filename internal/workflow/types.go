package workflow

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

const (
	KeyCaseID  = "case_id"
	KeyDossier = "dossier"
	KeyDraft   = "report_draft"
)

// ReviewExtract carries one review slot's material into report drafting.
// Content is the decoded draft for the slot; nil ReviewDate means the
// review has not been dated.
type ReviewExtract struct {
	Slot       string         `json:"slot"`
	ReviewName string         `json:"review_name,omitempty"`
	ReviewDate *string        `json:"review_date,omitempty"`
	Content    map[string]any `json:"content"`
}

// Dossier is the case material gathered by the init node and handed to
// every drafting inference.
type Dossier struct {
	CaseID          uuid.UUID       `json:"case_id"`
	Reference       string          `json:"reference"`
	CompanyName     string          `json:"company_name"`
	CaseType        string          `json:"case_type"`
	Status          string          `json:"status"`
	AppointmentDate *string         `json:"appointment_date,omitempty"`
	Reviews         []ReviewExtract `json:"reviews"`
}

// ReportSection is one drafted section of a progress report.
type ReportSection struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ReportDraft holds the running report accumulated across nodes. Title and
// Summary are produced last, by the finalize node, once all sections exist.
type ReportDraft struct {
	Title    string          `json:"title"`
	Summary  string          `json:"summary"`
	Sections []ReportSection `json:"sections"`
}

// NeedsRevision reports whether any section came back without a body.
func (d *ReportDraft) NeedsRevision() bool {
	return slices.ContainsFunc(d.Sections, func(s ReportSection) bool {
		return s.Body == ""
	})
}

// EmptySections returns the indices of sections missing a body.
func (d *ReportDraft) EmptySections() []int {
	var indices []int
	for i, s := range d.Sections {
		if s.Body == "" {
			indices = append(indices, i)
		}
	}
	return indices
}

// WorkflowResult is the final output from a report drafting workflow execution.
type WorkflowResult struct {
	CaseID      uuid.UUID   `json:"case_id"`
	Reference   string      `json:"reference"`
	Draft       ReportDraft `json:"draft"`
	CompletedAt time.Time   `json:"completed_at"`
}
