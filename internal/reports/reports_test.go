package reports_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/docket/internal/reports"
	"github.com/JaimeStill/docket/internal/workflow"
	"github.com/JaimeStill/docket/pkg/query"
)

func ptr[T any](v T) *T { return &v }

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", reports.ErrNotFound, http.StatusNotFound},
		{"duplicate", reports.ErrDuplicate, http.StatusConflict},
		{"case not found", workflow.ErrCaseNotFound, http.StatusNotFound},
		{"draft failed", workflow.ErrDraftFailed, http.StatusBadGateway},
		{"revise failed", workflow.ErrReviseFailed, http.StatusBadGateway},
		{"finalize failed", workflow.ErrFinalizeFailed, http.StatusBadGateway},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
		{"wrapped case not found", fmt.Errorf("generate report for case x: %w", workflow.ErrCaseNotFound), http.StatusNotFound},
		{"wrapped draft failure", fmt.Errorf("execute graph: %w", workflow.ErrDraftFailed), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reports.MapHTTPStatus(tt.err)
			if got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	caseID := uuid.New()

	t.Run("all params present", func(t *testing.T) {
		values := url.Values{
			"case_id":       {caseID.String()},
			"model_name":    {"gpt-oss"},
			"provider_name": {"ollama"},
		}

		f := reports.FiltersFromQuery(values)

		if f.CaseID == nil || *f.CaseID != caseID {
			t.Errorf("CaseID = %v, want %s", f.CaseID, caseID)
		}
		if f.ModelName == nil || *f.ModelName != "gpt-oss" {
			t.Errorf("ModelName = %v, want gpt-oss", f.ModelName)
		}
		if f.ProviderName == nil || *f.ProviderName != "ollama" {
			t.Errorf("ProviderName = %v, want ollama", f.ProviderName)
		}
	})

	t.Run("empty params yield nil fields", func(t *testing.T) {
		f := reports.FiltersFromQuery(url.Values{})

		if f.CaseID != nil {
			t.Errorf("CaseID = %v, want nil", f.CaseID)
		}
		if f.ModelName != nil {
			t.Errorf("ModelName = %v, want nil", f.ModelName)
		}
		if f.ProviderName != nil {
			t.Errorf("ProviderName = %v, want nil", f.ProviderName)
		}
	})

	t.Run("invalid case_id ignored", func(t *testing.T) {
		values := url.Values{"case_id": {"not-a-uuid"}}
		f := reports.FiltersFromQuery(values)

		if f.CaseID != nil {
			t.Errorf("CaseID = %v, want nil for invalid input", f.CaseID)
		}
	})
}

func TestFiltersApply(t *testing.T) {
	projection := query.
		NewProjectionMap("public", "reports", "r").
		Project("case_id", "CaseID").
		Project("model_name", "ModelName").
		Project("provider_name", "ProviderName")

	t.Run("no filters produces no WHERE clause", func(t *testing.T) {
		b := query.NewBuilder(projection)
		f := reports.Filters{}
		f.Apply(b)
		_, args := b.Build()

		if len(args) != 0 {
			t.Errorf("args = %v, want empty", args)
		}
	})

	t.Run("case filter", func(t *testing.T) {
		caseID := uuid.New()
		b := query.NewBuilder(projection)
		f := reports.Filters{CaseID: &caseID}
		f.Apply(b)
		_, args := b.Build()

		if len(args) != 1 {
			t.Fatalf("args = %v, want 1 arg", args)
		}
	})

	t.Run("multiple filters combine with AND", func(t *testing.T) {
		caseID := uuid.New()
		b := query.NewBuilder(projection)
		f := reports.Filters{
			CaseID:    &caseID,
			ModelName: ptr("gpt-oss"),
		}
		f.Apply(b)
		_, args := b.Build()

		if len(args) != 2 {
			t.Fatalf("args = %v, want 2 args", args)
		}
	})
}
