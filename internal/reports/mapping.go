package reports

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/JaimeStill/docket/internal/workflow"
	"github.com/JaimeStill/docket/pkg/query"
	"github.com/JaimeStill/docket/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "reports", "r").
	Project("id", "ID").
	Project("case_id", "CaseID").
	Project("title", "Title").
	Project("summary", "Summary").
	Project("sections", "Sections").
	Project("generated_at", "GeneratedAt").
	Project("model_name", "ModelName").
	Project("provider_name", "ProviderName")

var defaultSort = query.SortField{
	Field:      "GeneratedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for report queries.
// Nil fields are ignored. All fields use exact matching.
type Filters struct {
	CaseID       *uuid.UUID `json:"case_id,omitempty"`
	ModelName    *string    `json:"model_name,omitempty"`
	ProviderName *string    `json:"provider_name,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("CaseID", f.CaseID).
		WhereEquals("ModelName", f.ModelName).
		WhereEquals("ProviderName", f.ProviderName)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if c := values.Get("case_id"); c != "" {
		if id, err := uuid.Parse(c); err == nil {
			f.CaseID = &id
		}
	}

	if m := values.Get("model_name"); m != "" {
		f.ModelName = &m
	}

	if p := values.Get("provider_name"); p != "" {
		f.ProviderName = &p
	}

	return f
}

func scanReport(s repository.Scanner) (Report, error) {
	var r Report
	var sectionsRaw []byte

	err := s.Scan(
		&r.ID,
		&r.CaseID,
		&r.Title,
		&r.Summary,
		&sectionsRaw,
		&r.GeneratedAt,
		&r.ModelName,
		&r.ProviderName,
	)

	if err != nil {
		return r, err
	}

	if len(sectionsRaw) > 0 {
		if err := json.Unmarshal(sectionsRaw, &r.Sections); err != nil {
			return r, fmt.Errorf("unmarshal sections: %w", err)
		}
	}

	if r.Sections == nil {
		r.Sections = []workflow.ReportSection{}
	}

	return r, nil
}
