package cases

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/docket/pkg/query"
	"github.com/JaimeStill/docket/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "cases", "c").
	Project("id", "ID").
	Project("reference", "Reference").
	Project("company_name", "CompanyName").
	Project("case_type", "CaseType").
	Project("status", "Status").
	Project("appointment_date", "AppointmentDate").
	Project("archived", "Archived").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for case queries.
// Nil fields are ignored. CaseType, Status, and Archived use exact
// matching; Reference and CompanyName use case-insensitive contains
// matching. Archived defaults to false so archived cases only appear
// when asked for.
type Filters struct {
	Reference   *string `json:"reference,omitempty"`
	CompanyName *string `json:"company_name,omitempty"`
	CaseType    *string `json:"case_type,omitempty"`
	Status      *string `json:"status,omitempty"`
	Archived    *bool   `json:"archived,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	archived := false
	if f.Archived != nil {
		archived = *f.Archived
	}

	return b.
		WhereContains("Reference", f.Reference).
		WhereContains("CompanyName", f.CompanyName).
		WhereEquals("CaseType", f.CaseType).
		WhereEquals("Status", f.Status).
		WhereEquals("Archived", &archived)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if ref := values.Get("reference"); ref != "" {
		f.Reference = &ref
	}

	if cn := values.Get("company_name"); cn != "" {
		f.CompanyName = &cn
	}

	if ct := values.Get("case_type"); ct != "" {
		f.CaseType = &ct
	}

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if a := values.Get("archived"); a != "" {
		if v, err := strconv.ParseBool(a); err == nil {
			f.Archived = &v
		}
	}

	return f
}

func scanCase(s repository.Scanner) (Case, error) {
	var c Case
	err := s.Scan(
		&c.ID,
		&c.Reference,
		&c.CompanyName,
		&c.CaseType,
		&c.Status,
		&c.AppointmentDate,
		&c.Archived,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}
