package templates

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/docket/pkg/query"
	"github.com/JaimeStill/docket/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "templates", "t").
	Project("id", "ID").
	Project("name", "Name").
	Project("kind", "Kind").
	Project("body", "Body").
	Project("description", "Description").
	Project("active", "Active")

var defaultSort = query.SortField{
	Field: "name",
}

// Filters contains optional filtering criteria for template queries.
// Nil fields are ignored. Kind and Active use exact matching.
// Name uses case-insensitive contains matching.
type Filters struct {
	Kind   *Kind   `json:"kind,omitempty"`
	Name   *string `json:"name,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Kind", f.Kind).
		WhereContains("Name", f.Name).
		WhereEquals("Active", f.Active)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if k := values.Get("kind"); k != "" {
		kind := Kind(k)
		f.Kind = &kind
	}

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	if a := values.Get("active"); a != "" {
		if v, err := strconv.ParseBool(a); err == nil {
			f.Active = &v
		}
	}

	return f
}

func scanTemplate(s repository.Scanner) (Template, error) {
	var t Template
	err := s.Scan(
		&t.ID,
		&t.Name,
		&t.Kind,
		&t.Body,
		&t.Description,
		&t.Active,
	)
	return t, err
}
