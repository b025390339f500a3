package accounts

import (
	"net/url"

	"github.com/JaimeStill/docket/pkg/query"
	"github.com/JaimeStill/docket/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "accounts", "a").
	Project("id", "ID").
	Project("code", "Code").
	Project("name", "Name").
	Project("category", "Category")

var defaultSort = query.SortField{
	Field: "code",
}

// Filters contains optional filtering criteria for account queries.
// Nil fields are ignored. Category uses exact matching; Code and Name
// use case-insensitive contains matching.
type Filters struct {
	Code     *string   `json:"code,omitempty"`
	Name     *string   `json:"name,omitempty"`
	Category *Category `json:"category,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Code", f.Code).
		WhereContains("Name", f.Name).
		WhereEquals("Category", f.Category)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if c := values.Get("code"); c != "" {
		f.Code = &c
	}

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	if cat := values.Get("category"); cat != "" {
		category := Category(cat)
		f.Category = &category
	}

	return f
}

func scanAccount(s repository.Scanner) (Account, error) {
	var a Account
	err := s.Scan(
		&a.ID,
		&a.Code,
		&a.Name,
		&a.Category,
	)
	return a, err
}
