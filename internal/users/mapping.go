package users

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/docket/pkg/query"
	"github.com/JaimeStill/docket/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "users", "u").
	Project("id", "ID").
	Project("email", "Email").
	Project("display_name", "DisplayName").
	Project("grade", "Grade").
	Project("active", "Active").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field: "display_name",
}

// Filters contains optional filtering criteria for user queries.
// Nil fields are ignored. Grade and Active use exact matching; Email and
// DisplayName use case-insensitive contains matching.
type Filters struct {
	Email       *string `json:"email,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
	Grade       *Grade  `json:"grade,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Email", f.Email).
		WhereContains("DisplayName", f.DisplayName).
		WhereEquals("Grade", f.Grade).
		WhereEquals("Active", f.Active)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if e := values.Get("email"); e != "" {
		f.Email = &e
	}

	if dn := values.Get("display_name"); dn != "" {
		f.DisplayName = &dn
	}

	if g := values.Get("grade"); g != "" {
		if grade, err := ParseGrade(g); err == nil {
			f.Grade = &grade
		}
	}

	if a := values.Get("active"); a != "" {
		if v, err := strconv.ParseBool(a); err == nil {
			f.Active = &v
		}
	}

	return f
}

func scanUser(s repository.Scanner) (User, error) {
	var u User
	err := s.Scan(
		&u.ID,
		&u.Email,
		&u.DisplayName,
		&u.Grade,
		&u.Active,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}
