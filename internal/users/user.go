// Package users implements user administration and the grade-based
// module permission gate for Docket. Access is resolved per (grade,
// module) pair; denial is a normal outcome, not an error.
package users

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Grade is a user's seniority level within the practice.
type Grade string

// Valid user grades.
const (
	GradeAdministrator Grade = "administrator"
	GradeSenior        Grade = "senior"
	GradeManager       Grade = "manager"
	GradePartner       Grade = "partner"
)

var grades = []Grade{
	GradeAdministrator,
	GradeSenior,
	GradeManager,
	GradePartner,
}

// Grades returns the list of valid user grades.
func Grades() []Grade {
	return grades
}

// UnmarshalJSON validates that the decoded string is a known grade.
func (g *Grade) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v := Grade(raw)
	if !slices.Contains(grades, v) {
		return ErrInvalidGrade
	}
	*g = v
	return nil
}

// ParseGrade validates a string as a known grade.
// Returns ErrInvalidGrade if the value is not recognized.
func ParseGrade(s string) (Grade, error) {
	v := Grade(s)
	if !slices.Contains(grades, v) {
		return "", ErrInvalidGrade
	}
	return v, nil
}

// Modules that the permission gate governs.
const (
	ModuleCases       = "cases"
	ModuleReviews     = "reviews"
	ModuleAttachments = "attachments"
	ModuleTemplates   = "templates"
	ModuleAccounts    = "accounts"
	ModuleUsers       = "users"
	ModuleReports     = "reports"
)

var modules = []string{
	ModuleCases,
	ModuleReviews,
	ModuleAttachments,
	ModuleTemplates,
	ModuleAccounts,
	ModuleUsers,
	ModuleReports,
}

// Modules returns the list of modules the permission gate governs.
func Modules() []string {
	return modules
}

func validModule(m string) bool {
	return slices.Contains(modules, m)
}

// User represents a practice staff member.
type User struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Grade       Grade     `json:"grade"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to register a user.
type CreateCommand struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Grade       Grade  `json:"grade"`
}

// UpdateCommand carries the mutable details of a user. Nil fields are
// left unchanged.
type UpdateCommand struct {
	Email       *string `json:"email"`
	DisplayName *string `json:"display_name"`
	Grade       *Grade  `json:"grade"`
	Active      *bool   `json:"active"`
}

// Permission is one (grade, module) grant.
type Permission struct {
	Grade  Grade  `json:"grade"`
	Module string `json:"module"`
}
