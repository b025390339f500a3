// Package templates implements case boilerplate templates for Docket.
// It provides types, data access, and HTTP handlers for managing the
// named diary, task, fee, and report templates. Diary, task, and fee
// templates seed newly opened cases; the active report template supplies
// the drafting instructions for generated progress reports.
package templates

import "github.com/google/uuid"

// Template represents a named body of boilerplate for one template kind.
// At most one template per kind is active; the active template is the
// one applied to newly opened cases.
type Template struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Kind        Kind      `json:"kind"`
	Body        string    `json:"body"`
	Description *string   `json:"description"`
	Active      bool      `json:"active"`
}

// CreateCommand carries the data needed to create a new template.
type CreateCommand struct {
	Name        string  `json:"name"`
	Kind        Kind    `json:"kind"`
	Body        string  `json:"body"`
	Description *string `json:"description"`
}

// UpdateCommand carries the data needed to update an existing template.
type UpdateCommand struct {
	Name        string  `json:"name"`
	Kind        Kind    `json:"kind"`
	Body        string  `json:"body"`
	Description *string `json:"description"`
}
