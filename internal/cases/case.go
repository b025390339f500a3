// Package cases implements the insolvency case domain for Docket.
// It provides types, data access, and business logic for case
// registration, lifecycle status, archival, and lookup for the review
// and reporting systems.
package cases

import (
	"time"

	"github.com/google/uuid"
)

// Case statuses.
const (
	StatusOpen    = "open"
	StatusClosing = "closing"
	StatusClosed  = "closed"
)

// Case types mirror the formal insolvency procedures a case is opened under.
const (
	TypeCVL            = "cvl"
	TypeMVL            = "mvl"
	TypeAdministration = "administration"
	TypeBankruptcy     = "bankruptcy"
)

// Case represents an insolvency appointment with its registration details
// and lifecycle state. The review documents attached to a case live in
// their own columns and are managed by the reviews system, not here.
type Case struct {
	ID              uuid.UUID  `json:"id"`
	Reference       string     `json:"reference"`
	CompanyName     string     `json:"company_name"`
	CaseType        string     `json:"case_type"`
	Status          string     `json:"status"`
	AppointmentDate *time.Time `json:"appointment_date"`
	Archived        bool       `json:"archived"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// CreateCommand carries the data needed to register a new case.
// Status defaults to open when empty.
type CreateCommand struct {
	Reference       string     `json:"reference"`
	CompanyName     string     `json:"company_name"`
	CaseType        string     `json:"case_type"`
	Status          string     `json:"status"`
	AppointmentDate *time.Time `json:"appointment_date"`
}

// UpdateCommand carries the mutable registration details of a case.
// Nil fields are left unchanged.
type UpdateCommand struct {
	Reference       *string    `json:"reference"`
	CompanyName     *string    `json:"company_name"`
	CaseType        *string    `json:"case_type"`
	Status          *string    `json:"status"`
	AppointmentDate *time.Time `json:"appointment_date"`
}

func validCaseType(t string) bool {
	switch t {
	case TypeCVL, TypeMVL, TypeAdministration, TypeBankruptcy:
		return true
	}
	return false
}

func validStatus(s string) bool {
	switch s {
	case StatusOpen, StatusClosing, StatusClosed:
		return true
	}
	return false
}

func (c CreateCommand) validate() error {
	if c.Reference == "" || c.CompanyName == "" {
		return ErrInvalidCase
	}
	if !validCaseType(c.CaseType) {
		return ErrInvalidCase
	}
	if c.Status != "" && !validStatus(c.Status) {
		return ErrInvalidCase
	}
	return nil
}
