// Package accounts implements the chart of accounts domain for Docket.
// It provides types, data access, and HTTP handlers for the nominal
// codes that receipts and payments are posted against.
package accounts

import (
	"encoding/json"
	"slices"

	"github.com/google/uuid"
)

// Category classifies an account within the estate ledger.
type Category string

// Valid account categories.
const (
	CategoryRealisation  Category = "realisation"
	CategoryCost         Category = "cost"
	CategoryDistribution Category = "distribution"
	CategoryTrading      Category = "trading"
)

var categories = []Category{
	CategoryRealisation,
	CategoryCost,
	CategoryDistribution,
	CategoryTrading,
}

// Categories returns the list of valid account categories.
func Categories() []Category {
	return categories
}

// UnmarshalJSON validates that the decoded string is a known category.
func (c *Category) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v := Category(raw)
	if !slices.Contains(categories, v) {
		return ErrInvalidCategory
	}
	*c = v
	return nil
}

// Account represents one nominal code in the chart of accounts.
// Codes are unique across the chart.
type Account struct {
	ID       uuid.UUID `json:"id"`
	Code     string    `json:"code"`
	Name     string    `json:"name"`
	Category Category  `json:"category"`
}

// CreateCommand carries the data needed to add an account.
type CreateCommand struct {
	Code     string   `json:"code"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

// UpdateCommand carries the data needed to update an existing account.
type UpdateCommand struct {
	Code     string   `json:"code"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
}
