package accounts_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/JaimeStill/docket/internal/accounts"
)

func TestCategoryUnmarshalJSON(t *testing.T) {
	t.Run("valid category", func(t *testing.T) {
		var cmd accounts.CreateCommand
		data := `{"code": "R100", "name": "Book Debts", "category": "realisation"}`

		if err := json.Unmarshal([]byte(data), &cmd); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if cmd.Category != accounts.CategoryRealisation {
			t.Errorf("Category = %v, want realisation", cmd.Category)
		}
	})

	t.Run("invalid category rejected", func(t *testing.T) {
		var cmd accounts.CreateCommand
		data := `{"code": "X1", "name": "Bad", "category": "misc"}`

		err := json.Unmarshal([]byte(data), &cmd)
		if !errors.Is(err, accounts.ErrInvalidCategory) {
			t.Errorf("Unmarshal() error = %v, want ErrInvalidCategory", err)
		}
	})
}

func TestCategories(t *testing.T) {
	cats := accounts.Categories()
	if len(cats) != 4 {
		t.Fatalf("Categories() length = %d, want 4", len(cats))
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", accounts.ErrNotFound, http.StatusNotFound},
		{"duplicate code", accounts.ErrDuplicate, http.StatusConflict},
		{"invalid category", accounts.ErrInvalidCategory, http.StatusBadRequest},
		{"invalid account", accounts.ErrInvalidAccount, http.StatusBadRequest},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounts.MapHTTPStatus(tt.err)
			if got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	t.Run("all params present", func(t *testing.T) {
		values := url.Values{
			"code":     {"R1"},
			"name":     {"debts"},
			"category": {"realisation"},
		}

		f := accounts.FiltersFromQuery(values)

		if f.Code == nil || *f.Code != "R1" {
			t.Errorf("Code = %v, want R1", f.Code)
		}
		if f.Name == nil || *f.Name != "debts" {
			t.Errorf("Name = %v, want debts", f.Name)
		}
		if f.Category == nil || *f.Category != accounts.CategoryRealisation {
			t.Errorf("Category = %v, want realisation", f.Category)
		}
	})

	t.Run("empty params yield nil fields", func(t *testing.T) {
		f := accounts.FiltersFromQuery(url.Values{})

		if f.Code != nil || f.Name != nil || f.Category != nil {
			t.Errorf("Filters = %+v, want all nil", f)
		}
	})
}
