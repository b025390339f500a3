package app_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/docket/web/app"
)

func TestNewModule(t *testing.T) {
	m, err := app.NewModule("/app")
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}
	if m.Prefix() != "/app" {
		t.Errorf("prefix: got %s, want /app", m.Prefix())
	}
}

func TestPages(t *testing.T) {
	m, err := app.NewModule("/app")
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	tests := []struct {
		name     string
		path     string
		status   int
		contains string
	}{
		{"case list", "/app/", http.StatusOK, "Cases"},
		{"review editor", "/app/cases/0c2d8f3a", http.StatusOK, "review-editor"},
		{"reports", "/app/reports", http.StatusOK, "Reports"},
		{"unknown page", "/app/nope", http.StatusNotFound, "Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			rec := httptest.NewRecorder()
			m.Serve(rec, req)

			if rec.Code != tt.status {
				t.Errorf("status: got %d, want %d", rec.Code, tt.status)
			}
			if !strings.Contains(rec.Body.String(), tt.contains) {
				t.Errorf("body does not contain %q", tt.contains)
			}
		})
	}
}

func TestStaticAssets(t *testing.T) {
	m, err := app.NewModule("/app")
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	req := httptest.NewRequest("GET", "/app/dist/app.css", nil)
	rec := httptest.NewRecorder()
	m.Serve(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
}
