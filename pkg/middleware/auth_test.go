package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/docket/pkg/middleware"
)

func TestAuthConfigFinalize(t *testing.T) {
	cfg := &middleware.AuthConfig{Enabled: false}
	if err := cfg.Finalize(nil); err != nil {
		t.Errorf("disabled auth should not require issuer: %v", err)
	}

	cfg = &middleware.AuthConfig{Enabled: true}
	if err := cfg.Finalize(nil); err == nil {
		t.Error("enabled auth without issuer should fail validation")
	}

	cfg = &middleware.AuthConfig{Enabled: true, Issuer: "https://login.example.com"}
	if err := cfg.Finalize(nil); err != nil {
		t.Errorf("enabled auth with issuer should pass: %v", err)
	}
}

func TestAuthConfigFinalizeEnv(t *testing.T) {
	t.Setenv("TEST_AUTH_ENABLED", "true")
	t.Setenv("TEST_AUTH_ISSUER", "https://login.example.com")
	t.Setenv("TEST_AUTH_CLIENT_ID", "docket-web")

	cfg := &middleware.AuthConfig{}
	env := &middleware.AuthEnv{
		Enabled:  "TEST_AUTH_ENABLED",
		Issuer:   "TEST_AUTH_ISSUER",
		ClientID: "TEST_AUTH_CLIENT_ID",
	}

	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if !cfg.Enabled {
		t.Error("enabled not read from env")
	}
	if cfg.Issuer != "https://login.example.com" {
		t.Errorf("issuer: got %s", cfg.Issuer)
	}
	if cfg.ClientID != "docket-web" {
		t.Errorf("client_id: got %s", cfg.ClientID)
	}
}

func TestAuthConfigMerge(t *testing.T) {
	base := &middleware.AuthConfig{
		Enabled:  true,
		Issuer:   "https://login.example.com",
		ClientID: "docket-web",
	}
	base.Merge(&middleware.AuthConfig{Enabled: true, Issuer: "https://staging.example.com"})

	if base.Issuer != "https://staging.example.com" {
		t.Errorf("issuer: got %s", base.Issuer)
	}
	if base.ClientID != "docket-web" {
		t.Errorf("client_id should survive empty overlay: got %s", base.ClientID)
	}
}

func TestAuthRejectsMissingToken(t *testing.T) {
	// The verifier is never reached when no bearer token is present.
	handler := middleware.Auth(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"empty token", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/cases", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
			}
		})
	}
}

func TestClaimsFromEmptyContext(t *testing.T) {
	req := httptest.NewRequest("GET", "/cases", nil)
	if _, ok := middleware.ClaimsFrom(req.Context()); ok {
		t.Error("expected no claims on bare context")
	}
}
