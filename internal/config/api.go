package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/docket/pkg/formatting"
	"github.com/JaimeStill/docket/pkg/middleware"
	"github.com/JaimeStill/docket/pkg/openapi"
	"github.com/JaimeStill/docket/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "DOCKET_CORS_ENABLED",
	Origins:          "DOCKET_CORS_ORIGINS",
	AllowedMethods:   "DOCKET_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "DOCKET_CORS_ALLOWED_HEADERS",
	AllowCredentials: "DOCKET_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "DOCKET_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "DOCKET_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "DOCKET_PAGINATION_MAX_PAGE_SIZE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "DOCKET_API_OPENAPI_TITLE",
	Description: "DOCKET_API_OPENAPI_DESCRIPTION",
}

var authEnv = &middleware.AuthEnv{
	Enabled:  "DOCKET_API_AUTH_ENABLED",
	Issuer:   "DOCKET_API_AUTH_ISSUER",
	ClientID: "DOCKET_API_AUTH_CLIENT_ID",
}

// APIConfig holds API routing, auth, CORS, and pagination settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	Auth          middleware.AuthConfig `toml:"auth"`
	CORS          middleware.CORSConfig `toml:"cors"`
	Pagination    pagination.Config     `toml:"pagination"`
	OpenAPI       openapi.Config        `toml:"openapi"`
}

func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return 50 * 1024 * 1024 // 50MB fallback
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.Auth.Finalize(authEnv); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}

	c.Auth.Merge(&overlay.Auth)
	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "50MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("DOCKET_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("DOCKET_API_MAX_UPLOAD_SIZE"); v != "" {
		c.MaxUploadSize = v
	}
}
