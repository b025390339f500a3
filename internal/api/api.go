// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/JaimeStill/docket/internal/config"
	"github.com/JaimeStill/docket/internal/infrastructure"
	"github.com/JaimeStill/docket/pkg/middleware"
	"github.com/JaimeStill/docket/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)

	domain, err := NewDomain(runtime, cfg)
	if err != nil {
		return nil, err
	}

	// Review sessions flush through the lifecycle coordinator on shutdown.
	if err := domain.Reviews.Start(infra.Lifecycle); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg, runtime)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))

	if cfg.API.Auth.Enabled {
		verifier, err := middleware.NewVerifier(context.Background(), &cfg.API.Auth)
		if err != nil {
			return nil, fmt.Errorf("configure auth: %w", err)
		}
		m.Use(middleware.Auth(verifier))
	}

	m.Use(middleware.Logger(runtime.Infrastructure.Logger))

	return m, nil
}
