package api

import (
	"net/http"

	"github.com/JaimeStill/docket/internal/config"
	"github.com/JaimeStill/docket/pkg/openapi"
	"github.com/JaimeStill/docket/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	routes.Register(
		mux,
		domain.Cases.Handler().Routes(),
		domain.Reviews.Handler().Routes(),
		domain.Attachments.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		domain.Templates.Handler().Routes(),
		domain.Accounts.Handler().Routes(),
		domain.Users.Handler().Routes(),
		domain.Reports.Handler().Routes(),
		newStorageHandler(
			runtime.Storage,
			runtime.Infrastructure.Logger,
			cfg.Storage.MaxListSize,
		).routes(),
	)

	if spec, err := buildSpec(cfg); err == nil {
		mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(spec))
	} else {
		runtime.Infrastructure.Logger.Warn("openapi spec generation failed", "error", err)
	}
}
