// Package app serves the Docket web shell: server-rendered pages hosting the
// case list, the review editor, and generated reports. The pages are thin
// hosts for the bundled client; all data flows through the API module.
package app

import (
	"embed"
	"net/http"

	"github.com/JaimeStill/docket/pkg/module"
	"github.com/JaimeStill/docket/pkg/web"
)

//go:embed layouts/*.html views/*.html
var templateFS embed.FS

//go:embed dist
var distFS embed.FS

var views = []web.ViewDef{
	{Route: "GET /{$}", Template: "cases.html", Title: "Cases", Bundle: "cases"},
	{Route: "GET /cases/{id}", Template: "editor.html", Title: "Case Review", Bundle: "editor"},
	{Route: "GET /reports", Template: "reports.html", Title: "Reports", Bundle: "reports"},
}

var notFound = web.ViewDef{Template: "notfound.html", Title: "Not Found"}

// NewModule creates the web shell module at basePath.
func NewModule(basePath string) (*module.Module, error) {
	ts, err := web.NewTemplateSet(
		templateFS,
		templateFS,
		"layouts/*.html",
		"views",
		basePath,
		append(views, notFound),
	)
	if err != nil {
		return nil, err
	}

	router := web.NewRouter()
	for _, view := range views {
		router.HandleFunc(view.Route, ts.PageHandler("layout", view))
	}
	router.Handle("GET /dist/", web.DistServer(distFS, "dist", "/dist/"))
	router.SetFallback(ts.ErrorHandler("layout", notFound, http.StatusNotFound))

	return module.New(basePath, router), nil
}
