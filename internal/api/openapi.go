package api

import (
	"github.com/JaimeStill/docket/internal/config"
	"github.com/JaimeStill/docket/pkg/openapi"
)

// buildSpec generates the OpenAPI document served at /openapi.json and
// rendered by the Scalar reference UI. Schemas are declared for the
// resources the UI links between; list endpoints share the PageResult
// envelope.
func buildSpec(cfg *config.Config) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"Case": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":               {Type: "string", Format: "uuid"},
				"reference":        {Type: "string"},
				"company_name":     {Type: "string"},
				"case_type":        {Type: "string", Enum: []any{"cvl", "mvl", "administration", "bankruptcy"}},
				"status":           {Type: "string", Enum: []any{"open", "closing", "closed"}},
				"appointment_date": {Type: "string", Format: "date-time"},
				"archived":         {Type: "boolean"},
			},
		},
		"ReviewSession": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"case_id":     {Type: "string", Format: "uuid"},
				"slot":        {Type: "string"},
				"draft":       {Type: "object"},
				"review_date": {Type: "string", Format: "date"},
				"locked":      {Type: "boolean"},
				"status":      {Type: "object"},
			},
		},
		"Attachment": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "string", Format: "uuid"},
				"case_id":      {Type: "string", Format: "uuid"},
				"kind":         {Type: "string"},
				"filename":     {Type: "string"},
				"content_type": {Type: "string"},
			},
		},
		"Template": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":     {Type: "string", Format: "uuid"},
				"name":   {Type: "string"},
				"kind":   {Type: "string", Enum: []any{"diary", "task", "fee", "report"}},
				"body":   {Type: "string"},
				"active": {Type: "boolean"},
			},
		},
		"Account": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":       {Type: "string", Format: "uuid"},
				"code":     {Type: "string"},
				"name":     {Type: "string"},
				"category": {Type: "string", Enum: []any{"realisation", "cost", "distribution", "trading"}},
			},
		},
		"User": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "string", Format: "uuid"},
				"email":        {Type: "string"},
				"display_name": {Type: "string"},
				"grade":        {Type: "string", Enum: []any{"administrator", "senior", "manager", "partner"}},
			},
		},
		"Report": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":            {Type: "string", Format: "uuid"},
				"case_id":       {Type: "string", Format: "uuid"},
				"title":         {Type: "string"},
				"summary":       {Type: "string"},
				"sections":      {Type: "array", Items: &openapi.Schema{Type: "object"}},
				"model_name":    {Type: "string"},
				"provider_name": {Type: "string"},
			},
		},
		"PageResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"items":       {Type: "array", Items: &openapi.Schema{Type: "object"}},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
	})

	spec.Components.AddResponses(map[string]*openapi.Response{
		"NotFound": {Description: "Resource not found"},
		"Conflict": {Description: "Resource state conflict"},
	})

	addCollection(spec, "/cases", "Cases")
	addResource(spec, "/cases/{id}", "Case", "Cases")
	addCollection(spec, "/attachments", "Attachments")
	addResource(spec, "/attachments/{id}", "Attachment", "Attachments")
	addCollection(spec, "/templates", "Templates")
	addResource(spec, "/templates/{id}", "Template", "Templates")
	addCollection(spec, "/accounts", "Accounts")
	addResource(spec, "/accounts/{id}", "Account", "Accounts")
	addCollection(spec, "/users", "Users")
	addResource(spec, "/users/{id}", "User", "Users")
	addCollection(spec, "/reports", "Reports")
	addResource(spec, "/reports/{id}", "Report", "Reports")

	spec.Paths["/cases/{id}/reviews/{slot}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Open a review editor session",
			Tags:    []string{"Reviews"},
			Parameters: []*openapi.Parameter{
				openapi.PathParam("id", "Case identifier"),
				{Name: "slot", In: "path", Required: true, Schema: &openapi.Schema{Type: "string"}},
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Live session state", "ReviewSession"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/attachments/{id}/preview"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Render a PDF attachment page as PNG",
			Tags:    []string{"Attachments"},
			Parameters: []*openapi.Parameter{
				openapi.PathParam("id", "Attachment identifier"),
				openapi.QueryParam("page", "integer", "Page number, defaults to 1", false),
			},
			Responses: map[int]*openapi.Response{
				200: {Description: "Rendered page image"},
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/reports/generate/{caseId}"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:    "Generate a progress report for a case",
			Tags:       []string{"Reports"},
			Parameters: []*openapi.Parameter{openapi.PathParam("caseId", "Case identifier")},
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Generated report", "Report"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	return openapi.MarshalJSON(spec)
}

func addCollection(spec *openapi.Spec, path, tag string) {
	spec.Paths[path] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List " + tag,
			Tags:    []string{tag},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("page", "integer", "Page number", false),
				openapi.QueryParam("page_size", "integer", "Page size", false),
				openapi.QueryParam("search", "string", "Search term", false),
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paged results", "PageResult"),
			},
		},
	}
}

func addResource(spec *openapi.Spec, path, schema, tag string) {
	spec.Paths[path] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Find " + schema + " by id",
			Tags:       []string{tag},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", schema+" identifier")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON(schema, schema),
				404: openapi.ResponseRef("NotFound"),
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Delete " + schema + " by id",
			Tags:       []string{tag},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", schema+" identifier")},
			Responses: map[int]*openapi.Response{
				204: {Description: "Deleted"},
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}
}
