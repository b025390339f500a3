package users

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/docket/pkg/handlers"
	"github.com/JaimeStill/docket/pkg/pagination"
	"github.com/JaimeStill/docket/pkg/routes"
)

// Handler provides HTTP endpoints for user and permission operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// AccessResult reports a permission gate decision.
type AccessResult struct {
	Grade   Grade  `json:"grade"`
	Module  string `json:"module"`
	Allowed bool   `json:"allowed"`
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "users"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for user endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/users",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/grades", Handler: h.Grades},
			{Method: "GET", Pattern: "/modules", Handler: h.Modules},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "POST", Pattern: "/search", Handler: h.Search},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
			{Method: "GET", Pattern: "/permissions/{grade}", Handler: h.Permissions},
			{Method: "GET", Pattern: "/permissions/{grade}/{module}", Handler: h.Access},
			{Method: "POST", Pattern: "/permissions/{grade}/{module}", Handler: h.Grant},
			{Method: "DELETE", Pattern: "/permissions/{grade}/{module}", Handler: h.Revoke},
		},
	}
}

// List returns a paginated list of users with optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Grades returns the list of valid user grades.
func (h *Handler) Grades(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Grades())
}

// Modules returns the list of modules the permission gate governs.
func (h *Handler) Modules(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Modules())
}

// Find returns a single user by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidUser)
		return
	}

	u, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, u)
}

// Search accepts a JSON body with pagination and filter criteria and returns matching users.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.sys.List(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create registers a new user.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	u, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, u)
}

// Update modifies a user's details.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidUser)
		return
	}

	var cmd UpdateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	u, err := h.sys.Update(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, u)
}

// Delete removes a user by its UUID path parameter.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidUser)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Permissions returns the modules granted to a grade.
func (h *Handler) Permissions(w http.ResponseWriter, r *http.Request) {
	grade, err := ParseGrade(r.PathValue("grade"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	perms, err := h.sys.Gate().ListForGrade(r.Context(), grade)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, perms)
}

// Access reports whether a grade may use a module. Denial is a 200 with
// allowed false, not an error status.
func (h *Handler) Access(w http.ResponseWriter, r *http.Request) {
	grade, err := ParseGrade(r.PathValue("grade"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	module := r.PathValue("module")
	allowed, err := h.sys.Gate().HasAccess(r.Context(), grade, module)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, AccessResult{
		Grade:   grade,
		Module:  module,
		Allowed: allowed,
	})
}

// Grant adds a (grade, module) permission.
func (h *Handler) Grant(w http.ResponseWriter, r *http.Request) {
	grade, err := ParseGrade(r.PathValue("grade"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	module := r.PathValue("module")
	if err := h.sys.Gate().Grant(r.Context(), grade, module); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, AccessResult{
		Grade:   grade,
		Module:  module,
		Allowed: true,
	})
}

// Revoke removes a (grade, module) permission.
func (h *Handler) Revoke(w http.ResponseWriter, r *http.Request) {
	grade, err := ParseGrade(r.PathValue("grade"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	module := r.PathValue("module")
	if err := h.sys.Gate().Revoke(r.Context(), grade, module); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
