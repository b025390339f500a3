package reviews

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/JaimeStill/docket/pkg/handlers"
	"github.com/JaimeStill/docket/pkg/routes"
)

// Handler provides HTTP endpoints for review editor sessions.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "reviews"),
	}
}

// Routes returns the route group definition for review endpoints.
// Session routes exist in two shapes: fixed slots address a single path
// segment, additional reviews carry an element index.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/cases",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{id}/reviews/{slot}", Handler: h.Open},
			{Method: "GET", Pattern: "/{id}/reviews/{slot}/{index}", Handler: h.Open},
			{Method: "PATCH", Pattern: "/{id}/reviews/{slot}", Handler: h.Mutate},
			{Method: "PATCH", Pattern: "/{id}/reviews/{slot}/{index}", Handler: h.Mutate},
			{Method: "POST", Pattern: "/{id}/reviews/{slot}/lock", Handler: h.Lock},
			{Method: "POST", Pattern: "/{id}/reviews/{slot}/{index}/lock", Handler: h.Lock},
			{Method: "POST", Pattern: "/{id}/reviews/{slot}/flush", Handler: h.Flush},
			{Method: "POST", Pattern: "/{id}/reviews/{slot}/{index}/flush", Handler: h.Flush},
			{Method: "GET", Pattern: "/{id}/reviews/{slot}/export", Handler: h.Export},
			{Method: "GET", Pattern: "/{id}/reviews/{slot}/{index}/export", Handler: h.Export},

			{Method: "GET", Pattern: "/{id}/additional-reviews", Handler: h.ListAdditional},
			{Method: "POST", Pattern: "/{id}/additional-reviews", Handler: h.AddAdditional},
			{Method: "DELETE", Pattern: "/{id}/additional-reviews/{index}", Handler: h.RemoveAdditional},
		},
	}
}

func (h *Handler) target(r *http.Request) (uuid.UUID, Slot, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, Slot{}, ErrNotFound
	}

	raw := r.PathValue("slot")
	if index := r.PathValue("index"); index != "" {
		raw = raw + "/" + index
	}

	slot, err := ParseSlot(raw)
	if err != nil {
		return uuid.Nil, Slot{}, err
	}
	return id, slot, nil
}

// Open returns the editor session for a slot, loading it if needed.
// Opening never issues a save.
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	id, slot, err := h.target(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	view, err := h.sys.Open(r.Context(), id, slot)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, view)
}

// Mutate applies a single field edit (or review date update) and
// schedules the debounced auto-save.
func (h *Handler) Mutate(w http.ResponseWriter, r *http.Request) {
	id, slot, err := h.target(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	var cmd MutateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	view, err := h.sys.Mutate(r.Context(), id, slot, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, view)
}

// Lock transitions the edit lock. Locking flushes pending edits first
// and reports a flush failure alongside the (still completed) transition.
func (h *Handler) Lock(w http.ResponseWriter, r *http.Request) {
	id, slot, err := h.target(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	var cmd LockCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.SetLock(r.Context(), id, slot, cmd.Locked)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Flush forces a pending auto-save to complete before responding.
func (h *Handler) Flush(w http.ResponseWriter, r *http.Request) {
	id, slot, err := h.target(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	if err := h.sys.Flush(r.Context(), id, slot); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Export returns the review as a standalone printable HTML document,
// reflecting the in-memory draft whether or not it has been persisted.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	id, slot, err := h.target(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	doc, err := h.sys.Export(r.Context(), id, slot)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(doc))
}

// ListAdditional returns metadata for a case's additional reviews.
func (h *Handler) ListAdditional(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	metas, err := h.sys.ListAdditional(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, metas)
}

// AddAdditional appends a new additional review with a default empty payload.
func (h *Handler) AddAdditional(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	var cmd AddCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	meta, err := h.sys.AddAdditional(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, meta)
}

// RemoveAdditional deletes an additional review. Destructive, so the
// request must carry confirm=true.
func (h *Handler) RemoveAdditional(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidSlot)
		return
	}

	if r.URL.Query().Get("confirm") != "true" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrConfirmationMissing)
		return
	}

	if err := h.sys.RemoveAdditional(r.Context(), id, index); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
