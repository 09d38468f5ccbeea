package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/boxboard/apiserver/internal/services"
	"github.com/boxboard/apiserver/types"
	"github.com/go-chi/chi/v5"
)

// AssignmentHandler provides HTTP handlers for item-activity assignments.
type AssignmentHandler struct {
	assignments *services.AssignmentService
}

func NewAssignmentHandler(assignments *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments}
}

// AssignmentRouter registers assignment routes. Reads require
// authentication only; writes require the Coordinatore role.
func AssignmentRouter(r chi.Router, assignments *services.AssignmentService) {
	handler := NewAssignmentHandler(assignments)

	r.Get("/", handler.List)
	r.With(RequireCoordinator).Post("/", handler.Create)
	r.Route("/{assignmentID}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.With(RequireCoordinator).Put("/", handler.Update)
		r.With(RequireCoordinator).Delete("/", handler.Delete)
	})
}

func (h *AssignmentHandler) List(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.assignments.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assignments)
}

func (h *AssignmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "assignmentID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	assignment, err := h.assignments.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assignment)
}

func (h *AssignmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var assignment types.Assignment
	if err := json.NewDecoder(r.Body).Decode(&assignment); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	created, err := h.assignments.Create(r.Context(), assignment, actorID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *AssignmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "assignmentID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var patch types.AssignmentPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	updated, err := h.assignments.Update(r.Context(), id, patch, actorID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *AssignmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "assignmentID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.assignments.Delete(r.Context(), id, actorID(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
