package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/boxboard/apiserver/internal/services"
	"github.com/boxboard/apiserver/types"
	"github.com/go-chi/chi/v5"
)

// ActivityHandler provides HTTP handlers for the activity catalog.
type ActivityHandler struct {
	activities *services.ActivityService
}

func NewActivityHandler(activities *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activities: activities}
}

// ActivityRouter registers activity routes. Reads require
// authentication only; writes require the Coordinatore role.
func ActivityRouter(r chi.Router, activities *services.ActivityService) {
	handler := NewActivityHandler(activities)

	r.Get("/", handler.List)
	r.With(RequireCoordinator).Post("/", handler.Create)
	r.Route("/{activityID}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.With(RequireCoordinator).Put("/", handler.Update)
		r.With(RequireCoordinator).Delete("/", handler.Delete)
	})
}

func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activities.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

func (h *ActivityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "activityID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	activity, err := h.activities.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activity)
}

func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var activity types.Activity
	if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	created, err := h.activities.Create(r.Context(), activity, actorID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ActivityHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "activityID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var patch types.ActivityPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	updated, err := h.activities.Update(r.Context(), id, patch, actorID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "activityID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.activities.Delete(r.Context(), id, actorID(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
