package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/boxboard/apiserver/internal/services"
	"github.com/boxboard/apiserver/types"
	"github.com/go-chi/chi/v5"
)

// LocationHandler provides HTTP handlers for locations.
type LocationHandler struct {
	locations *services.LocationService
}

func NewLocationHandler(locations *services.LocationService) *LocationHandler {
	return &LocationHandler{locations: locations}
}

// LocationRouter registers location routes. Reads require
// authentication only; writes require the Coordinatore role.
func LocationRouter(r chi.Router, locations *services.LocationService) {
	handler := NewLocationHandler(locations)

	r.Get("/", handler.List)
	r.With(RequireCoordinator).Post("/", handler.Create)
	r.Route("/{locationID}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.With(RequireCoordinator).Put("/", handler.Update)
		r.With(RequireCoordinator).Delete("/", handler.Delete)
	})
}

func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	locations, err := h.locations.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, locations)
}

func (h *LocationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "locationID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	location, err := h.locations.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, location)
}

func (h *LocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var location types.Location
	if err := json.NewDecoder(r.Body).Decode(&location); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	created, err := h.locations.Create(r.Context(), location, actorID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *LocationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "locationID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var patch types.LocationPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	updated, err := h.locations.Update(r.Context(), id, patch, actorID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *LocationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "locationID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.locations.Delete(r.Context(), id, actorID(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
