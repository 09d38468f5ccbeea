package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/boxboard/apiserver/internal/services"
	"github.com/boxboard/apiserver/types"
	"github.com/go-chi/chi/v5"
)

// NoteHandler provides HTTP handlers for notes.
type NoteHandler struct {
	notes *services.NoteService
}

func NewNoteHandler(notes *services.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

// NoteRouter registers note routes. Reads require authentication only;
// writes require the Coordinatore role.
func NoteRouter(r chi.Router, notes *services.NoteService) {
	handler := NewNoteHandler(notes)

	r.Get("/", handler.List)
	r.With(RequireCoordinator).Post("/", handler.Create)
	r.Route("/{noteID}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.With(RequireCoordinator).Put("/", handler.Update)
		r.With(RequireCoordinator).Delete("/", handler.Delete)
	})
}

// List returns notes, optionally filtered by oggetto_id, attivita_id
// and location_id.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter types.NoteFilter
	params := []struct {
		name   string
		target *int
	}{
		{"oggetto_id", &filter.ItemID},
		{"attivita_id", &filter.ActivityID},
		{"location_id", &filter.LocationID},
	}
	for _, p := range params {
		raw := strings.TrimSpace(r.URL.Query().Get(p.name))
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 {
			writeError(w, http.StatusBadRequest, "invalid "+p.name)
			return
		}
		*p.target = value
	}

	notes, err := h.notes.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "noteID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	note, err := h.notes.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// Create stores a note. The author defaults to the authenticated user
// when the payload does not name one.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var note types.Note
	if err := json.NewDecoder(r.Body).Decode(&note); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if note.AuthorID == nil {
		if actor := actorID(r); actor != 0 {
			note.AuthorID = &actor
		}
	}

	created, err := h.notes.Create(r.Context(), note, actorID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "noteID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var patch types.NotePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	updated, err := h.notes.Update(r.Context(), id, patch, actorID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "noteID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.notes.Delete(r.Context(), id, actorID(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
