package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/boxboard/apiserver/types"
)

// NotesPage handles GET /note, with optional oggetto_id, attivita_id
// and location_id filters.
func (s *Server) NotesPage(w http.ResponseWriter, r *http.Request) {
	user := webUser(r.Context())

	var filter types.NoteFilter
	if raw := r.URL.Query().Get("oggetto_id"); raw != "" {
		filter.ItemID, _ = strconv.Atoi(raw)
	}
	if raw := r.URL.Query().Get("attivita_id"); raw != "" {
		filter.ActivityID, _ = strconv.Atoi(raw)
	}
	if raw := r.URL.Query().Get("location_id"); raw != "" {
		filter.LocationID, _ = strconv.Atoi(raw)
	}

	notes, err := s.deps.Notes.List(r.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list notes")
	}
	items, err := s.deps.Items.List(r.Context(), types.ItemFilter{})
	if err != nil {
		log.Error().Err(err).Msg("failed to list items")
	}
	activities, err := s.deps.Activities.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list activities")
	}
	locations, err := s.deps.Locations.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list locations")
	}

	s.templates.Render(w, "note.html", &struct {
		PageData
		Notes      []types.Note
		Items      []types.Item
		Activities []types.Activity
		Locations  []types.Location
		Filter     types.NoteFilter
	}{
		PageData:   PageData{Title: "Note", User: user},
		Notes:      notes,
		Items:      items,
		Activities: activities,
		Locations:  locations,
		Filter:     filter,
	})
}

// NoteCreateSubmit handles POST /note. The author is the logged-in user.
func (s *Server) NoteCreateSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.requireCoordinator(w, r) {
		return
	}

	current := webUser(r.Context())
	note := types.Note{
		Text:     strings.TrimSpace(r.FormValue("testo")),
		AuthorID: &current.ID,
	}
	if note.Text == "" {
		http.Redirect(w, r, basePath+"/note", http.StatusSeeOther)
		return
	}
	if raw := r.FormValue("oggetto_id"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil && id > 0 {
			note.ItemID = &id
		}
	}
	if raw := r.FormValue("attivita_id"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil && id > 0 {
			note.ActivityID = &id
		}
	}
	if raw := r.FormValue("location_id"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil && id > 0 {
			note.LocationID = &id
		}
	}

	if _, err := s.deps.Notes.Create(r.Context(), note, current.ID); err != nil {
		log.Error().Err(err).Msg("failed to create note")
	}
	http.Redirect(w, r, basePath+"/note", http.StatusSeeOther)
}

// NoteDeleteSubmit handles POST /note/{noteID}/delete.
func (s *Server) NoteDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.requireCoordinator(w, r) {
		return
	}

	id, err := pathID(r, "noteID")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := s.deps.Notes.Delete(r.Context(), id, webUser(r.Context()).ID); err != nil {
		log.Error().Err(err).Int("notaID", id).Msg("failed to delete note")
	}
	http.Redirect(w, r, basePath+"/note", http.StatusSeeOther)
}
