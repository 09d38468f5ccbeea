package web

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/boxboard/apiserver/types"
)

// LocationsPage handles GET /locations.
func (s *Server) LocationsPage(w http.ResponseWriter, r *http.Request) {
	user := webUser(r.Context())

	locations, err := s.deps.Locations.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list locations")
	}

	s.templates.Render(w, "locations.html", &struct {
		PageData
		Locations []types.Location
	}{
		PageData:  PageData{Title: "Location", User: user},
		Locations: locations,
	})
}

// LocationCreateSubmit handles POST /locations.
func (s *Server) LocationCreateSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.requireCoordinator(w, r) {
		return
	}

	location := types.Location{
		Name:    strings.TrimSpace(r.FormValue("nome")),
		Address: strings.TrimSpace(r.FormValue("indirizzo")),
		Notes:   strings.TrimSpace(r.FormValue("note")),
	}
	if location.Name == "" {
		http.Redirect(w, r, basePath+"/locations", http.StatusSeeOther)
		return
	}

	if _, err := s.deps.Locations.Create(r.Context(), location, webUser(r.Context()).ID); err != nil {
		log.Error().Err(err).Msg("failed to create location")
	}
	http.Redirect(w, r, basePath+"/locations", http.StatusSeeOther)
}

// LocationDeleteSubmit handles POST /locations/{locationID}/delete.
func (s *Server) LocationDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.requireCoordinator(w, r) {
		return
	}

	id, err := pathID(r, "locationID")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := s.deps.Locations.Delete(r.Context(), id, webUser(r.Context()).ID); err != nil {
		log.Error().Err(err).Int("locationID", id).Msg("failed to delete location")
	}
	http.Redirect(w, r, basePath+"/locations", http.StatusSeeOther)
}
