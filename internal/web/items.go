package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/boxboard/apiserver/types"
)

// ItemsPage handles GET /oggetti, with optional location_id,
// contenitore_id, stato and tipo filters carried as query parameters.
func (s *Server) ItemsPage(w http.ResponseWriter, r *http.Request) {
	user := webUser(r.Context())

	var filter types.ItemFilter
	if raw := r.URL.Query().Get("location_id"); raw != "" {
		filter.LocationID, _ = strconv.Atoi(raw)
	}
	if raw := r.URL.Query().Get("contenitore_id"); raw != "" {
		filter.ContainerID, _ = strconv.Atoi(raw)
	}
	filter.Status = r.URL.Query().Get("stato")
	filter.Kind = r.URL.Query().Get("tipo")

	items, err := s.deps.Items.List(r.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list items")
	}
	locations, err := s.deps.Locations.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list locations")
	}

	containers, err := s.deps.Items.List(r.Context(), types.ItemFilter{Kind: types.ItemKindContainer})
	if err != nil {
		log.Error().Err(err).Msg("failed to list containers")
	}

	s.templates.Render(w, "oggetti.html", &struct {
		PageData
		Items      []types.Item
		Locations  []types.Location
		Containers []types.Item
		Filter     types.ItemFilter
	}{
		PageData:   PageData{Title: "Oggetti", User: user},
		Items:      items,
		Locations:  locations,
		Containers: containers,
		Filter:     filter,
	})
}

// ItemCreateSubmit handles POST /oggetti.
func (s *Server) ItemCreateSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.requireCoordinator(w, r) {
		return
	}

	item := types.Item{
		Name:        strings.TrimSpace(r.FormValue("nome")),
		Description: strings.TrimSpace(r.FormValue("descrizione")),
		Status:      r.FormValue("stato"),
		Kind:        r.FormValue("tipo"),
	}
	if raw := r.FormValue("location_id"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil && id > 0 {
			item.LocationID = &id
		}
	}
	if raw := r.FormValue("contenitore_id"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil && id > 0 {
			item.ContainerID = &id
		}
	}

	if item.Name == "" {
		http.Redirect(w, r, basePath+"/oggetti", http.StatusSeeOther)
		return
	}

	if _, err := s.deps.Items.Create(r.Context(), item, webUser(r.Context()).ID); err != nil {
		log.Error().Err(err).Msg("failed to create item")
	}
	http.Redirect(w, r, basePath+"/oggetti", http.StatusSeeOther)
}

// ItemDeleteSubmit handles POST /oggetti/{itemID}/delete.
func (s *Server) ItemDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.requireCoordinator(w, r) {
		return
	}

	id, err := pathID(r, "itemID")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := s.deps.Items.Delete(r.Context(), id, webUser(r.Context()).ID); err != nil {
		log.Error().Err(err).Int("oggettoID", id).Msg("failed to delete item")
	}
	http.Redirect(w, r, basePath+"/oggetti", http.StatusSeeOther)
}
