package web

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/boxboard/apiserver/types"
)

// ActivitiesPage handles GET /attivita.
func (s *Server) ActivitiesPage(w http.ResponseWriter, r *http.Request) {
	user := webUser(r.Context())

	activities, err := s.deps.Activities.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list activities")
	}

	s.templates.Render(w, "attivita.html", &struct {
		PageData
		Activities []types.Activity
	}{
		PageData:   PageData{Title: "Attività", User: user},
		Activities: activities,
	})
}

// ActivityCreateSubmit handles POST /attivita.
func (s *Server) ActivityCreateSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.requireCoordinator(w, r) {
		return
	}

	activity := types.Activity{
		Name:        strings.TrimSpace(r.FormValue("nome")),
		Description: strings.TrimSpace(r.FormValue("descrizione")),
	}
	if activity.Name == "" {
		http.Redirect(w, r, basePath+"/attivita", http.StatusSeeOther)
		return
	}

	if _, err := s.deps.Activities.Create(r.Context(), activity, webUser(r.Context()).ID); err != nil {
		log.Error().Err(err).Msg("failed to create activity")
	}
	http.Redirect(w, r, basePath+"/attivita", http.StatusSeeOther)
}

// ActivityDeleteSubmit handles POST /attivita/{activityID}/delete.
func (s *Server) ActivityDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.requireCoordinator(w, r) {
		return
	}

	id, err := pathID(r, "activityID")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := s.deps.Activities.Delete(r.Context(), id, webUser(r.Context()).ID); err != nil {
		log.Error().Err(err).Int("attivitaID", id).Msg("failed to delete activity")
	}
	http.Redirect(w, r, basePath+"/attivita", http.StatusSeeOther)
}
