package web

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/boxboard/apiserver/internal/services"
)

// Dashboard handles GET /.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := webUser(r.Context())

	dashboard, err := s.deps.Reports.Dashboard(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load dashboard aggregates")
	}

	s.templates.Render(w, "dashboard.html", &struct {
		PageData
		Dashboard services.Dashboard
	}{
		PageData:  PageData{Title: "Cruscotto", User: user},
		Dashboard: dashboard,
	})
}
