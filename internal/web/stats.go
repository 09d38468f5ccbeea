package web

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/boxboard/apiserver/internal/services"
)

// StatisticsPage handles GET /statistiche.
func (s *Server) StatisticsPage(w http.ResponseWriter, r *http.Request) {
	user := webUser(r.Context())

	statistics, err := s.deps.Reports.Statistics(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load statistics")
	}

	s.templates.Render(w, "statistiche.html", &struct {
		PageData
		Statistics services.Statistics
	}{
		PageData:   PageData{Title: "Statistiche", User: user},
		Statistics: statistics,
	})
}
