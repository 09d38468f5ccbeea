package web

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/boxboard/apiserver/types"
)

// auditPageLimit bounds the audit log page to the latest entries.
const auditPageLimit = 100

// AuditLogPage handles GET /log, restricted to coordinators.
func (s *Server) AuditLogPage(w http.ResponseWriter, r *http.Request) {
	user := webUser(r.Context())
	if user.Role != types.RoleCoordinator {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	entries, err := s.deps.Audit.List(r.Context(), auditPageLimit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list audit log")
	}

	users, err := s.deps.Users.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list users")
	}
	userNames := make(map[int]string, len(users))
	for _, u := range users {
		userNames[u.ID] = u.Name
	}

	s.templates.Render(w, "log.html", &struct {
		PageData
		Entries   []types.AuditLogEntry
		UserNames map[int]string
	}{
		PageData:  PageData{Title: "Log operazioni", User: user},
		Entries:   entries,
		UserNames: userNames,
	})
}
