package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	webembed "github.com/boxboard/apiserver/web"
)

// basePath is where the dashboard is mounted on the main router.
// Redirect targets must be absolute because the handlers only see
// stripped paths.
const basePath = "/app"

// Router creates the dashboard page router with all routes registered.
func Router(deps Deps) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{deps: deps, templates: templates}

	r := chi.NewRouter()

	r.Handle("/static/*", http.StripPrefix(basePath+"/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	r.Get("/login", s.LoginPage)
	r.Post("/login", s.LoginSubmit)
	r.Post("/logout", s.Logout)

	r.Group(func(r chi.Router) {
		r.Use(s.cookieAuth)

		r.Get("/", s.Dashboard)

		r.Get("/oggetti", s.ItemsPage)
		r.Post("/oggetti", s.ItemCreateSubmit)
		r.Post("/oggetti/{itemID}/delete", s.ItemDeleteSubmit)

		r.Get("/utenti", s.UsersPage)
		r.Post("/utenti", s.UserCreateSubmit)
		r.Post("/utenti/{userID}/delete", s.UserDeleteSubmit)

		r.Get("/locations", s.LocationsPage)
		r.Post("/locations", s.LocationCreateSubmit)
		r.Post("/locations/{locationID}/delete", s.LocationDeleteSubmit)

		r.Get("/attivita", s.ActivitiesPage)
		r.Post("/attivita", s.ActivityCreateSubmit)
		r.Post("/attivita/{activityID}/delete", s.ActivityDeleteSubmit)

		r.Get("/assegnazioni", s.AssignmentsPage)
		r.Post("/assegnazioni", s.AssignmentCreateSubmit)
		r.Post("/assegnazioni/{assignmentID}/complete", s.AssignmentCompleteSubmit)
		r.Post("/assegnazioni/{assignmentID}/delete", s.AssignmentDeleteSubmit)

		r.Get("/note", s.NotesPage)
		r.Post("/note", s.NoteCreateSubmit)
		r.Post("/note/{noteID}/delete", s.NoteDeleteSubmit)

		r.Get("/statistiche", s.StatisticsPage)
		r.Get("/log", s.AuditLogPage)
	})

	return r, nil
}
