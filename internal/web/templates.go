package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/boxboard/apiserver/config"
	"github.com/boxboard/apiserver/internal/services"
	"github.com/boxboard/apiserver/types"
	webembed "github.com/boxboard/apiserver/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"statusName": func(status string) string {
			switch status {
			case types.ItemStatusToRemove:
				return "Da rimuovere"
			case types.ItemStatusDisposed:
				return "Smaltito"
			case types.ItemStatusSold:
				return "Venduto"
			case types.ItemStatusPending:
				return "In attesa"
			case types.ItemStatusDone:
				return "Completato"
			default:
				return status
			}
		},
		"kindName": func(kind string) string {
			switch kind {
			case types.ItemKindPlain:
				return "Oggetto"
			case types.ItemKindContainer:
				return "Contenitore"
			default:
				return kind
			}
		},
		"isCoordinator": func(user types.User) bool {
			return user.Role == types.RoleCoordinator
		},
		"shortDate": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
		"shortTime": func(t time.Time) string {
			return t.Format("2006-01-02 15:04")
		},
		"deref": func(p *int) int {
			if p == nil {
				return 0
			}
			return *p
		},
		"derefTime": func(p *time.Time) time.Time {
			if p == nil {
				return time.Time{}
			}
			return *p
		},
		"derefFloat": func(p *float64) float64 {
			if p == nil {
				return 0
			}
			return *p
		},
	}
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{
		"login.html",
		"dashboard.html",
		"oggetti.html",
		"utenti.html",
		"locations.html",
		"attivita.html",
		"assegnazioni.html",
		"note.html",
		"statistiche.html",
		"log.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("failed to render template")
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title string
	User  types.User
	Error string
}

// Deps bundles the services and auth config the dashboard needs.
type Deps struct {
	Users       *services.UserService
	Locations   *services.LocationService
	Items       *services.ItemService
	Activities  *services.ActivityService
	Assignments *services.AssignmentService
	Notes       *services.NoteService
	Audit       *services.AuditService
	Reports     *services.ReportService
	Auth        config.AuthConfig
}

// Server holds all dependencies for page handlers.
type Server struct {
	deps      Deps
	templates *Templates
}
