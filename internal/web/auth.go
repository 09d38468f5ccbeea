package web

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/boxboard/apiserver/internal/handlers"
)

const sessionCookieAge = int((24 * time.Hour) / time.Second)

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.templates.Render(w, "login.html", &PageData{Title: "Accesso"})
}

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if email == "" || password == "" {
		s.templates.Render(w, "login.html", &PageData{
			Title: "Accesso",
			Error: "Inserire email e password.",
		})
		return
	}

	user, err := s.deps.Users.GetByEmail(r.Context(), email)
	if err != nil || user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.templates.Render(w, "login.html", &PageData{
			Title: "Accesso",
			Error: "Email o password errati.",
		})
		return
	}

	token, err := handlers.IssueToken(user.Email, user.Role, []byte(s.deps.Auth.JWTSecret), s.deps.Auth.TokenTTL)
	if err != nil {
		s.templates.Render(w, "login.html", &PageData{
			Title: "Accesso",
			Error: "Errore durante l'accesso.",
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     basePath,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   sessionCookieAge,
	})

	http.Redirect(w, r, basePath+"/", http.StatusSeeOther)
}

// Logout handles POST /logout.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	clearAuthCookie(w)
	http.Redirect(w, r, basePath+"/login", http.StatusSeeOther)
}
