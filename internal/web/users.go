package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/boxboard/apiserver/types"
)

// pathID parses a positive integer chi path parameter.
func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id < 1 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// UsersPage handles GET /utenti.
func (s *Server) UsersPage(w http.ResponseWriter, r *http.Request) {
	user := webUser(r.Context())

	users, err := s.deps.Users.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list users")
	}

	s.templates.Render(w, "utenti.html", &struct {
		PageData
		Users []types.User
	}{
		PageData: PageData{Title: "Utenti", User: user},
		Users:    users,
	})
}

// UserCreateSubmit handles POST /utenti.
func (s *Server) UserCreateSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.requireCoordinator(w, r) {
		return
	}

	newUser := types.User{
		Name:  strings.TrimSpace(r.FormValue("nome")),
		Role:  r.FormValue("ruolo"),
		Email: strings.TrimSpace(r.FormValue("email")),
	}
	if password := r.FormValue("password"); password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		newUser.PasswordHash = string(hashed)
	}

	if newUser.Name == "" || newUser.Email == "" {
		http.Redirect(w, r, basePath+"/utenti", http.StatusSeeOther)
		return
	}

	if _, err := s.deps.Users.Create(r.Context(), newUser, webUser(r.Context()).ID); err != nil {
		log.Error().Err(err).Msg("failed to create user")
	}
	http.Redirect(w, r, basePath+"/utenti", http.StatusSeeOther)
}

// UserDeleteSubmit handles POST /utenti/{userID}/delete. Deleting the
// logged-in account is refused.
func (s *Server) UserDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.requireCoordinator(w, r) {
		return
	}

	id, err := pathID(r, "userID")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	current := webUser(r.Context())
	if current.ID == id {
		http.Error(w, "cannot delete your own account", http.StatusBadRequest)
		return
	}

	if err := s.deps.Users.Delete(r.Context(), id, current.ID); err != nil {
		log.Error().Err(err).Int("utenteID", id).Msg("failed to delete user")
	}
	http.Redirect(w, r, basePath+"/utenti", http.StatusSeeOther)
}
