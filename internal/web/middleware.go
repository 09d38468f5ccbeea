package web

import (
	"context"
	"net/http"

	"github.com/boxboard/apiserver/internal/handlers"
	"github.com/boxboard/apiserver/types"
)

type webContextKey string

const webUserKey webContextKey = "webuser"

// cookieAuth validates the JWT from the session cookie, resolves its
// subject to a user and adds the user to the context. Anything invalid
// redirects to the login page.
func (s *Server) cookieAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("token")
		if err != nil || cookie.Value == "" {
			http.Redirect(w, r, basePath+"/login", http.StatusSeeOther)
			return
		}

		subject, err := handlers.ParseTokenSubject(cookie.Value, []byte(s.deps.Auth.JWTSecret))
		if err != nil {
			clearAuthCookie(w)
			http.Redirect(w, r, basePath+"/login", http.StatusSeeOther)
			return
		}

		user, err := s.deps.Users.GetByEmail(r.Context(), subject)
		if err != nil {
			clearAuthCookie(w)
			http.Redirect(w, r, basePath+"/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), webUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// clearAuthCookie clears the session cookie with consistent attributes.
func clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     basePath,
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// webUser retrieves the authenticated user from the request context.
func webUser(ctx context.Context) types.User {
	user, _ := ctx.Value(webUserKey).(types.User)
	return user
}

// requireCoordinator rejects form submissions from non-coordinators.
// Returns false after writing the response when the check fails.
func (s *Server) requireCoordinator(w http.ResponseWriter, r *http.Request) bool {
	if webUser(r.Context()).Role != types.RoleCoordinator {
		http.Error(w, "forbidden", http.StatusForbidden)
		return false
	}
	return true
}
