package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/jdgomezdev/declaratax/internal/server/models"
)

type contextKey string

const userContextKey = contextKey("user")

// currentUser returns the authenticated user stored by authenticate, or nil.
func currentUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

func (a *API) setSessionCookie(w http.ResponseWriter, session *models.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.ID,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *API) setRememberCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     rememberCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(a.rememberTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// authenticate resolves the session and remember cookies into a request
// user. It never rejects: public handlers also run behind it and check for
// an already-authenticated caller. When the session was re-established from
// the remember token, the fresh cookie is issued here.
func (a *API) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := cookieValue(r, sessionCookieName)
		rememberToken := cookieValue(r, rememberCookieName)
		if sessionID == "" && rememberToken == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, session, err := a.sessions.Resolve(r.Context(), sessionID, rememberToken)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		if session.ID != sessionID {
			a.setSessionCookie(w, session)
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireUser gates session-only routes.
func (a *API) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r.Context()) == nil {
			a.message(w, http.StatusUnauthorized, "No autorizado. Inicia sesión para continuar.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAdmin gates the admin routes. Runs after requireUser.
func (a *API) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := currentUser(r.Context())
		if user == nil || !user.EsAdmin {
			a.message(w, http.StatusForbidden, "Acceso no autorizado. Se requiere rol de administrador.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
