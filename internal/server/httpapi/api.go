// Package httpapi exposes the JSON API consumed by the web frontend. All
// routes live under /api; authentication rides on a server-side session
// cookie with an optional remember-me token cookie behind it.
package httpapi

import (
	"time"

	"github.com/jdgomezdev/declaratax/internal/logging"
	"github.com/jdgomezdev/declaratax/internal/server/services"
)

const (
	sessionCookieName  = "session_id"
	rememberCookieName = "remember_token"
)

type API struct {
	logger       logging.Logger
	users        *services.UserService
	declarations *services.DeclarationService
	sessions     *services.SessionService
	rememberTTL  time.Duration
}

func New(logger logging.Logger, users *services.UserService, declarations *services.DeclarationService, sessions *services.SessionService, rememberTTL time.Duration) *API {
	return &API{
		logger:       logger,
		users:        users,
		declarations: declarations,
		sessions:     sessions,
		rememberTTL:  rememberTTL,
	}
}
