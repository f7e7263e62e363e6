package httpapi

import (
	"errors"
	"net/http"

	"github.com/jdgomezdev/declaratax/internal/common"
	"github.com/jdgomezdev/declaratax/internal/server/services"
)

// handleSession returns the profile behind the session cookie.
func (a *API) handleSession(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())
	a.writeJSON(w, http.StatusOK, map[string]any{"user": serializeUser(user)})
}

// handleLogout destroys the session and clears both cookies.
func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), cookieValue(r, sessionCookieName)); err != nil && !errors.Is(err, common.ErrorUnauthorized) {
		a.logger.Error(r.Context(), "error destroying session", "error", err)
		a.message(w, http.StatusInternalServerError, "Error interno al cerrar la sesión.")
		return
	}
	clearCookie(w, sessionCookieName)
	clearCookie(w, rememberCookieName)
	a.message(w, http.StatusOK, "Sesión cerrada exitosamente.")
}

type loginRequest struct {
	CorreoElectronico string `json:"correo_electronico"`
	Password          string `json:"password"`
	Remember          bool   `json:"remember"`
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if user := currentUser(r.Context()); user != nil {
		a.writeJSON(w, http.StatusOK, map[string]any{
			"message": "Ya estás autenticado.",
			"user":    serializeUser(user),
		})
		return
	}

	var req loginRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}
	if req.CorreoElectronico == "" || req.Password == "" {
		a.message(w, http.StatusBadRequest, "Correo electrónico y contraseña requeridos.")
		return
	}

	user, err := a.users.CheckCredentials(r.Context(), req.CorreoElectronico, req.Password)
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		a.message(w, http.StatusUnauthorized, "Credenciales inválidas.")
		return
	case errors.Is(err, common.ErrAccountInactive):
		a.message(w, http.StatusForbidden, "Tu cuenta está inactiva. Contacta al administrador.")
		return
	case err != nil:
		a.logger.Error(r.Context(), "error checking credentials", "error", err)
		a.message(w, http.StatusInternalServerError, "Error interno al iniciar sesión.")
		return
	}

	session, rememberToken, err := a.sessions.Start(r.Context(), user.ID, req.Remember)
	if err != nil {
		a.logger.Error(r.Context(), "error starting session", "error", err)
		a.message(w, http.StatusInternalServerError, "Error interno al iniciar sesión.")
		return
	}

	a.setSessionCookie(w, session)
	if rememberToken != "" {
		a.setRememberCookie(w, rememberToken)
	}

	a.writeJSON(w, http.StatusOK, map[string]any{
		"message": "Inicio de sesión exitoso.",
		"user":    serializeUser(user),
	})
}

type registerRequest struct {
	NombreCompleto    string `json:"nombre_completo"`
	TipoDocumento     string `json:"tipo_documento"`
	NumeroDocumento   string `json:"numero_documento"`
	CorreoElectronico string `json:"correo_electronico"`
	Password          string `json:"password"`
	EsAdmin           bool   `json:"es_admin"`
}

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	actor := currentUser(r.Context())
	if actor != nil && !actor.EsAdmin {
		a.message(w, http.StatusBadRequest, "Ya estás autenticado. No puedes crear otros usuarios.")
		return
	}

	var req registerRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}

	user, err := a.users.Register(r.Context(), services.RegisterInput{
		NombreCompleto:    req.NombreCompleto,
		TipoDocumento:     req.TipoDocumento,
		NumeroDocumento:   req.NumeroDocumento,
		CorreoElectronico: req.CorreoElectronico,
		Password:          req.Password,
		EsAdmin:           req.EsAdmin,
	}, actor)
	if err != nil {
		if a.validationFailed(w, err) {
			return
		}
		a.logger.Error(r.Context(), "error creating user", "error", err)
		a.message(w, http.StatusInternalServerError, "Error interno al crear el usuario.")
		return
	}

	a.writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Usuario creado exitosamente.",
		"user":    serializeUser(user),
	})
}
