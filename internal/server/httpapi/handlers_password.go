package httpapi

import (
	"errors"
	"net/http"

	"github.com/jdgomezdev/declaratax/internal/common"
	"github.com/jdgomezdev/declaratax/internal/server/validation"
)

// handleFindMail reports only whether an account with the email exists,
// never the account itself.
func (a *API) handleFindMail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("mail")
	if email == "" {
		a.message(w, http.StatusBadRequest, "Correo electrónico requerido.")
		return
	}

	exists, err := a.users.EmailExists(r.Context(), email)
	if err != nil {
		a.logger.Error(r.Context(), "error checking email", "error", err)
		a.message(w, http.StatusInternalServerError, "Error interno al verificar el correo.")
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

type resetPasswordRequest struct {
	Mail     string `json:"mail"`
	Password string `json:"password"`
}

func (a *API) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}
	if req.Mail == "" || req.Password == "" {
		a.message(w, http.StatusBadRequest, "Correo electrónico y contraseña requeridos.")
		return
	}

	err := a.users.ResetPassword(r.Context(), req.Mail, req.Password)
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		a.message(w, http.StatusUnprocessableEntity, verr.Fields["password"])
		return
	case errors.Is(err, common.ErrorNotFound):
		a.message(w, http.StatusNotFound, "Usuario no encontrado.")
		return
	case err != nil:
		a.logger.Error(r.Context(), "error resetting password", "error", err)
		a.message(w, http.StatusInternalServerError, "Error interno al actualizar la contraseña.")
		return
	}

	a.message(w, http.StatusOK, "Contraseña actualizada exitosamente.")
}
