package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jdgomezdev/declaratax/internal/common"
	"github.com/jdgomezdev/declaratax/internal/server/services"
)

func userIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
}

func (a *API) handleAdminListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))

	result, err := a.users.List(r.Context(), q.Get("q"), page, perPage)
	if err != nil {
		a.logger.Error(r.Context(), "error listing users", "error", err)
		a.message(w, http.StatusInternalServerError, "Error interno al obtener los usuarios.")
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]any{
		"users":    serializeUsers(result.Users),
		"total":    result.Total,
		"page":     result.Page,
		"per_page": result.PerPage,
		"pages":    result.Pages,
		"has_next": result.HasNext,
		"has_prev": result.HasPrev,
	})
}

func (a *API) handleAdminGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := userIDParam(r)
	if err != nil {
		a.message(w, http.StatusNotFound, "Usuario no encontrado.")
		return
	}

	user, err := a.users.Get(r.Context(), id)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		a.message(w, http.StatusNotFound, "Usuario no encontrado.")
		return
	case err != nil:
		a.logger.Error(r.Context(), "error fetching user", "error", err, "user_id", id)
		a.message(w, http.StatusInternalServerError, "Error interno al obtener el usuario.")
		return
	}

	a.writeJSON(w, http.StatusOK, serializeUser(user))
}

type updateUserRequest struct {
	NombreCompleto    *string `json:"nombre_completo"`
	CorreoElectronico *string `json:"correo_electronico"`
	Password          *string `json:"password"`
	Estado            *string `json:"estado"`
	EsAdmin           *bool   `json:"es_admin"`
}

func (a *API) handleAdminUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := userIDParam(r)
	if err != nil {
		a.message(w, http.StatusNotFound, "Usuario no encontrado.")
		return
	}

	var req updateUserRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}

	user, err := a.users.Update(r.Context(), id, services.UpdateUserInput{
		NombreCompleto:    req.NombreCompleto,
		CorreoElectronico: req.CorreoElectronico,
		Password:          req.Password,
		Estado:            req.Estado,
		EsAdmin:           req.EsAdmin,
	})
	if err != nil {
		if a.validationFailed(w, err) {
			return
		}
		if errors.Is(err, common.ErrorNotFound) {
			a.message(w, http.StatusNotFound, "Usuario no encontrado.")
			return
		}
		a.logger.Error(r.Context(), "error updating user", "error", err, "user_id", id)
		a.message(w, http.StatusInternalServerError, "Error interno al actualizar el usuario.")
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]any{
		"message": "Usuario actualizado exitosamente.",
		"user":    serializeUser(user),
	})
}

func (a *API) handleAdminToggleUserStatus(w http.ResponseWriter, r *http.Request) {
	id, err := userIDParam(r)
	if err != nil {
		a.message(w, http.StatusNotFound, "Usuario no encontrado.")
		return
	}

	user, err := a.users.ToggleStatus(r.Context(), id, currentUser(r.Context()))
	switch {
	case errors.Is(err, common.ErrorForbidden):
		a.message(w, http.StatusForbidden, "No puedes cambiar tu propio estado.")
		return
	case errors.Is(err, common.ErrorNotFound):
		a.message(w, http.StatusNotFound, "Usuario no encontrado.")
		return
	case err != nil:
		a.logger.Error(r.Context(), "error toggling user status", "error", err, "user_id", id)
		a.message(w, http.StatusInternalServerError, "Error interno al cambiar el estado del usuario.")
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Estado del usuario cambiado a %s.", user.Estado),
		"user":    serializeUser(user),
	})
}
