package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jdgomezdev/declaratax/internal/server/models"
	"github.com/jdgomezdev/declaratax/internal/server/validation"
)

// userJSON is the wire shape of a user. The password hash never leaves the
// server.
type userJSON struct {
	ID                int64  `json:"id"`
	NombreCompleto    string `json:"nombre_completo"`
	TipoDocumento     string `json:"tipo_documento"`
	NumeroDocumento   string `json:"numero_documento"`
	CorreoElectronico string `json:"correo_electronico"`
	Estado            string `json:"estado"`
	EsAdmin           bool   `json:"es_admin"`
}

type declarationJSON struct {
	ID                       int64     `json:"id"`
	UserID                   int64     `json:"user_id"`
	AnoFiscal                int       `json:"ano_fiscal"`
	IngresosTotales          float64   `json:"ingresos_totales"`
	DeduccionesAplicadas     float64   `json:"deducciones_aplicadas"`
	EstadoCivil              string    `json:"estado_civil"`
	Dependientes             *int      `json:"dependientes"`
	OtrosIngresosDeducciones *string   `json:"otros_ingresos_deducciones"`
	EstadoDeclaracion        string    `json:"estado_declaracion"`
	FechaCreacion            time.Time `json:"fecha_creacion"`
}

func serializeUser(u *models.User) userJSON {
	return userJSON{
		ID:                u.ID,
		NombreCompleto:    u.NombreCompleto,
		TipoDocumento:     u.TipoDocumento,
		NumeroDocumento:   u.NumeroDocumento,
		CorreoElectronico: u.CorreoElectronico,
		Estado:            u.Estado,
		EsAdmin:           u.EsAdmin,
	}
}

func serializeUsers(users []*models.User) []userJSON {
	out := make([]userJSON, 0, len(users))
	for _, u := range users {
		out = append(out, serializeUser(u))
	}
	return out
}

func serializeDeclaration(d *models.Declaration) declarationJSON {
	return declarationJSON{
		ID:                       d.ID,
		UserID:                   d.UserID,
		AnoFiscal:                d.AnoFiscal,
		IngresosTotales:          d.IngresosTotales,
		DeduccionesAplicadas:     d.DeduccionesAplicadas,
		EstadoCivil:              d.EstadoCivil,
		Dependientes:             d.Dependientes,
		OtrosIngresosDeducciones: d.OtrosIngresosDeducciones,
		EstadoDeclaracion:        d.EstadoDeclaracion,
		FechaCreacion:            d.FechaCreacion,
	}
}

func (a *API) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.logger.Error(context.Background(), "error encoding response", "error", err)
	}
}

func (a *API) message(w http.ResponseWriter, status int, msg string) {
	a.writeJSON(w, status, map[string]string{"message": msg})
}

// validationFailed writes the collected field errors with 422 and reports
// whether err actually was a validation error.
func (a *API) validationFailed(w http.ResponseWriter, err error) bool {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		return false
	}
	a.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"message": "Errores de validación",
		"errors":  verr.Fields,
	})
	return true
}

// decodeJSON decodes the request body; a missing or malformed body reports
// 400 with the standard no-JSON message.
func (a *API) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		a.message(w, http.StatusBadRequest, "No se recibieron datos JSON.")
		return false
	}
	return true
}
