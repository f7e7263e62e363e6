package httpapi

import (
	"net/http"

	"github.com/jdgomezdev/declaratax/internal/server/services"
)

func (a *API) handleListDeclarations(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	items, err := a.declarations.ListByUser(r.Context(), user.ID)
	if err != nil {
		a.logger.Error(r.Context(), "error listing declarations", "error", err, "user_id", user.ID)
		a.message(w, http.StatusInternalServerError, "Error interno al obtener las declaraciones.")
		return
	}

	out := make([]declarationJSON, 0, len(items))
	for _, d := range items {
		out = append(out, serializeDeclaration(d))
	}
	a.writeJSON(w, http.StatusOK, out)
}

type createDeclarationRequest struct {
	AnoFiscal                *int     `json:"ano_fiscal"`
	IngresosTotales          *float64 `json:"ingresos_totales"`
	DeduccionesAplicadas     *float64 `json:"deducciones_aplicadas"`
	EstadoCivil              *string  `json:"estado_civil"`
	Dependientes             *int     `json:"dependientes"`
	OtrosIngresosDeducciones *string  `json:"otros_ingresos_deducciones"`
}

func (a *API) handleCreateDeclaration(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	var req createDeclarationRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}

	declaration, err := a.declarations.Create(r.Context(), user.ID, services.CreateDeclarationInput{
		AnoFiscal:                req.AnoFiscal,
		IngresosTotales:          req.IngresosTotales,
		DeduccionesAplicadas:     req.DeduccionesAplicadas,
		EstadoCivil:              req.EstadoCivil,
		Dependientes:             req.Dependientes,
		OtrosIngresosDeducciones: req.OtrosIngresosDeducciones,
	})
	if err != nil {
		if a.validationFailed(w, err) {
			return
		}
		a.logger.Error(r.Context(), "error creating declaration", "error", err, "user_id", user.ID)
		a.message(w, http.StatusInternalServerError, "Error interno al crear la declaración.")
		return
	}

	a.writeJSON(w, http.StatusCreated, map[string]any{
		"message":     "Declaración creada exitosamente.",
		"declaration": serializeDeclaration(declaration),
	})
}
