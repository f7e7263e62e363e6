package models

import "time"

// EstadoDeclaracionInicial is the status assigned to every new declaration.
const EstadoDeclaracionInicial = "Guardada"

// MaritalStatuses lists the accepted estado_civil values.
func MaritalStatuses() []string {
	return []string{"Soltero/a", "Casado/a", "Divorciado/a", "Viudo/a"}
}

// Declaration is an annual tax declaration owned by exactly one user.
// Dependientes and OtrosIngresosDeducciones are optional. FechaCreacion is
// recorded in UTC.
type Declaration struct {
	ID                       int64
	UserID                   int64
	AnoFiscal                int
	IngresosTotales          float64
	DeduccionesAplicadas     float64
	EstadoCivil              string
	Dependientes             *int
	OtrosIngresosDeducciones *string
	EstadoDeclaracion        string
	FechaCreacion            time.Time
}
