// Package validation contains the pure field validators of the declaration
// service. Each validator returns an empty string when the value passes and
// a user-facing reason (Spanish, matching the API contract) when it fails.
// Validators never touch the database; uniqueness checks live in the
// services, which merge their results into the same Errors map.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jdgomezdev/declaratax/internal/server/models"
)

// Business limits. This is the strict rule set; see DESIGN.md for the
// decision between the two revisions found in the source history.
const (
	MinNameLen      = 3
	MinPasswordLen  = 8
	MinFiscalYear   = 2000
	MinIncome       = 1_000_000
	MinDeductions   = 1_000
	MaxAmount       = 999_999_999_999
	MaxDependents   = 5
	MaxNotesLen     = 1000
	passwordSymbols = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

var (
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9-]+(\.[a-zA-Z0-9-]+)*\.[a-zA-Z]{2,}$`)
	nameRe     = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑüÜ ]+$`)
	digitsRe   = regexp.MustCompile(`^[0-9]+$`)
	alphaNumRe = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	upperRe    = regexp.MustCompile(`[A-Z]`)
	lowerRe    = regexp.MustCompile(`[a-z]`)
	numberRe   = regexp.MustCompile(`[0-9]`)
)

// Errors maps a payload field name to the first reason it failed.
type Errors map[string]string

// Add records a failure for field unless one is already present, so the
// first reason encountered for a field wins.
func (e Errors) Add(field, reason string) {
	if reason == "" {
		return
	}
	if _, ok := e[field]; !ok {
		e[field] = reason
	}
}

// Any reports whether at least one field failed.
func (e Errors) Any() bool { return len(e) > 0 }

// Required returns the standard missing-field reason.
func Required(label string) string {
	return fmt.Sprintf("%s es requerido.", label)
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
// It must be applied before storage and before any comparison.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Email checks the normalized address against a conservative pattern:
// letters/digits/._- in the local part, a dotted domain, 2+ letter TLD.
func Email(s string) string {
	if !emailRe.MatchString(NormalizeEmail(s)) {
		return "El correo electrónico debe tener un formato válido."
	}
	return ""
}

// Password enforces minimum strength: at least 8 characters with one
// uppercase letter, one lowercase letter, one digit and one symbol.
// Only the first failing condition is reported.
func Password(s string) string {
	switch {
	case len(s) < MinPasswordLen:
		return "La contraseña debe tener al menos 8 caracteres."
	case !upperRe.MatchString(s):
		return "La contraseña debe contener al menos una letra mayúscula."
	case !lowerRe.MatchString(s):
		return "La contraseña debe contener al menos una letra minúscula."
	case !numberRe.MatchString(s):
		return "La contraseña debe contener al menos un número."
	case !strings.ContainsAny(s, passwordSymbols):
		return "La contraseña debe contener al menos un símbolo."
	}
	return ""
}

// FullName accepts Latin letters (including accents and ñ/ü) and spaces,
// with a trimmed length of at least 3.
func FullName(s string) string {
	trimmed := strings.TrimSpace(s)
	if len([]rune(trimmed)) < MinNameLen {
		return "El nombre debe tener al menos 3 caracteres."
	}
	if !nameRe.MatchString(trimmed) {
		return "El nombre solo debe contener letras y espacios."
	}
	return ""
}

// DocumentType checks tipo_documento against the fixed set.
func DocumentType(s string) string {
	for _, t := range models.DocumentTypes() {
		if s == t {
			return ""
		}
	}
	return fmt.Sprintf("Tipo de documento inválido. Debe ser uno de: %s.", strings.Join(models.DocumentTypes(), ", "))
}

// DocumentNumber is digits-only, except passports which are alphanumeric.
func DocumentNumber(tipoDocumento, numero string) string {
	if tipoDocumento == models.DocTypePasaporte {
		if !alphaNumRe.MatchString(numero) {
			return "El número de documento de pasaporte debe ser alfanumérico."
		}
		return ""
	}
	if !digitsRe.MatchString(numero) {
		return "El número de documento solo debe contener números."
	}
	return ""
}

// FiscalYear must fall in [2000, now.Year()]; future years are rejected.
func FiscalYear(year int, now time.Time) string {
	if year < MinFiscalYear || year > now.Year() {
		return fmt.Sprintf("Año fiscal inválido. Debe estar entre %d y %d.", MinFiscalYear, now.Year())
	}
	return ""
}

// Income must be at least the taxable minimum and below the sanity bound.
func Income(v float64) string {
	switch {
	case v < 0:
		return "Los ingresos totales no pueden ser negativos."
	case v < MinIncome:
		return fmt.Sprintf("Los ingresos totales deben ser al menos %d.", MinIncome)
	case v > MaxAmount:
		return "Los ingresos totales exceden el límite permitido."
	}
	return ""
}

// Deductions are either exactly zero or at least the minimum threshold.
func Deductions(v float64) string {
	switch {
	case v < 0:
		return "Las deducciones no pueden ser negativas."
	case v > 0 && v < MinDeductions:
		return fmt.Sprintf("Las deducciones deben ser cero o al menos %d.", MinDeductions)
	case v > MaxAmount:
		return "Las deducciones exceden el límite permitido."
	}
	return ""
}

// Dependents is optional; when present it must be between 0 and 5.
func Dependents(n int) string {
	if n < 0 || n > MaxDependents {
		return fmt.Sprintf("El número de dependientes debe estar entre 0 y %d.", MaxDependents)
	}
	return ""
}

// MaritalStatus checks estado_civil against the fixed set.
func MaritalStatus(s string) string {
	for _, v := range models.MaritalStatuses() {
		if s == v {
			return ""
		}
	}
	return fmt.Sprintf("Estado civil inválido. Debe ser uno de: %s.", strings.Join(models.MaritalStatuses(), ", "))
}

// Notes bounds the free-text field.
func Notes(s string) string {
	if len([]rune(strings.TrimSpace(s))) > MaxNotesLen {
		return fmt.Sprintf("El campo es demasiado largo (máximo %d caracteres).", MaxNotesLen)
	}
	return ""
}

// AccountStatus checks the estado field of a user update.
func AccountStatus(s string) string {
	if s != models.EstadoActivo && s != models.EstadoInactivo {
		return `Estado inválido. Debe ser "activo" o "inactivo".`
	}
	return ""
}
