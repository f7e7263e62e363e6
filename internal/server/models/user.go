// Package models defines the persistent records of the declaration service.
package models

// Supported document types. Document numbers are digits-only except for
// passports, which may be alphanumeric.
const (
	DocTypeCedula           = "CC"
	DocTypeTarjetaIdentidad = "TI"
	DocTypeCedulaExtranjera = "CE"
	DocTypePasaporte        = "PA"
)

// Account status values.
const (
	EstadoActivo   = "activo"
	EstadoInactivo = "inactivo"
)

// User is a registered account. PasswordHash is a bcrypt hash and must never
// leave the server.
type User struct {
	ID                int64
	NombreCompleto    string
	TipoDocumento     string
	NumeroDocumento   string
	CorreoElectronico string
	PasswordHash      string
	Estado            string
	EsAdmin           bool
}

// IsActive reports whether the account may authenticate.
func (u *User) IsActive() bool {
	return u.Estado == EstadoActivo
}

// DocumentTypes lists the accepted tipo_documento values.
func DocumentTypes() []string {
	return []string{DocTypeCedula, DocTypeTarjetaIdentidad, DocTypeCedulaExtranjera, DocTypePasaporte}
}
