// Package services contains the server-side business logic. This file
// implements UserService: registration, credential checks, admin-side user
// management and password resets. Field validation (including uniqueness
// pre-checks) runs here so every failure is collected before any mutation.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/jdgomezdev/declaratax/internal/common"
	"github.com/jdgomezdev/declaratax/internal/dbx"
	"github.com/jdgomezdev/declaratax/internal/server/models"
	"github.com/jdgomezdev/declaratax/internal/server/repositories/repomanager"
	"github.com/jdgomezdev/declaratax/internal/server/validation"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput is the payload of a registration request. EsAdmin is only
// honored when the acting caller is an authenticated admin.
type RegisterInput struct {
	NombreCompleto    string
	TipoDocumento     string
	NumeroDocumento   string
	CorreoElectronico string
	Password          string
	EsAdmin           bool
}

// UpdateUserInput is a partial admin update; nil fields are left untouched.
type UpdateUserInput struct {
	NombreCompleto    *string
	CorreoElectronico *string
	Password          *string
	Estado            *string
	EsAdmin           *bool
}

// UserPage is one page of an admin user listing. The counters are always
// populated, including the no-match case.
type UserPage struct {
	Users   []*models.User
	Total   int64
	Page    int
	PerPage int
	Pages   int
	HasNext bool
	HasPrev bool
}

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m}
}

// Register validates the payload (format rules plus email/document
// uniqueness), then creates an active account inside one transaction.
// Self-registration always yields a non-admin account; an admin actor may
// set the admin flag.
func (s *UserService) Register(ctx context.Context, in RegisterInput, actor *models.User) (*models.User, error) {
	errs := validation.Errors{}

	in.CorreoElectronico = validation.NormalizeEmail(in.CorreoElectronico)

	required := []struct {
		field, label, value string
	}{
		{"nombre_completo", "Nombre completo", in.NombreCompleto},
		{"tipo_documento", "Tipo documento", in.TipoDocumento},
		{"numero_documento", "Numero documento", in.NumeroDocumento},
		{"correo_electronico", "Correo electronico", in.CorreoElectronico},
		{"password", "Password", in.Password},
	}
	for _, f := range required {
		if f.value == "" {
			errs.Add(f.field, validation.Required(f.label))
		}
	}

	if in.NombreCompleto != "" {
		errs.Add("nombre_completo", validation.FullName(in.NombreCompleto))
	}
	if in.TipoDocumento != "" {
		errs.Add("tipo_documento", validation.DocumentType(in.TipoDocumento))
	}
	if in.NumeroDocumento != "" && in.TipoDocumento != "" {
		errs.Add("numero_documento", validation.DocumentNumber(in.TipoDocumento, in.NumeroDocumento))
	}
	if in.CorreoElectronico != "" {
		errs.Add("correo_electronico", validation.Email(in.CorreoElectronico))
	}
	if in.Password != "" {
		errs.Add("password", validation.Password(in.Password))
	}

	repo := s.repomanager.Users(s.db)

	if _, ok := errs["correo_electronico"]; !ok && in.CorreoElectronico != "" {
		exists, err := repo.EmailExists(ctx, in.CorreoElectronico, 0)
		if err != nil {
			return nil, fmt.Errorf("error checking email uniqueness: %w", err)
		}
		if exists {
			errs.Add("correo_electronico", "El correo electrónico ya está registrado.")
		}
	}
	if _, ok := errs["numero_documento"]; !ok && in.NumeroDocumento != "" {
		exists, err := repo.DocumentExists(ctx, in.NumeroDocumento)
		if err != nil {
			return nil, fmt.Errorf("error checking document uniqueness: %w", err)
		}
		if exists {
			errs.Add("numero_documento", "El número de documento ya está registrado.")
		}
	}

	if errs.Any() {
		return nil, validation.NewError(errs)
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		NombreCompleto:    in.NombreCompleto,
		TipoDocumento:     in.TipoDocumento,
		NumeroDocumento:   in.NumeroDocumento,
		CorreoElectronico: in.CorreoElectronico,
		PasswordHash:      hash,
		Estado:            models.EstadoActivo,
		EsAdmin:           actor != nil && actor.EsAdmin && in.EsAdmin,
	}

	// Uniqueness races past the pre-check are stopped by the DB constraints
	// and surface as a generic internal error.
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}
		user = created
		return nil
	}); err != nil {
		return nil, common.ErrorInternal
	}

	return user, nil
}

// CheckCredentials verifies email/password and that the account is active.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (s *UserService) CheckCredentials(ctx context.Context, email, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrorInternal
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, common.ErrAccountInactive
	}
	return user, nil
}

// Get returns one user by id.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// List returns one page of users matching the search term (case-insensitive
// substring over name, email and document number). Page numbers start at 1.
func (s *UserService) List(ctx context.Context, search string, page, perPage int) (*UserPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	repo := s.repomanager.Users(s.db)

	total, err := repo.Count(ctx, search)
	if err != nil {
		return nil, common.ErrorInternal
	}

	items, err := repo.List(ctx, search, (page-1)*perPage, perPage)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if items == nil {
		items = []*models.User{}
	}

	pages := int(math.Ceil(float64(total) / float64(perPage)))

	return &UserPage{
		Users:   items,
		Total:   total,
		Page:    page,
		PerPage: perPage,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	}, nil
}

// Update applies a partial admin update after validating every provided
// field; email uniqueness is checked against all other users.
func (s *UserService) Update(ctx context.Context, id int64, in UpdateUserInput) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	errs := validation.Errors{}

	if in.NombreCompleto != nil {
		if *in.NombreCompleto == "" {
			errs.Add("nombre_completo", "El nombre completo no puede estar vacío.")
		} else {
			errs.Add("nombre_completo", validation.FullName(*in.NombreCompleto))
		}
	}
	if in.CorreoElectronico != nil {
		normalized := validation.NormalizeEmail(*in.CorreoElectronico)
		if normalized == "" {
			errs.Add("correo_electronico", "El correo electrónico no puede estar vacío.")
		} else {
			errs.Add("correo_electronico", validation.Email(normalized))
			if _, ok := errs["correo_electronico"]; !ok {
				exists, err := s.repomanager.Users(s.db).EmailExists(ctx, normalized, id)
				if err != nil {
					return nil, common.ErrorInternal
				}
				if exists {
					errs.Add("correo_electronico", "El correo electrónico ya está en uso.")
				}
			}
		}
		in.CorreoElectronico = &normalized
	}
	if in.Password != nil && *in.Password != "" {
		errs.Add("password", validation.Password(*in.Password))
	}
	if in.Estado != nil {
		errs.Add("estado", validation.AccountStatus(*in.Estado))
	}

	if errs.Any() {
		return nil, validation.NewError(errs)
	}

	if in.NombreCompleto != nil {
		user.NombreCompleto = *in.NombreCompleto
	}
	if in.CorreoElectronico != nil {
		user.CorreoElectronico = *in.CorreoElectronico
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return nil, common.ErrorInternal
		}
		user.PasswordHash = hash
	}
	if in.Estado != nil {
		user.Estado = *in.Estado
	}
	if in.EsAdmin != nil {
		user.EsAdmin = *in.EsAdmin
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		updated, err := s.repomanager.Users(tx).Update(ctx, user)
		if err != nil {
			return err
		}
		user = updated
		return nil
	}); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}

// ToggleStatus flips a user between activo and inactivo. Admins may not
// toggle themselves.
func (s *UserService) ToggleStatus(ctx context.Context, id int64, actor *models.User) (*models.User, error) {
	if actor != nil && actor.ID == id {
		return nil, common.ErrorForbidden
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.Estado == models.EstadoActivo {
		user.Estado = models.EstadoInactivo
	} else {
		user.Estado = models.EstadoActivo
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		updated, err := s.repomanager.Users(tx).Update(ctx, user)
		if err != nil {
			return err
		}
		user = updated
		return nil
	}); err != nil {
		return nil, common.ErrorInternal
	}

	return user, nil
}

// EmailExists reports whether an account with the normalized email exists.
// It exposes only the boolean, never the record.
func (s *UserService) EmailExists(ctx context.Context, email string) (bool, error) {
	exists, err := s.repomanager.Users(s.db).EmailExists(ctx, validation.NormalizeEmail(email), 0)
	if err != nil {
		return false, common.ErrorInternal
	}
	return exists, nil
}

// ResetPassword sets a new password for the account matching the email.
// The new password must pass strength validation.
func (s *UserService) ResetPassword(ctx context.Context, email, password string) error {
	if reason := validation.Password(password); reason != "" {
		return validation.NewError(validation.Errors{"password": reason})
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	hash, err := hashPassword(password)
	if err != nil {
		return common.ErrorInternal
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Users(tx).UpdatePassword(ctx, user.ID, hash)
	}); err != nil {
		return common.ErrorInternal
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
