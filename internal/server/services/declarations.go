package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/jdgomezdev/declaratax/internal/common"
	"github.com/jdgomezdev/declaratax/internal/dbx"
	"github.com/jdgomezdev/declaratax/internal/server/models"
	"github.com/jdgomezdev/declaratax/internal/server/repositories/repomanager"
	"github.com/jdgomezdev/declaratax/internal/server/validation"
)

// CreateDeclarationInput is the payload of a declaration submission. Nil
// required fields report as missing; Dependientes and
// OtrosIngresosDeducciones are genuinely optional.
type CreateDeclarationInput struct {
	AnoFiscal                *int
	IngresosTotales          *float64
	DeduccionesAplicadas     *float64
	EstadoCivil              *string
	Dependientes             *int
	OtrosIngresosDeducciones *string
}

type DeclarationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewDeclarationService(db *sql.DB, m repomanager.RepositoryManager) *DeclarationService {
	return &DeclarationService{db: db, repomanager: m, now: time.Now}
}

// Create validates all provided fields against the business rules, collects
// every failure, and on success persists a new declaration owned by userID
// with status Guardada and a UTC creation timestamp.
func (s *DeclarationService) Create(ctx context.Context, userID int64, in CreateDeclarationInput) (*models.Declaration, error) {
	now := s.now().UTC()
	errs := validation.Errors{}

	if in.AnoFiscal == nil {
		errs.Add("ano_fiscal", validation.Required("Ano fiscal"))
	} else {
		errs.Add("ano_fiscal", validation.FiscalYear(*in.AnoFiscal, now))
	}
	if in.IngresosTotales == nil {
		errs.Add("ingresos_totales", validation.Required("Ingresos totales"))
	} else {
		errs.Add("ingresos_totales", validation.Income(*in.IngresosTotales))
	}
	if in.EstadoCivil == nil {
		errs.Add("estado_civil", validation.Required("Estado civil"))
	} else {
		errs.Add("estado_civil", validation.MaritalStatus(*in.EstadoCivil))
	}
	if in.DeduccionesAplicadas != nil {
		errs.Add("deducciones_aplicadas", validation.Deductions(*in.DeduccionesAplicadas))
	}
	if in.Dependientes != nil {
		errs.Add("dependientes", validation.Dependents(*in.Dependientes))
	}
	if in.OtrosIngresosDeducciones != nil {
		errs.Add("otros_ingresos_deducciones", validation.Notes(*in.OtrosIngresosDeducciones))
	}

	if errs.Any() {
		return nil, validation.NewError(errs)
	}

	declaration := &models.Declaration{
		UserID:                   userID,
		AnoFiscal:                *in.AnoFiscal,
		IngresosTotales:          *in.IngresosTotales,
		EstadoCivil:              *in.EstadoCivil,
		Dependientes:             in.Dependientes,
		OtrosIngresosDeducciones: in.OtrosIngresosDeducciones,
		EstadoDeclaracion:        models.EstadoDeclaracionInicial,
		FechaCreacion:            now,
	}
	if in.DeduccionesAplicadas != nil {
		declaration.DeduccionesAplicadas = *in.DeduccionesAplicadas
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Declarations(tx).Create(ctx, declaration)
		if err != nil {
			return err
		}
		declaration = created
		return nil
	}); err != nil {
		return nil, common.ErrorInternal
	}

	return declaration, nil
}

// ListByUser returns the caller's declarations, never another user's.
func (s *DeclarationService) ListByUser(ctx context.Context, userID int64) ([]*models.Declaration, error) {
	items, err := s.repomanager.Declarations(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if items == nil {
		items = []*models.Declaration{}
	}
	return items, nil
}
