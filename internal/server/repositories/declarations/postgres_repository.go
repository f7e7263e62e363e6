package declarations

import (
	"context"
	"fmt"

	"github.com/jdgomezdev/declaratax/internal/dbx"
	"github.com/jdgomezdev/declaratax/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, d *models.Declaration) (*models.Declaration, error) {

	query :=
		`INSERT INTO declarations (user_id, ano_fiscal, ingresos_totales, deducciones_aplicadas, estado_civil, dependientes, otros_ingresos_deducciones, estado_declaracion, fecha_creacion)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		d.UserID, d.AnoFiscal, d.IngresosTotales, d.DeduccionesAplicadas, d.EstadoCivil,
		d.Dependientes, d.OtrosIngresosDeducciones, d.EstadoDeclaracion, d.FechaCreacion).Scan(&d.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return d, nil
}

// ListByUser returns the declarations owned by userID, oldest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Declaration, error) {
	query :=
		`SELECT id, user_id, ano_fiscal, ingresos_totales, deducciones_aplicadas, estado_civil, dependientes, otros_ingresos_deducciones, estado_declaracion, fecha_creacion
		 FROM declarations
		 WHERE user_id = $1
		 ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Declaration
	for rows.Next() {
		d := &models.Declaration{}
		err := rows.Scan(&d.ID, &d.UserID, &d.AnoFiscal, &d.IngresosTotales, &d.DeduccionesAplicadas,
			&d.EstadoCivil, &d.Dependientes, &d.OtrosIngresosDeducciones, &d.EstadoDeclaracion, &d.FechaCreacion)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
