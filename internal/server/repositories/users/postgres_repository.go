package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jdgomezdev/declaratax/internal/common"
	"github.com/jdgomezdev/declaratax/internal/dbx"
	"github.com/jdgomezdev/declaratax/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, nombre_completo, tipo_documento, numero_documento, correo_electronico, password_hash, estado, es_admin`

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.NombreCompleto, &user.TipoDocumento, &user.NumeroDocumento,
		&user.CorreoElectronico, &user.PasswordHash, &user.Estado, &user.EsAdmin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (nombre_completo, tipo_documento, numero_documento, correo_electronico, password_hash, estado, es_admin)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.NombreCompleto, user.TipoDocumento, user.NumeroDocumento,
		user.CorreoElectronico, user.PasswordHash, user.Estado, user.EsAdmin).Scan(&user.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE correo_electronico = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE correo_electronico = $1 AND id <> $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) DocumentExists(ctx context.Context, numeroDocumento string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE numero_documento = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, numeroDocumento).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

// List returns one page of users ordered by id. The search term matches
// name, email and document number case-insensitively; an empty term matches
// everyone.
func (r *PostgresRepository) List(ctx context.Context, search string, offset, limit int) ([]*models.User, error) {
	query := `SELECT ` + userColumns + `
		 FROM users
		 WHERE nombre_completo ILIKE $1 OR correo_electronico ILIKE $1 OR numero_documento ILIKE $1
		 ORDER BY id ASC
		 OFFSET $2 LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, likePattern(search), offset, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		user := &models.User{}
		err := rows.Scan(&user.ID, &user.NombreCompleto, &user.TipoDocumento, &user.NumeroDocumento,
			&user.CorreoElectronico, &user.PasswordHash, &user.Estado, &user.EsAdmin)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context, search string) (int64, error) {
	query := `SELECT COUNT(*)
		 FROM users
		 WHERE nombre_completo ILIKE $1 OR correo_electronico ILIKE $1 OR numero_documento ILIKE $1`

	var total int64
	if err := r.db.QueryRowContext(ctx, query, likePattern(search)).Scan(&total); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return total, nil
}

func (r *PostgresRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`UPDATE users
		 SET nombre_completo = $1, correo_electronico = $2, password_hash = $3, estado = $4, es_admin = $5
		 WHERE id = $6`

	res, err := r.db.ExecContext(ctx, query,
		user.NombreCompleto, user.CorreoElectronico, user.PasswordHash, user.Estado, user.EsAdmin, user.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, common.ErrorNotFound
	}
	return user, nil
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1 WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func likePattern(search string) string {
	return "%" + search + "%"
}
