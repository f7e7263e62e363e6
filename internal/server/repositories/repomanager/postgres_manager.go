package repomanager

import (
	"context"
	"database/sql"

	"github.com/jdgomezdev/declaratax/internal/dbx"
	"github.com/jdgomezdev/declaratax/internal/server/migrations"
	"github.com/jdgomezdev/declaratax/internal/server/repositories/declarations"
	"github.com/jdgomezdev/declaratax/internal/server/repositories/sessions"
	"github.com/jdgomezdev/declaratax/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// gooseUpContext is a test seam for goose.UpContext.
var gooseUpContext = goose.UpContext

type PostgresRepositoryManager struct {
}

func NewPostgresRepositoryManager(db *sql.DB) (RepositoryManager, error) {
	return &PostgresRepositoryManager{}, nil
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Declarations(db dbx.DBTX) declarations.Repository {
	return declarations.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Sessions(db dbx.DBTX) sessions.Repository {
	return sessions.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}
