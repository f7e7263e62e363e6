// Package repomanager hands out repositories bound to an arbitrary DBTX so
// services can run several repositories inside one transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/jdgomezdev/declaratax/internal/dbx"
	"github.com/jdgomezdev/declaratax/internal/server/repositories/declarations"
	"github.com/jdgomezdev/declaratax/internal/server/repositories/sessions"
	"github.com/jdgomezdev/declaratax/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Declarations(db dbx.DBTX) declarations.Repository
	Sessions(db dbx.DBTX) sessions.Repository
}
