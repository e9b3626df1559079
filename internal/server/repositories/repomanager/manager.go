package repomanager

import (
	"context"
	"database/sql"

	"github.com/recipebox/recipebox/internal/dbx"
	"github.com/recipebox/recipebox/internal/server/repositories/recipes"
	"github.com/recipebox/recipebox/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX and owns schema
// migrations. Passing a *sql.Tx returns repositories that take part in that
// transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Recipes(db dbx.DBTX) recipes.Repository
}
