package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/finkeeper/internal/dbx"
	"github.com/dmitrijs2005/finkeeper/internal/server/repositories/categories"
	"github.com/dmitrijs2005/finkeeper/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/finkeeper/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a *sql.DB or a transaction
// and owns the schema migrations.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Categories(db dbx.DBTX) categories.Repository
	Transactions(db dbx.DBTX) transactions.Repository
}
