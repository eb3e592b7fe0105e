package services

import (
	"github.com/dmitrijs2005/finkeeper/internal/client/backoff"
	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/client/repositories/categories"
	"github.com/dmitrijs2005/finkeeper/internal/client/repositories/transactions"
	"github.com/dmitrijs2005/finkeeper/internal/dbx"
	"github.com/dmitrijs2005/finkeeper/internal/logging"
)

type (
	CategoryRepository    = Repository[models.Category]
	TransactionRepository = Repository[models.Transaction]
)

func NewCategoryRepository(db *dbx.Handle, remote Remote[models.Category],
	policy backoff.Policy, logger logging.Logger) *CategoryRepository {
	return NewRepository(models.KindCategory, db, func(db dbx.DBTX) Store[models.Category] {
		return categories.NewSQLiteStore(db)
	}, remote, policy, logger)
}

func NewTransactionRepository(db *dbx.Handle, remote Remote[models.Transaction],
	policy backoff.Policy, logger logging.Logger) *TransactionRepository {
	return NewRepository(models.KindTransaction, db, func(db dbx.DBTX) Store[models.Transaction] {
		return transactions.NewSQLiteStore(db)
	}, remote, policy, logger)
}
