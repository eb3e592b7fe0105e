// Package transactions provides PostgreSQL-backed storage of users'
// transactions.
package transactions

import (
	"context"

	"github.com/dmitrijs2005/finkeeper/internal/server/models"
)

// Repository persists transactions scoped to their owner. It follows the
// same contract as categories.Repository.
type Repository interface {
	Upsert(ctx context.Context, t *models.Transaction) error
	List(ctx context.Context, userID string) ([]models.Transaction, error)
	Update(ctx context.Context, t *models.Transaction) error
	Delete(ctx context.Context, userID, id string) error
}
