package transactions

import (
	"context"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
)

// Store is durable key-indexed storage for transactions.
type Store interface {
	GetAll(ctx context.Context) ([]models.Transaction, error)
	Get(ctx context.Context, id int64) (*models.Transaction, error)
	Put(ctx context.Context, t *models.Transaction) error
	Remove(ctx context.Context, id int64) error
}
