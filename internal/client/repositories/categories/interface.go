package categories

import (
	"context"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
)

// Store is durable key-indexed storage for categories.
type Store interface {
	// GetAll returns every category in insertion order.
	GetAll(ctx context.Context) ([]models.Category, error)

	// Get returns the category with id, or (nil, nil) when absent.
	Get(ctx context.Context, id int64) (*models.Category, error)

	// Put inserts or fully replaces the category with c.ID.
	Put(ctx context.Context, c *models.Category) error

	// Remove deletes by id. Removing an absent id is not an error.
	Remove(ctx context.Context, id int64) error
}
