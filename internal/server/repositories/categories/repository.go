// Package categories provides PostgreSQL-backed storage of users'
// categories.
package categories

import (
	"context"

	"github.com/dmitrijs2005/finkeeper/internal/server/models"
)

// Repository persists categories scoped to their owner.
//
// Contract:
//   - Upsert: insert c, or overwrite the row with the same (UserID, ClientID);
//     fills in ID and timestamps either way.
//   - List: every category of userID, oldest first.
//   - Update: overwrite the row with c.ID owned by c.UserID, or common.ErrorNotFound.
//   - Delete: remove the row, or common.ErrorNotFound.
type Repository interface {
	Upsert(ctx context.Context, c *models.Category) error
	List(ctx context.Context, userID string) ([]models.Category, error)
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, userID, id string) error
}
