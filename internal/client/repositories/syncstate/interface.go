package syncstate

import (
	"context"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
)

type Repository interface {
	// Get returns the record, or (nil, nil) when the entity is untracked.
	Get(ctx context.Context, kind models.Kind, localID int64) (*models.SyncRecord, error)

	// Put inserts or fully replaces a record.
	Put(ctx context.Context, rec *models.SyncRecord) error

	// CompareAndPut replaces every field but Revision, provided the stored
	// revision still equals rec.Revision. It reports whether a row changed.
	CompareAndPut(ctx context.Context, rec *models.SyncRecord) (bool, error)

	// CompareAndDelete removes the record if its revision still matches.
	CompareAndDelete(ctx context.Context, kind models.Kind, localID, revision int64) (bool, error)

	// Delete removes the record unconditionally.
	Delete(ctx context.Context, kind models.Kind, localID int64) error

	// ListDue returns up to limit records the syncer should try at now,
	// oldest first. Non-empty kinds restricts the result to those kinds.
	ListDue(ctx context.Context, now time.Time, limit int, kinds ...models.Kind) ([]models.SyncRecord, error)

	// List returns every record of kind, or of all kinds when kind is "".
	List(ctx context.Context, kind models.Kind) ([]models.SyncRecord, error)

	// CountByState aggregates records per state.
	CountByState(ctx context.Context) (map[models.SyncState]int, error)
}
