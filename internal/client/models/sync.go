package models

import "time"

// Kind names an entity type in the sync side-table.
type Kind string

const (
	KindCategory    Kind = "category"
	KindTransaction Kind = "transaction"
)

// SyncState tracks whether the latest local write reached the server.
type SyncState string

const (
	SyncPending   SyncState = "pending"
	SyncSynced    SyncState = "synced"
	SyncFailed    SyncState = "failed"
	SyncAbandoned SyncState = "abandoned"
)

// SyncOp is the remote call still owed for a record.
type SyncOp string

const (
	OpNone   SyncOp = ""
	OpCreate SyncOp = "create"
	OpUpdate SyncOp = "update"
	OpDelete SyncOp = "delete"
)

// SyncRecord is the side-table row for one entity.
//
// Revision grows with every local write; a remote attempt only records its
// outcome if the revision it started from is still current.
type SyncRecord struct {
	Kind          Kind      `json:"kind"`
	LocalID       int64     `json:"local_id"`
	RemoteID      string    `json:"remote_id,omitempty"`
	Op            SyncOp    `json:"op,omitempty"`
	State         SyncState `json:"state"`
	Attempts      int       `json:"attempts"`
	NextAttemptAt time.Time `json:"next_attempt_at"`
	LastError     string    `json:"last_error,omitempty"`
	Revision      int64     `json:"revision"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Due reports whether the syncer should try the record at now.
func (r SyncRecord) Due(now time.Time) bool {
	switch r.State {
	case SyncPending:
		return true
	case SyncFailed:
		return !r.NextAttemptAt.After(now)
	default:
		return false
	}
}

// RemoteRecord pairs an entity with the id the server assigned to it.
type RemoteRecord[T any] struct {
	RemoteID string
	Entity   T
}
