package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/client/backoff"
	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/client/repositories/syncstate"
	"github.com/dmitrijs2005/finkeeper/internal/common"
	"github.com/dmitrijs2005/finkeeper/internal/dbx"
	"github.com/dmitrijs2005/finkeeper/internal/logging"
)

// Entity is a record with a caller-supplied stable identity.
type Entity interface {
	Key() int64
	Validate() error
}

// Store is the durable local storage a Repository writes through.
type Store[T Entity] interface {
	GetAll(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int64) (*T, error)
	Put(ctx context.Context, e *T) error
	Remove(ctx context.Context, id int64) error
}

// Remote is the server-side CRUD capability for one entity type.
//
//go:generate mockgen -source=repository.go -destination=mock_remote_test.go -package=services -exclude_interfaces=Entity,Store
type Remote[T Entity] interface {
	CreateRemote(ctx context.Context, e *T) (string, error)
	UpdateRemote(ctx context.Context, remoteID string, e *T) error
	DeleteRemote(ctx context.Context, remoteID string) error
	ListRemote(ctx context.Context) ([]models.RemoteRecord[T], error)
}

// Repository is the only writer of one entity type's local store and of its
// rows in the sync side-table.
//
// Add, Update and Remove commit locally and return; the matching remote call
// is made later by Propagate, which the background syncer drives. Network
// failures never reach the caller of a local write; they are recorded on the
// entity's sync record instead.
type Repository[T Entity] struct {
	kind   models.Kind
	db     *dbx.Handle
	store  func(db dbx.DBTX) Store[T]
	remote Remote[T]
	policy backoff.Policy
	logger logging.Logger
	notify func()
	now    func() time.Time
}

// NewRepository binds a repository to a store factory; the factory is called
// with the handle's reader or with a write transaction.
func NewRepository[T Entity](kind models.Kind, db *dbx.Handle, store func(db dbx.DBTX) Store[T],
	remote Remote[T], policy backoff.Policy, logger logging.Logger) *Repository[T] {
	return &Repository[T]{
		kind:   kind,
		db:     db,
		store:  store,
		remote: remote,
		policy: policy,
		logger: logger.With("module", "repository", "kind", string(kind)),
		now:    time.Now,
	}
}

// SetNotifier registers a callback fired after every committed local write.
// It must not block.
func (r *Repository[T]) SetNotifier(fn func()) {
	r.notify = fn
}

func (r *Repository[T]) Kind() models.Kind {
	return r.kind
}

func (r *Repository[T]) wake() {
	if r.notify != nil {
		r.notify()
	}
}

// write runs fn in a write transaction. Failures to open or commit the
// transaction are reported as storage errors like any other.
func (r *Repository[T]) write(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	err := r.db.Write(ctx, fn)
	if err == nil {
		return nil
	}

	var (
		se *models.StorageError
		ve *models.ValidationError
	)
	if errors.As(err, &se) || errors.As(err, &ve) || errors.Is(err, common.ErrorNotFound) {
		return err
	}
	return models.StorageErrorf("failed to write %s: %w", r.kind, err)
}

// List returns every local entity in insertion order. It never calls the
// server.
func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	return r.store(r.db.Reader()).GetAll(ctx)
}

// Get returns one local entity, or common.ErrorNotFound.
func (r *Repository[T]) Get(ctx context.Context, id int64) (*T, error) {
	e, err := r.store(r.db.Reader()).Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("%s %d: %w", r.kind, id, common.ErrorNotFound)
	}
	return e, nil
}

// Add stores a new entity and queues its creation on the server.
func (r *Repository[T]) Add(ctx context.Context, e T) error {
	if err := e.Validate(); err != nil {
		return err
	}

	err := r.write(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		st := r.store(tx)

		existing, err := st.Get(ctx, e.Key())
		if err != nil {
			return err
		}
		if existing != nil {
			return &models.ValidationError{Field: "id", Reason: fmt.Sprintf("%d already exists", e.Key())}
		}

		if err := st.Put(ctx, &e); err != nil {
			return err
		}
		return r.markWritten(ctx, tx, e.Key(), false)
	})
	if err != nil {
		return err
	}

	r.wake()
	return nil
}

// Update replaces an existing entity and queues the change for the server.
func (r *Repository[T]) Update(ctx context.Context, e T) error {
	if err := e.Validate(); err != nil {
		return err
	}

	err := r.write(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		st := r.store(tx)

		existing, err := st.Get(ctx, e.Key())
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("%s %d: %w", r.kind, e.Key(), common.ErrorNotFound)
		}

		if err := st.Put(ctx, &e); err != nil {
			return err
		}
		return r.markWritten(ctx, tx, e.Key(), false)
	})
	if err != nil {
		return err
	}

	r.wake()
	return nil
}

// Remove deletes the entity locally and queues the remote delete.
func (r *Repository[T]) Remove(ctx context.Context, e T) error {
	return r.RemoveByID(ctx, e.Key())
}

// RemoveByID is Remove for callers that only hold the identity. Removing an
// unknown id succeeds without side effects.
func (r *Repository[T]) RemoveByID(ctx context.Context, id int64) error {
	err := r.write(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if err := r.store(tx).Remove(ctx, id); err != nil {
			return err
		}
		return r.markWritten(ctx, tx, id, true)
	})
	if err != nil {
		return err
	}

	r.wake()
	return nil
}

// markWritten coalesces the remote op owed for id after a local write and
// bumps the record's revision so in-flight attempts become stale.
func (r *Repository[T]) markWritten(ctx context.Context, tx dbx.DBTX, id int64, removed bool) error {
	ss := syncstate.NewSQLiteRepository(tx)

	rec, err := ss.Get(ctx, r.kind, id)
	if err != nil {
		return err
	}
	if rec == nil {
		if removed {
			return nil
		}
		rec = &models.SyncRecord{Kind: r.kind, LocalID: id}
	}

	switch {
	case removed:
		rec.Op = models.OpDelete
	case rec.RemoteID != "":
		rec.Op = models.OpUpdate
	default:
		rec.Op = models.OpCreate
	}

	now := r.now()
	rec.State = models.SyncPending
	rec.Attempts = 0
	rec.NextAttemptAt = now
	rec.LastError = ""
	rec.Revision++
	rec.UpdatedAt = now

	return ss.Put(ctx, rec)
}

// SyncRecord returns the side-table row of id, or common.ErrorNotFound when
// the entity is not tracked.
func (r *Repository[T]) SyncRecord(ctx context.Context, id int64) (*models.SyncRecord, error) {
	rec, err := syncstate.NewSQLiteRepository(r.db.Reader()).Get(ctx, r.kind, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%s %d: %w", r.kind, id, common.ErrorNotFound)
	}
	return rec, nil
}

// SyncState is the current sync state of id.
func (r *Repository[T]) SyncState(ctx context.Context, id int64) (models.SyncState, error) {
	rec, err := r.SyncRecord(ctx, id)
	if err != nil {
		return "", err
	}
	return rec.State, nil
}

// Records lists every sync record of this entity type.
func (r *Repository[T]) Records(ctx context.Context) ([]models.SyncRecord, error) {
	return syncstate.NewSQLiteRepository(r.db.Reader()).List(ctx, r.kind)
}

// Retry puts a failed or abandoned record back into the queue with a fresh
// attempt budget. Pending and synced records are left alone.
func (r *Repository[T]) Retry(ctx context.Context, id int64) error {
	err := r.write(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		ss := syncstate.NewSQLiteRepository(tx)

		rec, err := ss.Get(ctx, r.kind, id)
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("%s %d: %w", r.kind, id, common.ErrorNotFound)
		}
		if rec.State != models.SyncFailed && rec.State != models.SyncAbandoned {
			return nil
		}
		return ss.Put(ctx, r.requeued(rec))
	})
	if err != nil {
		return err
	}

	r.wake()
	return nil
}

// RetryAbandoned requeues every abandoned record and returns how many there
// were.
func (r *Repository[T]) RetryAbandoned(ctx context.Context) (int, error) {
	var n int
	err := r.write(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		ss := syncstate.NewSQLiteRepository(tx)

		recs, err := ss.List(ctx, r.kind)
		if err != nil {
			return err
		}
		for i := range recs {
			if recs[i].State != models.SyncAbandoned {
				continue
			}
			if err := ss.Put(ctx, r.requeued(&recs[i])); err != nil {
				return err
			}
			n++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if n > 0 {
		r.wake()
	}
	return n, nil
}

func (r *Repository[T]) requeued(rec *models.SyncRecord) *models.SyncRecord {
	now := r.now()
	rec.State = models.SyncPending
	rec.Attempts = 0
	rec.NextAttemptAt = now
	rec.Revision++
	rec.UpdatedAt = now
	return rec
}

// Propagate makes one remote attempt for rec and records the outcome, unless
// a newer local write superseded rec in the meantime.
//
// It returns nil on success, an error wrapping models.ErrSyncAbandoned when
// the record gave up, and the network error otherwise. Failures that are not
// network errors (models.ErrNoSession, a *models.StorageError) come back
// untouched and leave the record as it was.
func (r *Repository[T]) Propagate(ctx context.Context, rec models.SyncRecord) error {
	if rec.Kind != r.kind {
		return fmt.Errorf("record of kind %q sent to %q repository", rec.Kind, r.kind)
	}

	switch rec.Op {
	case models.OpDelete:
		if rec.RemoteID == "" {
			return r.dropRecord(ctx, rec)
		}
		if err := r.remote.DeleteRemote(ctx, rec.RemoteID); err != nil {
			return r.recordFailure(ctx, rec, err)
		}
		return r.recordDeleted(ctx, rec)

	case models.OpCreate, models.OpUpdate:
		e, err := r.store(r.db.Reader()).Get(ctx, rec.LocalID)
		if err != nil {
			return err
		}
		if e == nil {
			// A remove landed after rec was read; its own record supersedes rec.
			r.logger.Debug(ctx, "entity gone before sync", "id", rec.LocalID)
			return nil
		}

		if rec.Op == models.OpCreate {
			remoteID, err := r.remote.CreateRemote(ctx, e)
			if err != nil {
				return r.recordFailure(ctx, rec, err)
			}
			return r.recordCreated(ctx, rec, remoteID)
		}

		err = r.remote.UpdateRemote(ctx, rec.RemoteID, e)
		if errors.Is(err, common.ErrorNotFound) {
			return r.recordRemoteGone(ctx, rec)
		}
		if err != nil {
			return r.recordFailure(ctx, rec, err)
		}
		return r.recordSynced(ctx, rec)

	default:
		return nil
	}
}

func (r *Repository[T]) recordSynced(ctx context.Context, rec models.SyncRecord) error {
	rec.Op = models.OpNone
	rec.State = models.SyncSynced
	rec.Attempts = 0
	rec.LastError = ""
	rec.UpdatedAt = r.now()

	ok, err := r.compareAndPut(ctx, &rec)
	if err != nil {
		return err
	}
	if !ok {
		r.logger.Debug(ctx, "sync outcome superseded", "id", rec.LocalID, "revision", rec.Revision)
		return nil
	}
	r.logger.Debug(ctx, "record synced", "id", rec.LocalID, "remote_id", rec.RemoteID)
	return nil
}

func (r *Repository[T]) recordCreated(ctx context.Context, rec models.SyncRecord, remoteID string) error {
	return r.write(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		ss := syncstate.NewSQLiteRepository(tx)

		cur, err := ss.Get(ctx, r.kind, rec.LocalID)
		if err != nil || cur == nil {
			return err
		}

		if cur.Revision == rec.Revision {
			cur.RemoteID = remoteID
			cur.Op = models.OpNone
			cur.State = models.SyncSynced
			cur.Attempts = 0
			cur.LastError = ""
			cur.UpdatedAt = r.now()
			r.logger.Debug(ctx, "record created remotely", "id", rec.LocalID, "remote_id", remoteID)
			return ss.Put(ctx, cur)
		}

		// Superseded, but the server now holds the entity: the newer write
		// must update it rather than create a second one.
		cur.RemoteID = remoteID
		if cur.Op == models.OpCreate {
			cur.Op = models.OpUpdate
		}
		r.logger.Debug(ctx, "create superseded", "id", rec.LocalID, "remote_id", remoteID, "op", cur.Op)
		return ss.Put(ctx, cur)
	})
}

func (r *Repository[T]) recordDeleted(ctx context.Context, rec models.SyncRecord) error {
	return r.write(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		ss := syncstate.NewSQLiteRepository(tx)

		cur, err := ss.Get(ctx, r.kind, rec.LocalID)
		if err != nil || cur == nil {
			return err
		}

		if cur.Revision == rec.Revision {
			_, err := ss.CompareAndDelete(ctx, r.kind, rec.LocalID, rec.Revision)
			return err
		}

		// The entity was written again after the delete went out; it no
		// longer exists remotely.
		cur.RemoteID = ""
		if cur.Op == models.OpUpdate {
			cur.Op = models.OpCreate
		}
		return ss.Put(ctx, cur)
	})
}

// dropRecord forgets a delete for an entity the server never saw.
func (r *Repository[T]) dropRecord(ctx context.Context, rec models.SyncRecord) error {
	return r.write(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := syncstate.NewSQLiteRepository(tx).CompareAndDelete(ctx, r.kind, rec.LocalID, rec.Revision)
		return err
	})
}

// recordRemoteGone handles an update of a record the server no longer has by
// queueing a fresh create.
func (r *Repository[T]) recordRemoteGone(ctx context.Context, rec models.SyncRecord) error {
	now := r.now()
	rec.RemoteID = ""
	rec.Op = models.OpCreate
	rec.State = models.SyncPending
	rec.NextAttemptAt = now
	rec.LastError = "remote record missing"
	rec.UpdatedAt = now

	ok, err := r.compareAndPut(ctx, &rec)
	if err != nil {
		return err
	}
	if ok {
		r.logger.Warn(ctx, "remote record missing, recreating", "id", rec.LocalID)
		r.wake()
	}
	return nil
}

// recordFailure books a failed remote call on rec. Only network errors
// count as attempts; anything else (no session, local storage) is returned
// with the record untouched.
func (r *Repository[T]) recordFailure(ctx context.Context, rec models.SyncRecord, cause error) error {
	var ne *models.NetworkError
	if !errors.As(cause, &ne) {
		return cause
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	now := r.now()
	rec.Attempts++
	rec.LastError = cause.Error()
	rec.UpdatedAt = now

	retryable := ne.Retryable()

	if retryable && !r.policy.Exhausted(rec.Attempts) {
		rec.State = models.SyncFailed
		rec.NextAttemptAt = now.Add(r.policy.Delay(rec.Attempts))
	} else {
		rec.State = models.SyncAbandoned
	}

	ok, err := r.compareAndPut(ctx, &rec)
	if err != nil {
		return err
	}
	if !ok {
		r.logger.Debug(ctx, "sync failure superseded", "id", rec.LocalID, "error", cause)
		return nil
	}

	if rec.State == models.SyncAbandoned {
		r.logger.Error(ctx, "sync abandoned", "id", rec.LocalID, "op", rec.Op,
			"attempts", rec.Attempts, "error", cause)
		return fmt.Errorf("%s %d: %w: %w", r.kind, rec.LocalID, models.ErrSyncAbandoned, cause)
	}

	r.logger.Warn(ctx, "sync attempt failed", "id", rec.LocalID, "op", rec.Op,
		"attempts", rec.Attempts, "next_attempt_at", rec.NextAttemptAt, "error", cause)
	return cause
}

func (r *Repository[T]) compareAndPut(ctx context.Context, rec *models.SyncRecord) (bool, error) {
	var ok bool
	err := r.write(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		ok, err = syncstate.NewSQLiteRepository(tx).CompareAndPut(ctx, rec)
		return err
	})
	return ok, err
}

// PullStats summarizes one Pull.
type PullStats struct {
	Applied int
	Removed int
	Skipped int
}

// Pull reconciles the local store with the server's copy. Remote rows
// replace local rows that are synced or untracked; rows with local changes
// still owed to the server are kept. Synced rows the server no longer has
// are removed locally.
func (r *Repository[T]) Pull(ctx context.Context) (PullStats, error) {
	var stats PullStats

	remote, err := r.remote.ListRemote(ctx)
	if err != nil {
		return stats, err
	}

	err = r.write(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		st := r.store(tx)
		ss := syncstate.NewSQLiteRepository(tx)
		now := r.now()
		seen := make(map[string]struct{}, len(remote))

		for _, rr := range remote {
			e := rr.Entity
			seen[rr.RemoteID] = struct{}{}

			if err := e.Validate(); err != nil {
				r.logger.Warn(ctx, "skipping invalid remote record", "remote_id", rr.RemoteID, "error", err)
				stats.Skipped++
				continue
			}

			rec, err := ss.Get(ctx, r.kind, e.Key())
			if err != nil {
				return err
			}
			if rec != nil && rec.State != models.SyncSynced {
				stats.Skipped++
				continue
			}
			if rec == nil {
				rec = &models.SyncRecord{Kind: r.kind, LocalID: e.Key()}
			}

			if err := st.Put(ctx, &e); err != nil {
				return err
			}

			rec.RemoteID = rr.RemoteID
			rec.Op = models.OpNone
			rec.State = models.SyncSynced
			rec.Attempts = 0
			rec.LastError = ""
			rec.Revision++
			rec.UpdatedAt = now
			if err := ss.Put(ctx, rec); err != nil {
				return err
			}
			stats.Applied++
		}

		recs, err := ss.List(ctx, r.kind)
		if err != nil {
			return err
		}
		for _, rec := range recs {
			if rec.State != models.SyncSynced || rec.RemoteID == "" {
				continue
			}
			if _, ok := seen[rec.RemoteID]; ok {
				continue
			}
			if err := st.Remove(ctx, rec.LocalID); err != nil {
				return err
			}
			if err := ss.Delete(ctx, r.kind, rec.LocalID); err != nil {
				return err
			}
			stats.Removed++
		}
		return nil
	})
	if err != nil {
		return PullStats{}, err
	}

	r.logger.Info(ctx, "pull finished", "applied", stats.Applied, "removed", stats.Removed, "skipped", stats.Skipped)
	return stats, nil
}
