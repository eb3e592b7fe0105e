// Package syncer drives deferred remote propagation for the local
// repositories. A single Worker goroutine picks due sync records and hands
// each one to the repository of its kind.
package syncer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/client/repositories/syncstate"
	"github.com/dmitrijs2005/finkeeper/internal/dbx"
	"github.com/dmitrijs2005/finkeeper/internal/logging"
)

// DefaultBatchSize bounds how many records one pass attempts.
const DefaultBatchSize = 50

// Propagator makes one remote attempt for a record of its kind.
type Propagator interface {
	Kind() models.Kind
	Propagate(ctx context.Context, rec models.SyncRecord) error
}

// Result counts what one pass did.
type Result struct {
	Attempted int
	Succeeded int
	Failed    int
	Abandoned int
	// Paused is set when the pass stopped because nobody is signed in.
	Paused bool
}

type Worker struct {
	db        *dbx.Handle
	handlers  map[models.Kind]Propagator
	kinds     []models.Kind
	interval  time.Duration
	batchSize int
	logger    logging.Logger

	wake chan struct{}
	// mu keeps manual passes from overlapping with the background loop.
	mu  sync.Mutex
	now func() time.Time
}

func NewWorker(db *dbx.Handle, interval time.Duration, batchSize int, logger logging.Logger, props ...Propagator) *Worker {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	w := &Worker{
		db:        db,
		handlers:  make(map[models.Kind]Propagator, len(props)),
		interval:  interval,
		batchSize: batchSize,
		logger:    logger.With("module", "syncer"),
		wake:      make(chan struct{}, 1),
		now:       time.Now,
	}
	for _, p := range props {
		if _, dup := w.handlers[p.Kind()]; !dup {
			w.kinds = append(w.kinds, p.Kind())
		}
		w.handlers[p.Kind()] = p
	}
	return w
}

// Notify asks the worker to run a pass soon. It never blocks.
func (w *Worker) Notify() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Run loops until ctx is done, running a pass on start, on every tick and
// on every Notify.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info(ctx, "syncer started", "interval", w.interval)

	for {
		if _, err := w.ProcessDue(ctx); err != nil && ctx.Err() == nil {
			w.logger.Error(ctx, "sync pass failed", "error", err)
		}

		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "syncer stopped")
			return nil
		case <-ticker.C:
		case <-w.wake:
		}
	}
}

// ProcessDue runs one pass over the records that are due now.
//
// A missing session stops the pass without touching any record. A local
// storage failure aborts it and is returned; network failures are already
// recorded by the repositories and only counted here.
func (w *Worker) ProcessDue(ctx context.Context) (Result, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var res Result
	if len(w.kinds) == 0 {
		return res, nil
	}

	// only kinds with a handler
	recs, err := syncstate.NewSQLiteRepository(w.db.Reader()).ListDue(ctx, w.now(), w.batchSize, w.kinds...)
	if err != nil {
		return res, err
	}
	if len(recs) == 0 {
		return res, nil
	}

	w.logger.Debug(ctx, "processing due records", "count", len(recs))

	for _, rec := range recs {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		err := w.handlers[rec.Kind].Propagate(ctx, rec)

		var se *models.StorageError
		switch {
		case err == nil:
			res.Attempted++
			res.Succeeded++
		case errors.Is(err, models.ErrNoSession):
			w.logger.Debug(ctx, "sync paused, no session")
			res.Paused = true
			return res, nil
		case errors.As(err, &se):
			return res, err
		case errors.Is(err, models.ErrSyncAbandoned):
			res.Attempted++
			res.Abandoned++
		case ctx.Err() != nil:
			return res, ctx.Err()
		default:
			res.Attempted++
			res.Failed++
		}
	}

	if len(recs) == w.batchSize {
		w.Notify()
	}

	w.logger.Debug(ctx, "sync pass done", "attempted", res.Attempted, "succeeded", res.Succeeded,
		"failed", res.Failed, "abandoned", res.Abandoned)
	return res, nil
}
