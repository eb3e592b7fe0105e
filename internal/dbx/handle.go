package dbx

import (
	"context"
	"database/sql"
	"sync"
)

// Handle owns a database connection pool and serializes writers.
//
// Readers use Reader() directly. Every mutation goes through Write, which
// holds the handle's mutex for the whole transaction, so two upserts of the
// same identity can never interleave.
type Handle struct {
	db *sql.DB
	mu sync.Mutex
}

// NewHandle wraps db. The caller keeps ownership of the pool until Close.
func NewHandle(db *sql.DB) *Handle {
	return &Handle{db: db}
}

// Reader returns a non-transactional handle for queries.
func (h *Handle) Reader() DBTX {
	return h.db
}

// DB exposes the underlying pool (migrations, health checks).
func (h *Handle) DB() *sql.DB {
	return h.db
}

// Write runs fn inside a transaction while holding the writer lock.
// fn must only use the tx it is given.
func (h *Handle) Write(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return WithTx(ctx, h.db, nil, fn)
}

// Close closes the underlying pool.
func (h *Handle) Close() error {
	return h.db.Close()
}
