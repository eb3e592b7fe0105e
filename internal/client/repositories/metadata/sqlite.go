package metadata

import (
	"context"
	"database/sql"
	"errors"
	"maps"
	"slices"
	"strings"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", models.StorageErrorf("failed to get metadata[%s]: %w", key, err)
	}
	return string(value), nil
}

func (r *SQLiteRepository) Put(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	keys := slices.Sorted(maps.Keys(values))
	args := make([]any, 0, 2*len(keys))
	for _, k := range keys {
		args = append(args, k, []byte(values[k]))
	}

	q := `INSERT INTO metadata (key, value) VALUES ` + placeholders("(?, ?)", len(keys)) + `
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return models.StorageErrorf("failed to put metadata%v: %w", keys, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}

	q := `DELETE FROM metadata WHERE key IN (` + placeholders("?", len(keys)) + `)`
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return models.StorageErrorf("failed to delete metadata%v: %w", keys, err)
	}
	return nil
}

func placeholders(group string, n int) string {
	return strings.TrimSuffix(strings.Repeat(group+", ", n), ", ")
}
