package syncstate

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/dbx"
	"github.com/dmitrijs2005/finkeeper/internal/timex"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const selectColumns = `SELECT kind, local_id, remote_id, op, state, attempts,
	next_attempt_at, last_error, revision, updated_at FROM sync_records`

func (r *SQLiteRepository) Get(ctx context.Context, kind models.Kind, localID int64) (*models.SyncRecord, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` WHERE kind = ? AND local_id = ?`, kind, localID)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, models.StorageErrorf("failed to get sync record[%s/%d]: %w", kind, localID, err)
	}
	return rec, nil
}

func (r *SQLiteRepository) Put(ctx context.Context, rec *models.SyncRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sync_records (kind, local_id, remote_id, op, state, attempts,
			next_attempt_at, last_error, revision, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(kind, local_id) DO UPDATE SET
			remote_id = excluded.remote_id,
			op = excluded.op,
			state = excluded.state,
			attempts = excluded.attempts,
			next_attempt_at = excluded.next_attempt_at,
			last_error = excluded.last_error,
			revision = excluded.revision,
			updated_at = excluded.updated_at
	`, rec.Kind, rec.LocalID, rec.RemoteID, rec.Op, rec.State, rec.Attempts,
		timex.UnixMilli(rec.NextAttemptAt), rec.LastError, rec.Revision, timex.UnixMilli(rec.UpdatedAt))
	if err != nil {
		return models.StorageErrorf("failed to put sync record[%s/%d]: %w", rec.Kind, rec.LocalID, err)
	}
	return nil
}

func (r *SQLiteRepository) CompareAndPut(ctx context.Context, rec *models.SyncRecord) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE sync_records SET
			remote_id = ?, op = ?, state = ?, attempts = ?,
			next_attempt_at = ?, last_error = ?, updated_at = ?
		WHERE kind = ? AND local_id = ? AND revision = ?
	`, rec.RemoteID, rec.Op, rec.State, rec.Attempts, timex.UnixMilli(rec.NextAttemptAt),
		rec.LastError, timex.UnixMilli(rec.UpdatedAt), rec.Kind, rec.LocalID, rec.Revision)
	if err != nil {
		return false, models.StorageErrorf("failed to update sync record[%s/%d]: %w", rec.Kind, rec.LocalID, err)
	}
	return affectedOne(res, rec.Kind, rec.LocalID)
}

func (r *SQLiteRepository) CompareAndDelete(ctx context.Context, kind models.Kind, localID, revision int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM sync_records WHERE kind = ? AND local_id = ? AND revision = ?`, kind, localID, revision)
	if err != nil {
		return false, models.StorageErrorf("failed to delete sync record[%s/%d]: %w", kind, localID, err)
	}
	return affectedOne(res, kind, localID)
}

func (r *SQLiteRepository) Delete(ctx context.Context, kind models.Kind, localID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sync_records WHERE kind = ? AND local_id = ?`, kind, localID)
	if err != nil {
		return models.StorageErrorf("failed to delete sync record[%s/%d]: %w", kind, localID, err)
	}
	return nil
}

func (r *SQLiteRepository) ListDue(ctx context.Context, now time.Time, limit int, kinds ...models.Kind) ([]models.SyncRecord, error) {
	args := []any{models.SyncPending, models.SyncFailed, timex.UnixMilli(now)}
	kindFilter := ""
	if len(kinds) > 0 {
		kindFilter = ` AND kind IN (` + strings.TrimSuffix(strings.Repeat("?, ", len(kinds)), ", ") + `)`
		for _, k := range kinds {
			args = append(args, k)
		}
	}
	args = append(args, limit)

	return r.query(ctx, "list due sync records", selectColumns+`
		WHERE (state = ? OR (state = ? AND next_attempt_at <= ?))`+kindFilter+`
		ORDER BY updated_at, kind, local_id
		LIMIT ?`, args...)
}

func (r *SQLiteRepository) List(ctx context.Context, kind models.Kind) ([]models.SyncRecord, error) {
	if kind == "" {
		return r.query(ctx, "list sync records", selectColumns+` ORDER BY kind, local_id`)
	}
	return r.query(ctx, "list sync records", selectColumns+` WHERE kind = ? ORDER BY local_id`, kind)
}

func (r *SQLiteRepository) CountByState(ctx context.Context) (map[models.SyncState]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT state, COUNT(*) FROM sync_records GROUP BY state`)
	if err != nil {
		return nil, models.StorageErrorf("failed to count sync records: %w", err)
	}
	defer rows.Close()

	result := make(map[models.SyncState]int)
	for rows.Next() {
		var (
			state models.SyncState
			n     int
		)
		if err := rows.Scan(&state, &n); err != nil {
			return nil, models.StorageErrorf("failed to scan sync record count: %w", err)
		}
		result[state] = n
	}
	if err := rows.Err(); err != nil {
		return nil, models.StorageErrorf("failed to iterate sync record counts: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) query(ctx context.Context, what, query string, args ...any) ([]models.SyncRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, models.StorageErrorf("failed to %s: %w", what, err)
	}
	defer rows.Close()

	result := make([]models.SyncRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, models.StorageErrorf("failed to %s: %w", what, err)
		}
		result = append(result, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, models.StorageErrorf("failed to %s: %w", what, err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*models.SyncRecord, error) {
	var (
		rec         models.SyncRecord
		nextAttempt int64
		updatedAt   int64
	)
	err := row.Scan(&rec.Kind, &rec.LocalID, &rec.RemoteID, &rec.Op, &rec.State, &rec.Attempts,
		&nextAttempt, &rec.LastError, &rec.Revision, &updatedAt)
	if err != nil {
		return nil, err
	}
	rec.NextAttemptAt = timex.FromUnixMilli(nextAttempt)
	rec.UpdatedAt = timex.FromUnixMilli(updatedAt)
	return &rec, nil
}

func affectedOne(res sql.Result, kind models.Kind, localID int64) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, models.StorageErrorf("failed to get rows affected for sync record[%s/%d]: %w", kind, localID, err)
	}
	return n == 1, nil
}
