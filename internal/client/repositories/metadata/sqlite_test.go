package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func count(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM metadata`).Scan(&n))
	return n
}

func TestPutAndGet(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, map[string]string{"access_token": "jwt", "username": "alice"}))

	v, err := r.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.Equal(t, "jwt", v)

	v, err = r.Get(ctx, "username")
	require.NoError(t, err)
	assert.Equal(t, "alice", v)
}

func TestGet_Absent_ReturnsEmpty(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestPut_UpsertOverwritesValue(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, map[string]string{"k": "old"}))
	require.NoError(t, r.Put(ctx, map[string]string{"k": "new"}))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "new", v)
	assert.Equal(t, 1, count(t, db))
}

func TestPut_EmptyIsNoop(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, NewSQLiteRepository(db).Put(context.Background(), nil))
	assert.Zero(t, count(t, db))
}

func TestDelete_RemovesOnlyNamedKeys_AndIsIdempotent(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, map[string]string{"a": "1", "b": "2", "keep": "3"}))
	require.NoError(t, r.Delete(ctx, "a", "b", "never-set"))

	assert.Equal(t, 1, count(t, db))
	v, err := r.Get(ctx, "keep")
	require.NoError(t, err)
	assert.Equal(t, "3", v)

	// deleting again is a no-op
	require.NoError(t, r.Delete(ctx, "a", "b"))
	require.NoError(t, r.Delete(ctx))
}

func TestDBErrorsAreStorageErrors(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get metadata[k]")
	var se *models.StorageError
	require.ErrorAs(t, err, &se)

	err = r.Put(ctx, map[string]string{"k": "v"})
	require.ErrorContains(t, err, "failed to put metadata[k]")
	require.ErrorAs(t, err, &se)

	err = r.Delete(ctx, "k", "j")
	require.ErrorContains(t, err, "failed to delete metadata[k j]")
	require.ErrorAs(t, err, &se)
}
