package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/finkeeper/internal/client/client"
	"github.com/dmitrijs2005/finkeeper/internal/dbx"
	"github.com/stretchr/testify/require"
)

// setupDB returns a migrated in-memory database private to the test.
func setupDB(t *testing.T) *dbx.Handle {
	t.Helper()
	h, err := client.InitDatabase(context.Background(), "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func getMeta(t *testing.T, h *dbx.Handle, k string) []byte {
	t.Helper()
	var v []byte
	err := h.DB().QueryRow(`SELECT value FROM metadata WHERE key=?`, k).Scan(&v)
	require.NoError(t, err)
	return v
}

func insertMeta(t *testing.T, h *dbx.Handle, k string, v []byte) {
	t.Helper()
	_, err := h.DB().Exec(`INSERT INTO metadata(key,value) VALUES(?,?)`, k, v)
	require.NoError(t, err)
}
