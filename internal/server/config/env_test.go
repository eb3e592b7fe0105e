package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("overlays set variables only", func(t *testing.T) {
		os.Args = []string{"testbin"}
		t.Chdir(t.TempDir())
		t.Setenv("FINKEEPER_SERVER_ACCESS_TOKEN_TTL", "90m")

		cfg := &Config{HTTPAddr: ":1"}
		parseEnv(cfg)

		assert.Equal(t, ":1", cfg.HTTPAddr)
		assert.Equal(t, 90*time.Minute, cfg.AccessTokenValidityDuration)
	})

	t.Run("loads dotenv file from flag", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "server.env")
		require.NoError(t, os.WriteFile(path, []byte("FINKEEPER_SERVER_DATABASE_DSN=postgres://file\n"), 0o600))
		t.Cleanup(func() { _ = os.Unsetenv("FINKEEPER_SERVER_DATABASE_DSN") })

		os.Args = []string{"testbin", "-env", path}

		cfg := &Config{}
		parseEnv(cfg)
		assert.Equal(t, "postgres://file", cfg.DatabaseDSN)
	})

	t.Run("malformed value panics", func(t *testing.T) {
		os.Args = []string{"testbin"}
		t.Chdir(t.TempDir())
		t.Setenv("FINKEEPER_SERVER_ACCESS_TOKEN_TTL", "forever")
		require.Panics(t, func() { parseEnv(&Config{}) })
	})
}
