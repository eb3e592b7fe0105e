package config

import (
	"errors"
	"io/fs"

	"github.com/dmitrijs2005/finkeeper/internal/flagx"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces server variables, e.g. FINKEEPER_SERVER_DATABASE_DSN.
const EnvPrefix = "FINKEEPER_SERVER"

// parseEnv overlays Config with FINKEEPER_SERVER_* variables, loading the
// dotenv file named with -env (or an optional ./.env) first.
func parseEnv(cfg *Config) {
	if path := flagx.EnvFileFlag(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		panic(err)
	}
}
