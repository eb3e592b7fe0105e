package config

import (
	"errors"
	"io/fs"

	"github.com/dmitrijs2005/finkeeper/internal/flagx"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable, e.g. FINKEEPER_SERVER_URL.
const EnvPrefix = "FINKEEPER"

// parseEnv overlays Config with FINKEEPER_* environment variables. Variables
// that are unset leave the current value alone.
//
// A dotenv file named with -env is loaded first and must exist; otherwise an
// optional ./.env is picked up. Variables already set in the process win
// over the file.
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
