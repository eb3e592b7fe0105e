package config

import (
	"os"

	"github.com/dmitrijs2005/finkeeper/internal/flagx"
	"github.com/dmitrijs2005/finkeeper/internal/timex"
	json "github.com/goccy/go-json"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "1s" and integer nanoseconds. Absent keys are nil
// and leave the current value alone.
type JsonConfig struct {
	HTTPAddr                    *string         `json:"http_addr"`
	HealthAddr                  *string         `json:"health_addr"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	CORSOrigins                 []string        `json:"cors_origins"`
	LogLevel                    *string         `json:"log_level"`
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// parseJson loads configuration values from the JSON file named with -c or
// -config. Without the flag nothing is loaded. If the file cannot be read or
// contains invalid JSON, the function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.HealthAddr, c.HealthAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.CORSOrigins != nil {
		config.CORSOrigins = c.CORSOrigins
	}
	setString(&config.LogLevel, c.LogLevel)
}
