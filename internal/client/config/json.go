package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/flagx"
	"github.com/dmitrijs2005/finkeeper/internal/timex"
	json "github.com/goccy/go-json"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds. Pointer fields tell an absent
// key from an explicit zero; only present keys are copied into Config.
type JsonConfig struct {
	ServerURL           *string         `json:"server_url"`
	HealthAddr          *string         `json:"health_addr"`
	DBPath              *string         `json:"db_path"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	SyncInterval        *timex.Duration `json:"sync_interval"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	RetryBaseDelay      *timex.Duration `json:"retry_base_delay"`
	RetryMaxDelay       *timex.Duration `json:"retry_max_delay"`
	MaxAttempts         *int            `json:"max_attempts"`
	LogLevel            *string         `json:"log_level"`
	S3Bucket            *string         `json:"s3_bucket"`
	S3Prefix            *string         `json:"s3_prefix"`
	S3Region            *string         `json:"s3_region"`
	S3Endpoint          *string         `json:"s3_endpoint"`
	S3AccessKey         *string         `json:"s3_access_key"`
	S3SecretKey         *string         `json:"s3_secret_key"`
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setDuration(dst *time.Duration, src *timex.Duration) {
	if src != nil {
		*dst = src.Duration
	}
}

// parseJson overlays Config with values loaded from a JSON file given with
// -c or -config. Without the flag nothing is loaded. Read or decode errors
// panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.ServerURL, jc.ServerURL)
	setString(&cfg.HealthAddr, jc.HealthAddr)
	setString(&cfg.DBPath, jc.DBPath)
	setDuration(&cfg.OnlineCheckInterval, jc.OnlineCheckInterval)
	setDuration(&cfg.SyncInterval, jc.SyncInterval)
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout)
	setDuration(&cfg.RetryBaseDelay, jc.RetryBaseDelay)
	setDuration(&cfg.RetryMaxDelay, jc.RetryMaxDelay)
	if jc.MaxAttempts != nil {
		cfg.MaxAttempts = *jc.MaxAttempts
	}
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Prefix, jc.S3Prefix)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Endpoint, jc.S3Endpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
}
