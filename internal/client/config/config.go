package config

import "time"

// Config holds runtime settings for the finkeeper CLI.
//
// Units: every interval is a time.Duration (e.g., 3*time.Second).
type Config struct {
	ServerURL  string `envconfig:"SERVER_URL"`
	HealthAddr string `envconfig:"HEALTH_ADDR"`
	DBPath     string `envconfig:"DB_PATH"`

	OnlineCheckInterval time.Duration `envconfig:"ONLINE_CHECK_INTERVAL"`
	SyncInterval        time.Duration `envconfig:"SYNC_INTERVAL"`
	RequestTimeout      time.Duration `envconfig:"REQUEST_TIMEOUT"`

	RetryBaseDelay time.Duration `envconfig:"RETRY_BASE_DELAY"`
	RetryMaxDelay  time.Duration `envconfig:"RETRY_MAX_DELAY"`
	MaxAttempts    int           `envconfig:"MAX_ATTEMPTS"`

	LogLevel string `envconfig:"LOG_LEVEL"`

	S3Bucket    string `envconfig:"S3_BUCKET"`
	S3Prefix    string `envconfig:"S3_PREFIX"`
	S3Region    string `envconfig:"S3_REGION"`
	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey string `envconfig:"S3_SECRET_KEY"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.HealthAddr = "127.0.0.1:50051"
	c.DBPath = "finkeeper.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.SyncInterval = 30 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.RetryBaseDelay = 2 * time.Second
	c.RetryMaxDelay = 5 * time.Minute
	c.MaxAttempts = 8
	c.LogLevel = "info"
	c.S3Region = "us-east-1"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
