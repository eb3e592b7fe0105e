// Package config loads runtime configuration for the finkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables prefixed with FINKEEPER_ (see parseEnv), with an
//     optional dotenv file given by -env or found at ./.env.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST API
//	-g string   host:port of the backend gRPC health endpoint
//	-d string   local SQLite database path
//	-i int      online status check interval (seconds)
//	-s int      background sync interval (seconds)
//	-l string   log level
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "health_addr": "127.0.0.1:50051",
//	  "db_path": "finkeeper.db",
//	  "online_check_interval": "3s",
//	  "sync_interval": "30s",
//	  "retry_base_delay": "2s",
//	  "max_attempts": 8,
//	  "s3_bucket": "finkeeper-backups"
//	}
//
// # Environment
//
//	FINKEEPER_SERVER_URL, FINKEEPER_HEALTH_ADDR, FINKEEPER_DB_PATH,
//	FINKEEPER_SYNC_INTERVAL, FINKEEPER_MAX_ATTEMPTS, FINKEEPER_S3_BUCKET, ...
//
// Each Config field's envconfig tag gives the suffix.
package config
