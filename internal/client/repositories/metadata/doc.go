// Package metadata stores client key/value state in the local SQLite file.
// All failures are *models.StorageError.
package metadata
