package models

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNoSession is returned before any network I/O when a protected call
	// is attempted without a stored access token.
	ErrNoSession = errors.New("no active session")

	// ErrSyncAbandoned marks a record that ran out of retries.
	ErrSyncAbandoned = errors.New("sync abandoned")
)

// StorageError is a local persistence failure. It is always returned to the
// caller of the failing operation.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return "storage error: " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

// StorageErrorf formats an error and wraps it in a StorageError.
func StorageErrorf(format string, args ...any) error {
	return &StorageError{Err: fmt.Errorf(format, args...)}
}

// ValidationError rejects a malformed entity before persistence.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s %s", e.Field, e.Reason)
}

// NetworkError is any failed remote call. Status is 0 when no HTTP response
// was received.
type NetworkError struct {
	Status  int
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	switch {
	case e.Status == 0 && e.Err != nil:
		return "network error: " + e.Err.Error()
	case e.Message != "":
		return fmt.Sprintf("network error: status %d: %s", e.Status, e.Message)
	default:
		return fmt.Sprintf("network error: status %d", e.Status)
	}
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Retryable reports whether repeating the same call may succeed.
func (e *NetworkError) Retryable() bool {
	switch {
	case e.Status == 0:
		return true
	case e.Status == http.StatusUnauthorized,
		e.Status == http.StatusRequestTimeout,
		e.Status == http.StatusTooManyRequests:
		return true
	case e.Status >= 500:
		return true
	default:
		return false
	}
}
