package metadata

import (
	"context"
)

// Repository is a small key/value table for client state that is not an
// entity, such as the session token and the signed-in user name.
type Repository interface {
	// Get returns "" for an absent key.
	Get(ctx context.Context, key string) (string, error)
	// Put upserts every pair in one statement.
	Put(ctx context.Context, values map[string]string) error
	// Delete removes the keys; absent keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}
