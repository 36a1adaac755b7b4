package metadata

import (
	"context"
)

// Repository is a small key/value store for client-side state that is not an
// entity of its own: session tokens, the installation id, the last sync time.
type Repository interface {
	// Get returns the value for key, or nil when the key is unset.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
