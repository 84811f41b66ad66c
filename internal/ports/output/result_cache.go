package output

import (
	"context"
	"time"
)

// ResultCache interface - Output port
// Stores serialized upstream results for a bounded time
type ResultCache interface {
	// Get returns the cached value and whether it was present
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value that expires after ttl
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
