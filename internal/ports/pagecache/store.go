package pagecache

import (
	"context"
	"time"
)

// Store is a key-value store with per-entry time-to-live used to memoize
// rendered pages. A miss is (nil, false, nil).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Flush drops every entry.
	Flush(ctx context.Context) error
}
