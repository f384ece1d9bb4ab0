package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by implementations that surface misses as
// errors; Store reports misses through the bool return instead.
var ErrCacheMiss = errors.New("cache: key not found")

// Store is a byte-oriented cache with per-key TTLs. A miss is
// (nil, false, nil); errors are reserved for backend failures.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
