package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by stores when a key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Store persists opaque cache payloads with a TTL.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
	ExportKey(hash string) string
	OptionsKey(kind string) string
}
