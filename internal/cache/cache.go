package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/skuexport/pkg/logger"
	"github.com/angelmondragon/skuexport/pkg/metrics"
)

// Cache couples a Store with the logging and metrics used on every lookup.
type Cache struct {
	store   Store
	logg    *logger.Logger
	metrics *metrics.ExportMetrics
}

// New builds a Cache around store. logg and m may be nil.
func New(store Store, logg *logger.Logger, m *metrics.ExportMetrics) *Cache {
	return &Cache{store: store, logg: logg, metrics: m}
}

// Store exposes the backing store for key building and health checks.
func (c *Cache) Store() Store {
	return c.store
}

// GetOrCompute returns the cached value for key or runs compute and stores its result
// for ttl. Read failures count as misses; write failures are logged and the computed
// value is still returned. Concurrent misses may each compute; the last write wins.
func GetOrCompute[T any](ctx context.Context, c *Cache, name, key string, ttl time.Duration, compute func(context.Context) (T, error)) (T, bool, error) {
	ctx = c.withKey(ctx, key)

	raw, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		var cached T
		decodeErr := json.Unmarshal(raw, &cached)
		if decodeErr == nil {
			c.metrics.IncCacheLookup(name, true)
			c.info(ctx, "cache.hit")
			return cached, true, nil
		}
		c.warn(ctx, "cache.decode_failed", decodeErr)
	case !errors.Is(err, ErrMiss):
		c.warn(ctx, "cache.read_failed", err)
	}

	c.metrics.IncCacheLookup(name, false)
	c.info(ctx, "cache.miss")

	value, err := compute(ctx)
	if err != nil {
		var zero T
		return zero, false, err
	}

	payload, err := json.Marshal(value)
	if err != nil {
		c.warn(ctx, "cache.encode_failed", err)
		return value, false, nil
	}
	if err := c.store.Set(ctx, key, payload, ttl); err != nil {
		c.warn(ctx, "cache.write_failed", err)
	}
	return value, false, nil
}

// HashKey derives a deterministic hex digest from the JSON encoding of parts.
func HashKey(parts ...any) (string, error) {
	payload, err := json.Marshal(parts)
	if err != nil {
		return "", fmt.Errorf("encoding cache key: %w", err)
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

func (c *Cache) withKey(ctx context.Context, key string) context.Context {
	if c.logg == nil {
		return ctx
	}
	return c.logg.WithField(ctx, "cache_key", key)
}

func (c *Cache) info(ctx context.Context, msg string) {
	if c.logg != nil {
		c.logg.Info(ctx, msg)
	}
}

func (c *Cache) warn(ctx context.Context, msg string, err error) {
	if c.logg == nil {
		return
	}
	c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), msg)
}
