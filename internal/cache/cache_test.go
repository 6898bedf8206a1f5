package cache

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/angelmondragon/skuexport/pkg/logger"
	"github.com/angelmondragon/skuexport/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	IDs   []int64 `json:"ids"`
	Found int     `json:"found"`
}

type failingStore struct {
	*MemoryStore
	getErr error
	setErr error
	sets   int
}

func (f *failingStore) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.MemoryStore.Get(ctx, key)
}

func (f *failingStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	return f.MemoryStore.Set(ctx, key, value, ttl)
}

func TestGetOrComputeCachesWithinTTL(t *testing.T) {
	c := New(NewMemoryStore(), nil, metrics.NewExportMetrics(prometheus.NewRegistry()))
	ctx := context.Background()

	calls := 0
	compute := func(context.Context) (payload, error) {
		calls++
		return payload{IDs: []int64{3, 1}, Found: 2}, nil
	}

	first, hit, err := GetOrCompute(ctx, c, metrics.CacheExport, "k", time.Minute, compute)
	require.NoError(t, err)
	assert.False(t, hit)

	second, hit, err := GetOrCompute(ctx, c, metrics.CacheExport, "k", time.Minute, compute)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestGetOrComputeRecomputesAfterExpiry(t *testing.T) {
	now := time.Now()
	store := NewMemoryStore()
	store.now = func() time.Time { return now }
	c := New(store, nil, nil)

	calls := 0
	compute := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	_, _, err := GetOrCompute(context.Background(), c, "test", "k", 5*time.Minute, compute)
	require.NoError(t, err)
	now = now.Add(5 * time.Minute)
	got, hit, err := GetOrCompute(context.Background(), c, "test", "k", 5*time.Minute, compute)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, got)
}

func TestGetOrComputeTreatsReadFailureAsMiss(t *testing.T) {
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: buf})
	store := &failingStore{MemoryStore: NewMemoryStore(), getErr: errors.New("redis down")}
	c := New(store, logg, nil)

	got, hit, err := GetOrCompute(context.Background(), c, "test", "k", time.Minute, func(context.Context) (string, error) {
		return "fresh", nil
	})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "fresh", got)
	assert.Contains(t, buf.String(), "cache.read_failed")
}

func TestGetOrComputeReturnsValueWhenWriteFails(t *testing.T) {
	store := &failingStore{MemoryStore: NewMemoryStore(), setErr: errors.New("read only replica")}
	c := New(store, nil, nil)

	got, _, err := GetOrCompute(context.Background(), c, "test", "k", time.Minute, func(context.Context) (string, error) {
		return "fresh", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", got)
	assert.Equal(t, 1, store.sets)
}

func TestGetOrComputeDoesNotCacheErrors(t *testing.T) {
	store := NewMemoryStore()
	c := New(store, nil, nil)

	_, _, err := GetOrCompute(context.Background(), c, "test", "k", time.Minute, func(context.Context) (string, error) {
		return "", errors.New("catalog unavailable")
	})
	require.Error(t, err)
	assert.Equal(t, 0, store.Len())
}

func TestGetOrComputeIgnoresUndecodablePayload(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), "k", []byte("not-json"), time.Minute))
	c := New(store, nil, nil)

	got, hit, err := GetOrCompute(context.Background(), c, "test", "k", time.Minute, func(context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 7, got)
}

func TestHashKeyIsDeterministic(t *testing.T) {
	a, err := HashKey("category", []string{"12", "7"}, true)
	require.NoError(t, err)
	b, err := HashKey("category", []string{"12", "7"}, true)
	require.NoError(t, err)
	c, err := HashKey("category", []string{"12", "7"}, false)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
