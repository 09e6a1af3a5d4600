package registry

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStatusCache(t *testing.T) *StatusCache {
	t.Helper()
	cache, err := NewStatusCache(filepath.Join(t.TempDir(), "status.json"))
	require.NoError(t, err)
	return cache
}

func TestStatusCacheSetGet(t *testing.T) {
	cache := newTestStatusCache(t)
	mod := time.Now().UTC()

	cache.Set("midnight", CachedStatus{
		Valid:      true,
		Components: 3,
		CheckedAt:  time.Now().UTC(),
		ModTime:    mod,
	})

	status, ok := cache.Get("midnight", mod)
	require.True(t, ok)
	assert.True(t, status.Valid)
	assert.Equal(t, 3, status.Components)
}

func TestStatusCacheMissOnNewerDocument(t *testing.T) {
	cache := newTestStatusCache(t)
	mod := time.Now().UTC()

	cache.Set("midnight", CachedStatus{Valid: true, ModTime: mod})

	_, ok := cache.Get("midnight", mod.Add(time.Minute))
	assert.False(t, ok, "a newer document revision invalidates the cached status")
}

func TestStatusCachePersists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "status.json")

	cache, err := NewStatusCache(path)
	require.NoError(t, err)
	mod := time.Now().UTC()
	cache.Set("midnight", CachedStatus{Valid: false, Error: "unknown reference", ModTime: mod})
	require.NoError(t, cache.Save())

	reloaded, err := NewStatusCache(path)
	require.NoError(t, err)
	status, ok := reloaded.Get("midnight", mod)
	require.True(t, ok)
	assert.False(t, status.Valid)
	assert.Equal(t, "unknown reference", status.Error)
}

func TestStatusCacheInvalidate(t *testing.T) {
	cache := newTestStatusCache(t)
	mod := time.Now().UTC()

	cache.Set("midnight", CachedStatus{Valid: true, ModTime: mod})
	cache.Set("ember", CachedStatus{Valid: true, ModTime: mod})

	cache.Invalidate("midnight")
	_, ok := cache.Get("midnight", mod)
	assert.False(t, ok)
	_, ok = cache.Get("ember", mod)
	assert.True(t, ok)

	cache.InvalidateAll()
	_, ok = cache.Get("ember", mod)
	assert.False(t, ok)
}
