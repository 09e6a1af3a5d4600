package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// CachedStatus records the last validation outcome for an installed theme.
// ModTime pins the outcome to the document revision it was computed from.
type CachedStatus struct {
	Valid      bool      `json:"valid"`
	Error      string    `json:"error,omitempty"`
	Components int       `json:"components"`
	CheckedAt  time.Time `json:"checked_at"`
	ModTime    time.Time `json:"mod_time"`
}

// statusCacheFile is the JSON file format for the status cache.
type statusCacheFile struct {
	Version  string                  `json:"version"`
	Statuses map[string]CachedStatus `json:"statuses"`
}

// StatusCache persists validation outcomes between sessions so listing
// themes does not reparse every document.
type StatusCache struct {
	path     string
	mu       sync.RWMutex
	version  string
	statuses map[string]CachedStatus
}

// NewStatusCache creates a StatusCache instance and loads it from disk.
func NewStatusCache(path string) (*StatusCache, error) {
	c := &StatusCache{
		path:     path,
		version:  indexVersion,
		statuses: make(map[string]CachedStatus),
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	if err := c.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	return c, nil
}

// Load reads the cache from disk.
func (c *StatusCache) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path)
	if err != nil {
		return err
	}

	var file statusCacheFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse cache: %w", err)
	}

	c.version = file.Version
	c.statuses = file.Statuses
	if c.statuses == nil {
		c.statuses = make(map[string]CachedStatus)
	}

	return nil
}

// Save writes the cache to disk atomically.
func (c *StatusCache) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	file := statusCacheFile{
		Version:  c.version,
		Statuses: c.statuses,
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	tmpPath := c.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, c.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// Get retrieves the cached status for a theme. The second return is false
// when no status is cached or the cached one is pinned to an older document
// revision than modTime.
func (c *StatusCache) Get(themeID string, modTime time.Time) (CachedStatus, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	status, ok := c.statuses[themeID]
	if !ok {
		return CachedStatus{}, false
	}
	if modTime.After(status.ModTime) {
		return CachedStatus{}, false
	}
	return status, true
}

// Set updates the cached status for a theme.
func (c *StatusCache) Set(themeID string, status CachedStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.statuses[themeID] = status
}

// Invalidate removes the cached status for a theme.
func (c *StatusCache) Invalidate(themeID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.statuses, themeID)
}

// InvalidateAll removes every cached status.
func (c *StatusCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.statuses = make(map[string]CachedStatus)
}
