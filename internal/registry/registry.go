package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/glazekit/glaze/internal/config"
	"github.com/glazekit/glaze/internal/logger"
	"github.com/glazekit/glaze/internal/theme"
	glazeerrors "github.com/glazekit/glaze/pkg/errors"
)

const indexVersion = "1.0"

// Registry manages the index of installed themes.
type Registry struct {
	path   string
	loader *config.Loader
	log    *logger.Logger

	mu      sync.RWMutex
	version string
	themes  []Entry
}

// NewRegistry creates a Registry backed by the index file at path and loads
// it from disk. A missing index starts the registry empty.
func NewRegistry(path string, loader *config.Loader, log *logger.Logger) (*Registry, error) {
	if loader == nil {
		loader = config.NewLoader(log)
	}
	r := &Registry{
		path:    path,
		loader:  loader,
		log:     log.WithComponent("registry"),
		version: indexVersion,
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create registry directory: %w", err)
	}

	if err := r.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		r.themes = []Entry{}
	}

	return r, nil
}

// Load reads the index from disk.
func (r *Registry) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		return err
	}

	var file indexFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse registry index: %w", err)
	}

	r.version = file.Version
	r.themes = file.Themes

	return nil
}

// Save writes the index to disk atomically.
func (r *Registry) Save() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	file := indexFile{
		Version: r.version,
		Themes:  r.themes,
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry index: %w", err)
	}

	tmpPath := r.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, r.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// List returns all installed themes.
func (r *Registry) List() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Entry, len(r.themes))
	copy(result, r.themes)
	return result
}

// Get retrieves an installed theme by ID.
func (r *Registry) Get(id string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.themes {
		if e.ID == id {
			return e, nil
		}
	}

	return Entry{}, glazeerrors.NewNotFoundError(id)
}

// AddLocal registers a theme document from disk. The document is parsed and
// validated before it enters the index, and the theme's declared name becomes
// the entry ID.
func (r *Registry) AddLocal(path string) (Entry, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Entry{}, fmt.Errorf("resolving theme path: %w", err)
	}

	th, err := r.loader.Load(abs)
	if err != nil {
		return Entry{}, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return Entry{}, fmt.Errorf("cannot access theme document: %w", err)
	}

	entry := Entry{
		ID:      th.Name(),
		Name:    th.Name(),
		Path:    abs,
		Source:  SourceLocal,
		AddedAt: time.Now().UTC(),
		ModTime: info.ModTime().UTC(),
	}
	if err := r.add(entry); err != nil {
		return Entry{}, err
	}

	r.log.WithFields(map[string]any{"theme": entry.ID, "path": abs}).
		Info("theme registered")
	return entry, nil
}

func (r *Registry) add(entry Entry) error {
	if err := ValidateThemeID(entry.ID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.themes {
		if existing.ID == entry.ID {
			return fmt.Errorf("theme %q is already installed", entry.ID)
		}
	}

	r.themes = append(r.themes, entry)
	return nil
}

// Update replaces an existing entry.
func (r *Registry) Update(entry Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.themes {
		if existing.ID == entry.ID {
			r.themes[i] = entry
			return nil
		}
	}

	return glazeerrors.NewNotFoundError(entry.ID)
}

// Remove drops a theme from the index. The document itself is left on disk.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.themes {
		if e.ID == id {
			r.themes = append(r.themes[:i], r.themes[i+1:]...)
			return nil
		}
	}

	return glazeerrors.NewNotFoundError(id)
}

// Stale reports whether the document behind an entry changed since it was
// registered, comparing modification times only. A document that vanished
// counts as stale.
func (r *Registry) Stale(id string) (bool, error) {
	entry, err := r.Get(id)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(entry.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, err
	}

	return info.ModTime().UTC().After(entry.ModTime), nil
}

// LoadTheme parses the document behind an installed theme. When the document
// changed on disk the entry's cached ModTime is refreshed.
func (r *Registry) LoadTheme(id string) (*theme.Theme, error) {
	entry, err := r.Get(id)
	if err != nil {
		return nil, err
	}

	th, err := r.loader.Load(entry.Path)
	if err != nil {
		return nil, glazeerrors.NewSourceError(entry.Path, err)
	}

	if info, statErr := os.Stat(entry.Path); statErr == nil {
		if mod := info.ModTime().UTC(); mod.After(entry.ModTime) {
			entry.ModTime = mod
			if err := r.Update(entry); err != nil {
				return nil, err
			}
		}
	}

	return th, nil
}
