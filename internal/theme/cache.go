package theme

import (
	"sync"

	"github.com/glazekit/glaze/internal/logger"
	"github.com/glazekit/glaze/internal/merge"
)

// Renderer turns a compiled style object into an opaque class name. The
// cache treats it as a black box; the lipgloss-backed implementation lives in
// internal/render.
type Renderer interface {
	Render(slot string, style *merge.Value) string
}

// CacheEntry is the memoized result of one resolution: the resolved
// variables, the compiled per-slot styles and the rendered class names.
// Entries are immutable; the cache replaces them wholesale, never patches
// them in place.
type CacheEntry struct {
	identity identity
	// Variables is the flat resolved token mapping.
	Variables *merge.Value
	// Styles maps slot names to compiled style objects.
	Styles map[string]*merge.Value
	// Classes maps slot names to renderer class names.
	Classes map[string]string
}

// identity is the tuple of input ids a cached entry is valid for. Any single
// change invalidates the whole entry; there is no partial reuse.
type identity struct {
	defVersion       uint64
	themeVersion     uint64
	overridesVersion uint64
	propsSignature   string
	direction        Direction
	animationsOff    bool
}

// Cache memoizes resolutions per component instance. It is safe for
// concurrent readers and for recursive resolution: entries are written as
// whole values under the lock and no resolution state is shared between
// instance keys.
type Cache struct {
	mu       sync.RWMutex
	renderer Renderer
	log      *logger.Logger
	entries  map[string]*CacheEntry

	fallback    *Theme
	warnNoTheme sync.Once
}

// NewCache creates a resolution cache backed by the given renderer. Both
// arguments may be nil: without a renderer entries carry no classes, and a
// nil logger discards the missing-theme warning.
func NewCache(renderer Renderer, log *logger.Logger) *Cache {
	return &Cache{
		renderer: renderer,
		log:      log,
		entries:  make(map[string]*CacheEntry),
		fallback: Empty(),
	}
}

// Resolve returns the memoized entry for instanceKey while every tracked
// input identity is unchanged, and recomputes otherwise. A nil theme falls
// back to an empty theme with a single warning for the cache's lifetime.
// Errors are surfaced and never cached; a previous valid entry for the key
// is evicted first so a failed resolution cannot leave stale results behind.
func (c *Cache) Resolve(instanceKey string, def *Definition, t *Theme, props Props, overrides *Overrides, ctx RenderContext) (*CacheEntry, error) {
	if t == nil {
		c.warnNoTheme.Do(func() {
			c.log.Warn("resolution requested without an active theme; using empty fallback")
		})
		t = c.fallback
	}

	id := identity{
		defVersion:       def.version,
		themeVersion:     t.version,
		overridesVersion: overrides.Version(),
		propsSignature:   variantSignature(def.variants, props),
		direction:        ctx.Direction,
		animationsOff:    ctx.AnimationsDisabled,
	}

	c.mu.RLock()
	entry, ok := c.entries[instanceKey]
	c.mu.RUnlock()
	if ok && entry.identity == id {
		return entry, nil
	}

	vars, styles, err := ResolveForComponent(t, def, props, overrides, ctx)
	if err != nil {
		c.mu.Lock()
		delete(c.entries, instanceKey)
		c.mu.Unlock()
		return nil, err
	}

	classes := make(map[string]string, len(styles))
	if c.renderer != nil {
		for slot, style := range styles {
			classes[slot] = c.renderer.Render(slot, style)
		}
	}

	fresh := &CacheEntry{
		identity:  id,
		Variables: vars,
		Styles:    styles,
		Classes:   classes,
	}

	c.mu.Lock()
	c.entries[instanceKey] = fresh
	c.mu.Unlock()
	return fresh, nil
}

// Release drops the entry for a disposed instance.
func (c *Cache) Release(instanceKey string) {
	c.mu.Lock()
	delete(c.entries, instanceKey)
	c.mu.Unlock()
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
