package components

import (
	"fmt"
	"strings"
	"sync"

	"github.com/glazekit/glaze/internal/logger"
	"github.com/glazekit/glaze/internal/render"
	"github.com/glazekit/glaze/internal/theme"
)

// KitOptions configures a Kit. Zero values fall back to the stock theme, a
// fresh lipgloss renderer and a discarded log.
type KitOptions struct {
	Theme    *theme.Theme
	Renderer *render.Lipgloss
	Logger   *logger.Logger
	Context  theme.RenderContext
}

// Kit is the provider wiring of the demo library: the active theme, the
// render context, a resolution cache and the component definitions. Swapping
// the theme or the context invalidates cached resolutions on the next
// Resolve, since both feed the cache identity.
type Kit struct {
	mu       sync.RWMutex
	active   *theme.Theme
	ctx      theme.RenderContext
	cache    *theme.Cache
	renderer *render.Lipgloss
	defs     map[string]*theme.Definition
}

// NewKit creates a Kit with the Button, Card and Alert definitions
// registered.
func NewKit(opts KitOptions) *Kit {
	active := opts.Theme
	if active == nil {
		active = DefaultTheme()
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = render.NewLipgloss()
	}

	k := &Kit{
		active:   active,
		ctx:      opts.Context,
		renderer: renderer,
		cache:    theme.NewCache(renderer, opts.Logger),
		defs:     make(map[string]*theme.Definition),
	}
	for _, def := range []*theme.Definition{
		ButtonDefinition(),
		CardDefinition(),
		AlertDefinition(),
	} {
		k.defs[def.Name()] = def
	}
	return k
}

// SetTheme swaps the active theme.
func (k *Kit) SetTheme(t *theme.Theme) {
	k.mu.Lock()
	k.active = t
	k.mu.Unlock()
}

// Theme returns the active theme.
func (k *Kit) Theme() *theme.Theme {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.active
}

// SetContext swaps the render context.
func (k *Kit) SetContext(ctx theme.RenderContext) {
	k.mu.Lock()
	k.ctx = ctx
	k.mu.Unlock()
}

// Context returns the active render context.
func (k *Kit) Context() theme.RenderContext {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.ctx
}

// Register adds or replaces a component definition.
func (k *Kit) Register(def *theme.Definition) {
	k.mu.Lock()
	k.defs[def.Name()] = def
	k.mu.Unlock()
}

// Definition looks up a registered definition by component name.
func (k *Kit) Definition(name string) (*theme.Definition, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	def, ok := k.defs[name]
	return def, ok
}

// ComponentNames lists the registered components.
func (k *Kit) ComponentNames() []string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	names := make([]string, 0, len(k.defs))
	for name := range k.defs {
		names = append(names, name)
	}
	return names
}

// Resolve runs a cached resolution for one component instance under the
// active theme and context.
func (k *Kit) Resolve(instanceKey, component string, props theme.Props, overrides *theme.Overrides) (*theme.CacheEntry, error) {
	k.mu.RLock()
	def, ok := k.defs[component]
	active := k.active
	ctx := k.ctx
	k.mu.RUnlock()
	if !ok {
		return nil, &theme.ResolutionError{
			Code:    theme.ErrCodeUnknownComponent,
			Message: fmt.Sprintf("no definition registered for component %q", component),
			Context: map[string]any{"component": component},
		}
	}
	return k.cache.Resolve(instanceKey, def, active, props, overrides, ctx)
}

// Release drops the cached resolution for a disposed instance.
func (k *Kit) Release(instanceKey string) {
	k.cache.Release(instanceKey)
}

// Button renders a button label through the engine.
func (k *Kit) Button(instanceKey, label string, props theme.Props) (string, error) {
	entry, err := k.Resolve(instanceKey, "Button", props, nil)
	if err != nil {
		return "", err
	}
	return k.renderer.Apply(entry.Classes["root"], label), nil
}

// Card renders a titled card. An empty title leaves the title slot out.
func (k *Kit) Card(instanceKey, title, body string, props theme.Props) (string, error) {
	entry, err := k.Resolve(instanceKey, "Card", props, nil)
	if err != nil {
		return "", err
	}

	var lines []string
	if title != "" {
		lines = append(lines, k.renderer.Apply(entry.Classes["title"], title))
	}
	if body != "" {
		lines = append(lines, k.renderer.Apply(entry.Classes["body"], body))
	}
	return k.renderer.Apply(entry.Classes["root"], strings.Join(lines, "\n")), nil
}

// Alert renders a message with an optional title.
func (k *Kit) Alert(instanceKey, title, message string, props theme.Props) (string, error) {
	entry, err := k.Resolve(instanceKey, "Alert", props, nil)
	if err != nil {
		return "", err
	}

	var lines []string
	if title != "" {
		lines = append(lines, k.renderer.Apply(entry.Classes["title"], title))
	}
	if message != "" {
		lines = append(lines, message)
	}
	return k.renderer.Apply(entry.Classes["root"], strings.Join(lines, "\n")), nil
}
