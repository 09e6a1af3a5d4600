// Package theme implements layered theme resolution: token specs, variant
// selection, theme merging and the per-instance resolution cache. Themes and
// component definitions are immutable once constructed; merging always
// produces new values.
package theme

import (
	"sort"
	"sync/atomic"

	"github.com/glazekit/glaze/internal/merge"
)

// versionCounter hands out identity ids for themes, definitions and override
// sets. The resolution cache keys on these ids instead of raw pointers, which
// gives unchanged-by-identity semantics without comparing references.
var versionCounter atomic.Uint64

func nextVersion() uint64 { return versionCounter.Add(1) }

// ComponentTheme is a theme's per-component contribution: token specs that
// override the component's defaults, and per-slot style functions layered
// over the component's own.
type ComponentTheme struct {
	Variables map[string]TokenSpec
	Styles    Styles
}

// componentLayers is the internal form of a component contribution; style
// functions are kept as stacks so repeated merging composes instead of
// replacing.
type componentLayers struct {
	variables map[string]TokenSpec
	styles    map[string][]SlotStyleFunc
}

// Theme is an immutable stack of site variables and per-component
// contributions. A new Theme is produced by merging, never by mutation.
type Theme struct {
	version    uint64
	name       string
	site       *merge.Value
	components map[string]componentLayers
}

// New constructs a Theme from site variables and component contributions.
func New(name string, site *merge.Value, components map[string]ComponentTheme) *Theme {
	if site.IsNil() {
		site = merge.EmptyMap()
	}
	t := &Theme{
		version:    nextVersion(),
		name:       name,
		site:       site,
		components: make(map[string]componentLayers, len(components)),
	}
	for compName, comp := range components {
		layers := componentLayers{
			variables: make(map[string]TokenSpec, len(comp.Variables)),
			styles:    make(map[string][]SlotStyleFunc, len(comp.Styles)),
		}
		for tokenName, spec := range comp.Variables {
			layers.variables[tokenName] = spec
		}
		for slot, fn := range comp.Styles {
			if fn != nil {
				layers.styles[slot] = []SlotStyleFunc{fn}
			}
		}
		t.components[compName] = layers
	}
	return t
}

// Empty returns a fresh empty theme.
func Empty() *Theme {
	return New("", nil, nil)
}

// Version returns the identity id assigned at construction.
func (t *Theme) Version() uint64 {
	if t == nil {
		return 0
	}
	return t.version
}

// Name returns the theme's display name.
func (t *Theme) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

// SiteVariables returns the site-wide variable mapping.
func (t *Theme) SiteVariables() *merge.Value {
	if t == nil {
		return merge.EmptyMap()
	}
	return t.site
}

// ComponentNames lists the components the theme contributes to, sorted.
func (t *Theme) ComponentNames() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.components))
	for name := range t.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (t *Theme) component(name string) componentLayers {
	if t == nil {
		return componentLayers{}
	}
	return t.components[name]
}

// MergeThemes merges an ordered stack of themes into one resolved theme.
// Site variables deep-merge with later themes winning; per-component token
// specs replace per name; per-component style functions at the same slot
// compose, later layered over earlier. Themes are immutable, so an input
// repeating an earlier identity contributes nothing new and merges once;
// without that, a repeated theme would double its style stacks and every
// resolution after it would run the same functions twice. The result carries
// a new identity id and the name of the last named input.
func MergeThemes(themes ...*Theme) (*Theme, error) {
	inputs := make([]*Theme, 0, len(themes))
	seen := make(map[uint64]struct{}, len(themes))
	for _, t := range themes {
		if t == nil {
			continue
		}
		if _, ok := seen[t.version]; ok {
			continue
		}
		seen[t.version] = struct{}{}
		inputs = append(inputs, t)
	}

	sites := make([]*merge.Value, 0, len(inputs))
	name := ""
	for _, t := range inputs {
		sites = append(sites, t.site)
		if t.name != "" {
			name = t.name
		}
	}
	site, err := merge.Merge(sites...)
	if err != nil {
		return nil, newMergeError("merging site variables", err)
	}
	if site.IsNil() {
		site = merge.EmptyMap()
	}

	components := make(map[string]componentLayers)
	for _, t := range inputs {
		for compName, layer := range t.components {
			existing, ok := components[compName]
			if !ok {
				existing = componentLayers{
					variables: make(map[string]TokenSpec),
					styles:    make(map[string][]SlotStyleFunc),
				}
			}
			for tokenName, spec := range layer.variables {
				existing.variables[tokenName] = spec
			}
			for slot, stack := range layer.styles {
				existing.styles[slot] = append(existing.styles[slot], stack...)
			}
			components[compName] = existing
		}
	}

	return &Theme{
		version:    nextVersion(),
		name:       name,
		site:       site,
		components: components,
	}, nil
}
