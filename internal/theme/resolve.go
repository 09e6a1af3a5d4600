package theme

import (
	"github.com/glazekit/glaze/internal/merge"
)

// Overrides carries inline per-instance overrides: variable specs layered
// over everything except variant token contributions, and style functions
// layered over everything. Override sets are immutable and carry an identity
// id for the resolution cache; build a new set instead of mutating one.
type Overrides struct {
	version   uint64
	variables map[string]TokenSpec
	styles    Styles
}

// NewOverrides builds an immutable override set.
func NewOverrides(variables map[string]TokenSpec, styles Styles) *Overrides {
	o := &Overrides{
		version:   nextVersion(),
		variables: make(map[string]TokenSpec, len(variables)),
		styles:    make(Styles, len(styles)),
	}
	for name, spec := range variables {
		o.variables[name] = spec
	}
	for slot, fn := range styles {
		o.styles[slot] = fn
	}
	return o
}

// Version returns the identity id, 0 for a nil set.
func (o *Overrides) Version() uint64 {
	if o == nil {
		return 0
	}
	return o.version
}

// ResolveForComponent resolves the final variables and per-slot styles for
// one component instance under a theme.
//
// Variable precedence, lowest first: site variables, component default
// tokens, theme component variables, inline override variables, active
// variant token contributions in declaration order. Style precedence:
// component defaults, theme styles, variant style contributions, inline
// style overrides.
func ResolveForComponent(t *Theme, def *Definition, props Props, overrides *Overrides, ctx RenderContext) (*merge.Value, map[string]*merge.Value, error) {
	if t == nil {
		t = Empty()
	}
	comp := t.component(def.name)
	selection := ResolveVariants(def.variants, props)

	specLayers := make([]map[string]TokenSpec, 0, 3+len(selection.TokenContributions))
	specLayers = append(specLayers, def.tokens, comp.variables)
	if overrides != nil {
		specLayers = append(specLayers, overrides.variables)
	}
	specLayers = append(specLayers, selection.TokenContributions...)

	vars, err := ResolveTokens(mergeSpecs(specLayers...), t.site)
	if err != nil {
		return nil, nil, err
	}

	stacks := make(map[string][]SlotStyleFunc, len(def.styles))
	for slot, stack := range def.styles {
		stacks[slot] = append([]SlotStyleFunc(nil), stack...)
	}
	for slot, stack := range comp.styles {
		stacks[slot] = append(stacks[slot], stack...)
	}
	for _, contribution := range selection.StyleContributions {
		for slot, fn := range contribution {
			stacks[slot] = append(stacks[slot], fn)
		}
	}
	if overrides != nil {
		for slot, fn := range overrides.styles {
			stacks[slot] = append(stacks[slot], fn)
		}
	}

	styles, err := CompileStyles(stacks, vars, ctx)
	if err != nil {
		return nil, nil, err
	}
	return vars, styles, nil
}
