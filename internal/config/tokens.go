package config

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mitchellh/mapstructure"

	"github.com/glazekit/glaze/internal/merge"
	"github.com/glazekit/glaze/internal/theme"
)

var refPattern = regexp.MustCompile(`\$\{([a-zA-Z0-9_.-]+)\}`)

// referencesIn lists the distinct ${name} references inside a raw string
// value, in order of first appearance.
func referencesIn(s string) []string {
	var refs []string
	seen := make(map[string]bool)
	for _, match := range refPattern.FindAllStringSubmatch(s, -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			refs = append(refs, match[1])
		}
	}
	return refs
}

// derivedValue is the document shape of a dependent token: a dependency list
// plus exactly one derivation.
type derivedValue struct {
	DependsOn []string `mapstructure:"dependsOn"`
	Lighten   *float64 `mapstructure:"lighten"`
	Darken    *float64 `mapstructure:"darken"`
	Alpha     *float64 `mapstructure:"alpha"`
}

// tokenSpec interprets one raw variable value from a document:
//   - a string containing ${refs} becomes a Dependent token on the referenced
//     names, so references to sibling tokens resolve in dependency order and
//     references to site variables fall back to the base mapping
//   - a mapping with dependsOn becomes a Dependent token applying a color
//     derivation to its first dependency
//   - anything else is a Literal
func tokenSpec(raw any) (theme.TokenSpec, error) {
	switch value := raw.(type) {
	case string:
		refs := referencesIn(value)
		if len(refs) == 0 {
			return theme.LiteralString(value), nil
		}
		template := value
		return theme.Dependent(refs, func(deps []*merge.Value) *merge.Value {
			resolved := make(map[string]*merge.Value, len(refs))
			for i, name := range refs {
				resolved[name] = deps[i]
			}
			return merge.String(substituteTemplate(template, resolved))
		}), nil
	case map[string]any:
		if _, ok := value["dependsOn"]; ok {
			return derivedTokenSpec(value)
		}
		return theme.Literal(merge.FromGo(value)), nil
	default:
		return theme.Literal(merge.FromGo(raw)), nil
	}
}

func derivedTokenSpec(raw map[string]any) (theme.TokenSpec, error) {
	var spec derivedValue
	if err := mapstructure.Decode(raw, &spec); err != nil {
		return theme.TokenSpec{}, fmt.Errorf("decoding derived token: %w", err)
	}
	if len(spec.DependsOn) == 0 {
		return theme.TokenSpec{}, fmt.Errorf("derived token declares no dependencies")
	}

	var derive func(hex string) string
	switch {
	case spec.Lighten != nil:
		amount := *spec.Lighten
		derive = func(hex string) string { return Lighten(hex, amount) }
	case spec.Darken != nil:
		amount := *spec.Darken
		derive = func(hex string) string { return Darken(hex, amount) }
	case spec.Alpha != nil:
		amount := *spec.Alpha
		derive = func(hex string) string { return Alpha(hex, amount) }
	default:
		return theme.TokenSpec{}, fmt.Errorf("derived token declares no derivation (lighten, darken or alpha)")
	}

	return theme.Dependent(spec.DependsOn, func(deps []*merge.Value) *merge.Value {
		base, ok := deps[0].AsString()
		if !ok {
			return deps[0]
		}
		return merge.String(derive(base))
	}), nil
}

// substituteTemplate replaces every ${name} with its entry in resolved.
// Unresolvable references substitute to the empty string; validation rejects
// them before resolution normally sees one.
func substituteTemplate(template string, resolved map[string]*merge.Value) string {
	return refPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := refPattern.FindStringSubmatch(match)[1]
		value, ok := resolved[name]
		if !ok || value.IsNil() {
			return ""
		}
		if s, isString := value.AsString(); isString {
			return s
		}
		return fmt.Sprintf("%v", value.ToGo())
	})
}

// substituteRefs resolves ${name} references against a variables mapping,
// used by style functions which run against the final resolved variables.
func substituteRefs(template string, vars *merge.Value) string {
	resolved := make(map[string]*merge.Value)
	for _, name := range referencesIn(template) {
		if value, ok := vars.Get(name); ok {
			resolved[name] = value
		}
	}
	return substituteTemplate(template, resolved)
}

// slotStyleFunc builds a style function from a slot's raw property map.
// String properties may carry ${refs} resolved against the final variables.
func slotStyleFunc(properties map[string]any) theme.SlotStyleFunc {
	keys := make([]string, 0, len(properties))
	for key := range properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return func(vars *merge.Value, ctx theme.RenderContext) *merge.Value {
		entries := make(map[string]*merge.Value, len(properties))
		for _, key := range keys {
			raw := properties[key]
			if s, ok := raw.(string); ok && refPattern.MatchString(s) {
				entries[key] = merge.String(substituteRefs(s, vars))
				continue
			}
			entries[key] = merge.FromGo(raw)
		}
		return merge.Map(entries)
	}
}

// Lighten moves a hex color toward white by amount in [0, 1].
func Lighten(hex string, amount float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	h, s, l := c.Hsl()
	l += (1 - l) * clamp01(amount)
	return colorful.Hsl(h, s, clamp01(l)).Hex()
}

// Darken moves a hex color toward black by amount in [0, 1].
func Darken(hex string, amount float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	h, s, l := c.Hsl()
	l *= 1 - clamp01(amount)
	return colorful.Hsl(h, s, clamp01(l)).Hex()
}

// Alpha appends an alpha channel to a hex color, amount in [0, 1].
func Alpha(hex string, amount float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	return fmt.Sprintf("%s%02x", c.Hex(), int(clamp01(amount)*255+0.5))
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
