package theme

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/glazekit/glaze/internal/merge"
)

// SlotStyleFunc computes one slot's style object from the resolved variables
// and the render context.
type SlotStyleFunc func(vars *merge.Value, ctx RenderContext) *merge.Value

// Styles maps slot names to style functions.
type Styles map[string]SlotStyleFunc

// VariantContribution is the styling attached to one variant value: extra
// token specs, extra per-slot style functions, or both.
type VariantContribution struct {
	Tokens map[string]TokenSpec
	Styles Styles
}

// Variant is one named axis of variation on a component, mapping each
// recognized value to its contribution. Boolean props match the literal
// "true" key by convention.
type Variant struct {
	Name  string
	Cases map[string]VariantContribution
}

// Props carries the active prop values of a component instance. Values may be
// strings or bools; other types are ignored for variant matching.
type Props map[string]any

// VariantSelection is the ordered set of contributions selected for an
// instance. Order follows variant declaration order on the component, so
// later-declared variants take precedence on key conflicts.
type VariantSelection struct {
	TokenContributions []map[string]TokenSpec
	StyleContributions []Styles
}

// ResolveVariants walks the component's variants in declaration order and
// collects the contributions matching the active props. An active value with
// no matching contribution is not an error; it contributes nothing.
func ResolveVariants(variants []Variant, props Props) VariantSelection {
	var selection VariantSelection
	for _, variant := range variants {
		key, ok := propKey(props[variant.Name])
		if !ok {
			continue
		}
		contribution, ok := variant.Cases[key]
		if !ok {
			continue
		}
		if len(contribution.Tokens) > 0 {
			selection.TokenContributions = append(selection.TokenContributions, contribution.Tokens)
		}
		if len(contribution.Styles) > 0 {
			selection.StyleContributions = append(selection.StyleContributions, contribution.Styles)
		}
	}
	return selection
}

// propKey normalizes an active prop value into a variant case key. A false
// bool deactivates the variant entirely.
func propKey(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case bool:
		if !v {
			return "", false
		}
		return "true", true
	case string:
		if v == "" {
			return "", false
		}
		return v, true
	case fmt.Stringer:
		return v.String(), true
	default:
		return "", false
	}
}

// variantSignature builds the cache identity component for the subset of
// props that affect variants, in declaration order. Names and values are
// quoted so a value embedding the separators cannot collide with a different
// prop set's signature.
func variantSignature(variants []Variant, props Props) string {
	var sig strings.Builder
	for _, variant := range variants {
		key, ok := propKey(props[variant.Name])
		if !ok {
			continue
		}
		sig.WriteString(strconv.Quote(variant.Name))
		sig.WriteByte('=')
		sig.WriteString(strconv.Quote(key))
		sig.WriteByte(';')
	}
	return sig.String()
}
