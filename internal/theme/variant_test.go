package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glazekit/glaze/internal/merge"
)

func variantWithToken(name, caseKey, token, value string) Variant {
	return Variant{
		Name: name,
		Cases: map[string]VariantContribution{
			caseKey: {Tokens: map[string]TokenSpec{token: LiteralString(value)}},
		},
	}
}

func TestResolveVariantsBooleanProp(t *testing.T) {
	variants := []Variant{variantWithToken("primary", "true", "backgroundColor", "red")}

	selection := ResolveVariants(variants, Props{"primary": true})
	require.Len(t, selection.TokenContributions, 1)

	selection = ResolveVariants(variants, Props{"primary": false})
	assert.Empty(t, selection.TokenContributions, "false bool props deactivate the variant")

	selection = ResolveVariants(variants, Props{})
	assert.Empty(t, selection.TokenContributions, "absent props contribute nothing")
}

func TestResolveVariantsStringProp(t *testing.T) {
	variants := []Variant{
		{
			Name: "size",
			Cases: map[string]VariantContribution{
				"small": {Tokens: map[string]TokenSpec{"padding": LiteralString("1")}},
				"large": {Tokens: map[string]TokenSpec{"padding": LiteralString("4")}},
			},
		},
	}

	selection := ResolveVariants(variants, Props{"size": "large"})
	require.Len(t, selection.TokenContributions, 1)
	spec := selection.TokenContributions[0]["padding"]
	assert.Equal(t, TokenLiteral, spec.Kind())
}

func TestResolveVariantsUnmatchedValueIsNotAnError(t *testing.T) {
	variants := []Variant{variantWithToken("size", "small", "padding", "1")}

	selection := ResolveVariants(variants, Props{"size": "gigantic"})
	assert.Empty(t, selection.TokenContributions)
	assert.Empty(t, selection.StyleContributions)
}

func TestResolveVariantsDeclarationOrder(t *testing.T) {
	variants := []Variant{
		variantWithToken("first", "true", "color", "from-first"),
		variantWithToken("second", "true", "color", "from-second"),
	}

	selection := ResolveVariants(variants, Props{"second": true, "first": true})
	require.Len(t, selection.TokenContributions, 2)

	merged := mergeSpecs(selection.TokenContributions...)
	vars, err := ResolveTokens(merged, nil)
	require.NoError(t, err)
	color, _ := vars.GetString("color")
	assert.Equal(t, "from-second", color, "later-declared variants win on key conflicts")
}

func TestResolveVariantsStyleContributions(t *testing.T) {
	variants := []Variant{
		{
			Name: "disabled",
			Cases: map[string]VariantContribution{
				"true": {
					Styles: Styles{
						"root": func(vars *merge.Value, ctx RenderContext) *merge.Value {
							return merge.Map(map[string]*merge.Value{"faint": merge.Bool(true)})
						},
					},
				},
			},
		},
	}

	selection := ResolveVariants(variants, Props{"disabled": true})
	require.Len(t, selection.StyleContributions, 1)
}

func TestVariantSignature(t *testing.T) {
	variants := []Variant{
		variantWithToken("primary", "true", "a", "1"),
		variantWithToken("size", "small", "b", "2"),
	}

	withBoth := variantSignature(variants, Props{"primary": true, "size": "small"})
	withOne := variantSignature(variants, Props{"primary": true})
	assert.NotEqual(t, withBoth, withOne)

	// Props that no variant declares must not affect the signature.
	withNoise := variantSignature(variants, Props{"primary": true, "label": "Save"})
	assert.Equal(t, withOne, withNoise)
}

func TestVariantSignatureValueCannotEmbedSeparators(t *testing.T) {
	variants := []Variant{
		variantWithToken("variant", "danger", "a", "1"),
		variantWithToken("size", "small", "b", "2"),
	}

	genuine := variantSignature(variants, Props{"variant": "danger", "size": "small"})
	smuggled := variantSignature(variants, Props{"variant": "danger;size=small"})
	assert.NotEqual(t, genuine, smuggled, "a single value spelling out two pairs is a distinct signature")

	quoted := variantSignature(variants, Props{"variant": `danger";"size"="small`})
	assert.NotEqual(t, genuine, quoted, "quote characters in a value stay escaped")
}
