// Package components ships a small demo library built on the resolution
// engine: Button, Card and Alert definitions, two stock themes and the Kit
// provider that wires a cache and a renderer around them.
package components

import (
	"github.com/glazekit/glaze/internal/merge"
	"github.com/glazekit/glaze/internal/theme"
)

// ButtonDefinition builds the button component: a single root slot, semantic
// color tokens and variant/size/disabled axes. Variants contribute tokens,
// not styles, so the root style function picks up whatever the final
// variables say.
func ButtonDefinition() *theme.Definition {
	return theme.NewDefinition(theme.Config{
		Name: "Button",
		Tokens: map[string]theme.TokenSpec{
			"backgroundColor": theme.Functional(siteColor("brand", "#3b82f6")),
			"textColor":       theme.Functional(siteColor("brandText", "#f8fafc")),
			"paddingX":        theme.Literal(merge.Int(2)),
			"paddingY":        theme.Literal(merge.Int(0)),
		},
		Styles: theme.Styles{
			"root": buttonRootStyle,
		},
		Variants: []theme.Variant{
			{
				Name: "variant",
				Cases: map[string]theme.VariantContribution{
					"secondary": {Tokens: map[string]theme.TokenSpec{
						"backgroundColor": theme.Functional(siteColor("muted", "#64748b")),
						"textColor":       theme.Functional(siteColor("mutedText", "#f1f5f9")),
					}},
					"danger": {Tokens: map[string]theme.TokenSpec{
						"backgroundColor": theme.Functional(siteColor("danger", "#ef4444")),
						"textColor":       theme.LiteralString("#f8fafc"),
					}},
				},
			},
			{
				Name: "size",
				Cases: map[string]theme.VariantContribution{
					"small": {Tokens: map[string]theme.TokenSpec{
						"paddingX": theme.Literal(merge.Int(1)),
					}},
					"large": {Tokens: map[string]theme.TokenSpec{
						"paddingX": theme.Literal(merge.Int(4)),
						"paddingY": theme.Literal(merge.Int(1)),
					}},
				},
			},
			{
				Name: "disabled",
				Cases: map[string]theme.VariantContribution{
					"true": {
						Tokens: map[string]theme.TokenSpec{
							"backgroundColor": theme.Functional(siteColor("surfaceMuted", "#334155")),
							"textColor":       theme.Functional(siteColor("mutedText", "#94a3b8")),
						},
						Styles: theme.Styles{
							"root": func(vars *merge.Value, ctx theme.RenderContext) *merge.Value {
								return merge.Map(map[string]*merge.Value{
									"faint": merge.Bool(true),
									"bold":  merge.Bool(false),
								})
							},
						},
					},
				},
			},
		},
	})
}

func buttonRootStyle(vars *merge.Value, ctx theme.RenderContext) *merge.Value {
	px, _ := vars.Get("paddingX")
	py, _ := vars.Get("paddingY")
	return merge.Map(map[string]*merge.Value{
		"background": tokenValue(vars, "backgroundColor"),
		"foreground": tokenValue(vars, "textColor"),
		"bold":       merge.Bool(true),
		"padding":    merge.Seq(py, px),
	})
}

// siteColor builds a functional token reading a site variable with a
// hard fallback for themes that do not define it.
func siteColor(name, fallback string) theme.VariableFunc {
	return func(vars *merge.Value) *merge.Value {
		if value, ok := vars.Get(name); ok {
			return value
		}
		return merge.String(fallback)
	}
}

// tokenValue reads a resolved token, tolerating its absence.
func tokenValue(vars *merge.Value, name string) *merge.Value {
	if value, ok := vars.Get(name); ok {
		return value
	}
	return merge.Nil()
}
