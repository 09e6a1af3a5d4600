package components

import (
	"github.com/glazekit/glaze/internal/merge"
	"github.com/glazekit/glaze/internal/theme"
)

// CardDefinition builds the card component: root, title and body slots with
// an elevated variant that swaps the border. The title alignment follows the
// render context direction.
func CardDefinition() *theme.Definition {
	return theme.NewDefinition(theme.Config{
		Name: "Card",
		Tokens: map[string]theme.TokenSpec{
			"surfaceColor": theme.Functional(siteColor("surface", "#111827")),
			"textColor":    theme.Functional(siteColor("surfaceText", "#f9fafb")),
			"borderColor":  theme.Functional(siteColor("muted", "#334155")),
			"titleColor":   theme.Functional(siteColor("brand", "#60a5fa")),
		},
		Slots: map[string]string{
			"title": "CardTitle",
			"body":  "CardBody",
		},
		Styles: theme.Styles{
			"root": func(vars *merge.Value, ctx theme.RenderContext) *merge.Value {
				return merge.Map(map[string]*merge.Value{
					"background":       tokenValue(vars, "surfaceColor"),
					"foreground":       tokenValue(vars, "textColor"),
					"border":           merge.String("rounded"),
					"borderForeground": tokenValue(vars, "borderColor"),
					"padding":          merge.Seq(merge.Int(0), merge.Int(2)),
				})
			},
			"title": func(vars *merge.Value, ctx theme.RenderContext) *merge.Value {
				align := "left"
				if ctx.Direction == theme.DirectionRTL {
					align = "right"
				}
				return merge.Map(map[string]*merge.Value{
					"foreground": tokenValue(vars, "titleColor"),
					"bold":       merge.Bool(true),
					"align":      merge.String(align),
				})
			},
			"body": func(vars *merge.Value, ctx theme.RenderContext) *merge.Value {
				return merge.Map(map[string]*merge.Value{
					"foreground": tokenValue(vars, "textColor"),
				})
			},
		},
		Variants: []theme.Variant{
			{
				Name: "elevated",
				Cases: map[string]theme.VariantContribution{
					"true": {Styles: theme.Styles{
						"root": func(vars *merge.Value, ctx theme.RenderContext) *merge.Value {
							return merge.Map(map[string]*merge.Value{
								"border": merge.String("double"),
							})
						},
					}},
				},
			},
		},
	})
}
