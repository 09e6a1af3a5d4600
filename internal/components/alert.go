package components

import (
	"github.com/glazekit/glaze/internal/merge"
	"github.com/glazekit/glaze/internal/theme"
)

// AlertDefinition builds the alert component. The severity variant drives
// the accent color; every severity shares the same slot layout.
func AlertDefinition() *theme.Definition {
	return theme.NewDefinition(theme.Config{
		Name: "Alert",
		Tokens: map[string]theme.TokenSpec{
			"accentColor": theme.Functional(siteColor("info", "#06b6d4")),
			"textColor":   theme.Functional(siteColor("surfaceText", "#f9fafb")),
		},
		Slots: map[string]string{
			"title": "AlertTitle",
		},
		Styles: theme.Styles{
			"root": func(vars *merge.Value, ctx theme.RenderContext) *merge.Value {
				return merge.Map(map[string]*merge.Value{
					"foreground":       tokenValue(vars, "textColor"),
					"border":           merge.String("normal"),
					"borderForeground": tokenValue(vars, "accentColor"),
					"padding":          merge.Seq(merge.Int(0), merge.Int(1)),
				})
			},
			"title": func(vars *merge.Value, ctx theme.RenderContext) *merge.Value {
				return merge.Map(map[string]*merge.Value{
					"foreground": tokenValue(vars, "accentColor"),
					"bold":       merge.Bool(true),
				})
			},
		},
		Variants: []theme.Variant{
			{
				Name: "severity",
				Cases: map[string]theme.VariantContribution{
					"success": {Tokens: map[string]theme.TokenSpec{
						"accentColor": theme.Functional(siteColor("success", "#22c55e")),
					}},
					"warning": {Tokens: map[string]theme.TokenSpec{
						"accentColor": theme.Functional(siteColor("warning", "#eab308")),
					}},
					"error": {Tokens: map[string]theme.TokenSpec{
						"accentColor": theme.Functional(siteColor("danger", "#ef4444")),
					}},
				},
			},
		},
	})
}
