package components

import (
	"github.com/glazekit/glaze/internal/merge"
	"github.com/glazekit/glaze/internal/theme"
)

// DefaultTheme is the stock light theme. Site variables name the semantic
// colors the demo definitions read.
func DefaultTheme() *theme.Theme {
	return theme.New("default", merge.Map(map[string]*merge.Value{
		"brand":        merge.String("#2563eb"),
		"brandText":    merge.String("#f8fafc"),
		"surface":      merge.String("#f9fafb"),
		"surfaceText":  merge.String("#111827"),
		"surfaceMuted": merge.String("#e2e8f0"),
		"muted":        merge.String("#64748b"),
		"mutedText":    merge.String("#f1f5f9"),
		"success":      merge.String("#16a34a"),
		"warning":      merge.String("#ca8a04"),
		"danger":       merge.String("#dc2626"),
		"info":         merge.String("#0891b2"),
	}), nil)
}

// DarkTheme layers a dark overlay over the default theme. The overlay only
// names the variables it changes; everything else falls through the merge.
func DarkTheme() *theme.Theme {
	overlay := theme.New("dark", merge.Map(map[string]*merge.Value{
		"brand":        merge.String("#60a5fa"),
		"brandText":    merge.String("#0b1120"),
		"surface":      merge.String("#111827"),
		"surfaceText":  merge.String("#f9fafb"),
		"surfaceMuted": merge.String("#1f2937"),
		"muted":        merge.String("#334155"),
		"mutedText":    merge.String("#cbd5e1"),
		"success":      merge.String("#4ade80"),
		"warning":      merge.String("#facc15"),
		"danger":       merge.String("#f87171"),
		"info":         merge.String("#22d3ee"),
	}), nil)

	merged, err := theme.MergeThemes(DefaultTheme(), overlay)
	if err != nil {
		// Both inputs are flat string mappings; the merge cannot conflict.
		panic(err)
	}
	return merged
}
