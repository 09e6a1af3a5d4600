package render

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glazekit/glaze/internal/merge"
)

func newTestRenderer() *Lipgloss {
	return NewLipgloss(WithProfile(termenv.TrueColor))
}

func styleObject(entries map[string]*merge.Value) *merge.Value {
	return merge.Map(entries)
}

func TestRenderDeduplicatesIdenticalStyles(t *testing.T) {
	r := newTestRenderer()
	style := styleObject(map[string]*merge.Value{
		"background": merge.String("#2563eb"),
		"bold":       merge.Bool(true),
	})
	same := styleObject(map[string]*merge.Value{
		"bold":       merge.Bool(true),
		"background": merge.String("#2563eb"),
	})

	first := r.Render("root", style)
	second := r.Render("label", same)
	assert.Equal(t, first, second, "identical style objects share one class")
}

func TestRenderDistinctStylesGetDistinctClasses(t *testing.T) {
	r := newTestRenderer()
	a := r.Render("root", styleObject(map[string]*merge.Value{"bold": merge.Bool(true)}))
	b := r.Render("root", styleObject(map[string]*merge.Value{"italic": merge.Bool(true)}))
	assert.NotEqual(t, a, b)
}

func TestRenderCompilesProperties(t *testing.T) {
	r := newTestRenderer()
	class := r.Render("root", styleObject(map[string]*merge.Value{
		"foreground": merge.String("#ffffff"),
		"background": merge.String("#1d4ed8"),
		"bold":       merge.Bool(true),
		"padding":    merge.Seq(merge.Int(0), merge.Int(2)),
		"border":     merge.String("rounded"),
		"align":      merge.String("center"),
		"width":      merge.Int(20),
	}))

	style, ok := r.Style(class)
	require.True(t, ok)
	assert.True(t, style.GetBold())
	assert.Equal(t, 2, style.GetPaddingLeft())
	assert.Equal(t, 20, style.GetWidth())
	assert.NotEmpty(t, style.GetBackground())
}

func TestRenderAsciiProfileDropsColors(t *testing.T) {
	r := NewLipgloss(WithProfile(termenv.Ascii))
	class := r.Render("root", styleObject(map[string]*merge.Value{
		"background": merge.String("#1d4ed8"),
		"bold":       merge.Bool(true),
	}))

	style, ok := r.Style(class)
	require.True(t, ok)
	assert.True(t, style.GetBold(), "attributes survive without color support")
	_, isNoColor := style.GetBackground().(lipgloss.NoColor)
	assert.True(t, isNoColor, "colors are dropped on ascii terminals")
}

func TestApplyUnknownClassIsPassThrough(t *testing.T) {
	r := newTestRenderer()
	assert.Equal(t, "hello", r.Apply("missing", "hello"))
}

func TestApplyRendersText(t *testing.T) {
	r := newTestRenderer()
	class := r.Render("root", styleObject(map[string]*merge.Value{
		"padding": merge.Int(0),
	}))
	out := r.Apply(class, "hello")
	assert.Contains(t, out, "hello")
}
