package components

import (
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glazekit/glaze/internal/merge"
	"github.com/glazekit/glaze/internal/render"
	"github.com/glazekit/glaze/internal/theme"
)

func newTestKit() *Kit {
	return NewKit(KitOptions{
		Renderer: render.NewLipgloss(render.WithProfile(termenv.TrueColor)),
	})
}

func TestKitRegistersDemoComponents(t *testing.T) {
	kit := newTestKit()
	assert.ElementsMatch(t, []string{"Button", "Card", "Alert"}, kit.ComponentNames())
	assert.Equal(t, "default", kit.Theme().Name())
}

func TestKitButtonRendersLabel(t *testing.T) {
	kit := newTestKit()
	out, err := kit.Button("btn-1", "Save", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "Save")
}

func TestKitUnknownComponent(t *testing.T) {
	kit := newTestKit()
	_, err := kit.Resolve("x", "Tooltip", nil, nil)

	require.Error(t, err)
	assert.Equal(t, theme.ErrCodeUnknownComponent, theme.CodeOf(err))
}

func TestKitResolutionIsMemoizedPerInstance(t *testing.T) {
	kit := newTestKit()

	first, err := kit.Resolve("btn-1", "Button", nil, nil)
	require.NoError(t, err)
	second, err := kit.Resolve("btn-1", "Button", nil, nil)
	require.NoError(t, err)
	assert.Same(t, first, second, "unchanged inputs return the cached entry")
}

func TestKitThemeSwapInvalidates(t *testing.T) {
	kit := newTestKit()

	light, err := kit.Resolve("btn-1", "Button", nil, nil)
	require.NoError(t, err)

	kit.SetTheme(DarkTheme())
	dark, err := kit.Resolve("btn-1", "Button", nil, nil)
	require.NoError(t, err)

	assert.NotSame(t, light, dark)
	bg, _ := dark.Variables.GetString("backgroundColor")
	assert.Equal(t, "#60a5fa", bg)
}

func TestKitContextSwapInvalidates(t *testing.T) {
	kit := newTestKit()

	ltr, err := kit.Resolve("card-1", "Card", nil, nil)
	require.NoError(t, err)

	kit.SetContext(theme.RenderContext{Direction: theme.DirectionRTL})
	rtl, err := kit.Resolve("card-1", "Card", nil, nil)
	require.NoError(t, err)

	assert.NotSame(t, ltr, rtl)
	align, _ := rtl.Styles["title"].GetString("align")
	assert.Equal(t, "right", align)
}

func TestKitCardAndAlertRender(t *testing.T) {
	kit := newTestKit()

	card, err := kit.Card("card-1", "Status", "All good", nil)
	require.NoError(t, err)
	assert.Contains(t, card, "Status")
	assert.Contains(t, card, "All good")

	alert, err := kit.Alert("alert-1", "Heads up", "Disk almost full", theme.Props{"severity": "warning"})
	require.NoError(t, err)
	assert.Contains(t, alert, "Heads up")
	assert.Contains(t, alert, "Disk almost full")
}

func TestKitRegisterCustomDefinition(t *testing.T) {
	kit := newTestKit()
	badge := theme.NewDefinition(theme.Config{
		Name: "Badge",
		Tokens: map[string]theme.TokenSpec{
			"color": theme.Functional(siteColor("brand", "#000000")),
		},
		Styles: theme.Styles{
			"root": func(vars *merge.Value, ctx theme.RenderContext) *merge.Value {
				return merge.Map(map[string]*merge.Value{
					"foreground": tokenValue(vars, "color"),
				})
			},
		},
	})
	kit.Register(badge)

	entry, err := kit.Resolve("badge-1", "Badge", nil, nil)
	require.NoError(t, err)
	color, _ := entry.Variables.GetString("color")
	assert.Equal(t, "#2563eb", color)
}
