package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glazekit/glaze/internal/theme"
	glazeerrors "github.com/glazekit/glaze/pkg/errors"
)

const midnightYAML = `
name: midnight
siteVariables:
  brand: "#2563eb"
  surface: "#0f172a"
components:
  Button:
    variables:
      backgroundColor: "${brand}"
      backgroundHoverColor:
        dependsOn: [backgroundColor]
        lighten: 0.2
      textColor: "#f8fafc"
    styles:
      root:
        background: "${backgroundColor}"
        foreground: "${textColor}"
        bold: true
        padding: [0, 2]
`

func writeTheme(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadYAMLTheme(t *testing.T) {
	loader := NewLoader(nil)
	th, err := loader.Load(writeTheme(t, "midnight.yaml", midnightYAML))
	require.NoError(t, err)

	assert.Equal(t, "midnight", th.Name())
	brand, _ := th.SiteVariables().GetString("brand")
	assert.Equal(t, "#2563eb", brand)

	def := theme.NewDefinition(theme.Config{Name: "Button"})
	vars, styles, err := theme.ResolveForComponent(th, def, nil, nil, theme.RenderContext{})
	require.NoError(t, err)

	bg, _ := vars.GetString("backgroundColor")
	assert.Equal(t, "#2563eb", bg, "site variable references should resolve")
	hover, _ := vars.GetString("backgroundHoverColor")
	assert.Equal(t, Lighten("#2563eb", 0.2), hover, "derived tokens follow their dependency")

	root := styles["root"]
	require.NotNil(t, root)
	styleBg, _ := root.GetString("background")
	assert.Equal(t, "#2563eb", styleBg, "style templates resolve against final variables")
	bold, ok := root.Get("bold")
	require.True(t, ok)
	b, _ := bold.AsBool()
	assert.True(t, b)
	padding, ok := root.Get("padding")
	require.True(t, ok)
	assert.Equal(t, 2, padding.Len())
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	loader := NewLoader(nil)
	_, err := loader.Load(writeTheme(t, "midnight.toml", "name = 'x'"))

	var parseErr *glazeerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	loader := NewLoader(nil)
	_, err := loader.Load(writeTheme(t, "broken.yaml", "name: [unclosed"))

	var parseErr *glazeerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseYAMLRequiresName(t *testing.T) {
	_, err := ParseYAML([]byte("siteVariables:\n  brand: \"#fff\"\n"), "inline.yaml")

	var valErr *glazeerrors.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Field, "Name")
}

func TestParseYAMLRejectsBadThemeName(t *testing.T) {
	_, err := ParseYAML([]byte("name: \"Bad Name\"\n"), "inline.yaml")

	var valErr *glazeerrors.ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestParseYAMLRejectsUnknownReference(t *testing.T) {
	doc := `
name: broken
components:
  Button:
    variables:
      backgroundColor: "${missing}"
`
	_, err := ParseYAML([]byte(doc), "inline.yaml")

	var valErr *glazeerrors.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Field, "backgroundColor")
}

func TestParseYAMLRejectsMalformedColor(t *testing.T) {
	doc := `
name: broken
siteVariables:
  brand: "#zzz"
`
	_, err := ParseYAML([]byte(doc), "inline.yaml")

	var valErr *glazeerrors.ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestParseYAMLRejectsUnknownTopLevelKeys(t *testing.T) {
	_, err := ParseYAML([]byte("name: ok\nsurprise: true\n"), "inline.yaml")
	require.Error(t, err)
}

func TestTranslateReferenceToSiblingToken(t *testing.T) {
	doc := `
name: chained
components:
  Badge:
    variables:
      base: "#336699"
      outline: "${base}"
`
	parsed, err := ParseYAML([]byte(doc), "inline.yaml")
	require.NoError(t, err)
	th, err := Translate(parsed)
	require.NoError(t, err)

	def := theme.NewDefinition(theme.Config{Name: "Badge"})
	vars, _, err := theme.ResolveForComponent(th, def, nil, nil, theme.RenderContext{})
	require.NoError(t, err)
	outline, _ := vars.GetString("outline")
	assert.Equal(t, "#336699", outline)
}
