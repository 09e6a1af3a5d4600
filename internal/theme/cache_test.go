package theme

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glazekit/glaze/internal/logger"
	"github.com/glazekit/glaze/internal/merge"
)

// countingRenderer assigns sequential class names and counts invocations.
type countingRenderer struct {
	calls int
}

func (r *countingRenderer) Render(slot string, style *merge.Value) string {
	r.calls++
	return fmt.Sprintf("c%d-%s", r.calls, slot)
}

func TestCacheReturnsSameEntryForUnchangedInputs(t *testing.T) {
	renderer := &countingRenderer{}
	cache := NewCache(renderer, nil)
	def := buttonDefinition()
	th := greenButtonTheme()

	first, err := cache.Resolve("btn-1", def, th, Props{"primary": true}, nil, RenderContext{})
	require.NoError(t, err)
	second, err := cache.Resolve("btn-1", def, th, Props{"primary": true}, nil, RenderContext{})
	require.NoError(t, err)

	assert.Same(t, first, second, "unchanged inputs must return the identical entry")
	assert.Equal(t, 1, renderer.calls, "no recomputation on a cache hit")
}

func TestCacheInvalidatesOnThemeChange(t *testing.T) {
	cache := NewCache(nil, nil)
	def := buttonDefinition()

	first, err := cache.Resolve("btn-1", def, greenButtonTheme(), nil, nil, RenderContext{})
	require.NoError(t, err)

	replacement := New("red", nil, map[string]ComponentTheme{
		"Button": {Variables: map[string]TokenSpec{"backgroundColor": LiteralString("crimson")}},
	})
	second, err := cache.Resolve("btn-1", def, replacement, nil, nil, RenderContext{})
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	bg, _ := second.Variables.GetString("backgroundColor")
	assert.Equal(t, "crimson", bg, "new entry carries correctly recomputed values")
}

func TestCacheInvalidatesOnAnySingleIdentityChange(t *testing.T) {
	cache := NewCache(nil, nil)
	def := buttonDefinition()
	th := greenButtonTheme()
	props := Props{"primary": true}

	base, err := cache.Resolve("btn-1", def, th, props, nil, RenderContext{})
	require.NoError(t, err)

	cases := []struct {
		name    string
		resolve func() (*CacheEntry, error)
	}{
		{"definition", func() (*CacheEntry, error) {
			return cache.Resolve("btn-1", def.Extend(Config{}), th, props, nil, RenderContext{})
		}},
		{"props", func() (*CacheEntry, error) {
			return cache.Resolve("btn-1", def, th, nil, nil, RenderContext{})
		}},
		{"overrides", func() (*CacheEntry, error) {
			ov := NewOverrides(map[string]TokenSpec{"backgroundColor": LiteralString("gold")}, nil)
			return cache.Resolve("btn-1", def, th, props, ov, RenderContext{})
		}},
		{"context", func() (*CacheEntry, error) {
			return cache.Resolve("btn-1", def, th, props, nil, RenderContext{Direction: DirectionRTL})
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entry, err := tc.resolve()
			require.NoError(t, err)
			assert.NotSame(t, base, entry, "changing one identity component must invalidate the whole entry")
			// Restore the original inputs for the next case.
			base, err = cache.Resolve("btn-1", def, th, props, nil, RenderContext{})
			require.NoError(t, err)
		})
	}
}

func TestCacheIgnoresNonVariantProps(t *testing.T) {
	renderer := &countingRenderer{}
	cache := NewCache(renderer, nil)
	def := buttonDefinition()
	th := greenButtonTheme()

	first, err := cache.Resolve("btn-1", def, th, Props{"primary": true, "label": "Save"}, nil, RenderContext{})
	require.NoError(t, err)
	second, err := cache.Resolve("btn-1", def, th, Props{"primary": true, "label": "Cancel"}, nil, RenderContext{})
	require.NoError(t, err)

	assert.Same(t, first, second, "props that affect no variant are not part of the identity")
}

func TestCacheDistinguishesSeparatorBearingPropValues(t *testing.T) {
	cache := NewCache(nil, nil)
	def := NewDefinition(Config{
		Name:   "Button",
		Tokens: map[string]TokenSpec{"backgroundColor": LiteralString("blue")},
		Variants: []Variant{
			{
				Name: "variant",
				Cases: map[string]VariantContribution{
					"danger": {Tokens: map[string]TokenSpec{"backgroundColor": LiteralString("teal")}},
				},
			},
			{
				Name: "size",
				Cases: map[string]VariantContribution{
					"small": {Tokens: map[string]TokenSpec{"paddingX": LiteralString("1")}},
				},
			},
		},
	})
	th := Empty()

	// An unmatched value spelling out two signature pairs resolves the
	// component default and must not alias the genuine pair's identity.
	first, err := cache.Resolve("btn-1", def, th, Props{"variant": "danger;size=small"}, nil, RenderContext{})
	require.NoError(t, err)
	bg, _ := first.Variables.GetString("backgroundColor")
	require.Equal(t, "blue", bg)

	second, err := cache.Resolve("btn-1", def, th, Props{"variant": "danger", "size": "small"}, nil, RenderContext{})
	require.NoError(t, err)
	assert.NotSame(t, first, second, "distinct prop sets must not share a cache identity")
	bg, _ = second.Variables.GetString("backgroundColor")
	assert.Equal(t, "teal", bg)
}

func TestCacheEntriesArePerInstance(t *testing.T) {
	cache := NewCache(nil, nil)
	def := buttonDefinition()
	th := greenButtonTheme()

	a, err := cache.Resolve("btn-a", def, th, nil, nil, RenderContext{})
	require.NoError(t, err)
	b, err := cache.Resolve("btn-b", def, th, nil, nil, RenderContext{})
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.Equal(t, 2, cache.Len())

	cache.Release("btn-a")
	assert.Equal(t, 1, cache.Len())
}

func TestCacheErrorLeavesNoStaleEntry(t *testing.T) {
	cache := NewCache(nil, nil)
	th := Empty()

	good := NewDefinition(Config{
		Name:   "Badge",
		Tokens: map[string]TokenSpec{"color": LiteralString("blue")},
	})
	_, err := cache.Resolve("badge-1", good, th, nil, nil, RenderContext{})
	require.NoError(t, err)
	require.Equal(t, 1, cache.Len())

	cyclic := good.Extend(Config{
		Tokens: map[string]TokenSpec{
			"a": Dependent([]string{"b"}, func(deps []*merge.Value) *merge.Value { return deps[0] }),
			"b": Dependent([]string{"a"}, func(deps []*merge.Value) *merge.Value { return deps[0] }),
		},
	})
	_, err = cache.Resolve("badge-1", cyclic, th, nil, nil, RenderContext{})
	require.Error(t, err)
	assert.Equal(t, ErrCodeCyclicToken, CodeOf(err))
	assert.Equal(t, 0, cache.Len(), "a failed resolution must not leave a stale entry behind")
}

func TestCacheNilThemeFallsBack(t *testing.T) {
	cache := NewCache(nil, nil)
	def := buttonDefinition()

	entry, err := cache.Resolve("btn-1", def, nil, nil, nil, RenderContext{})
	require.NoError(t, err)
	bg, _ := entry.Variables.GetString("backgroundColor")
	assert.Equal(t, "blue", bg, "fallback theme still resolves component defaults")

	// A second nil-theme resolution hits the cache: the fallback is stable.
	again, err := cache.Resolve("btn-1", def, nil, nil, nil, RenderContext{})
	require.NoError(t, err)
	assert.Same(t, entry, again)
}

func TestCacheNilThemeWarnsOnce(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.New(logger.Options{Level: "warn", Writer: &buf})
	require.NoError(t, err)

	cache := NewCache(nil, log)
	def := buttonDefinition()

	_, err = cache.Resolve("btn-1", def, nil, nil, nil, RenderContext{})
	require.NoError(t, err)
	_, err = cache.Resolve("btn-2", def, nil, nil, nil, RenderContext{})
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(buf.String(), "without an active theme"),
		"the missing-theme warning fires once for the cache's lifetime")
}

func TestCacheRecursiveResolution(t *testing.T) {
	cache := NewCache(nil, nil)
	th := greenButtonTheme()
	child := buttonDefinition()

	// Resolving the parent triggers a nested resolution for its slot child
	// before the parent's own call returns.
	parent := NewDefinition(Config{
		Name:  "Toolbar",
		Slots: map[string]string{"action": "Button"},
		Styles: Styles{
			"root": func(vars *merge.Value, ctx RenderContext) *merge.Value {
				nested, err := cache.Resolve("toolbar-1/action", child, th, nil, nil, ctx)
				if err != nil {
					return merge.Nil()
				}
				bg, _ := nested.Variables.GetString("backgroundColor")
				return merge.Map(map[string]*merge.Value{"childBackground": merge.String(bg)})
			},
		},
	})

	entry, err := cache.Resolve("toolbar-1", parent, th, nil, nil, RenderContext{})
	require.NoError(t, err)

	childBg, _ := entry.Styles["root"].GetString("childBackground")
	assert.Equal(t, "green", childBg)
	assert.Equal(t, 2, cache.Len(), "parent and child entries coexist under their own keys")
}
