// Package tui implements the interactive theme preview: a bubbletea program
// cycling the demo components through themes, variants and render contexts.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/glazekit/glaze/internal/components"
	"github.com/glazekit/glaze/internal/theme"
)

// NamedTheme pairs a theme with the label shown in the preview header.
type NamedTheme struct {
	Label string
	Theme *theme.Theme
}

// keyMap declares the preview key bindings.
type keyMap struct {
	NextTheme     key.Binding
	NextComponent key.Binding
	NextVariant   key.Binding
	Direction     key.Binding
	Animations    key.Binding
	Help          key.Binding
	Quit          key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextTheme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "next theme"),
		),
		NextComponent: key.NewBinding(
			key.WithKeys("tab", "down", "j"),
			key.WithHelp("tab", "next component"),
		),
		NextVariant: key.NewBinding(
			key.WithKeys("v", "right", "l"),
			key.WithHelp("v", "next variant"),
		),
		Direction: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "toggle direction"),
		),
		Animations: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toggle animations"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTheme, k.NextComponent, k.NextVariant, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTheme, k.NextComponent, k.NextVariant},
		{k.Direction, k.Animations, k.Help, k.Quit},
	}
}

// showcase is one previewable component with its cycling variant presets.
type showcase struct {
	component string
	presets   []theme.Props
	labels    []string
}

// Model is the bubbletea state of the preview.
type Model struct {
	kit    *components.Kit
	themes []NamedTheme

	themeIdx    int
	showcases   []showcase
	cursor      int
	variantIdx  map[string]int
	direction   theme.Direction
	animsOff    bool

	keys   keyMap
	help   help.Model
	width  int
	height int
	err    string
}

// NewModel builds the preview model. With no extra themes the stock default
// and dark themes are cycled.
func NewModel(kit *components.Kit, extra ...NamedTheme) Model {
	themes := []NamedTheme{
		{Label: "default", Theme: components.DefaultTheme()},
		{Label: "dark", Theme: components.DarkTheme()},
	}
	themes = append(themes, extra...)

	if kit == nil {
		kit = components.NewKit(components.KitOptions{Theme: themes[0].Theme})
	} else {
		kit.SetTheme(themes[0].Theme)
	}

	return Model{
		kit:    kit,
		themes: themes,
		showcases: []showcase{
			{
				component: "Button",
				presets: []theme.Props{
					nil,
					{"variant": "secondary"},
					{"variant": "danger"},
					{"size": "large"},
					{"disabled": true},
				},
				labels: []string{"primary", "secondary", "danger", "large", "disabled"},
			},
			{
				component: "Card",
				presets:   []theme.Props{nil, {"elevated": true}},
				labels:    []string{"flat", "elevated"},
			},
			{
				component: "Alert",
				presets: []theme.Props{
					nil,
					{"severity": "success"},
					{"severity": "warning"},
					{"severity": "error"},
				},
				labels: []string{"info", "success", "warning", "error"},
			},
		},
		variantIdx: make(map[string]int),
		keys:       defaultKeyMap(),
		help:       help.New(),
		width:      80,
		height:     24,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// ActiveTheme returns the label of the theme being previewed.
func (m Model) ActiveTheme() string {
	return m.themes[m.themeIdx].Label
}

// ActiveComponent returns the component under the cursor.
func (m Model) ActiveComponent() string {
	return m.showcases[m.cursor].component
}

func (m Model) activeShowcase() showcase {
	return m.showcases[m.cursor]
}

func (m Model) activePreset(sc showcase) (theme.Props, string) {
	idx := m.variantIdx[sc.component] % len(sc.presets)
	return sc.presets[idx], sc.labels[idx]
}

func (m Model) renderContext() theme.RenderContext {
	return theme.RenderContext{
		Direction:          m.direction,
		AnimationsDisabled: m.animsOff,
	}
}

func (m Model) instanceKey(sc showcase) string {
	_, label := m.activePreset(sc)
	return fmt.Sprintf("preview/%s/%s", sc.component, label)
}
