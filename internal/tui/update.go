package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/glazekit/glaze/internal/theme"
)

// Update handles incoming messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextTheme):
		m.themeIdx = (m.themeIdx + 1) % len(m.themes)
		m.kit.SetTheme(m.themes[m.themeIdx].Theme)
		m.err = ""

	case key.Matches(msg, m.keys.NextComponent):
		m.cursor = (m.cursor + 1) % len(m.showcases)

	case key.Matches(msg, m.keys.NextVariant):
		sc := m.activeShowcase()
		m.variantIdx[sc.component] = (m.variantIdx[sc.component] + 1) % len(sc.presets)

	case key.Matches(msg, m.keys.Direction):
		if m.direction == theme.DirectionLTR {
			m.direction = theme.DirectionRTL
		} else {
			m.direction = theme.DirectionLTR
		}
		m.kit.SetContext(m.renderContext())

	case key.Matches(msg, m.keys.Animations):
		m.animsOff = !m.animsOff
		m.kit.SetContext(m.renderContext())

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}
