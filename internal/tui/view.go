package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Faint(true)
	activeStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	frameStyle  = lipgloss.NewStyle().Padding(1, 2)
)

// View renders the preview screen.
func (m Model) View() string {
	var b strings.Builder

	header := fmt.Sprintf("glaze preview · theme: %s · direction: %s",
		m.ActiveTheme(), m.direction)
	if m.animsOff {
		header += " · animations off"
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n\n")

	for i, sc := range m.showcases {
		props, label := m.activePreset(sc)

		name := sc.component
		if i == m.cursor {
			name = activeStyle.Render(name)
		}
		b.WriteString(name)
		b.WriteString(" ")
		b.WriteString(labelStyle.Render("(" + label + ")"))
		b.WriteString("\n")

		rendered, err := m.renderComponent(sc, props)
		if err != nil {
			b.WriteString(errorStyle.Render("  " + err.Error()))
		} else {
			b.WriteString(rendered)
		}
		b.WriteString("\n\n")
	}

	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return frameStyle.MaxWidth(m.width).Render(b.String())
}

func (m Model) renderComponent(sc showcase, props map[string]any) (string, error) {
	key := m.instanceKey(sc)
	switch sc.component {
	case "Button":
		return m.kit.Button(key, "Save changes", props)
	case "Card":
		return m.kit.Card(key, "Deployment", "3 services healthy, 0 drifted", props)
	case "Alert":
		return m.kit.Alert(key, "Heads up", "The staging theme changed upstream.", props)
	default:
		return "", fmt.Errorf("no preview for component %s", sc.component)
	}
}
