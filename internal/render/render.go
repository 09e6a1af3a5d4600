// Package render turns compiled style objects into terminal styles. The
// resolver treats the renderer as an opaque styleObject -> class function;
// this package provides the lipgloss-backed implementation.
package render

import (
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/glazekit/glaze/internal/merge"
)

// Lipgloss renders style objects into lipgloss styles, deduplicating by the
// style object's fingerprint so identical style objects share a class.
type Lipgloss struct {
	mu      sync.Mutex
	profile termenv.Profile
	classes map[string]string
	styles  map[string]lipgloss.Style
}

// Option configures a Lipgloss renderer.
type Option func(*Lipgloss)

// WithProfile overrides the detected terminal color profile.
func WithProfile(profile termenv.Profile) Option {
	return func(r *Lipgloss) { r.profile = profile }
}

// NewLipgloss creates a renderer using the detected terminal color profile.
func NewLipgloss(opts ...Option) *Lipgloss {
	r := &Lipgloss{
		profile: termenv.ColorProfile(),
		classes: make(map[string]string),
		styles:  make(map[string]lipgloss.Style),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render compiles a style object into a lipgloss style and returns its class
// name. Identical style objects map to the same class regardless of slot.
func (r *Lipgloss) Render(slot string, style *merge.Value) string {
	fingerprint := style.Fingerprint()

	r.mu.Lock()
	defer r.mu.Unlock()

	if class, ok := r.classes[fingerprint]; ok {
		return class
	}

	compiled := r.compile(style)
	h := fnv.New32a()
	h.Write([]byte(fingerprint))
	class := fmt.Sprintf("glz-%08x", h.Sum32())

	r.classes[fingerprint] = class
	r.styles[class] = compiled
	return class
}

// Style returns the lipgloss style registered under a class.
func (r *Lipgloss) Style(class string) (lipgloss.Style, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	style, ok := r.styles[class]
	return style, ok
}

// Apply renders text with the style registered under a class. Unknown
// classes render the text unchanged.
func (r *Lipgloss) Apply(class, text string) string {
	style, ok := r.Style(class)
	if !ok {
		return text
	}
	return style.Render(text)
}

// compile maps the closed property set onto a lipgloss style. Unknown
// properties are ignored so themes can carry renderer-specific extras.
func (r *Lipgloss) compile(style *merge.Value) lipgloss.Style {
	s := lipgloss.NewStyle()
	for _, key := range style.Keys() {
		value, _ := style.Get(key)
		s = r.applyProperty(s, key, value)
	}
	return s
}

func (r *Lipgloss) applyProperty(s lipgloss.Style, key string, value *merge.Value) lipgloss.Style {
	switch key {
	case "foreground":
		if color, ok := r.color(value); ok {
			s = s.Foreground(color)
		}
	case "background":
		if color, ok := r.color(value); ok {
			s = s.Background(color)
		}
	case "borderForeground":
		if color, ok := r.color(value); ok {
			s = s.BorderForeground(color)
		}
	case "bold":
		if b, ok := value.AsBool(); ok {
			s = s.Bold(b)
		}
	case "italic":
		if b, ok := value.AsBool(); ok {
			s = s.Italic(b)
		}
	case "faint":
		if b, ok := value.AsBool(); ok {
			s = s.Faint(b)
		}
	case "underline":
		if b, ok := value.AsBool(); ok {
			s = s.Underline(b)
		}
	case "strikethrough":
		if b, ok := value.AsBool(); ok {
			s = s.Strikethrough(b)
		}
	case "reverse":
		if b, ok := value.AsBool(); ok {
			s = s.Reverse(b)
		}
	case "padding":
		s = s.Padding(box(value)...)
	case "margin":
		s = s.Margin(box(value)...)
	case "width":
		if n, ok := value.AsInt(); ok {
			s = s.Width(n)
		}
	case "height":
		if n, ok := value.AsInt(); ok {
			s = s.Height(n)
		}
	case "align":
		if a, ok := value.AsString(); ok {
			s = s.Align(alignment(a))
		}
	case "border":
		if name, ok := value.AsString(); ok {
			s = s.Border(border(name))
		}
	}
	return s
}

// color converts a scalar color value, degrading through the terminal
// profile. Profiles without color support drop the property.
func (r *Lipgloss) color(value *merge.Value) (lipgloss.TerminalColor, bool) {
	raw, ok := value.AsString()
	if !ok || raw == "" {
		return nil, false
	}
	if r.profile == termenv.Ascii {
		return nil, false
	}
	converted := r.profile.Color(raw)
	if converted == nil {
		return nil, false
	}
	return lipgloss.Color(raw), true
}

// box reads a spacing value: a single int or a sequence of up to four ints
// in CSS order.
func box(value *merge.Value) []int {
	if n, ok := value.AsInt(); ok {
		return []int{n}
	}
	items := value.Items()
	if len(items) == 0 {
		return nil
	}
	sides := make([]int, 0, 4)
	for _, item := range items {
		if n, ok := item.AsInt(); ok {
			sides = append(sides, n)
		}
		if len(sides) == 4 {
			break
		}
	}
	return sides
}

func alignment(name string) lipgloss.Position {
	switch name {
	case "center":
		return lipgloss.Center
	case "right":
		return lipgloss.Right
	default:
		return lipgloss.Left
	}
}

func border(name string) lipgloss.Border {
	switch name {
	case "normal":
		return lipgloss.NormalBorder()
	case "rounded":
		return lipgloss.RoundedBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.Border{}
	}
}
