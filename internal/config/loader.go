package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/glazekit/glaze/internal/logger"
	"github.com/glazekit/glaze/internal/merge"
	"github.com/glazekit/glaze/internal/theme"
	glazeerrors "github.com/glazekit/glaze/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Loader reads theme documents from disk.
type Loader struct {
	log *logger.Logger
}

// NewLoader creates a Loader. The logger may be nil.
func NewLoader(log *logger.Logger) *Loader {
	return &Loader{log: log.WithComponent("config")}
}

// Load reads, validates and translates a theme document, dispatching on the
// file extension. Supported formats are YAML (.yaml, .yml) and HCL (.hcl).
func (l *Loader) Load(path string) (*theme.Theme, error) {
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		return l.loadYAML(path)
	case ".hcl":
		return l.loadHCL(path)
	default:
		return nil, glazeerrors.NewParseError(path, 0,
			fmt.Errorf("unsupported theme file extension %q", ext))
	}
}

func (l *Loader) loadYAML(path string) (*theme.Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, glazeerrors.NewParseError(path, 0, err)
	}

	doc, err := ParseYAML(data, path)
	if err != nil {
		return nil, err
	}

	t, err := Translate(doc)
	if err != nil {
		return nil, err
	}
	l.log.WithFields(map[string]any{"path": path, "theme": t.Name(), "format": "yaml"}).
		Debug("theme document loaded")
	return t, nil
}

// ParseYAML decodes and validates a YAML theme document.
func ParseYAML(data []byte, path string) (*Document, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, glazeerrors.NewParseError(path, extractLine(err), err)
	}

	var doc Document
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &doc,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, glazeerrors.NewParseError(path, 0, err)
	}

	if err := validateDocument(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Translate converts a validated document into an immutable theme.
func Translate(doc *Document) (*theme.Theme, error) {
	components := make(map[string]theme.ComponentTheme, len(doc.Components))
	for compName, comp := range doc.Components {
		contribution := theme.ComponentTheme{
			Variables: make(map[string]theme.TokenSpec, len(comp.Variables)),
			Styles:    make(theme.Styles, len(comp.Styles)),
		}
		for tokenName, raw := range comp.Variables {
			spec, err := tokenSpec(raw)
			if err != nil {
				return nil, glazeerrors.NewValidationError(
					fmt.Sprintf("components.%s.variables.%s", compName, tokenName),
					err.Error(), err)
			}
			contribution.Variables[tokenName] = spec
		}
		for slot, properties := range comp.Styles {
			contribution.Styles[slot] = slotStyleFunc(properties)
		}
		components[compName] = contribution
	}

	return theme.New(doc.Name, merge.FromGo(anyMap(doc.SiteVariables)), components), nil
}

// anyMap keeps FromGo happy when the document carries no site variables.
func anyMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}
	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}
	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}
	return line
}
