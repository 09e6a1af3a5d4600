package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/glazekit/glaze/internal/merge"
	"github.com/glazekit/glaze/internal/theme"
	glazeerrors "github.com/glazekit/glaze/pkg/errors"
)

// hclRaw captures the site block first; its attributes are literals and need
// no evaluation context.
type hclRaw struct {
	Site   *hclBlock `hcl:"site,block"`
	Remain hcl.Body  `hcl:",remain"`
}

// hclRoot decodes the full document once the site variables feed the
// evaluation context.
type hclRoot struct {
	Meta       *hclMeta       `hcl:"theme,block"`
	Site       *hclBlock      `hcl:"site,block"`
	Components []hclComponent `hcl:"component,block"`
}

type hclMeta struct {
	Name string `hcl:"name"`
}

type hclBlock struct {
	Body hcl.Body `hcl:",remain"`
}

type hclComponent struct {
	Name      string      `hcl:"name,label"`
	Variables *hclBlock   `hcl:"variables,block"`
	Styles    []hclStyles `hcl:"styles,block"`
}

type hclStyles struct {
	Slot string   `hcl:"slot,label"`
	Body hcl.Body `hcl:",remain"`
}

// loadHCL parses an HCL theme document in two passes: the site block is
// decoded first without a context, then its values and the color functions
// feed the evaluation context for the component blocks. HCL expressions
// evaluate at load time, so HCL themes translate to literal token specs.
func (l *Loader) loadHCL(path string) (*theme.Theme, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, glazeerrors.NewParseError(path, 0, err)
	}

	file, diags := hclsyntax.ParseConfig(src, path, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, glazeerrors.NewParseError(path, hclLine(diags), diags)
	}

	var raw hclRaw
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, glazeerrors.NewParseError(path, hclLine(diags), diags)
	}

	site := map[string]cty.Value{}
	if raw.Site != nil {
		attrs, diags := raw.Site.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, glazeerrors.NewParseError(path, hclLine(diags), diags)
		}
		for name, attr := range attrs {
			value, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, glazeerrors.NewParseError(path, hclLine(diags), diags)
			}
			site[name] = value
		}
	}

	ctx := &hcl.EvalContext{
		Variables: map[string]cty.Value{"site": cty.ObjectVal(site)},
		Functions: colorFunctions(),
	}

	var root hclRoot
	if diags := gohcl.DecodeBody(file.Body, ctx, &root); diags.HasErrors() {
		return nil, glazeerrors.NewParseError(path, hclLine(diags), diags)
	}
	if root.Meta == nil || root.Meta.Name == "" {
		return nil, glazeerrors.NewValidationError("theme.name", "theme block with a name is required", nil)
	}

	components := make(map[string]theme.ComponentTheme, len(root.Components))
	for _, comp := range root.Components {
		contribution := theme.ComponentTheme{
			Variables: map[string]theme.TokenSpec{},
			Styles:    theme.Styles{},
		}
		if comp.Variables != nil {
			attrs, diags := comp.Variables.Body.JustAttributes()
			if diags.HasErrors() {
				return nil, glazeerrors.NewParseError(path, hclLine(diags), diags)
			}
			for name, attr := range attrs {
				value, diags := attr.Expr.Value(ctx)
				if diags.HasErrors() {
					return nil, glazeerrors.NewParseError(path, hclLine(diags), diags)
				}
				contribution.Variables[name] = theme.Literal(ctyToValue(value))
			}
		}
		for _, styles := range comp.Styles {
			attrs, diags := styles.Body.JustAttributes()
			if diags.HasErrors() {
				return nil, glazeerrors.NewParseError(path, hclLine(diags), diags)
			}
			properties := make(map[string]*merge.Value, len(attrs))
			for name, attr := range attrs {
				value, diags := attr.Expr.Value(ctx)
				if diags.HasErrors() {
					return nil, glazeerrors.NewParseError(path, hclLine(diags), diags)
				}
				properties[name] = ctyToValue(value)
			}
			styleObject := merge.Map(properties)
			contribution.Styles[styles.Slot] = func(vars *merge.Value, rc theme.RenderContext) *merge.Value {
				return styleObject
			}
		}
		components[comp.Name] = contribution
	}

	siteEntries := make(map[string]*merge.Value, len(site))
	for name, value := range site {
		siteEntries[name] = ctyToValue(value)
	}

	t := theme.New(root.Meta.Name, merge.Map(siteEntries), components)
	l.log.WithFields(map[string]any{"path": path, "theme": t.Name(), "format": "hcl"}).
		Debug("theme document loaded")
	return t, nil
}

// colorFunctions exposes the color derivations to HCL expressions.
func colorFunctions() map[string]function.Function {
	colorFn := func(derive func(string, float64) string) function.Function {
		return function.New(&function.Spec{
			Params: []function.Parameter{
				{Name: "color", Type: cty.String},
				{Name: "amount", Type: cty.Number},
			},
			Type: function.StaticReturnType(cty.String),
			Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
				amount, _ := args[1].AsBigFloat().Float64()
				return cty.StringVal(derive(args[0].AsString(), amount)), nil
			},
		})
	}
	return map[string]function.Function{
		"lighten": colorFn(Lighten),
		"darken":  colorFn(Darken),
		"alpha":   colorFn(Alpha),
	}
}

// ctyToValue converts an evaluated HCL value into a merge value.
func ctyToValue(value cty.Value) *merge.Value {
	if value.IsNull() {
		return merge.Nil()
	}
	ty := value.Type()
	switch {
	case ty == cty.String:
		return merge.String(value.AsString())
	case ty == cty.Bool:
		return merge.Bool(value.True())
	case ty == cty.Number:
		f, _ := value.AsBigFloat().Float64()
		if f == float64(int(f)) {
			return merge.Int(int(f))
		}
		return merge.Float(f)
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		var items []*merge.Value
		for it := value.ElementIterator(); it.Next(); {
			_, element := it.Element()
			items = append(items, ctyToValue(element))
		}
		return merge.Seq(items...)
	case ty.IsObjectType() || ty.IsMapType():
		entries := make(map[string]*merge.Value)
		for it := value.ElementIterator(); it.Next(); {
			key, element := it.Element()
			entries[key.AsString()] = ctyToValue(element)
		}
		return merge.Map(entries)
	default:
		return merge.String(fmt.Sprintf("%v", value))
	}
}

func hclLine(diags hcl.Diagnostics) int {
	for _, diag := range diags {
		if diag.Subject != nil {
			return diag.Subject.Start.Line
		}
	}
	return 0
}
