package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/glazekit/glaze/internal/components"
	"github.com/glazekit/glaze/internal/config"
	"github.com/glazekit/glaze/internal/merge"
	"github.com/glazekit/glaze/internal/theme"
)

type resolveOptions struct {
	props      []string
	rtl        bool
	jsonOutput bool
}

func newResolveCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve <theme-file> <component>",
		Short: "Print the resolved variables and styles for a component",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, rootFlags, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.props, "prop", "p", nil, "Active prop as name=value (repeatable)")
	cmd.Flags().BoolVar(&opts.rtl, "rtl", false, "Resolve for right-to-left layout")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runResolve(cmd *cobra.Command, rootFlags *rootFlags, themePath, component string, opts *resolveOptions) error {
	log, err := newLogger(rootFlags)
	if err != nil {
		return err
	}

	th, err := config.NewLoader(log).Load(themePath)
	if err != nil {
		return newCommandError("resolve", fmt.Sprintf("loading theme %q", themePath), err, "Fix the theme document errors shown above and try again.")
	}

	kit := components.NewKit(components.KitOptions{Theme: th, Logger: log})
	def, ok := kit.Definition(component)
	if !ok {
		return newCommandError("resolve", fmt.Sprintf("looking up component %q", component),
			fmt.Errorf("unknown component"),
			fmt.Sprintf("Known components: %s.", strings.Join(sortedNames(kit), ", ")))
	}

	props, err := parseProps(opts.props)
	if err != nil {
		return newCommandError("resolve", "parsing props", err, "Pass props as name=value, e.g. --prop variant=danger.")
	}

	ctx := theme.RenderContext{}
	if opts.rtl {
		ctx.Direction = theme.DirectionRTL
	}

	vars, styles, err := theme.ResolveForComponent(th, def, props, nil, ctx)
	if err != nil {
		return newCommandError("resolve", fmt.Sprintf("resolving component %q", component), err, "Fix the token errors shown above and try again.")
	}

	if opts.jsonOutput {
		return renderResolveJSON(cmd, th, component, vars, styles)
	}
	return renderResolveText(cmd, th, component, vars, styles)
}

func sortedNames(kit *components.Kit) []string {
	names := kit.ComponentNames()
	sort.Strings(names)
	return names
}

// parseProps turns name=value pairs into props, mapping the literals true and
// false to bools so boolean variants activate naturally.
func parseProps(pairs []string) (theme.Props, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	props := make(theme.Props, len(pairs))
	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("invalid prop %q", pair)
		}
		switch value {
		case "true":
			props[name] = true
		case "false":
			props[name] = false
		default:
			props[name] = value
		}
	}
	return props, nil
}

func renderResolveText(cmd *cobra.Command, th *theme.Theme, component string, vars *merge.Value, styles map[string]*merge.Value) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Theme: %s\nComponent: %s\n\n", th.Name(), component)

	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "VARIABLE\tVALUE")
	for _, name := range vars.Keys() {
		value, _ := vars.Get(name)
		fmt.Fprintf(writer, "%s\t%v\n", name, value.ToGo())
	}
	if err := writer.Flush(); err != nil {
		return err
	}

	slots := make([]string, 0, len(styles))
	for slot := range styles {
		slots = append(slots, slot)
	}
	sort.Strings(slots)

	for _, slot := range slots {
		fmt.Fprintf(out, "\nSlot %q:\n", slot)
		writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		style := styles[slot]
		for _, prop := range style.Keys() {
			value, _ := style.Get(prop)
			fmt.Fprintf(writer, "  %s\t%v\n", prop, value.ToGo())
		}
		if err := writer.Flush(); err != nil {
			return err
		}
	}
	return nil
}

type resolveJSONPayload struct {
	Theme     string         `json:"theme"`
	Component string         `json:"component"`
	Variables map[string]any `json:"variables"`
	Styles    map[string]any `json:"styles"`
}

func renderResolveJSON(cmd *cobra.Command, th *theme.Theme, component string, vars *merge.Value, styles map[string]*merge.Value) error {
	variables, _ := vars.ToGo().(map[string]any)
	styleOut := make(map[string]any, len(styles))
	for slot, style := range styles {
		styleOut[slot] = style.ToGo()
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(resolveJSONPayload{
		Theme:     th.Name(),
		Component: component,
		Variables: variables,
		Styles:    styleOut,
	})
}
