package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/glazekit/glaze/internal/components"
	"github.com/glazekit/glaze/internal/config"
	"github.com/glazekit/glaze/internal/tui"
)

type previewOptions struct {
	themePaths []string
	installed  bool
}

func newPreviewCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &previewOptions{}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Browse the demo components across themes interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.themePaths, "theme", nil, "Extra theme file to include in the cycle (repeatable)")
	cmd.Flags().BoolVar(&opts.installed, "installed", false, "Include every installed theme in the cycle")

	return cmd
}

func runPreview(cmd *cobra.Command, rootFlags *rootFlags, opts *previewOptions) error {
	log, err := newLogger(rootFlags)
	if err != nil {
		return err
	}
	loader := config.NewLoader(log)

	var extra []tui.NamedTheme
	for _, path := range opts.themePaths {
		th, err := loader.Load(path)
		if err != nil {
			return newCommandError("preview", fmt.Sprintf("loading theme %q", path), err, "Fix the theme document errors shown above and try again.")
		}
		extra = append(extra, tui.NamedTheme{Label: th.Name(), Theme: th})
	}

	if opts.installed {
		reg, err := openRegistry(rootFlags)
		if err != nil {
			return newCommandError("preview", "loading theme registry", err, "Check registry file permissions and try again.")
		}
		for _, entry := range reg.List() {
			th, err := reg.LoadTheme(entry.ID)
			if err != nil {
				log.Error(err, "skipping installed theme that failed to load")
				continue
			}
			extra = append(extra, tui.NamedTheme{Label: entry.ID, Theme: th})
		}
	}

	kit := components.NewKit(components.KitOptions{Logger: log})
	model := tui.NewModel(kit, extra...)

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}
