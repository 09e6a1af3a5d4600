package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRemoveCmd(rootFlags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <theme-id>",
		Short: "Remove a theme from the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd, rootFlags, args[0])
		},
	}

	return cmd
}

func runRemove(cmd *cobra.Command, rootFlags *rootFlags, id string) error {
	reg, err := openRegistry(rootFlags)
	if err != nil {
		return newCommandError("remove", "loading theme registry", err, "Check registry file permissions and try again.")
	}

	if err := reg.Remove(id); err != nil {
		return newCommandError("remove", fmt.Sprintf("removing theme %q", id), err, "Run 'glaze list' to see installed themes.")
	}

	if err := reg.Save(); err != nil {
		return newCommandError("remove", "saving registry", err, "Check disk space and file permissions, then retry.")
	}

	if cache := openStatusCache(); cache != nil {
		cache.Invalidate(id)
		_ = cache.Save()
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed theme '%s'\n", id)
	fmt.Fprintln(cmd.OutOrStdout(), "  The theme document itself was left on disk.")
	return nil
}
