package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAddCmd(rootFlags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <theme-file-or-git-url>",
		Short: "Install a theme from a file or a git repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, rootFlags, args[0])
		},
	}

	return cmd
}

func runAdd(cmd *cobra.Command, rootFlags *rootFlags, source string) error {
	reg, err := openRegistry(rootFlags)
	if err != nil {
		return newCommandError("add", "loading theme registry", err, "Check that you have write access to the registry directory.")
	}

	if isGitSource(source) {
		entries, err := reg.AddGit(cmd.Context(), source)
		if err != nil {
			return newCommandError("add", fmt.Sprintf("installing from %q", source), err, "Check the repository URL and your network connection.")
		}
		if err := reg.Save(); err != nil {
			return newCommandError("add", "saving registry", err, "Check disk space and file permissions, then retry.")
		}
		for _, entry := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Installed theme '%s'\n  Path: %s\n", entry.ID, entry.Path)
		}
		return nil
	}

	entry, err := reg.AddLocal(source)
	if err != nil {
		return newCommandError("add", fmt.Sprintf("registering %q", source), err, "Fix the theme document errors shown above and try again.")
	}
	if err := reg.Save(); err != nil {
		return newCommandError("add", "saving registry", err, "Check disk space and file permissions, then retry.")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Installed theme '%s'\n  Path: %s\n", entry.ID, entry.Path)
	fmt.Fprintln(cmd.OutOrStdout(), "\nRun 'glaze preview --theme "+entry.Path+"' to see it in action.")
	return nil
}

// isGitSource detects repository URLs; everything else is treated as a local
// document path.
func isGitSource(source string) bool {
	return strings.HasPrefix(source, "https://") ||
		strings.HasPrefix(source, "git@") ||
		strings.HasPrefix(source, "ssh://") ||
		strings.HasSuffix(source, ".git")
}

func newCommandError(operation, context string, cause error, suggestion string) error {
	return &commandError{operation: operation, context: context, cause: cause, suggestion: suggestion}
}

type commandError struct {
	operation  string
	context    string
	cause      error
	suggestion string
}

func (e *commandError) Error() string {
	return fmt.Sprintf("Failed to %s: %s\n\nError: %v\n\nSuggestion: %s", e.operation, e.context, e.cause, e.suggestion)
}

func (e *commandError) Unwrap() error { return e.cause }
