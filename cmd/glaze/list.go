package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/glazekit/glaze/internal/registry"
)

type listOptions struct {
	jsonOutput bool
}

func newListCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installed themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runList(cmd *cobra.Command, rootFlags *rootFlags, opts *listOptions) error {
	reg, err := openRegistry(rootFlags)
	if err != nil {
		return newCommandError("list", "loading theme registry", err, "Check registry file permissions and try again.")
	}

	entries := reg.List()
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No themes installed yet.")
		fmt.Fprintln(cmd.OutOrStdout(), "\nRun 'glaze add <theme-file>' to install your first theme.")
		return nil
	}

	cache := openStatusCache()
	enriched := enrichWithStatus(entries, cache)

	if opts.jsonOutput {
		return renderListJSON(cmd, enriched)
	}
	return renderListTable(cmd, enriched)
}

type themeWithStatus struct {
	Entry  registry.Entry
	Status registry.CachedStatus
	Cached bool
}

func enrichWithStatus(entries []registry.Entry, cache *registry.StatusCache) []themeWithStatus {
	enriched := make([]themeWithStatus, len(entries))
	for i, e := range entries {
		var status registry.CachedStatus
		cached := false
		if cache != nil {
			status, cached = cache.Get(e.ID, e.ModTime)
		}
		enriched[i] = themeWithStatus{Entry: e, Status: status, Cached: cached}
	}

	sort.Slice(enriched, func(i, j int) bool {
		return enriched[i].Entry.ID < enriched[j].Entry.ID
	})

	return enriched
}

func renderListTable(cmd *cobra.Command, themes []themeWithStatus) error {
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	fmt.Fprintln(writer, "ID\tSOURCE\tSTATUS\tADDED\tPATH")

	useUnicode := supportsUnicode(cmd.OutOrStdout())

	for _, t := range themes {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
			t.Entry.ID,
			t.Entry.Source,
			formatStatus(t, useUnicode),
			formatRelativeTime(t.Entry.AddedAt),
			t.Entry.Path,
		)
	}

	return writer.Flush()
}

type listJSONTheme struct {
	ID      string          `json:"id"`
	Source  registry.Source `json:"source"`
	URL     string          `json:"url,omitempty"`
	Path    string          `json:"path"`
	AddedAt time.Time       `json:"added_at"`
	Valid   *bool           `json:"valid,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type listJSONPayload struct {
	Version string          `json:"version"`
	Count   int             `json:"count"`
	Themes  []listJSONTheme `json:"themes"`
}

func renderListJSON(cmd *cobra.Command, themes []themeWithStatus) error {
	payload := listJSONPayload{
		Version: "1.0",
		Count:   len(themes),
		Themes:  make([]listJSONTheme, len(themes)),
	}

	for i, t := range themes {
		entry := listJSONTheme{
			ID:      t.Entry.ID,
			Source:  t.Entry.Source,
			URL:     t.Entry.URL,
			Path:    t.Entry.Path,
			AddedAt: t.Entry.AddedAt,
			Error:   t.Status.Error,
		}
		if t.Cached {
			valid := t.Status.Valid
			entry.Valid = &valid
		}
		payload.Themes[i] = entry
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func supportsUnicode(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

func formatStatus(t themeWithStatus, useUnicode bool) string {
	ok, bad, unknown := "ok", "invalid", "unchecked"
	if useUnicode {
		ok, bad, unknown = "🟢 ok", "🔴 invalid", "⚪ unchecked"
	}
	if !t.Cached {
		return unknown
	}
	if t.Status.Valid {
		return ok
	}
	return bad
}

func formatRelativeTime(ts time.Time) string {
	if ts.IsZero() {
		return "never"
	}

	delta := time.Since(ts)
	if delta < time.Minute {
		return "just now"
	}
	if delta < time.Hour {
		return fmt.Sprintf("%d minutes ago", int(delta.Minutes()))
	}
	if delta < 24*time.Hour {
		return fmt.Sprintf("%d hours ago", int(delta.Hours()))
	}

	return fmt.Sprintf("%d days ago", int(delta.Hours()/24))
}

func openRegistry(rootFlags *rootFlags) (*registry.Registry, error) {
	log, err := newLogger(rootFlags)
	if err != nil {
		return nil, err
	}
	path, err := defaultRegistryPath()
	if err != nil {
		return nil, err
	}
	return registry.NewRegistry(path, nil, log)
}
