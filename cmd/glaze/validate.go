package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/glazekit/glaze/internal/config"
	"github.com/glazekit/glaze/internal/registry"
)

func newValidateCmd(rootFlags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <theme-file>...",
		Short: "Parse and validate theme documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, rootFlags, args)
		},
	}

	return cmd
}

func runValidate(cmd *cobra.Command, rootFlags *rootFlags, paths []string) error {
	log, err := newLogger(rootFlags)
	if err != nil {
		return err
	}
	loader := config.NewLoader(log)

	cache := openStatusCache()

	failed := 0
	for _, path := range paths {
		th, err := loader.Load(path)
		if err != nil {
			failed++
			fmt.Fprintf(cmd.OutOrStdout(), "✗ %s\n  %v\n", path, err)
			recordStatus(cache, registry.GenerateThemeID(path), path, registry.CachedStatus{
				Valid:     false,
				Error:     err.Error(),
				CheckedAt: time.Now().UTC(),
			})
			continue
		}

		components := len(th.ComponentNames())
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s (theme %q, %d components)\n", path, th.Name(), components)
		recordStatus(cache, th.Name(), path, registry.CachedStatus{
			Valid:      true,
			Components: components,
			CheckedAt:  time.Now().UTC(),
		})
	}

	if cache != nil {
		_ = cache.Save()
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed validation", failed, len(paths))
	}
	return nil
}

// openStatusCache best-effort opens the shared status cache. Validation still
// works without one.
func openStatusCache() *registry.StatusCache {
	path, err := defaultStatusCachePath()
	if err != nil {
		return nil
	}
	cache, err := registry.NewStatusCache(path)
	if err != nil {
		return nil
	}
	return cache
}

func recordStatus(cache *registry.StatusCache, id, path string, status registry.CachedStatus) {
	if cache == nil {
		return
	}
	if info, err := os.Stat(path); err == nil {
		status.ModTime = info.ModTime().UTC()
	}
	cache.Set(id, status)
}
