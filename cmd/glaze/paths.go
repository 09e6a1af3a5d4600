package main

import (
	"os"
	"path/filepath"
)

// stateDirName is the per-user directory holding the registry index and the
// validation status cache.
const stateDirName = ".glaze"

func statePath(file string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, stateDirName, file), nil
}

func defaultRegistryPath() (string, error) { return statePath("registry.json") }

func defaultStatusCachePath() (string, error) { return statePath("status.json") }
