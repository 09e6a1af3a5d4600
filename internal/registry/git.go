package registry

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	git "github.com/go-git/go-git/v5"

	glazeerrors "github.com/glazekit/glaze/pkg/errors"
)

// AddGit installs themes from a git repository. The repository is shallow
// cloned next to the index file and every theme document found in it is
// parsed, validated and registered. Documents that fail to parse are skipped
// with a warning; the install fails only when the clone yields no usable
// theme at all.
func (r *Registry) AddGit(ctx context.Context, url string) ([]Entry, error) {
	repoID := GenerateThemeID(url)
	dest := filepath.Join(filepath.Dir(r.path), "themes", repoID)

	if _, err := os.Stat(dest); err == nil {
		return nil, fmt.Errorf("destination %s already exists; remove it before reinstalling", dest)
	}

	cloneOpts := &git.CloneOptions{
		URL:          url,
		Depth:        1,
		SingleBranch: true,
	}
	if _, err := git.PlainCloneContext(ctx, dest, false, cloneOpts); err != nil {
		return nil, glazeerrors.NewSourceError(url, err)
	}

	docs, err := findThemeDocuments(dest)
	if err != nil {
		return nil, glazeerrors.NewSourceError(url, err)
	}

	var entries []Entry
	for _, doc := range docs {
		th, err := r.loader.Load(doc)
		if err != nil {
			r.log.WithFields(map[string]any{"path": doc}).
				Error(err, "skipping document that failed to parse")
			continue
		}

		info, err := os.Stat(doc)
		if err != nil {
			return nil, glazeerrors.NewSourceError(doc, err)
		}

		entry := Entry{
			ID:      th.Name(),
			Name:    th.Name(),
			Path:    doc,
			Source:  SourceGit,
			URL:     url,
			AddedAt: time.Now().UTC(),
			ModTime: info.ModTime().UTC(),
		}
		if err := r.add(entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		_ = os.RemoveAll(dest)
		return nil, glazeerrors.NewSourceError(url, fmt.Errorf("repository contains no valid theme documents"))
	}

	r.log.WithFields(map[string]any{"url": url, "themes": len(entries)}).
		Info("themes installed from repository")
	return entries, nil
}

// findThemeDocuments walks a cloned repository for theme documents, skipping
// the .git directory.
func findThemeDocuments(root string) ([]string, error) {
	var docs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		switch filepath.Ext(path) {
		case ".yaml", ".yml", ".hcl":
			docs = append(docs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}
