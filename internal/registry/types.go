package registry

import "time"

// Source identifies where an installed theme came from.
type Source string

const (
	// SourceLocal marks a theme registered from a file on disk.
	SourceLocal Source = "local"
	// SourceGit marks a theme installed by cloning a repository.
	SourceGit Source = "git"
)

// Entry is one installed theme in the registry index.
type Entry struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	Source      Source    `json:"source"`
	URL         string    `json:"url,omitempty"`
	Description string    `json:"description,omitempty"`
	AddedAt     time.Time `json:"added_at"`

	// ModTime is the theme document's modification time at registration,
	// kept so staleness checks avoid reparsing the document.
	ModTime time.Time `json:"mod_time"`
}

// indexFile is the JSON file format of the registry index.
type indexFile struct {
	Version string  `json:"version"`
	Themes  []Entry `json:"themes"`
}
