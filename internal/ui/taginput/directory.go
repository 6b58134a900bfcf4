package taginput

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/nebula-dash/internal/api"
	"github.com/gravitrone/nebula-dash/internal/diag"
)

// TagSource fetches the full tag directory. *api.Client satisfies it.
type TagSource interface {
	ListTags() ([]api.Tag, error)
}

// DirectoryLoadedMsg carries the result of the one directory fetch issued per
// mount. Instance ties it to the mount that requested it.
type DirectoryLoadedMsg struct {
	Instance uint64
	Tags     []api.Tag
	Err      error
}

// Directory is the read-only cache of known tags.
type Directory struct {
	tags   []api.Tag
	loaded bool
	failed bool
}

// NewDirectory builds a loaded directory from tags, keeping their order.
func NewDirectory(tags []api.Tag) Directory {
	cp := make([]api.Tag, len(tags))
	copy(cp, tags)
	return Directory{tags: cp, loaded: true}
}

// Tags returns the cached entries in server order.
func (d Directory) Tags() []api.Tag {
	return d.tags
}

// Loaded is true once a fetch has succeeded.
func (d Directory) Loaded() bool {
	return d.loaded
}

// CreateOnly is true when the fetch failed and only new tags can be minted.
func (d Directory) CreateOnly() bool {
	return d.failed
}

// LookupColor returns the directory color for name, matched case-insensitively.
func (d Directory) LookupColor(name string) (string, bool) {
	for _, tag := range d.tags {
		if strings.EqualFold(tag.Name, name) {
			if tag.Color == "" {
				return "", false
			}
			return tag.Color, true
		}
	}
	return "", false
}

// Usage returns the usage count for name, or 0 when unknown.
func (d Directory) Usage(name string) int {
	for _, tag := range d.tags {
		if strings.EqualFold(tag.Name, name) {
			return tag.UsageCount
		}
	}
	return 0
}

func failedDirectory() Directory {
	return Directory{failed: true}
}

// loadDirectory issues the fetch. Failures go to the diagnostic channel and
// come back as an empty directory.
func loadDirectory(src TagSource, ch *diag.Channel, instance uint64) tea.Cmd {
	return func() tea.Msg {
		tags, err := src.ListTags()
		if err != nil {
			if ch != nil {
				ch.Report("tag-directory", err)
			}
			return DirectoryLoadedMsg{Instance: instance, Err: err}
		}
		return DirectoryLoadedMsg{Instance: instance, Tags: tags}
	}
}
