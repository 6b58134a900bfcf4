package taginput

import (
	"strings"

	"github.com/gravitrone/nebula-dash/internal/api"
)

// MaxSuggestions caps the directory matches shown for one draft.
const MaxSuggestions = 8

// Suggestions is the candidate list for a draft: directory matches in
// directory order, optionally followed by a "create" entry.
type Suggestions struct {
	Tags        []api.Tag
	OfferCreate bool
	Draft       string
}

// Len counts every selectable row, including the create entry.
func (s Suggestions) Len() int {
	n := len(s.Tags)
	if s.OfferCreate {
		n++
	}
	return n
}

// IsCreate reports whether idx points at the create entry.
func (s Suggestions) IsCreate(idx int) bool {
	return s.OfferCreate && idx == len(s.Tags)
}

// Suggest is pure: directory entries containing the trimmed draft
// (case-insensitive) that are not selected, capped at MaxSuggestions, plus
// whether the draft may be created as a new tag.
func Suggest(directory []api.Tag, draft string, selected []string) Suggestions {
	trimmed := strings.TrimSpace(draft)
	needle := strings.ToLower(trimmed)
	out := Suggestions{Draft: trimmed}

	inDirectory := false
	for _, tag := range directory {
		if trimmed != "" && strings.EqualFold(tag.Name, trimmed) {
			inDirectory = true
		}
		if len(out.Tags) >= MaxSuggestions {
			continue
		}
		if !strings.Contains(strings.ToLower(tag.Name), needle) {
			continue
		}
		if containsExact(selected, tag.Name) {
			continue
		}
		out.Tags = append(out.Tags, tag)
	}

	out.OfferCreate = trimmed != "" && !inDirectory && !containsExact(selected, trimmed)
	return out
}

// containsExact is a case-sensitive membership test. Selected-set
// de-duplication is deliberately case-sensitive while directory matching is not.
func containsExact(list []string, name string) bool {
	for _, item := range list {
		if item == name {
			return true
		}
	}
	return false
}
