package metadata

import (
	"slices"
	"strings"
)

// Record is the parsed metadata of one document.
//
// Title is the document's identity: two records with the same title are the
// same document no matter how their other fields differ. Dependencies holds the
// titles of prerequisite documents. Dependencies and Tags are sets; use
// [NewRecord] or [Record.Normalize] to obtain the canonical sorted,
// de-duplicated form.
//
// A Record is treated as immutable once constructed. Normalize returns a copy
// rather than sorting in place.
type Record struct {
	Title        string   `json:"title"`
	Date         string   `json:"date,omitempty"`
	Description  string   `json:"description,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
	Tags         []string `json:"tags,omitempty"`

	// Source is where the record was read from, usually a file path.
	// It is used for diagnostics only and never for identity.
	Source string `json:"source,omitempty"`
}

// NewRecord builds a normalized record from its identity and set fields.
func NewRecord(title string, dependencies, tags []string) Record {
	return Record{Title: title, Dependencies: dependencies, Tags: tags}.Normalize()
}

// Normalize returns a copy of r with surrounding whitespace trimmed from the
// title and with Dependencies and Tags sorted and de-duplicated. Empty entries
// are dropped.
func (r Record) Normalize() Record {
	r.Title = strings.TrimSpace(r.Title)
	r.Dependencies = normalizeSet(r.Dependencies)
	r.Tags = normalizeSet(r.Tags)
	return r
}

// HasAnyTag reports whether r passes the tag filter: the filter is empty or
// shares at least one tag with r.
func (r Record) HasAnyTag(filter []string) bool {
	if len(filter) == 0 {
		return true
	}
	for _, t := range filter {
		if slices.Contains(r.Tags, t) {
			return true
		}
	}
	return false
}

// Meta flattens the descriptive fields into a map for graph node metadata.
// Empty fields are omitted.
func (r Record) Meta() map[string]any {
	m := make(map[string]any)
	if r.Date != "" {
		m["date"] = r.Date
	}
	if r.Description != "" {
		m["description"] = r.Description
	}
	if len(r.Tags) > 0 {
		m["tags"] = slices.Clone(r.Tags)
	}
	if r.Source != "" {
		m["source"] = r.Source
	}
	return m
}

func normalizeSet(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	slices.Sort(out)
	out = slices.Compact(out)
	if len(out) == 0 {
		return nil
	}
	return out
}
