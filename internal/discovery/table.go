// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"maps"
	"slices"
)

type (
	// Candidate is a discovered subcommand before de-duplication.
	Candidate struct {
		// ShortName is the file name with the prefix stripped.
		ShortName string
		// Path is the absolute path of the executable inside its search directory.
		Path string
		// Rank is the index of the search-path directory the file was found in.
		Rank int
	}

	// CommandTable maps short names to executable paths. It is built once per
	// invocation by NewCommandTable and never mutated afterwards.
	CommandTable struct {
		entries map[string]Candidate
	}
)

// NewCommandTable folds candidates into a table. For every short name the
// candidate with the lowest rank is kept; among equal ranks the first one in
// slice order wins. Later duplicates are dropped silently.
func NewCommandTable(candidates []Candidate) *CommandTable {
	entries := make(map[string]Candidate, len(candidates))
	for _, c := range candidates {
		existing, ok := entries[c.ShortName]
		if ok && existing.Rank <= c.Rank {
			continue
		}
		entries[c.ShortName] = c
	}
	return &CommandTable{entries: entries}
}

// Lookup returns the executable path registered for name.
func (t *CommandTable) Lookup(name string) (string, bool) {
	if t == nil {
		return "", false
	}
	c, ok := t.entries[name]
	return c.Path, ok
}

// Candidate returns the winning candidate for name, including its rank.
func (t *CommandTable) Candidate(name string) (Candidate, bool) {
	if t == nil {
		return Candidate{}, false
	}
	c, ok := t.entries[name]
	return c, ok
}

// Names returns the short names in sorted order, for display.
func (t *CommandTable) Names() []string {
	if t == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(t.entries))
}

// Len returns the number of distinct short names.
func (t *CommandTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Map returns a copy of the table as name -> path.
func (t *CommandTable) Map() map[string]string {
	out := make(map[string]string, t.Len())
	if t == nil {
		return out
	}
	for name, c := range t.entries {
		out[name] = c.Path
	}
	return out
}
