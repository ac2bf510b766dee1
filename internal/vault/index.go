package vault

import (
	"sort"

	"github.com/aviaryhq/cortex/internal/note"
)

// Index is a per-invocation snapshot of the identifier space. It is
// built once per command from a directory scan and never written back.
type Index struct {
	// IDs are the active identifiers, sorted.
	IDs []string

	// Archived are the archived identifiers with their prefix, sorted.
	Archived []string

	children map[string][]string
}

// BuildIndex scans the vault and derives the parent/child relation from
// identifier prefixes.
func (v *Vault) BuildIndex() (*Index, error) {
	ids, err := v.List()
	if err != nil {
		return nil, err
	}
	archived, err := v.ListArchived()
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)
	sort.Strings(archived)

	idx := &Index{IDs: ids, Archived: archived, children: map[string][]string{}}
	for _, id := range ids {
		if parent := note.ParentOf(id); parent != "" {
			idx.children[parent] = append(idx.children[parent], id)
		}
	}
	return idx, nil
}

// Children returns the active child identifiers of id, sorted.
func (idx *Index) Children(id string) []string {
	return idx.children[id]
}

// HasChildren reports whether id has at least one active child.
func (idx *Index) HasChildren(id string) bool {
	return len(idx.children[id]) > 0
}

// Has reports whether id is an active identifier.
func (idx *Index) Has(id string) bool {
	i := sort.SearchStrings(idx.IDs, id)
	return i < len(idx.IDs) && idx.IDs[i] == id
}

// TopLevel returns the identifiers with no parent, sorted.
func (idx *Index) TopLevel() []string {
	var tops []string
	for _, id := range idx.IDs {
		if note.ParentOf(id) == "" {
			tops = append(tops, id)
		}
	}
	return tops
}

// Projects returns the top-level identifiers whose note type is project,
// sorted. Notes that fail to parse are skipped.
func (v *Vault) Projects(idx *Index) []string {
	var projects []string
	for _, id := range idx.TopLevel() {
		n, err := v.Load(id)
		if err != nil {
			continue
		}
		if n.Type() == "project" {
			projects = append(projects, id)
		}
	}
	return projects
}
