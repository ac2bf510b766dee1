package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aviaryhq/cortex/internal/note"
)

// Archive moves a note and all of its descendants into the archive
// namespace. The parent's checklist link, if present, is rewritten to
// point at the archived identifier so the history stays navigable.
func (v *Vault) Archive(id string) ([]string, error) {
	if note.IsArchived(id) {
		return nil, fmt.Errorf("archive %s: already archived", id)
	}
	if !v.Exists(id) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	ids, err := v.List()
	if err != nil {
		return nil, err
	}
	subtree := []string{id}
	for _, other := range ids {
		if strings.HasPrefix(other, id+".") {
			subtree = append(subtree, other)
		}
	}

	if err := os.MkdirAll(filepath.Join(v.Root, ArchiveDir), 0o755); err != nil {
		return nil, fmt.Errorf("archive %s: %w", id, err)
	}
	var moved []string
	for _, sub := range subtree {
		dst := note.ArchivePrefix + sub
		if err := os.Rename(v.NotePath(sub), v.NotePath(dst)); err != nil {
			return moved, fmt.Errorf("archive %s: %w", sub, err)
		}
		moved = append(moved, dst)
	}

	if parent := note.ParentOf(id); parent != "" && v.Exists(parent) {
		if err := v.retargetLink(parent, id, note.ArchivePrefix+id); err != nil {
			return moved, err
		}
	}
	return moved, nil
}

// retargetLink rewrites markdown link destinations equal to oldID in the
// note's body to newID. Other lines are left byte-for-byte untouched.
func (v *Vault) retargetLink(id, oldID, newID string) error {
	n, err := v.Load(id)
	if err != nil {
		return err
	}
	old := "(" + oldID + ")"
	updated := strings.ReplaceAll(n.Body, old, "("+newID+")")
	if updated == n.Body {
		return nil
	}
	n.Body = updated
	return v.Save(n)
}
