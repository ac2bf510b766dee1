package vault

import (
	"fmt"
	"strings"

	"github.com/aviaryhq/cortex/internal/note"
)

// Move renames a note, refiling it under a new identifier, and carries
// its descendants along. Each moved note's parent metadata is rewritten
// to match its new identifier prefix.
func (v *Vault) Move(oldID, newID string) ([]string, error) {
	if err := note.ValidateID(newID); err != nil {
		return nil, err
	}
	if !v.Exists(oldID) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, oldID)
	}
	if v.Exists(newID) {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyExists, newID)
	}
	if newParent := note.ParentOf(newID); newParent != "" && !v.Exists(newParent) {
		return nil, fmt.Errorf("%w: parent %s", ErrNotFound, newParent)
	}

	ids, err := v.List()
	if err != nil {
		return nil, err
	}
	renames := [][2]string{{oldID, newID}}
	for _, id := range ids {
		if strings.HasPrefix(id, oldID+".") {
			renames = append(renames, [2]string{id, newID + strings.TrimPrefix(id, oldID)})
		}
	}

	var moved []string
	for _, r := range renames {
		n, err := v.Load(r[0])
		if err != nil {
			return moved, err
		}
		n.ID = r[1]
		if _, ok := n.Meta.Get(note.KeyParent); ok {
			n.Meta.Set(note.KeyParent, note.ParentOf(r[1]))
		}
		if err := v.Save(n); err != nil {
			return moved, err
		}
		if err := v.Delete(r[0]); err != nil {
			return moved, err
		}
		moved = append(moved, r[1])
	}
	return moved, nil
}
