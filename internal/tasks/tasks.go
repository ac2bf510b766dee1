// Package tasks mutates task state and keeps parent checklists in sync
// with it.
package tasks

import (
	"fmt"
	"time"

	"github.com/aviaryhq/cortex/internal/dates"
	"github.com/aviaryhq/cortex/internal/note"
	"github.com/aviaryhq/cortex/internal/vault"
)

// Engine performs task mutations against a vault. Now is injectable so
// tests get stable modified dates.
type Engine struct {
	Vault *vault.Vault
	Now   func() time.Time
}

// NewEngine returns an engine over a vault using the wall clock.
func NewEngine(v *vault.Vault) *Engine {
	return &Engine{Vault: v, Now: time.Now}
}

// SetStatus updates a note's status and modified fields, saves it, and
// syncs the parent's checklist glyph. The whole operation is idempotent
// apart from the modified date.
func (e *Engine) SetStatus(id string, status note.Status) error {
	n, err := e.Vault.Load(id)
	if err != nil {
		return err
	}
	n.Meta.Set(note.KeyStatus, string(status))
	n.Meta.Set(note.KeyModified, dates.Today(e.Now()))
	if err := e.Vault.Save(n); err != nil {
		return err
	}
	return e.SyncParentCheckbox(id)
}

// TaskInfo is a row in a task listing.
type TaskInfo struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Status note.Status `json:"status"`
	Due    string      `json:"due,omitempty"`
}

// ListTasks returns the direct child tasks of a project or group, sorted
// by identifier. Children that fail to parse are reported as errors.
func (e *Engine) ListTasks(parentID string, idx *vault.Index) ([]TaskInfo, error) {
	var infos []TaskInfo
	for _, childID := range idx.Children(parentID) {
		n, err := e.Vault.Load(childID)
		if err != nil {
			return nil, fmt.Errorf("list tasks of %s: %w", parentID, err)
		}
		if n.Type() != "task" {
			continue
		}
		infos = append(infos, TaskInfo{
			ID:     n.ID,
			Title:  n.Title(),
			Status: n.Status(),
			Due:    n.Meta.GetString(note.KeyDue),
		})
	}
	return infos, nil
}
