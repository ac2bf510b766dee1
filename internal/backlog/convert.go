package backlog

import (
	"fmt"
	"strings"
	"time"

	"github.com/aviaryhq/cortex/internal/note"
	"github.com/aviaryhq/cortex/internal/slugs"
	"github.com/aviaryhq/cortex/internal/tasks"
	"github.com/aviaryhq/cortex/internal/vault"
)

// Triage converts inbox items into project tasks.
type Triage struct {
	Vault *vault.Vault
	Tasks *tasks.Engine
}

// ConvertItem turns an inbox item into a task under a project: the task
// file is created from the task template with the item text as its
// description, and a checklist line is appended to the project. The
// returned identifier is <project>.<slug-of-text>.
//
// A name collision surfaces vault.ErrAlreadyExists; the caller leaves
// the item in the inbox.
func (t *Triage) ConvertItem(projectID, text string, now time.Time) (string, error) {
	seg := slugs.Segment(text)
	if seg == "" {
		return "", fmt.Errorf("cannot derive a task name from %q", text)
	}
	id := projectID + "." + seg

	n, err := t.Vault.Create("task", id, now)
	if err != nil {
		return "", err
	}
	n.Body = embedDescription(n.Body, text)
	if err := t.Vault.Save(n); err != nil {
		return "", err
	}

	if err := t.Tasks.AddChecklistEntry(projectID, id, n.Title(), note.StatusTodo); err != nil {
		return "", err
	}
	return id, nil
}

// embedDescription places the captured text under the task's Description
// heading, appending the heading when the template lacks one.
func embedDescription(body, text string) string {
	const heading = "## Description"
	lines := strings.Split(body, "\n")
	for i, l := range lines {
		if strings.TrimSpace(l) != heading {
			continue
		}
		insert := i + 1
		if insert < len(lines) && strings.TrimSpace(lines[insert]) == "" {
			insert++
		}
		out := make([]string, 0, len(lines)+2)
		out = append(out, lines[:insert]...)
		out = append(out, text, "")
		out = append(out, lines[insert:]...)
		return strings.Join(out, "\n")
	}
	return strings.TrimRight(body, "\n") + "\n\n" + heading + "\n\n" + text + "\n"
}
