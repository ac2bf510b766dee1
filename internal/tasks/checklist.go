package tasks

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/aviaryhq/cortex/internal/note"
)

// TasksHeading is the section of a project or group note that carries
// its checklist.
const TasksHeading = "## Tasks"

// ErrMissingSection is returned when a note lacks the checklist section
// an operation needs.
var ErrMissingSection = errors.New("missing tasks section")

// checklistRe matches a checklist line: "- [x] [Title](target)". Group 1
// is everything before the glyph, group 2 the glyph, group 3 the rest of
// the line verbatim, and group 4 the link target.
var checklistRe = regexp.MustCompile(`^(\s*- \[)(.)(\] \[[^\]]*\]\(([^)]+)\).*)$`)

// SyncParentCheckbox rewrites the glyph on the parent's checklist line
// for the given child to match the child's current status. Only the
// glyph byte changes; every other line stays byte-for-byte identical.
//
// A parent without a matching checklist line is tolerated silently: not
// every child is tracked on a checklist. Propagation is single-level;
// callers wanting a full rollup walk the ancestry themselves.
func (e *Engine) SyncParentCheckbox(childID string) error {
	parentID := note.ParentOf(childID)
	if parentID == "" || !e.Vault.Exists(parentID) {
		return nil
	}

	child, err := e.Vault.Load(childID)
	if err != nil {
		return err
	}
	glyph := note.GlyphFor(child.Status())

	parent, err := e.Vault.Load(parentID)
	if err != nil {
		return err
	}

	lines := strings.Split(parent.Body, "\n")
	changed := false
	for i, line := range lines {
		m := checklistRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		target := m[4]
		if target != childID && target != note.ArchivePrefix+childID {
			continue
		}
		// A glyph that already encodes the child's status needs no write.
		if cur, ok := note.StatusForGlyph(m[2][0]); ok && cur == child.Status() {
			continue
		}
		lines[i] = m[1] + string(glyph) + m[3]
		changed = true
	}
	if !changed {
		return nil
	}
	parent.Body = strings.Join(lines, "\n")
	return e.Vault.Save(parent)
}

// AddChecklistEntry appends a checklist line for a child to the parent's
// Tasks section. The parent must have the section.
func (e *Engine) AddChecklistEntry(parentID, childID, title string, status note.Status) error {
	parent, err := e.Vault.Load(parentID)
	if err != nil {
		return err
	}
	line := fmt.Sprintf("- [%c] [%s](%s)", note.GlyphFor(status), title, childID)
	body, err := insertChecklistLine(parent.Body, line)
	if err != nil {
		return fmt.Errorf("note %s: %w", parentID, err)
	}
	parent.Body = body
	return e.Vault.Save(parent)
}

// RemoveChecklistEntry deletes the parent's checklist line for a child,
// if present.
func (e *Engine) RemoveChecklistEntry(parentID, childID string) error {
	parent, err := e.Vault.Load(parentID)
	if err != nil {
		return err
	}
	lines := strings.Split(parent.Body, "\n")
	var kept []string
	removed := false
	for _, line := range lines {
		m := checklistRe.FindStringSubmatch(line)
		if m != nil && (m[4] == childID || m[4] == note.ArchivePrefix+childID) {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	if !removed {
		return nil
	}
	parent.Body = strings.Join(kept, "\n")
	return e.Vault.Save(parent)
}

// insertChecklistLine places line at the end of the Tasks section,
// leaving every existing line untouched.
func insertChecklistLine(body, line string) (string, error) {
	lines := strings.Split(body, "\n")
	head := -1
	for i, l := range lines {
		if strings.TrimSpace(l) == TasksHeading {
			head = i
			break
		}
	}
	if head < 0 {
		return "", ErrMissingSection
	}

	end := len(lines)
	for i := head + 1; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], "## ") {
			end = i
			break
		}
	}

	insert := head + 1
	if insert < end && strings.TrimSpace(lines[insert]) == "" {
		insert++
	}
	for i := insert; i < end; i++ {
		if strings.TrimSpace(lines[i]) != "" {
			insert = i + 1
		}
	}

	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:insert]...)
	out = append(out, line)
	out = append(out, lines[insert:]...)
	return strings.Join(out, "\n"), nil
}
