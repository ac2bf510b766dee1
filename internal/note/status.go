package note

import (
	"errors"
	"fmt"
)

// Status is a task's lifecycle state.
type Status string

const (
	StatusTodo    Status = "todo"
	StatusDoing   Status = "doing"
	StatusDone    Status = "done"
	StatusBlocked Status = "blocked"
	StatusDropped Status = "dropped"
)

// ErrInvalidStatus is returned when a status value is outside the
// recognized vocabulary.
var ErrInvalidStatus = errors.New("invalid status")

// Statuses lists the recognized status vocabulary in display order.
func Statuses() []Status {
	return []Status{StatusTodo, StatusDoing, StatusDone, StatusBlocked, StatusDropped}
}

// ParseStatus validates a status value. "in-progress" and "in_progress"
// are accepted as aliases for doing.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusTodo, StatusDoing, StatusDone, StatusBlocked, StatusDropped:
		return Status(s), nil
	}
	if s == "in-progress" || s == "in_progress" {
		return StatusDoing, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// statusGlyphs is the single source of truth for the checkbox glyph each
// status renders as. Every recognized status has exactly one glyph.
var statusGlyphs = map[Status]byte{
	StatusTodo:    ' ',
	StatusDone:    'x',
	StatusDoing:   '.',
	StatusDropped: 'o',
	StatusBlocked: '~',
}

// GlyphFor returns the checkbox glyph for a status. It is total over the
// recognized vocabulary; an unrecognized status maps to the todo glyph.
func GlyphFor(s Status) byte {
	if g, ok := statusGlyphs[s]; ok {
		return g
	}
	return statusGlyphs[StatusTodo]
}

// StatusForGlyph inverts GlyphFor.
func StatusForGlyph(g byte) (Status, bool) {
	for s, glyph := range statusGlyphs {
		if glyph == g {
			return s, true
		}
	}
	return "", false
}
