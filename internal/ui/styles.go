package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/aviaryhq/cortex/internal/note"
)

// Color palette
// - Default (white/black): primary text
// - Accent (soft purple #A78BFA): identifiers, paths, highlights
// - Muted (gray): secondary info, hints
// - Status color only on task-state labels; plain output elsewhere

var (
	// Accent style for identifiers, file paths, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA"))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA")).Bold(true)
)

var statusStyles = map[note.Status]lipgloss.Style{
	note.StatusTodo:    lipgloss.NewStyle(),
	note.StatusDoing:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
	note.StatusDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
	note.StatusBlocked: lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
	note.StatusDropped: lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
}

// StatusLabel renders a task status with its color.
func StatusLabel(s note.Status) string {
	if style, ok := statusStyles[s]; ok {
		return style.Render(string(s))
	}
	return string(s)
}

// Checkbox renders a task's checklist glyph, "[x]" style.
func Checkbox(s note.Status) string {
	return "[" + string(note.GlyphFor(s)) + "]"
}
