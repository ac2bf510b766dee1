// Package backlog parses and rewrites the vault's backlog inbox: a flat
// list of captured items under an "## Inbox" heading, triaged into tasks
// or discarded.
package backlog

import (
	"errors"
	"strings"
)

// InboxHeading marks the triage section of backlog.md.
const InboxHeading = "## Inbox"

// ErrMissingSection is returned when the backlog has no inbox heading.
var ErrMissingSection = errors.New("missing inbox section")

// Item is a single captured line in the inbox.
type Item struct {
	// LineIndex is the item's position in the backlog file, used to key
	// dispositions back to their lines.
	LineIndex int
	Text      string
}

// Action is what triage decided for an item.
type Action int

const (
	// Keep leaves the item in the inbox. Items with no disposition are
	// kept too.
	Keep Action = iota
	// Delete drops the item.
	Delete
	// Convert drops the item from the inbox after it became a task.
	Convert
)

// Disposition pairs an item with its triage decision.
type Disposition struct {
	Item   Item
	Action Action
}

// ParseInbox extracts the inbox items from the backlog text. Only "- "
// lines between the inbox heading and the next section count; prose and
// blank lines are ignored.
func ParseInbox(text string) ([]Item, error) {
	lines := strings.Split(text, "\n")
	start, end, err := sectionBounds(lines)
	if err != nil {
		return nil, err
	}

	var items []Item
	for i := start + 1; i < end; i++ {
		if t, ok := itemText(lines[i]); ok {
			items = append(items, Item{LineIndex: i, Text: t})
		}
	}
	return items, nil
}

// ApplyDispositions rewrites the backlog text: every item with a Delete
// or Convert disposition is removed, and the remaining items are
// re-listed after the inbox heading in their original order. Lines
// outside the inbox items are preserved byte-for-byte. A backlog with no
// inbox heading gets one appended at the end.
func ApplyDispositions(text string, dispositions []Disposition) string {
	drop := make(map[int]bool)
	for _, d := range dispositions {
		if d.Action == Delete || d.Action == Convert {
			drop[d.Item.LineIndex] = true
		}
	}

	lines := strings.Split(text, "\n")
	start, end, err := sectionBounds(lines)
	if err != nil {
		// No inbox section: dispositions still apply by line index, and
		// the kept items move under a heading appended at the end.
		keep := make(map[int]bool)
		for _, d := range dispositions {
			if d.Action == Keep {
				keep[d.Item.LineIndex] = true
			}
		}
		var rest, kept []string
		for i, l := range lines {
			switch {
			case drop[i]:
			case keep[i]:
				kept = append(kept, l)
			default:
				rest = append(rest, l)
			}
		}
		out := strings.TrimRight(strings.Join(rest, "\n"), "\n")
		if out != "" {
			out += "\n"
		}
		out += "\n" + InboxHeading + "\n"
		if len(kept) > 0 {
			out += strings.Join(kept, "\n") + "\n"
		}
		return out
	}

	var kept []string
	for i := start + 1; i < end; i++ {
		if _, ok := itemText(lines[i]); ok && !drop[i] {
			kept = append(kept, lines[i])
		}
	}

	out := make([]string, 0, len(lines))
	out = append(out, lines[:start+1]...)
	// Preserve a blank line after the heading when one was there.
	i := start + 1
	if i < end && strings.TrimSpace(lines[i]) == "" {
		out = append(out, lines[i])
		i++
	}
	out = append(out, kept...)
	for ; i < end; i++ {
		if _, ok := itemText(lines[i]); !ok {
			out = append(out, lines[i])
		}
	}
	out = append(out, lines[end:]...)
	return strings.Join(out, "\n")
}

func sectionBounds(lines []string) (start, end int, err error) {
	start = -1
	for i, l := range lines {
		if strings.TrimSpace(l) == InboxHeading {
			start = i
			break
		}
	}
	if start < 0 {
		return 0, 0, ErrMissingSection
	}
	end = len(lines)
	for i := start + 1; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], "## ") {
			end = i
			break
		}
	}
	return start, end, nil
}

func itemText(line string) (string, bool) {
	if !strings.HasPrefix(line, "- ") {
		return "", false
	}
	t := strings.TrimSpace(strings.TrimPrefix(line, "- "))
	if t == "" {
		return "", false
	}
	return t, true
}
