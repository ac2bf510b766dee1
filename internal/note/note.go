// Package note defines the note data model: dotted identifiers, the
// status vocabulary, and the project/task/group/note classification.
//
// A note's identifier implies its ancestry: "myproject.group.subtask"
// is a child of "myproject.group", which is a child of "myproject".
// Archived notes carry an "archive/" prefix and live in a separate
// namespace.
package note

import (
	"fmt"
	"strings"

	"github.com/aviaryhq/cortex/internal/frontmatter"
)

// ArchivePrefix namespaces archived identifiers.
const ArchivePrefix = "archive/"

// Kind classifies a note's role in the hierarchy.
type Kind int

const (
	KindNote Kind = iota
	KindProject
	KindTask
	// KindGroup is a task that itself has child tasks. Group-ness is
	// derived from the presence of children, never stored.
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindProject:
		return "project"
	case KindTask:
		return "task"
	case KindGroup:
		return "group"
	default:
		return "note"
	}
}

// Metadata keys recognized by the CLI. Unrecognized keys are preserved
// but not interpreted.
const (
	KeyCreated  = "created"
	KeyModified = "modified"
	KeyType     = "type"
	KeyStatus   = "status"
	KeyDue      = "due"
	KeyPriority = "priority"
	KeyParent   = "parent"
	KeyTags     = "tags"
)

// Note is a single markdown file in the vault.
type Note struct {
	// ID is the dotted identifier, with an "archive/" prefix for
	// archived notes.
	ID   string
	Meta *frontmatter.Metadata
	Body string
}

// ParentOf returns the identifier with its last dot-separated segment
// removed, or "" for a top-level identifier. The archive prefix is
// carried through: parents of archived notes are archived.
func ParentOf(id string) string {
	prefix := ""
	if strings.HasPrefix(id, ArchivePrefix) {
		prefix = ArchivePrefix
		id = strings.TrimPrefix(id, ArchivePrefix)
	}
	idx := strings.LastIndex(id, ".")
	if idx < 0 {
		return ""
	}
	return prefix + id[:idx]
}

// BaseName returns the last dot-separated segment of an identifier.
func BaseName(id string) string {
	id = strings.TrimPrefix(id, ArchivePrefix)
	if idx := strings.LastIndex(id, "."); idx >= 0 {
		return id[idx+1:]
	}
	return id
}

// IsArchived reports whether an identifier is in the archive namespace.
func IsArchived(id string) bool {
	return strings.HasPrefix(id, ArchivePrefix)
}

// Unarchived strips the archive prefix, if present.
func Unarchived(id string) string {
	return strings.TrimPrefix(id, ArchivePrefix)
}

// PathFor returns the vault-relative file path for an identifier.
// It does not check existence.
func PathFor(id string) string {
	return id + ".md"
}

// ValidateID checks that every segment of an identifier is a non-empty
// filesystem-safe slug (lowercase letters, digits, '-' and '_').
func ValidateID(id string) error {
	id = Unarchived(id)
	if id == "" {
		return fmt.Errorf("empty identifier")
	}
	for _, segment := range strings.Split(id, ".") {
		if segment == "" {
			return fmt.Errorf("identifier %q has an empty segment", id)
		}
		for _, r := range segment {
			if !isSlugRune(r) {
				return fmt.Errorf("identifier %q contains unsafe character %q", id, r)
			}
		}
	}
	return nil
}

func isSlugRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' || r == '_'
}

// Type returns the note's type metadata field.
func (n *Note) Type() string {
	return n.Meta.GetString(KeyType)
}

// Parent returns the parent identifier, preferring the metadata field and
// falling back to the identifier's parent prefix.
func (n *Note) Parent() string {
	if p := n.Meta.GetString(KeyParent); p != "" {
		return p
	}
	return Unarchived(ParentOf(n.ID))
}

// Status returns the note's status field, defaulting to todo for tasks
// with no stored status.
func (n *Note) Status() Status {
	s, err := ParseStatus(n.Meta.GetString(KeyStatus))
	if err != nil {
		return StatusTodo
	}
	return s
}

// Title returns the first level-one heading of the body, or a title
// formatted from the identifier's base name when no heading exists.
func (n *Note) Title() string {
	for _, line := range strings.Split(n.Body, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	return FormatTitle(n.ID)
}

// FormatTitle turns an identifier's base name into a display title:
// "deep_work-plan" becomes "Deep Work Plan".
func FormatTitle(id string) string {
	base := BaseName(id)
	base = strings.ReplaceAll(base, "_", " ")
	base = strings.ReplaceAll(base, "-", " ")
	words := strings.Fields(base)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Classify derives the note's kind. hasChildren reports whether any other
// note names this one as its parent.
func (n *Note) Classify(hasChildren bool) Kind {
	switch n.Type() {
	case "project":
		if ParentOf(n.ID) == "" {
			return KindProject
		}
		return KindNote
	case "task":
		if hasChildren {
			return KindGroup
		}
		return KindTask
	default:
		return KindNote
	}
}

// CheckHierarchy verifies the invariant that the identifier's parent
// prefix matches the parent metadata field when both are present.
func (n *Note) CheckHierarchy() error {
	stored := n.Meta.GetString(KeyParent)
	derived := Unarchived(ParentOf(n.ID))
	if stored != "" && derived != "" && stored != derived {
		return fmt.Errorf("note %s: parent field %q does not match identifier prefix %q", n.ID, stored, derived)
	}
	return nil
}
