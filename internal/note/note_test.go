package note

import (
	"errors"
	"testing"

	"github.com/aviaryhq/cortex/internal/frontmatter"
)

func TestParentOf(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"myproject", ""},
		{"myproject.task1", "myproject"},
		{"myproject.group.subtask", "myproject.group"},
		{"archive/myproject", ""},
		{"archive/myproject.task1", "archive/myproject"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := ParentOf(tt.id); got != tt.want {
				t.Errorf("ParentOf(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestValidateID(t *testing.T) {
	valid := []string{"myproject", "myproject.task-1", "a.b.c", "archive/old_task"}
	for _, id := range valid {
		if err := ValidateID(id); err != nil {
			t.Errorf("ValidateID(%q) = %v, want nil", id, err)
		}
	}

	invalid := []string{"", "My Project", "a..b", "a.b/c", "café"}
	for _, id := range invalid {
		if err := ValidateID(id); err == nil {
			t.Errorf("ValidateID(%q) = nil, want error", id)
		}
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses() {
		got, err := ParseStatus(string(s))
		if err != nil {
			t.Fatalf("ParseStatus(%q) error: %v", s, err)
		}
		if got != s {
			t.Errorf("ParseStatus(%q) = %q", s, got)
		}
	}

	got, err := ParseStatus("in-progress")
	if err != nil {
		t.Fatalf("ParseStatus(in-progress) error: %v", err)
	}
	if got != StatusDoing {
		t.Errorf("ParseStatus(in-progress) = %q, want doing", got)
	}

	if _, err := ParseStatus("finished"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("ParseStatus(finished) error = %v, want ErrInvalidStatus", err)
	}
}

func TestGlyphMapping(t *testing.T) {
	seen := map[byte]Status{}
	for _, s := range Statuses() {
		g := GlyphFor(s)
		if prev, dup := seen[g]; dup {
			t.Errorf("glyph %q shared by %q and %q", g, prev, s)
		}
		seen[g] = s

		back, ok := StatusForGlyph(g)
		if !ok || back != s {
			t.Errorf("StatusForGlyph(%q) = %q, %v, want %q", g, back, ok, s)
		}
	}
	if GlyphFor(StatusDone) != 'x' {
		t.Errorf("GlyphFor(done) = %q, want 'x'", GlyphFor(StatusDone))
	}
}

func makeNote(id, typ, parent string) *Note {
	meta := frontmatter.New()
	if typ != "" {
		meta.Set(KeyType, typ)
	}
	if parent != "" {
		meta.Set(KeyParent, parent)
	}
	return &Note{ID: id, Meta: meta}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		note        *Note
		hasChildren bool
		want        Kind
	}{
		{"top-level project", makeNote("myproject", "project", ""), false, KindProject},
		{"plain task", makeNote("myproject.t1", "task", "myproject"), false, KindTask},
		{"task with children", makeNote("myproject.grp", "task", "myproject"), true, KindGroup},
		{"untyped note", makeNote("scratch", "", ""), false, KindNote},
		{"typed note", makeNote("scratch", "note", ""), false, KindNote},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.note.Classify(tt.hasChildren); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTitle(t *testing.T) {
	n := makeNote("myproject.deep_work-plan", "task", "myproject")
	n.Body = "no heading here\n"
	if got := n.Title(); got != "Deep Work Plan" {
		t.Errorf("Title() = %q, want %q", got, "Deep Work Plan")
	}

	n.Body = "# Explicit Heading\n\ncontent\n"
	if got := n.Title(); got != "Explicit Heading" {
		t.Errorf("Title() = %q, want %q", got, "Explicit Heading")
	}
}

func TestCheckHierarchy(t *testing.T) {
	good := makeNote("myproject.t1", "task", "myproject")
	if err := good.CheckHierarchy(); err != nil {
		t.Errorf("CheckHierarchy() = %v, want nil", err)
	}

	bad := makeNote("myproject.t1", "task", "otherproject")
	if err := bad.CheckHierarchy(); err == nil {
		t.Error("CheckHierarchy() = nil, want error for mismatched parent")
	}
}
