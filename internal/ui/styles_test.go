package ui

import (
	"strings"
	"testing"

	"github.com/aviaryhq/cortex/internal/note"
)

func TestCheckbox(t *testing.T) {
	tests := []struct {
		status note.Status
		want   string
	}{
		{note.StatusTodo, "[ ]"},
		{note.StatusDoing, "[.]"},
		{note.StatusDone, "[x]"},
		{note.StatusDropped, "[o]"},
		{note.StatusBlocked, "[~]"},
	}
	for _, tt := range tests {
		if got := Checkbox(tt.status); got != tt.want {
			t.Errorf("Checkbox(%s) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestStatusLabelContainsName(t *testing.T) {
	for _, s := range note.Statuses() {
		if got := StatusLabel(s); !strings.Contains(got, string(s)) {
			t.Errorf("StatusLabel(%s) = %q", s, got)
		}
	}
}

func TestCount(t *testing.T) {
	if got := Count(1, "task", "tasks"); got != "(1 task)" {
		t.Errorf("Count(1) = %q", got)
	}
	if got := Count(3, "task", "tasks"); got != "(3 tasks)" {
		t.Errorf("Count(3) = %q", got)
	}
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown("# Title\n\n- item\n", 80)
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	if !strings.Contains(out, "Title") || !strings.Contains(out, "item") {
		t.Errorf("rendered output missing content:\n%s", out)
	}
	if !strings.HasSuffix(out, "\n") || strings.HasSuffix(out, "\n\n") {
		t.Errorf("trailing newlines not normalized: %q", out)
	}
}
