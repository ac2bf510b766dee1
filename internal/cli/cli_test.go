package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/aviaryhq/cortex/internal/config"
	"github.com/aviaryhq/cortex/internal/note"
	"github.com/aviaryhq/cortex/internal/tasks"
	"github.com/aviaryhq/cortex/internal/testutil"
	"github.com/aviaryhq/cortex/internal/vault"
)

func cliVault(t *testing.T) *vault.Vault {
	t.Helper()
	tv := testutil.NewTestVault(t).
		WithFile("root.md", "# Root\n\n## Projects\n").
		WithProject("thesis", "# Thesis\n\n## Tasks\n").
		WithTask("thesis.writing", "thesis", "doing", "# Writing\n").
		WithTask("thesis.defense", "thesis", "todo", "# Defense\n").
		WithProject("garden", "# Garden\n\n## Tasks\n").
		Build()
	v, err := vault.Open(tv.Path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return v
}

func TestNewNoteIDLiteral(t *testing.T) {
	v := cliVault(t)

	id, err := newNoteID(v, "task", []string{"thesis.revisions"})
	if err != nil {
		t.Fatalf("newNoteID: %v", err)
	}
	if id != "thesis.revisions" {
		t.Errorf("id = %q, want thesis.revisions", id)
	}
}

func TestNewNoteIDMissingParent(t *testing.T) {
	v := cliVault(t)

	_, err := newNoteID(v, "task", []string{"nonexistent.child"})
	if err == nil {
		t.Fatal("expected error for missing parent")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("error = %q, want parent complaint", err)
	}
}

func TestNewNoteIDSlugsTitleUnderParent(t *testing.T) {
	v := cliVault(t)

	id, err := newNoteID(v, "task", []string{"thes", "Write", "Chapter", "2"})
	if err != nil {
		t.Fatalf("newNoteID: %v", err)
	}
	if id != "thesis.write-chapter-2" {
		t.Errorf("id = %q, want thesis.write-chapter-2", id)
	}
}

func TestNewNoteIDTitleOnlyForTasks(t *testing.T) {
	v := cliVault(t)

	_, err := newNoteID(v, "project", []string{"thesis", "New Project"})
	if err == nil {
		t.Fatal("expected error for project with title args")
	}
}

func TestNewNoteIDInvalidIdentifier(t *testing.T) {
	v := cliVault(t)

	if _, err := newNoteID(v, "note", []string{"Has Spaces"}); err == nil {
		t.Fatal("expected error for invalid identifier")
	}
}

func TestResolveQueryUnique(t *testing.T) {
	v := cliVault(t)

	match, err := resolveQuery(v, "defense", false)
	if err != nil {
		t.Fatalf("resolveQuery: %v", err)
	}
	if match.ID != "thesis.defense" {
		t.Errorf("resolved %q, want thesis.defense", match.ID)
	}
}

func TestHandleResolveErrorNoMatch(t *testing.T) {
	v := cliVault(t)

	_, err := resolveQuery(v, "zzz-nothing", false)
	if err == nil {
		t.Fatal("expected no-match error")
	}
	out := handleResolveError(err, "zzz-nothing")
	if out == nil {
		t.Fatal("expected error in text mode")
	}
	if !strings.Contains(out.Error(), "zzz-nothing") {
		t.Errorf("error = %q, want query echoed", out)
	}
}

func TestHandleResolveErrorAmbiguous(t *testing.T) {
	tv := testutil.NewTestVault(t).
		WithTask("alpha.report", "alpha", "todo", "# R\n").
		WithTask("gamma.report", "gamma", "todo", "# R\n").
		Build()
	v, err := vault.Open(tv.Path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	_, rerr := resolveQuery(v, "report", false)
	if rerr == nil {
		t.Fatal("expected ambiguity")
	}
	out := handleResolveError(rerr, "report")
	if out == nil {
		t.Fatal("expected error in text mode")
	}
	for _, want := range []string{"alpha.report", "gamma.report"} {
		if !strings.Contains(out.Error(), want) {
			t.Errorf("error %q missing candidate %s", out, want)
		}
	}
}

func TestOpenTasksFiltersFinished(t *testing.T) {
	infos := []tasks.TaskInfo{
		{ID: "p.a", Status: note.StatusTodo},
		{ID: "p.b", Status: note.StatusDone},
		{ID: "p.c", Status: note.StatusDoing},
		{ID: "p.d", Status: note.StatusDropped},
		{ID: "p.e", Status: note.StatusBlocked},
	}
	open := openTasks(infos)
	if len(open) != 3 {
		t.Fatalf("got %d open tasks, want 3", len(open))
	}
	for _, ti := range open {
		if ti.Status == note.StatusDone || ti.Status == note.StatusDropped {
			t.Errorf("finished task %s kept", ti.ID)
		}
	}
}

func TestSubtreeOf(t *testing.T) {
	v := cliVault(t)
	idx, err := v.BuildIndex()
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}

	got := subtreeOf(idx, "thesis")
	want := map[string]bool{"thesis": true, "thesis.writing": true, "thesis.defense": true}
	if len(got) != len(want) {
		t.Fatalf("subtree = %v, want %d ids", got, len(want))
	}
	for _, id := range got {
		if !want[id] {
			t.Errorf("unexpected id %s in subtree", id)
		}
	}
}

func TestDueTasksFilter(t *testing.T) {
	infos := []tasks.TaskInfo{
		{ID: "p.overdue", Status: note.StatusTodo, Due: "2026-03-01"},
		{ID: "p.today", Status: note.StatusTodo, Due: "2026-03-15"},
		{ID: "p.later", Status: note.StatusTodo, Due: "2026-04-01"},
		{ID: "p.undated", Status: note.StatusTodo},
		{ID: "p.garbled", Status: note.StatusTodo, Due: "soonish"},
	}

	due := dueTasks(infos, "2026-03-15")
	if len(due) != 2 {
		t.Fatalf("got %d due tasks, want 2: %+v", len(due), due)
	}
	if due[0].ID != "p.overdue" || due[1].ID != "p.today" {
		t.Errorf("due = %+v, want overdue and today", due)
	}

	if got := dueTasks(infos, "garbage"); got != nil {
		t.Errorf("dueTasks with bad cutoff = %+v, want nil", got)
	}
}

func TestRunSetStatusWithDue(t *testing.T) {
	tv := testutil.NewTestVault(t).
		WithProject("demo", "# Demo\n\n## Tasks\n\n- [ ] [T One](demo.t1)\n").
		WithTask("demo.t1", "demo", "todo", "# T One\n").
		Build()
	orig := resolvedVaultPath
	defer func() { resolvedVaultPath = orig }()
	resolvedVaultPath = tv.Path

	if err := runSetStatus("t1", "done", "2026-05-01"); err != nil {
		t.Fatalf("runSetStatus: %v", err)
	}

	task := tv.ReadFile("demo.t1.md")
	if !strings.Contains(task, "due: 2026-05-01") {
		t.Errorf("due not written:\n%s", task)
	}
	if !strings.Contains(task, "status: done") {
		t.Errorf("status not written:\n%s", task)
	}
	if project := tv.ReadFile("demo.md"); !strings.Contains(project, "- [x] [T One](demo.t1)") {
		t.Errorf("checklist not synced:\n%s", project)
	}
}

func TestVerbosityLevels(t *testing.T) {
	orig := cfg
	defer func() { cfg = orig }()

	cfg = &config.Config{Verbosity: VerbosityQuiet}
	if !quietOutput() || verboseOutput() {
		t.Error("quiet config not recognized")
	}

	cfg = &config.Config{Verbosity: VerbosityVerbose}
	if quietOutput() || !verboseOutput() {
		t.Error("verbose config not recognized")
	}

	cfg = &config.Config{}
	if quietOutput() || verboseOutput() {
		t.Error("unset verbosity should read as normal")
	}
}

func TestHandleErrorTextMode(t *testing.T) {
	jsonOutput = false
	sentinel := errors.New("boom")
	if err := handleError(ErrInternal, sentinel, ""); !errors.Is(err, sentinel) {
		t.Errorf("handleError = %v, want sentinel passthrough", err)
	}
}
