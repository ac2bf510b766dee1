package tasks

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aviaryhq/cortex/internal/note"
	"github.com/aviaryhq/cortex/internal/testutil"
	"github.com/aviaryhq/cortex/internal/vault"
)

func newEngine(t *testing.T, tv *testutil.TestVault) *Engine {
	t.Helper()
	v, err := vault.Open(tv.Path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return &Engine{
		Vault: v,
		Now:   func() time.Time { return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC) },
	}
}

func demoVault(t *testing.T) *testutil.TestVault {
	t.Helper()
	return testutil.NewTestVault(t).
		WithProject("demo", "# Demo\n\n## Tasks\n\n- [ ] [T1](demo.t1)\n- [.] [T2](demo.t2)\n").
		WithTask("demo.t1", "demo", "todo", "# T1\n").
		WithTask("demo.t2", "demo", "doing", "# T2\n").
		Build()
}

func TestSetStatusUpdatesNoteAndChecklist(t *testing.T) {
	tv := demoVault(t)
	e := newEngine(t, tv)

	if err := e.SetStatus("demo.t1", note.StatusDone); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	tv.AssertFileContains("demo.t1.md", "status: done")
	tv.AssertFileContains("demo.t1.md", "modified: 2026-03-15")
	tv.AssertFileContains("demo.md", "- [x] [T1](demo.t1)")
	// The sibling line is untouched.
	tv.AssertFileContains("demo.md", "- [.] [T2](demo.t2)")
}

func TestSetStatusIdempotent(t *testing.T) {
	tv := demoVault(t)
	e := newEngine(t, tv)

	if err := e.SetStatus("demo.t1", note.StatusDone); err != nil {
		t.Fatalf("first SetStatus: %v", err)
	}
	first := tv.ReadFile("demo.md") + tv.ReadFile("demo.t1.md")
	if err := e.SetStatus("demo.t1", note.StatusDone); err != nil {
		t.Fatalf("second SetStatus: %v", err)
	}
	second := tv.ReadFile("demo.md") + tv.ReadFile("demo.t1.md")
	if first != second {
		t.Error("repeating SetStatus changed the files")
	}
}

func TestSetStatusAllGlyphs(t *testing.T) {
	tests := []struct {
		status note.Status
		want   string
	}{
		{note.StatusTodo, "- [ ] [T1](demo.t1)"},
		{note.StatusDoing, "- [.] [T1](demo.t1)"},
		{note.StatusDone, "- [x] [T1](demo.t1)"},
		{note.StatusDropped, "- [o] [T1](demo.t1)"},
		{note.StatusBlocked, "- [~] [T1](demo.t1)"},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			tv := demoVault(t)
			e := newEngine(t, tv)
			if err := e.SetStatus("demo.t1", tt.status); err != nil {
				t.Fatalf("SetStatus: %v", err)
			}
			tv.AssertFileContains("demo.md", tt.want)
		})
	}
}

func TestSetStatusMissingChecklistLineTolerated(t *testing.T) {
	tv := testutil.NewTestVault(t).
		WithProject("demo", "# Demo\n\n## Tasks\n").
		WithTask("demo.untracked", "demo", "todo", "# Untracked\n").
		Build()
	e := newEngine(t, tv)

	if err := e.SetStatus("demo.untracked", note.StatusDone); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	tv.AssertFileContains("demo.untracked.md", "status: done")
}

func TestSetStatusTopLevelNote(t *testing.T) {
	tv := testutil.NewTestVault(t).
		WithProject("solo", "# Solo\n").
		Build()
	e := newEngine(t, tv)
	if err := e.SetStatus("solo", note.StatusDoing); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	tv.AssertFileContains("solo.md", "status: doing")
}

func TestSyncParentCheckboxArchivedLink(t *testing.T) {
	tv := testutil.NewTestVault(t).
		WithProject("demo", "# Demo\n\n## Tasks\n\n- [ ] [Old](archive/demo.old)\n").
		WithTask("demo.old", "demo", "done", "# Old\n").
		Build()
	e := newEngine(t, tv)

	if err := e.SyncParentCheckbox("demo.old"); err != nil {
		t.Fatalf("SyncParentCheckbox: %v", err)
	}
	tv.AssertFileContains("demo.md", "- [x] [Old](archive/demo.old)")
}

func TestSyncPropagatesOneLevelOnly(t *testing.T) {
	tv := testutil.NewTestVault(t).
		WithProject("demo", "# Demo\n\n## Tasks\n\n- [ ] [Grp](demo.grp)\n").
		WithTask("demo.grp", "demo", "todo", "# Grp\n\n## Tasks\n\n- [ ] [Sub](demo.grp.sub)\n").
		WithTask("demo.grp.sub", "demo.grp", "todo", "# Sub\n").
		Build()
	e := newEngine(t, tv)

	if err := e.SetStatus("demo.grp.sub", note.StatusDone); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	tv.AssertFileContains("demo.grp.md", "- [x] [Sub](demo.grp.sub)")
	// The grandparent's line reflects the group's own status, not the sub's.
	tv.AssertFileContains("demo.md", "- [ ] [Grp](demo.grp)")
}

func TestAddChecklistEntry(t *testing.T) {
	tv := demoVault(t)
	e := newEngine(t, tv)

	if err := e.AddChecklistEntry("demo", "demo.t3", "T3", note.StatusTodo); err != nil {
		t.Fatalf("AddChecklistEntry: %v", err)
	}
	content := tv.ReadFile("demo.md")
	want := "- [ ] [T1](demo.t1)\n- [.] [T2](demo.t2)\n- [ ] [T3](demo.t3)\n"
	if !strings.Contains(content, want) {
		t.Errorf("checklist not appended in order:\n%s", content)
	}
}

func TestAddChecklistEntryMissingSection(t *testing.T) {
	tv := testutil.NewTestVault(t).
		WithProject("bare", "# Bare\n\nNo sections here.\n").
		Build()
	e := newEngine(t, tv)

	err := e.AddChecklistEntry("bare", "bare.t1", "T1", note.StatusTodo)
	if !errors.Is(err, ErrMissingSection) {
		t.Errorf("error = %v, want ErrMissingSection", err)
	}
}

func TestRemoveChecklistEntry(t *testing.T) {
	tv := demoVault(t)
	e := newEngine(t, tv)

	if err := e.RemoveChecklistEntry("demo", "demo.t1"); err != nil {
		t.Fatalf("RemoveChecklistEntry: %v", err)
	}
	tv.AssertFileNotContains("demo.md", "(demo.t1)")
	tv.AssertFileContains("demo.md", "- [.] [T2](demo.t2)")
}

func TestListTasks(t *testing.T) {
	tv := demoVault(t)
	e := newEngine(t, tv)
	idx, err := e.Vault.BuildIndex()
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}

	infos, err := e.ListTasks("demo", idx)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("ListTasks returned %d rows, want 2", len(infos))
	}
	if infos[0].ID != "demo.t1" || infos[0].Status != note.StatusTodo {
		t.Errorf("first row = %+v", infos[0])
	}
	if infos[1].ID != "demo.t2" || infos[1].Status != note.StatusDoing {
		t.Errorf("second row = %+v", infos[1])
	}
}
