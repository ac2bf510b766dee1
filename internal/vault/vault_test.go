package vault

import (
	"errors"
	"reflect"
	"sort"
	"testing"
	"time"

	"github.com/aviaryhq/cortex/internal/note"
	"github.com/aviaryhq/cortex/internal/testutil"
)

func testNow() time.Time {
	return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
}

func buildVault(t *testing.T) (*testutil.TestVault, *Vault) {
	t.Helper()
	tv := testutil.NewTestVault(t).
		WithFile("root.md", "# Root\n\n## Projects\n").
		WithFile("backlog.md", "# Backlog\n\n## Inbox\n").
		WithProject("myproject", "# My Project\n\n## Tasks\n\n- [ ] [Task One](myproject.task-one)\n").
		WithTask("myproject.task-one", "myproject", "todo", "# Task One\n").
		WithTask("myproject.task-one.sub", "myproject.task-one", "todo", "# Sub\n").
		WithNote("scratch", "# Scratch\n").
		Build()
	v, err := Open(tv.Path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return tv, v
}

func TestOpenMissing(t *testing.T) {
	if _, err := Open("/nonexistent/vault/path"); err == nil {
		t.Error("Open succeeded on a missing directory")
	}
}

func TestLoadAndSaveRoundTrip(t *testing.T) {
	tv, v := buildVault(t)

	n, err := v.Load("myproject.task-one")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if n.Type() != "task" || n.Parent() != "myproject" {
		t.Errorf("loaded note = type %q parent %q", n.Type(), n.Parent())
	}

	before := tv.ReadFile("myproject.task-one.md")
	if err := v.Save(n); err != nil {
		t.Fatalf("Save: %v", err)
	}
	after := tv.ReadFile("myproject.task-one.md")
	if before != after {
		t.Errorf("load/save round trip changed the file:\nbefore:\n%s\nafter:\n%s", before, after)
	}
}

func TestLoadNotFound(t *testing.T) {
	_, v := buildVault(t)
	_, err := v.Load("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestListSkipsReservedFiles(t *testing.T) {
	_, v := buildVault(t)
	ids, err := v.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	sort.Strings(ids)
	want := []string{"myproject", "myproject.task-one", "myproject.task-one.sub", "scratch"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("List = %v, want %v", ids, want)
	}
}

func TestBuildIndex(t *testing.T) {
	_, v := buildVault(t)
	idx, err := v.BuildIndex()
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	if !idx.Has("myproject") || idx.Has("nope") {
		t.Error("Has gave wrong answers")
	}
	if got := idx.Children("myproject"); !reflect.DeepEqual(got, []string{"myproject.task-one"}) {
		t.Errorf("Children(myproject) = %v", got)
	}
	if !idx.HasChildren("myproject.task-one") {
		t.Error("task-one should have children")
	}
	if got := idx.TopLevel(); !reflect.DeepEqual(got, []string{"myproject", "scratch"}) {
		t.Errorf("TopLevel = %v", got)
	}
}

func TestProjects(t *testing.T) {
	_, v := buildVault(t)
	idx, err := v.BuildIndex()
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	if got := v.Projects(idx); !reflect.DeepEqual(got, []string{"myproject"}) {
		t.Errorf("Projects = %v", got)
	}
}

func TestCreateFromTemplate(t *testing.T) {
	tv, v := buildVault(t)

	n, err := v.Create("task", "myproject.task-two", testNow())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if n.Type() != "task" {
		t.Errorf("created note type = %q", n.Type())
	}
	if n.Meta.GetString(note.KeyCreated) != "2026-03-15" {
		t.Errorf("created = %q", n.Meta.GetString(note.KeyCreated))
	}
	tv.AssertFileContains("myproject.task-two.md", "# Task Two")
	tv.AssertFileContains("myproject.task-two.md", "parent: myproject")
	tv.AssertFileContains("myproject.task-two.md", "[My Project](myproject)")

	// Collision.
	if _, err := v.Create("task", "myproject.task-two", testNow()); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("second Create error = %v, want ErrAlreadyExists", err)
	}
}

func TestCreateUsesUserTemplate(t *testing.T) {
	tv, v := buildVault(t)
	if err := v.WriteRaw("templates/note.md", "# {name} on {date}\n"); err != nil {
		t.Fatalf("WriteRaw: %v", err)
	}
	if _, err := v.Create("note", "ideas", testNow()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	tv.AssertFileContains("ideas.md", "# Ideas on 2026-03-15")
}

func TestArchiveSubtree(t *testing.T) {
	tv, v := buildVault(t)

	moved, err := v.Archive("myproject.task-one")
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	want := []string{"archive/myproject.task-one", "archive/myproject.task-one.sub"}
	if !reflect.DeepEqual(moved, want) {
		t.Errorf("moved = %v, want %v", moved, want)
	}
	tv.AssertFileNotExists("myproject.task-one.md")
	tv.AssertFileExists("archive/myproject.task-one.md")
	tv.AssertFileExists("archive/myproject.task-one.sub.md")

	// The project checklist now points at the archived identifier.
	tv.AssertFileContains("myproject.md", "(archive/myproject.task-one)")
}

func TestArchiveMissing(t *testing.T) {
	_, v := buildVault(t)
	if _, err := v.Archive("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestMoveSubtree(t *testing.T) {
	tv, v := buildVault(t)
	if _, err := v.Create("project", "otherproj", testNow()); err != nil {
		t.Fatalf("Create project: %v", err)
	}

	moved, err := v.Move("myproject.task-one", "otherproj.task-one")
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	want := []string{"otherproj.task-one", "otherproj.task-one.sub"}
	if !reflect.DeepEqual(moved, want) {
		t.Errorf("moved = %v, want %v", moved, want)
	}
	tv.AssertFileNotExists("myproject.task-one.md")
	tv.AssertFileContains("otherproj.task-one.md", "parent: otherproj")
	tv.AssertFileContains("otherproj.task-one.sub.md", "parent: otherproj.task-one")
}

func TestMoveCollision(t *testing.T) {
	_, v := buildVault(t)
	if _, err := v.Move("scratch", "myproject.task-one"); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("error = %v, want ErrAlreadyExists", err)
	}
}

func TestInitScaffold(t *testing.T) {
	dir := t.TempDir()
	v, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	for _, name := range []string{"root.md", "backlog.md", "templates/project.md", "templates/task.md", "templates/note.md"} {
		if _, err := v.ReadFile(name); err != nil {
			t.Errorf("missing scaffold file %s: %v", name, err)
		}
	}

	// Re-running leaves existing files alone.
	if err := v.WriteRaw("root.md", "# Customized\n"); err != nil {
		t.Fatal(err)
	}
	if _, err := Init(dir); err != nil {
		t.Fatalf("second Init: %v", err)
	}
	content, _ := v.ReadFile("root.md")
	if content != "# Customized\n" {
		t.Errorf("Init overwrote root.md: %q", content)
	}
}
