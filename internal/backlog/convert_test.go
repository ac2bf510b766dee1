package backlog

import (
	"errors"
	"testing"
	"time"

	"github.com/aviaryhq/cortex/internal/tasks"
	"github.com/aviaryhq/cortex/internal/testutil"
	"github.com/aviaryhq/cortex/internal/vault"
)

func newTriage(t *testing.T, tv *testutil.TestVault) *Triage {
	t.Helper()
	v, err := vault.Open(tv.Path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return &Triage{
		Vault: v,
		Tasks: &tasks.Engine{Vault: v, Now: func() time.Time { return convertNow() }},
	}
}

func convertNow() time.Time {
	return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
}

func TestConvertItem(t *testing.T) {
	tv := testutil.NewTestVault(t).
		WithProject("demo", "# Demo\n\n## Tasks\n").
		Build()
	tr := newTriage(t, tv)

	id, err := tr.ConvertItem("demo", "Write the design doc", convertNow())
	if err != nil {
		t.Fatalf("ConvertItem: %v", err)
	}
	if id != "demo.write-the-design-doc" {
		t.Errorf("id = %q", id)
	}
	tv.AssertFileExists("demo.write-the-design-doc.md")
	tv.AssertFileContains("demo.write-the-design-doc.md", "type: task")
	tv.AssertFileContains("demo.write-the-design-doc.md", "Write the design doc")
	tv.AssertFileContains("demo.md", "- [ ] [Write The Design Doc](demo.write-the-design-doc)")
}

func TestConvertItemCollision(t *testing.T) {
	tv := testutil.NewTestVault(t).
		WithProject("demo", "# Demo\n\n## Tasks\n").
		WithTask("demo.buy-milk", "demo", "todo", "# Buy Milk\n").
		Build()
	tr := newTriage(t, tv)

	_, err := tr.ConvertItem("demo", "buy milk", convertNow())
	if !errors.Is(err, vault.ErrAlreadyExists) {
		t.Errorf("error = %v, want ErrAlreadyExists", err)
	}
}

func TestConvertItemNoTasksSection(t *testing.T) {
	tv := testutil.NewTestVault(t).
		WithProject("bare", "# Bare\n").
		Build()
	tr := newTriage(t, tv)

	_, err := tr.ConvertItem("bare", "something", convertNow())
	if !errors.Is(err, tasks.ErrMissingSection) {
		t.Errorf("error = %v, want ErrMissingSection", err)
	}
}

func TestEmbedDescription(t *testing.T) {
	body := "# T\n\n## Description\n\n## Notes\n"
	got := embedDescription(body, "captured text")
	want := "# T\n\n## Description\n\ncaptured text\n\n## Notes\n"
	if got != want {
		t.Errorf("embedDescription = %q, want %q", got, want)
	}

	noHeading := "# T\n"
	got = embedDescription(noHeading, "captured text")
	if got != "# T\n\n## Description\n\ncaptured text\n" {
		t.Errorf("embedDescription without heading = %q", got)
	}
}
