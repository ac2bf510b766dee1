// Package testutil provides reusable test fixtures for vault-backed tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// TestVault is a temporary vault built from declared notes.
type TestVault struct {
	Path  string
	t     *testing.T
	files map[string]string
}

// NewTestVault creates a test vault builder. Call Build to materialize it.
func NewTestVault(t *testing.T) *TestVault {
	t.Helper()
	return &TestVault{
		t:     t,
		files: make(map[string]string),
	}
}

// WithFile adds a raw file to the vault. The path is vault-relative.
func (v *TestVault) WithFile(path, content string) *TestVault {
	v.files[path] = content
	return v
}

// WithNote adds a note file for an identifier. Front matter is built from
// the key/value pairs in order.
func (v *TestVault) WithNote(id, body string, meta ...[2]string) *TestVault {
	content := ""
	if len(meta) > 0 {
		content = "---\n"
		for _, kv := range meta {
			if kv[1] == "" {
				content += kv[0] + ":\n"
			} else {
				content += fmt.Sprintf("%s: %s\n", kv[0], kv[1])
			}
		}
		content += "---\n"
	}
	content += body
	v.files[filepath.FromSlash(id)+".md"] = content
	return v
}

// WithTask adds a task note with the usual metadata.
func (v *TestVault) WithTask(id, parent, status, body string) *TestVault {
	return v.WithNote(id, body,
		[2]string{"created", "2026-01-01"},
		[2]string{"modified", "2026-01-01"},
		[2]string{"type", "task"},
		[2]string{"status", status},
		[2]string{"parent", parent},
	)
}

// WithProject adds a project note with the usual metadata.
func (v *TestVault) WithProject(id, body string) *TestVault {
	return v.WithNote(id, body,
		[2]string{"created", "2026-01-01"},
		[2]string{"modified", "2026-01-01"},
		[2]string{"type", "project"},
		[2]string{"status", "todo"},
	)
}

// Build creates the vault directory and every declared file.
func (v *TestVault) Build() *TestVault {
	v.t.Helper()
	v.Path = v.t.TempDir()
	for path, content := range v.files {
		v.writeFile(path, content)
	}
	return v
}

func (v *TestVault) writeFile(relPath, content string) {
	v.t.Helper()
	fullPath := filepath.Join(v.Path, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		v.t.Fatalf("failed to create directory for %s: %v", relPath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		v.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
}

// ReadFile reads a vault-relative file, failing the test on error.
func (v *TestVault) ReadFile(relPath string) string {
	v.t.Helper()
	content, err := os.ReadFile(filepath.Join(v.Path, relPath))
	if err != nil {
		v.t.Fatalf("failed to read file %s: %v", relPath, err)
	}
	return string(content)
}

// FileExists reports whether a vault-relative file exists.
func (v *TestVault) FileExists(relPath string) bool {
	v.t.Helper()
	_, err := os.Stat(filepath.Join(v.Path, relPath))
	return err == nil
}
