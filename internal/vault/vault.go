// Package vault gives file-level access to a notes directory: loading and
// saving notes, creating them from templates, archiving subtrees, and
// scanning the identifier space.
//
// Nothing persists between invocations. Every command re-reads the files
// it needs; the markdown on disk is the only source of truth.
package vault

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aviaryhq/cortex/internal/atomicfile"
	"github.com/aviaryhq/cortex/internal/frontmatter"
	"github.com/aviaryhq/cortex/internal/note"
)

// Reserved files and directories that are never treated as notes.
const (
	RootFile    = "root.md"
	BacklogFile = "backlog.md"
	ArchiveDir  = "archive"
	TemplateDir = "templates"
	RefDir      = "ref"
)

var (
	// ErrNotFound is returned when an identifier has no file behind it.
	ErrNotFound = errors.New("note not found")

	// ErrAlreadyExists is returned when creating a note whose file exists.
	ErrAlreadyExists = errors.New("note already exists")
)

// Vault is a directory of markdown notes.
type Vault struct {
	Root string
}

// Open returns a Vault rooted at path. The path must be an existing
// directory.
func Open(path string) (*Vault, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("vault %s: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault %s: not a directory", path)
	}
	return &Vault{Root: path}, nil
}

// NotePath returns the absolute file path for an identifier.
func (v *Vault) NotePath(id string) string {
	return filepath.Join(v.Root, filepath.FromSlash(note.PathFor(id)))
}

// Exists reports whether a note file exists for the identifier.
func (v *Vault) Exists(id string) bool {
	_, err := os.Stat(v.NotePath(id))
	return err == nil
}

// Load reads and parses the note for an identifier.
func (v *Vault) Load(id string) (*note.Note, error) {
	data, err := os.ReadFile(v.NotePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("read %s: %w", id, err)
	}
	meta, body, err := frontmatter.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("note %s: %w", id, err)
	}
	return &note.Note{ID: id, Meta: meta, Body: body}, nil
}

// Save writes a note back to disk atomically, creating the archive
// directory if the identifier lives there.
func (v *Vault) Save(n *note.Note) error {
	path := v.NotePath(n.ID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save %s: %w", n.ID, err)
	}
	content := frontmatter.Render(n.Meta, n.Body)
	if err := atomicfile.WriteFile(path, []byte(content), 0); err != nil {
		return fmt.Errorf("save %s: %w", n.ID, err)
	}
	return nil
}

// ReadFile reads a raw vault file by vault-relative name (root.md,
// backlog.md).
func (v *Vault) ReadFile(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(v.Root, name))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(data), nil
}

// WriteRaw writes a raw vault file atomically by vault-relative name,
// creating parent directories as needed.
func (v *Vault) WriteRaw(name, content string) error {
	path := filepath.Join(v.Root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return atomicfile.WriteFile(path, []byte(content), 0)
}

// List returns the identifiers of all active notes, sorted. Reserved
// files, dotfiles, and the archive, template, and ref directories are
// skipped.
func (v *Vault) List() ([]string, error) {
	return listIDs(v.Root, "")
}

// ListArchived returns the identifiers of all archived notes, with their
// "archive/" prefix, sorted. An absent archive directory yields an empty
// list.
func (v *Vault) ListArchived() ([]string, error) {
	dir := filepath.Join(v.Root, ArchiveDir)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}
	return listIDs(dir, note.ArchivePrefix)
}

func listIDs(dir, prefix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if !strings.HasSuffix(name, ".md") {
			continue
		}
		if prefix == "" && (name == RootFile || name == BacklogFile) {
			continue
		}
		ids = append(ids, prefix+strings.TrimSuffix(name, ".md"))
	}
	return ids, nil
}

// Delete removes a note file. Deleting a missing note returns ErrNotFound.
func (v *Vault) Delete(id string) error {
	if err := os.Remove(v.NotePath(id)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return fmt.Errorf("delete %s: %w", id, err)
	}
	return nil
}
