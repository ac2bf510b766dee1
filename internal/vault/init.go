package vault

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultRoot = `# Root

Top-level index of this vault.

## Projects
`

const defaultBacklog = `# Backlog

## Inbox
`

// Init scaffolds a new vault at path: the reserved files, the template,
// archive, and ref directories, and default templates. Existing files
// are left alone, so Init is safe to re-run.
func Init(path string) (*Vault, error) {
	for _, dir := range []string{path,
		filepath.Join(path, TemplateDir),
		filepath.Join(path, ArchiveDir),
		filepath.Join(path, RefDir),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("init vault: %w", err)
		}
	}

	seed := map[string]string{
		RootFile:    defaultRoot,
		BacklogFile: defaultBacklog,
	}
	for typ, tmpl := range defaultTemplates {
		seed[filepath.Join(TemplateDir, typ+".md")] = tmpl
	}
	for name, content := range seed {
		full := filepath.Join(path, name)
		if _, err := os.Stat(full); err == nil {
			continue
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			return nil, fmt.Errorf("init vault: %w", err)
		}
	}
	return Open(path)
}
