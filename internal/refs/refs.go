// Package refs manages bibliographic reference notes: markdown files
// under ref/ sharing the vault's front-matter format, mirrored into a
// BibTeX bibliography.
package refs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aviaryhq/cortex/internal/dates"
	"github.com/aviaryhq/cortex/internal/frontmatter"
	"github.com/aviaryhq/cortex/internal/note"
	"github.com/aviaryhq/cortex/internal/vault"
)

// BibFile is the vault-relative path of the mirrored bibliography.
const BibFile = vault.RefDir + "/references.bib"

// ErrDuplicateDOI is returned when a DOI is already in the bibliography.
var ErrDuplicateDOI = errors.New("DOI already referenced")

// Store reads and writes reference notes in a vault.
type Store struct {
	Vault *vault.Vault
	Now   func() time.Time
}

// NewStore returns a store over a vault using the wall clock.
func NewStore(v *vault.Vault) *Store {
	return &Store{Vault: v, Now: time.Now}
}

// RefInfo is a row in a reference listing.
type RefInfo struct {
	Citekey string `json:"citekey"`
	Title   string `json:"title"`
	Year    int    `json:"year,omitempty"`
	DOI     string `json:"doi,omitempty"`
}

func (s *Store) notePath(citekey string) string {
	return vault.RefDir + "/" + citekey + ".md"
}

// Add stores a work as a reference note and appends it to the
// bibliography, returning the generated citekey. A work whose DOI is
// already referenced is rejected.
func (s *Store) Add(work *Work) (string, error) {
	bib, err := s.Vault.ReadFile(BibFile)
	if err != nil {
		// First reference; the bibliography starts empty.
		bib = ""
	}
	if HasDOI(bib, work.DOI) {
		return "", fmt.Errorf("%w: %s", ErrDuplicateDOI, work.DOI)
	}

	taken := map[string]bool{}
	for _, info := range s.List() {
		taken[info.Citekey] = true
	}
	citekey := Citekey(work, taken)

	meta := frontmatter.New()
	meta.Set(note.KeyCreated, dates.Today(s.Now()))
	meta.Set(note.KeyType, "reference")
	meta.Set("title", work.Title)
	meta.Set("authors", work.Authors)
	if work.Year != 0 {
		meta.Set("year", work.Year)
	}
	if work.Journal != "" {
		meta.Set("journal", work.Journal)
	}
	meta.Set("doi", work.DOI)
	meta.Set(note.KeyTags, nil)

	body := "# " + work.Title + "\n"
	if work.Abstract != "" {
		body += "\n## Abstract\n\n" + work.Abstract + "\n"
	}
	if err := s.Vault.WriteRaw(s.notePath(citekey), frontmatter.Render(meta, body)); err != nil {
		return "", err
	}

	bib = AppendBibtex(bib, BibtexEntry(citekey, work))
	if err := s.Vault.WriteRaw(BibFile, bib); err != nil {
		return "", err
	}
	return citekey, nil
}

// List returns every reference note, sorted by citekey. Notes that fail
// to parse are skipped.
func (s *Store) List() []RefInfo {
	dir := filepath.Join(s.Vault.Root, vault.RefDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var infos []RefInfo
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".md") {
			continue
		}
		citekey := strings.TrimSuffix(name, ".md")
		n, err := s.Load(citekey)
		if err != nil {
			continue
		}
		info := RefInfo{
			Citekey: citekey,
			Title:   n.Meta.GetString("title"),
			DOI:     n.Meta.GetString("doi"),
		}
		if y, ok := n.Meta.Get("year"); ok {
			switch v := y.(type) {
			case int:
				info.Year = v
			case string:
				info.Year, _ = strconv.Atoi(v)
			}
		}
		infos = append(infos, info)
	}
	return infos
}

// Load reads a reference note by citekey.
func (s *Store) Load(citekey string) (*note.Note, error) {
	data, err := s.Vault.ReadFile(s.notePath(citekey))
	if err != nil {
		return nil, fmt.Errorf("%w: ref %s", vault.ErrNotFound, citekey)
	}
	meta, body, err := frontmatter.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("ref %s: %w", citekey, err)
	}
	return &note.Note{ID: vault.RefDir + "/" + citekey, Meta: meta, Body: body}, nil
}

// Delete removes a reference note and its bibliography entry.
func (s *Store) Delete(citekey string) error {
	path := filepath.Join(s.Vault.Root, filepath.FromSlash(s.notePath(citekey)))
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: ref %s", vault.ErrNotFound, citekey)
		}
		return fmt.Errorf("delete ref %s: %w", citekey, err)
	}
	bib, err := s.Vault.ReadFile(BibFile)
	if err != nil {
		return nil
	}
	return s.Vault.WriteRaw(BibFile, RemoveBibtex(bib, citekey))
}
