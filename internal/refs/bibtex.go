package refs

import (
	"fmt"
	"strings"
)

// BibtexEntry renders a work as a BibTeX article entry.
func BibtexEntry(citekey string, work *Work) string {
	var b strings.Builder
	fmt.Fprintf(&b, "@article{%s,\n", citekey)
	fmt.Fprintf(&b, "  title = {%s},\n", work.Title)
	if len(work.Authors) > 0 {
		fmt.Fprintf(&b, "  author = {%s},\n", strings.Join(work.Authors, " and "))
	}
	if work.Year != 0 {
		fmt.Fprintf(&b, "  year = {%d},\n", work.Year)
	}
	if work.Journal != "" {
		fmt.Fprintf(&b, "  journal = {%s},\n", work.Journal)
	}
	fmt.Fprintf(&b, "  doi = {%s},\n", work.DOI)
	b.WriteString("}\n")
	return b.String()
}

// HasDOI reports whether a bibliography already carries an entry for the
// DOI.
func HasDOI(bib, doi string) bool {
	return doi != "" && strings.Contains(bib, "doi = {"+doi+"}")
}

// AppendBibtex adds an entry to a bibliography, separated by a blank
// line.
func AppendBibtex(bib, entry string) string {
	bib = strings.TrimRight(bib, "\n")
	if bib == "" {
		return entry
	}
	return bib + "\n\n" + entry
}

// RemoveBibtex drops the entry with the given citekey from a
// bibliography. Unknown citekeys leave the text unchanged.
func RemoveBibtex(bib, citekey string) string {
	var kept []string
	for _, block := range splitEntries(bib) {
		if entryKey(block) == citekey {
			continue
		}
		kept = append(kept, block)
	}
	out := strings.Join(kept, "\n\n")
	if out != "" {
		out += "\n"
	}
	return out
}

// entryKey extracts the citekey from an entry block, or "" for
// non-entry text.
func entryKey(block string) string {
	if !strings.HasPrefix(block, "@") {
		return ""
	}
	open := strings.Index(block, "{")
	if open < 0 {
		return ""
	}
	rest := block[open+1:]
	if cut := strings.IndexAny(rest, ",\n"); cut >= 0 {
		rest = rest[:cut]
	}
	return strings.TrimSpace(rest)
}

// splitEntries cuts a bibliography into entry blocks on lines starting
// with "@".
func splitEntries(bib string) []string {
	lines := strings.Split(strings.TrimRight(bib, "\n"), "\n")
	var blocks []string
	var cur []string
	flush := func() {
		if len(cur) > 0 {
			blocks = append(blocks, strings.TrimRight(strings.Join(cur, "\n"), "\n"))
			cur = nil
		}
	}
	for _, l := range lines {
		if strings.HasPrefix(l, "@") {
			flush()
		}
		if strings.TrimSpace(l) == "" && len(cur) == 0 {
			continue
		}
		cur = append(cur, l)
	}
	flush()
	return blocks
}
