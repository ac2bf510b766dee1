package refs

import (
	"fmt"
	"strings"
	"unicode"
)

// stopwords are skipped when picking the title word of a citekey.
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "on": true, "of": true,
	"in": true, "for": true, "to": true, "and": true, "with": true,
	"is": true, "are": true, "at": true, "by": true, "from": true,
}

// Citekey derives a key of the form <firstauthor><year><firstword> and
// deduplicates against taken keys with a, b, c suffixes.
func Citekey(work *Work, taken map[string]bool) string {
	author := "anon"
	if len(work.Authors) > 0 {
		parts := strings.Fields(work.Authors[0])
		if len(parts) > 0 {
			author = keyToken(parts[len(parts)-1])
		}
	}

	word := "untitled"
	for _, w := range strings.Fields(work.Title) {
		t := keyToken(w)
		if t == "" || stopwords[t] {
			continue
		}
		word = t
		break
	}

	base := fmt.Sprintf("%s%d%s", author, work.Year, word)
	if !taken[base] {
		return base
	}
	for suffix := 'a'; suffix <= 'z'; suffix++ {
		key := base + string(suffix)
		if !taken[key] {
			return key
		}
	}
	// Pathological collision count; make the key unique by length.
	key := base
	for taken[key] {
		key += "x"
	}
	return key
}

// keyToken lowercases a word and strips everything but letters and
// digits.
func keyToken(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
