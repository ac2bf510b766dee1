// Package fuzzy scores partial user-typed queries against known note
// identifiers. Lower scores are better. Matching is tiered: an exact
// match always beats any prefix match, and any prefix match beats any
// subsequence match.
package fuzzy

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Score bands keep the match tiers disjoint regardless of candidate
// length: prefix scores stay below subseqBase for any realistic
// identifier length.
const (
	prefixBase  = 1.0
	subseqBase  = 4096.0
	gapWeight   = 2.0
	startWeight = 1.0
)

// ErrNoMatch is returned when no candidate matches the query.
var ErrNoMatch = errors.New("no match")

// Candidate is a match candidate: an identifier plus whether it lives in
// the archive namespace.
type Candidate struct {
	ID       string
	Archived bool
}

// Match is a successful resolution.
type Match struct {
	ID       string
	Archived bool
	Score    float64
}

// AmbiguousError is returned when multiple candidates tie for the best
// score; the caller must disambiguate rather than pick one silently.
type AmbiguousError struct {
	Query   string
	Matches []Match
}

func (e *AmbiguousError) Error() string {
	ids := make([]string, len(e.Matches))
	for i, m := range e.Matches {
		ids[i] = m.ID
	}
	return fmt.Sprintf("%q is ambiguous: matches %s", e.Query, strings.Join(ids, ", "))
}

// Score rates candidate against query. Matching is case-insensitive.
// It returns false when the candidate cannot match at all.
//
// Exact matches score 0. Prefix matches score by unmatched suffix
// length. Subsequence matches are penalized for the unmatched prefix
// before the first hit and for gaps between matched characters.
func Score(candidate, query string) (float64, bool) {
	if query == "" {
		return 0, false
	}
	c := strings.ToLower(candidate)
	q := strings.ToLower(query)

	if c == q {
		return 0, true
	}
	if strings.HasPrefix(c, q) {
		return prefixBase + float64(len(c)-len(q)), true
	}

	// Greedy left-to-right subsequence walk.
	start := strings.IndexByte(c, q[0])
	if start < 0 {
		return 0, false
	}
	gaps := 0
	pos := start
	for i := 1; i < len(q); i++ {
		next := strings.IndexByte(c[pos+1:], q[i])
		if next < 0 {
			return 0, false
		}
		gaps += next
		pos += 1 + next
	}
	return subseqBase + startWeight*float64(start) + gapWeight*float64(gaps), true
}

// Resolve scores every candidate and returns the unique best match.
// A tie for the minimum score yields an AmbiguousError; no matching
// candidate yields ErrNoMatch.
func Resolve(query string, candidates []Candidate) (Match, error) {
	var best []Match
	for _, cand := range candidates {
		score, ok := Score(cand.ID, query)
		if !ok {
			continue
		}
		m := Match{ID: cand.ID, Archived: cand.Archived, Score: score}
		switch {
		case len(best) == 0 || score < best[0].Score:
			best = best[:0]
			best = append(best, m)
		case score == best[0].Score:
			best = append(best, m)
		}
	}

	switch len(best) {
	case 0:
		return Match{}, fmt.Errorf("%w: %q", ErrNoMatch, query)
	case 1:
		return best[0], nil
	default:
		sort.Slice(best, func(i, j int) bool { return best[i].ID < best[j].ID })
		return Match{}, &AmbiguousError{Query: query, Matches: best}
	}
}

// Rank returns all matching candidates ordered best-first, for
// completion listings.
func Rank(query string, candidates []Candidate) []Match {
	var matches []Match
	for _, cand := range candidates {
		if score, ok := Score(cand.ID, query); ok {
			matches = append(matches, Match{ID: cand.ID, Archived: cand.Archived, Score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score < matches[j].Score
		}
		return matches[i].ID < matches[j].ID
	})
	return matches
}
