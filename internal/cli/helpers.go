package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aviaryhq/cortex/internal/fuzzy"
	"github.com/aviaryhq/cortex/internal/vault"
)

// openVault opens the resolved vault for the current invocation.
func openVault() (*vault.Vault, error) {
	return vault.Open(getVaultPath())
}

// candidatesFor lists the fuzzy-match candidates, optionally including
// the archive namespace.
func candidatesFor(v *vault.Vault, includeArchived bool) ([]fuzzy.Candidate, error) {
	idx, err := v.BuildIndex()
	if err != nil {
		return nil, err
	}
	candidates := make([]fuzzy.Candidate, 0, len(idx.IDs)+len(idx.Archived))
	for _, id := range idx.IDs {
		candidates = append(candidates, fuzzy.Candidate{ID: id})
	}
	if includeArchived {
		for _, id := range idx.Archived {
			candidates = append(candidates, fuzzy.Candidate{ID: id, Archived: true})
		}
	}
	return candidates, nil
}

// resolveQuery fuzzy-resolves a user-typed name to an identifier.
func resolveQuery(v *vault.Vault, query string, includeArchived bool) (fuzzy.Match, error) {
	candidates, err := candidatesFor(v, includeArchived)
	if err != nil {
		return fuzzy.Match{}, err
	}
	return fuzzy.Resolve(query, candidates)
}

// handleResolveError converts a resolution failure into CLI output:
// ambiguity lists every tied candidate rather than picking one.
func handleResolveError(err error, query string) error {
	var ambErr *fuzzy.AmbiguousError
	if errors.As(err, &ambErr) {
		ids := make([]string, len(ambErr.Matches))
		for i, m := range ambErr.Matches {
			ids[i] = m.ID
		}
		return handleErrorMsg(ErrRefAmbiguous,
			fmt.Sprintf("%q is ambiguous, matches:\n  %s", query, strings.Join(ids, "\n  ")),
			"Type more of the identifier to disambiguate")
	}
	if errors.Is(err, fuzzy.ErrNoMatch) {
		return handleErrorMsg(ErrRefNotFound,
			fmt.Sprintf("no note matches %q", query),
			"Run 'cor resolve' to see what a query matches")
	}
	return handleError(ErrInternal, err, "")
}
