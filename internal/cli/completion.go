package cli

import (
	"github.com/spf13/cobra"

	"github.com/aviaryhq/cortex/internal/fuzzy"
)

// completeNoteIDs offers identifier completions ranked by the same
// matcher the commands resolve with, so completion and resolution agree.
func completeNoteIDs(includeArchived bool) func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		v, err := openVault()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		candidates, err := candidatesFor(v, includeArchived)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		if toComplete == "" {
			ids := make([]string, len(candidates))
			for i, c := range candidates {
				ids[i] = c.ID
			}
			return ids, cobra.ShellCompDirectiveNoFileComp
		}

		matches := fuzzy.Rank(toComplete, candidates)
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m.ID
		}
		return ids, cobra.ShellCompDirectiveNoFileComp
	}
}
