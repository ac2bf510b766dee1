package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aviaryhq/cortex/internal/fuzzy"
	"github.com/aviaryhq/cortex/internal/ui"
)

var resolveArchived bool

var resolveCmd = &cobra.Command{
	Use:   "resolve <query>",
	Short: "Show what a query resolves to",
	Long: `Resolve a partial name the way every other command would and report
the result: the unique match, the tied candidates, or nothing.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeNoteIDs(true),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := openVault()
		if err != nil {
			return handleError(ErrVaultNotFound, err, "")
		}
		match, err := resolveQuery(v, args[0], resolveArchived)
		if err != nil {
			var ambErr *fuzzy.AmbiguousError
			if errors.As(err, &ambErr) {
				if isJSONOutput() {
					outputSuccess(map[string]interface{}{
						"ambiguous": true,
						"matches":   ambErr.Matches,
					})
					return nil
				}
				fmt.Println(ui.Warningf("%q is ambiguous:", args[0]))
				for _, m := range ambErr.Matches {
					fmt.Println("  " + ui.Identifier(m.ID))
				}
				return nil
			}
			return handleResolveError(err, args[0])
		}

		if isJSONOutput() {
			outputSuccess(match)
			return nil
		}
		out := ui.Identifier(match.ID)
		if match.Archived {
			out += " " + ui.Hint("(archived)")
		}
		fmt.Println(out)
		return nil
	},
}

func init() {
	resolveCmd.Flags().BoolVar(&resolveArchived, "archived", false, "Resolve against archived notes too")
	rootCmd.AddCommand(resolveCmd)
}
