package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aviaryhq/cortex/internal/ui"
	"github.com/aviaryhq/cortex/internal/vault"
)

var archiveYes bool

var archiveCmd = &cobra.Command{
	Use:   "archive <name>",
	Short: "Archive a note and its subtree",
	Long: `Move a note and all of its descendants into the archive namespace.
The parent's checklist link is retargeted to the archived identifier.
Archived notes stay resolvable with --archived.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeNoteIDs(false),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := openVault()
		if err != nil {
			return handleError(ErrVaultNotFound, err, "")
		}
		match, err := resolveQuery(v, args[0], false)
		if err != nil {
			return handleResolveError(err, args[0])
		}

		idx, err := v.BuildIndex()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		descendants := len(subtreeOf(idx, match.ID)) - 1

		if !archiveYes && canPrompt() && descendants > 0 {
			msg := fmt.Sprintf("Archive %s and %s?", match.ID,
				ui.Count(descendants, "descendant", "descendants"))
			if !promptForConfirm(msg) {
				fmt.Println(ui.Hint("Cancelled"))
				return nil
			}
		}

		moved, err := v.Archive(match.ID)
		if err != nil {
			if errors.Is(err, vault.ErrNotFound) {
				return handleError(ErrNoteNotFound, err, "")
			}
			return handleError(ErrInternal, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"archived": moved})
			return nil
		}
		fmt.Println(ui.Successf("Archived %s %s", ui.Identifier(match.ID),
			ui.Count(len(moved), "note", "notes")))
		return nil
	},
}

// subtreeOf lists id plus every descendant in the index.
func subtreeOf(idx *vault.Index, id string) []string {
	out := []string{id}
	for _, child := range idx.Children(id) {
		out = append(out, subtreeOf(idx, child)...)
	}
	return out
}

func init() {
	archiveCmd.Flags().BoolVarP(&archiveYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(archiveCmd)
}
