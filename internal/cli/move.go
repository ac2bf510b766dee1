package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aviaryhq/cortex/internal/note"
	"github.com/aviaryhq/cortex/internal/tasks"
	"github.com/aviaryhq/cortex/internal/ui"
	"github.com/aviaryhq/cortex/internal/vault"
)

var moveCmd = &cobra.Command{
	Use:   "move <name> <new-parent>",
	Short: "Refile a note under a new parent",
	Long: `Rename a note (and its subtree) so it lives under a different parent.
Checklists on both sides are updated: the old parent loses its line for
the note, the new parent gains one when it has a Tasks section. Use "."
as the new parent to move a note to the top level.`,
	Args:              cobra.ExactArgs(2),
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

		newParent := ""
		if args[1] != "." {
			parentMatch, err := resolveQuery(v, args[1], false)
			if err != nil {
				return handleResolveError(err, args[1])
			}
			newParent = parentMatch.ID
		}

		newID := note.BaseName(match.ID)
		if newParent != "" {
			newID = newParent + "." + newID
		}
		oldParent := note.ParentOf(match.ID)

		moved, err := v.Move(match.ID, newID)
		if err != nil {
			if errors.Is(err, vault.ErrAlreadyExists) {
				return handleError(ErrNoteExists, err, "Rename the note first")
			}
			if errors.Is(err, vault.ErrNotFound) {
				return handleError(ErrNoteNotFound, err, "")
			}
			return handleError(ErrInternal, err, "")
		}

		engine := tasks.NewEngine(v)
		if oldParent != "" && v.Exists(oldParent) {
			if err := engine.RemoveChecklistEntry(oldParent, match.ID); err != nil {
				return handleError(ErrInternal, err, "")
			}
		}
		if newParent != "" {
			n, err := v.Load(newID)
			if err != nil {
				return handleError(ErrInternal, err, "")
			}
			if n.Type() == "task" {
				if err := engine.AddChecklistEntry(newParent, newID, n.Title(), n.Status()); err != nil &&
					!errors.Is(err, tasks.ErrMissingSection) {
					return handleError(ErrInternal, err, "")
				}
			}
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"id": newID, "moved": moved})
			return nil
		}
		fmt.Println(ui.Successf("Moved %s %s %s", ui.Identifier(match.ID), ui.Hint("→"), ui.Identifier(newID)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(moveCmd)
}
