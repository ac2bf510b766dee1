package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aviaryhq/cortex/internal/dates"
	"github.com/aviaryhq/cortex/internal/note"
	"github.com/aviaryhq/cortex/internal/tasks"
	"github.com/aviaryhq/cortex/internal/ui"
	"github.com/aviaryhq/cortex/internal/vault"
)

var statusDue string

var statusCmd = &cobra.Command{
	Use:   "status <name> <status>",
	Short: "Set a task's status",
	Long: `Set a task's status and sync the parent's checklist glyph.
Statuses: todo, doing, done, blocked, dropped ("in-progress" is accepted
as an alias for doing). The parent checklist line, when present, gets
the matching glyph; a task nobody tracks is updated silently.

--due sets or moves the due date in the same write.`,
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completeStatusArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetStatus(args[0], args[1], statusDue)
	},
}

var doneCmd = &cobra.Command{
	Use:               "done <name>",
	Short:             "Mark a task done",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeNoteIDs(false),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetStatus(args[0], string(note.StatusDone), "")
	},
}

func runSetStatus(query, statusArg, dueArg string) error {
	status, err := note.ParseStatus(statusArg)
	if err != nil {
		return handleError(ErrInvalidStatus, err,
			"Statuses: todo, doing, done, blocked, dropped")
	}

	v, err := openVault()
	if err != nil {
		return handleError(ErrVaultNotFound, err, "")
	}
	match, err := resolveQuery(v, query, false)
	if err != nil {
		return handleResolveError(err, query)
	}

	if dueArg != "" {
		due, derr := dates.ParseDateArg(dueArg, time.Now())
		if derr != nil {
			return handleError(ErrInvalidInput, derr,
				"Dates are YYYY-MM-DD, today, yesterday, or tomorrow")
		}
		n, lerr := v.Load(match.ID)
		if lerr != nil {
			return handleError(ErrNoteMalformed, lerr, "")
		}
		n.Meta.Set(note.KeyDue, due)
		if serr := v.Save(n); serr != nil {
			return handleError(ErrInternal, serr, "")
		}
	}

	engine := tasks.NewEngine(v)
	if err := engine.SetStatus(match.ID, status); err != nil {
		if errors.Is(err, vault.ErrNotFound) {
			return handleError(ErrNoteNotFound, err, "")
		}
		return handleError(ErrInternal, err, "")
	}

	if isJSONOutput() {
		outputSuccess(map[string]string{"id": match.ID, "status": string(status)})
		return nil
	}
	fmt.Println(ui.Successf("%s %s %s", ui.Identifier(match.ID), ui.Hint("→"), ui.StatusLabel(status)))
	return nil
}

func completeStatusArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return completeNoteIDs(false)(cmd, args, toComplete)
	}
	if len(args) == 1 {
		var out []string
		for _, s := range note.Statuses() {
			out = append(out, string(s))
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	statusCmd.Flags().StringVar(&statusDue, "due", "", "Set the due date in the same write")
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(doneCmd)
}
