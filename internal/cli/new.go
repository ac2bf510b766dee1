package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aviaryhq/cortex/internal/dates"
	"github.com/aviaryhq/cortex/internal/note"
	"github.com/aviaryhq/cortex/internal/slugs"
	"github.com/aviaryhq/cortex/internal/tasks"
	"github.com/aviaryhq/cortex/internal/ui"
	"github.com/aviaryhq/cortex/internal/vault"
)

var (
	newEdit bool
	newDue  string
)

var newCmd = &cobra.Command{
	Use:   "new <project|task|note> <name>",
	Short: "Create a note from its template",
	Long: `Create a project, task, or note. The name is either a full dotted
identifier ("thesis.chapter-2") or, for tasks, a parent query plus free
text: 'cor new task thesis "Write chapter 2"' slugs the text into an
identifier under the resolved parent.

New tasks are added to the parent's Tasks checklist when it has one.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		typ := args[0]
		switch typ {
		case "project", "task", "note":
		default:
			return handleErrorMsg(ErrInvalidInput,
				fmt.Sprintf("unknown note type %q", typ),
				"Use project, task, or note")
		}

		v, err := openVault()
		if err != nil {
			return handleError(ErrVaultNotFound, err, "")
		}

		id, err := newNoteID(v, typ, args[1:])
		if err != nil || id == "" {
			// An empty id means the error was already emitted as JSON.
			return err
		}

		due := ""
		if newDue != "" {
			due, err = dates.ParseDateArg(newDue, time.Now())
			if err != nil {
				return handleError(ErrInvalidInput, err,
					"Dates are YYYY-MM-DD, today, yesterday, or tomorrow")
			}
		}

		n, err := v.Create(typ, id, time.Now())
		if err != nil {
			if errors.Is(err, vault.ErrAlreadyExists) {
				return handleError(ErrNoteExists, err, "Pick a different name")
			}
			return handleError(ErrInternal, err, "")
		}

		if due != "" {
			n.Meta.Set(note.KeyDue, due)
			if err := v.Save(n); err != nil {
				return handleError(ErrInternal, err, "")
			}
		}

		// Track the new task on the parent's checklist, when there is one.
		if typ == "task" {
			if parent := note.ParentOf(id); parent != "" && v.Exists(parent) {
				engine := tasks.NewEngine(v)
				if err := engine.AddChecklistEntry(parent, id, n.Title(), note.StatusTodo); err != nil &&
					!errors.Is(err, tasks.ErrMissingSection) {
					return handleError(ErrInternal, err, "")
				}
			}
		}

		if isJSONOutput() {
			outputSuccess(map[string]string{"id": id, "path": v.NotePath(id)})
			return nil
		}
		fmt.Println(ui.Successf("Created %s %s", typ, ui.Identifier(id)))
		if verboseOutput() {
			fmt.Println(ui.Hint(v.NotePath(id)))
		}
		if newEdit {
			vault.OpenInEditor(getConfig().GetEditor(), v.NotePath(id))
		}
		return nil
	},
}

// newNoteID turns command arguments into an identifier. A single
// argument is used as the identifier itself; for tasks, a parent query
// plus title text slugs the title under the resolved parent.
func newNoteID(v *vault.Vault, typ string, args []string) (string, error) {
	if len(args) == 1 {
		id := args[0]
		if err := note.ValidateID(id); err != nil {
			return "", handleError(ErrInvalidInput, err, "Identifiers are lowercase dotted slugs")
		}
		if parent := note.ParentOf(id); parent != "" && !v.Exists(parent) {
			return "", handleErrorMsg(ErrNoteNotFound,
				fmt.Sprintf("parent %q does not exist", parent),
				"Create the parent first")
		}
		return id, nil
	}

	if typ != "task" {
		return "", handleErrorMsg(ErrInvalidInput,
			"only tasks take a parent query plus title",
			`Use 'cor new task <parent> "<title>"'`)
	}

	match, err := resolveQuery(v, args[0], false)
	if err != nil {
		return "", handleResolveError(err, args[0])
	}
	title := strings.Join(args[1:], " ")
	seg := slugs.Segment(title)
	if seg == "" {
		return "", handleErrorMsg(ErrInvalidInput,
			fmt.Sprintf("cannot derive a task name from %q", title), "")
	}
	return match.ID + "." + seg, nil
}

func init() {
	newCmd.Flags().BoolVarP(&newEdit, "edit", "e", false, "Open the new note in the editor")
	newCmd.Flags().StringVar(&newDue, "due", "", "Due date (YYYY-MM-DD, today, tomorrow)")
	rootCmd.AddCommand(newCmd)
}
