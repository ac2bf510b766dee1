package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aviaryhq/cortex/internal/dates"
	"github.com/aviaryhq/cortex/internal/note"
	"github.com/aviaryhq/cortex/internal/tasks"
	"github.com/aviaryhq/cortex/internal/ui"
	"github.com/aviaryhq/cortex/internal/vault"
)

var (
	tasksAll bool
	tasksDue string
)

var tasksCmd = &cobra.Command{
	Use:   "tasks [project]",
	Short: "List tasks",
	Long: `List the tasks of a project or group. With no argument, lists every
project with its open task counts. --all includes done and dropped
tasks in the listing; --due restricts it to tasks due on or before a
date ("--due today" for what is on the plate now).`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeNoteIDs(false),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := openVault()
		if err != nil {
			return handleError(ErrVaultNotFound, err, "")
		}
		idx, err := v.BuildIndex()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		engine := tasks.NewEngine(v)

		if len(args) == 0 {
			return listProjects(v, engine, idx)
		}

		match, err := resolveQuery(v, args[0], false)
		if err != nil {
			return handleResolveError(err, args[0])
		}

		infos, err := engine.ListTasks(match.ID, idx)
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		if !tasksAll {
			infos = openTasks(infos)
		}
		if tasksDue != "" {
			cutoff, err := dates.ParseDateArg(tasksDue, time.Now())
			if err != nil {
				return handleError(ErrInvalidInput, err,
					"Dates are YYYY-MM-DD, today, yesterday, or tomorrow")
			}
			infos = dueTasks(infos, cutoff)
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"project": match.ID, "tasks": infos})
			return nil
		}

		fmt.Println(ui.Header(match.ID) + " " + ui.Count(len(infos), "task", "tasks"))
		for _, t := range infos {
			line := fmt.Sprintf("%s %s %s", ui.Checkbox(t.Status), t.Title, ui.Hint(t.ID))
			if idx.HasChildren(t.ID) {
				line += " " + ui.Hint("(group)")
			}
			if t.Due != "" {
				line += " " + ui.Muted.Render("due "+t.Due)
			}
			fmt.Println("  " + line)
		}
		return nil
	},
}

// listProjects prints every project with its open/total task counts.
func listProjects(v *vault.Vault, engine *tasks.Engine, idx *vault.Index) error {
	projects := v.Projects(idx)

	type projectRow struct {
		ID    string `json:"id"`
		Open  int    `json:"open"`
		Total int    `json:"total"`
	}
	var rows []projectRow
	for _, id := range projects {
		infos, err := engine.ListTasks(id, idx)
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		rows = append(rows, projectRow{ID: id, Open: len(openTasks(infos)), Total: len(infos)})
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{"projects": rows})
		return nil
	}
	if len(rows) == 0 {
		printHint("No projects yet. Create one with 'cor new project <name>'.")
		return nil
	}
	for _, r := range rows {
		fmt.Printf("%s %s\n", ui.Identifier(r.ID),
			ui.Hint(fmt.Sprintf("%d/%d open", r.Open, r.Total)))
	}
	return nil
}

// dueTasks keeps tasks whose due date is on or before the cutoff.
// Tasks with no date or an unparsable one are excluded.
func dueTasks(infos []tasks.TaskInfo, cutoff string) []tasks.TaskInfo {
	limit, err := dates.ParseDate(cutoff)
	if err != nil {
		return nil
	}
	var due []tasks.TaskInfo
	for _, t := range infos {
		d, err := dates.ParseDate(t.Due)
		if err != nil {
			continue
		}
		if !d.After(limit) {
			due = append(due, t)
		}
	}
	return due
}

// openTasks filters out finished work.
func openTasks(infos []tasks.TaskInfo) []tasks.TaskInfo {
	var open []tasks.TaskInfo
	for _, t := range infos {
		if t.Status == note.StatusDone || t.Status == note.StatusDropped {
			continue
		}
		open = append(open, t)
	}
	return open
}

func init() {
	tasksCmd.Flags().BoolVarP(&tasksAll, "all", "a", false, "Include done and dropped tasks")
	tasksCmd.Flags().StringVar(&tasksDue, "due", "", "Only tasks due on or before this date")
	rootCmd.AddCommand(tasksCmd)
}
