package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aviaryhq/cortex/internal/backlog"
	"github.com/aviaryhq/cortex/internal/tasks"
	"github.com/aviaryhq/cortex/internal/ui"
	"github.com/aviaryhq/cortex/internal/vault"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Triage the backlog inbox",
	Long: `Walk the inbox items in backlog.md one at a time. Each item can be
converted into a task under a project, kept for later, or deleted.
Without a terminal the inbox is listed instead of triaged.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := openVault()
		if err != nil {
			return handleError(ErrVaultNotFound, err, "")
		}

		text, err := v.ReadFile(vault.BacklogFile)
		if err != nil {
			return handleError(ErrMissingSection, err, "Run 'cor init' to scaffold the backlog")
		}
		items, err := backlog.ParseInbox(text)
		if err != nil {
			if errors.Is(err, backlog.ErrMissingSection) {
				return handleErrorMsg(ErrMissingSection,
					"backlog.md has no '## Inbox' section", "Add the heading or re-run 'cor init'")
			}
			return handleError(ErrInternal, err, "")
		}

		if !canPrompt() {
			return listInbox(items)
		}

		if len(items) == 0 {
			fmt.Println(ui.Hint("Inbox is empty."))
			return nil
		}

		triage := &backlog.Triage{Vault: v, Tasks: tasks.NewEngine(v)}
		var dispositions []backlog.Disposition
		converted, deleted := 0, 0

	loop:
		for i, item := range items {
			fmt.Printf("\n%s %s\n", ui.Hint(fmt.Sprintf("[%d/%d]", i+1, len(items))), item.Text)
			switch promptChoice("(p)roject / (k)eep / (d)elete / (q)uit", "pkdq", 'k') {
			case 'p':
				query := promptLine("Project:")
				if query == "" {
					fmt.Println(ui.Hint("No project given, keeping item."))
					continue
				}
				match, err := resolveQuery(v, query, false)
				if err != nil {
					fmt.Println(ui.Warningf("%v, keeping item", err))
					continue
				}
				id, err := triage.ConvertItem(match.ID, item.Text, time.Now())
				if err != nil {
					switch {
					case errors.Is(err, vault.ErrAlreadyExists):
						fmt.Println(ui.Warningf("a task with that name already exists under %s, keeping item", match.ID))
					case errors.Is(err, tasks.ErrMissingSection):
						fmt.Println(ui.Warningf("%s has no '## Tasks' section, keeping item", match.ID))
					default:
						fmt.Println(ui.Warningf("%v, keeping item", err))
					}
					continue
				}
				dispositions = append(dispositions, backlog.Disposition{Item: item, Action: backlog.Convert})
				converted++
				fmt.Println(ui.Successf("Created %s", ui.Identifier(id)))
			case 'd':
				dispositions = append(dispositions, backlog.Disposition{Item: item, Action: backlog.Delete})
				deleted++
			case 'q':
				break loop
			default:
				// Keep: no disposition needed, undecided items stay put.
			}
		}

		if converted > 0 || deleted > 0 {
			updated := backlog.ApplyDispositions(text, dispositions)
			if err := v.WriteRaw(vault.BacklogFile, updated); err != nil {
				return handleError(ErrInternal, err, "")
			}
		}
		fmt.Printf("\n%s\n", ui.Successf("Processed: %d converted, %d deleted, %d kept",
			converted, deleted, len(items)-converted-deleted))
		return nil
	},
}

// listInbox prints the inbox without triaging, for non-interactive use.
func listInbox(items []backlog.Item) error {
	if isJSONOutput() {
		texts := make([]string, 0, len(items))
		for _, it := range items {
			texts = append(texts, it.Text)
		}
		outputSuccess(map[string]interface{}{"inbox": texts})
		return nil
	}
	if len(items) == 0 {
		fmt.Println(ui.Hint("Inbox is empty."))
		return nil
	}
	fmt.Println(ui.Header("Inbox") + " " + ui.Count(len(items), "item", "items"))
	for _, it := range items {
		fmt.Println("  - " + it.Text)
	}
	printHint("Run 'cor process' in a terminal to triage.")
	return nil
}

// promptLine reads a full line of input, trimmed.
func promptLine(message string) string {
	fmt.Printf("%s ", message)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(response)
}

func init() {
	rootCmd.AddCommand(processCmd)
}
