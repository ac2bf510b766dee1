package cli

import (
	"bufio"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	builtindocs "github.com/aviaryhq/cortex/docs"
	"github.com/aviaryhq/cortex/internal/ui"
)

const docsGuideDir = "guide"

type docsTopic struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Read the bundled guides",
	Long: `Read the long-form guides bundled into the cor binary. With no
argument, the topics are listed. For command usage, use
'cor help <command>' instead.`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeDocsTopics,
	RunE: func(cmd *cobra.Command, args []string) error {
		topics, err := listDocsTopics()
		if err != nil {
			return handleError(ErrInternal, err, "Rebuild cor so the bundled guides are available")
		}

		if len(args) == 0 {
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{"topics": topics})
				return nil
			}
			fmt.Println(ui.Header("Guides"))
			for _, t := range topics {
				fmt.Printf("  %s %s\n", ui.Identifier(t.ID), t.Title)
			}
			printHint("Open one with 'cor docs <topic>'.")
			return nil
		}

		id := strings.TrimSuffix(args[0], ".md")
		found := false
		for _, t := range topics {
			if t.ID == id {
				found = true
				break
			}
		}
		if !found {
			ids := make([]string, len(topics))
			for i, t := range topics {
				ids[i] = t.ID
			}
			return handleErrorMsg(ErrInvalidInput,
				fmt.Sprintf("unknown topic %q", args[0]),
				"Available: "+strings.Join(ids, ", "))
		}

		content, err := fs.ReadFile(builtindocs.FS, path.Join(docsGuideDir, id+".md"))
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"topic": id, "content": string(content)})
			return nil
		}

		display := ui.NewDisplayContext()
		rendered, err := ui.RenderMarkdown(string(content), display.TermWidth)
		if err != nil {
			fmt.Print(string(content))
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

// listDocsTopics scans the embedded guide directory, taking each file's
// first "# " heading as its title.
func listDocsTopics() ([]docsTopic, error) {
	entries, err := fs.ReadDir(builtindocs.FS, docsGuideDir)
	if err != nil {
		return nil, err
	}
	var topics []docsTopic
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ".md")
		topics = append(topics, docsTopic{
			ID:    id,
			Title: docsTitle(path.Join(docsGuideDir, e.Name()), id),
		})
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].ID < topics[j].ID })
	return topics, nil
}

func docsTitle(fsPath, fallback string) string {
	f, err := builtindocs.FS.Open(fsPath)
	if err != nil {
		return fallback
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if title := strings.TrimSpace(strings.TrimPrefix(line, "# ")); strings.HasPrefix(line, "# ") && title != "" {
			return title
		}
	}
	return fallback
}

func completeDocsTopics(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	topics, err := listDocsTopics()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var ids []string
	for _, t := range topics {
		if strings.HasPrefix(t.ID, toComplete) {
			ids = append(ids, t.ID)
		}
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
