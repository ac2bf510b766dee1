package llm

import (
	"fmt"
	"strings"

	"github.com/aviaryhq/cortex/internal/note"
	"github.com/aviaryhq/cortex/internal/tasks"
)

// RefinePrompt builds the prompt for suggesting next steps on a project
// from its note body and current task list.
func RefinePrompt(project *note.Note, taskList []tasks.TaskInfo) string {
	var b strings.Builder
	b.WriteString("You are helping refine a personal project plan.\n\n")
	fmt.Fprintf(&b, "Project: %s\n\n", project.Title())
	b.WriteString("Project note:\n")
	b.WriteString(strings.TrimSpace(project.Body))
	b.WriteString("\n\n")

	if len(taskList) == 0 {
		b.WriteString("The project has no tasks yet.\n")
	} else {
		fmt.Fprintf(&b, "Current tasks (%d):\n", len(taskList))
		for _, t := range taskList {
			fmt.Fprintf(&b, "- [%s] %s\n", t.Status, t.Title)
		}
	}

	b.WriteString("\nSuggest up to five concrete next tasks. ")
	b.WriteString("Answer with a plain markdown list, one task per line, no preamble.\n")
	return b.String()
}
