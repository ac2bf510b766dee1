package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aviaryhq/cortex/internal/llm"
	"github.com/aviaryhq/cortex/internal/tasks"
	"github.com/aviaryhq/cortex/internal/ui"
)

var refineModel string

var refineCmd = &cobra.Command{
	Use:   "refine <project>",
	Short: "Suggest next tasks for a project",
	Long: `Send a project's body and current task list to a local Ollama model
and print its suggested follow-up tasks. Nothing is written to the
vault; copy what you like into 'cor new task'.`,
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
		project, err := v.Load(match.ID)
		if err != nil {
			return handleError(ErrNoteMalformed, err, "")
		}

		idx, err := v.BuildIndex()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		infos, err := tasks.NewEngine(v).ListTasks(match.ID, idx)
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		prompt := llm.RefinePrompt(project, infos)
		out, err := llm.NewClient().Generate(cmd.Context(), refineModel, prompt)
		if err != nil {
			switch {
			case errors.Is(err, llm.ErrUnavailable):
				return handleError(ErrLLMUnavailable, err, "Start Ollama with 'ollama serve'")
			case errors.Is(err, llm.ErrTimeout):
				return handleError(ErrLLMTimeout, err, "Try a smaller model with --model")
			case errors.Is(err, llm.ErrModelNotFound):
				return handleError(ErrLLMModelNotFound, err,
					fmt.Sprintf("Pull it with 'ollama pull %s'", refineModel))
			}
			return handleError(ErrInternal, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"project":     match.ID,
				"model":       refineModel,
				"suggestions": out,
			})
			return nil
		}

		fmt.Println(ui.Header("Suggestions for " + match.ID))
		display := ui.NewDisplayContext()
		rendered, err := ui.RenderMarkdown(out, display.TermWidth)
		if err != nil {
			fmt.Println(out)
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

func init() {
	refineCmd.Flags().StringVar(&refineModel, "model", llm.DefaultModel, "Ollama model to use")
	rootCmd.AddCommand(refineCmd)
}
