package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aviaryhq/cortex/internal/frontmatter"
	"github.com/aviaryhq/cortex/internal/ui"
)

var (
	showArchived bool
	showRaw      bool
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Display a note",
	Long: `Display a note rendered for the terminal. --raw prints the file
verbatim; --archived includes the archive namespace when resolving.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeNoteIDs(true),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := openVault()
		if err != nil {
			return handleError(ErrVaultNotFound, err, "")
		}
		match, err := resolveQuery(v, args[0], showArchived)
		if err != nil {
			return handleResolveError(err, args[0])
		}

		n, err := v.Load(match.ID)
		if err != nil {
			return handleError(ErrNoteMalformed, err, "")
		}

		idx, err := v.BuildIndex()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		kind := n.Classify(idx.HasChildren(match.ID))

		if isJSONOutput() {
			meta := map[string]interface{}{}
			for _, key := range n.Meta.Keys() {
				val, _ := n.Meta.Get(key)
				meta[key] = val
			}
			outputSuccess(map[string]interface{}{
				"id":       n.ID,
				"title":    n.Title(),
				"kind":     kind.String(),
				"metadata": meta,
				"body":     n.Body,
			})
			return nil
		}

		if showRaw {
			fmt.Print(frontmatter.Render(n.Meta, n.Body))
			return nil
		}

		if err := n.CheckHierarchy(); err != nil {
			fmt.Println(ui.Warningf("%v", err))
		}

		display := ui.NewDisplayContext()
		rendered, err := ui.RenderMarkdown(n.Body, display.TermWidth)
		if err != nil {
			// Fall back to the raw body if the renderer chokes.
			fmt.Print(n.Body)
			return nil
		}
		fmt.Println(ui.Identifier(n.ID) + " " + ui.Hint(kind.String()))
		fmt.Print(rendered)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showArchived, "archived", false, "Resolve against archived notes too")
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print the file verbatim")
	rootCmd.AddCommand(showCmd)
}
