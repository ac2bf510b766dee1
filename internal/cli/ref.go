package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aviaryhq/cortex/internal/frontmatter"
	"github.com/aviaryhq/cortex/internal/refs"
	"github.com/aviaryhq/cortex/internal/ui"
	"github.com/aviaryhq/cortex/internal/vault"
)

var refCmd = &cobra.Command{
	Use:   "ref",
	Short: "Manage bibliographic references",
	Long: `Reference notes live under ref/ and mirror into ref/references.bib.
Adding a reference looks its DOI up on Crossref and generates a citekey
like hamming1997art.`,
}

var refAddCmd = &cobra.Command{
	Use:   "add <doi-or-url>",
	Short: "Add a reference by DOI",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := openVault()
		if err != nil {
			return handleError(ErrVaultNotFound, err, "")
		}

		doi, ok := refs.ExtractDOI(args[0])
		if !ok {
			return handleErrorMsg(ErrInvalidInput,
				fmt.Sprintf("no DOI found in %q", args[0]),
				"Pass a DOI like 10.1000/xyz123 or a URL containing one")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
		defer cancel()
		work, err := refs.NewCrossrefClient().Lookup(ctx, doi)
		if err != nil {
			return handleError(ErrCrossrefFailed, err,
				"Check the DOI and your network connection")
		}

		store := refs.NewStore(v)
		citekey, err := store.Add(work)
		if err != nil {
			if errors.Is(err, refs.ErrDuplicateDOI) {
				return handleError(ErrDuplicateDOI, err, "Run 'cor ref list' to find it")
			}
			return handleError(ErrInternal, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"citekey": citekey, "work": work})
			return nil
		}
		fmt.Println(ui.Successf("Added %s %s", ui.Identifier(citekey), ui.Hint(work.Title)))
		return nil
	},
}

var refListCmd = &cobra.Command{
	Use:   "list",
	Short: "List references",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := openVault()
		if err != nil {
			return handleError(ErrVaultNotFound, err, "")
		}
		infos := refs.NewStore(v).List()

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"references": infos})
			return nil
		}
		if len(infos) == 0 {
			printHint("No references yet. Add one with 'cor ref add <doi>'.")
			return nil
		}
		for _, r := range infos {
			line := ui.Identifier(r.Citekey) + " " + r.Title
			if r.Year != 0 {
				line += " " + ui.Hint(fmt.Sprintf("(%d)", r.Year))
			}
			fmt.Println(line)
		}
		return nil
	},
}

var refShowCmd = &cobra.Command{
	Use:   "show <citekey>",
	Short: "Display a reference note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := openVault()
		if err != nil {
			return handleError(ErrVaultNotFound, err, "")
		}
		n, err := refs.NewStore(v).Load(args[0])
		if err != nil {
			if errors.Is(err, vault.ErrNotFound) {
				return handleError(ErrCitekeyNotFound, err, "Run 'cor ref list' to see citekeys")
			}
			return handleError(ErrNoteMalformed, err, "")
		}

		if isJSONOutput() {
			meta := map[string]interface{}{}
			for _, key := range n.Meta.Keys() {
				val, _ := n.Meta.Get(key)
				meta[key] = val
			}
			outputSuccess(map[string]interface{}{
				"citekey":  args[0],
				"metadata": meta,
				"body":     n.Body,
			})
			return nil
		}

		display := ui.NewDisplayContext()
		rendered, err := ui.RenderMarkdown(n.Body, display.TermWidth)
		if err != nil {
			fmt.Print(frontmatter.Render(n.Meta, n.Body))
			return nil
		}
		fmt.Println(ui.Identifier(args[0]))
		fmt.Print(rendered)
		return nil
	},
}

var refDelCmd = &cobra.Command{
	Use:   "del <citekey>",
	Short: "Delete a reference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := openVault()
		if err != nil {
			return handleError(ErrVaultNotFound, err, "")
		}
		if err := refs.NewStore(v).Delete(args[0]); err != nil {
			if errors.Is(err, vault.ErrNotFound) {
				return handleError(ErrCitekeyNotFound, err, "Run 'cor ref list' to see citekeys")
			}
			return handleError(ErrInternal, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"deleted": args[0]})
			return nil
		}
		fmt.Println(ui.Successf("Deleted %s", ui.Identifier(args[0])))
		return nil
	},
}

// completeCitekeys offers the stored citekeys for completion.
func completeCitekeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	v, err := openVault()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var keys []string
	for _, r := range refs.NewStore(v).List() {
		if strings.HasPrefix(r.Citekey, toComplete) {
			keys = append(keys, r.Citekey)
		}
	}
	return keys, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	refShowCmd.ValidArgsFunction = completeCitekeys
	refDelCmd.ValidArgsFunction = completeCitekeys
	refCmd.AddCommand(refAddCmd)
	refCmd.AddCommand(refListCmd)
	refCmd.AddCommand(refShowCmd)
	refCmd.AddCommand(refDelCmd)
	rootCmd.AddCommand(refCmd)
}
