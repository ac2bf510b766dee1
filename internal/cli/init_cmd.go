package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aviaryhq/cortex/internal/config"
	"github.com/aviaryhq/cortex/internal/ui"
	"github.com/aviaryhq/cortex/internal/vault"
)

var initSetDefault bool

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a new vault",
	Long: `Scaffold a vault at the given path (default: current directory):
root.md, backlog.md, and the templates, archive, and ref directories.
Re-running init on an existing vault fills in missing pieces and leaves
everything else alone.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "."
		if len(args) > 0 {
			path = args[0]
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}

		if _, err := vault.Init(abs); err != nil {
			return handleError(ErrInternal, err, "")
		}

		if initSetDefault {
			c, err := loadGlobalConfig()
			if err != nil {
				c = &config.Config{}
			}
			c.Vault = abs
			if err := c.Save(); err != nil {
				return handleError(ErrConfigInvalid, err, "")
			}
		}

		if isJSONOutput() {
			outputSuccess(map[string]string{"vault": abs})
			return nil
		}
		fmt.Println(ui.Successf("Initialized vault at %s", ui.Identifier(abs)))
		if !initSetDefault {
			printHint(fmt.Sprintf("Set %s or run 'cor init --set-default' to make it the default", config.EnvVault))
		}
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initSetDefault, "set-default", false, "Record this vault in the global config")
	rootCmd.AddCommand(initCmd)
}
