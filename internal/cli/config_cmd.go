package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aviaryhq/cortex/internal/config"
	"github.com/aviaryhq/cortex/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Get and set configuration values",
	Long: `Read or update the global configuration file. With no value, a key's
current setting is printed; with one, it is saved.`,
}

var configVaultCmd = &cobra.Command{
	Use:   "vault [path]",
	Short: "Get or set the default vault path",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return configGetSet("vault", args,
			func(c *config.Config) string { return c.Vault },
			func(c *config.Config, v string) { c.Vault = v })
	},
}

var configEditorCmd = &cobra.Command{
	Use:   "editor [command]",
	Short: "Get or set the editor command",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return configGetSet("editor", args,
			func(c *config.Config) string { return c.Editor },
			func(c *config.Config, v string) { c.Editor = v })
	},
}

var configVerbosityCmd = &cobra.Command{
	Use:       "verbosity [level]",
	Short:     "Get or set the output verbosity",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{VerbosityQuiet, VerbosityNormal, VerbosityVerbose},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			switch args[0] {
			case VerbosityQuiet, VerbosityNormal, VerbosityVerbose:
			default:
				return handleErrorMsg(ErrInvalidInput,
					fmt.Sprintf("unknown verbosity %q", args[0]),
					"Use quiet, normal, or verbose")
			}
		}
		return configGetSet("verbosity", args,
			func(c *config.Config) string { return c.Verbosity },
			func(c *config.Config, v string) { c.Verbosity = v })
	},
}

// configGetSet prints a key with no args and saves a new value with one.
func configGetSet(key string, args []string, get func(*config.Config) string, set func(*config.Config, string)) error {
	loaded, err := loadGlobalConfig()
	if err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}

	if len(args) == 0 {
		value := get(loaded)
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{key: value})
			return nil
		}
		if value == "" {
			fmt.Println(ui.Hint("(not set)"))
			return nil
		}
		fmt.Println(value)
		return nil
	}

	set(loaded, args[0])
	if err := saveGlobalConfig(loaded); err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}
	if isJSONOutput() {
		outputSuccess(map[string]interface{}{key: args[0]})
		return nil
	}
	fmt.Println(ui.Successf("Set %s = %s", key, args[0]))
	return nil
}

func saveGlobalConfig(c *config.Config) error {
	if configPath != "" {
		return c.SaveTo(configPath)
	}
	return c.Save()
}

func init() {
	configCmd.AddCommand(configVaultCmd)
	configCmd.AddCommand(configEditorCmd)
	configCmd.AddCommand(configVerbosityCmd)
	rootCmd.AddCommand(configCmd)
}
