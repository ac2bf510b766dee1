package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aviaryhq/cortex/internal/buildinfo"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		version := buildinfo.Version
		if version == "" {
			version = "dev"
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"version": version,
				"commit":  buildinfo.Commit,
				"date":    buildinfo.Date,
			})
			return nil
		}

		fmt.Printf("cor %s\n", version)
		if buildinfo.Commit != "" {
			fmt.Printf("commit: %s\n", buildinfo.Commit)
		}
		if buildinfo.Date != "" {
			fmt.Printf("built:  %s\n", buildinfo.Date)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
