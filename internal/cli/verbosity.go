package cli

import (
	"fmt"

	"github.com/aviaryhq/cortex/internal/ui"
)

// Verbosity levels recognized in the config: quiet drops followup
// hints, verbose adds detail like file paths. Anything else, including
// unset, reads as normal.
const (
	VerbosityQuiet   = "quiet"
	VerbosityNormal  = "normal"
	VerbosityVerbose = "verbose"
)

func quietOutput() bool {
	return getConfig().Verbosity == VerbosityQuiet
}

func verboseOutput() bool {
	return getConfig().Verbosity == VerbosityVerbose
}

// printHint prints a muted followup hint, suppressed at quiet verbosity
// and in JSON mode.
func printHint(msg string) {
	if quietOutput() || isJSONOutput() {
		return
	}
	fmt.Println(ui.Hint(msg))
}
