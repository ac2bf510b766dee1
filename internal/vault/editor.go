package vault

import (
	"fmt"
	"os/exec"
	"strings"
)

// OpenInEditor launches an editor on a file in the background. It returns
// false when no editor is configured or the launch fails.
//
// A compound editor command such as "open -a Cursor" is run via the
// shell so its arguments survive.
func OpenInEditor(editor, filePath string) bool {
	if editor == "" {
		return false
	}

	var cmd *exec.Cmd
	if strings.Contains(editor, " ") {
		cmd = exec.Command("sh", "-c", editor+" "+shellQuote(filePath))
	} else {
		cmd = exec.Command(editor, filePath)
	}

	if err := cmd.Start(); err != nil {
		fmt.Printf("Warning: failed to open editor %q: %v\n", editor, err)
		return false
	}
	return true
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "'\"'\"'") + "'"
}
