package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/aviaryhq/cortex/internal/ui"
)

// canPrompt reports whether this invocation may ask questions: both
// stdin and stdout are terminals and the output is not being consumed
// as JSON.
func canPrompt() bool {
	if isJSONOutput() {
		return false
	}
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

// promptForConfirm asks message as a yes/no question, defaulting to no.
// A session that cannot prompt never confirms.
func promptForConfirm(message string) bool {
	if !canPrompt() {
		return false
	}
	fmt.Printf("%s %s ", message, ui.Hint("[y/N]"))
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// promptChoice reads a single-letter choice from stdin, returning the
// fallback when the input is empty or unreadable.
func promptChoice(message string, choices string, fallback byte) byte {
	fmt.Printf("%s %s ", message, ui.Hint("["+choices+"]"))
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return fallback
	}
	line = strings.TrimSpace(strings.ToLower(line))
	if line == "" {
		return fallback
	}
	c := line[0]
	if !strings.ContainsRune(choices, rune(c)) {
		return fallback
	}
	return c
}
