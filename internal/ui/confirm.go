package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Confirm prompts the user with a yes/no question and returns their answer.
// An empty response selects defaultYes. When stdout is not a terminal the
// default is returned without prompting, so piped invocations never hang.
func Confirm(prompt string, defaultYes bool) bool {
	if !IsTerminal() {
		return defaultYes
	}

	suffix := " [y/N] "
	if defaultYes {
		suffix = " [Y/n] "
	}
	fmt.Print(WarningStyle.Render(prompt) + suffix)

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		fmt.Println()
		return defaultYes
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return defaultYes
	}
}
