package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// askYesNo prints a question and reads one line from stdin. defaultYes
// controls what an empty answer means.
func askYesNo(w io.Writer, question string, defaultYes bool) (bool, error) {
	suffix := "(y/N)"
	if defaultYes {
		suffix = "(Y/n)"
	}
	fmt.Fprintf(w, "? %s %s ", question, suffix)

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return false, fmt.Errorf("reading confirmation: %w", err)
		}
		return defaultYes, nil
	}

	answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
	switch answer {
	case "":
		return defaultYes, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// confirmRun is the pipeline's confirmation gate: show the configuration,
// ask once.
func confirmRun(w io.Writer, summary string) (bool, error) {
	fmt.Fprintln(w, "\nAbout to build and publish with this configuration:")
	fmt.Fprintln(w, summary)
	return askYesNo(w, "Proceed?", true)
}
