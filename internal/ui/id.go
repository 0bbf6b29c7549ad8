package ui

import (
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	ansiBold  = "\x1b[1m"
	ansiCyan  = "\x1b[36m"
	ansiReset = "\x1b[0m"
)

// HighlightID returns an ID with its unique prefix highlighted. Output
// is left unstyled when stdout is not a terminal.
func HighlightID(id string, prefixLen int) string {
	if id == "" || prefixLen <= 0 || prefixLen > len(id) {
		return id
	}
	if !ansiEnabled() {
		return id
	}
	return ansiBold + ansiCyan + id[:prefixLen] + ansiReset + id[prefixLen:]
}

// PrefixLength looks up an ID's unique prefix length case-insensitively.
// Returns 0 when the ID is unknown.
func PrefixLength(lengths map[string]int, id string) int {
	if len(lengths) == 0 || id == "" {
		return 0
	}
	return lengths[strings.ToLower(id)]
}

func ansiEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
