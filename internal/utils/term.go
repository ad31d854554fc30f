package utils

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

const defaultTermWidth = 80

// TermWidth returns the current terminal width.
//
// In CI / tests there is often no TTY attached, in that case fall back
// to $COLUMNS if present, then to 80.
func TermWidth() int {
	if c := os.Getenv("COLUMNS"); c != "" {
		if n, err := strconv.Atoi(c); err == nil && n > 0 {
			return n
		}
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultTermWidth
	}
	return w
}

// UseColor reports if output to f should be colored.
func UseColor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
