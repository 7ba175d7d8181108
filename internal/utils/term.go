package utils

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

// TermWidth returns the current terminal width.
//
// In CI / tests there is often no TTY attached. In that case we fall back to
// the value from $COLUMNS if present, otherwise 80.
func TermWidth() (int, error) {
	if c := os.Getenv("COLUMNS"); c != "" {
		if n, err := strconv.Atoi(c); err == nil && n > 0 {
			return n, nil
		}
	}
	fd := int(os.Stderr.Fd())
	if !term.IsTerminal(fd) {
		return 80, nil
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return 80, nil
	}
	return width, nil
}
