// Package ui provides terminal styling and TTY detection for addrbook output.
package ui

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// IsTTY checks if output is a terminal.
func IsTTY(w io.Writer) bool {
	if w == nil {
		return false
	}
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// IsInteractive reports whether r is a terminal, i.e. a human is typing.
func IsInteractive(r io.Reader) bool {
	if f, ok := r.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// DetectNoColor checks if NO_COLOR environment variable is set.
func DetectNoColor() bool {
	_, exists := os.LookupEnv("NO_COLOR")
	return exists
}

// UseColor decides whether output to w is styled.
// Color needs a terminal and no opt-out via flag, config or NO_COLOR.
func UseColor(w io.Writer, noColor bool) bool {
	return !noColor && !DetectNoColor() && IsTTY(w)
}
