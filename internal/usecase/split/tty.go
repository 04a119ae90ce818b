package split

import (
	"os"

	"golang.org/x/term"
)

// IsTTY checks if the given file descriptor is a terminal.
func IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// StdinIsTerminal reports whether stdin is attached to an interactive
// terminal rather than a pipe or redirect. The CLI uses this to refuse a
// run that would otherwise block waiting for a human to type a diff.
func StdinIsTerminal() bool {
	return IsTTY(os.Stdin.Fd())
}
