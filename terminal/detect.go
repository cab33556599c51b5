package terminal

import (
	"os"

	"golang.org/x/term"
)

// IsInteractive reports whether both stdin and stdout are attached to a terminal
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Size returns the stdout terminal size, 0x0 when not a terminal
func Size() (int, int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, 0
	}
	return w, h
}
