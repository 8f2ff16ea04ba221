// Package terminal provides terminal detection utilities.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// StderrIsTerminal reports whether stderr is an interactive terminal.
// Diagnostics are colored only when a human is watching; CI consumers of
// the exit:/stdout: contract always get plain bytes.
func StderrIsTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}
