package terminal

import "testing"

func TestStderrIsTerminal(t *testing.T) {
	// Under `go test` stderr is normally a pipe, so this is typically
	// false. We only verify the call is safe; the value depends on the
	// environment.
	_ = StderrIsTerminal()
}
