//go:build !windows

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/tint-sh/tintharness/internal/terminal"
)

var executeFunc = execute

// Version and Commit are overridden at build time.
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	runMain(os.Args, os.Stdout, os.Stderr, os.Exit)
}

// SilentExitError reports an exit code without emitting error output.
type SilentExitError struct {
	Code int
}

func (e SilentExitError) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}

// execute runs the CLI command with the provided args and output writers.
func execute(args []string, stdout io.Writer, stderr io.Writer) error {
	cmd := newRootCmd()
	cmd.Version = versionString()
	if len(args) > 1 {
		cmd.SetArgs(args[1:])
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.Execute()
}

// runMain executes the CLI and maps errors to process exit codes: usage
// errors exit 2 (reserved; no child is ever spawned on that path), anything
// else exits 1. Harness outcomes, including exec failures, are not errors;
// they reach stdout as exit:/stdout: lines and the process exits 0.
func runMain(args []string, stdout io.Writer, stderr io.Writer, exit func(int)) {
	if err := executeFunc(args, stdout, stderr); err != nil {
		var silent *SilentExitError
		if errors.As(err, &silent) {
			exit(silent.Code)
			return
		}
		_, _ = fmt.Fprintln(stderr, errorPrefix(), err)
		if errors.Is(err, errUsage) {
			exit(2)
			return
		}
		exit(1)
	}
}

// versionString formats Version with optional commit metadata.
func versionString() string {
	if Commit != "" && Commit != "unknown" {
		return fmt.Sprintf("%s (commit %s)", Version, Commit)
	}
	return Version
}

func errorPrefix() string {
	prefix := color.New(color.FgRed, color.Bold)
	if !terminal.StderrIsTerminal() {
		prefix.DisableColor()
	}
	return prefix.Sprint("error:")
}
