//go:build !windows

// Package harness composes one scripted run: resolve keys, open the PTY
// session, inject, wait, drain, extract.
package harness

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/tint-sh/tintharness/internal/extract"
	"github.com/tint-sh/tintharness/internal/keymap"
	"github.com/tint-sh/tintharness/internal/session"
)

// Result is produced once per run, printed, and discarded.
type Result struct {
	// ExitCode is the normalized child status: 0-255 for normal exits,
	// negative signal numbers for signal deaths, 127 when the child could
	// not be spawned.
	ExitCode int
	// Raw is the combined rendering+stdout byte stream.
	Raw []byte
	// Value is the extracted color token, or "" when none was found.
	Value string
}

// Write renders the two-line report consumed by test assertions.
func (r Result) Write(w io.Writer) {
	fmt.Fprintf(w, "exit:%d\n", r.ExitCode)
	fmt.Fprintf(w, "stdout:%s\n", r.Value)
}

// Run drives the target once with the given key script. Key names are
// resolved before anything is spawned, so an unknown name returns an error
// with no child to clean up. A spawn failure is not a harness error: it
// becomes a Result carrying the reserved exec-failure code, mirroring how a
// real exec failure could only ever surface through the child's exit status.
func Run(cfg session.Config, names []string, logger *log.Logger) (Result, error) {
	events, err := keymap.Resolve(names, cfg.Timing)
	if err != nil {
		return Result{}, err
	}

	sess, err := session.Open(cfg)
	if err != nil {
		logger.Debug("spawn failed", "err", err)
		return Result{ExitCode: session.ExecFailureCode}, nil
	}
	defer func() { _ = sess.Close() }()
	logger.Debug("session open", "pid", sess.Pid(), "slave", sess.SlavePath())

	for _, ev := range events {
		if err := sess.WriteKey(ev); err != nil {
			// The child may already be gone (escape aborts the picker
			// mid-script); its exit status tells the real story.
			logger.Debug("write key failed", "key", ev.Name, "err", err)
			break
		}
		logger.Debug("sent key", "key", ev.Name, "delay", ev.Delay)
	}

	code := sess.Wait()
	raw := sess.Drain()
	logger.Debug("child exited", "code", code, "drained", len(raw))

	return Result{ExitCode: code, Raw: raw, Value: extract.Result(raw)}, nil
}
