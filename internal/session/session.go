//go:build !windows

// Package session owns the PTY pair and the single child process attached to
// it: spawning the picker with the slave as its controlling terminal, writing
// key bytes to the master, waiting for exit, and draining leftover output.
package session

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"

	"github.com/tint-sh/tintharness/internal/keymap"
)

const (
	// ExecFailureCode is reported when the child could not be spawned at
	// all. 127 is the shell's own command-not-found code, which tint_pick
	// never produces on its own.
	ExecFailureCode = 127

	// DefaultStubBG is the sentinel the tint_query stub returns. It must
	// not appear in any palette or extraction could report it as the pick.
	DefaultStubBG = "#f0e1d2"

	drainIdle  = 100 * time.Millisecond
	drainChunk = 4096

	ptyRows = 24
	ptyCols = 80
)

// Config describes one run. Zero-valued timing is legal for tests driving
// scripted targets that need no pacing.
type Config struct {
	// TargetPath is the tint script sourced into the child shell.
	TargetPath string
	// StubBG overrides DefaultStubBG when non-empty.
	StubBG string
	Timing keymap.Timing
}

// Session is 1:1 with its child process and is never reused.
type Session struct {
	master    *os.File
	cmd       *exec.Cmd
	slavePath string
}

// Open allocates a PTY pair and spawns bash running tint_pick with the slave
// bound to stdin, stdout, and stderr, so the picker's /dev/tty rendering and
// its stdout result interleave into one stream on the master, exactly as on
// a real terminal. Open fails rather than spawning when the target script
// does not exist; callers map that to ExecFailureCode.
func Open(cfg Config) (*Session, error) {
	if _, err := os.Stat(cfg.TargetPath); err != nil {
		return nil, fmt.Errorf("target %q: %w", cfg.TargetPath, err)
	}

	master, slave, err := pty.Open()
	if err != nil {
		return nil, fmt.Errorf("open pty: %w", err)
	}
	_ = pty.Setsize(master, &pty.Winsize{Rows: ptyRows, Cols: ptyCols})

	cmd := exec.Command("bash", "-c", pickScript(cfg.TargetPath, cfg.stub()))
	cmd.Stdin = slave
	cmd.Stdout = slave
	cmd.Stderr = slave
	// Setsid makes the child a session leader; Setctty adopts fd 0 (the
	// slave) as its controlling terminal. Without a controlling terminal
	// the picker's reads from /dev/tty would fail.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true, Setctty: true}

	if err := cmd.Start(); err != nil {
		_ = slave.Close()
		_ = master.Close()
		return nil, fmt.Errorf("spawn bash for %q: %w", cfg.TargetPath, err)
	}

	// Only the child needs the slave side from here on.
	slavePath := slave.Name()
	_ = slave.Close()

	// Let the picker finish its initial render. Purely time-based; under
	// heavy load this settle is the first place to look for flakiness.
	time.Sleep(cfg.Timing.Settle)

	return &Session{master: master, cmd: cmd, slavePath: slavePath}, nil
}

func (c Config) stub() string {
	if c.StubBG != "" {
		return c.StubBG
	}
	return DefaultStubBG
}

// pickScript composes the bash command: source the tint library, replace
// tint_query with a stub (the real one would probe the harness's own
// terminal for its background color), then run the picker under strict mode.
func pickScript(target, stub string) string {
	return fmt.Sprintf("source %s; tint_query() { printf '%%s' %s; }; set -eu; tint_pick",
		shellQuote(target), shellQuote(stub))
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Pid returns the child's process id.
func (s *Session) Pid() int {
	return s.cmd.Process.Pid
}

// SlavePath returns the slave device path, for diagnostics.
func (s *Session) SlavePath() string {
	return s.slavePath
}

// WriteKey delivers one key's bytes to the child's terminal input, then
// pauses for the event's delay so the target can consume it before the next
// key arrives.
func (s *Session) WriteKey(ev keymap.KeyEvent) error {
	if _, err := s.master.Write(ev.Seq); err != nil {
		return fmt.Errorf("write key %q: %w", ev.Name, err)
	}
	time.Sleep(ev.Delay)
	return nil
}

// Wait blocks until the child exits and normalizes the wait status: a normal
// exit with status N yields N, death by signal S yields -S. Callers tell the
// two apart by sign. There is no timeout; a hung target hangs the harness.
func (s *Session) Wait() int {
	_ = s.cmd.Wait()
	state := s.cmd.ProcessState
	if ws, ok := state.Sys().(syscall.WaitStatus); ok {
		if ws.Signaled() {
			return -int(ws.Signal())
		}
		return ws.ExitStatus()
	}
	return state.ExitCode()
}

// Drain reads whatever the child flushed before exiting. Each read is gated
// on poll with a short idle timeout instead of blocking, so draining stops
// on its own once nothing more is coming. EIO is how a Linux PTY master
// reports the slave side closing and is a normal end of stream here.
func (s *Session) Drain() []byte {
	var out []byte
	buf := make([]byte, drainChunk)
	fd := int32(s.master.Fd())
	for {
		fds := []unix.PollFd{{Fd: fd, Events: unix.POLLIN}}
		n, err := unix.Poll(fds, int(drainIdle.Milliseconds()))
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			break
		}
		if n == 0 || fds[0].Revents&(unix.POLLIN|unix.POLLHUP) == 0 {
			break
		}
		nr, err := unix.Read(int(fd), buf)
		if nr > 0 {
			out = append(out, buf[:nr]...)
		}
		if err != nil || nr <= 0 {
			break
		}
	}
	return out
}

// Close releases the master handle. Idempotent; every exit path must reach
// it so the descriptor is not leaked.
func (s *Session) Close() error {
	if s.master == nil {
		return nil
	}
	err := s.master.Close()
	s.master = nil
	return err
}
