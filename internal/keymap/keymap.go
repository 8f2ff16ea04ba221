// Package keymap translates symbolic key names into the raw byte sequences a
// terminal delivers for those keys, and attaches the injection timing each
// key needs.
package keymap

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrUnknownKey is returned for a multi-character name outside the symbolic
// set. Translation happens before any child is spawned, so this error never
// leaves side effects behind.
var ErrUnknownKey = errors.New("unknown key")

// sequences maps the closed symbolic set to canonical terminal input bytes.
// Anything else passes through literally (single characters only).
var sequences = map[string][]byte{
	"up":     []byte("\x1b[A"),
	"down":   []byte("\x1b[B"),
	"right":  []byte("\x1b[C"),
	"left":   []byte("\x1b[D"),
	"enter":  []byte("\r"),
	"escape": []byte("\x1b"),
}

// Timing holds every delay the harness uses. All coordination with the child
// is time-based, so these are explicit and injectable rather than buried
// constants; tests run with zero values against scripted targets.
type Timing struct {
	// Settle is how long to wait after spawn before the first key, giving
	// the picker time to complete its initial render.
	Settle time.Duration
	// Key is the pause after each ordinary key.
	Key time.Duration
	// Escape is the pause after a bare escape. It must exceed the target's
	// escape-sequence read timeout (tint uses read -t 0.01) so the lone ESC
	// byte is classified before the next key arrives; otherwise the target
	// would glue it to the following bytes as one sequence.
	Escape time.Duration
}

// DefaultTiming returns the delays calibrated against tint's input loop.
func DefaultTiming() Timing {
	return Timing{
		Settle: 300 * time.Millisecond,
		Key:    50 * time.Millisecond,
		Escape: 150 * time.Millisecond,
	}
}

// KeyEvent is one resolved keystroke: immutable once built.
type KeyEvent struct {
	Name  string
	Seq   []byte
	Delay time.Duration
}

// Translate maps a key name to the bytes the terminal would deliver for it.
func Translate(name string) ([]byte, error) {
	if seq, ok := sequences[name]; ok {
		return seq, nil
	}
	if len([]rune(name)) == 1 {
		return []byte(name), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

// Resolve translates a whole scripted sequence up front. Resolving before
// the session is opened means an unrecognized name aborts the run with no
// child process to clean up.
func Resolve(names []string, timing Timing) ([]KeyEvent, error) {
	events := make([]KeyEvent, 0, len(names))
	for _, name := range names {
		seq, err := Translate(name)
		if err != nil {
			return nil, err
		}
		delay := timing.Key
		if name == "escape" {
			delay = timing.Escape
		}
		events = append(events, KeyEvent{Name: name, Seq: seq, Delay: delay})
	}
	return events, nil
}

// Names returns the symbolic key names in sorted order.
func Names() []string {
	names := make([]string, 0, len(sequences))
	for name := range sequences {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
