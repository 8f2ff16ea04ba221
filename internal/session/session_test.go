//go:build !windows

package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tint-sh/tintharness/internal/keymap"
	"github.com/tint-sh/tintharness/internal/testutil"
)

func openTarget(t *testing.T, body string, timing keymap.Timing) *Session {
	t.Helper()
	testutil.RequireBash(t)
	sess, err := Open(Config{TargetPath: testutil.WriteTarget(t, body), Timing: timing})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sess.Close() })
	return sess
}

func TestOpenMissingTarget(t *testing.T) {
	_, err := Open(Config{TargetPath: filepath.Join(t.TempDir(), "nope")})
	require.Error(t, err)
}

func TestWaitNormalExit(t *testing.T) {
	sess := openTarget(t, "tint_pick() { return 3; }\n", keymap.Timing{})
	assert.Equal(t, 3, sess.Wait())
}

func TestWaitZeroExit(t *testing.T) {
	sess := openTarget(t, "tint_pick() { return 0; }\n", keymap.Timing{})
	assert.Equal(t, 0, sess.Wait())
}

func TestWaitSignalDeathIsNegated(t *testing.T) {
	sess := openTarget(t, "tint_pick() { kill -TERM $$; sleep 5; }\n", keymap.Timing{})
	assert.Equal(t, -15, sess.Wait())
}

func TestDrainInterleavesTTYAndStdout(t *testing.T) {
	sess := openTarget(t, `tint_pick() {
  printf 'render' > /dev/tty
  printf '#aabbcc'
}
`, keymap.Timing{})
	assert.Equal(t, 0, sess.Wait())
	raw := string(sess.Drain())
	assert.Contains(t, raw, "render")
	assert.Contains(t, raw, "#aabbcc")
}

func TestStubReplacesTintQuery(t *testing.T) {
	testutil.RequireBash(t)
	target := testutil.WriteTarget(t, `tint_query() { echo real-query; exit 9; }
tint_pick() { printf 'bg=%s' "$(tint_query)"; }
`)
	sess, err := Open(Config{TargetPath: target, StubBG: "#012345"})
	require.NoError(t, err)
	defer func() { _ = sess.Close() }()
	assert.Equal(t, 0, sess.Wait())
	raw := string(sess.Drain())
	assert.Contains(t, raw, "bg=#012345")
	assert.NotContains(t, raw, "real-query")
}

// The picker reads from /dev/tty, not stdin, so this only works if the slave
// really became the child's controlling terminal.
func TestWriteKeyReachesControllingTerminal(t *testing.T) {
	sess := openTarget(t, `tint_pick() {
  local k
  IFS= read -rsn1 k < /dev/tty
  printf 'got:%s' "$k"
}
`, keymap.Timing{Settle: 200 * time.Millisecond})
	ev := keymap.KeyEvent{Name: "x", Seq: []byte("x"), Delay: 10 * time.Millisecond}
	require.NoError(t, sess.WriteKey(ev))
	assert.Equal(t, 0, sess.Wait())
	assert.Contains(t, string(sess.Drain()), "got:x")
}

func TestStrictModeStopsOnError(t *testing.T) {
	sess := openTarget(t, `tint_pick() { false; printf 'unreachable'; }
`, keymap.Timing{})
	assert.Equal(t, 1, sess.Wait())
	assert.NotContains(t, string(sess.Drain()), "unreachable")
}

func TestCloseIdempotent(t *testing.T) {
	sess := openTarget(t, "tint_pick() { return 0; }\n", keymap.Timing{})
	sess.Wait()
	require.NoError(t, sess.Close())
	require.NoError(t, sess.Close())
}

func TestShellQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "plain", want: "'plain'"},
		{in: "with space", want: "'with space'"},
		{in: "it's", want: `'it'\''s'`},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, shellQuote(tc.in))
	}
}

func TestPickScriptContainsStubAndStrictMode(t *testing.T) {
	script := pickScript("/tmp/tint", "#f0e1d2")
	assert.Contains(t, script, "source '/tmp/tint'")
	assert.Contains(t, script, "tint_query() { printf '%s' '#f0e1d2'; }")
	assert.Contains(t, script, "set -eu; tint_pick")
}
