// Package extract locates the picker's reported color inside the combined
// PTY stream, which also carries ANSI rendering, cursor control, and
// terminal-color OSC writes full of look-alike hex tokens.
package extract

import (
	"regexp"
	"strings"
)

// showCursor is emitted by tint right before it prints the selected color.
// Everything up to its last occurrence is interactive rendering and may
// contain palette hex values that are not the result.
const showCursor = "\x1b[?25h"

var (
	// OSC sequences start with ESC ] and end with BEL or ST (ESC \).
	// tint_set writes the chosen color into one, so they must go before
	// the token search or we match the terminal-control payload.
	oscRe = regexp.MustCompile(`\x1b\][^\x1b\x07]*(?:\x07|\x1b\\)`)

	// The result token: a marker character and six hex digits.
	tokenRe = regexp.MustCompile(`#[0-9a-fA-F]{6}`)
)

// Result returns the color token the stream reports, or "" when there is
// none. Missing anchors and absent tokens are reportable outcomes, not
// errors; invalid bytes are replaced rather than failing the run. The
// function is pure: the same bytes always yield the same answer.
func Result(raw []byte) string {
	text := strings.ToValidUTF8(string(raw), "�")
	idx := strings.LastIndex(text, showCursor)
	if idx < 0 {
		return ""
	}
	tail := text[idx+len(showCursor):]
	tail = oscRe.ReplaceAllString(tail, "")
	return tokenRe.FindString(tail)
}
