package render

import (
	"fmt"
	"strings"

	"github.com/LerianStudio/lib-invariants/failure"
)

// Renderer renders a format description and its arguments into a bounded
// buffer, returning the number of bytes stored.
//
// A non-nil error means the format description and arguments do not agree;
// the buffer's contents are unusable afterward and callers must not read
// them. Truncation is never an error.
type Renderer interface {
	Render(buf *Buffer, format string, args ...any) (int, error)
}

// PrintfRenderer formats with fmt verbs and positional, untyped arguments.
//
// fmt reports format/argument mismatches in-band by emitting error marks
// ("%!d(string=...)", "%!(EXTRA ...)", "%!(NOVERB)") instead of failing;
// PrintfRenderer surfaces those marks as failure.ErrFormat so a bad call
// site degrades to the fallback diagnostic rather than printing garbage.
// Rendered output that merely happens to contain "%!" — an escaped percent
// before an exclamation point, an argument ending in "%!" — is not an error.
type PrintfRenderer struct{}

var _ Renderer = PrintfRenderer{}

// Render implements Renderer.
func (PrintfRenderer) Render(buf *Buffer, format string, args ...any) (int, error) {
	rendered := fmt.Sprintf(format, args...)
	if hasFormatErrorMark(rendered) {
		return 0, fmt.Errorf("%w: %q does not match its arguments", failure.ErrFormat, format)
	}

	buf.Reset()
	buf.WriteString(rendered) //nolint:errcheck // truncating writes cannot fail

	return buf.Len(), nil
}

// hasFormatErrorMark reports whether s contains one of fmt's error marks:
// "%!(" introduces the NOVERB/EXTRA/BADWIDTH class, and "%!" plus a verb
// letter plus "(" introduces the wrong-type and missing-argument class. A
// bare "%!" with nothing following that shape is ordinary output.
func hasFormatErrorMark(s string) bool {
	for {
		i := strings.Index(s, "%!")
		if i < 0 {
			return false
		}

		rest := s[i+2:]

		if strings.HasPrefix(rest, "(") {
			return true
		}

		if len(rest) >= 2 && rest[1] == '(' && isVerbLetter(rest[0]) {
			return true
		}

		s = rest
	}
}

func isVerbLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
