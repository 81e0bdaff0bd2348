// Package failure defines the immutable record of a failed assertion and the
// error taxonomy used while one is being processed.
//
// A Context is built once at the assertion call site, owned by the failing
// goroutine, and discarded after its diagnostic has been written. The Kind
// taxonomy selects the fixed description used on the degraded termination
// path when failure processing itself goes wrong.
package failure

import (
	"strconv"
	"strings"
)

// Context is the immutable record of a single assertion failure.
//
// Expression may be empty when the call site did not supply the failing
// expression's text. Message is only meaningful when HasMessage is true;
// unformatted assertions leave both at their zero values.
type Context struct {
	File       string
	Line       int
	Function   string
	Expression string
	Message    string
	HasMessage bool
}

// Diagnostic returns the exact diagnostic line for the failure. The text and
// whitespace are part of the contract; callers must write the returned string
// verbatim in a single write.
func (c Context) Diagnostic() string {
	var sb strings.Builder

	c.writeLocation(&sb)
	sb.WriteString(`: The assertion "`)
	sb.WriteString(c.Expression)

	if c.HasMessage {
		sb.WriteString(`" failed with the message "`)
		sb.WriteString(c.Message)
		sb.WriteString("\".\n")
	} else {
		sb.WriteString("\" failed.\n")
	}

	return sb.String()
}

// FallbackDiagnostic returns the degraded diagnostic used when failure
// processing itself errored. It never includes the rendered message: on this
// path the message is the thing that could not be produced or delivered.
func (c Context) FallbackDiagnostic(kind Kind) string {
	var sb strings.Builder

	c.writeLocation(&sb)
	sb.WriteString(`: The assertion "`)
	sb.WriteString(c.Expression)
	sb.WriteString("\" failed.\n")
	sb.WriteString(`The following error occurred during assertion failure processing: "`)
	sb.WriteString(kind.Description())
	sb.WriteString("\"\n")

	return sb.String()
}

func (c Context) writeLocation(sb *strings.Builder) {
	sb.WriteString(c.File)
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(c.Line))
	sb.WriteString(": ")
	sb.WriteString(c.Function)
}
