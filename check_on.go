//go:build !invariants_off

package invariants

// Enabled reports whether assertions are compiled in. Builds carrying the
// invariants_off tag turn every package-level entry point into a no-op.
func Enabled() bool { return true }

// Assert terminates the process with a diagnostic when cond is false,
// using the process-wide handler. expr is the failing expression's text; it
// may be empty.
func Assert(cond bool, expr string) {
	if cond {
		return
	}

	Default().fail(newContext(1, expr))
}

// Assertf is Assert with a formatted message. When formatted messages are
// disabled by configuration it behaves exactly like Assert.
func Assertf(cond bool, expr, format string, args ...any) {
	if cond {
		return
	}

	Default().failFormatted(newContext(1, expr), format, args)
}

// Precondition is Assert under a name that documents intent at function
// entry.
func Precondition(cond bool, expr string) {
	if cond {
		return
	}

	Default().fail(newContext(1, expr))
}

// Preconditionf is Assertf under a name that documents intent at function
// entry.
func Preconditionf(cond bool, expr, format string, args ...any) {
	if cond {
		return
	}

	Default().failFormatted(newContext(1, expr), format, args)
}

// Postcondition is Assert under a name that documents intent at function
// exit.
func Postcondition(cond bool, expr string) {
	if cond {
		return
	}

	Default().fail(newContext(1, expr))
}

// Postconditionf is Assertf under a name that documents intent at function
// exit.
func Postconditionf(cond bool, expr, format string, args ...any) {
	if cond {
		return
	}

	Default().failFormatted(newContext(1, expr), format, args)
}
