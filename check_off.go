//go:build invariants_off

package invariants

// Enabled reports whether assertions are compiled in. Builds carrying the
// invariants_off tag turn every package-level entry point into a no-op.
func Enabled() bool { return false }

// Assert is a no-op in invariants_off builds.
func Assert(cond bool, expr string) {}

// Assertf is a no-op in invariants_off builds. Its arguments are still
// evaluated at the call site; only failure processing is compiled out.
func Assertf(cond bool, expr, format string, args ...any) {}

// Precondition is a no-op in invariants_off builds.
func Precondition(cond bool, expr string) {}

// Preconditionf is a no-op in invariants_off builds.
func Preconditionf(cond bool, expr, format string, args ...any) {}

// Postcondition is a no-op in invariants_off builds.
func Postcondition(cond bool, expr string) {}

// Postconditionf is a no-op in invariants_off builds.
func Postconditionf(cond bool, expr, format string, args ...any) {}
