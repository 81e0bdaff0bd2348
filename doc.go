// Package invariants provides run-time fatal assertions with coordinated
// diagnostics: when a condition fails, the failing goroutine writes a
// human-readable diagnostic (source location, failing expression, optional
// formatted message) to the error channel and then terminates the process.
//
// The interesting guarantee is concurrent: when several goroutines fail
// assertions at nearly the same instant, none of them terminates the process
// until every concurrently-failing goroutine has finished writing its
// diagnostic, and every diagnostic line reaches the channel complete and
// non-interleaved. A degraded, uncoordinated termination path takes over
// whenever formatting, allocation, or coordination itself errors, so failure
// processing never hangs or recurses while the process is already dying.
//
// Typical wiring at application startup:
//
//	handler, err := invariants.New(invariants.DefaultConfig())
//	if err != nil {
//		// configuration error, before any assertion runs
//	}
//	invariants.SetDefault(handler)
//
// and at call sites:
//
//	invariants.Assert(index < len(items), "index < len(items)")
//	invariants.Assertf(balance >= 0, "balance >= 0", "balance is %d", balance)
//
// A failed assertion never returns control to its call site. Building with
// the invariants_off tag compiles every package-level entry point down to a
// no-op.
package invariants
