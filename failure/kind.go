package failure

import "errors"

// Kind classifies an error raised while an assertion failure was being
// processed. It selects the fixed description written by the fallback
// terminator.
type Kind uint8

const (
	// KindFormat: the message renderer rejected the format description or
	// its arguments.
	KindFormat Kind = iota
	// KindAllocation: a message buffer could not be obtained.
	KindAllocation
	// KindSync: the failure coordination protocol errored and can no longer
	// be trusted to make progress.
	KindSync
	// KindWrite: the error channel write failed. Non-fatal; reported
	// best-effort and never escalated.
	KindWrite
)

// Description returns the fixed human-readable description for the kind.
func (k Kind) Description() string {
	switch k {
	case KindFormat:
		return "the assertion message could not be formatted"
	case KindAllocation:
		return "a message buffer could not be allocated"
	case KindSync:
		return "the failure coordination primitive reported an error"
	case KindWrite:
		return "the diagnostic could not be written to the error channel"
	default:
		return "an unknown error interrupted assertion failure processing"
	}
}

// Sentinel errors for each Kind. Failure-processing steps return these (or
// errors wrapping them) so callers branch with errors.Is instead of catching
// anything on an already-failing path.
var (
	ErrFormat     = errors.New("invariants: message formatting failed")
	ErrAllocation = errors.New("invariants: message buffer allocation failed")
	ErrSync       = errors.New("invariants: failure coordination errored")
	ErrWrite      = errors.New("invariants: diagnostic write failed")
)

// KindOf maps an error from a failure-processing step to its Kind. Unknown
// errors map to KindSync: an unidentifiable fault on this path is treated
// like a broken primitive and routed to the uncoordinated terminator.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrFormat):
		return KindFormat
	case errors.Is(err, ErrAllocation):
		return KindAllocation
	case errors.Is(err, ErrWrite):
		return KindWrite
	default:
		return KindSync
	}
}
