package invariants

import (
	"os"

	"github.com/LerianStudio/lib-invariants/failure"
)

// abortExitCode is 128+SIGABRT, the shell's conventional encoding of an
// aborted process.
const abortExitCode = 134

func defaultAbort() {
	os.Exit(abortExitCode)
}

// terminateWithError is the fallback terminator: a minimal, best-effort
// diagnostic written without the coordinator, then immediate termination. It
// trades the "all diagnostics flushed" guarantee for never hanging or
// recursing while the process is already in an error state.
func (h *Handler) terminateWithError(ctx failure.Context, kind failure.Kind) {
	h.writer.writeFallback(ctx, kind) //nolint:errcheck // absorbed, reported inside

	h.abort()
}
