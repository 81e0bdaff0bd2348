package invariants

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/LerianStudio/lib-invariants/failure"
)

// diagnosticWriter serializes diagnostic lines onto the error channel. Its
// mutex is held only for the duration of a single write; deferring process
// termination is the coordinator's job, not this lock's.
type diagnosticWriter struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	report *zap.Logger
}

// write emits the diagnostic for ctx as exactly one write call. A failed
// write is reported best-effort on the secondary channel and returned wrapped
// in failure.ErrWrite; callers absorb it, because a lost diagnostic must not
// interrupt the coordination protocol.
func (w *diagnosticWriter) write(ctx failure.Context) error {
	return w.writeLine(ctx.Diagnostic())
}

// writeFallback emits the degraded diagnostic for ctx, used when failure
// processing itself errored.
func (w *diagnosticWriter) writeFallback(ctx failure.Context, kind failure.Kind) error {
	return w.writeLine(ctx.FallbackDiagnostic(kind))
}

func (w *diagnosticWriter) writeLine(line string) error {
	w.mu.Lock()
	_, err := io.WriteString(w.out, line)
	w.mu.Unlock()

	if err == nil {
		return nil
	}

	w.reportWriteFailure(err)

	return fmt.Errorf("%w: %v", failure.ErrWrite, err)
}

// reportWriteFailure is the perror-equivalent: a best-effort secondary report
// of a failed diagnostic write. Errors here are ignored; if the secondary
// channel is broken too there is nothing left to do.
func (w *diagnosticWriter) reportWriteFailure(err error) {
	fmt.Fprintf(w.errOut, "lib-invariants: %v\n", err) //nolint:errcheck // best effort

	if w.report != nil {
		w.report.Error("diagnostic write failed", zap.Error(err))
	}
}
