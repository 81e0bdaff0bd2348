package invariants

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/LerianStudio/lib-invariants/coordinator"
	"github.com/LerianStudio/lib-invariants/failure"
	"github.com/LerianStudio/lib-invariants/render"
)

// Handler evaluates assertions and drives failure processing: render the
// message, register with the coordinator, write the diagnostic, rendezvous
// with concurrently-failing goroutines, terminate.
//
// A Handler is safe for concurrent use unless configured SingleThreaded.
// Independent handlers coordinate independently; production code should run
// exactly one (see SetDefault).
type Handler struct {
	cfg      Config
	renderer render.Renderer
	coord    *coordinator.Coordinator
	writer   *diagnosticWriter
	buffers  *sync.Pool
	shared   *render.Buffer
	bufBytes int
	abort    func()
	report   *zap.Logger
	metrics  *failureMetrics
}

// New builds a Handler from cfg. Configuration errors surface here, before
// any assertion runs; nothing on the failure path can fail for a Handler
// that New accepted.
func New(cfg Config) (*Handler, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid invariants config: %w", err)
	}

	h := &Handler{
		cfg:      cfg,
		renderer: cfg.Renderer,
		writer: &diagnosticWriter{
			out:    cfg.Output,
			errOut: cfg.SecondaryOutput,
			report: cfg.ReportLogger,
		},
		bufBytes: cfg.bufferBytes(),
		abort:    cfg.Abort,
		report:   cfg.ReportLogger,
		metrics:  newFailureMetrics(cfg.MeterProvider),
	}

	if h.renderer == nil {
		h.renderer = render.PrintfRenderer{}
	}

	if h.writer.out == nil {
		h.writer.out = os.Stderr
	}

	if h.writer.errOut == nil {
		h.writer.errOut = os.Stderr
	}

	if h.abort == nil {
		h.abort = defaultAbort
	}

	if cfg.SingleThreaded {
		if h.bufBytes > 0 {
			h.shared = render.NewBuffer(h.bufBytes)
		}
	} else {
		h.coord = coordinator.New()

		if size := h.bufBytes; size > 0 {
			h.buffers = &sync.Pool{New: func() any { return render.NewBuffer(size) }}
		}
	}

	return h, nil
}

// Assert terminates the process with a diagnostic when cond is false. expr
// is the failing expression's text; it may be empty.
func (h *Handler) Assert(cond bool, expr string) {
	if cond {
		return
	}

	h.fail(newContext(1, expr))
}

// Assertf is Assert with a formatted message rendered through the configured
// Renderer into a bounded buffer. When formatted messages are disabled by
// configuration it behaves exactly like Assert, never allocating or
// rendering.
func (h *Handler) Assertf(cond bool, expr, format string, args ...any) {
	if cond {
		return
	}

	h.failFormatted(newContext(1, expr), format, args)
}

// Precondition is Assert under a name that documents intent at function
// entry.
func (h *Handler) Precondition(cond bool, expr string) {
	if cond {
		return
	}

	h.fail(newContext(1, expr))
}

// Preconditionf is Assertf under a name that documents intent at function
// entry.
func (h *Handler) Preconditionf(cond bool, expr, format string, args ...any) {
	if cond {
		return
	}

	h.failFormatted(newContext(1, expr), format, args)
}

// Postcondition is Assert under a name that documents intent at function
// exit.
func (h *Handler) Postcondition(cond bool, expr string) {
	if cond {
		return
	}

	h.fail(newContext(1, expr))
}

// Postconditionf is Assertf under a name that documents intent at function
// exit.
func (h *Handler) Postconditionf(cond bool, expr, format string, args ...any) {
	if cond {
		return
	}

	h.failFormatted(newContext(1, expr), format, args)
}

// failFormatted renders the message, then hands off to the common failure
// path. Rendering happens before registration; a goroutine that cannot even
// produce its message has nothing to coordinate and terminates through the
// fallback instead.
func (h *Handler) failFormatted(ctx failure.Context, format string, args []any) {
	if h.bufBytes == 0 {
		h.fail(ctx)

		return
	}

	buf, err := h.rentBuffer()
	if err != nil {
		h.terminateWithError(ctx, failure.KindAllocation)

		return
	}
	defer h.releaseBuffer(buf)

	if _, err := h.renderer.Render(buf, format, args...); err != nil {
		h.terminateWithError(ctx, failure.KindFormat)

		return
	}

	ctx.Message = buf.String()
	ctx.HasMessage = true

	h.fail(ctx)
}

// fail runs the coordination protocol for one failure: register, write,
// deregister, rendezvous, terminate. Write failures are absorbed; any
// coordination error routes to the fallback terminator, because a broken
// rendezvous cannot be trusted to make further progress.
func (h *Handler) fail(ctx failure.Context) {
	h.reportFailure(ctx)

	if h.cfg.SingleThreaded {
		h.writer.write(ctx) //nolint:errcheck // absorbed, reported inside
		h.abort()

		return
	}

	h.coord.Register()

	h.writer.write(ctx) //nolint:errcheck // absorbed, reported inside

	if err := h.coord.Deregister(); err != nil {
		h.terminateWithError(ctx, failure.KindOf(err))

		return
	}

	if err := h.coord.Wait(h.cfg.RendezvousTimeout); err != nil {
		h.terminateWithError(ctx, failure.KindOf(err))

		return
	}

	h.abort()
}

func (h *Handler) rentBuffer() (*render.Buffer, error) {
	if h.shared != nil {
		h.shared.Reset()

		return h.shared, nil
	}

	buf, ok := h.buffers.Get().(*render.Buffer)
	if !ok || buf.Cap() == 0 {
		return nil, failure.ErrAllocation
	}

	buf.Reset()

	return buf, nil
}

func (h *Handler) releaseBuffer(buf *render.Buffer) {
	if h.buffers != nil {
		h.buffers.Put(buf)
	}
}

// newContext captures the failure record at the assertion call site. skip
// counts stack frames above newContext's caller.
func newContext(skip int, expr string) failure.Context {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return failure.Context{File: "???", Function: "???", Expression: expr}
	}

	fn := "???"
	if f := runtime.FuncForPC(pc); f != nil {
		fn = shortFuncName(f.Name())
	}

	return failure.Context{
		File:       file,
		Line:       line,
		Function:   fn,
		Expression: expr,
	}
}

// shortFuncName trims the import path prefix from a runtime function name,
// keeping the package-qualified identifier.
func shortFuncName(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		return name[i+1:]
	}

	return name
}
