package invariants

import (
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/LerianStudio/lib-invariants/render"
)

// Default message sizing: up to 1024 code points of up to 4 bytes each, the
// UTF-8 worst case.
const (
	DefaultMaxCodePointWidth = 4
	DefaultMessageCapacity   = 1024
)

// Config contains all handler initialization inputs.
type Config struct {
	// MaxCodePointWidth is the byte width budgeted per message code point.
	// Zero disables formatted messages entirely.
	MaxCodePointWidth int

	// MessageCapacity is the maximum number of code points per message.
	// Zero disables formatted messages entirely.
	//
	// The effective message buffer size in bytes is
	// MaxCodePointWidth*MessageCapacity+1, with one byte reserved. When the
	// product is zero, formatted entry points take the unformatted path
	// without allocating or rendering.
	MessageCapacity int

	// SingleThreaded disables failure coordination. Registering, writing,
	// and terminating collapse into "write then abort" with no shared state,
	// and all failures share one message buffer: concurrent formatted
	// assertions may corrupt each other's message contents. Leave false
	// unless the process is known to be single-threaded.
	SingleThreaded bool

	// RendezvousTimeout bounds the wait for sibling diagnostics before
	// terminating. Zero waits forever, which preserves the historical
	// behavior but hangs every concurrently-failing goroutine if a
	// registrant dies without deregistering. A positive timeout forces a
	// fallback termination on expiry instead.
	RendezvousTimeout time.Duration

	// Renderer produces message bytes from a format description and
	// arguments. Nil selects render.PrintfRenderer.
	Renderer render.Renderer

	// Output receives diagnostic lines. Nil selects os.Stderr.
	Output io.Writer

	// SecondaryOutput receives best-effort reports when writing to Output
	// fails. Nil selects os.Stderr.
	SecondaryOutput io.Writer

	// ReportLogger, when non-nil, receives a structured record of each
	// assertion failure before the diagnostic is written. Strictly
	// best-effort; it never affects the termination path.
	ReportLogger *zap.Logger

	// MeterProvider, when non-nil, backs the assertion-failure counter.
	// Strictly best-effort.
	MeterProvider metric.MeterProvider

	// Abort terminates the process. Nil selects the default, which exits
	// with the conventional SIGABRT shell encoding. Injectable so tests can
	// observe termination.
	Abort func()
}

// DefaultConfig returns the production configuration: coordinated,
// printf-rendered 4096-byte messages on stderr, unbounded rendezvous wait.
func DefaultConfig() Config {
	return Config{
		MaxCodePointWidth: DefaultMaxCodePointWidth,
		MessageCapacity:   DefaultMessageCapacity,
	}
}

func (c Config) validate() error {
	if c.MaxCodePointWidth < 0 {
		return fmt.Errorf("MaxCodePointWidth must be >= 0, got %d", c.MaxCodePointWidth)
	}

	if c.MessageCapacity < 0 {
		return fmt.Errorf("MessageCapacity must be >= 0, got %d", c.MessageCapacity)
	}

	if c.RendezvousTimeout < 0 {
		return fmt.Errorf("RendezvousTimeout must be >= 0, got %v", c.RendezvousTimeout)
	}

	return nil
}

// bufferBytes returns the effective message buffer size in bytes, or zero
// when formatted messages are disabled.
func (c Config) bufferBytes() int {
	if c.MaxCodePointWidth == 0 || c.MessageCapacity == 0 {
		return 0
	}

	return c.MaxCodePointWidth*c.MessageCapacity + 1
}
