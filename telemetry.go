package invariants

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/LerianStudio/lib-invariants/failure"
)

const meterName = "github.com/LerianStudio/lib-invariants"

// MetricAssertionFailed is the name of the counter recording assertion
// failures.
const MetricAssertionFailed = "invariants.assertion.failed"

// failureMetrics records assertion failures on an OpenTelemetry counter.
// Everything here is best-effort: the process is about to die, and telemetry
// must never interfere with that.
type failureMetrics struct {
	counter metric.Int64Counter
}

func newFailureMetrics(provider metric.MeterProvider) *failureMetrics {
	if provider == nil {
		return nil
	}

	counter, err := provider.Meter(meterName).Int64Counter(
		MetricAssertionFailed,
		metric.WithUnit("1"),
		metric.WithDescription("Total number of failed assertions"),
	)
	if err != nil {
		return nil
	}

	return &failureMetrics{counter: counter}
}

func (m *failureMetrics) record(ctx failure.Context) {
	if m == nil || m.counter == nil {
		return
	}

	m.counter.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("function", ctx.Function),
		attribute.String("file", ctx.File),
	))
}

// reportFailure emits the structured record of a failure before the
// diagnostic is written. Failures to report are ignored.
func (h *Handler) reportFailure(ctx failure.Context) {
	h.metrics.record(ctx)

	if h.report == nil {
		return
	}

	fields := []zap.Field{
		zap.String("file", ctx.File),
		zap.Int("line", ctx.Line),
		zap.String("function", ctx.Function),
		zap.String("expression", ctx.Expression),
	}

	if ctx.HasMessage {
		fields = append(fields, zap.String("message", ctx.Message))
	}

	h.report.Error("assertion failed", fields...)
}
