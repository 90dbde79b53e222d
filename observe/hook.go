package observe

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/pipekit/pipe"
)

// Hook implements pipe.Hook, emitting one span per operation plus
// counters for operations run, failures, and results that dropped the
// data key, and a duration histogram.
type Hook struct {
	tracer      trace.Tracer
	ops         metric.Int64Counter
	failures    metric.Int64Counter
	missingData metric.Int64Counter
	duration    metric.Float64Histogram
}

// NewHook creates a Hook using the global tracer and meter providers.
func NewHook(name string) (*Hook, error) {
	meter := Meter(name)

	ops, err := meter.Int64Counter("pipekit.ops.total",
		metric.WithDescription("Operations executed"))
	if err != nil {
		return nil, fmt.Errorf("creating ops counter: %w", err)
	}
	failures, err := meter.Int64Counter("pipekit.ops.failures",
		metric.WithDescription("Operations that returned an error"))
	if err != nil {
		return nil, fmt.Errorf("creating failure counter: %w", err)
	}
	missing, err := meter.Int64Counter("pipekit.ops.missing_data",
		metric.WithDescription("Operation results missing the data key"))
	if err != nil {
		return nil, fmt.Errorf("creating missing-data counter: %w", err)
	}
	duration, err := meter.Float64Histogram("pipekit.ops.duration",
		metric.WithDescription("Operation duration"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	return &Hook{
		tracer:      Tracer(name),
		ops:         ops,
		failures:    failures,
		missingData: missing,
		duration:    duration,
	}, nil
}

type startTimeKey struct{}

// BeforeOp starts a span for the operation and stamps the start time into
// the returned context.
func (h *Hook) BeforeOp(ctx context.Context, slot int, id string, c pipe.Context) context.Context {
	ctx, _ = h.tracer.Start(ctx, "pipe.op", trace.WithAttributes(
		attribute.Int("pipe.slot", slot),
		attribute.String("pipe.op_id", id),
		attribute.String("pipe.mode", c.Mode()),
	))
	return context.WithValue(ctx, startTimeKey{}, time.Now())
}

// AfterOp records metrics and ends the operation's span.
func (h *Hook) AfterOp(ctx context.Context, slot int, id string, c pipe.Context, err error) {
	attrs := metric.WithAttributes(attribute.Int("pipe.slot", slot))

	h.ops.Add(ctx, 1, attrs)
	if start, ok := ctx.Value(startTimeKey{}).(time.Time); ok {
		h.duration.Record(ctx, float64(time.Since(start).Microseconds())/1000.0, attrs)
	}

	span := trace.SpanFromContext(ctx)
	if err != nil {
		h.failures.Add(ctx, 1, attrs)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else if c != nil {
		if _, ok := c.Get(pipe.KeyData); !ok {
			h.missingData.Add(ctx, 1, attrs)
		}
	}
	span.End()
}
