// Package telemetry defines the kernel's ambient observability surface:
// structured logging, counters/timers/gauges, and OTEL-compatible tracing.
// Every coordinator and hooks registry carries a Logger/Metrics pair, and
// every session a Logger, rather than reaching for a package-level global
// (no kernel component holds a Tracer), so tests
// can swap in the Noop implementation and production wiring can swap in the
// Clue-backed one without either side depending on the other.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Logger captures structured logging used throughout the kernel.
// Implementations typically delegate to Clue but the interface stays small
// so tests can provide lightweight stubs.
type Logger interface {
	Debug(ctx context.Context, msg string, keyvals ...any)
	Info(ctx context.Context, msg string, keyvals ...any)
	Warn(ctx context.Context, msg string, keyvals ...any)
	Error(ctx context.Context, msg string, keyvals ...any)
}

// Metrics exposes counter, timer, and gauge helpers for kernel
// instrumentation (hook dispatch latency, injection counts, tool durations).
type Metrics interface {
	IncCounter(name string, value float64, tags ...string)
	RecordTimer(name string, duration time.Duration, tags ...string)
	RecordGauge(name string, value float64, tags ...string)
}

// Tracer abstracts span creation so kernel code can remain agnostic of the
// underlying OpenTelemetry provider.
type Tracer interface {
	Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, Span)
	Span(ctx context.Context) Span
}

// Span represents an in-flight tracing span.
//
// Example usage:
//
//	ctx, span := tracer.Start(ctx, "hooks.emit", trace.WithSpanKind(trace.SpanKindInternal))
//	defer span.End()
//	span.SetStatus(codes.Ok, "dispatched")
type Span interface {
	End(opts ...trace.SpanEndOption)
	AddEvent(name string, attrs ...any)
	SetStatus(code codes.Code, description string)
	RecordError(err error, opts ...trace.EventOption)
}

// ToolTelemetry captures observability metadata collected during a tool
// invocation. Common fields give type safety for the metrics every tool
// call produces; Extra holds tool-specific data (cache keys, provider
// response headers, and the like).
type ToolTelemetry struct {
	// DurationMs is the wall-clock execution time in milliseconds.
	DurationMs int64
	// TokensUsed tracks tokens consumed by an LLM-backed tool.
	TokensUsed int
	// Model identifies the model used, if any.
	Model string
	// Extra holds tool-specific metadata not captured by the common fields.
	Extra map[string]any
}
