package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"goa.design/clue/log"
)

const instrumentationName = "github.com/amplifierhq/kernel"

type (
	// ClueLogger wraps goa.design/clue/log for kernel logging.
	ClueLogger struct{}

	// ClueMetrics wraps OTEL metrics for kernel instrumentation.
	ClueMetrics struct {
		meter metric.Meter
	}

	// ClueTracer wraps OTEL tracing for kernel tracing.
	ClueTracer struct {
		tracer trace.Tracer
	}

	// clueSpan wraps an OTEL trace span.
	clueSpan struct {
		span trace.Span
	}
)

// NewClueLogger constructs a Logger backed by goa.design/clue/log.
func NewClueLogger() Logger { return ClueLogger{} }

// NewClueMetrics constructs a Metrics recorder backed by the global OTEL
// meter provider.
func NewClueMetrics() Metrics {
	return &ClueMetrics{meter: otel.Meter(instrumentationName)}
}

// NewClueTracer constructs a Tracer backed by the global OTEL tracer
// provider.
func NewClueTracer() Tracer {
	return &ClueTracer{tracer: otel.Tracer(instrumentationName)}
}

// Debug logs a debug-level message via Clue.
func (ClueLogger) Debug(ctx context.Context, msg string, keyvals ...any) {
	fielders := append([]log.Fielder{log.KV{K: "msg", V: msg}}, kvSliceToClue(keyvals)...)
	log.Debug(ctx, fielders...)
}

// Info logs an info-level message via Clue.
func (ClueLogger) Info(ctx context.Context, msg string, keyvals ...any) {
	fielders := append([]log.Fielder{log.KV{K: "msg", V: msg}}, kvSliceToClue(keyvals)...)
	log.Info(ctx, fielders...)
}

// Warn logs a warning-level message via Clue.
func (ClueLogger) Warn(ctx context.Context, msg string, keyvals ...any) {
	fielders := []log.Fielder{log.KV{K: "msg", V: msg}, log.KV{K: "severity", V: "warning"}}
	fielders = append(fielders, kvSliceToClue(keyvals)...)
	log.Warn(ctx, fielders...)
}

// Error logs an error-level message via Clue.
func (ClueLogger) Error(ctx context.Context, msg string, keyvals ...any) {
	fielders := append([]log.Fielder{log.KV{K: "msg", V: msg}}, kvSliceToClue(keyvals)...)
	log.Error(ctx, nil, fielders...)
}

// IncCounter records a monotonic counter increment.
func (m *ClueMetrics) IncCounter(name string, value float64, tags ...string) {
	counter, err := m.meter.Float64Counter(name)
	if err != nil {
		return
	}
	counter.Add(context.Background(), value, metric.WithAttributes(tagsToAttrs(tags)...))
}

// RecordTimer records a duration observation.
func (m *ClueMetrics) RecordTimer(name string, duration time.Duration, tags ...string) {
	histogram, err := m.meter.Float64Histogram(name)
	if err != nil {
		return
	}
	histogram.Record(context.Background(), duration.Seconds(), metric.WithAttributes(tagsToAttrs(tags)...))
}

// RecordGauge records a point-in-time value. OTEL has no synchronous gauge
// instrument, so gauges are recorded as a histogram with a "_gauge" suffix.
func (m *ClueMetrics) RecordGauge(name string, value float64, tags ...string) {
	histogram, err := m.meter.Float64Histogram(name + "_gauge")
	if err != nil {
		return
	}
	histogram.Record(context.Background(), value, metric.WithAttributes(tagsToAttrs(tags)...))
}

// Start begins a new span as a child of any span found in ctx.
func (t *ClueTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, Span) {
	newCtx, span := t.tracer.Start(ctx, name, opts...)
	return newCtx, &clueSpan{span: span}
}

// Span returns the span currently carried by ctx, if any.
func (t *ClueTracer) Span(ctx context.Context) Span {
	return &clueSpan{span: trace.SpanFromContext(ctx)}
}

// End completes the span.
func (s *clueSpan) End(opts ...trace.SpanEndOption) { s.span.End(opts...) }

// AddEvent attaches a named event to the span.
func (s *clueSpan) AddEvent(name string, attrs ...any) {
	s.span.AddEvent(name, trace.WithAttributes(kvSliceToAttrs(attrs)...))
}

// SetStatus sets the span's status code and description.
func (s *clueSpan) SetStatus(code codes.Code, description string) {
	s.span.SetStatus(code, description)
}

// RecordError attaches err to the span as an exception event.
func (s *clueSpan) RecordError(err error, opts ...trace.EventOption) {
	s.span.RecordError(err, opts...)
}

// kvSliceToClue converts an alternating key/value slice into Clue fielders.
// A trailing unpaired key is dropped.
func kvSliceToClue(keyvals []any) []log.Fielder {
	fielders := make([]log.Fielder, 0, len(keyvals)/2)
	for i := 0; i+1 < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			continue
		}
		fielders = append(fielders, log.KV{K: key, V: keyvals[i+1]})
	}
	return fielders
}

// tagsToAttrs converts a "key", "value", "key", "value", ... tag slice into
// OTEL attributes.
func tagsToAttrs(tags []string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(tags)/2)
	for i := 0; i+1 < len(tags); i += 2 {
		attrs = append(attrs, attribute.String(tags[i], tags[i+1]))
	}
	return attrs
}

// kvSliceToAttrs converts an alternating key/value slice into OTEL
// attributes for span events.
func kvSliceToAttrs(keyvals []any) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(keyvals)/2)
	for i := 0; i+1 < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			continue
		}
		attrs = append(attrs, attribute.String(key, stringify(keyvals[i+1])))
	}
	return attrs
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
