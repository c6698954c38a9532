package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/jonwraymond/brokerdiag/snapshot"
)

// ScanMeta describes one scan for telemetry purposes.
type ScanMeta struct {
	ScannerID string        // Identifier of the scanner that ran (required)
	Kind      snapshot.Kind // Snapshot kind that was scanned (may be empty)
}

// SpanName returns the deterministic span name for this scan.
// Format: diagnostics.scan.<scanner>
func (m ScanMeta) SpanName() string {
	return "diagnostics.scan." + m.ScannerID
}

// Outcome summarizes what a scan produced.
type Outcome struct {
	// Results is the number of probe results.
	Results int

	// Statuses counts results per status name.
	Statuses map[string]int
}

// Tracer wraps OpenTelemetry tracing with scan-specific span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for a scan.
	StartSpan(ctx context.Context, meta ScanMeta) (context.Context, trace.Span)

	// EndSpan ends the span, recording the outcome.
	EndSpan(span trace.Span, out Outcome)
}

type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer wrapping the given OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts a new span with scan metadata as attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, meta ScanMeta) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("scanner.id", meta.ScannerID),
	}
	if meta.Kind != "" {
		attrs = append(attrs, attribute.String("snapshot.kind", string(meta.Kind)))
	}

	return t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpan ends the span with result counts attached. Unhealthy verdicts are
// findings, not failures, so the span status is always Ok.
func (t *tracerImpl) EndSpan(span trace.Span, out Outcome) {
	attrs := []attribute.KeyValue{attribute.Int("diagnostics.results", out.Results)}
	for status, n := range out.Statuses {
		attrs = append(attrs, attribute.Int("diagnostics.results."+status, n))
	}
	span.SetAttributes(attrs...)
	span.SetStatus(codes.Ok, "")
	span.End()
}

type noopTracer struct {
	noop trace.Tracer
}

func newNoopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta ScanMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, _ Outcome) {
	span.End()
}
