package observe

import (
	"context"
	"fmt"
	"time"
)

// ScanFunc is the signature of an instrumented scan.
type ScanFunc func(ctx context.Context, meta ScanMeta) Outcome

// Middleware wraps scans with observability (tracing, metrics, logging).
//
// Contract:
//   - Concurrency: Wrap() returns a thread-safe ScanFunc.
//   - Context: Propagates context through tracing spans.
//   - Ownership: the wrapped function's outcome is returned unchanged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a new Middleware with the given observability components.
// Nil components are replaced with no-ops.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	if tracer == nil {
		tracer = newNoopTracer()
	}
	if metrics == nil {
		metrics = NopMetrics()
	}
	if logger == nil {
		logger = NopLogger()
	}
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// NewNopMiddleware returns a Middleware that records nothing.
func NewNopMiddleware() *Middleware {
	return NewMiddleware(nil, nil, nil)
}

// Wrap wraps a ScanFunc with tracing, metrics, and logging.
func (m *Middleware) Wrap(fn ScanFunc) ScanFunc {
	return func(ctx context.Context, meta ScanMeta) Outcome {
		ctx, span := m.tracer.StartSpan(ctx, meta)
		start := time.Now()

		out := fn(ctx, meta)

		duration := time.Since(start)
		m.tracer.EndSpan(span, out)
		m.metrics.RecordScan(ctx, meta, duration, out)

		fields := []Field{
			{Key: "duration_ms", Value: float64(duration.Milliseconds())},
			{Key: "results", Value: out.Results},
		}
		for status, n := range out.Statuses {
			fields = append(fields, Field{Key: "results." + status, Value: n})
		}
		m.logger.WithScanner(meta).Debug(ctx, "scan completed", fields...)

		return out
	}
}

// Instrumentation is the scan middleware and the analysis metrics built from
// one Observer. Both record on the same instruments.
type Instrumentation struct {
	Middleware *Middleware
	Metrics    Metrics
	Logger     Logger
}

// Instrument builds Instrumentation from obs.
func Instrument(obs Observer) (Instrumentation, error) {
	if obs == nil {
		return Instrumentation{}, ErrNilObserver
	}

	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return Instrumentation{}, fmt.Errorf("observe: instruments: %w", err)
	}

	logger := obs.Logger()
	return Instrumentation{
		Middleware: NewMiddleware(NewTracer(obs.Tracer()), metrics, logger),
		Metrics:    metrics,
		Logger:     logger,
	}, nil
}
