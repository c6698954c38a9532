package observe

import (
	"context"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records scan and analysis metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines and return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordScan records one scan with its duration and outcome.
	RecordScan(ctx context.Context, meta ScanMeta, duration time.Duration, out Outcome)

	// RecordAnalysis records one analysis pass producing the given number of groups.
	RecordAnalysis(ctx context.Context, groups int, duration time.Duration)
}

type metricsImpl struct {
	scanCount     metric.Int64Counter
	resultCount   metric.Int64Counter
	scanDuration  metric.Float64Histogram
	analysisCount metric.Int64Counter
	groupHist     metric.Int64Histogram
}

// NewMetrics creates a Metrics instance with instruments registered on meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	scanCount, err := meter.Int64Counter(
		"diagnostics.scan.total",
		metric.WithDescription("Total number of snapshot scans"),
		metric.WithUnit("{scan}"),
	)
	if err != nil {
		return nil, err
	}

	resultCount, err := meter.Int64Counter(
		"diagnostics.probe.results",
		metric.WithDescription("Probe results produced by scans, by status"),
		metric.WithUnit("{result}"),
	)
	if err != nil {
		return nil, err
	}

	scanDuration, err := meter.Float64Histogram(
		"diagnostics.scan.duration_ms",
		metric.WithDescription("Scan duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	analysisCount, err := meter.Int64Counter(
		"diagnostics.analysis.total",
		metric.WithDescription("Total number of analysis passes"),
		metric.WithUnit("{analysis}"),
	)
	if err != nil {
		return nil, err
	}

	groupHist, err := meter.Int64Histogram(
		"diagnostics.analysis.groups",
		metric.WithDescription("Groups produced per analysis pass"),
		metric.WithUnit("{group}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		scanCount:     scanCount,
		resultCount:   resultCount,
		scanDuration:  scanDuration,
		analysisCount: analysisCount,
		groupHist:     groupHist,
	}, nil
}

// RecordScan records metrics for one scan.
func (m *metricsImpl) RecordScan(ctx context.Context, meta ScanMeta, duration time.Duration, out Outcome) {
	attrs := []attribute.KeyValue{
		attribute.String("scanner.id", meta.ScannerID),
	}
	if meta.Kind != "" {
		attrs = append(attrs, attribute.String("snapshot.kind", string(meta.Kind)))
	}
	opt := metric.WithAttributes(attrs...)

	m.scanCount.Add(ctx, 1, opt)
	m.scanDuration.Record(ctx, float64(duration.Milliseconds()), opt)

	for status, n := range out.Statuses {
		if n == 0 {
			continue
		}
		withStatus := append(slices.Clip(attrs), attribute.String("status", status))
		m.resultCount.Add(ctx, int64(n), metric.WithAttributes(withStatus...))
	}
}

// RecordAnalysis records metrics for one analysis pass.
func (m *metricsImpl) RecordAnalysis(ctx context.Context, groups int, _ time.Duration) {
	m.analysisCount.Add(ctx, 1)
	m.groupHist.Record(ctx, int64(groups))
}

// NopMetrics returns a Metrics that records nothing.
func NopMetrics() Metrics { return noopMetrics{} }

type noopMetrics struct{}

func (noopMetrics) RecordScan(context.Context, ScanMeta, time.Duration, Outcome) {}
func (noopMetrics) RecordAnalysis(context.Context, int, time.Duration)           {}
