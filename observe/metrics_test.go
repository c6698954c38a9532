package observe

import (
	"context"
	"reflect"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/jonwraymond/brokerdiag/snapshot"
)

func manualMetrics(t *testing.T) (Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func mustFind(t *testing.T, rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	t.Helper()
	m := findMetric(rm, name)
	if m == nil {
		t.Fatalf("metric %s not recorded", name)
	}
	return m
}

func int64Sum(t *testing.T, m *metricdata.Metrics) metricdata.Sum[int64] {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("%s: expected Sum[int64], got %T", m.Name, m.Data)
	}
	return sum
}

func sumByStatus(t *testing.T, m *metricdata.Metrics) map[string]int64 {
	t.Helper()
	out := map[string]int64{}
	for _, dp := range int64Sum(t, m).DataPoints {
		status, _ := dp.Attributes.Value(attribute.Key("status"))
		out[status.AsString()] += dp.Value
	}
	return out
}

func TestMetrics_RecordScan(t *testing.T) {
	m, reader := manualMetrics(t)
	meta := ScanMeta{ScannerID: "BrokerQueuesScanner", Kind: snapshot.KindBrokerQueues}

	m.RecordScan(context.Background(), meta, 25*time.Millisecond, Outcome{
		Results:  4,
		Statuses: map[string]int{"healthy": 3, "warning": 1, "unhealthy": 0},
	})
	m.RecordScan(context.Background(), meta, 5*time.Millisecond, Outcome{
		Results:  1,
		Statuses: map[string]int{"unhealthy": 1},
	})

	rm := collect(t, reader)

	sum := int64Sum(t, mustFind(t, rm, "diagnostics.scan.total"))
	if len(sum.DataPoints) != 1 {
		t.Fatalf("scan.total data points = %d, want 1", len(sum.DataPoints))
	}
	if got := sum.DataPoints[0].Value; got != 2 {
		t.Errorf("scan.total = %d, want 2", got)
	}
	if id, _ := sum.DataPoints[0].Attributes.Value("scanner.id"); id.AsString() != "BrokerQueuesScanner" {
		t.Errorf("scanner.id = %q, want BrokerQueuesScanner", id.AsString())
	}

	wantStatuses := map[string]int64{"healthy": 3, "warning": 1, "unhealthy": 1}
	if got := sumByStatus(t, mustFind(t, rm, "diagnostics.probe.results")); !reflect.DeepEqual(got, wantStatuses) {
		t.Errorf("results by status = %v, want %v", got, wantStatuses)
	}

	duration := mustFind(t, rm, "diagnostics.scan.duration_ms")
	hist, ok := duration.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("duration: expected Histogram[float64], got %T", duration.Data)
	}
	if len(hist.DataPoints) != 1 {
		t.Fatalf("duration data points = %d, want 1", len(hist.DataPoints))
	}
	if got := hist.DataPoints[0].Count; got != 2 {
		t.Errorf("duration count = %d, want 2", got)
	}
	if got := hist.DataPoints[0].Sum; got != 30 {
		t.Errorf("duration sum = %v, want 30", got)
	}
}

func TestMetrics_RecordAnalysis(t *testing.T) {
	m, reader := manualMetrics(t)

	m.RecordAnalysis(context.Background(), 3, time.Millisecond)
	m.RecordAnalysis(context.Background(), 5, time.Millisecond)

	rm := collect(t, reader)

	sum := int64Sum(t, mustFind(t, rm, "diagnostics.analysis.total"))
	if got := sum.DataPoints[0].Value; got != 2 {
		t.Errorf("analysis.total = %d, want 2", got)
	}

	groups := mustFind(t, rm, "diagnostics.analysis.groups")
	hist, ok := groups.Data.(metricdata.Histogram[int64])
	if !ok {
		t.Fatalf("groups: expected Histogram[int64], got %T", groups.Data)
	}
	if got := hist.DataPoints[0].Sum; got != 8 {
		t.Errorf("groups sum = %d, want 8", got)
	}
}

func TestNopMetrics(t *testing.T) {
	m := NopMetrics()
	m.RecordScan(context.Background(), ScanMeta{}, time.Second, Outcome{})
	m.RecordAnalysis(context.Background(), 1, time.Second)
}
