package observe

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"testing"

	"go.opentelemetry.io/otel/trace"

	"github.com/jonwraymond/brokerdiag/snapshot"
)

func TestMiddleware_Wrap(t *testing.T) {
	tracer, rec := recordingTracer()
	metrics, reader := manualMetrics(t)
	var logs bytes.Buffer

	mw := NewMiddleware(tracer, metrics, NewLoggerWithWriter("debug", &logs))
	want := Outcome{Results: 2, Statuses: map[string]int{"healthy": 1, "warning": 1}}
	meta := ScanMeta{ScannerID: "BrokerConnectivityScanner", Kind: snapshot.KindBrokerConnectivity}

	var sawSpan bool
	var gotMeta ScanMeta
	got := mw.Wrap(func(ctx context.Context, m ScanMeta) Outcome {
		sawSpan = trace.SpanFromContext(ctx).SpanContext().IsValid()
		gotMeta = m
		return want
	})(context.Background(), meta)

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Wrap() = %+v, want %+v", got, want)
	}
	if gotMeta != meta {
		t.Errorf("meta = %+v, want %+v", gotMeta, meta)
	}
	if !sawSpan {
		t.Error("wrapped function ran outside the scan span")
	}

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	if name := spans[0].Name(); name != "diagnostics.scan.BrokerConnectivityScanner" {
		t.Errorf("span name = %q", name)
	}

	mustFind(t, collect(t, reader), "diagnostics.scan.total")

	entry := decodeLine(t, logs.String())
	wantLog := map[string]any{
		"msg":             "scan completed",
		"scanner.id":      "BrokerConnectivityScanner",
		"results":         float64(2),
		"results.warning": float64(1),
	}
	for k, v := range wantLog {
		if entry[k] != v {
			t.Errorf("log %s = %v, want %v", k, entry[k], v)
		}
	}
}

func TestMiddleware_NilComponents(t *testing.T) {
	mw := NewMiddleware(nil, nil, nil)
	out := mw.Wrap(func(context.Context, ScanMeta) Outcome {
		return Outcome{Results: 1}
	})(context.Background(), ScanMeta{ScannerID: "x"})
	if out.Results != 1 {
		t.Errorf("Results = %d, want 1", out.Results)
	}
}

func TestNewNopMiddleware(t *testing.T) {
	calls := 0
	fn := NewNopMiddleware().Wrap(func(context.Context, ScanMeta) Outcome {
		calls++
		return Outcome{}
	})
	fn(context.Background(), ScanMeta{})
	fn(context.Background(), ScanMeta{})
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestInstrument(t *testing.T) {
	if _, err := Instrument(nil); !errors.Is(err, ErrNilObserver) {
		t.Errorf("Instrument(nil) error = %v, want %v", err, ErrNilObserver)
	}

	obs, err := NewObserver(context.Background(), Config{ServiceName: "brokerdiag-test"})
	if err != nil {
		t.Fatalf("NewObserver() error = %v", err)
	}
	t.Cleanup(func() { _ = obs.Shutdown(context.Background()) })

	inst, err := Instrument(obs)
	if err != nil {
		t.Fatalf("Instrument() error = %v", err)
	}
	if inst.Middleware == nil || inst.Metrics == nil || inst.Logger == nil {
		t.Errorf("Instrument() = %+v, want every component set", inst)
	}
}
