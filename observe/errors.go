package observe

import "errors"

// Errors returned by Config.Validate. They are joined when several apply.
var (
	ErrMissingServiceName     = errors.New("observe: missing service name")
	ErrInvalidSamplePct       = errors.New("observe: tracing sample fraction outside [0, 1]")
	ErrInvalidTracingExporter = errors.New("observe: unknown tracing exporter")
	ErrInvalidMetricsExporter = errors.New("observe: unknown metrics exporter")
	ErrInvalidLogLevel        = errors.New("observe: unknown log level")
)

// ErrNilObserver is returned by Instrument for a nil Observer.
var ErrNilObserver = errors.New("observe: nil observer")
