package observe

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jonwraymond/brokerdiag/observe/exporters"
)

// Config selects the telemetry an Observer produces. It is decoded from the
// telemetry section of the diagnostics configuration file.
type Config struct {
	ServiceName string        `yaml:"serviceName"`
	Version     string        `yaml:"version"`
	Tracing     TracingConfig `yaml:"tracing"`
	Metrics     MetricsConfig `yaml:"metrics"`
	Logging     LoggingConfig `yaml:"logging"`
}

// TracingConfig configures scan spans.
type TracingConfig struct {
	Enabled bool `yaml:"enabled"`

	// Exporter is one of exporters.TracingExporterNames.
	Exporter string `yaml:"exporter"`

	// SamplePct is the sampled fraction of scans, in [0, 1].
	SamplePct float64 `yaml:"samplePct"`
}

// MetricsConfig configures scan and analysis instruments.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`

	// Exporter is one of exporters.MetricsExporterNames.
	Exporter string `yaml:"exporter"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
}

// DefaultConfig returns a configuration with every signal disabled.
func DefaultConfig() Config {
	return Config{
		ServiceName: "brokerdiag",
		Tracing:     TracingConfig{Exporter: "none", SamplePct: 1},
		Metrics:     MetricsConfig{Exporter: "none"},
		Logging:     LoggingConfig{Level: LevelInfo.String()},
	}
}

// Validate reports every problem with the enabled sections. Disabled
// sections are not checked.
func (c *Config) Validate() error {
	var errs []error
	if c.ServiceName == "" {
		errs = append(errs, ErrMissingServiceName)
	}

	if t := c.Tracing; t.Enabled {
		if !slices.Contains(exporters.TracingExporterNames(), t.Exporter) {
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidTracingExporter, t.Exporter))
		}
		if t.SamplePct < 0 || t.SamplePct > 1 {
			errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidSamplePct, t.SamplePct))
		}
	}

	if m := c.Metrics; m.Enabled && !slices.Contains(exporters.MetricsExporterNames(), m.Exporter) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidMetricsExporter, m.Exporter))
	}

	if l := c.Logging; l.Enabled && l.Level != "" {
		if _, ok := lookupLevel(l.Level); !ok {
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLogLevel, l.Level))
		}
	}

	return errors.Join(errs...)
}
