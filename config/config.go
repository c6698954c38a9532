package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/brokerdiag/observe"
)

// DiagnosticsConfig holds the thresholds probes evaluate against.
type DiagnosticsConfig struct {
	// Probes is nil when the configuration has no probes section. Probes
	// that need thresholds report NA in that case.
	Probes *ProbesConfig `yaml:"probes"`

	// Telemetry is nil when the configuration has no telemetry section, in
	// which case no observer is started.
	Telemetry *observe.Config `yaml:"telemetry"`
}

// ProbesConfig holds per-probe thresholds and coefficients.
//
// Coefficients scale a capacity into a warning boundary; a coefficient of 1
// or more means a probe never warns before the capacity is exhausted.
type ProbesConfig struct {
	// HighConnectionClosureRateThreshold is the closures/sec rate at which
	// connection churn is reported as a warning.
	HighConnectionClosureRateThreshold uint64 `yaml:"highConnectionClosureRateThreshold"`

	// HighConnectionCreationRateThreshold is the creations/sec rate at which
	// connection churn is reported as a warning.
	HighConnectionCreationRateThreshold uint64 `yaml:"highConnectionCreationRateThreshold"`

	// QueueHighFlowThreshold is the incoming message total at which a queue is unhealthy.
	QueueHighFlowThreshold uint64 `yaml:"queueHighFlowThreshold"`

	// QueueLowFlowThreshold is the incoming message total at or below which a queue warns.
	QueueLowFlowThreshold uint64 `yaml:"queueLowFlowThreshold"`

	// QueueFlowThresholdCoefficient scales both flow thresholds into their
	// secondary boundary.
	QueueFlowThresholdCoefficient float64 `yaml:"queueFlowThresholdCoefficient"`

	MessageRedeliveryThresholdCoefficient   float64 `yaml:"messageRedeliveryThresholdCoefficient"`
	SocketUsageThresholdCoefficient         float64 `yaml:"socketUsageThresholdCoefficient"`
	RuntimeProcessUsageThresholdCoefficient float64 `yaml:"runtimeProcessUsageThresholdCoefficient"`
	FileDescriptorUsageThresholdCoefficient float64 `yaml:"fileDescriptorUsageThresholdCoefficient"`

	// ConsumerUtilizationThreshold is the utilization fraction, in [0, 1],
	// below which a queue is unhealthy.
	ConsumerUtilizationThreshold float64 `yaml:"consumerUtilizationThreshold"`
}

// Default returns the stock thresholds.
func Default() *DiagnosticsConfig {
	return &DiagnosticsConfig{
		Probes: &ProbesConfig{
			HighConnectionClosureRateThreshold:      100,
			HighConnectionCreationRateThreshold:     100,
			QueueHighFlowThreshold:                  100,
			QueueLowFlowThreshold:                   20,
			QueueFlowThresholdCoefficient:           0.60,
			MessageRedeliveryThresholdCoefficient:   0.50,
			SocketUsageThresholdCoefficient:         0.60,
			RuntimeProcessUsageThresholdCoefficient: 0.65,
			FileDescriptorUsageThresholdCoefficient: 0.65,
			ConsumerUtilizationThreshold:            0.65,
		},
	}
}

// Validate validates the configuration. Missing sections are valid.
func (c *DiagnosticsConfig) Validate() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Telemetry != nil {
		if err := c.Telemetry.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidTelemetry, err))
		}
	}
	if c.Probes != nil {
		errs = append(errs, c.Probes.validate()...)
	}
	return errors.Join(errs...)
}

func (p *ProbesConfig) validate() []error {
	coefficients := []struct {
		name  string
		value float64
	}{
		{"queueFlowThresholdCoefficient", p.QueueFlowThresholdCoefficient},
		{"messageRedeliveryThresholdCoefficient", p.MessageRedeliveryThresholdCoefficient},
		{"socketUsageThresholdCoefficient", p.SocketUsageThresholdCoefficient},
		{"runtimeProcessUsageThresholdCoefficient", p.RuntimeProcessUsageThresholdCoefficient},
		{"fileDescriptorUsageThresholdCoefficient", p.FileDescriptorUsageThresholdCoefficient},
	}

	var errs []error
	for _, coef := range coefficients {
		if coef.value < 0 {
			errs = append(errs, fmt.Errorf("%w: %s = %v", ErrInvalidCoefficient, coef.name, coef.value))
		}
	}
	if p.ConsumerUtilizationThreshold < 0 || p.ConsumerUtilizationThreshold > 1 {
		errs = append(errs, fmt.Errorf("%w: got %v", ErrInvalidUtilization, p.ConsumerUtilizationThreshold))
	}
	return errs
}

// Parse decodes and validates a YAML configuration after strict environment
// expansion. Unknown keys are rejected.
func Parse(data []byte) (*DiagnosticsConfig, error) {
	expanded, err := ExpandEnvStrict(string(data))
	if err != nil {
		return nil, err
	}

	var cfg DiagnosticsConfig
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads and parses the configuration file at path.
func Load(path string) (*DiagnosticsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}
