package config

import "errors"

var (
	// ErrInvalidCoefficient indicates a coefficient is negative.
	ErrInvalidCoefficient = errors.New("config: coefficient must not be negative")

	// ErrInvalidUtilization indicates the consumer utilization threshold is outside [0, 1].
	ErrInvalidUtilization = errors.New("config: consumer utilization threshold must be between 0.0 and 1.0")

	// ErrInvalidTelemetry wraps the telemetry section's validation errors.
	ErrInvalidTelemetry = errors.New("config: invalid telemetry section")

	// ErrMissingEnv indicates a ${VAR} reference names an unset environment variable.
	ErrMissingEnv = errors.New("config: missing environment variables")
)
