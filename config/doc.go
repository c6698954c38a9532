// Package config provides the threshold configuration consumed by probes.
//
// A DiagnosticsConfig is read-only once handed to the registry. Probes that
// need thresholds report NA when the config, or its probes section, is absent;
// they never fall back to a guessed default. Use Default for the stock values.
//
// Configuration files are YAML. ${VAR} references are expanded strictly before
// decoding, so a missing variable is an error rather than an empty string:
//
//	probes:
//	  highConnectionCreationRateThreshold: 100
//	  fileDescriptorUsageThresholdCoefficient: ${FD_COEFFICIENT}
//
//	cfg, err := config.Load("diagnostics.yaml")
package config
