package probe

import (
	"fmt"
	"strings"
)

// Status is the verdict of a probe evaluation. The set is closed.
type Status int

const (
	// StatusHealthy indicates the component is operating normally.
	StatusHealthy Status = iota
	// StatusUnhealthy indicates the component needs attention now.
	StatusUnhealthy
	// StatusWarning indicates the component is approaching a limit.
	StatusWarning
	// StatusInconclusive indicates there was no data to evaluate.
	StatusInconclusive
	// StatusNA indicates the probe could not run for lack of configuration.
	StatusNA
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusUnhealthy:
		return "unhealthy"
	case StatusWarning:
		return "warning"
	case StatusInconclusive:
		return "inconclusive"
	case StatusNA:
		return "na"
	default:
		return "unknown"
	}
}

// ParseStatus parses a status name, ignoring case.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "healthy":
		return StatusHealthy, nil
	case "unhealthy":
		return StatusUnhealthy, nil
	case "warning":
		return StatusWarning, nil
	case "inconclusive":
		return StatusInconclusive, nil
	case "na", "n/a", "not_applicable":
		return StatusNA, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	v, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ComponentType names the broker component a result describes.
type ComponentType string

const (
	ComponentConnectivity    ComponentType = "connectivity"
	ComponentConnection      ComponentType = "connection"
	ComponentChannel         ComponentType = "channel"
	ComponentQueue           ComponentType = "queue"
	ComponentExchange        ComponentType = "exchange"
	ComponentCluster         ComponentType = "cluster"
	ComponentNode            ComponentType = "node"
	ComponentDisk            ComponentType = "disk"
	ComponentMemory          ComponentType = "memory"
	ComponentOperatingSystem ComponentType = "operating_system"
	ComponentRuntime         ComponentType = "broker_runtime"
)
