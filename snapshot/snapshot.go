package snapshot

// Kind identifies the type of a snapshot. It is the key probes and scanners
// are bound to.
type Kind string

const (
	KindBrokerConnectivity Kind = "broker_connectivity"
	KindConnection         Kind = "connection"
	KindChannel            Kind = "channel"
	KindBrokerQueues       Kind = "broker_queues"
	KindQueue              Kind = "queue"
	KindCluster            Kind = "cluster"
	KindNode               Kind = "node"
	KindDisk               Kind = "disk"
	KindMemory             Kind = "memory"
	KindOperatingSystem    Kind = "operating_system"
	KindBrokerRuntime      Kind = "broker_runtime"
)

// String returns the string form of the kind.
func (k Kind) String() string {
	return string(k)
}

// Snapshot is a point-in-time capture of one facet of broker state.
//
// Contract:
//   - Immutability: consumers must not mutate a snapshot they are handed.
//   - Nil safety: Kind must be callable on a typed nil so the kind of an
//     absent snapshot can still be resolved.
type Snapshot interface {
	Kind() Kind
}

// ChurnMetrics is a cumulative counter with its current per-second rate.
type ChurnMetrics struct {
	Total uint64
	Rate  float64
}

// QueueDepth is a message count with its current per-second rate.
type QueueDepth struct {
	Total uint64
	Rate  float64
}
