// Package snapshot defines the immutable broker state values evaluated by probes.
//
// Snapshots are produced outside this module (typically by mapping the broker
// management API into these types) and are consumed read-only. Each snapshot
// type reports a Kind; probes and scanners bind to exactly one Kind.
//
// Three kinds are top-level and have a scanner of their own:
//
//   - BrokerConnectivitySnapshot: connection churn, connections and their channels
//   - BrokerQueuesSnapshot: broker-wide queue churn and every queue
//   - ClusterSnapshot: every node with its disk, memory, OS and runtime facets
//
// The remaining kinds are components nested inside one of those.
package snapshot
