package scanner

import (
	"github.com/jonwraymond/brokerdiag/probe"
	"github.com/jonwraymond/brokerdiag/snapshot"
)

// ClusterScannerID identifies the ClusterScanner.
const ClusterScannerID = "ClusterScanner"

// ClusterScanner scans a ClusterSnapshot. For each node it runs the node
// probes, then the operating system, runtime, memory and disk probes
// against the node's facets.
type ClusterScanner struct {
	probes *probeSet
}

// NewClusterScanner creates the scanner wired with the applicable subset of
// probes.
func NewClusterScanner(probes []probe.Probe) *ClusterScanner {
	s := &ClusterScanner{
		probes: newProbeSet(
			snapshot.KindNode,
			snapshot.KindOperatingSystem,
			snapshot.KindBrokerRuntime,
			snapshot.KindMemory,
			snapshot.KindDisk,
		),
	}
	s.Configure(probes)
	return s
}

// Identifier returns ClusterScannerID.
func (s *ClusterScanner) Identifier() string { return ClusterScannerID }

// Kind returns snapshot.KindCluster.
func (s *ClusterScanner) Kind() snapshot.Kind { return snapshot.KindCluster }

// Configure replaces the wired probes.
func (s *ClusterScanner) Configure(probes []probe.Probe) { s.probes.configure(probes) }

// Scan runs the wired probes over every node in the snapshot.
func (s *ClusterScanner) Scan(snap snapshot.Snapshot) []probe.Result {
	cs, ok := snap.(*snapshot.ClusterSnapshot)
	if !ok || cs == nil {
		return []probe.Result{}
	}

	w := s.probes.load()
	results := make([]probe.Result, 0, s.probes.count()*len(cs.Nodes))

	for i := range cs.Nodes {
		node := &cs.Nodes[i]
		results = execute(results, w[snapshot.KindNode], node)
		results = execute(results, w[snapshot.KindOperatingSystem], &node.OS)
		results = execute(results, w[snapshot.KindBrokerRuntime], &node.Runtime)
		results = execute(results, w[snapshot.KindMemory], &node.Memory)
		results = execute(results, w[snapshot.KindDisk], &node.Disk)
	}
	return results
}

var _ Scanner = (*ClusterScanner)(nil)
