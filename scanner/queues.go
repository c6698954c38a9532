package scanner

import (
	"github.com/jonwraymond/brokerdiag/probe"
	"github.com/jonwraymond/brokerdiag/snapshot"
)

// BrokerQueuesScannerID identifies the BrokerQueuesScanner.
const BrokerQueuesScannerID = "BrokerQueuesScanner"

// BrokerQueuesScanner scans a BrokerQueuesSnapshot: the broker-wide queue
// probes run once, then the queue probes for each queue.
type BrokerQueuesScanner struct {
	probes *probeSet
}

// NewBrokerQueuesScanner creates the scanner wired with the applicable
// subset of probes.
func NewBrokerQueuesScanner(probes []probe.Probe) *BrokerQueuesScanner {
	s := &BrokerQueuesScanner{
		probes: newProbeSet(snapshot.KindBrokerQueues, snapshot.KindQueue),
	}
	s.Configure(probes)
	return s
}

// Identifier returns BrokerQueuesScannerID.
func (s *BrokerQueuesScanner) Identifier() string { return BrokerQueuesScannerID }

// Kind returns snapshot.KindBrokerQueues.
func (s *BrokerQueuesScanner) Kind() snapshot.Kind { return snapshot.KindBrokerQueues }

// Configure replaces the wired probes.
func (s *BrokerQueuesScanner) Configure(probes []probe.Probe) { s.probes.configure(probes) }

// Scan runs the wired probes over the snapshot.
func (s *BrokerQueuesScanner) Scan(snap snapshot.Snapshot) []probe.Result {
	bq, ok := snap.(*snapshot.BrokerQueuesSnapshot)
	if !ok || bq == nil {
		return []probe.Result{}
	}

	w := s.probes.load()
	perQueue := w[snapshot.KindQueue]
	results := make([]probe.Result, 0, len(w[snapshot.KindBrokerQueues])+len(perQueue)*len(bq.Queues))

	results = execute(results, w[snapshot.KindBrokerQueues], bq)
	for i := range bq.Queues {
		results = execute(results, perQueue, &bq.Queues[i])
	}
	return results
}

var _ Scanner = (*BrokerQueuesScanner)(nil)
