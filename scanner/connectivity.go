package scanner

import (
	"github.com/jonwraymond/brokerdiag/probe"
	"github.com/jonwraymond/brokerdiag/snapshot"
)

// BrokerConnectivityScannerID identifies the BrokerConnectivityScanner.
const BrokerConnectivityScannerID = "BrokerConnectivityScanner"

// BrokerConnectivityScanner scans a BrokerConnectivitySnapshot: the
// connectivity probes run once, then for each connection its connection
// probes followed by the channel probes for each of its channels.
type BrokerConnectivityScanner struct {
	probes *probeSet
}

// NewBrokerConnectivityScanner creates the scanner wired with the applicable
// subset of probes.
func NewBrokerConnectivityScanner(probes []probe.Probe) *BrokerConnectivityScanner {
	s := &BrokerConnectivityScanner{
		probes: newProbeSet(snapshot.KindBrokerConnectivity, snapshot.KindConnection, snapshot.KindChannel),
	}
	s.Configure(probes)
	return s
}

// Identifier returns BrokerConnectivityScannerID.
func (s *BrokerConnectivityScanner) Identifier() string { return BrokerConnectivityScannerID }

// Kind returns snapshot.KindBrokerConnectivity.
func (s *BrokerConnectivityScanner) Kind() snapshot.Kind { return snapshot.KindBrokerConnectivity }

// Configure replaces the wired probes.
func (s *BrokerConnectivityScanner) Configure(probes []probe.Probe) { s.probes.configure(probes) }

// Scan runs the wired probes over the snapshot.
func (s *BrokerConnectivityScanner) Scan(snap snapshot.Snapshot) []probe.Result {
	bc, ok := snap.(*snapshot.BrokerConnectivitySnapshot)
	if !ok || bc == nil {
		return []probe.Result{}
	}

	w := s.probes.load()
	results := make([]probe.Result, 0, len(w[snapshot.KindBrokerConnectivity])+len(bc.Connections))

	results = execute(results, w[snapshot.KindBrokerConnectivity], bc)
	for i := range bc.Connections {
		conn := &bc.Connections[i]
		results = execute(results, w[snapshot.KindConnection], conn)
		for j := range conn.Channels {
			results = execute(results, w[snapshot.KindChannel], &conn.Channels[j])
		}
	}
	return results
}

var _ Scanner = (*BrokerConnectivityScanner)(nil)
