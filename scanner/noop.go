package scanner

import (
	"github.com/jonwraymond/brokerdiag/probe"
	"github.com/jonwraymond/brokerdiag/snapshot"
)

// NoOpScannerID identifies the NoOpScanner and the shared empty Result.
const NoOpScannerID = "NoOpScanner"

// NoOpScanner is returned by lookups that find no registered scanner.
type NoOpScanner struct{}

// Identifier returns NoOpScannerID.
func (NoOpScanner) Identifier() string { return NoOpScannerID }

// Kind returns the empty kind.
func (NoOpScanner) Kind() snapshot.Kind { return "" }

// Configure does nothing.
func (NoOpScanner) Configure([]probe.Probe) {}

// Scan returns an empty, non-nil slice.
func (NoOpScanner) Scan(snapshot.Snapshot) []probe.Result { return []probe.Result{} }

var _ Scanner = NoOpScanner{}
