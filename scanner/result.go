package scanner

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonwraymond/brokerdiag/probe"
)

// Result is the output of one scan.
type Result struct {
	// ID is unique per scan. The shared empty result uses uuid.Nil.
	ID uuid.UUID

	// ScannerID is the identifier of the scanner that produced the results.
	ScannerID string

	// Results is never nil.
	Results []probe.Result

	Timestamp time.Time
}

var empty = Result{
	ID:        uuid.Nil,
	ScannerID: NoOpScannerID,
	Results:   []probe.Result{},
}

// Empty returns the shared result reported when no scanner is registered
// for a snapshot's kind. Its Timestamp is the zero time.
func Empty() Result { return empty }

// IsEmpty reports whether r is the shared empty result.
func (r Result) IsEmpty() bool {
	return r.ID == uuid.Nil && r.ScannerID == NoOpScannerID
}

// Statuses counts results per status name.
func (r Result) Statuses() map[string]int {
	return countStatuses(r.Results)
}

func countStatuses(results []probe.Result) map[string]int {
	counts := make(map[string]int, 5)
	for _, pr := range results {
		counts[pr.Status.String()]++
	}
	return counts
}
