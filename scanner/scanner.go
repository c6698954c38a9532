package scanner

import (
	"sync/atomic"

	"github.com/jonwraymond/brokerdiag/probe"
	"github.com/jonwraymond/brokerdiag/snapshot"
)

// Scanner runs its wired probes against one snapshot kind.
//
// Contract:
//   - Concurrency: Scan and Configure may be called concurrently. A Scan
//     observes either the wiring before a Configure or the wiring after it,
//     never a mix.
//   - Errors: Scan never fails. A nil or wrong-kind snapshot yields an empty,
//     non-nil slice.
type Scanner interface {
	// Identifier returns the scanner's stable identifier.
	Identifier() string

	// Kind returns the snapshot kind the scanner accepts.
	Kind() snapshot.Kind

	// Configure replaces the wired probes with the applicable subset of
	// probes, keeping their order.
	Configure(probes []probe.Probe)

	// Scan executes every wired probe against the snapshot and its
	// components, concatenating the results.
	Scan(s snapshot.Snapshot) []probe.Result
}

// wiring maps a component kind to the probes that evaluate it.
type wiring map[snapshot.Kind][]probe.Probe

// probeSet holds a scanner's wiring behind an atomic pointer so that
// reconfiguration swaps the whole set at once.
type probeSet struct {
	kinds []snapshot.Kind
	cur   atomic.Pointer[wiring]
}

func newProbeSet(kinds ...snapshot.Kind) *probeSet {
	ps := &probeSet{kinds: kinds}
	ps.cur.Store(&wiring{})
	return ps
}

func (ps *probeSet) configure(probes []probe.Probe) {
	w := make(wiring, len(ps.kinds))
	for _, p := range probes {
		if p == nil {
			continue
		}
		for _, k := range ps.kinds {
			if p.Kind() == k {
				w[k] = append(w[k], p)
			}
		}
	}
	ps.cur.Store(&w)
}

func (ps *probeSet) load() wiring {
	return *ps.cur.Load()
}

// count returns the number of wired probes.
func (ps *probeSet) count() int {
	n := 0
	for _, probes := range ps.load() {
		n += len(probes)
	}
	return n
}

func execute(out []probe.Result, probes []probe.Probe, s snapshot.Snapshot) []probe.Result {
	for _, p := range probes {
		out = append(out, p.Execute(s))
	}
	return out
}
