// Package probe provides the health-evaluation rules run against broker snapshots.
//
// A Probe answers one narrow operational question about one snapshot Kind and
// returns exactly one Result per evaluation. The verdict lattice is small:
//
//   - Inconclusive: the snapshot is absent (or of the wrong kind)
//   - NA: the probe needs thresholds and no configuration was supplied
//   - Healthy, Warning, Unhealthy: the evaluated verdict
//
// Every Result carries the raw values the verdict was derived from, plus the
// knowledge-base article registered for the (probe, status) pair, if any.
//
// # Observing Results
//
// Each probe broadcasts every result it computes to its subscribers,
// synchronously and in subscription order, before Execute returns:
//
//	p := probe.NewBlockedConnectionProbe(kb)
//	sub := p.Subscribe(notify.ObserverFunc[probe.Result](func(r probe.Result) error {
//	    log.Printf("%s -> %s", r.ProbeID, r.Status)
//	    return nil
//	}))
//	defer sub.Unsubscribe()
//
// # Thresholds
//
// Probes with a capacity-based warning band share ComputeThreshold, which
// scales a capacity by a configured coefficient and rounds up.
package probe
