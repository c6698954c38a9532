package probe

import (
	"time"

	"github.com/jonwraymond/brokerdiag/config"
	"github.com/jonwraymond/brokerdiag/notify"
	"github.com/jonwraymond/brokerdiag/snapshot"
)

// Probe evaluates one operational question against one snapshot kind.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Errors: Execute never panics and never fails; absent data is reported
//     as StatusInconclusive and absent configuration as StatusNA.
//   - Side effects: every result is delivered to subscribers, in subscription
//     order, before Execute returns.
type Probe interface {
	// Metadata returns the probe's identity.
	Metadata() Metadata

	// Kind returns the snapshot kind the probe evaluates.
	Kind() snapshot.Kind

	// ComponentType returns the component type stamped on results.
	ComponentType() ComponentType

	// Execute evaluates the snapshot and returns exactly one result.
	Execute(s snapshot.Snapshot) Result

	// Subscribe registers an observer for every result this probe computes.
	Subscribe(o notify.Observer[Result]) *notify.Subscription
}

// base carries what every built-in probe shares: identity, article lookup and
// the result broadcaster.
type base struct {
	meta  Metadata
	kind  snapshot.Kind
	ctype ComponentType
	kb    KnowledgeBase
	out   *notify.Broadcaster[Result]
	now   func() time.Time
}

func newBase(meta Metadata, kind snapshot.Kind, ctype ComponentType, kb KnowledgeBase) base {
	return base{
		meta:  meta,
		kind:  kind,
		ctype: ctype,
		kb:    kb,
		out:   notify.NewBroadcaster[Result](),
		now:   time.Now,
	}
}

// Metadata returns the probe's identity.
func (b *base) Metadata() Metadata { return b.meta }

// Kind returns the snapshot kind the probe evaluates.
func (b *base) Kind() snapshot.Kind { return b.kind }

// ComponentType returns the component type stamped on results.
func (b *base) ComponentType() ComponentType { return b.ctype }

// Subscribe registers an observer for every result this probe computes.
func (b *base) Subscribe(o notify.Observer[Result]) *notify.Subscription {
	return b.out.Subscribe(o)
}

func (b *base) inconclusive() Result {
	return b.publish("", "", StatusInconclusive, []Data{})
}

func (b *base) notApplicable(parentID, componentID string) Result {
	return b.publish(parentID, componentID, StatusNA, []Data{})
}

func (b *base) publish(parentID, componentID string, status Status, data []Data) Result {
	r := Result{
		ParentComponentID: parentID,
		ComponentID:       componentID,
		ComponentType:     b.ctype,
		ProbeID:           b.meta.ID,
		ProbeName:         b.meta.Name,
		Status:            status,
		Data:              data,
		Timestamp:         b.now(),
	}
	if b.kb != nil {
		if a, ok := b.kb.TryGet(b.meta.ID, status); ok {
			r.Article = &a
		}
	}

	// Delivery failures are isolated by the broadcaster; the result is
	// returned regardless.
	_ = b.out.Notify(r)
	return r
}

// as narrows a snapshot to its concrete type, treating typed nils as absent.
func as[T any](s snapshot.Snapshot) (*T, bool) {
	v, ok := any(s).(*T)
	return v, ok && v != nil
}

// thresholds returns the probes section of cfg, or false when either is absent.
func thresholds(cfg *config.DiagnosticsConfig) (*config.ProbesConfig, bool) {
	if cfg == nil || cfg.Probes == nil {
		return nil, false
	}
	return cfg.Probes, true
}
