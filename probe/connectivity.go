package probe

import (
	"github.com/jonwraymond/brokerdiag/config"
	"github.com/jonwraymond/brokerdiag/snapshot"
)

// Connectivity probe IDs.
const (
	HighConnectionCreationRateID = "HighConnectionCreationRateProbe"
	HighConnectionClosureRateID  = "HighConnectionClosureRateProbe"
	BlockedConnectionID          = "BlockedConnectionProbe"
	ChannelLimitReachedID        = "ChannelLimitReachedProbe"
	ChannelThrottlingID          = "ChannelThrottlingProbe"
	UnlimitedPrefetchCountID     = "UnlimitedPrefetchCountProbe"
)

// HighConnectionCreationRateProbe warns when connections are being opened
// faster than the configured rate.
type HighConnectionCreationRateProbe struct {
	base
	cfg *config.DiagnosticsConfig
}

// NewHighConnectionCreationRateProbe creates the probe.
func NewHighConnectionCreationRateProbe(cfg *config.DiagnosticsConfig, kb KnowledgeBase) *HighConnectionCreationRateProbe {
	return &HighConnectionCreationRateProbe{
		base: newBase(Metadata{
			ID:          HighConnectionCreationRateID,
			Name:        "High Connection Creation Rate",
			Description: "Checks whether clients are opening connections at an unusually high rate.",
		}, snapshot.KindBrokerConnectivity, ComponentConnectivity, kb),
		cfg: cfg,
	}
}

// Execute evaluates a BrokerConnectivitySnapshot.
func (p *HighConnectionCreationRateProbe) Execute(s snapshot.Snapshot) Result {
	snap, ok := as[snapshot.BrokerConnectivitySnapshot](s)
	if !ok {
		return p.inconclusive()
	}
	t, ok := thresholds(p.cfg)
	if !ok {
		return p.notApplicable("", snap.ClusterName)
	}

	data := []Data{
		floatData("ConnectionsCreated.Rate", snap.ConnectionsCreated.Rate),
		uintData("HighConnectionCreationRateThreshold", t.HighConnectionCreationRateThreshold),
	}

	status := StatusHealthy
	if snap.ConnectionsCreated.Rate >= float64(t.HighConnectionCreationRateThreshold) {
		status = StatusWarning
	}
	return p.publish("", snap.ClusterName, status, data)
}

// HighConnectionClosureRateProbe warns when connections are being closed
// faster than the configured rate.
type HighConnectionClosureRateProbe struct {
	base
	cfg *config.DiagnosticsConfig
}

// NewHighConnectionClosureRateProbe creates the probe.
func NewHighConnectionClosureRateProbe(cfg *config.DiagnosticsConfig, kb KnowledgeBase) *HighConnectionClosureRateProbe {
	return &HighConnectionClosureRateProbe{
		base: newBase(Metadata{
			ID:          HighConnectionClosureRateID,
			Name:        "High Connection Closure Rate",
			Description: "Checks whether clients are closing connections at an unusually high rate.",
		}, snapshot.KindBrokerConnectivity, ComponentConnectivity, kb),
		cfg: cfg,
	}
}

// Execute evaluates a BrokerConnectivitySnapshot.
func (p *HighConnectionClosureRateProbe) Execute(s snapshot.Snapshot) Result {
	snap, ok := as[snapshot.BrokerConnectivitySnapshot](s)
	if !ok {
		return p.inconclusive()
	}
	t, ok := thresholds(p.cfg)
	if !ok {
		return p.notApplicable("", snap.ClusterName)
	}

	data := []Data{
		floatData("ConnectionsClosed.Rate", snap.ConnectionsClosed.Rate),
		uintData("HighConnectionClosureRateThreshold", t.HighConnectionClosureRateThreshold),
	}

	status := StatusHealthy
	if snap.ConnectionsClosed.Rate >= float64(t.HighConnectionClosureRateThreshold) {
		status = StatusWarning
	}
	return p.publish("", snap.ClusterName, status, data)
}

// BlockedConnectionProbe reports connections the broker has blocked from publishing.
type BlockedConnectionProbe struct {
	base
}

// NewBlockedConnectionProbe creates the probe.
func NewBlockedConnectionProbe(kb KnowledgeBase) *BlockedConnectionProbe {
	return &BlockedConnectionProbe{
		base: newBase(Metadata{
			ID:          BlockedConnectionID,
			Name:        "Blocked Connection",
			Description: "Checks whether the broker has blocked a connection from publishing.",
		}, snapshot.KindConnection, ComponentConnection, kb),
	}
}

// Execute evaluates a ConnectionSnapshot.
func (p *BlockedConnectionProbe) Execute(s snapshot.Snapshot) Result {
	conn, ok := as[snapshot.ConnectionSnapshot](s)
	if !ok {
		return p.inconclusive()
	}

	data := []Data{stringData("State", string(conn.State))}

	status := StatusHealthy
	if conn.State == snapshot.ConnectionBlocked {
		status = StatusUnhealthy
	}
	return p.publish(conn.NodeIdentifier, conn.Identifier, status, data)
}

// ChannelLimitReachedProbe reports connections that have opened as many
// channels as they are allowed.
type ChannelLimitReachedProbe struct {
	base
}

// NewChannelLimitReachedProbe creates the probe.
func NewChannelLimitReachedProbe(kb KnowledgeBase) *ChannelLimitReachedProbe {
	return &ChannelLimitReachedProbe{
		base: newBase(Metadata{
			ID:          ChannelLimitReachedID,
			Name:        "Channel Limit Reached",
			Description: "Checks whether a connection has reached its open channel limit.",
		}, snapshot.KindConnection, ComponentConnection, kb),
	}
}

// Execute evaluates a ConnectionSnapshot.
func (p *ChannelLimitReachedProbe) Execute(s snapshot.Snapshot) Result {
	conn, ok := as[snapshot.ConnectionSnapshot](s)
	if !ok {
		return p.inconclusive()
	}

	open := uint64(len(conn.Channels))
	data := []Data{
		uintData("Channels.Count", open),
		uintData("OpenChannelsLimit", conn.OpenChannelsLimit),
	}

	status := StatusHealthy
	if open >= conn.OpenChannelsLimit {
		status = StatusUnhealthy
	}
	return p.publish(conn.NodeIdentifier, conn.Identifier, status, data)
}

// ChannelThrottlingProbe reports channels holding more unacknowledged
// messages than their prefetch count allows.
type ChannelThrottlingProbe struct {
	base
}

// NewChannelThrottlingProbe creates the probe.
func NewChannelThrottlingProbe(kb KnowledgeBase) *ChannelThrottlingProbe {
	return &ChannelThrottlingProbe{
		base: newBase(Metadata{
			ID:          ChannelThrottlingID,
			Name:        "Channel Throttling",
			Description: "Checks whether unacknowledged messages on a channel exceed its prefetch count.",
		}, snapshot.KindChannel, ComponentChannel, kb),
	}
}

// Execute evaluates a ChannelSnapshot.
func (p *ChannelThrottlingProbe) Execute(s snapshot.Snapshot) Result {
	ch, ok := as[snapshot.ChannelSnapshot](s)
	if !ok {
		return p.inconclusive()
	}

	data := []Data{
		uintData("UnacknowledgedMessages", ch.UnacknowledgedMessages),
		uintData("PrefetchCount", ch.PrefetchCount),
	}

	status := StatusHealthy
	if ch.UnacknowledgedMessages > ch.PrefetchCount {
		status = StatusUnhealthy
	}
	return p.publish(ch.ConnectionIdentifier, ch.Identifier, status, data)
}

// UnlimitedPrefetchCountProbe warns about channels consuming without a
// prefetch limit. A channel with a limit set has nothing to report and is
// Inconclusive.
type UnlimitedPrefetchCountProbe struct {
	base
}

// NewUnlimitedPrefetchCountProbe creates the probe.
func NewUnlimitedPrefetchCountProbe(kb KnowledgeBase) *UnlimitedPrefetchCountProbe {
	return &UnlimitedPrefetchCountProbe{
		base: newBase(Metadata{
			ID:          UnlimitedPrefetchCountID,
			Name:        "Unlimited Prefetch Count",
			Description: "Checks whether a channel consumes with an unlimited prefetch count.",
		}, snapshot.KindChannel, ComponentChannel, kb),
	}
}

// Execute evaluates a ChannelSnapshot.
func (p *UnlimitedPrefetchCountProbe) Execute(s snapshot.Snapshot) Result {
	ch, ok := as[snapshot.ChannelSnapshot](s)
	if !ok {
		return p.inconclusive()
	}

	data := []Data{uintData("PrefetchCount", ch.PrefetchCount)}

	status := StatusInconclusive
	if ch.PrefetchCount == 0 {
		status = StatusWarning
	}
	return p.publish(ch.ConnectionIdentifier, ch.Identifier, status, data)
}

var (
	_ Probe = (*HighConnectionCreationRateProbe)(nil)
	_ Probe = (*HighConnectionClosureRateProbe)(nil)
	_ Probe = (*BlockedConnectionProbe)(nil)
	_ Probe = (*ChannelLimitReachedProbe)(nil)
	_ Probe = (*ChannelThrottlingProbe)(nil)
	_ Probe = (*UnlimitedPrefetchCountProbe)(nil)
)
