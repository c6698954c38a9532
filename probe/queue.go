package probe

import (
	"github.com/shopspring/decimal"

	"github.com/jonwraymond/brokerdiag/config"
	"github.com/jonwraymond/brokerdiag/snapshot"
)

// Queue probe IDs.
const (
	UnroutableMessageID   = "UnroutableMessageProbe"
	QueueGrowthID         = "QueueGrowthProbe"
	MessagePagingID       = "MessagePagingProbe"
	QueueNoFlowID         = "QueueNoFlowProbe"
	RedeliveredMessagesID = "RedeliveredMessagesProbe"
	ConsumerUtilizationID = "ConsumerUtilizationProbe"
	QueueHighFlowID       = "QueueHighFlowProbe"
	QueueLowFlowID        = "QueueLowFlowProbe"
)

// UnroutableMessageProbe reports published messages the broker could not route to any queue.
type UnroutableMessageProbe struct {
	base
}

// NewUnroutableMessageProbe creates the probe.
func NewUnroutableMessageProbe(kb KnowledgeBase) *UnroutableMessageProbe {
	return &UnroutableMessageProbe{
		base: newBase(Metadata{
			ID:          UnroutableMessageID,
			Name:        "Unroutable Message",
			Description: "Checks whether published messages were dropped or returned as unroutable.",
		}, snapshot.KindBrokerQueues, ComponentExchange, kb),
	}
}

// Execute evaluates a BrokerQueuesSnapshot.
func (p *UnroutableMessageProbe) Execute(s snapshot.Snapshot) Result {
	snap, ok := as[snapshot.BrokerQueuesSnapshot](s)
	if !ok {
		return p.inconclusive()
	}

	data := []Data{
		uintData("Churn.NotRouted.Total", snap.Churn.NotRouted.Total),
		floatData("Churn.NotRouted.Rate", snap.Churn.NotRouted.Rate),
	}

	status := StatusHealthy
	if snap.Churn.NotRouted.Total > 0 {
		status = StatusUnhealthy
	}
	return p.publish("", snap.ClusterName, status, data)
}

// QueueGrowthProbe warns when messages arrive faster than they are acknowledged.
type QueueGrowthProbe struct {
	base
}

// NewQueueGrowthProbe creates the probe.
func NewQueueGrowthProbe(kb KnowledgeBase) *QueueGrowthProbe {
	return &QueueGrowthProbe{
		base: newBase(Metadata{
			ID:          QueueGrowthID,
			Name:        "Queue Growth",
			Description: "Checks whether a queue receives messages faster than consumers acknowledge them.",
		}, snapshot.KindQueue, ComponentQueue, kb),
	}
}

// Execute evaluates a QueueSnapshot.
func (p *QueueGrowthProbe) Execute(s snapshot.Snapshot) Result {
	q, ok := as[snapshot.QueueSnapshot](s)
	if !ok {
		return p.inconclusive()
	}

	data := []Data{
		floatData("Messages.Incoming.Rate", q.Messages.Incoming.Rate),
		floatData("Messages.Acknowledged.Rate", q.Messages.Acknowledged.Rate),
	}

	status := StatusHealthy
	if q.Messages.Incoming.Rate > q.Messages.Acknowledged.Rate {
		status = StatusWarning
	}
	return p.publish(q.Node, q.Identifier, status, data)
}

// MessagePagingProbe reports queues whose messages have been paged out to disk.
type MessagePagingProbe struct {
	base
}

// NewMessagePagingProbe creates the probe.
func NewMessagePagingProbe(kb KnowledgeBase) *MessagePagingProbe {
	return &MessagePagingProbe{
		base: newBase(Metadata{
			ID:          MessagePagingID,
			Name:        "Message Paging",
			Description: "Checks whether a queue has paged messages out of memory to disk.",
		}, snapshot.KindQueue, ComponentQueue, kb),
	}
}

// Execute evaluates a QueueSnapshot.
func (p *MessagePagingProbe) Execute(s snapshot.Snapshot) Result {
	q, ok := as[snapshot.QueueSnapshot](s)
	if !ok {
		return p.inconclusive()
	}

	data := []Data{uintData("Memory.PagedOut.Total", q.Memory.PagedOut.Total)}

	status := StatusHealthy
	if q.Memory.PagedOut.Total > 0 {
		status = StatusUnhealthy
	}
	return p.publish(q.Node, q.Identifier, status, data)
}

// QueueNoFlowProbe reports queues that have received no messages.
type QueueNoFlowProbe struct {
	base
}

// NewQueueNoFlowProbe creates the probe.
func NewQueueNoFlowProbe(kb KnowledgeBase) *QueueNoFlowProbe {
	return &QueueNoFlowProbe{
		base: newBase(Metadata{
			ID:          QueueNoFlowID,
			Name:        "Queue No Flow",
			Description: "Checks whether a queue has received any messages.",
		}, snapshot.KindQueue, ComponentQueue, kb),
	}
}

// Execute evaluates a QueueSnapshot.
func (p *QueueNoFlowProbe) Execute(s snapshot.Snapshot) Result {
	q, ok := as[snapshot.QueueSnapshot](s)
	if !ok {
		return p.inconclusive()
	}

	data := []Data{uintData("Messages.Incoming.Total", q.Messages.Incoming.Total)}

	status := StatusHealthy
	if q.Messages.Incoming.Total == 0 {
		status = StatusUnhealthy
	}
	return p.publish(q.Node, q.Identifier, status, data)
}

// RedeliveredMessagesProbe reports queues where a large share of incoming
// messages are redeliveries.
type RedeliveredMessagesProbe struct {
	base
	cfg *config.DiagnosticsConfig
}

// NewRedeliveredMessagesProbe creates the probe.
func NewRedeliveredMessagesProbe(cfg *config.DiagnosticsConfig, kb KnowledgeBase) *RedeliveredMessagesProbe {
	return &RedeliveredMessagesProbe{
		base: newBase(Metadata{
			ID:          RedeliveredMessagesID,
			Name:        "Redelivered Messages",
			Description: "Checks the share of incoming messages on a queue that are redeliveries.",
		}, snapshot.KindQueue, ComponentQueue, kb),
		cfg: cfg,
	}
}

// Execute evaluates a QueueSnapshot.
func (p *RedeliveredMessagesProbe) Execute(s snapshot.Snapshot) Result {
	q, ok := as[snapshot.QueueSnapshot](s)
	if !ok {
		return p.inconclusive()
	}
	t, ok := thresholds(p.cfg)
	if !ok {
		return p.notApplicable(q.Node, q.Identifier)
	}

	incoming := q.Messages.Incoming.Total
	redelivered := q.Messages.Redelivered.Total
	threshold := ComputeThreshold(incoming, t.MessageRedeliveryThresholdCoefficient)

	data := []Data{
		uintData("Messages.Incoming.Total", incoming),
		uintData("Messages.Redelivered.Total", redelivered),
		uintData("CalculatedThreshold", threshold),
	}

	var status Status
	switch {
	case redelivered >= incoming:
		status = StatusUnhealthy
	case redelivered >= threshold && threshold < incoming:
		status = StatusWarning
	default:
		status = StatusHealthy
	}
	return p.publish(q.Node, q.Identifier, status, data)
}

// ConsumerUtilizationProbe reports queues whose consumers cannot keep up
// with immediate delivery.
type ConsumerUtilizationProbe struct {
	base
	cfg *config.DiagnosticsConfig
}

// NewConsumerUtilizationProbe creates the probe.
func NewConsumerUtilizationProbe(cfg *config.DiagnosticsConfig, kb KnowledgeBase) *ConsumerUtilizationProbe {
	return &ConsumerUtilizationProbe{
		base: newBase(Metadata{
			ID:          ConsumerUtilizationID,
			Name:        "Consumer Utilization",
			Description: "Checks how often a queue can deliver to its consumers immediately.",
		}, snapshot.KindQueue, ComponentQueue, kb),
		cfg: cfg,
	}
}

// Execute evaluates a QueueSnapshot. Utilization is compared in percentage
// points against ComputeThreshold(100, ConsumerUtilizationThreshold).
func (p *ConsumerUtilizationProbe) Execute(s snapshot.Snapshot) Result {
	q, ok := as[snapshot.QueueSnapshot](s)
	if !ok {
		return p.inconclusive()
	}
	t, ok := thresholds(p.cfg)
	if !ok {
		return p.notApplicable(q.Node, q.Identifier)
	}

	used := percent(q.ConsumerUtilization)
	threshold := ComputeThreshold(100, t.ConsumerUtilizationThreshold)

	data := []Data{
		floatData("ConsumerUtilization", q.ConsumerUtilization),
		floatData("ConsumerUtilizationThreshold", t.ConsumerUtilizationThreshold),
		uintData("CalculatedThreshold", threshold),
	}

	var status Status
	switch {
	case used.GreaterThanOrEqual(hundred):
		status = StatusHealthy
	case used.GreaterThanOrEqual(decimal.NewFromInt(int64(threshold))):
		status = StatusWarning
	default:
		status = StatusUnhealthy
	}
	return p.publish(q.Node, q.Identifier, status, data)
}

// QueueHighFlowProbe reports queues receiving more messages than the
// configured high-flow threshold.
type QueueHighFlowProbe struct {
	base
	cfg *config.DiagnosticsConfig
}

// NewQueueHighFlowProbe creates the probe.
func NewQueueHighFlowProbe(cfg *config.DiagnosticsConfig, kb KnowledgeBase) *QueueHighFlowProbe {
	return &QueueHighFlowProbe{
		base: newBase(Metadata{
			ID:          QueueHighFlowID,
			Name:        "Queue High Flow",
			Description: "Checks whether a queue receives more messages than the high-flow threshold.",
		}, snapshot.KindQueue, ComponentQueue, kb),
		cfg: cfg,
	}
}

// Execute evaluates a QueueSnapshot.
func (p *QueueHighFlowProbe) Execute(s snapshot.Snapshot) Result {
	q, ok := as[snapshot.QueueSnapshot](s)
	if !ok {
		return p.inconclusive()
	}
	t, ok := thresholds(p.cfg)
	if !ok {
		return p.notApplicable(q.Node, q.Identifier)
	}

	incoming := q.Messages.Incoming.Total
	warnAt := ComputeThreshold(t.QueueHighFlowThreshold, t.QueueFlowThresholdCoefficient)

	data := []Data{
		uintData("Messages.Incoming.Total", incoming),
		uintData("QueueHighFlowThreshold", t.QueueHighFlowThreshold),
		uintData("CalculatedThreshold", warnAt),
	}

	var status Status
	switch {
	case incoming >= t.QueueHighFlowThreshold:
		status = StatusUnhealthy
	case incoming >= warnAt:
		status = StatusWarning
	default:
		status = StatusHealthy
	}
	return p.publish(q.Node, q.Identifier, status, data)
}

// QueueLowFlowProbe reports queues receiving fewer messages than the
// configured low-flow threshold.
type QueueLowFlowProbe struct {
	base
	cfg *config.DiagnosticsConfig
}

// NewQueueLowFlowProbe creates the probe.
func NewQueueLowFlowProbe(cfg *config.DiagnosticsConfig, kb KnowledgeBase) *QueueLowFlowProbe {
	return &QueueLowFlowProbe{
		base: newBase(Metadata{
			ID:          QueueLowFlowID,
			Name:        "Queue Low Flow",
			Description: "Checks whether a queue receives fewer messages than the low-flow threshold.",
		}, snapshot.KindQueue, ComponentQueue, kb),
		cfg: cfg,
	}
}

// Execute evaluates a QueueSnapshot.
func (p *QueueLowFlowProbe) Execute(s snapshot.Snapshot) Result {
	q, ok := as[snapshot.QueueSnapshot](s)
	if !ok {
		return p.inconclusive()
	}
	t, ok := thresholds(p.cfg)
	if !ok {
		return p.notApplicable(q.Node, q.Identifier)
	}

	incoming := q.Messages.Incoming.Total
	floor := ComputeThreshold(t.QueueLowFlowThreshold, t.QueueFlowThresholdCoefficient)

	data := []Data{
		uintData("Messages.Incoming.Total", incoming),
		uintData("QueueLowFlowThreshold", t.QueueLowFlowThreshold),
		uintData("CalculatedThreshold", floor),
	}

	var status Status
	switch {
	case incoming <= floor:
		status = StatusUnhealthy
	case incoming <= t.QueueLowFlowThreshold:
		status = StatusWarning
	default:
		status = StatusHealthy
	}
	return p.publish(q.Node, q.Identifier, status, data)
}

var (
	_ Probe = (*UnroutableMessageProbe)(nil)
	_ Probe = (*QueueGrowthProbe)(nil)
	_ Probe = (*MessagePagingProbe)(nil)
	_ Probe = (*QueueNoFlowProbe)(nil)
	_ Probe = (*RedeliveredMessagesProbe)(nil)
	_ Probe = (*ConsumerUtilizationProbe)(nil)
	_ Probe = (*QueueHighFlowProbe)(nil)
	_ Probe = (*QueueLowFlowProbe)(nil)
)
