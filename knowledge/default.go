package knowledge

import "github.com/jonwraymond/brokerdiag/probe"

// Default returns a base preloaded with articles for the built-in probes.
func Default() *Base {
	b := New()
	for _, a := range builtin {
		_ = b.Add(a)
	}
	return b
}

func article(id string, status probe.Status, reason, remediation string) probe.Article {
	return probe.Article{ProbeID: id, Status: status, Reason: reason, Remediation: remediation}
}

var builtin = []probe.Article{
	article(probe.HighConnectionCreationRateID, probe.StatusWarning,
		"Connections are being opened at or above the configured rate.",
		"Reuse long-lived connections instead of opening one per operation."),
	article(probe.HighConnectionCreationRateID, probe.StatusHealthy,
		"Connections are being opened below the configured rate.", ""),
	article(probe.HighConnectionClosureRateID, probe.StatusWarning,
		"Connections are being closed at or above the configured rate.",
		"Check clients for connection churn and reconnect loops."),
	article(probe.HighConnectionClosureRateID, probe.StatusHealthy,
		"Connections are being closed below the configured rate.", ""),

	article(probe.BlockedConnectionID, probe.StatusUnhealthy,
		"The broker blocked the connection from publishing because a resource alarm is in effect.",
		"Resolve the memory or disk alarm on the node the connection is attached to."),
	article(probe.BlockedConnectionID, probe.StatusHealthy,
		"The connection is not blocked.", ""),
	article(probe.ChannelLimitReachedID, probe.StatusUnhealthy,
		"The connection has opened as many channels as it is allowed.",
		"Close unused channels or raise the channel_max limit negotiated by the client."),
	article(probe.ChannelLimitReachedID, probe.StatusHealthy,
		"The connection is below its open channel limit.", ""),
	article(probe.ChannelThrottlingID, probe.StatusUnhealthy,
		"Unacknowledged messages on the channel exceed its prefetch count.",
		"Acknowledge messages sooner or raise the prefetch count."),
	article(probe.ChannelThrottlingID, probe.StatusHealthy,
		"Unacknowledged messages are within the prefetch count.", ""),
	article(probe.UnlimitedPrefetchCountID, probe.StatusWarning,
		"The channel consumes without a prefetch limit.",
		"Set a prefetch count so a slow consumer cannot be flooded."),

	article(probe.UnroutableMessageID, probe.StatusUnhealthy,
		"Published messages could not be routed to any queue.",
		"Check exchange bindings or configure an alternate exchange."),
	article(probe.UnroutableMessageID, probe.StatusHealthy,
		"All published messages were routed.", ""),
	article(probe.QueueGrowthID, probe.StatusWarning,
		"Messages arrive faster than consumers acknowledge them.",
		"Add consumers or increase consumer throughput."),
	article(probe.QueueGrowthID, probe.StatusHealthy,
		"Consumers keep up with incoming messages.", ""),
	article(probe.MessagePagingID, probe.StatusUnhealthy,
		"Messages have been paged out of memory to disk.",
		"Drain the queue or raise the memory high watermark."),
	article(probe.MessagePagingID, probe.StatusHealthy,
		"No messages have been paged out.", ""),
	article(probe.QueueNoFlowID, probe.StatusUnhealthy,
		"The queue has received no messages.",
		"Confirm publishers are running and bound to this queue."),
	article(probe.QueueNoFlowID, probe.StatusHealthy,
		"The queue is receiving messages.", ""),
	article(probe.RedeliveredMessagesID, probe.StatusUnhealthy,
		"Every incoming message on the queue is a redelivery.",
		"Find the consumer rejecting or requeuing messages."),
	article(probe.RedeliveredMessagesID, probe.StatusWarning,
		"A large share of incoming messages are redeliveries.",
		"Check consumers for failures that cause requeues."),
	article(probe.RedeliveredMessagesID, probe.StatusHealthy,
		"Redeliveries are below the configured share of incoming messages.", ""),
	article(probe.ConsumerUtilizationID, probe.StatusUnhealthy,
		"Consumers are rarely able to take messages immediately.",
		"Add consumers, raise prefetch or speed up acknowledgements."),
	article(probe.ConsumerUtilizationID, probe.StatusWarning,
		"Consumers cannot always take messages immediately.",
		"Review prefetch settings and consumer throughput."),
	article(probe.QueueHighFlowID, probe.StatusUnhealthy,
		"The queue receives more messages than the high-flow threshold.",
		"Shard the workload across queues or scale consumers."),
	article(probe.QueueHighFlowID, probe.StatusWarning,
		"The queue is approaching the high-flow threshold.", ""),
	article(probe.QueueLowFlowID, probe.StatusUnhealthy,
		"The queue receives far fewer messages than the low-flow threshold.",
		"Confirm publishers are healthy."),
	article(probe.QueueLowFlowID, probe.StatusWarning,
		"The queue is receiving fewer messages than the low-flow threshold.", ""),

	article(probe.NetworkPartitionID, probe.StatusUnhealthy,
		"The node has detected a network partition.",
		"Restore connectivity between nodes and follow the partition handling strategy."),
	article(probe.NetworkPartitionID, probe.StatusHealthy,
		"The node sees no network partitions.", ""),
	article(probe.AvailableCPUCoresID, probe.StatusUnhealthy,
		"The runtime detected no available CPU cores.",
		"Check container CPU limits and scheduler settings."),
	article(probe.DiskAlarmID, probe.StatusUnhealthy,
		"The free disk space alarm is in effect; publishers are blocked.",
		"Free disk space or raise the disk free limit."),
	article(probe.DiskAlarmID, probe.StatusHealthy,
		"The free disk space alarm is clear.", ""),
	article(probe.MemoryAlarmID, probe.StatusUnhealthy,
		"The memory high watermark alarm is in effect; publishers are blocked.",
		"Drain queues or raise the memory high watermark."),
	article(probe.MemoryAlarmID, probe.StatusHealthy,
		"The memory alarm is clear.", ""),
	article(probe.FileDescriptorThrottlingID, probe.StatusUnhealthy,
		"The node has used every available file descriptor.",
		"Raise the open file limit for the broker process."),
	article(probe.FileDescriptorThrottlingID, probe.StatusWarning,
		"File descriptor usage is above the configured threshold.",
		"Raise the open file limit before it is exhausted."),
	article(probe.SocketDescriptorThrottlingID, probe.StatusUnhealthy,
		"The node has used every available socket descriptor.",
		"Raise the socket limit or reduce client connections."),
	article(probe.SocketDescriptorThrottlingID, probe.StatusWarning,
		"Socket descriptor usage is above the configured threshold.",
		"Reduce client connections or raise the socket limit."),
	article(probe.RuntimeProcessLimitID, probe.StatusUnhealthy,
		"The runtime has reached its process limit.",
		"Raise the runtime process limit."),
	article(probe.RuntimeProcessLimitID, probe.StatusHealthy,
		"Runtime process usage is below the limit.", ""),
}
