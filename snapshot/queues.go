package snapshot

// BrokerQueuesSnapshot captures broker-wide message churn and every queue.
type BrokerQueuesSnapshot struct {
	ClusterName string
	Churn       BrokerQueueChurn
	Queues      []QueueSnapshot
}

// Kind implements Snapshot.
func (*BrokerQueuesSnapshot) Kind() Kind { return KindBrokerQueues }

// BrokerQueueChurn aggregates message flow across all queues.
type BrokerQueueChurn struct {
	Incoming       QueueDepth
	Unacknowledged QueueDepth
	Ready          QueueDepth
	Delivered      QueueDepth
	Redelivered    QueueDepth
	Acknowledged   QueueDepth
	NotRouted      QueueDepth
	Persisted      uint64
}

// QueueSnapshot describes one queue.
type QueueSnapshot struct {
	Identifier  string
	VirtualHost string
	Node        string
	Consumers   uint64
	// ConsumerUtilization is the fraction of time, in [0, 1], that the
	// queue is able to deliver to consumers immediately.
	ConsumerUtilization float64
	Messages            QueueMessages
	Memory              QueueMemory
}

// Kind implements Snapshot.
func (*QueueSnapshot) Kind() Kind { return KindQueue }

// QueueMessages holds message flow counters for a queue.
type QueueMessages struct {
	Incoming       QueueDepth
	Unacknowledged QueueDepth
	Ready          QueueDepth
	Delivered      QueueDepth
	Redelivered    QueueDepth
	Acknowledged   QueueDepth
}

// QueueMemory holds memory accounting for a queue.
type QueueMemory struct {
	Total    uint64
	PagedOut QueueDepth
	RAM      QueueDepth
}
