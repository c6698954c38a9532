package snapshot

// ConnectionState is the broker-reported state of a client connection.
type ConnectionState string

const (
	ConnectionStarting ConnectionState = "starting"
	ConnectionTuning   ConnectionState = "tuning"
	ConnectionOpening  ConnectionState = "opening"
	ConnectionRunning  ConnectionState = "running"
	ConnectionFlow     ConnectionState = "flow"
	ConnectionBlocking ConnectionState = "blocking"
	ConnectionBlocked  ConnectionState = "blocked"
	ConnectionClosing  ConnectionState = "closing"
	ConnectionClosed   ConnectionState = "closed"
)

// BrokerConnectivitySnapshot captures connection and channel churn for a
// cluster together with every open connection.
type BrokerConnectivitySnapshot struct {
	BrokerVersion      string
	ClusterName        string
	ConnectionsCreated ChurnMetrics
	ConnectionsClosed  ChurnMetrics
	ChannelsCreated    ChurnMetrics
	ChannelsClosed     ChurnMetrics
	Connections        []ConnectionSnapshot
}

// Kind implements Snapshot.
func (*BrokerConnectivitySnapshot) Kind() Kind { return KindBrokerConnectivity }

// NetworkTraffic holds per-connection traffic counters.
type NetworkTraffic struct {
	MaxFrameSize uint64
	Sent         Packets
	Received     Packets
}

// Packets counts packets and bytes moved in one direction.
type Packets struct {
	Total uint64
	Bytes uint64
	Rate  float64
}

// ConnectionSnapshot describes one client connection.
type ConnectionSnapshot struct {
	Identifier        string
	NodeIdentifier    string
	VirtualHost       string
	State             ConnectionState
	OpenChannelsLimit uint64
	NetworkTraffic    NetworkTraffic
	Channels          []ChannelSnapshot
}

// Kind implements Snapshot.
func (*ConnectionSnapshot) Kind() Kind { return KindConnection }

// ChannelSnapshot describes one channel multiplexed over a connection.
type ChannelSnapshot struct {
	Identifier                  string
	ConnectionIdentifier        string
	Node                        string
	PrefetchCount               uint64
	UncommittedAcknowledgements uint64
	UncommittedMessages         uint64
	UnconfirmedMessages         uint64
	UnacknowledgedMessages      uint64
	Consumers                   uint64
}

// Kind implements Snapshot.
func (*ChannelSnapshot) Kind() Kind { return KindChannel }
