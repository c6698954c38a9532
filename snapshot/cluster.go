package snapshot

// ClusterSnapshot captures every node in a cluster.
type ClusterSnapshot struct {
	ClusterName   string
	BrokerVersion string
	Nodes         []NodeSnapshot
}

// Kind implements Snapshot.
func (*ClusterSnapshot) Kind() Kind { return KindCluster }

// NodeSnapshot describes one broker node and its resource facets.
type NodeSnapshot struct {
	Identifier             string
	ClusterIdentifier      string
	IsRunning              bool
	Uptime                 uint64
	AvailableCoresDetected uint64
	NetworkPartitions      []string
	OS                     OperatingSystemSnapshot
	Runtime                BrokerRuntimeSnapshot
	Memory                 MemorySnapshot
	Disk                   DiskSnapshot
}

// Kind implements Snapshot.
func (*NodeSnapshot) Kind() Kind { return KindNode }

// DescriptorUsage counts a limited OS resource such as file or socket descriptors.
type DescriptorUsage struct {
	Available uint64
	Used      uint64
	UsageRate float64
}

// OperatingSystemSnapshot holds OS-level resource usage for a node.
type OperatingSystemSnapshot struct {
	NodeIdentifier    string
	ProcessID         string
	FileDescriptors   DescriptorUsage
	SocketDescriptors DescriptorUsage
}

// Kind implements Snapshot.
func (*OperatingSystemSnapshot) Kind() Kind { return KindOperatingSystem }

// ProcessUsage counts runtime processes against the runtime's limit.
type ProcessUsage struct {
	Limit     uint64
	Used      uint64
	UsageRate float64
}

// BrokerRuntimeSnapshot holds runtime (VM) details for a node.
type BrokerRuntimeSnapshot struct {
	Identifier        string
	NodeIdentifier    string
	ClusterIdentifier string
	Version           string
	Processes         ProcessUsage
}

// Kind implements Snapshot.
func (*BrokerRuntimeSnapshot) Kind() Kind { return KindBrokerRuntime }

// MemorySnapshot holds memory usage for a node.
type MemorySnapshot struct {
	NodeIdentifier string
	Used           uint64
	UsageRate      float64
	Limit          uint64
	AlarmInEffect  bool
}

// Kind implements Snapshot.
func (*MemorySnapshot) Kind() Kind { return KindMemory }

// DiskSnapshot holds disk usage for a node.
type DiskSnapshot struct {
	NodeIdentifier string
	Available      uint64
	Limit          uint64
	Rate           float64
	AlarmInEffect  bool
}

// Kind implements Snapshot.
func (*DiskSnapshot) Kind() Kind { return KindDisk }
