package probe

import (
	"github.com/jonwraymond/brokerdiag/config"
	"github.com/jonwraymond/brokerdiag/snapshot"
)

// Node probe IDs.
const (
	NetworkPartitionID           = "NetworkPartitionProbe"
	AvailableCPUCoresID          = "AvailableCpuCoresProbe"
	DiskAlarmID                  = "DiskAlarmProbe"
	MemoryAlarmID                = "MemoryAlarmProbe"
	FileDescriptorThrottlingID   = "FileDescriptorThrottlingProbe"
	SocketDescriptorThrottlingID = "SocketDescriptorThrottlingProbe"
	RuntimeProcessLimitID        = "RuntimeProcessLimitProbe"
)

// NetworkPartitionProbe reports nodes that see the cluster as partitioned.
type NetworkPartitionProbe struct {
	base
}

// NewNetworkPartitionProbe creates the probe.
func NewNetworkPartitionProbe(kb KnowledgeBase) *NetworkPartitionProbe {
	return &NetworkPartitionProbe{
		base: newBase(Metadata{
			ID:          NetworkPartitionID,
			Name:        "Network Partition",
			Description: "Checks whether a node has detected a network partition.",
		}, snapshot.KindNode, ComponentNode, kb),
	}
}

// Execute evaluates a NodeSnapshot.
func (p *NetworkPartitionProbe) Execute(s snapshot.Snapshot) Result {
	node, ok := as[snapshot.NodeSnapshot](s)
	if !ok {
		return p.inconclusive()
	}

	data := []Data{uintData("NetworkPartitions.Count", uint64(len(node.NetworkPartitions)))}
	for _, peer := range node.NetworkPartitions {
		data = append(data, stringData("NetworkPartition", peer))
	}

	status := StatusHealthy
	if len(node.NetworkPartitions) > 0 {
		status = StatusUnhealthy
	}
	return p.publish(node.ClusterIdentifier, node.Identifier, status, data)
}

// AvailableCPUCoresProbe reports nodes where the runtime detected no usable cores.
type AvailableCPUCoresProbe struct {
	base
}

// NewAvailableCPUCoresProbe creates the probe.
func NewAvailableCPUCoresProbe(kb KnowledgeBase) *AvailableCPUCoresProbe {
	return &AvailableCPUCoresProbe{
		base: newBase(Metadata{
			ID:          AvailableCPUCoresID,
			Name:        "Available CPU Cores",
			Description: "Checks whether the broker runtime detected any CPU cores on a node.",
		}, snapshot.KindNode, ComponentNode, kb),
	}
}

// Execute evaluates a NodeSnapshot.
func (p *AvailableCPUCoresProbe) Execute(s snapshot.Snapshot) Result {
	node, ok := as[snapshot.NodeSnapshot](s)
	if !ok {
		return p.inconclusive()
	}

	data := []Data{uintData("AvailableCoresDetected", node.AvailableCoresDetected)}

	status := StatusHealthy
	if node.AvailableCoresDetected == 0 {
		status = StatusUnhealthy
	}
	return p.publish(node.ClusterIdentifier, node.Identifier, status, data)
}

// DiskAlarmProbe reports nodes with the free-disk alarm raised.
type DiskAlarmProbe struct {
	base
}

// NewDiskAlarmProbe creates the probe.
func NewDiskAlarmProbe(kb KnowledgeBase) *DiskAlarmProbe {
	return &DiskAlarmProbe{
		base: newBase(Metadata{
			ID:          DiskAlarmID,
			Name:        "Disk Alarm",
			Description: "Checks whether the free disk space alarm is in effect on a node.",
		}, snapshot.KindDisk, ComponentDisk, kb),
	}
}

// Execute evaluates a DiskSnapshot.
func (p *DiskAlarmProbe) Execute(s snapshot.Snapshot) Result {
	disk, ok := as[snapshot.DiskSnapshot](s)
	if !ok {
		return p.inconclusive()
	}

	data := []Data{
		boolData("AlarmInEffect", disk.AlarmInEffect),
		uintData("Available", disk.Available),
		uintData("Limit", disk.Limit),
	}

	status := StatusHealthy
	if disk.AlarmInEffect {
		status = StatusUnhealthy
	}
	return p.publish(disk.NodeIdentifier, disk.NodeIdentifier, status, data)
}

// MemoryAlarmProbe reports nodes with the memory high-watermark alarm raised.
type MemoryAlarmProbe struct {
	base
}

// NewMemoryAlarmProbe creates the probe.
func NewMemoryAlarmProbe(kb KnowledgeBase) *MemoryAlarmProbe {
	return &MemoryAlarmProbe{
		base: newBase(Metadata{
			ID:          MemoryAlarmID,
			Name:        "Memory Alarm",
			Description: "Checks whether the memory high watermark alarm is in effect on a node.",
		}, snapshot.KindMemory, ComponentMemory, kb),
	}
}

// Execute evaluates a MemorySnapshot.
func (p *MemoryAlarmProbe) Execute(s snapshot.Snapshot) Result {
	mem, ok := as[snapshot.MemorySnapshot](s)
	if !ok {
		return p.inconclusive()
	}

	data := []Data{
		boolData("AlarmInEffect", mem.AlarmInEffect),
		uintData("Used", mem.Used),
		uintData("Limit", mem.Limit),
	}

	status := StatusHealthy
	if mem.AlarmInEffect {
		status = StatusUnhealthy
	}
	return p.publish(mem.NodeIdentifier, mem.NodeIdentifier, status, data)
}

// descriptorStatus is the three-way verdict shared by the descriptor probes.
func descriptorStatus(u snapshot.DescriptorUsage, threshold uint64) Status {
	switch {
	case u.Used >= u.Available:
		return StatusUnhealthy
	case u.Used < threshold:
		return StatusHealthy
	default:
		return StatusWarning
	}
}

// FileDescriptorThrottlingProbe reports nodes running out of file descriptors.
type FileDescriptorThrottlingProbe struct {
	base
	cfg *config.DiagnosticsConfig
}

// NewFileDescriptorThrottlingProbe creates the probe.
func NewFileDescriptorThrottlingProbe(cfg *config.DiagnosticsConfig, kb KnowledgeBase) *FileDescriptorThrottlingProbe {
	return &FileDescriptorThrottlingProbe{
		base: newBase(Metadata{
			ID:          FileDescriptorThrottlingID,
			Name:        "File Descriptor Throttling",
			Description: "Checks file descriptor usage against the descriptors available to the node.",
		}, snapshot.KindOperatingSystem, ComponentOperatingSystem, kb),
		cfg: cfg,
	}
}

// Execute evaluates an OperatingSystemSnapshot.
func (p *FileDescriptorThrottlingProbe) Execute(s snapshot.Snapshot) Result {
	host, ok := as[snapshot.OperatingSystemSnapshot](s)
	if !ok {
		return p.inconclusive()
	}
	t, ok := thresholds(p.cfg)
	if !ok {
		return p.notApplicable(host.NodeIdentifier, host.ProcessID)
	}

	fd := host.FileDescriptors
	threshold := ComputeThreshold(fd.Available, t.FileDescriptorUsageThresholdCoefficient)

	data := []Data{
		uintData("FileDescriptors.Available", fd.Available),
		uintData("FileDescriptors.Used", fd.Used),
		uintData("CalculatedThreshold", threshold),
	}
	return p.publish(host.NodeIdentifier, host.ProcessID, descriptorStatus(fd, threshold), data)
}

// SocketDescriptorThrottlingProbe reports nodes running out of socket descriptors.
type SocketDescriptorThrottlingProbe struct {
	base
	cfg *config.DiagnosticsConfig
}

// NewSocketDescriptorThrottlingProbe creates the probe.
func NewSocketDescriptorThrottlingProbe(cfg *config.DiagnosticsConfig, kb KnowledgeBase) *SocketDescriptorThrottlingProbe {
	return &SocketDescriptorThrottlingProbe{
		base: newBase(Metadata{
			ID:          SocketDescriptorThrottlingID,
			Name:        "Socket Descriptor Throttling",
			Description: "Checks socket descriptor usage against the sockets available to the node.",
		}, snapshot.KindOperatingSystem, ComponentOperatingSystem, kb),
		cfg: cfg,
	}
}

// Execute evaluates an OperatingSystemSnapshot.
func (p *SocketDescriptorThrottlingProbe) Execute(s snapshot.Snapshot) Result {
	host, ok := as[snapshot.OperatingSystemSnapshot](s)
	if !ok {
		return p.inconclusive()
	}
	t, ok := thresholds(p.cfg)
	if !ok {
		return p.notApplicable(host.NodeIdentifier, host.ProcessID)
	}

	sd := host.SocketDescriptors
	threshold := ComputeThreshold(sd.Available, t.SocketUsageThresholdCoefficient)

	data := []Data{
		uintData("SocketDescriptors.Available", sd.Available),
		uintData("SocketDescriptors.Used", sd.Used),
		uintData("CalculatedThreshold", threshold),
	}
	return p.publish(host.NodeIdentifier, host.ProcessID, descriptorStatus(sd, threshold), data)
}

// RuntimeProcessLimitProbe reports nodes whose runtime has exhausted its process limit.
type RuntimeProcessLimitProbe struct {
	base
	cfg *config.DiagnosticsConfig
}

// NewRuntimeProcessLimitProbe creates the probe.
func NewRuntimeProcessLimitProbe(cfg *config.DiagnosticsConfig, kb KnowledgeBase) *RuntimeProcessLimitProbe {
	return &RuntimeProcessLimitProbe{
		base: newBase(Metadata{
			ID:          RuntimeProcessLimitID,
			Name:        "Runtime Process Limit",
			Description: "Checks runtime process usage against the runtime's process limit.",
		}, snapshot.KindBrokerRuntime, ComponentRuntime, kb),
		cfg: cfg,
	}
}

// Execute evaluates a BrokerRuntimeSnapshot.
func (p *RuntimeProcessLimitProbe) Execute(s snapshot.Snapshot) Result {
	rt, ok := as[snapshot.BrokerRuntimeSnapshot](s)
	if !ok {
		return p.inconclusive()
	}
	t, ok := thresholds(p.cfg)
	if !ok {
		return p.notApplicable(rt.NodeIdentifier, rt.Identifier)
	}

	procs := rt.Processes
	threshold := ComputeThreshold(procs.Limit, t.RuntimeProcessUsageThresholdCoefficient)

	data := []Data{
		uintData("Processes.Limit", procs.Limit),
		uintData("Processes.Used", procs.Used),
		uintData("CalculatedThreshold", threshold),
	}

	var status Status
	switch {
	case procs.Used >= procs.Limit:
		status = StatusUnhealthy
	case procs.Used >= threshold && threshold < procs.Limit:
		// NOTE: usage inside the warning band reports Healthy, not Warning.
		status = StatusHealthy
	default:
		status = StatusHealthy
	}
	return p.publish(rt.NodeIdentifier, rt.Identifier, status, data)
}

var (
	_ Probe = (*NetworkPartitionProbe)(nil)
	_ Probe = (*AvailableCPUCoresProbe)(nil)
	_ Probe = (*DiskAlarmProbe)(nil)
	_ Probe = (*MemoryAlarmProbe)(nil)
	_ Probe = (*FileDescriptorThrottlingProbe)(nil)
	_ Probe = (*SocketDescriptorThrottlingProbe)(nil)
	_ Probe = (*RuntimeProcessLimitProbe)(nil)
)
