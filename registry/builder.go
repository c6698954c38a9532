package registry

import (
	"fmt"
	"reflect"

	"github.com/jonwraymond/brokerdiag/config"
	"github.com/jonwraymond/brokerdiag/probe"
	"github.com/jonwraymond/brokerdiag/scanner"
)

// Capability selects the constructor a ProbeBuilder provides.
type Capability int

const (
	// NeedsConfig probes are built with the threshold configuration and the
	// knowledge base.
	NeedsConfig Capability = iota + 1

	// Stateless probes are built with the knowledge base only.
	Stateless
)

func (c Capability) String() string {
	switch c {
	case NeedsConfig:
		return "needs_config"
	case Stateless:
		return "stateless"
	default:
		return fmt.Sprintf("capability(%d)", int(c))
	}
}

// ProbeBuilder constructs one probe type. Exactly one of Configured and
// Stateless is used, chosen by Capability.
type ProbeBuilder struct {
	Name       string
	Capability Capability
	Configured func(cfg *config.DiagnosticsConfig, kb probe.KnowledgeBase) probe.Probe
	Stateless  func(kb probe.KnowledgeBase) probe.Probe
}

// ConfiguredProbe returns a builder for a probe that needs threshold configuration.
func ConfiguredProbe[P probe.Probe](name string, fn func(*config.DiagnosticsConfig, probe.KnowledgeBase) P) ProbeBuilder {
	return ProbeBuilder{
		Name:       name,
		Capability: NeedsConfig,
		Configured: func(cfg *config.DiagnosticsConfig, kb probe.KnowledgeBase) probe.Probe {
			return fn(cfg, kb)
		},
	}
}

// StatelessProbe returns a builder for a probe that needs only the knowledge base.
func StatelessProbe[P probe.Probe](name string, fn func(probe.KnowledgeBase) P) ProbeBuilder {
	return ProbeBuilder{
		Name:       name,
		Capability: Stateless,
		Stateless: func(kb probe.KnowledgeBase) probe.Probe {
			return fn(kb)
		},
	}
}

// Build constructs the probe.
func (b ProbeBuilder) Build(cfg *config.DiagnosticsConfig, kb probe.KnowledgeBase) (probe.Probe, error) {
	var p probe.Probe
	switch {
	case b.Capability == NeedsConfig && b.Configured != nil:
		p = b.Configured(cfg, kb)
	case b.Capability == Stateless && b.Stateless != nil:
		p = b.Stateless(kb)
	default:
		return nil, fmt.Errorf("%w: %s is %s", ErrUnsupportedCapability, b.Name, b.Capability)
	}
	if isNil(p) {
		return nil, fmt.Errorf("%w: %s", ErrNilInstance, b.Name)
	}
	return p, nil
}

// ScannerBuilder constructs one scanner type wired with the given probes.
type ScannerBuilder struct {
	Name  string
	Build func(probes []probe.Probe) scanner.Scanner
}

// NewScannerBuilder returns a builder for the scanner fn constructs.
func NewScannerBuilder[S scanner.Scanner](name string, fn func([]probe.Probe) S) ScannerBuilder {
	return ScannerBuilder{
		Name: name,
		Build: func(probes []probe.Probe) scanner.Scanner {
			return fn(probes)
		},
	}
}

func (b ScannerBuilder) build(probes []probe.Probe) (scanner.Scanner, error) {
	if b.Build == nil {
		return nil, fmt.Errorf("%w: %s has no constructor", ErrNilInstance, b.Name)
	}
	s := b.Build(probes)
	if isNil(s) {
		return nil, fmt.Errorf("%w: %s", ErrNilInstance, b.Name)
	}
	return s, nil
}

// isNil reports whether v is nil or an interface holding a nil pointer,
// map, slice, func or channel.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// DefaultProbes returns builders for every built-in probe.
func DefaultProbes() []ProbeBuilder {
	return []ProbeBuilder{
		ConfiguredProbe(probe.HighConnectionCreationRateID, probe.NewHighConnectionCreationRateProbe),
		ConfiguredProbe(probe.HighConnectionClosureRateID, probe.NewHighConnectionClosureRateProbe),
		StatelessProbe(probe.BlockedConnectionID, probe.NewBlockedConnectionProbe),
		StatelessProbe(probe.ChannelLimitReachedID, probe.NewChannelLimitReachedProbe),
		StatelessProbe(probe.ChannelThrottlingID, probe.NewChannelThrottlingProbe),
		StatelessProbe(probe.UnlimitedPrefetchCountID, probe.NewUnlimitedPrefetchCountProbe),

		StatelessProbe(probe.UnroutableMessageID, probe.NewUnroutableMessageProbe),
		StatelessProbe(probe.QueueGrowthID, probe.NewQueueGrowthProbe),
		StatelessProbe(probe.MessagePagingID, probe.NewMessagePagingProbe),
		StatelessProbe(probe.QueueNoFlowID, probe.NewQueueNoFlowProbe),
		ConfiguredProbe(probe.RedeliveredMessagesID, probe.NewRedeliveredMessagesProbe),
		ConfiguredProbe(probe.ConsumerUtilizationID, probe.NewConsumerUtilizationProbe),
		ConfiguredProbe(probe.QueueHighFlowID, probe.NewQueueHighFlowProbe),
		ConfiguredProbe(probe.QueueLowFlowID, probe.NewQueueLowFlowProbe),

		StatelessProbe(probe.NetworkPartitionID, probe.NewNetworkPartitionProbe),
		StatelessProbe(probe.AvailableCPUCoresID, probe.NewAvailableCPUCoresProbe),
		StatelessProbe(probe.DiskAlarmID, probe.NewDiskAlarmProbe),
		StatelessProbe(probe.MemoryAlarmID, probe.NewMemoryAlarmProbe),
		ConfiguredProbe(probe.FileDescriptorThrottlingID, probe.NewFileDescriptorThrottlingProbe),
		ConfiguredProbe(probe.SocketDescriptorThrottlingID, probe.NewSocketDescriptorThrottlingProbe),
		ConfiguredProbe(probe.RuntimeProcessLimitID, probe.NewRuntimeProcessLimitProbe),
	}
}

// DefaultScanners returns builders for every built-in scanner.
func DefaultScanners() []ScannerBuilder {
	return []ScannerBuilder{
		NewScannerBuilder(scanner.BrokerConnectivityScannerID, scanner.NewBrokerConnectivityScanner),
		NewScannerBuilder(scanner.BrokerQueuesScannerID, scanner.NewBrokerQueuesScanner),
		NewScannerBuilder(scanner.ClusterScannerID, scanner.NewClusterScanner),
	}
}
