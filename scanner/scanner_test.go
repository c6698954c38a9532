package scanner

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/brokerdiag/config"
	"github.com/jonwraymond/brokerdiag/probe"
	"github.com/jonwraymond/brokerdiag/snapshot"
)

func connectivityProbes(cfg *config.DiagnosticsConfig) []probe.Probe {
	return []probe.Probe{
		probe.NewHighConnectionCreationRateProbe(cfg, nil),
		probe.NewHighConnectionClosureRateProbe(cfg, nil),
		probe.NewBlockedConnectionProbe(nil),
		probe.NewChannelLimitReachedProbe(nil),
		probe.NewChannelThrottlingProbe(nil),
		probe.NewUnlimitedPrefetchCountProbe(nil),
	}
}

func queueProbes(cfg *config.DiagnosticsConfig) []probe.Probe {
	return []probe.Probe{
		probe.NewUnroutableMessageProbe(nil),
		probe.NewQueueGrowthProbe(nil),
		probe.NewMessagePagingProbe(nil),
		probe.NewQueueNoFlowProbe(nil),
		probe.NewRedeliveredMessagesProbe(cfg, nil),
		probe.NewConsumerUtilizationProbe(cfg, nil),
		probe.NewQueueHighFlowProbe(cfg, nil),
		probe.NewQueueLowFlowProbe(cfg, nil),
	}
}

func clusterProbes(cfg *config.DiagnosticsConfig) []probe.Probe {
	return []probe.Probe{
		probe.NewNetworkPartitionProbe(nil),
		probe.NewAvailableCPUCoresProbe(nil),
		probe.NewDiskAlarmProbe(nil),
		probe.NewMemoryAlarmProbe(nil),
		probe.NewFileDescriptorThrottlingProbe(cfg, nil),
		probe.NewSocketDescriptorThrottlingProbe(cfg, nil),
		probe.NewRuntimeProcessLimitProbe(cfg, nil),
	}
}

func allProbes(cfg *config.DiagnosticsConfig) []probe.Probe {
	var all []probe.Probe
	all = append(all, connectivityProbes(cfg)...)
	all = append(all, queueProbes(cfg)...)
	return append(all, clusterProbes(cfg)...)
}

// scenarioA is one blocked connection with one throttled channel.
func scenarioA() *snapshot.BrokerConnectivitySnapshot {
	return &snapshot.BrokerConnectivitySnapshot{
		ClusterName:        "rabbit@cluster",
		ConnectionsCreated: snapshot.ChurnMetrics{Total: 1000, Rate: 102},
		ConnectionsClosed:  snapshot.ChurnMetrics{Total: 900, Rate: 100},
		Connections: []snapshot.ConnectionSnapshot{{
			Identifier:        "conn-1",
			NodeIdentifier:    "rabbit@node1",
			State:             snapshot.ConnectionBlocked,
			OpenChannelsLimit: 2,
			Channels: []snapshot.ChannelSnapshot{{
				Identifier:             "ch-1",
				ConnectionIdentifier:   "conn-1",
				PrefetchCount:          4,
				UnacknowledgedMessages: 5,
			}},
		}},
	}
}

func byProbe(results []probe.Result) map[string]probe.Status {
	m := make(map[string]probe.Status, len(results))
	for _, r := range results {
		m[r.ProbeID] = r.Status
	}
	return m
}

func probeIDs(results []probe.Result) []string {
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.ProbeID
	}
	return ids
}

func TestBrokerConnectivityScanner_ScenarioA(t *testing.T) {
	s := NewBrokerConnectivityScanner(allProbes(config.Default()))

	results := s.Scan(scenarioA())
	require.Len(t, results, 6)
	assert.Equal(t, map[string]probe.Status{
		probe.BlockedConnectionID:          probe.StatusUnhealthy,
		probe.ChannelThrottlingID:          probe.StatusUnhealthy,
		probe.ChannelLimitReachedID:        probe.StatusHealthy,
		probe.HighConnectionCreationRateID: probe.StatusWarning,
		probe.HighConnectionClosureRateID:  probe.StatusWarning,
		probe.UnlimitedPrefetchCountID:     probe.StatusInconclusive,
	}, byProbe(results))
}

func TestBrokerConnectivityScanner_Order(t *testing.T) {
	s := NewBrokerConnectivityScanner(connectivityProbes(config.Default()))
	snap := scenarioA()
	snap.Connections = append(snap.Connections, snapshot.ConnectionSnapshot{Identifier: "conn-2", OpenChannelsLimit: 8})

	assert.Equal(t, []string{
		probe.HighConnectionCreationRateID,
		probe.HighConnectionClosureRateID,
		probe.BlockedConnectionID,
		probe.ChannelLimitReachedID,
		probe.ChannelThrottlingID,
		probe.UnlimitedPrefetchCountID,
		probe.BlockedConnectionID,
		probe.ChannelLimitReachedID,
	}, probeIDs(s.Scan(snap)))
}

func TestBrokerQueuesScanner(t *testing.T) {
	s := NewBrokerQueuesScanner(allProbes(config.Default()))
	snap := &snapshot.BrokerQueuesSnapshot{
		ClusterName: "c1",
		Queues: []snapshot.QueueSnapshot{
			{Identifier: "q1", Node: "n1"},
			{Identifier: "q2", Node: "n1"},
		},
	}

	results := s.Scan(snap)
	require.Len(t, results, 1+2*7)
	assert.Equal(t, probe.UnroutableMessageID, results[0].ProbeID)
	assert.Equal(t, "q1", results[1].ComponentID)
	assert.Equal(t, "q2", results[len(results)-1].ComponentID)
}

func TestClusterScanner(t *testing.T) {
	s := NewClusterScanner(allProbes(config.Default()))
	snap := &snapshot.ClusterSnapshot{
		ClusterName: "c1",
		Nodes: []snapshot.NodeSnapshot{
			{
				Identifier:        "n1",
				ClusterIdentifier: "c1",
				NetworkPartitions: []string{"n2"},
				Disk:              snapshot.DiskSnapshot{NodeIdentifier: "n1", AlarmInEffect: true},
			},
			{Identifier: "n2", ClusterIdentifier: "c1", AvailableCoresDetected: 2},
		},
	}

	results := s.Scan(snap)
	require.Len(t, results, 14)
	assert.Equal(t, []string{
		probe.NetworkPartitionID,
		probe.AvailableCPUCoresID,
		probe.FileDescriptorThrottlingID,
		probe.SocketDescriptorThrottlingID,
		probe.RuntimeProcessLimitID,
		probe.MemoryAlarmID,
		probe.DiskAlarmID,
	}, probeIDs(results[:7]))
	assert.Equal(t, probe.StatusUnhealthy, results[0].Status)
	assert.Equal(t, probe.StatusUnhealthy, results[6].Status)
	assert.Equal(t, "n2", results[7].ComponentID)
}

func TestScanners_NilSnapshotIsEmpty(t *testing.T) {
	probes := allProbes(config.Default())
	scanners := []Scanner{
		NewBrokerConnectivityScanner(probes),
		NewBrokerQueuesScanner(probes),
		NewClusterScanner(probes),
		NoOpScanner{},
	}
	for _, s := range scanners {
		t.Run(s.Identifier(), func(t *testing.T) {
			got := s.Scan(nil)
			assert.NotNil(t, got)
			assert.Empty(t, got)

			got = s.Scan(&snapshot.DiskSnapshot{})
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestScanners_TypedNilSnapshotIsEmpty(t *testing.T) {
	var snap *snapshot.ClusterSnapshot
	got := NewClusterScanner(nil).Scan(snap)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestScanner_Configure(t *testing.T) {
	s := NewBrokerConnectivityScanner(nil)
	assert.Empty(t, s.Scan(scenarioA()))

	s.Configure(append(queueProbes(config.Default()), probe.NewBlockedConnectionProbe(nil), nil))
	assert.Equal(t, []string{probe.BlockedConnectionID}, probeIDs(s.Scan(scenarioA())))
}

func TestScanner_ConfigureIsAtomic(t *testing.T) {
	small := []probe.Probe{probe.NewBlockedConnectionProbe(nil)}
	full := connectivityProbes(config.Default())
	s := NewBrokerConnectivityScanner(small)
	snap := scenarioA()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if i%2 == 0 {
				s.Configure(full)
			} else {
				s.Configure(small)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			n := len(s.Scan(snap))
			assert.True(t, n == 1 || n == 6, "observed partial wiring with %d results", n)
		}
	}()
	wg.Wait()
}

func TestScanners_Identity(t *testing.T) {
	assert.Equal(t, BrokerConnectivityScannerID, NewBrokerConnectivityScanner(nil).Identifier())
	assert.Equal(t, snapshot.KindBrokerConnectivity, NewBrokerConnectivityScanner(nil).Kind())
	assert.Equal(t, BrokerQueuesScannerID, NewBrokerQueuesScanner(nil).Identifier())
	assert.Equal(t, snapshot.KindBrokerQueues, NewBrokerQueuesScanner(nil).Kind())
	assert.Equal(t, ClusterScannerID, NewClusterScanner(nil).Identifier())
	assert.Equal(t, snapshot.KindCluster, NewClusterScanner(nil).Kind())
	assert.Equal(t, NoOpScannerID, NoOpScanner{}.Identifier())
}
