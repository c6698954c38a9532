package probe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/brokerdiag/config"
	"github.com/jonwraymond/brokerdiag/notify"
	"github.com/jonwraymond/brokerdiag/snapshot"
)

type fakeKB map[string]Article

func (kb fakeKB) TryGet(probeID string, status Status) (Article, bool) {
	a, ok := kb[probeID+"/"+status.String()]
	return a, ok
}

func (kb fakeKB) add(probeID string, status Status, reason string) {
	kb[probeID+"/"+status.String()] = Article{ProbeID: probeID, Status: status, Reason: reason}
}

// builtins returns every built-in probe alongside a snapshot of its kind.
func builtins(cfg *config.DiagnosticsConfig, kb KnowledgeBase) map[Probe]snapshot.Snapshot {
	conn := &snapshot.ConnectionSnapshot{Identifier: "c1", OpenChannelsLimit: 2}
	ch := &snapshot.ChannelSnapshot{Identifier: "ch1", PrefetchCount: 0}
	q := &snapshot.QueueSnapshot{Identifier: "q1", Node: "n1"}
	node := &snapshot.NodeSnapshot{Identifier: "n1", AvailableCoresDetected: 4}
	return map[Probe]snapshot.Snapshot{
		NewHighConnectionCreationRateProbe(cfg, kb): &snapshot.BrokerConnectivitySnapshot{},
		NewHighConnectionClosureRateProbe(cfg, kb):  &snapshot.BrokerConnectivitySnapshot{},
		NewBlockedConnectionProbe(kb):               conn,
		NewChannelLimitReachedProbe(kb):             conn,
		NewChannelThrottlingProbe(kb):               ch,
		NewUnlimitedPrefetchCountProbe(kb):          ch,
		NewUnroutableMessageProbe(kb):               &snapshot.BrokerQueuesSnapshot{},
		NewQueueGrowthProbe(kb):                     q,
		NewMessagePagingProbe(kb):                   q,
		NewQueueNoFlowProbe(kb):                     q,
		NewRedeliveredMessagesProbe(cfg, kb):        q,
		NewConsumerUtilizationProbe(cfg, kb):        q,
		NewQueueHighFlowProbe(cfg, kb):              q,
		NewQueueLowFlowProbe(cfg, kb):               q,
		NewNetworkPartitionProbe(kb):                node,
		NewAvailableCPUCoresProbe(kb):               node,
		NewDiskAlarmProbe(kb):                       &snapshot.DiskSnapshot{NodeIdentifier: "n1"},
		NewMemoryAlarmProbe(kb):                     &snapshot.MemorySnapshot{NodeIdentifier: "n1"},
		NewFileDescriptorThrottlingProbe(cfg, kb):   &snapshot.OperatingSystemSnapshot{NodeIdentifier: "n1"},
		NewSocketDescriptorThrottlingProbe(cfg, kb): &snapshot.OperatingSystemSnapshot{NodeIdentifier: "n1"},
		NewRuntimeProcessLimitProbe(cfg, kb):        &snapshot.BrokerRuntimeSnapshot{NodeIdentifier: "n1"},
	}
}

func configured(p Probe) bool {
	switch p.Metadata().ID {
	case HighConnectionCreationRateID, HighConnectionClosureRateID,
		RedeliveredMessagesID, ConsumerUtilizationID, QueueHighFlowID, QueueLowFlowID,
		FileDescriptorThrottlingID, SocketDescriptorThrottlingID, RuntimeProcessLimitID:
		return true
	}
	return false
}

func TestBuiltins_UniqueIDs(t *testing.T) {
	probes := builtins(config.Default(), fakeKB{})
	require.Len(t, probes, 21)

	seen := map[string]bool{}
	for p := range probes {
		id := p.Metadata().ID
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
		assert.NotEmpty(t, p.Metadata().Name)
		assert.NotEmpty(t, p.Metadata().Description)
	}
}

func TestBuiltins_NilSnapshotIsInconclusive(t *testing.T) {
	for p := range builtins(config.Default(), nil) {
		t.Run(p.Metadata().ID, func(t *testing.T) {
			r := p.Execute(nil)
			assert.Equal(t, StatusInconclusive, r.Status)
			assert.NotNil(t, r.Data)
			assert.Empty(t, r.Data)
			assert.Equal(t, p.Metadata().ID, r.ProbeID)
			assert.Equal(t, p.Metadata().Name, r.ProbeName)
			assert.Equal(t, p.ComponentType(), r.ComponentType)
			assert.False(t, r.Timestamp.IsZero())
		})
	}
}

func TestBuiltins_TypedNilSnapshotIsInconclusive(t *testing.T) {
	p := NewBlockedConnectionProbe(nil)
	var conn *snapshot.ConnectionSnapshot
	assert.Equal(t, StatusInconclusive, p.Execute(conn).Status)
}

func TestAs(t *testing.T) {
	q := &snapshot.QueueSnapshot{Identifier: "q1"}
	got, ok := as[snapshot.QueueSnapshot](q)
	require.True(t, ok)
	assert.Same(t, q, got)

	_, ok = as[snapshot.QueueSnapshot](&snapshot.ChannelSnapshot{})
	assert.False(t, ok)

	_, ok = as[snapshot.QueueSnapshot](nil)
	assert.False(t, ok)

	var typed *snapshot.QueueSnapshot
	_, ok = as[snapshot.QueueSnapshot](typed)
	assert.False(t, ok)
}

func TestBuiltins_WrongKindIsInconclusive(t *testing.T) {
	for p := range builtins(config.Default(), nil) {
		t.Run(p.Metadata().ID, func(t *testing.T) {
			wrong := snapshot.Snapshot(&snapshot.ClusterSnapshot{})
			r := p.Execute(wrong)
			assert.Equal(t, StatusInconclusive, r.Status)
			assert.Empty(t, r.Data)
		})
	}
}

func TestBuiltins_SnapshotKindMatches(t *testing.T) {
	for p, s := range builtins(config.Default(), nil) {
		assert.Equal(t, p.Kind(), s.Kind(), p.Metadata().ID)
	}
}

func TestBuiltins_MissingConfigIsNA(t *testing.T) {
	for _, cfg := range []*config.DiagnosticsConfig{nil, {}} {
		for p, s := range builtins(cfg, nil) {
			if !configured(p) {
				continue
			}
			r := p.Execute(s)
			assert.Equal(t, StatusNA, r.Status, p.Metadata().ID)
			assert.NotNil(t, r.Data)
			assert.Empty(t, r.Data, p.Metadata().ID)
		}
	}
}

func TestBuiltins_StatelessIgnoreConfig(t *testing.T) {
	for p, s := range builtins(nil, nil) {
		if configured(p) {
			continue
		}
		assert.NotEqual(t, StatusNA, p.Execute(s).Status, p.Metadata().ID)
	}
}

func TestBuiltins_NilSnapshotBeatsMissingConfig(t *testing.T) {
	p := NewQueueHighFlowProbe(nil, nil)
	assert.Equal(t, StatusInconclusive, p.Execute(nil).Status)
}

func TestProbe_ArticleAttached(t *testing.T) {
	kb := fakeKB{}
	kb.add(BlockedConnectionID, StatusUnhealthy, "blocked by a resource alarm")
	p := NewBlockedConnectionProbe(kb)

	r := p.Execute(&snapshot.ConnectionSnapshot{Identifier: "c1", State: snapshot.ConnectionBlocked})
	require.NotNil(t, r.Article)
	assert.Equal(t, "blocked by a resource alarm", r.Article.Reason)
	assert.Equal(t, StatusUnhealthy, r.Article.Status)

	r = p.Execute(&snapshot.ConnectionSnapshot{Identifier: "c1", State: snapshot.ConnectionRunning})
	assert.Nil(t, r.Article)
}

func TestProbe_ArticleForInconclusive(t *testing.T) {
	kb := fakeKB{}
	kb.add(DiskAlarmID, StatusInconclusive, "no disk data")
	r := NewDiskAlarmProbe(kb).Execute(nil)
	require.NotNil(t, r.Article)
	assert.Equal(t, "no disk data", r.Article.Reason)
}

func TestProbe_SubscribersSeeEveryResultInOrder(t *testing.T) {
	p := NewMemoryAlarmProbe(nil)
	var seen []string

	p.Subscribe(notify.ObserverFunc[Result](func(r Result) error {
		seen = append(seen, "first:"+r.Status.String())
		return nil
	}))
	p.Subscribe(notify.ObserverFunc[Result](func(r Result) error {
		seen = append(seen, "second:"+r.Status.String())
		return nil
	}))

	p.Execute(&snapshot.MemorySnapshot{AlarmInEffect: true})
	p.Execute(nil)

	assert.Equal(t, []string{
		"first:unhealthy", "second:unhealthy",
		"first:inconclusive", "second:inconclusive",
	}, seen)
}

func TestProbe_FailingSubscriberIsIsolated(t *testing.T) {
	p := NewDiskAlarmProbe(nil)
	var delivered int

	p.Subscribe(notify.ObserverFunc[Result](func(Result) error { return errors.New("sink down") }))
	p.Subscribe(notify.ObserverFunc[Result](func(Result) error { panic("sink exploded") }))
	p.Subscribe(notify.ObserverFunc[Result](func(Result) error {
		delivered++
		return nil
	}))

	r := p.Execute(&snapshot.DiskSnapshot{NodeIdentifier: "n1"})
	assert.Equal(t, StatusHealthy, r.Status)
	assert.Equal(t, 1, delivered)
}

func TestProbe_Unsubscribe(t *testing.T) {
	p := NewDiskAlarmProbe(nil)
	var delivered int
	sub := p.Subscribe(notify.ObserverFunc[Result](func(Result) error {
		delivered++
		return nil
	}))

	p.Execute(nil)
	sub.Unsubscribe()
	p.Execute(nil)
	assert.Equal(t, 1, delivered)
}

func TestResult_Value(t *testing.T) {
	r := NewChannelThrottlingProbe(nil).Execute(&snapshot.ChannelSnapshot{PrefetchCount: 4, UnacknowledgedMessages: 5})

	v, ok := r.Value("UnacknowledgedMessages")
	require.True(t, ok)
	assert.Equal(t, "5", v)

	_, ok = r.Value("Missing")
	assert.False(t, ok)
}
