package knowledge

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/brokerdiag/probe"
)

func TestBase_AddAndTryGet(t *testing.T) {
	b := New()
	require.NoError(t, b.Add(probe.Article{ProbeID: "P", Status: probe.StatusWarning, Reason: "r"}))

	a, ok := b.TryGet("P", probe.StatusWarning)
	require.True(t, ok)
	assert.Equal(t, "r", a.Reason)

	_, ok = b.TryGet("P", probe.StatusHealthy)
	assert.False(t, ok)
	assert.Equal(t, 1, b.Len())
}

func TestBase_AddReplaces(t *testing.T) {
	b := New()
	require.NoError(t, b.Add(probe.Article{ProbeID: "P", Reason: "old"}))
	require.NoError(t, b.Add(probe.Article{ProbeID: "P", Reason: "new"}))

	a, _ := b.TryGet("P", probe.StatusHealthy)
	assert.Equal(t, "new", a.Reason)
	assert.Equal(t, 1, b.Len())
}

func TestBase_AddRequiresProbe(t *testing.T) {
	assert.ErrorIs(t, New().Add(probe.Article{}), ErrMissingProbe)
}

func TestBase_ConcurrentAccess(t *testing.T) {
	b := Default()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = b.TryGet(probe.DiskAlarmID, probe.StatusUnhealthy)
		}()
		go func() {
			defer wg.Done()
			_ = b.Add(probe.Article{ProbeID: "Custom", Status: probe.StatusWarning})
		}()
	}
	wg.Wait()
	_, ok := b.TryGet("Custom", probe.StatusWarning)
	assert.True(t, ok)
}

func TestDefault_CoversUnhealthyVerdicts(t *testing.T) {
	b := Default()
	ids := []string{
		probe.BlockedConnectionID, probe.ChannelLimitReachedID, probe.ChannelThrottlingID,
		probe.UnroutableMessageID, probe.MessagePagingID, probe.QueueNoFlowID,
		probe.RedeliveredMessagesID, probe.ConsumerUtilizationID, probe.QueueHighFlowID,
		probe.QueueLowFlowID, probe.NetworkPartitionID, probe.AvailableCPUCoresID,
		probe.DiskAlarmID, probe.MemoryAlarmID, probe.FileDescriptorThrottlingID,
		probe.SocketDescriptorThrottlingID, probe.RuntimeProcessLimitID,
	}
	for _, id := range ids {
		a, ok := b.TryGet(id, probe.StatusUnhealthy)
		if assert.True(t, ok, id) {
			assert.NotEmpty(t, a.Reason, id)
			assert.NotEmpty(t, a.Remediation, id)
		}
	}
}

func TestLoad(t *testing.T) {
	doc := `
articles:
  - probe: BlockedConnectionProbe
    status: unhealthy
    reason: blocked
    remediation: unblock
  - probe: QueueLowFlowProbe
    status: N/A
    reason: no thresholds configured
`
	b, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 2, b.Len())

	a, ok := b.TryGet(probe.BlockedConnectionID, probe.StatusUnhealthy)
	require.True(t, ok)
	assert.Equal(t, "unblock", a.Remediation)

	_, ok = b.TryGet(probe.QueueLowFlowID, probe.StatusNA)
	assert.True(t, ok)
}

func TestLoad_Empty(t *testing.T) {
	b, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, b.Len())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	b := Default()
	n := b.Len()
	require.NoError(t, b.Load(strings.NewReader(`
articles:
  - probe: DiskAlarmProbe
    status: unhealthy
    reason: site specific
`)))
	a, _ := b.TryGet(probe.DiskAlarmID, probe.StatusUnhealthy)
	assert.Equal(t, "site specific", a.Reason)
	assert.Equal(t, n, b.Len())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"missing probe", "articles:\n  - status: healthy\n", ErrMissingProbe},
		{"missing status", "articles:\n  - probe: P\n", ErrMissingStatus},
		{"unknown status", "articles:\n  - probe: P\n    status: degraded\n", probe.ErrUnknownStatus},
		{"duplicate", "articles:\n  - probe: P\n    status: healthy\n  - probe: P\n    status: healthy\n", ErrDuplicateArticle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad_UnknownField(t *testing.T) {
	_, err := Load(strings.NewReader("articles:\n  - probe: P\n    status: healthy\n    severity: high\n"))
	assert.Error(t, err)
}

func TestLoad_InvalidDocumentAddsNothing(t *testing.T) {
	b := New()
	err := b.Load(strings.NewReader("articles:\n  - probe: P\n    status: healthy\n  - status: warning\n"))
	require.Error(t, err)
	assert.Zero(t, b.Len())
}
