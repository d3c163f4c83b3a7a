package zabbix

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alertFixture() []AlertRow {
	base := int64(1_750_000_000)
	mk := func(id int64, host, name string, start int64, acked bool) AlertRow {
		return AlertRow{
			Host: host, TriggerName: name + " trigger", EventName: name,
			EventID: id, Acknowledged: acked, StartTime: start,
			EndTime: start + 60, Duration: 60,
		}
	}
	return []AlertRow{
		mk(1, "web-01", "High CPU", base-100, false),
		mk(2, "web-01", "High CPU", base-200, true),
		mk(3, "web-02", "High CPU", base-300, false),
		mk(4, "web-02", "Low disk space", base-400, true),
		mk(5, "db-01", "Low disk space", base-500, false),
		mk(6, "db-01", "Replication lag", base-600, false),
		mk(7, "web-01", "Agent unreachable", base-700, false),
		mk(8, "web-02", "Swap in use", base-800, true),
	}
}

func alertTestSession() (*Session, *stubStorage) {
	st := &stubStorage{
		alerts: alertFixture(),
		groups: map[string][]string{"Web servers": {"web-01", "web-02"}},
	}
	return stubSession(st, time.Now().Unix()), st
}

func TestGetAlerts_NewestFirst(t *testing.T) {
	s, _ := alertTestSession()

	resp, err := s.GetAlerts(AlertFilter{})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, resp.Status)
	require.Len(t, resp.Data, 8)
	for i := 1; i < len(resp.Data); i++ {
		assert.GreaterOrEqual(t, resp.Data[i-1].StartTime, resp.Data[i].StartTime)
	}
}

func TestGetAlerts_FiltersCombineWithAND(t *testing.T) {
	s, _ := alertTestSession()
	base := int64(1_750_000_000)

	resp, err := s.GetAlerts(AlertFilter{
		TimeFrom: base - 450,
		TimeTo:   base - 150,
		Hostname: "web-02",
	})
	require.NoError(t, err)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, int64(3), resp.Data[0].EventID)
	assert.Equal(t, int64(4), resp.Data[1].EventID)
}

func TestGetAlerts_HostGroupFilter(t *testing.T) {
	s, _ := alertTestSession()

	resp, err := s.GetAlerts(AlertFilter{HostGroup: "Web servers"})
	require.NoError(t, err)
	require.Len(t, resp.Data, 6)
	for _, a := range resp.Data {
		assert.NotEqual(t, "db-01", a.Host)
	}
}

func TestGetAlerts_UnknownGroupMatchesNothing(t *testing.T) {
	s, _ := alertTestSession()

	resp, err := s.GetAlerts(AlertFilter{HostGroup: "No such group"})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, resp.Status)
	assert.Empty(t, resp.Data)
}

func TestGetAlerts_LimitAppliesAfterOrdering(t *testing.T) {
	s, _ := alertTestSession()

	resp, err := s.GetAlerts(AlertFilter{Limit: 3})
	require.NoError(t, err)
	require.Len(t, resp.Data, 3)
	// The three most recent events.
	assert.Equal(t, int64(1), resp.Data[0].EventID)
	assert.Equal(t, int64(2), resp.Data[1].EventID)
	assert.Equal(t, int64(3), resp.Data[2].EventID)
}

func TestGetCommonIssues_GroupsAndCounts(t *testing.T) {
	s, _ := alertTestSession()

	resp, err := s.GetCommonIssues(AlertFilter{})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, resp.Status)
	require.Len(t, resp.Data, 5)

	top := resp.Data[0]
	assert.Equal(t, "High CPU", top.EventName)
	assert.Equal(t, 3, top.TotalCount)
	assert.Equal(t, 1, top.AcknowledgedCount)
	assert.Equal(t, 2, top.UnacknowledgedCount)

	for _, g := range resp.Data {
		assert.Equal(t, g.TotalCount, g.AcknowledgedCount+g.UnacknowledgedCount,
			"ack/unack split must sum to total for %s", g.EventName)
	}
	for i := 1; i < len(resp.Data); i++ {
		assert.GreaterOrEqual(t, resp.Data[i-1].TotalCount, resp.Data[i].TotalCount)
	}
}

func TestGetCommonIssues_LimitTruncatesGroups(t *testing.T) {
	s, _ := alertTestSession()

	resp, err := s.GetCommonIssues(AlertFilter{Limit: 3})
	require.NoError(t, err)
	require.Len(t, resp.Data, 3)
	assert.Equal(t, "High CPU", resp.Data[0].EventName)
	assert.Equal(t, "Low disk space", resp.Data[1].EventName)
	// Singleton groups tie at 1; first encountered (newest alert) wins.
	assert.Equal(t, "Replication lag", resp.Data[2].EventName)
}

func TestGetCommonIssues_EmptyIsSuccess(t *testing.T) {
	st := &stubStorage{}
	s := stubSession(st, time.Now().Unix())

	resp, err := s.GetCommonIssues(AlertFilter{})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, resp.Status)
	assert.Empty(t, resp.Data)
	assert.Equal(t, "no common issues found", resp.Message)
}
