package zabbix

import (
	"errors"
	"log"
	"time"
)

// stubStorage is an in-memory Storage for exercising service logic without a
// database. Rows are keyed by table name and pre-shaped; ValueColumn is
// recorded but not applied.
type stubStorage struct {
	hosts  []HostRecord
	items  map[int64]map[string]ItemRecord // hostID -> item name -> record
	rows   map[string]map[int64][]Sample   // table -> itemid -> samples
	alerts []AlertRow
	groups map[string][]string

	pingErr error
	queries []RowQuery
	closed  bool
}

func (st *stubStorage) ResolveHost(hostname string) (*HostRecord, error) {
	for _, h := range st.hosts {
		if h.Name == hostname {
			rec := h
			return &rec, nil
		}
	}
	return nil, nil
}

func (st *stubStorage) ResolveItem(hostID int64, itemName string) (*ItemRecord, error) {
	if rec, ok := st.items[hostID][itemName]; ok {
		return &rec, nil
	}
	return nil, nil
}

func (st *stubStorage) FetchRows(q RowQuery) ([]Sample, error) {
	st.queries = append(st.queries, q)
	var out []Sample
	for _, s := range st.rows[q.Table][q.ItemID] {
		if s.Clock >= q.TimeFrom && s.Clock <= q.TimeTo {
			out = append(out, s)
		}
	}
	return out, nil
}

func (st *stubStorage) FetchAlerts() ([]AlertRow, error) {
	return append([]AlertRow(nil), st.alerts...), nil
}

func (st *stubStorage) HostsInGroup(group string) ([]string, error) {
	return st.groups[group], nil
}

func (st *stubStorage) AllHosts() ([]HostRecord, error) {
	return append([]HostRecord(nil), st.hosts...), nil
}

func (st *stubStorage) Ping() error { return st.pingErr }

func (st *stubStorage) Close() error {
	st.closed = true
	return nil
}

// stubSession wires a stub storage into a session with a pinned clock and a
// retry policy that fails fast (the stub can't be re-opened, so a dead ping
// must exhaust quickly).
func stubSession(st *stubStorage, now int64) *Session {
	return &Session{
		cfg: applyDefaults(Config{
			Database: DatabaseConfig{Driver: "sqlite", DSN: "file::memory:"},
			Retry:    RetryConfig{Attempts: 1, Backoff: time.Millisecond, MaxBackoff: time.Millisecond},
		}),
		storage: st,
		logger:  log.Default(),
		now:     func() int64 { return now },
	}
}

var errStubDown = errors.New("stub connection down")
