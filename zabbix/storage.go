package zabbix

// HostRecord is a host row as the adapter resolves it.
type HostRecord struct {
	ID      int64
	Name    string
	Enabled bool
}

// ItemRecord is an item row as the adapter resolves it. History and Trends
// are the raw retention strings ("31d", "365d") straight from the schema.
type ItemRecord struct {
	ID        int64
	HostID    int64
	Name      string
	Units     string
	History   string
	Trends    string
	ValueType int
	Enabled   bool
}

// RowQuery is the logical query descriptor handed to the adapter: table,
// item, inclusive clock bounds. No SQL crosses this boundary.
type RowQuery struct {
	Table    string
	ItemID   int64
	TimeFrom int64
	TimeTo   int64
	// ValueColumn picks the rolled-up column on trend tables (value_min,
	// value_avg or value_max). Ignored for history tables.
	ValueColumn string
}

// Storage is the adapter every service talks through. Implementations block;
// callers wanting parallelism open independent sessions.
//
// ResolveHost and ResolveItem return (nil, nil) for no match — a missing row
// is a domain condition, not an adapter failure.
type Storage interface {
	ResolveHost(hostname string) (*HostRecord, error)
	ResolveItem(hostID int64, itemName string) (*ItemRecord, error)

	// FetchRows returns samples ordered by clock ascending.
	FetchRows(q RowQuery) ([]Sample, error)

	// FetchAlerts returns every active-problem event joined with trigger,
	// host and recovery data, for enabled hosts and items only.
	FetchAlerts() ([]AlertRow, error)

	// HostsInGroup returns the technical host names in a named group,
	// empty (not an error) for an unknown or empty group.
	HostsInGroup(group string) ([]string, error)

	// AllHosts returns every real (non-discovery-prototype) host.
	AllHosts() ([]HostRecord, error)

	Ping() error
	Close() error
}
