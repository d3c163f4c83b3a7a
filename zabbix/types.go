package zabbix

// Envelope status values. Every query operation answers with one of these;
// domain conditions (not found, disabled, bad statistic) never surface as
// Go errors from the service methods.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// UnknownUnit fills the unit field of error envelopes produced before
// resolution reached the item row.
const UnknownUnit = "unknown"

// Sample is one timestamped measurement as returned by the storage adapter.
// Clock is Unix seconds; sequences are chronological and may contain
// duplicate clocks (distinct measurements can share a second).
type Sample struct {
	Clock int64   `json:"clock"`
	Value float64 `json:"value"`
}

// TimeWindow is an inclusive query window. From == To is a legal zero-width
// window that yields no samples.
type TimeWindow struct {
	From int64 `json:"time_from"`
	To   int64 `json:"time_to"`
}

// MetricDescriptor is the fully resolved identity of one item on one host.
// It is rebuilt on every call; retention changes in the database take effect
// immediately.
type MetricDescriptor struct {
	ItemID       int64   `json:"itemid"`
	HostID       int64   `json:"hostid"`
	Hostname     string  `json:"hostname"`
	MetricName   string  `json:"metric_name"`
	Unit         string  `json:"unit"`
	ValueType    int     `json:"value_type"`
	HistoryDays  float64 `json:"history_days"`
	TrendDays    float64 `json:"trend_days"`
	HistoryTable string  `json:"history_table"`
	// TrendTable is empty for string-ish value types, which have no rollups.
	TrendTable string `json:"trend_table,omitempty"`
}

// MetricResponse is the envelope for GetMetricData. Data holds the raw
// sample sequence, or the statistic result when one was requested: a sample
// list for min/max/last, an integer for count, a float for the rest.
type MetricResponse struct {
	Status             string `json:"status"`
	Message            string `json:"message,omitempty"`
	Hostname           string `json:"hostname"`
	MetricName         string `json:"metric_name"`
	Unit               string `json:"unit"`
	Data               any    `json:"data"`
	StatisticalMeasure string `json:"statistical_measure,omitempty"`
}

// HostStatusResponse is the envelope for GetHostStatus.
type HostStatusResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
	HostID   int64  `json:"hostid,omitempty"`
	Hostname string `json:"hostname"`
	Enabled  bool   `json:"enabled"`
}

// AlertRow is one problem event joined with its trigger, host and (when
// recovered) recovery event. EndTime falls back to the query time while the
// problem is still open.
type AlertRow struct {
	Host            string `json:"host"`
	TriggerName     string `json:"trigger_name"`
	EventName       string `json:"event_name"`
	EventID         int64  `json:"eventid"`
	Acknowledged    bool   `json:"acknowledged"`
	StartTime       int64  `json:"start_time"`
	EndTime         int64  `json:"end_time"`
	Duration        int64  `json:"duration"`
	RecoveryEventID int64  `json:"recovery_eventid,omitempty"`
}

// AlertsResponse is the envelope for GetAlerts.
type AlertsResponse struct {
	Status  string     `json:"status"`
	Message string     `json:"message,omitempty"`
	Data    []AlertRow `json:"data"`
}

// AlertSummaryRow is one event-name group in a common-issues summary.
// AcknowledgedCount + UnacknowledgedCount always equals TotalCount.
type AlertSummaryRow struct {
	EventName           string `json:"event_name"`
	TotalCount          int    `json:"total_count"`
	AcknowledgedCount   int    `json:"acknowledged_count"`
	UnacknowledgedCount int    `json:"unacknowledged_count"`
}

// CommonIssuesResponse is the envelope for GetCommonIssues.
type CommonIssuesResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Data    []AlertSummaryRow `json:"data"`
}

// HostsResponse is the envelope for GetHostByGroup.
type HostsResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message,omitempty"`
	Group   string   `json:"group"`
	Data    []string `json:"data"`
}

// HostRank is one host's position when ranking hosts by a metric statistic.
type HostRank struct {
	Hostname string  `json:"hostname"`
	Value    float64 `json:"value"`
	Unit     string  `json:"unit"`
	Samples  int     `json:"samples"`
}

// HostRankResponse is the envelope for GetHostByMetric.
type HostRankResponse struct {
	Status             string     `json:"status"`
	Message            string     `json:"message,omitempty"`
	MetricName         string     `json:"metric_name"`
	StatisticalMeasure string     `json:"statistical_measure"`
	Data               []HostRank `json:"data"`
}
