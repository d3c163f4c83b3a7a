package zabbix

import "fmt"

// Entity kinds carried by NotFoundError and DisabledError.
const (
	EntityHost = "host"
	EntityItem = "item"
)

// ParseError reports a duration string with no recognized unit tokens.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("no duration units in %q (expected digits followed by d, h, m or s)", e.Input)
}

// UnsupportedStatisticError reports an unrecognized statistic name.
type UnsupportedStatisticError struct {
	Op string
}

func (e *UnsupportedStatisticError) Error() string {
	return fmt.Sprintf("unsupported statistical measure: %s", e.Op)
}

// NotFoundError reports a host or item that matched nothing. It is recovered
// into an error envelope at the service boundary, never returned to API
// callers as a bare error.
type NotFoundError struct {
	Kind     string // EntityHost or EntityItem
	Name     string
	Hostname string // owning host when Kind == EntityItem
}

func (e *NotFoundError) Error() string {
	if e.Kind == EntityItem {
		return fmt.Sprintf("item %q not found for host %q", e.Name, e.Hostname)
	}
	return fmt.Sprintf("host %q not found", e.Name)
}

// DisabledError reports a host or item that matched but is administratively
// disabled. Distinct from NotFoundError so callers can tell a dead name from
// a muted one. Unit carries the item unit when it was already resolved.
type DisabledError struct {
	Kind     string
	Name     string
	Hostname string
	Unit     string
}

func (e *DisabledError) Error() string {
	if e.Kind == EntityItem {
		return fmt.Sprintf("item %q is disabled on host %q", e.Name, e.Hostname)
	}
	return fmt.Sprintf("host %q is disabled", e.Name)
}

// ValidationError reports bad input caught before any I/O: an unknown
// database driver, an inverted time window, a non-whitelisted table.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ConnectionError is the fatal infrastructure failure surfaced after the
// reconnect budget is spent. It is the one error class that crosses the
// service boundary as a Go error instead of an envelope.
type ConnectionError struct {
	Attempts int
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("database connection lost, reconnect failed after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// errorMetricResponse shapes a domain failure into the standard metric
// envelope, echoing the identifying fields of the request.
func errorMetricResponse(message, hostname, metricName, unit, statistic string) *MetricResponse {
	return &MetricResponse{
		Status:             StatusError,
		Message:            message,
		Hostname:           hostname,
		MetricName:         metricName,
		Unit:               unit,
		Data:               []Sample{},
		StatisticalMeasure: statistic,
	}
}
