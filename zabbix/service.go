package zabbix

import (
	"errors"
	"fmt"
)

// GetMetricData answers "metric X on host Y over window W, optionally
// reduced to a statistic". Domain conditions — bad window, unknown
// statistic, unknown or disabled host/item — come back inside the envelope;
// only infrastructure failures return a non-nil error.
func (s *Session) GetMetricData(hostname, metricName string, window TimeWindow, statistic string) (*MetricResponse, error) {
	// Fail fast, before any I/O.
	if window.From > window.To {
		return errorMetricResponse(
			"invalid time range: time_from must be less than or equal to time_to",
			hostname, metricName, UnknownUnit, statistic), nil
	}
	if statistic != "" && !IsValidStatistic(statistic) {
		return errorMetricResponse(
			fmt.Sprintf("invalid statistical measure: %s", statistic),
			hostname, metricName, UnknownUnit, statistic), nil
	}

	if err := s.ensureConnected(); err != nil {
		return nil, err
	}

	desc, err := s.resolveMetric(hostname, metricName)
	if err != nil {
		return s.recoverResolveError(err, hostname, metricName, statistic)
	}

	plan, statistic := s.planForDescriptor(desc, window, statistic)

	samples, err := s.executePlan(desc, plan, statistic)
	if err != nil {
		return nil, err
	}

	resp := &MetricResponse{
		Status:             StatusSuccess,
		Hostname:           hostname,
		MetricName:         metricName,
		Unit:               desc.Unit,
		StatisticalMeasure: statistic,
	}
	if statistic == "" {
		resp.Data = samples
		return resp, nil
	}

	result, err := Compute(samples, statistic)
	if err != nil {
		// Unreachable after the up-front validation, but keep the envelope
		// contract anyway.
		return errorMetricResponse(err.Error(), hostname, metricName, desc.Unit, statistic), nil
	}
	resp.Data = result.Value()
	return resp, nil
}

// recoverResolveError turns domain-level resolution failures into envelopes
// and lets infrastructure errors through.
func (s *Session) recoverResolveError(err error, hostname, metricName, statistic string) (*MetricResponse, error) {
	var notFound *NotFoundError
	var disabled *DisabledError
	var invalid *ValidationError
	switch {
	case errors.As(err, &notFound):
		return errorMetricResponse(notFound.Error(), hostname, metricName, UnknownUnit, statistic), nil
	case errors.As(err, &disabled):
		unit := disabled.Unit
		if unit == "" {
			unit = UnknownUnit
		}
		return errorMetricResponse(disabled.Error(), hostname, metricName, unit, statistic), nil
	case errors.As(err, &invalid):
		return errorMetricResponse(invalid.Error(), hostname, metricName, UnknownUnit, statistic), nil
	default:
		return nil, err
	}
}

// planForDescriptor builds the fetch plan for a resolved item. String-ish
// items have no rollups: they are served from history regardless of age, and
// the only reduction that means anything for them is "last" — anything else
// is dropped, matching the original layer.
func (s *Session) planForDescriptor(desc *MetricDescriptor, window TimeWindow, statistic string) ([]FetchRange, string) {
	if desc.TrendTable == "" {
		if statistic != "last" {
			statistic = ""
		}
		if window.From >= window.To {
			return nil, statistic
		}
		return []FetchRange{{Tier: TierHistory, From: window.From, To: window.To}}, statistic
	}
	return PlanFetch(window, s.now(), desc.HistoryDays, desc.TrendDays), statistic
}

// executePlan runs each sub-range against the adapter and concatenates, trend
// rows first so the sequence stays chronological.
func (s *Session) executePlan(desc *MetricDescriptor, plan []FetchRange, statistic string) ([]Sample, error) {
	samples := []Sample{}
	for _, r := range plan {
		q := RowQuery{ItemID: desc.ItemID, TimeFrom: r.From, TimeTo: r.To}
		switch r.Tier {
		case TierTrend:
			q.Table = desc.TrendTable
			q.ValueColumn = trendColumn(statistic)
		default:
			q.Table = desc.HistoryTable
		}
		rows, err := s.storage.FetchRows(q)
		if err != nil {
			return nil, err
		}
		samples = append(samples, rows...)
	}
	return samples, nil
}

// trendColumn picks which rolled-up column stands in for the raw value:
// the per-hour minimum for "min", maximum for "max", average otherwise.
func trendColumn(statistic string) string {
	switch statistic {
	case "min":
		return "value_min"
	case "max":
		return "value_max"
	default:
		return "value_avg"
	}
}

// GetHostStatus reports whether a host exists and is monitored.
func (s *Session) GetHostStatus(hostname string) (*HostStatusResponse, error) {
	if err := s.ensureConnected(); err != nil {
		return nil, err
	}

	host, err := s.storage.ResolveHost(hostname)
	if err != nil {
		return nil, err
	}
	if host == nil {
		return &HostStatusResponse{
			Status:   StatusError,
			Message:  (&NotFoundError{Kind: EntityHost, Name: hostname}).Error(),
			Hostname: hostname,
		}, nil
	}
	if !host.Enabled {
		return &HostStatusResponse{
			Status:   StatusError,
			Message:  (&DisabledError{Kind: EntityHost, Name: hostname}).Error(),
			HostID:   host.ID,
			Hostname: hostname,
		}, nil
	}
	return &HostStatusResponse{
		Status:   StatusSuccess,
		HostID:   host.ID,
		Hostname: hostname,
		Enabled:  true,
	}, nil
}
