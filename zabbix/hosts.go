package zabbix

import (
	"fmt"
	"sort"
)

// AllGroups is the case-sensitive sentinel that makes GetHostByGroup return
// every monitored host irrespective of group membership.
const AllGroups = "all"

// GetHostByGroup lists the technical host names in a group. An unknown or
// empty group is an empty success, not an error.
func (s *Session) GetHostByGroup(hostGroup string) (*HostsResponse, error) {
	if err := s.ensureConnected(); err != nil {
		return nil, err
	}

	var names []string
	if hostGroup == AllGroups {
		hosts, err := s.storage.AllHosts()
		if err != nil {
			return nil, err
		}
		for _, h := range hosts {
			names = append(names, h.Name)
		}
	} else {
		var err error
		names, err = s.storage.HostsInGroup(hostGroup)
		if err != nil {
			return nil, err
		}
	}
	if names == nil {
		names = []string{}
	}
	return &HostsResponse{Status: StatusSuccess, Group: hostGroup, Data: names}, nil
}

// GetHostByMetric ranks hosts by a statistic of the named metric over the
// window, highest first. Hosts without the metric, with it disabled, or with
// no samples in the window are skipped. For sample-shaped statistics
// (min/max/last) the first sample of the subsequence is the sort value.
func (s *Session) GetHostByMetric(metricName, statistic string, window TimeWindow, limit int) (*HostRankResponse, error) {
	if !IsValidStatistic(statistic) {
		return &HostRankResponse{
			Status:             StatusError,
			Message:            fmt.Sprintf("invalid statistical measure: %s", statistic),
			MetricName:         metricName,
			StatisticalMeasure: statistic,
			Data:               []HostRank{},
		}, nil
	}
	if window.From > window.To {
		return &HostRankResponse{
			Status:             StatusError,
			Message:            "invalid time range: time_from must be less than or equal to time_to",
			MetricName:         metricName,
			StatisticalMeasure: statistic,
			Data:               []HostRank{},
		}, nil
	}

	if err := s.ensureConnected(); err != nil {
		return nil, err
	}

	hosts, err := s.storage.AllHosts()
	if err != nil {
		return nil, err
	}

	now := s.now()
	ranks := []HostRank{}
	for _, host := range hosts {
		if !host.Enabled {
			continue
		}
		item, err := s.storage.ResolveItem(host.ID, metricName)
		if err != nil {
			return nil, err
		}
		if item == nil || !item.Enabled {
			continue
		}
		desc, err := describeItem(host.Name, item)
		if err != nil {
			continue // unmapped value type, nothing to rank
		}
		// Numeric reductions mean nothing for string-typed items.
		if desc.TrendTable == "" && statistic != "last" {
			continue
		}

		var plan []FetchRange
		if desc.TrendTable == "" {
			if window.From < window.To {
				plan = []FetchRange{{Tier: TierHistory, From: window.From, To: window.To}}
			}
		} else {
			plan = PlanFetch(window, now, desc.HistoryDays, desc.TrendDays)
		}

		samples, err := s.executePlan(desc, plan, statistic)
		if err != nil {
			return nil, err
		}
		result, err := Compute(samples, statistic)
		if err != nil || result.Empty {
			continue
		}
		ranks = append(ranks, HostRank{
			Hostname: host.Name,
			Value:    representativeValue(result),
			Unit:     desc.Unit,
			Samples:  len(samples),
		})
	}

	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Value > ranks[j].Value
	})
	if limit > 0 && len(ranks) > limit {
		ranks = ranks[:limit]
	}

	return &HostRankResponse{
		Status:             StatusSuccess,
		MetricName:         metricName,
		StatisticalMeasure: statistic,
		Data:               ranks,
	}, nil
}

// representativeValue reduces a statistic result to one sortable scalar.
func representativeValue(r StatResult) float64 {
	switch r.Kind {
	case StatSamples:
		return r.Samples[0].Value
	case StatCount:
		return float64(r.Count)
	default:
		return r.Scalar
	}
}
