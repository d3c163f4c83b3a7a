package zabbix

import "sort"

// defaultIssueLimit caps GetCommonIssues groups when no limit is given.
const defaultIssueLimit = 10

// AlertFilter narrows an alert query. Zero values mean "no filter"; set
// filters combine with logical AND. Limit of 0 returns all matches.
type AlertFilter struct {
	TimeFrom  int64
	TimeTo    int64
	Hostname  string
	HostGroup string
	Limit     int
}

// GetAlerts returns problem events newest-first, filtered by the given
// criteria. An unknown host group simply matches nothing.
func (s *Session) GetAlerts(filter AlertFilter) (*AlertsResponse, error) {
	if err := s.ensureConnected(); err != nil {
		return nil, err
	}

	alerts, err := s.storage.FetchAlerts()
	if err != nil {
		return nil, err
	}

	var groupMembers map[string]bool
	if filter.HostGroup != "" {
		names, err := s.storage.HostsInGroup(filter.HostGroup)
		if err != nil {
			return nil, err
		}
		groupMembers = make(map[string]bool, len(names))
		for _, n := range names {
			groupMembers[n] = true
		}
	}

	matched := make([]AlertRow, 0, len(alerts))
	for _, a := range alerts {
		if filter.TimeFrom != 0 && a.StartTime < filter.TimeFrom {
			continue
		}
		if filter.TimeTo != 0 && a.StartTime > filter.TimeTo {
			continue
		}
		if filter.Hostname != "" && a.Host != filter.Hostname {
			continue
		}
		if groupMembers != nil && !groupMembers[a.Host] {
			continue
		}
		matched = append(matched, a)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].StartTime > matched[j].StartTime
	})
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}

	return &AlertsResponse{Status: StatusSuccess, Data: matched}, nil
}

// GetCommonIssues groups the filtered alerts by event name, splits each group
// into acknowledged and unacknowledged counts, and returns the top groups by
// total count. filter.Limit caps groups (default 10); ties keep the order of
// first encounter. No matching alerts is an empty success, not an error.
func (s *Session) GetCommonIssues(filter AlertFilter) (*CommonIssuesResponse, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultIssueLimit
	}
	filter.Limit = 0 // the limit applies to groups, not the underlying alerts

	alerts, err := s.GetAlerts(filter)
	if err != nil {
		return nil, err
	}

	var order []string
	groups := make(map[string]*AlertSummaryRow)
	for _, a := range alerts.Data {
		g := groups[a.EventName]
		if g == nil {
			g = &AlertSummaryRow{EventName: a.EventName}
			groups[a.EventName] = g
			order = append(order, a.EventName)
		}
		g.TotalCount++
		if a.Acknowledged {
			g.AcknowledgedCount++
		} else {
			g.UnacknowledgedCount++
		}
	}

	rows := make([]AlertSummaryRow, 0, len(order))
	for _, name := range order {
		rows = append(rows, *groups[name])
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalCount > rows[j].TotalCount
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}

	message := "common issues retrieved successfully"
	if len(rows) == 0 {
		message = "no common issues found"
	}
	return &CommonIssuesResponse{Status: StatusSuccess, Message: message, Data: rows}, nil
}
