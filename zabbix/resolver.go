package zabbix

// storageTables maps an item's value_type to its storage tables. String, log
// and text items have no trend rollups.
var storageTables = map[int]struct{ history, trends string }{
	0: {"history", "trends"},
	1: {"history_str", ""},
	2: {"history_log", ""},
	3: {"history_uint", "trends_uint"},
	4: {"history_text", ""},
}

// resolveMetric maps a hostname+metric pair to a full descriptor. Precedence
// follows the original layer: an unknown item is reported even when its host
// is disabled, so callers learn about dead names first.
//
// Returned errors are NotFoundError, DisabledError, ValidationError (item
// with an unmapped value_type), or an infrastructure error from the adapter.
func (s *Session) resolveMetric(hostname, metricName string) (*MetricDescriptor, error) {
	host, err := s.storage.ResolveHost(hostname)
	if err != nil {
		return nil, err
	}
	if host == nil {
		return nil, &NotFoundError{Kind: EntityHost, Name: hostname}
	}

	item, err := s.storage.ResolveItem(host.ID, metricName)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &NotFoundError{Kind: EntityItem, Name: metricName, Hostname: hostname}
	}

	if !host.Enabled {
		return nil, &DisabledError{Kind: EntityHost, Name: hostname}
	}
	if !item.Enabled {
		return nil, &DisabledError{Kind: EntityItem, Name: metricName, Hostname: hostname, Unit: item.Units}
	}

	return describeItem(hostname, item)
}

// describeItem fills a descriptor from an item row, parsing the retention
// strings. Unitless retention ("0", raw seconds on pre-5.4 items) parses to
// zero days rather than failing the whole query.
func describeItem(hostname string, item *ItemRecord) (*MetricDescriptor, error) {
	tables, ok := storageTables[item.ValueType]
	if !ok {
		return nil, &ValidationError{Msg: "item " + item.Name + " has unsupported value type"}
	}

	historyDays, err := ParseDays(item.History)
	if err != nil {
		historyDays = 0
	}
	var trendDays float64
	if tables.trends != "" {
		trendDays, err = ParseDays(item.Trends)
		if err != nil {
			trendDays = 0
		}
	}

	return &MetricDescriptor{
		ItemID:       item.ID,
		HostID:       item.HostID,
		Hostname:     hostname,
		MetricName:   item.Name,
		Unit:         item.Units,
		ValueType:    item.ValueType,
		HistoryDays:  historyDays,
		TrendDays:    trendDays,
		HistoryTable: tables.history,
		TrendTable:   tables.trends,
	}, nil
}
