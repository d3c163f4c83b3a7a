package zabbix

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Table whitelists. Table names reach SQL verbatim, so nothing outside these
// sets may pass through FetchRows.
var (
	validHistoryTables = map[string]bool{
		"history":      true,
		"history_str":  true,
		"history_log":  true,
		"history_uint": true,
		"history_text": true,
	}
	validTrendTables = map[string]bool{
		"trends":      true,
		"trends_uint": true,
	}
	validTrendColumns = map[string]bool{
		"value_min": true,
		"value_avg": true,
		"value_max": true,
	}
)

// gormStorage is the GORM-backed Storage implementation.
type gormStorage struct {
	db    *gorm.DB
	sqlDB *sql.DB
}

// openStorage connects to the configured database. The driver name was
// validated up front; an unknown one here is still rejected in case the
// adapter is opened directly.
func openStorage(cfg DatabaseConfig) (Storage, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, &ValidationError{Msg: fmt.Sprintf("unknown database driver %q", cfg.Driver)}
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access connection pool: %w", err)
	}
	return &gormStorage{db: db, sqlDB: sqlDB}, nil
}

func (g *gormStorage) ResolveHost(hostname string) (*HostRecord, error) {
	var h Host
	err := g.db.
		Where("host = ? AND flags IN (?, ?)", hostname, HostFlagPlain, HostFlagDiscovered).
		Take(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve host %q: %w", hostname, err)
	}
	return &HostRecord{ID: h.HostID, Name: h.Host, Enabled: h.Status == StatusEnabled}, nil
}

func (g *gormStorage) ResolveItem(hostID int64, itemName string) (*ItemRecord, error) {
	var it Item
	err := g.db.
		Where("hostid = ? AND name = ?", hostID, itemName).
		Take(&it).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve item %q: %w", itemName, err)
	}
	return &ItemRecord{
		ID:        it.ItemID,
		HostID:    it.HostID,
		Name:      it.Name,
		Units:     it.Units,
		History:   it.History,
		Trends:    it.Trends,
		ValueType: it.ValueType,
		Enabled:   it.Status == StatusEnabled,
	}, nil
}

func (g *gormStorage) FetchRows(q RowQuery) ([]Sample, error) {
	column := "value"
	switch {
	case validHistoryTables[q.Table]:
	case validTrendTables[q.Table]:
		column = q.ValueColumn
		if column == "" {
			column = "value_avg"
		}
		if !validTrendColumns[column] {
			return nil, &ValidationError{Msg: fmt.Sprintf("invalid trend value column %q", q.ValueColumn)}
		}
	default:
		return nil, &ValidationError{Msg: fmt.Sprintf("invalid table name %q", q.Table)}
	}

	var rows []Sample
	err := g.db.
		Table(q.Table).
		Select(fmt.Sprintf("clock, %s AS value", column)).
		Where("itemid = ? AND clock BETWEEN ? AND ?", q.ItemID, q.TimeFrom, q.TimeTo).
		Order("clock ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fetch %s rows for item %d: %w", q.Table, q.ItemID, err)
	}
	return rows, nil
}

// alertScan is the raw join row; recovery columns are NULL while a problem
// is still open.
type alertScan struct {
	Host            string
	TriggerName     string
	EventName       string
	EventID         int64
	Acknowledged    int
	StartTime       int64
	RecoveryEventID sql.NullInt64
	RecoveryClock   sql.NullInt64
}

func (g *gormStorage) FetchAlerts() ([]AlertRow, error) {
	var raw []alertScan
	err := g.db.
		Table("events e").
		Select("h.host AS host, t.description AS trigger_name, e.name AS event_name, "+
			"e.eventid AS event_id, e.acknowledged AS acknowledged, e.clock AS start_time, "+
			"er.eventid AS recovery_event_id, er.clock AS recovery_clock").
		Joins("JOIN triggers t ON t.triggerid = e.objectid AND e.object = ? AND e.value = ? AND t.status = ?",
			EventObjectTrigger, EventValueProblem, StatusEnabled).
		Joins("JOIN functions f ON f.triggerid = t.triggerid").
		Joins("JOIN items i ON i.itemid = f.itemid AND i.status = ?", StatusEnabled).
		Joins("JOIN hosts h ON h.hostid = i.hostid AND h.status = ? AND h.flags IN (?, ?)",
			StatusEnabled, HostFlagPlain, HostFlagDiscovered).
		Joins("LEFT JOIN event_recovery erc ON erc.eventid = e.eventid").
		Joins("LEFT JOIN events er ON er.eventid = erc.r_eventid").
		Distinct().
		Scan(&raw).Error
	if err != nil {
		return nil, fmt.Errorf("fetch alerts: %w", err)
	}

	now := time.Now().Unix()
	alerts := make([]AlertRow, 0, len(raw))
	for _, r := range raw {
		end := now
		var recoveryID int64
		if r.RecoveryClock.Valid {
			end = r.RecoveryClock.Int64
			recoveryID = r.RecoveryEventID.Int64
		}
		alerts = append(alerts, AlertRow{
			Host:            r.Host,
			TriggerName:     r.TriggerName,
			EventName:       r.EventName,
			EventID:         r.EventID,
			Acknowledged:    r.Acknowledged == 1,
			StartTime:       r.StartTime,
			EndTime:         end,
			Duration:        end - r.StartTime,
			RecoveryEventID: recoveryID,
		})
	}
	return alerts, nil
}

func (g *gormStorage) HostsInGroup(group string) ([]string, error) {
	var names []string
	err := g.db.
		Table("hstgrp g").
		Joins("JOIN hosts_groups hg ON hg.groupid = g.groupid").
		Joins("JOIN hosts h ON h.hostid = hg.hostid").
		Where("g.name = ?", group).
		Order("h.host ASC").
		Pluck("h.host", &names).Error
	if err != nil {
		return nil, fmt.Errorf("fetch hosts in group %q: %w", group, err)
	}
	return names, nil
}

func (g *gormStorage) AllHosts() ([]HostRecord, error) {
	var hosts []Host
	err := g.db.
		Where("flags IN (?, ?)", HostFlagPlain, HostFlagDiscovered).
		Order("host ASC").
		Find(&hosts).Error
	if err != nil {
		return nil, fmt.Errorf("fetch hosts: %w", err)
	}
	out := make([]HostRecord, 0, len(hosts))
	for _, h := range hosts {
		out = append(out, HostRecord{ID: h.HostID, Name: h.Host, Enabled: h.Status == StatusEnabled})
	}
	return out, nil
}

func (g *gormStorage) Ping() error { return g.sqlDB.Ping() }

func (g *gormStorage) Close() error { return g.sqlDB.Close() }
