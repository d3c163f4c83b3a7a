package zabbix

// GORM models for the subset of the Zabbix schema this layer reads. They are
// exported so tests and demos can build fixture databases with AutoMigrate;
// the adapter itself never writes through them.

// Host flag values: 0 = plain host, 4 = discovered host. Discovery
// prototypes (flags 1, 2) are never resolved.
const (
	HostFlagPlain      = 0
	HostFlagDiscovered = 4
)

// Status values shared by hosts, items and triggers: 0 = enabled.
const StatusEnabled = 0

type Host struct {
	HostID int64  `gorm:"column:hostid;primaryKey"`
	Host   string `gorm:"column:host"`
	Name   string `gorm:"column:name"`
	Status int    `gorm:"column:status"`
	Flags  int    `gorm:"column:flags"`
}

func (Host) TableName() string { return "hosts" }

type Item struct {
	ItemID    int64  `gorm:"column:itemid;primaryKey"`
	HostID    int64  `gorm:"column:hostid"`
	Name      string `gorm:"column:name"`
	History   string `gorm:"column:history"`
	Trends    string `gorm:"column:trends"`
	ValueType int    `gorm:"column:value_type"`
	Status    int    `gorm:"column:status"`
	Units     string `gorm:"column:units"`
}

func (Item) TableName() string { return "items" }

type HostGroup struct {
	GroupID int64  `gorm:"column:groupid;primaryKey"`
	Name    string `gorm:"column:name"`
}

func (HostGroup) TableName() string { return "hstgrp" }

type HostGroupMember struct {
	HostGroupID int64 `gorm:"column:hostgroupid;primaryKey"`
	HostID      int64 `gorm:"column:hostid"`
	GroupID     int64 `gorm:"column:groupid"`
}

func (HostGroupMember) TableName() string { return "hosts_groups" }

type Trigger struct {
	TriggerID   int64  `gorm:"column:triggerid;primaryKey"`
	Description string `gorm:"column:description"`
	Status      int    `gorm:"column:status"`
}

func (Trigger) TableName() string { return "triggers" }

// TriggerFunction links a trigger to the item it evaluates.
type TriggerFunction struct {
	FunctionID int64 `gorm:"column:functionid;primaryKey"`
	ItemID     int64 `gorm:"column:itemid"`
	TriggerID  int64 `gorm:"column:triggerid"`
}

func (TriggerFunction) TableName() string { return "functions" }

// Event object/value constants: trigger-sourced problem events carry
// object 0 and value 1.
const (
	EventObjectTrigger = 0
	EventValueProblem  = 1
)

type Event struct {
	EventID      int64  `gorm:"column:eventid;primaryKey"`
	Object       int    `gorm:"column:object"`
	ObjectID     int64  `gorm:"column:objectid"`
	Clock        int64  `gorm:"column:clock"`
	Value        int    `gorm:"column:value"`
	Acknowledged int    `gorm:"column:acknowledged"`
	Name         string `gorm:"column:name"`
}

func (Event) TableName() string { return "events" }

// EventRecovery maps a problem event to the event that resolved it.
type EventRecovery struct {
	EventID         int64 `gorm:"column:eventid;primaryKey"`
	RecoveryEventID int64 `gorm:"column:r_eventid"`
}

func (EventRecovery) TableName() string { return "event_recovery" }

// History tables. The float and uint variants are the only ones the
// statistics path reads; string/log/text history exists for the raw and
// "last" paths of string-typed items.

type History struct {
	ItemID int64   `gorm:"column:itemid"`
	Clock  int64   `gorm:"column:clock"`
	Value  float64 `gorm:"column:value"`
}

func (History) TableName() string { return "history" }

type HistoryUint struct {
	ItemID int64  `gorm:"column:itemid"`
	Clock  int64  `gorm:"column:clock"`
	Value  uint64 `gorm:"column:value"`
}

func (HistoryUint) TableName() string { return "history_uint" }

type HistoryStr struct {
	ItemID int64  `gorm:"column:itemid"`
	Clock  int64  `gorm:"column:clock"`
	Value  string `gorm:"column:value"`
}

func (HistoryStr) TableName() string { return "history_str" }

type Trend struct {
	ItemID   int64   `gorm:"column:itemid"`
	Clock    int64   `gorm:"column:clock"`
	Num      int     `gorm:"column:num"`
	ValueMin float64 `gorm:"column:value_min"`
	ValueAvg float64 `gorm:"column:value_avg"`
	ValueMax float64 `gorm:"column:value_max"`
}

func (Trend) TableName() string { return "trends" }

type TrendUint struct {
	ItemID   int64  `gorm:"column:itemid"`
	Clock    int64  `gorm:"column:clock"`
	Num      int    `gorm:"column:num"`
	ValueMin uint64 `gorm:"column:value_min"`
	ValueAvg uint64 `gorm:"column:value_avg"`
	ValueMax uint64 `gorm:"column:value_max"`
}

func (TrendUint) TableName() string { return "trends_uint" }

// SchemaModels lists every model, in an order safe for AutoMigrate.
// Fixture and demo code migrates all of them.
func SchemaModels() []any {
	return []any{
		&Host{}, &Item{}, &HostGroup{}, &HostGroupMember{},
		&Trigger{}, &TriggerFunction{}, &Event{}, &EventRecovery{},
		&History{}, &HistoryUint{}, &HistoryStr{}, &Trend{}, &TrendUint{},
	}
}
