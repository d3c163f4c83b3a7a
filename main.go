package main

import (
	"log"
	"time"

	"github.com/Kartik240803/zabbix/zabbix"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// Demo server: seeds an in-memory SQLite database with a small Zabbix-shaped
// dataset and serves the query API on :8080.
func main() {
	const dsn = "file::memory:?cache=shared"

	if err := seed(dsn); err != nil {
		log.Fatalf("failed to seed demo database: %v", err)
	}

	cfg := zabbix.Config{
		Database: zabbix.DatabaseConfig{Driver: "sqlite", DSN: dsn},
		Stream:   zabbix.StreamConfig{Enabled: true, PollInterval: 5 * time.Second},
		DevMode:  true,
	}

	session, err := zabbix.NewSession(cfg)
	if err != nil {
		log.Fatalf("failed to open session: %v", err)
	}
	defer session.Close()

	router := gin.Default()
	hub, err := zabbix.Mount(router, session, cfg)
	if err != nil {
		log.Fatalf("failed to mount API: %v", err)
	}
	if hub != nil {
		defer hub.Stop()
	}

	log.Println("Starting server on :8080")
	log.Println("Try: curl 'http://localhost:8080/zabbix/api/metrics/data?hostname=web-01&metric=CPU%20utilization&time_from=0&time_to=2000000000&statistic=mean'")
	if err := router.Run(":8080"); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

func seed(dsn string) error {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(zabbix.SchemaModels()...); err != nil {
		return err
	}

	now := time.Now().Unix()
	db.Create(&zabbix.Host{HostID: 1, Host: "web-01", Name: "web-01", Status: 0, Flags: 0})
	db.Create(&zabbix.Host{HostID: 2, Host: "web-02", Name: "web-02", Status: 0, Flags: 0})
	db.Create(&zabbix.HostGroup{GroupID: 1, Name: "Web servers"})
	db.Create(&zabbix.HostGroupMember{HostGroupID: 1, HostID: 1, GroupID: 1})
	db.Create(&zabbix.HostGroupMember{HostGroupID: 2, HostID: 2, GroupID: 1})

	db.Create(&zabbix.Item{ItemID: 10, HostID: 1, Name: "CPU utilization", History: "31d", Trends: "365d", ValueType: 0, Status: 0, Units: "%"})
	db.Create(&zabbix.Item{ItemID: 11, HostID: 2, Name: "CPU utilization", History: "31d", Trends: "365d", ValueType: 0, Status: 0, Units: "%"})

	for i := int64(0); i < 60; i++ {
		clock := now - i*60
		db.Create(&zabbix.History{ItemID: 10, Clock: clock, Value: 40 + float64(i%7)})
		db.Create(&zabbix.History{ItemID: 11, Clock: clock, Value: 55 + float64(i%5)})
	}

	db.Create(&zabbix.Trigger{TriggerID: 100, Description: "High CPU on {HOST.NAME}", Status: 0})
	db.Create(&zabbix.TriggerFunction{FunctionID: 200, ItemID: 10, TriggerID: 100})
	db.Create(&zabbix.Event{EventID: 1000, Object: 0, ObjectID: 100, Clock: now - 3600, Value: 1, Acknowledged: 0, Name: "High CPU on web-01"})

	return nil
}
