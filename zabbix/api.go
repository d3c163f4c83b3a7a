package zabbix

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Mount registers the query API on the given router under cfg.Prefix and
// returns the live alert hub when streaming is enabled (nil otherwise). The
// hub owns its own session — its poller must not contend with request
// handlers for the caller's connection — and must be stopped by the caller
// on shutdown.
//
// Usage:
//
//	s, _ := zabbix.NewSession(cfg)
//	hub, _ := zabbix.Mount(router, s, cfg)
//	// GET /zabbix/api/metrics/data?hostname=web-01&metric=CPU+utilization&...
func Mount(router *gin.Engine, s *Session, cfg Config) (*AlertHub, error) {
	cfg = applyDefaults(cfg)
	api := router.Group(cfg.Prefix + "/api")

	api.GET("/health", healthHandler(s))
	api.GET("/metrics/data", metricDataHandler(s))
	api.GET("/hosts", hostsByGroupHandler(s))
	api.GET("/hosts/by-metric", hostsByMetricHandler(s))
	api.GET("/hosts/:hostname/status", hostStatusHandler(s))
	api.GET("/alerts", alertsHandler(s))
	api.GET("/alerts/common", commonIssuesHandler(s))

	if !cfg.Stream.Enabled {
		return nil, nil
	}
	hub, err := NewAlertHub(cfg)
	if err != nil {
		return nil, err
	}
	api.GET("/alerts/live", hub.Handler())
	hub.Start()
	return hub, nil
}

// queryInt64 parses an optional integer query parameter; ok is false when
// the parameter is present but malformed.
func queryInt64(c *gin.Context, name string) (int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func queryInt(c *gin.Context, name string) (int, bool) {
	v, ok := queryInt64(c, name)
	return int(v), ok
}

// fatal answers an infrastructure failure. Domain conditions never land
// here; they ride inside 200 envelopes.
func fatal(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"status": StatusError, "message": err.Error()})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"status": StatusError, "message": message})
}

func healthHandler(s *Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.ensureConnected(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": StatusError, "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": StatusSuccess})
	}
}

func metricDataHandler(s *Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		hostname := c.Query("hostname")
		metric := c.Query("metric")
		if hostname == "" || metric == "" {
			badRequest(c, "hostname and metric query parameters are required")
			return
		}
		from, okFrom := queryInt64(c, "time_from")
		to, okTo := queryInt64(c, "time_to")
		if !okFrom || !okTo {
			badRequest(c, "time_from and time_to must be Unix timestamps")
			return
		}

		resp, err := s.GetMetricData(hostname, metric, TimeWindow{From: from, To: to}, c.Query("statistic"))
		if err != nil {
			fatal(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func hostsByGroupHandler(s *Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := s.GetHostByGroup(c.DefaultQuery("group", AllGroups))
		if err != nil {
			fatal(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func hostsByMetricHandler(s *Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		metric := c.Query("metric")
		if metric == "" {
			badRequest(c, "metric query parameter is required")
			return
		}
		from, okFrom := queryInt64(c, "time_from")
		to, okTo := queryInt64(c, "time_to")
		limit, okLimit := queryInt(c, "limit")
		if !okFrom || !okTo || !okLimit {
			badRequest(c, "time_from, time_to and limit must be integers")
			return
		}

		resp, err := s.GetHostByMetric(metric, c.Query("statistic"), TimeWindow{From: from, To: to}, limit)
		if err != nil {
			fatal(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func hostStatusHandler(s *Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := s.GetHostStatus(c.Param("hostname"))
		if err != nil {
			fatal(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func alertsHandler(s *Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, ok := alertFilterFromQuery(c)
		if !ok {
			return
		}
		resp, err := s.GetAlerts(filter)
		if err != nil {
			fatal(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func commonIssuesHandler(s *Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, ok := alertFilterFromQuery(c)
		if !ok {
			return
		}
		resp, err := s.GetCommonIssues(filter)
		if err != nil {
			fatal(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func alertFilterFromQuery(c *gin.Context) (AlertFilter, bool) {
	from, okFrom := queryInt64(c, "time_from")
	to, okTo := queryInt64(c, "time_to")
	limit, okLimit := queryInt(c, "limit")
	if !okFrom || !okTo || !okLimit {
		badRequest(c, "time_from, time_to and limit must be integers")
		return AlertFilter{}, false
	}
	return AlertFilter{
		TimeFrom:  from,
		TimeTo:    to,
		Hostname:  c.Query("hostname"),
		HostGroup: c.Query("group"),
		Limit:     limit,
	}, true
}
