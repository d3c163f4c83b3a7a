package zabbix

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// apiTestRouter mounts the API over a seeded fixture database with the
// session clock pinned to fixtureNow.
func apiTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, dsn := newFixtureDB(t)
	seedFixture(t, db)

	cfg := Config{Database: DatabaseConfig{Driver: "sqlite", DSN: dsn}}
	session, err := NewSession(cfg)
	require.NoError(t, err)
	session.now = func() int64 { return fixtureNow }
	t.Cleanup(func() { session.Close() })

	router := gin.New()
	_, err = Mount(router, session, cfg)
	require.NoError(t, err)
	return router
}

func apiGet(t *testing.T, router *gin.Engine, url string) (int, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	router.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	return w.Code, body
}

func TestAPI_Health(t *testing.T) {
	router := apiTestRouter(t)

	code, body := apiGet(t, router, "/zabbix/api/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusSuccess, body["status"])
}

func TestAPI_MetricData(t *testing.T) {
	router := apiTestRouter(t)

	code, body := apiGet(t, router,
		"/zabbix/api/metrics/data?hostname=web-01&metric=CPU+utilization&time_from=1749990000&time_to=1750000000&statistic=mean")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusSuccess, body["status"])
	assert.Equal(t, "%", body["unit"])
	assert.Equal(t, "mean", body["statistical_measure"])
	assert.InDelta(t, 35.0, body["data"].(float64), 1e-9)
}

func TestAPI_MetricDataRawSamples(t *testing.T) {
	router := apiTestRouter(t)

	code, body := apiGet(t, router,
		"/zabbix/api/metrics/data?hostname=web-01&metric=CPU+utilization&time_from=1749990000&time_to=1750000000")
	assert.Equal(t, http.StatusOK, code)
	data, ok := body["data"].([]any)
	require.True(t, ok)
	assert.Len(t, data, 3)
}

func TestAPI_MetricDataDomainErrorIsEnvelope(t *testing.T) {
	router := apiTestRouter(t)

	// Disabled item: HTTP 200, envelope carries the failure.
	code, body := apiGet(t, router,
		"/zabbix/api/metrics/data?hostname=web-01&metric=Power+draw&time_from=0&time_to=1750000000")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusError, body["status"])
	assert.Contains(t, body["message"], "disabled")
	assert.Equal(t, "web-01", body["hostname"])
}

func TestAPI_MetricDataMissingParams(t *testing.T) {
	router := apiTestRouter(t)

	code, body := apiGet(t, router, "/zabbix/api/metrics/data?hostname=web-01")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, StatusError, body["status"])

	code, _ = apiGet(t, router,
		"/zabbix/api/metrics/data?hostname=web-01&metric=CPU+utilization&time_from=yesterday&time_to=0")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAPI_HostsByGroup(t *testing.T) {
	router := apiTestRouter(t)

	code, body := apiGet(t, router, "/zabbix/api/hosts?group=Web+servers")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{"web-01", "web-02"}, body["data"])

	// Default group is the "all" sentinel.
	_, body = apiGet(t, router, "/zabbix/api/hosts")
	assert.Len(t, body["data"], 3)
}

func TestAPI_HostsByMetric(t *testing.T) {
	router := apiTestRouter(t)

	code, body := apiGet(t, router,
		"/zabbix/api/hosts/by-metric?metric=CPU+utilization&statistic=mean&time_from=1749990000&time_to=1750000000")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusSuccess, body["status"])

	data := body["data"].([]any)
	require.Len(t, data, 2)
	first := data[0].(map[string]any)
	assert.Equal(t, "web-02", first["hostname"])
	assert.InDelta(t, 85.0, first["value"].(float64), 1e-9)
}

func TestAPI_HostStatus(t *testing.T) {
	router := apiTestRouter(t)

	code, body := apiGet(t, router, "/zabbix/api/hosts/db-01/status")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusError, body["status"])
	assert.Contains(t, body["message"], "disabled")
}

func TestAPI_Alerts(t *testing.T) {
	router := apiTestRouter(t)

	code, body := apiGet(t, router, "/zabbix/api/alerts?hostname=web-01&limit=10")
	assert.Equal(t, http.StatusOK, code)
	data := body["data"].([]any)
	require.Len(t, data, 2)
	newest := data[0].(map[string]any)
	assert.Equal(t, float64(1002), newest["eventid"])
}

func TestAPI_CommonIssues(t *testing.T) {
	router := apiTestRouter(t)

	code, body := apiGet(t, router, "/zabbix/api/alerts/common?limit=1")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusSuccess, body["status"])

	data := body["data"].([]any)
	require.Len(t, data, 1)
	top := data[0].(map[string]any)
	assert.Equal(t, "High CPU on web-01", top["event_name"])
	assert.Equal(t, float64(2), top["total_count"])
	assert.Equal(t, float64(1), top["acknowledged_count"])
	assert.Equal(t, float64(1), top["unacknowledged_count"])
}
