package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordToolCall("numeric", "numeric.primes", "success", 2*time.Millisecond)
	m.RecordComputation("primes", 100, time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["numcore_tool_calls_total"])
	assert.True(t, names["numcore_computation_duration_seconds"])
	assert.True(t, names["numcore_uptime_seconds"])

	// A second collector on its own registry must not collide.
	assert.NotPanics(t, func() { NewMetrics(prometheus.NewRegistry()) })
}

func TestToolMetrics(t *testing.T) {
	m := NewMetrics(nil)

	m.RecordToolCall("numeric", "numeric.fibonacci", "success", time.Millisecond)
	m.RecordToolCall("numeric", "numeric.fibonacci", "failure", time.Millisecond)
	m.RecordToolError("numeric", "numeric.fibonacci", "limit_exceeded")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ToolCalls.WithLabelValues("numeric", "numeric.fibonacci", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ToolErrors.WithLabelValues("numeric", "numeric.fibonacci", "limit_exceeded")))

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.ToolCalls)
	assert.Equal(t, int64(1), snap.ToolErrors)
}

func TestWSConnections(t *testing.T) {
	m := NewMetrics(nil)

	m.IncWSConnections()
	m.IncWSConnections()
	m.DecWSConnections()
	m.RecordWSMessage("in", "ping")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.WSConnections))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WSMessages.WithLabelValues("in", "ping")))
	assert.Equal(t, int64(1), m.Snapshot().ActiveConnections)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics(nil)

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/api/v1/primes", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	router.GET("/fail", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	for _, path := range []string{"/api/v1/primes?limit=10", "/fail", "/missing"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/api/v1/primes", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/fail", "400")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))

	snap := m.Snapshot()
	assert.Equal(t, int64(3), snap.TotalRequests)
	assert.Equal(t, int64(2), snap.TotalErrors)
	assert.GreaterOrEqual(t, snap.AvgLatencyMs, 0.0)
}

func TestTimer(t *testing.T) {
	m := NewMetrics(nil)

	timer := NewTimer(m, "numeric", "numeric.greet")
	d := timer.Stop("success")

	assert.GreaterOrEqual(t, d, time.Duration(0))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ToolCalls.WithLabelValues("numeric", "numeric.greet", "success")))

	var nilTimer *Timer
	assert.Equal(t, time.Duration(0), nilTimer.Stop("success"))
}
