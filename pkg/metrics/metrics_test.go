package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGinMiddlewareRecordsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics(Config{ServiceName: "itemservice", Namespace: "test"})

	engine := gin.New()
	engine.Use(GinMiddleware(m))
	engine.GET("/basic/items/:itemId", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/basic/items/1", "/basic/items/2", "/nowhere"} {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/basic/items/:itemId", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))
}

func TestMetricsEndpoint(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "itemservice", Namespace: "test"})
	assert.Equal(t, DefaultMetricsAddress, m.Server.Addr)

	m.RecordRequest("GET", "/basic/items", 200, 0)

	rec := httptest.NewRecorder()
	m.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `test_http_requests_total{method="GET",route="/basic/items",service="itemservice",status="200"} 1`), body)
}
