package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetrics_CountsRequestsByRoute(t *testing.T) {
	m := NewHTTPMetrics("settlement-test")

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/debts/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/debts/abc", nil)
		r.ServeHTTP(w, req)
	}

	count := testutil.ToFloat64(m.requestTotal.WithLabelValues("GET", "/debts/:id", "200"))
	assert.Equal(t, float64(3), count)
}

func TestHTTPMetrics_UnmatchedRoute(t *testing.T) {
	m := NewHTTPMetrics("settlement-test")

	r := gin.New()
	r.Use(m.Middleware())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	r.ServeHTTP(w, req)

	count := testutil.ToFloat64(m.requestTotal.WithLabelValues("GET", "unmatched", "404"))
	assert.Equal(t, float64(1), count)
}

func TestHTTPMetrics_ScrapeEndpoint(t *testing.T) {
	m := NewHTTPMetrics("settlement-test")

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/metrics", m.Handler())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)

	scrape := httptest.NewRecorder()
	r.ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, scrape.Code)
	assert.Contains(t, scrape.Body.String(), "http_server_requests_total")
}
