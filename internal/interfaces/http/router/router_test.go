package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dukkan/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubRegistrar struct {
	registered bool
}

func (s *stubRegistrar) RegisterRoutes(rg *gin.RouterGroup) {
	s.registered = true
	rg.GET("/stub", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
}

func TestRouter_SetupRegistersUnderVersionPrefix(t *testing.T) {
	engine := gin.New()
	reg := &stubRegistrar{}

	NewRouter(engine).Register(reg).Setup()
	require.True(t, reg.registered)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/stub", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_CustomAPIVersion(t *testing.T) {
	engine := gin.New()
	NewRouter(engine, WithAPIVersion("v2")).Register(&stubRegistrar{}).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v2/stub", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	miss := httptest.NewRecorder()
	engine.ServeHTTP(miss, httptest.NewRequest(http.MethodGet, "/api/v1/stub", nil))
	assert.Equal(t, http.StatusNotFound, miss.Code)
}

func TestNewEngine_HealthAndMetrics(t *testing.T) {
	engine := NewEngine(EngineConfig{
		Logger:  zap.NewNop(),
		Metrics: middleware.NewHTTPMetrics("settlement-test"),
		CORS:    middleware.DefaultCORSConfig(),
	})

	health := httptest.NewRecorder()
	engine.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, health.Code)
	assert.Contains(t, health.Body.String(), "ok")

	scrape := httptest.NewRecorder()
	engine.ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, scrape.Code)

	// Every response carries a request ID.
	assert.NotEmpty(t, health.Header().Get(middleware.RequestIDHeader))
}

func TestNewEngine_BodyLimit(t *testing.T) {
	engine := NewEngine(EngineConfig{
		Logger:       zap.NewNop(),
		CORS:         middleware.DefaultCORSConfig(),
		MaxBodyBytes: 16,
	})
	engine.POST("/echo", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", 64)))
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestNewEngine_RateLimit(t *testing.T) {
	engine := NewEngine(EngineConfig{
		Logger:             zap.NewNop(),
		CORS:               middleware.DefaultCORSConfig(),
		RateLimitPerMinute: 2,
	})

	var last int
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		last = w.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}
