// Package router wires the HTTP engine, middleware and route registrars.
package router

import (
	"net/http"
	"time"

	"github.com/dukkan/backend/internal/infrastructure/logger"
	"github.com/dukkan/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
		registrars: make([]RouteRegistrar, 0),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes with the engine under the versioned prefix
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)

	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// EngineConfig carries the pieces every request passes through
type EngineConfig struct {
	Logger      *zap.Logger
	Metrics     *middleware.HTTPMetrics
	CORS        middleware.CORSConfig
	Environment string
	// MaxBodyBytes caps request body size. Zero disables the limit.
	MaxBodyBytes int64
	// RateLimitPerMinute caps requests per client IP. Zero disables limiting.
	RateLimitPerMinute int
}

// NewEngine builds a gin engine with the standard middleware chain,
// a health endpoint and the Prometheus scrape endpoint.
func NewEngine(cfg EngineConfig) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(cfg.CORS))
	if cfg.MaxBodyBytes > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	}
	if cfg.RateLimitPerMinute > 0 {
		engine.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)))
	}
	engine.Use(logger.GinMiddleware(cfg.Logger))
	if cfg.Metrics != nil {
		engine.Use(cfg.Metrics.Middleware())
		engine.GET("/metrics", cfg.Metrics.Handler())
	}

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return engine
}
