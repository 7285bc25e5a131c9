package http

import (
	"net/http"

	"github.com/GriffinCanCode/numcore/internal/infrastructure/config"
	"github.com/GriffinCanCode/numcore/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/numcore/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/numcore/internal/service"
	"github.com/GriffinCanCode/numcore/internal/shared/id"
	"github.com/GriffinCanCode/numcore/internal/shared/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Version is reported by the root endpoint.
const Version = "0.1.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *service.Registry
	limits   config.LimitsConfig
	metrics  *monitoring.Metrics
	logger   *zap.Logger
}

// Option configures Handlers
type Option func(*Handlers)

// WithLimits sets the request body limits.
func WithLimits(limits config.LimitsConfig) Option {
	return func(h *Handlers) { h.limits = limits }
}

// WithMetrics enables the JSON metrics snapshot endpoint.
func WithMetrics(metrics *monitoring.Metrics) Option {
	return func(h *Handlers) { h.metrics = metrics }
}

// WithLogger sets the handler logger.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Handlers) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHandlers creates a new handler set
func NewHandlers(registry *service.Registry, opts ...Option) *Handlers {
	h := &Handlers{
		registry: registry,
		limits:   config.DefaultLimits(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts every route on r.
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/services", h.ListServices)
	r.POST("/services/execute", h.ExecuteService)

	v1 := r.Group("/api/v1")
	v1.POST("/process/csv", h.ProcessCSV)
	v1.POST("/process/simple", h.ProcessSimple)
	v1.POST("/process/upload", h.ProcessUpload)
	v1.POST("/statistics", h.Statistics)
	v1.GET("/fibonacci", h.Fibonacci)
	v1.GET("/primes", h.Primes)
	v1.GET("/matrix/demo", h.MatrixDemo)
	v1.POST("/matrix/multiply", h.MatrixMultiply)
	v1.GET("/pi", h.Pi)
	v1.GET("/metrics", h.MetricsSnapshot)
}

// Root handles the status check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "numcore",
		"version": Version,
	})
}

// Health handles the detailed health check
func (h *Handlers) Health(c *gin.Context) {
	body := gin.H{
		"status":           "healthy",
		"service_registry": h.registry.Stats(),
	}
	if h.metrics != nil {
		body["uptime_seconds"] = h.metrics.Snapshot().UptimeSeconds
	}
	c.JSON(http.StatusOK, body)
}

// ListServices lists services, optionally filtered by category or ranked by a query
func (h *Handlers) ListServices(c *gin.Context) {
	if q := c.Query("q"); q != "" {
		c.JSON(http.StatusOK, gin.H{
			"query":    q,
			"services": h.registry.Discover(q, 5),
		})
		return
	}

	var category *types.Category
	if cat := c.Query("category"); cat != "" {
		typed := types.Category(cat)
		category = &typed
	}

	c.JSON(http.StatusOK, gin.H{
		"services": h.registry.List(category),
		"stats":    h.registry.Stats(),
	})
}

// ExecuteService executes a service tool
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, types.ReasonInvalidParams, err.Error())
		return
	}
	h.execute(c, req.ToolID, req.Params)
}

// MetricsSnapshot returns aggregate counters as JSON
func (h *Handlers) MetricsSnapshot(c *gin.Context) {
	if h.metrics == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "metrics disabled"})
		return
	}
	c.JSON(http.StatusOK, h.metrics.Snapshot())
}

func (h *Handlers) execute(c *gin.Context, toolID string, params map[string]interface{}) {
	result, err := h.registry.Execute(c.Request.Context(), toolID, params, h.appContext(c))
	if err != nil {
		h.logger.Error("tool execution error", zap.String("tool", toolID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	respond(c, result)
}

func (h *Handlers) appContext(c *gin.Context) *types.Context {
	requestID := string(tracing.GetTraceID(c.Request.Context()))
	if requestID == "" {
		requestID = id.NewRequestID().String()
	}
	clientIP := c.ClientIP()
	origin := "http"
	return &types.Context{
		RequestID: &requestID,
		ClientIP:  &clientIP,
		Origin:    &origin,
	}
}
