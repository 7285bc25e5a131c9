package server

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/numcore/internal/api/http"
	"github.com/GriffinCanCode/numcore/internal/api/middleware"
	"github.com/GriffinCanCode/numcore/internal/api/ws"
	"github.com/GriffinCanCode/numcore/internal/infrastructure/config"
	"github.com/GriffinCanCode/numcore/internal/infrastructure/logging"
	"github.com/GriffinCanCode/numcore/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/numcore/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/numcore/internal/providers/numeric"
	"github.com/GriffinCanCode/numcore/internal/service"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	http     *nethttp.Server
	registry *service.Registry
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
	tracer   *tracing.Tracer
}

// Option configures a Server.
type Option func(*options)

type options struct {
	logger *logging.Logger
}

// WithLogger overrides the logger built from the logging config.
func WithLogger(logger *logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, opts ...Option) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		var err error
		logger, err = newLogger(cfg.Logging)
		if err != nil {
			return nil, err
		}
	}

	logger.Info("Initializing numcore server",
		zap.String("addr", cfg.Server.Addr()),
		zap.Uint32("max_fibonacci_terms", cfg.Limits.MaxFibonacciTerms),
		zap.Uint32("max_prime_limit", cfg.Limits.MaxPrimeLimit),
		zap.Int64("max_input_bytes", cfg.Limits.MaxInputBytes),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := monitoring.NewMetrics(reg)

	tracer := tracing.New("numcore", logger.Named("trace").Logger)

	registry := service.NewRegistry(
		service.WithMetrics(metrics),
		service.WithTracer(tracer),
		service.WithLogger(logger.Named("registry").Logger),
	)
	provider := numeric.NewProvider(
		numeric.WithLimits(cfg.Limits),
		numeric.WithLogger(logger.Named("numeric").Logger),
		numeric.WithRecorder(metrics),
	)
	if err := registry.Register(provider); err != nil {
		tracer.Close()
		return nil, fmt.Errorf("failed to register numeric provider: %w", err)
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.Recovery(logger.Logger))
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.Logger(logger.Named("http").Logger))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
			zap.Bool("global", cfg.RateLimit.Global),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		if cfg.RateLimit.Global {
			router.Use(middleware.GlobalRateLimit(rl))
		} else {
			router.Use(middleware.RateLimit(rl))
		}
	}

	handlers := http.NewHandlers(registry,
		http.WithLimits(cfg.Limits),
		http.WithMetrics(metrics),
		http.WithLogger(logger.Named("http").Logger),
	)
	handlers.Register(router)

	wsHandler := ws.NewHandler(registry,
		ws.WithMetrics(metrics),
		ws.WithLogger(logger.Named("ws").Logger),
		ws.WithReadLimit(cfg.Limits.MaxInputBytes+64<<10),
	)
	router.GET("/ws", wsHandler.HandleConnection)

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	logger.Info("Server initialized successfully",
		zap.Int("services", len(registry.List(nil))),
		zap.Int("tools", len(registry.Tools())),
	)

	return &Server{
		router: router,
		http: &nethttp.Server{
			Addr:    cfg.Server.Addr(),
			Handler: router,
		},
		registry: registry,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
		tracer:   tracer,
	}, nil
}

func newLogger(cfg config.LogConfig) (*logging.Logger, error) {
	if cfg.Development {
		return logging.NewDevelopment(), nil
	}
	lc := logging.DefaultConfig()
	if cfg.Level != "" {
		lc.Level = cfg.Level
	}
	logger, err := logging.New(lc)
	if err != nil {
		return nil, fmt.Errorf("invalid log config: %w", err)
	}
	return logger, nil
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Registry exposes the service registry.
func (s *Server) Registry() *service.Registry {
	return s.registry
}

// Run starts the HTTP server and blocks until it stops. A graceful
// Shutdown makes Run return nil.
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, then flushes spans and logs.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	err := s.http.Shutdown(ctx)
	if err != nil {
		s.logger.Error("HTTP shutdown did not complete", zap.Error(err))
	}

	s.tracer.Close()
	_ = s.logger.Sync()
	return err
}
