package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Limits    LimitsConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8000"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	// Global shares one bucket across all clients instead of one per IP.
	Global bool `envconfig:"RATE_LIMIT_GLOBAL" default:"false"`
}

// LimitsConfig caps the work a single host request may ask for. The
// numeric core itself is unbounded.
type LimitsConfig struct {
	MaxFibonacciTerms uint32 `envconfig:"NUMERIC_MAX_FIB_TERMS" default:"100000"`
	MaxPrimeLimit     uint32 `envconfig:"NUMERIC_MAX_PRIME_LIMIT" default:"50000000"`
	MaxPiIterations   uint32 `envconfig:"NUMERIC_MAX_PI_ITERATIONS" default:"100000000"`
	MaxMatrixCells    int    `envconfig:"NUMERIC_MAX_MATRIX_CELLS" default:"1000000"`
	MaxInputBytes     int64  `envconfig:"NUMERIC_MAX_INPUT_BYTES" default:"10485760"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8000",
			Host:            "0.0.0.0",
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Limits: DefaultLimits(),
	}
}

// DefaultLimits returns the default per-request limits.
func DefaultLimits() LimitsConfig {
	return LimitsConfig{
		MaxFibonacciTerms: 100000,
		MaxPrimeLimit:     50000000,
		MaxPiIterations:   100000000,
		MaxMatrixCells:    1000000,
		MaxInputBytes:     10 << 20,
	}
}
