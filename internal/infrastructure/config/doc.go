// Package config provides 12-factor configuration management for the numcore
// server and CLI.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host, shutdown timeout)
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - Limits: Per-request caps on Fibonacci terms, sieve limit, Monte Carlo
//     iterations, matrix cells and input size
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s\n", cfg.Server.Addr())
//
// Environment Variables:
//   - PORT, HOST, SHUTDOWN_TIMEOUT
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - NUMERIC_MAX_FIB_TERMS, NUMERIC_MAX_PRIME_LIMIT, NUMERIC_MAX_PI_ITERATIONS
//   - NUMERIC_MAX_MATRIX_CELLS, NUMERIC_MAX_INPUT_BYTES
package config
