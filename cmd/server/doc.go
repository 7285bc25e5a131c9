// Package main is the entry point for the numcore HTTP server.
//
// The server exposes the numeric provider over REST and a WebSocket worker
// protocol:
//   - /api/v1 routes for statistics, sequences, matrices and the pi estimate
//   - /services and /services/execute for generic tool execution
//   - /ws for the worker protocol
//   - /metrics for Prometheus
//
// Configuration:
//   - Environment variables (PORT, LOG_LEVEL, NUMERIC_MAX_* ...)
//   - CLI flags (override env vars)
//
// Usage:
//
//	# Production mode
//	./server -port 8000
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown within SHUTDOWN_TIMEOUT
package main
