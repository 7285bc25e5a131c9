// Package http provides the REST API over the tool registry.
//
// Endpoints:
//   - Health: / and /health
//   - Services: /services, /services/execute
//   - Numeric: /api/v1/process/{csv,simple,upload}, /api/v1/statistics,
//     /api/v1/fibonacci, /api/v1/primes, /api/v1/matrix/{demo,multiply},
//     /api/v1/pi, /api/v1/metrics
//
// Every tool response body is a types.Result. The status code follows the
// result's reason: invalid_params 400, unknown_tool 404, limit_exceeded 413,
// other failures 422.
//
// Example Usage:
//
//	handlers := http.NewHandlers(registry, http.WithLimits(cfg.Limits))
//	handlers.Register(router)
package http
