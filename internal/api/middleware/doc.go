// Package middleware provides the gin middleware stack of the numcore server.
//
//   - CORS: cross-origin access via gin-contrib/cors
//   - RateLimit: per-IP token buckets with idle eviction
//   - GlobalRateLimit: a single shared bucket
//   - Logger: one zap line per request
//   - Recovery: panic to 500 with a logged stack
//
// Example Usage:
//
//	router.Use(middleware.Recovery(logger))
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
