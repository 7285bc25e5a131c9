// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: colored console output
//
// Components take a *Logger and derive a named child with Named so every
// line carries its origin ("numeric", "http", "ws", "cli").
//
// Example Usage:
//
//	logger := logging.NewDefault().Named("numeric")
//	logger.Info("prime sieve finished", zap.Uint32("limit", limit), zap.Int("count", len(primes)))
package logging
