// Package client is an HTTP client for a numcore server.
//
// Requests pass through a token-bucket limiter and a circuit breaker. The
// breaker opens on transport errors and 5xx responses only; a tool that
// fails on bad input is an ordinary Result.
//
// Example Usage:
//
//	c := client.New("http://localhost:8000", client.WithRateLimit(20, 5))
//	result, err := c.Execute(ctx, "numeric.fibonacci", map[string]interface{}{"count": 10})
package client
