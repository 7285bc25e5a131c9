// Package service provides the tool registry shared by the HTTP, WebSocket
// and CLI hosts.
//
// Providers register under a service ID and are addressed by tool IDs of the
// form "service.tool". Execution is optionally timed into Prometheus and
// recorded as a tracing span.
//
// Example Usage:
//
//	registry := service.NewRegistry(service.WithMetrics(metrics))
//	registry.Register(numeric.NewProvider())
//	result, err := registry.Execute(ctx, "numeric.primes", params, appCtx)
package service
