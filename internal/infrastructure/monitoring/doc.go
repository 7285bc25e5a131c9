/*
Package monitoring provides performance monitoring and metrics collection.

# Overview

This package implements Prometheus-based metrics collection for the numcore
server, tracking HTTP requests, tool executions, numeric computations and
WebSocket traffic.

# Features

- HTTP request metrics (latency, throughput, size)
- Tool execution metrics (duration, failures by reason)
- Computation metrics (duration and input size per operation)
- WebSocket connection metrics
- Uptime

# Usage

	registry := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(registry)

	router.Use(monitoring.Middleware(metrics))

	timer := monitoring.NewTimer(metrics, "numeric", "numeric.primes")
	// ... execute tool ...
	timer.Stop("success")

# Metrics Endpoint

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
*/
package monitoring
