// Package server assembles the numcore HTTP server.
//
// NewServer wires the configuration into a logger, a Prometheus registry,
// the span tracer, the service registry holding the numeric provider, the
// gin middleware stack, the REST and WebSocket handlers, and /metrics.
//
// Example Usage:
//
//	srv, err := server.NewServer(config.LoadOrDefault())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	go srv.Run()
//	defer srv.Shutdown(ctx)
package server
