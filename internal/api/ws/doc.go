// Package ws serves the numeric worker protocol over WebSocket.
//
// Each client frame is a JSON WorkerMessage {id, type, data} and is answered
// by exactly one WorkerResponse with the same id. Messages on a connection are
// handled in order. The server pings idle connections and drops peers that
// stop answering within the pong wait.
//
// Message Types:
//   - process_csv: data.csvContent
//   - process_simple: data.input
//   - fibonacci: data.count
//   - primes: data.limit
//   - matrix_demo
//   - monte_carlo_pi: data.iterations, optional data.seed
//   - greet
//   - ping
//
// Example Usage:
//
//	handler := ws.NewHandler(registry, ws.WithMetrics(metrics))
//	router.GET("/ws", handler.HandleConnection)
package ws
