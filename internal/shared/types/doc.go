// Package types provides the data structures shared by numcore's hosts and
// service providers.
//
// Core Types:
//   - Service, Tool, Parameter: provider metadata
//   - Context: caller context passed to providers
//   - Result: tagged outcome of a tool execution
//
// Request Types:
//   - ExecuteRequest: tool execution over HTTP
//   - WorkerMessage, WorkerResponse: the websocket worker protocol
//
// A Result is either a success carrying Data or a failure carrying an Error
// message and a Reason. Callers branch on Success and never infer failure
// from zero values in Data.
package types
