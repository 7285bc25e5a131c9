/*
Package tracing provides lightweight request tracing backed by structured logs.

# Overview

Spans are created per HTTP request and per tool execution, carry parent-child
relationships through context.Context, and are written to a zap logger by a
single background collector.

# Usage

	tracer := tracing.New("numcore", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "numeric.primes")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()
	span.SetTag("limit", "1000")

# Trace Format

Traces use HTTP headers for propagation:
  - X-Trace-ID: identifier for the entire request flow
  - X-Span-ID: identifier for the current operation

The collector buffers 1000 spans; spans submitted while the buffer is full
are dropped with a warning.
*/
package tracing
