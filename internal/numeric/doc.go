// Package numeric groups the pure computation layer of numcore.
//
// Subpackages:
//   - dataset: parsing of delimited text into float64 datasets
//   - statistics: descriptive statistics, min-max normalization, processing results
//   - sequence: Fibonacci sequences and the sieve of Eratosthenes
//   - matrix: dense matrix multiplication
//   - montecarlo: stochastic estimation of π
//
// Every function is synchronous and stateless. Each call allocates its own
// working buffers and shares nothing with other calls, so callers may invoke
// them from any number of goroutines. None of them block, log, or observe a
// context; hosts that need cancellation run them in a context they control.
package numeric
