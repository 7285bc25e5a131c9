package numeric

import (
	"context"
	"time"

	"github.com/GriffinCanCode/numcore/internal/numeric/sequence"
	"github.com/GriffinCanCode/numcore/internal/numeric/statistics"
	"github.com/GriffinCanCode/numcore/internal/shared/types"
	"go.uber.org/zap"
)

func sequenceTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "numeric.fibonacci",
			Name:        "Fibonacci",
			Description: "First count Fibonacci numbers; values past F(93) wrap modulo 2^64",
			Parameters: []types.Parameter{
				{Name: "count", Type: "number", Description: "Number of terms", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "numeric.primes",
			Name:        "Primes",
			Description: "All primes up to limit via the sieve of Eratosthenes",
			Parameters: []types.Parameter{
				{Name: "limit", Type: "number", Description: "Inclusive upper bound", Required: true},
			},
			Returns: "object",
		},
	}
}

// Fibonacci generates the first count terms.
func (p *Provider) Fibonacci(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	count, err := GetCount(params, "count")
	if err != nil {
		return FailureFrom(err)
	}
	if max := p.limits.MaxFibonacciTerms; max > 0 && count > max {
		return FailureFrom(exceeded("count", count, max))
	}

	start := time.Now()
	numbers := sequence.Fibonacci(count, func(index uint32) {
		p.logger.Debug("fibonacci progress", zap.Uint32("index", index), zap.Uint32("count", count))
	})
	p.record("fibonacci", int(count), start)

	data := map[string]interface{}{
		"numbers":        numbers,
		"count":          count,
		"performance_ms": statistics.ElapsedMs(start),
	}
	if len(numbers) > 0 {
		data["last_value"] = numbers[len(numbers)-1]
	}
	return Success(data)
}

// Primes sieves all primes up to limit.
func (p *Provider) Primes(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	limit, err := GetCount(params, "limit")
	if err != nil {
		return FailureFrom(err)
	}
	if max := p.limits.MaxPrimeLimit; max > 0 && limit > max {
		return FailureFrom(exceeded("limit", limit, max))
	}

	p.logger.Debug("sieving primes", zap.Uint32("limit", limit))
	start := time.Now()
	primes := sequence.Primes(limit)
	p.record("primes", int(limit), start)
	elapsed := statistics.ElapsedMs(start)
	p.logger.Debug("sieve complete",
		zap.Uint32("limit", limit),
		zap.Int("count", len(primes)),
		zap.Float64("performance_ms", elapsed),
	)

	return Success(map[string]interface{}{
		"primes":         primes,
		"count":          len(primes),
		"limit":          limit,
		"performance_ms": elapsed,
	})
}
