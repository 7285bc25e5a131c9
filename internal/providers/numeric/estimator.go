package numeric

import (
	"context"
	"math"
	"time"

	"github.com/GriffinCanCode/numcore/internal/numeric/montecarlo"
	"github.com/GriffinCanCode/numcore/internal/numeric/statistics"
	"github.com/GriffinCanCode/numcore/internal/shared/types"
	"go.uber.org/zap"
)

func estimatorTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "numeric.monte_carlo_pi",
			Name:        "Monte Carlo Pi",
			Description: "Estimate pi by sampling the unit square",
			Parameters: []types.Parameter{
				{Name: "iterations", Type: "number", Description: "Number of samples, at least 1", Required: true},
				{Name: "seed", Type: "number", Description: "Seed for a reproducible estimate", Required: false},
			},
			Returns: "object",
		},
	}
}

// MonteCarloPi estimates pi, optionally from a seeded source.
func (p *Provider) MonteCarloPi(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	iterations, err := GetCount(params, "iterations")
	if err != nil {
		return FailureFrom(err)
	}
	if max := p.limits.MaxPiIterations; max > 0 && iterations > max {
		return FailureFrom(exceeded("iterations", iterations, max))
	}
	seed, seeded, err := GetSeed(params, "seed")
	if err != nil {
		return FailureFrom(err)
	}

	var src montecarlo.Source
	if seeded {
		src = montecarlo.NewSeededSource(seed)
	}

	start := time.Now()
	estimate, err := montecarlo.EstimatePi(iterations, src)
	if err != nil {
		return FailureFrom(err)
	}
	p.record("monte_carlo_pi", int(iterations), start)
	elapsed := statistics.ElapsedMs(start)
	p.logger.Debug("pi estimated",
		zap.Uint32("iterations", iterations),
		zap.Float64("estimate", estimate),
		zap.Float64("performance_ms", elapsed),
	)

	data := map[string]interface{}{
		"estimate":       estimate,
		"iterations":     iterations,
		"abs_error":      math.Abs(estimate - math.Pi),
		"performance_ms": elapsed,
	}
	if seeded {
		data["seed"] = seed
	}
	return Success(data)
}
