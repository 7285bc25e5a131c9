package numeric

import (
	"context"
	"time"

	"github.com/GriffinCanCode/numcore/internal/numeric/statistics"
	"github.com/GriffinCanCode/numcore/internal/shared/types"
)

func datasetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "numeric.process_csv",
			Name:        "Process CSV",
			Description: "Parse multi-line comma separated text, skipping unparsable tokens, then compute statistics and normalized values",
			Parameters: []types.Parameter{
				{Name: "text", Type: "string", Description: "Comma separated values, one or more lines", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "numeric.process_simple",
			Name:        "Process Line",
			Description: "Parse a single comma separated line, then compute statistics and normalized values",
			Parameters: []types.Parameter{
				{Name: "input", Type: "string", Description: "Comma separated values", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "numeric.statistics",
			Name:        "Statistics",
			Description: "Count, sum, mean, median, population standard deviation, min and max",
			Parameters: []types.Parameter{
				{Name: "numbers", Type: "array", Description: "Array of numbers", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "numeric.normalize",
			Name:        "Normalize",
			Description: "Min-max rescale into [0, 1]",
			Parameters: []types.Parameter{
				{Name: "numbers", Type: "array", Description: "Array of numbers", Required: true},
			},
			Returns: "array",
		},
	}
}

// ProcessCSV parses multi-line text and returns the full processing result.
func (p *Provider) ProcessCSV(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	text, err := p.textParam(params, "text")
	if err != nil {
		return FailureFrom(err)
	}

	start := time.Now()
	res, err := statistics.ProcessText(text)
	if err != nil {
		return FailureFrom(err)
	}
	p.record("process_csv", int(res.Stats.Count), start)
	return Success(processData(res))
}

// ProcessSimple parses one comma separated line.
func (p *Provider) ProcessSimple(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	input, err := p.textParam(params, "input")
	if err != nil {
		return FailureFrom(err)
	}

	start := time.Now()
	res, err := statistics.ProcessLine(input)
	if err != nil {
		return FailureFrom(err)
	}
	p.record("process_simple", int(res.Stats.Count), start)
	return Success(processData(res))
}

// Statistics computes descriptive statistics of a number array.
func (p *Provider) Statistics(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	numbers, err := GetNumbers(params, "numbers")
	if err != nil {
		return FailureFrom(err)
	}

	start := time.Now()
	stats, err := statistics.Compute(numbers)
	if err != nil {
		return FailureFrom(err)
	}
	p.record("statistics", len(numbers), start)
	return Success(map[string]interface{}{
		"stats":          stats,
		"performance_ms": statistics.ElapsedMs(start),
	})
}

// Normalize min-max rescales a number array.
func (p *Provider) Normalize(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	numbers, err := GetNumbers(params, "numbers")
	if err != nil {
		return FailureFrom(err)
	}

	start := time.Now()
	normalized := statistics.Normalize(numbers)
	p.record("normalize", len(numbers), start)
	return Success(map[string]interface{}{
		"processed_data": normalized,
		"performance_ms": statistics.ElapsedMs(start),
	})
}

func (p *Provider) textParam(params map[string]interface{}, key string) (string, error) {
	text, err := GetString(params, key)
	if err != nil {
		return "", err
	}
	if max := p.limits.MaxInputBytes; max > 0 && int64(len(text)) > max {
		return "", exceeded(key+" size", len(text), max)
	}
	return text, nil
}

func processData(res statistics.ProcessResult) map[string]interface{} {
	return map[string]interface{}{
		"stats":          res.Stats,
		"processed_data": res.ProcessedData,
		"performance_ms": res.PerformanceMs,
		"skipped_tokens": res.SkippedTokens,
	}
}
