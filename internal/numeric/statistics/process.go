package statistics

import (
	"fmt"
	"time"

	"github.com/GriffinCanCode/numcore/internal/numeric/dataset"
)

// ProcessResult bundles the statistics and normalized values of a dataset
// with the elapsed computation time.
type ProcessResult struct {
	Stats         DataStats `json:"stats"`
	ProcessedData []float64 `json:"processed_data"`
	PerformanceMs float64   `json:"performance_ms"`
	SkippedTokens int       `json:"skipped_tokens"`
}

// ProcessText parses multi-line comma separated text and processes it.
// Input without a single number yields an error wrapping dataset.ErrNoData.
func ProcessText(text string) (ProcessResult, error) {
	start := time.Now()
	data, report := dataset.ParseText(text)
	if len(data) == 0 {
		return ProcessResult{}, fmt.Errorf("%w in text", dataset.ErrNoData)
	}
	return finish(start, data, report.Skipped), nil
}

// ProcessLine parses a single comma separated line and processes it.
// Input without a single number yields an error wrapping dataset.ErrNoData.
func ProcessLine(text string) (ProcessResult, error) {
	start := time.Now()
	data, report := dataset.ParseLine(text)
	if len(data) == 0 {
		return ProcessResult{}, fmt.Errorf("%w in line", dataset.ErrNoData)
	}
	return finish(start, data, report.Skipped), nil
}

// Process computes statistics and normalized values for parsed numbers.
func Process(data []float64) (ProcessResult, error) {
	start := time.Now()
	if len(data) == 0 {
		return ProcessResult{}, fmt.Errorf("%w in dataset", dataset.ErrNoData)
	}
	return finish(start, data, 0), nil
}

func finish(start time.Time, data []float64, skipped int) ProcessResult {
	// Compute cannot fail on a non-empty dataset.
	stats, _ := Compute(data)
	normalized := Normalize(data)

	return ProcessResult{
		Stats:         stats,
		ProcessedData: normalized,
		PerformanceMs: ElapsedMs(start),
		SkippedTokens: skipped,
	}
}

// ElapsedMs reports the milliseconds since start using the monotonic clock.
func ElapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Nanoseconds()) / float64(time.Millisecond)
}
