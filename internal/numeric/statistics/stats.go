package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/GriffinCanCode/numcore/internal/numeric/dataset"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DataStats holds descriptive statistics for a dataset.
type DataStats struct {
	Count  uint64  `json:"count"`
	Sum    float64 `json:"sum"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"` // population standard deviation
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Compute returns the descriptive statistics of data. The input is not
// modified; ordering statistics come from a sorted copy.
func Compute(data []float64) (DataStats, error) {
	n := len(data)
	if n == 0 {
		return DataStats{}, fmt.Errorf("statistics: %w", dataset.ErrNoData)
	}

	sum := floats.Sum(data)
	mean := sum / float64(n)
	if math.IsInf(mean, 0) {
		// The sum overflowed; averaging pre-divided terms does not.
		mean = floats.Sum(scaled(data, float64(n)))
	}

	sorted := make([]float64, n)
	copy(sorted, data)
	sort.Float64s(sorted)

	var median float64
	if n%2 == 0 {
		median = midpoint(sorted[n/2-1], sorted[n/2])
	} else {
		median = sorted[n/2]
	}

	// Second central moment about the mean divides by n, not n-1.
	variance := stat.MomentAbout(2, data, mean, nil)
	stdDev := math.Sqrt(variance)
	if scale := floats.Norm(data, math.Inf(1)); math.IsInf(stdDev, 0) && scale > 0 {
		stdDev = scale * math.Sqrt(stat.MomentAbout(2, scaled(data, scale), mean/scale, nil))
	}

	return DataStats{
		Count:  uint64(n),
		Sum:    sum,
		Mean:   mean,
		Median: median,
		StdDev: stdDev,
		Min:    sorted[0],
		Max:    sorted[n-1],
	}, nil
}

func midpoint(a, b float64) float64 {
	if m := (a + b) / 2; !math.IsInf(m, 0) {
		return m
	}
	return a/2 + b/2
}

// scaled returns data divided elementwise by d.
func scaled(data []float64, d float64) []float64 {
	out := make([]float64, len(data))
	for i, x := range data {
		out[i] = x / d
	}
	return out
}
