package statistics

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Normalize rescales data linearly into [0, 1]. The minimum maps to exactly
// 0 and the maximum to exactly 1. When every value is identical the input is
// returned unchanged as a copy. The result is always a new slice.
func Normalize(data []float64) []float64 {
	out := make([]float64, len(data))
	if len(data) == 0 {
		return out
	}

	lo, hi := floats.Min(data), floats.Max(data)
	span := hi - lo
	if span == 0 {
		copy(out, data)
		return out
	}

	// A finite range wider than MaxFloat64 is rescaled at half magnitude.
	halved := math.IsInf(span, 0)
	if halved {
		span = hi/2 - lo/2
	}
	for i, x := range data {
		switch {
		case x == hi:
			out[i] = 1
		case halved:
			out[i] = (x/2 - lo/2) / span
		default:
			out[i] = (x - lo) / span
		}
	}
	return out
}
