package montecarlo

import (
	"errors"
	"math/rand/v2"
)

// ErrDegenerateIteration is returned for a zero iteration count.
var ErrDegenerateIteration = errors.New("montecarlo: iterations must be greater than zero")

// Source yields uniform values in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// NewSeededSource returns a deterministic Source for reproducible runs.
// It must not be shared between goroutines.
func NewSeededSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// EstimatePi samples iterations points uniformly from [-1, 1]^2 and returns
// four times the fraction that lands inside the unit circle. A nil src uses
// the process-wide auto-seeded generator.
func EstimatePi(iterations uint32, src Source) (float64, error) {
	if iterations == 0 {
		return 0, ErrDegenerateIteration
	}
	if src == nil {
		src = globalSource{}
	}

	var inside uint64
	for i := uint32(0); i < iterations; i++ {
		x := src.Float64()*2 - 1
		y := src.Float64()*2 - 1
		if x*x+y*y <= 1 {
			inside++
		}
	}
	return 4 * float64(inside) / float64(iterations), nil
}
