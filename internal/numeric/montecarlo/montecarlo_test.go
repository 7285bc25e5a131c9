package montecarlo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource replays values in a loop.
type fixedSource struct {
	values []float64
	next   int
}

func (f *fixedSource) Float64() float64 {
	v := f.values[f.next%len(f.values)]
	f.next++
	return v
}

func TestEstimatePi(t *testing.T) {
	t.Run("converges with seeded source", func(t *testing.T) {
		pi, err := EstimatePi(100_000, NewSeededSource(42))
		require.NoError(t, err)
		assert.InDelta(t, math.Pi, pi, 0.05)
	})

	t.Run("converges with global source", func(t *testing.T) {
		pi, err := EstimatePi(100_000, nil)
		require.NoError(t, err)
		assert.InDelta(t, math.Pi, pi, 0.05)
	})

	t.Run("same seed same estimate", func(t *testing.T) {
		a, err := EstimatePi(10_000, NewSeededSource(7))
		require.NoError(t, err)
		b, err := EstimatePi(10_000, NewSeededSource(7))
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("all samples at centre", func(t *testing.T) {
		pi, err := EstimatePi(10, &fixedSource{values: []float64{0.5}})
		require.NoError(t, err)
		assert.Equal(t, 4.0, pi)
	})

	t.Run("all samples in corner", func(t *testing.T) {
		pi, err := EstimatePi(10, &fixedSource{values: []float64{0}})
		require.NoError(t, err)
		assert.Equal(t, 0.0, pi)
	})

	t.Run("boundary counts as inside", func(t *testing.T) {
		// x = 1*2-1 would need v = 1, so use x = 0, y = -1 instead.
		pi, err := EstimatePi(1, &fixedSource{values: []float64{0.5, 0}})
		require.NoError(t, err)
		assert.Equal(t, 4.0, pi)
	})

	t.Run("zero iterations rejected", func(t *testing.T) {
		pi, err := EstimatePi(0, nil)
		assert.ErrorIs(t, err, ErrDegenerateIteration)
		assert.Equal(t, 0.0, pi)
	})
}
