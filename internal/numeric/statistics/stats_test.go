package statistics

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/GriffinCanCode/numcore/internal/numeric/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	t.Run("odd count", func(t *testing.T) {
		stats, err := Compute([]float64{5, 1, 3})
		require.NoError(t, err)
		assert.Equal(t, uint64(3), stats.Count)
		assert.Equal(t, 9.0, stats.Sum)
		assert.Equal(t, 3.0, stats.Mean)
		assert.Equal(t, 3.0, stats.Median)
		assert.Equal(t, 1.0, stats.Min)
		assert.Equal(t, 5.0, stats.Max)
		// population variance: (4+4+0)/3
		assert.InDelta(t, math.Sqrt(8.0/3.0), stats.StdDev, 1e-12)
	})

	t.Run("even count averages middle values", func(t *testing.T) {
		stats, err := Compute([]float64{4, 1, 3, 2})
		require.NoError(t, err)
		assert.Equal(t, 2.5, stats.Median)
		assert.InDelta(t, math.Sqrt(1.25), stats.StdDev, 1e-12)
	})

	t.Run("single value", func(t *testing.T) {
		stats, err := Compute([]float64{42})
		require.NoError(t, err)
		assert.Equal(t, 42.0, stats.Median)
		assert.Equal(t, 0.0, stats.StdDev)
	})

	t.Run("identical values keep a non-negative deviation", func(t *testing.T) {
		stats, err := Compute([]float64{0.1, 0.1, 0.1})
		require.NoError(t, err)
		assert.False(t, math.IsNaN(stats.StdDev))
		assert.GreaterOrEqual(t, stats.StdDev, 0.0)
	})

	t.Run("input is not mutated", func(t *testing.T) {
		data := []float64{3, 1, 2}
		_, err := Compute(data)
		require.NoError(t, err)
		assert.Equal(t, []float64{3, 1, 2}, data)
	})

	t.Run("range wider than float64 keeps a finite deviation", func(t *testing.T) {
		stats, err := Compute([]float64{-1e308, 1e308})
		require.NoError(t, err)
		assert.Equal(t, 0.0, stats.Sum)
		assert.Equal(t, 0.0, stats.Mean)
		assert.Equal(t, 0.0, stats.Median)
		assert.InEpsilon(t, 1e308, stats.StdDev, 1e-12)
	})

	t.Run("overflowing sum keeps mean and median finite", func(t *testing.T) {
		stats, err := Compute([]float64{1e308, 1e308})
		require.NoError(t, err)
		assert.True(t, math.IsInf(stats.Sum, 1))
		assert.InEpsilon(t, 1e308, stats.Mean, 1e-12)
		assert.Equal(t, 1e308, stats.Median)
		assert.Equal(t, 0.0, stats.StdDev)
	})

	t.Run("empty dataset", func(t *testing.T) {
		_, err := Compute(nil)
		assert.ErrorIs(t, err, dataset.ErrNoData)
	})
}

func TestComputeProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.IntN(64)
		data := make([]float64, n)
		var want float64
		for i := range data {
			data[i] = rng.NormFloat64()*100 - 50
			want += data[i]
		}

		stats, err := Compute(data)
		require.NoError(t, err)
		assert.Equal(t, uint64(n), stats.Count)
		assert.LessOrEqual(t, stats.Min, stats.Median)
		assert.LessOrEqual(t, stats.Median, stats.Max)
		assert.GreaterOrEqual(t, stats.StdDev, 0.0)
		assert.InDelta(t, want, stats.Sum, 1e-9)
	}
}
