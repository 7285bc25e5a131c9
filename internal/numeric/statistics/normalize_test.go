package statistics

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Run("rescales into unit interval", func(t *testing.T) {
		out := Normalize([]float64{10, 20, 15, 30})
		assert.Equal(t, []float64{0, 0.5, 0.25, 1}, out)
	})

	t.Run("identical values unchanged", func(t *testing.T) {
		in := []float64{7, 7, 7}
		out := Normalize(in)
		assert.Equal(t, in, out)

		out[0] = 1
		assert.Equal(t, 7.0, in[0], "result must be a copy")
	})

	t.Run("single value unchanged", func(t *testing.T) {
		assert.Equal(t, []float64{-3}, Normalize([]float64{-3}))
	})

	t.Run("range wider than float64", func(t *testing.T) {
		out := Normalize([]float64{-1e308, 1e308, 0, math.MaxFloat64})
		assert.Equal(t, 0.0, out[0])
		assert.Equal(t, 1.0, out[3])
		assert.Greater(t, out[2], 0.0)
		assert.Less(t, out[2], 1.0)
		for _, v := range out {
			assert.False(t, math.IsNaN(v))
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}

		assert.Equal(t, []float64{0, 1}, Normalize([]float64{-1e308, 1e308}))
		assert.Equal(t, []float64{1, 0}, Normalize([]float64{math.MaxFloat64, -math.MaxFloat64}))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, Normalize(nil))
	})

	t.Run("random datasets hit both bounds", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(3, 5))
		for trial := 0; trial < 100; trial++ {
			data := make([]float64, 2+rng.IntN(50))
			for i := range data {
				data[i] = rng.Float64()*1e6 - 5e5
			}
			data[0], data[1] = -1e6, 1e6

			out := Normalize(data)
			assert.Len(t, out, len(data))
			assert.Contains(t, out, 0.0)
			assert.Contains(t, out, 1.0)
			for _, v := range out {
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 1.0)
			}
		}
	})
}
