package statistics

import (
	"testing"

	"github.com/GriffinCanCode/numcore/internal/numeric/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessText(t *testing.T) {
	t.Run("parses and skips", func(t *testing.T) {
		res, err := ProcessText("1,2\n3,x,4")
		require.NoError(t, err)
		assert.Equal(t, uint64(4), res.Stats.Count)
		assert.Equal(t, 10.0, res.Stats.Sum)
		assert.Equal(t, 2.5, res.Stats.Median)
		assert.Equal(t, 1, res.SkippedTokens)
		assert.Len(t, res.ProcessedData, 4)
		assert.Equal(t, 0.0, res.ProcessedData[0])
		assert.Equal(t, 1.0, res.ProcessedData[3])
		assert.GreaterOrEqual(t, res.PerformanceMs, 0.0)
	})

	t.Run("empty input is distinguishable", func(t *testing.T) {
		res, err := ProcessText("a,b,c")
		require.Error(t, err)
		assert.ErrorIs(t, err, dataset.ErrNoData)
		assert.EqualError(t, err, "no valid numbers found in text")
		assert.Equal(t, ProcessResult{}, res)
	})
}

func TestProcessLine(t *testing.T) {
	res, err := ProcessLine("5, 5, 5")
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 5, 5}, res.ProcessedData)
	assert.Equal(t, 0.0, res.Stats.StdDev)

	_, err = ProcessLine("  ,  ")
	assert.ErrorIs(t, err, dataset.ErrNoData)
	assert.EqualError(t, err, "no valid numbers found in line")
}

func TestProcess(t *testing.T) {
	res, err := Process([]float64{2, 4})
	require.NoError(t, err)
	assert.Equal(t, 3.0, res.Stats.Mean)
	assert.Equal(t, []float64{0, 1}, res.ProcessedData)

	_, err = Process(nil)
	assert.ErrorIs(t, err, dataset.ErrNoData)
}
