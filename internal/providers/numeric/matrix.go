package numeric

import (
	"context"
	"time"

	"github.com/GriffinCanCode/numcore/internal/numeric/matrix"
	"github.com/GriffinCanCode/numcore/internal/numeric/statistics"
	"github.com/GriffinCanCode/numcore/internal/shared/types"
	"go.uber.org/zap"
)

func matrixTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "numeric.matrix_demo",
			Name:        "Matrix Demo",
			Description: "Multiply the built-in 2x3 and 3x2 demonstration matrices",
			Parameters:  []types.Parameter{},
			Returns:     "object",
		},
		{
			ID:          "numeric.matrix_multiply",
			Name:        "Matrix Multiply",
			Description: "Dense product of an m x k and a k x n matrix",
			Parameters: []types.Parameter{
				{Name: "a", Type: "array", Description: "Left operand as array of rows", Required: true},
				{Name: "b", Type: "array", Description: "Right operand as array of rows", Required: true},
			},
			Returns: "object",
		},
	}
}

// MatrixDemo multiplies the built-in demonstration operands.
func (p *Provider) MatrixDemo(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	a, b := matrix.DemoOperands()
	return p.multiply(a, b)
}

// MatrixMultiply multiplies caller supplied operands.
func (p *Provider) MatrixMultiply(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	a, err := GetMatrix(params, "a")
	if err != nil {
		return FailureFrom(err)
	}
	b, err := GetMatrix(params, "b")
	if err != nil {
		return FailureFrom(err)
	}

	if max := p.limits.MaxMatrixCells; max > 0 {
		for _, cells := range []int{a.Cells(), b.Cells(), a.Rows() * b.Cols()} {
			if cells > max {
				return FailureFrom(exceeded("matrix cells", cells, max))
			}
		}
	}
	return p.multiply(a, b)
}

func (p *Provider) multiply(a, b matrix.Matrix) (*types.Result, error) {
	start := time.Now()
	product, err := matrix.Multiply(a, b)
	if err != nil {
		p.logger.Debug("matrix multiply rejected", zap.Error(err))
		return FailureFrom(err)
	}
	p.record("matrix_multiply", a.Rows()*a.Cols()*b.Cols(), start)
	p.logger.Debug("matrix multiplied",
		zap.Int("rows", product.Rows()),
		zap.Int("cols", product.Cols()),
		zap.Duration("elapsed", time.Since(start)),
	)

	return Success(map[string]interface{}{
		"result":         product,
		"rows":           product.Rows(),
		"cols":           product.Cols(),
		"performance_ms": statistics.ElapsedMs(start),
	})
}
