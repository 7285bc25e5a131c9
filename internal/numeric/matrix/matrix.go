package matrix

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is returned when operand shapes are incompatible or a
// matrix is not rectangular.
var ErrShapeMismatch = errors.New("matrix: shape mismatch")

// Matrix is a dense row-major matrix. All rows must have equal length.
type Matrix [][]float64

// Rows returns the number of rows.
func (m Matrix) Rows() int { return len(m) }

// Cols returns the length of the first row, or 0 for a matrix without rows.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Cells returns Rows()*Cols().
func (m Matrix) Cells() int { return m.Rows() * m.Cols() }

// Validate reports an error wrapping ErrShapeMismatch if m is ragged.
func (m Matrix) Validate() error {
	cols := m.Cols()
	for i, row := range m {
		if len(row) != cols {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrShapeMismatch, i, len(row), cols)
		}
	}
	return nil
}

// New allocates a zeroed rows x cols matrix.
func New(rows, cols int) Matrix {
	m := make(Matrix, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}

// Multiply returns the product a x b using the standard triple loop.
// Both operands must be rectangular and a.Cols() must equal b.Rows();
// otherwise an error wrapping ErrShapeMismatch is returned.
func Multiply(a, b Matrix) (Matrix, error) {
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("left operand: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("right operand: %w", err)
	}
	if a.Cols() != b.Rows() {
		return nil, fmt.Errorf("%w: cannot multiply %dx%d by %dx%d",
			ErrShapeMismatch, a.Rows(), a.Cols(), b.Rows(), b.Cols())
	}

	m, k, n := a.Rows(), a.Cols(), b.Cols()
	out := New(m, n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var sum float64
			for t := 0; t < k; t++ {
				sum += a[i][t] * b[t][j]
			}
			out[i][j] = sum
		}
	}
	return out, nil
}

// DemoOperands returns the built-in 2x3 and 3x2 demonstration matrices.
func DemoOperands() (Matrix, Matrix) {
	a := Matrix{
		{1, 2, 3},
		{4, 5, 6},
	}
	b := Matrix{
		{7, 8},
		{9, 10},
		{11, 12},
	}
	return a, b
}

// Demo multiplies the demonstration operands.
func Demo() Matrix {
	a, b := DemoOperands()
	// The demonstration shapes are fixed and compatible.
	out, _ := Multiply(a, b)
	return out
}
