// Package matrix implements a small dense matrix of float64 values with the
// arithmetic, determinant and inversion operations needed by the transform
// pipeline. Values are stored in one contiguous row-major slice.
package matrix

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Tolerances used by comparison and determinant snapping.
const (
	EqualTolerance       = 1e-7
	DeterminantTolerance = 1e-6
)

var (
	// ErrInvalidArgument is returned for non-positive dimensions and singular inversions.
	ErrInvalidArgument = errors.New("matrix: invalid argument")
	// ErrDimensionMismatch is returned when operand shapes are incompatible.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")
	// ErrOutOfRange is returned for element access outside the matrix.
	ErrOutOfRange = errors.New("matrix: index out of range")
)

// Matrix is a rows x cols grid of float64 values
type Matrix struct {
	rows, cols int
	data       []float64
}

// New creates a zero-filled matrix with the given dimensions
func New(rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("new %dx%d: %w", rows, cols, ErrInvalidArgument)
	}
	return &Matrix{
		rows: rows,
		cols: cols,
		data: make([]float64, rows*cols),
	}, nil
}

// MustNew is like New but panics if the dimensions are not positive
func MustNew(rows, cols int) *Matrix {
	m, err := New(rows, cols)
	if err != nil {
		panic(err)
	}
	return m
}

// Identity returns the n x n identity matrix. It panics if n <= 0.
func Identity(n int) *Matrix {
	m := MustNew(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

// FromRows builds a matrix from a rectangular slice of rows
func FromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("from rows: empty input: %w", ErrInvalidArgument)
	}
	m, err := New(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != m.cols {
			return nil, fmt.Errorf("from rows: row %d has %d columns, want %d: %w",
				i, len(row), m.cols, ErrDimensionMismatch)
		}
		copy(m.data[i*m.cols:], row)
	}
	return m, nil
}

// Rows returns the number of rows
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns
func (m *Matrix) Cols() int { return m.cols }

func (m *Matrix) checkIndex(i, j int) error {
	if i < 0 || j < 0 || i >= m.rows || j >= m.cols {
		return fmt.Errorf("element (%d,%d) of %dx%d: %w", i, j, m.rows, m.cols, ErrOutOfRange)
	}
	return nil
}

// Ref returns a mutable reference to element (i, j)
func (m *Matrix) Ref(i, j int) (*float64, error) {
	if err := m.checkIndex(i, j); err != nil {
		return nil, err
	}
	return &m.data[i*m.cols+j], nil
}

// At returns element (i, j)
func (m *Matrix) At(i, j int) (float64, error) {
	if err := m.checkIndex(i, j); err != nil {
		return 0, err
	}
	return m.data[i*m.cols+j], nil
}

// Set assigns element (i, j)
func (m *Matrix) Set(i, j int, v float64) error {
	if err := m.checkIndex(i, j); err != nil {
		return err
	}
	m.data[i*m.cols+j] = v
	return nil
}

// Elements returns a row-major copy of all values
func (m *Matrix) Elements() []float64 {
	out := make([]float64, len(m.data))
	copy(out, m.data)
	return out
}

// Clone returns an independent copy of the matrix
func (m *Matrix) Clone() *Matrix {
	c := &Matrix{rows: m.rows, cols: m.cols, data: make([]float64, len(m.data))}
	copy(c.data, m.data)
	return c
}

// Move transfers the storage to a new matrix and leaves m empty (0x0)
func (m *Matrix) Move() *Matrix {
	moved := &Matrix{rows: m.rows, cols: m.cols, data: m.data}
	m.rows, m.cols, m.data = 0, 0, nil
	return moved
}

// Assign replaces the contents of m with a copy of other
func (m *Matrix) Assign(other *Matrix) {
	m.rows, m.cols = other.rows, other.cols
	m.data = make([]float64, len(other.data))
	copy(m.data, other.data)
}

func (m *Matrix) sameShape(other *Matrix, op string) error {
	if m.rows != other.rows || m.cols != other.cols {
		return fmt.Errorf("%s %dx%d and %dx%d: %w", op, m.rows, m.cols, other.rows, other.cols, ErrDimensionMismatch)
	}
	return nil
}

// SumMatrix adds other to m in place
func (m *Matrix) SumMatrix(other *Matrix) error {
	if err := m.sameShape(other, "sum"); err != nil {
		return err
	}
	for i, v := range other.data {
		m.data[i] += v
	}
	return nil
}

// SubMatrix subtracts other from m in place
func (m *Matrix) SubMatrix(other *Matrix) error {
	if err := m.sameShape(other, "sub"); err != nil {
		return err
	}
	for i, v := range other.data {
		m.data[i] -= v
	}
	return nil
}

// MulNumber multiplies every element by number in place
func (m *Matrix) MulNumber(number float64) {
	for i := range m.data {
		m.data[i] *= number
	}
}

// MulMatrix replaces m with m × other. The column count of m changes to
// the column count of other.
func (m *Matrix) MulMatrix(other *Matrix) error {
	product, err := m.Mul(other)
	if err != nil {
		return err
	}
	*m = *product
	return nil
}

// Add returns m + other
func (m *Matrix) Add(other *Matrix) (*Matrix, error) {
	result := m.Clone()
	if err := result.SumMatrix(other); err != nil {
		return nil, err
	}
	return result, nil
}

// Sub returns m - other
func (m *Matrix) Sub(other *Matrix) (*Matrix, error) {
	result := m.Clone()
	if err := result.SubMatrix(other); err != nil {
		return nil, err
	}
	return result, nil
}

// Scale returns m multiplied by a scalar
func (m *Matrix) Scale(number float64) *Matrix {
	result := m.Clone()
	result.MulNumber(number)
	return result
}

// Mul returns m × other
func (m *Matrix) Mul(other *Matrix) (*Matrix, error) {
	if m.cols != other.rows {
		return nil, fmt.Errorf("mul %dx%d by %dx%d: %w", m.rows, m.cols, other.rows, other.cols, ErrDimensionMismatch)
	}
	result := &Matrix{rows: m.rows, cols: other.cols, data: make([]float64, m.rows*other.cols)}
	for i := 0; i < m.rows; i++ {
		out := result.data[i*other.cols : (i+1)*other.cols]
		for k := 0; k < m.cols; k++ {
			a := m.data[i*m.cols+k]
			row := other.data[k*other.cols : (k+1)*other.cols]
			for j, b := range row {
				out[j] += a * b
			}
		}
	}
	return result, nil
}

// Equal reports whether both matrices have the same shape and every pair of
// elements differs by less than EqualTolerance.
func (m *Matrix) Equal(other *Matrix) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i, v := range m.data {
		if math.Abs(v-other.data[i]) >= EqualTolerance {
			return false
		}
	}
	return true
}

// Transpose returns a new matrix with rows and columns swapped
func (m *Matrix) Transpose() *Matrix {
	result := &Matrix{rows: m.cols, cols: m.rows, data: make([]float64, len(m.data))}
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			result.data[j*m.rows+i] = m.data[i*m.cols+j]
		}
	}
	return result
}

func (m *Matrix) requireSquare(op string) error {
	if m.rows != m.cols {
		return fmt.Errorf("%s of %dx%d: not square: %w", op, m.rows, m.cols, ErrDimensionMismatch)
	}
	return nil
}

// Determinant computes the determinant by Gaussian elimination with partial
// pivoting. NaN results become 0 and values below DeterminantTolerance snap to 0.
func (m *Matrix) Determinant() (float64, error) {
	if err := m.requireSquare("determinant"); err != nil {
		return 0, err
	}
	n := m.rows
	tmp := m.Clone()
	sign := 1.0
	for k := 0; k < n-1; k++ {
		if tmp.pivot(k) {
			sign = -sign
		}
		pivot := tmp.data[k*n+k]
		for i := k + 1; i < n; i++ {
			factor := tmp.data[i*n+k] / pivot
			for j := k; j < n; j++ {
				tmp.data[i*n+j] -= factor * tmp.data[k*n+j]
			}
		}
	}

	result := 1.0
	for i := 0; i < n; i++ {
		result *= tmp.data[i*n+i]
	}
	if math.IsNaN(result) {
		return 0, nil
	}
	result *= sign
	if math.Abs(result) < DeterminantTolerance {
		result = 0
	}
	return result, nil
}

// pivot moves the row with the largest magnitude in column k (from row k
// down) into row k. It reports whether a swap happened.
func (m *Matrix) pivot(k int) bool {
	n := m.cols
	maxVal := math.Abs(m.data[k*n+k])
	best := k
	for i := k; i < m.rows; i++ {
		if v := math.Abs(m.data[i*n+k]); v > maxVal {
			maxVal = v
			best = i
		}
	}
	if best == k {
		return false
	}
	a := m.data[k*n : (k+1)*n]
	b := m.data[best*n : (best+1)*n]
	for j := range a {
		a[j], b[j] = b[j], a[j]
	}
	return true
}

// Minor returns the matrix with row i and column j removed
func (m *Matrix) Minor(row, col int) (*Matrix, error) {
	if err := m.checkIndex(row, col); err != nil {
		return nil, err
	}
	result, err := New(m.rows-1, m.cols-1)
	if err != nil {
		return nil, fmt.Errorf("minor of %dx%d: %w", m.rows, m.cols, err)
	}
	r := 0
	for i := 0; i < m.rows; i++ {
		if i == row {
			continue
		}
		c := 0
		for j := 0; j < m.cols; j++ {
			if j == col {
				continue
			}
			result.data[r*result.cols+c] = m.data[i*m.cols+j]
			c++
		}
		r++
	}
	return result, nil
}

// CalcComplements returns the cofactor matrix
func (m *Matrix) CalcComplements() (*Matrix, error) {
	if err := m.requireSquare("complements"); err != nil {
		return nil, err
	}
	result := &Matrix{rows: m.rows, cols: m.cols, data: make([]float64, len(m.data))}
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			minor, err := m.Minor(i, j)
			if err != nil {
				return nil, err
			}
			det, err := minor.Determinant()
			if err != nil {
				return nil, err
			}
			if (i+j)%2 == 1 {
				det = -det
			}
			result.data[i*m.cols+j] = det
		}
	}
	return result, nil
}

// InverseMatrix returns the inverse of m. A zero determinant yields ErrInvalidArgument.
func (m *Matrix) InverseMatrix() (*Matrix, error) {
	det, err := m.Determinant()
	if err != nil {
		return nil, err
	}
	if det == 0 {
		return nil, fmt.Errorf("inverse of singular %dx%d: %w", m.rows, m.cols, ErrInvalidArgument)
	}

	if m.rows == 1 {
		result := MustNew(1, 1)
		if math.Abs(m.data[0]) >= EqualTolerance {
			result.data[0] = 1 / m.data[0]
		}
		return result, nil
	}

	complements, err := m.CalcComplements()
	if err != nil {
		return nil, err
	}
	result := complements.Transpose()
	result.MulNumber(1 / det)
	return result, nil
}

// SetRows resizes the matrix to the given number of rows, zero-filling new
// rows and dropping trailing rows when shrinking.
func (m *Matrix) SetRows(rows int) error {
	if rows <= 0 {
		return fmt.Errorf("set rows %d: %w", rows, ErrInvalidArgument)
	}
	if rows == m.rows {
		return nil
	}
	data := make([]float64, rows*m.cols)
	copy(data, m.data)
	m.rows, m.data = rows, data
	return nil
}

// SetCols resizes the matrix to the given number of columns, zero-filling new
// columns and truncating each row when shrinking.
func (m *Matrix) SetCols(cols int) error {
	if cols <= 0 {
		return fmt.Errorf("set cols %d: %w", cols, ErrInvalidArgument)
	}
	if cols == m.cols {
		return nil
	}
	data := make([]float64, m.rows*cols)
	keep := min(cols, m.cols)
	for i := 0; i < m.rows; i++ {
		copy(data[i*cols:i*cols+keep], m.data[i*m.cols:i*m.cols+keep])
	}
	m.cols, m.data = cols, data
	return nil
}

// String formats the matrix one row per line
func (m *Matrix) String() string {
	var sb strings.Builder
	for i := 0; i < m.rows; i++ {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteByte('[')
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.cols+j])
		}
		sb.WriteByte(']')
	}
	return sb.String()
}
