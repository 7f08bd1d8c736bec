package core

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var errRaggedColumns = errors.New("core: columns must have equal length")

// Matrix is a dense column-major buffer of samples. Each column is one
// channel (or one window); rows are sample offsets within the column.
//
// Columns are contiguous in memory, so Col returns a slice that aliases the
// matrix storage and can be handed directly to per-channel kernels.
type Matrix[F Float] struct {
	rows int
	cols int
	data []F
}

// NewMatrix returns a zero-filled rows x cols matrix.
func NewMatrix[F Float](rows, cols int) *Matrix[F] {
	m := &Matrix[F]{}
	m.SetZero(rows, cols)
	return m
}

// MatrixFromColumns copies the given columns into a new matrix.
// All columns must have the same length.
func MatrixFromColumns[F Float](cols ...[]F) (*Matrix[F], error) {
	if len(cols) == 0 {
		return NewMatrix[F](0, 0), nil
	}
	rows := len(cols[0])
	for j, c := range cols {
		if len(c) != rows {
			return nil, fmt.Errorf("%w: column %d has %d rows, want %d", errRaggedColumns, j, len(c), rows)
		}
	}
	m := NewMatrix[F](rows, len(cols))
	for j, c := range cols {
		copy(m.Col(j), c)
	}
	return m, nil
}

// MatrixFromDense converts a gonum matrix into a column-major Matrix.
func MatrixFromDense[F Float](d mat.Matrix) *Matrix[F] {
	rows, cols := d.Dims()
	m := NewMatrix[F](rows, cols)
	for j := 0; j < cols; j++ {
		col := m.Col(j)
		for i := range col {
			col[i] = F(d.At(i, j))
		}
	}
	return m
}

// Rows returns the number of rows. A nil matrix has zero rows.
func (m *Matrix[F]) Rows() int {
	if m == nil {
		return 0
	}
	return m.rows
}

// Cols returns the number of columns. A nil matrix has zero columns.
func (m *Matrix[F]) Cols() int {
	if m == nil {
		return 0
	}
	return m.cols
}

// Empty reports whether the matrix holds no samples.
func (m *Matrix[F]) Empty() bool {
	return m.Rows() == 0 || m.Cols() == 0
}

// Col returns column j. The slice aliases the matrix storage.
func (m *Matrix[F]) Col(j int) []F {
	return m.data[j*m.rows : (j+1)*m.rows : (j+1)*m.rows]
}

// At returns the element at row i, column j.
func (m *Matrix[F]) At(i, j int) F {
	return m.data[j*m.rows+i]
}

// Set assigns v to row i, column j.
func (m *Matrix[F]) Set(i, j int, v F) {
	m.data[j*m.rows+i] = v
}

// Zero sets every element to 0 without changing the shape.
func (m *Matrix[F]) Zero() {
	Zero(m.data)
}

// SetZero resizes the matrix to rows x cols and zero fills it.
// Existing capacity is reused, so repeated calls with the same or a smaller
// shape do not allocate.
func (m *Matrix[F]) SetZero(rows, cols int) {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	m.rows, m.cols = rows, cols
	m.data = EnsureLen(m.data, rows*cols)
	Zero(m.data)
}

// Copy returns a deep copy of the matrix.
func (m *Matrix[F]) Copy() *Matrix[F] {
	if m == nil {
		return nil
	}
	data := make([]F, len(m.data))
	copy(data, m.data)
	return &Matrix[F]{rows: m.rows, cols: m.cols, data: data}
}

// Dense converts the matrix into a gonum dense matrix for linear-algebra
// based analysis. It returns nil for an empty matrix, since gonum does not
// allow zero-sized dense matrices.
func (m *Matrix[F]) Dense() *mat.Dense {
	if m.Empty() {
		return nil
	}
	d := mat.NewDense(m.rows, m.cols, nil)
	for j := 0; j < m.cols; j++ {
		for i, v := range m.Col(j) {
			d.Set(i, j, float64(v))
		}
	}
	return d
}
