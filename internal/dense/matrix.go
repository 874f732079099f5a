package dense

import "fmt"

// Matrix is a row-major dense array of T.
// T is float64 for constant data and autodiff.Var for differentiable data.
type Matrix[T any] struct {
	shape Shape
	data  []T
}

// New creates a zero-valued rows x cols matrix.
func New[T any](rows, cols int) (Matrix[T], error) {
	shape := Shape{rows, cols}
	if err := shape.Validate(); err != nil {
		return Matrix[T]{}, fmt.Errorf("dense.New: %w", err)
	}
	return Matrix[T]{shape: shape, data: make([]T, rows*cols)}, nil
}

// FromSlice wraps data (row-major) as a rows x cols matrix without copying.
func FromSlice[T any](data []T, rows, cols int) (Matrix[T], error) {
	shape := Shape{rows, cols}
	if err := shape.Validate(); err != nil {
		return Matrix[T]{}, fmt.Errorf("dense.FromSlice: %w", err)
	}
	if len(data) != rows*cols {
		return Matrix[T]{}, fmt.Errorf("dense.FromSlice: %d elements for shape %v", len(data), shape)
	}
	return Matrix[T]{shape: shape, data: data}, nil
}

// FromRows copies a slice of equal-length rows into a matrix.
func FromRows[T any](rows [][]T) (Matrix[T], error) {
	if len(rows) == 0 {
		return Matrix[T]{shape: Shape{0, 0}}, nil
	}
	cols := len(rows[0])
	data := make([]T, 0, len(rows)*cols)
	for i, r := range rows {
		if len(r) != cols {
			return Matrix[T]{}, fmt.Errorf("dense.FromRows: row %d has %d columns, want %d", i, len(r), cols)
		}
		data = append(data, r...)
	}
	return Matrix[T]{shape: Shape{len(rows), cols}, data: data}, nil
}

// MustFromRows is FromRows for literals known to be rectangular.
func MustFromRows[T any](rows [][]T) Matrix[T] {
	m, err := FromRows(rows)
	if err != nil {
		panic(err)
	}
	return m
}

// Shape returns the matrix dimensions.
func (m Matrix[T]) Shape() Shape {
	return m.shape
}

// Rows returns the number of rows.
func (m Matrix[T]) Rows() int {
	return m.shape.Rows()
}

// Cols returns the number of columns.
func (m Matrix[T]) Cols() int {
	return m.shape.Cols()
}

// Len returns the number of elements.
func (m Matrix[T]) Len() int {
	return len(m.data)
}

// At returns the element at (i, j). Out-of-range indices panic.
func (m Matrix[T]) At(i, j int) T {
	return m.data[m.index(i, j)]
}

// Set stores v at (i, j). Out-of-range indices panic.
func (m Matrix[T]) Set(i, j int, v T) {
	m.data[m.index(i, j)] = v
}

// Data exposes the row-major backing slice.
func (m Matrix[T]) Data() []T {
	return m.data
}

func (m Matrix[T]) index(i, j int) int {
	if i < 0 || i >= m.Rows() || j < 0 || j >= m.Cols() {
		panic(fmt.Sprintf("dense: index (%d,%d) out of range for %v", i, j, m.shape))
	}
	return i*m.Cols() + j
}

// Map applies f elementwise, producing a matrix of the same shape.
func Map[T, U any](m Matrix[T], f func(T) U) Matrix[U] {
	out := make([]U, len(m.data))
	for i, v := range m.data {
		out[i] = f(v)
	}
	return Matrix[U]{shape: m.shape.Clone(), data: out}
}

// Rows2D returns the matrix as a slice of row slices (copies).
func Rows2D[T any](m Matrix[T]) [][]T {
	out := make([][]T, m.Rows())
	for i := range out {
		row := make([]T, m.Cols())
		copy(row, m.data[i*m.Cols():(i+1)*m.Cols()])
		out[i] = row
	}
	return out
}
