// Package dense provides the row-major dense storage used to pass matrices
// and vectors of values or differentiable handles into the autodiff engine.
package dense

import "fmt"

// Shape represents the dimensions of a dense array.
// A matrix has shape {rows, cols}; a vector has shape {n}.
type Shape []int

// NumElements returns the total number of elements.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that all dimensions are non-negative.
// Empty matrices (a zero dimension) are allowed; they produce empty graphs.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be >= 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// Rows returns the leading dimension (1 for scalars).
func (s Shape) Rows() int {
	if len(s) == 0 {
		return 1
	}
	return s[0]
}

// Cols returns the second dimension (1 for vectors and scalars).
func (s Shape) Cols() int {
	if len(s) < 2 {
		return 1
	}
	return s[1]
}

// String formats the shape as "RxC" for matrices and "[n]" otherwise.
func (s Shape) String() string {
	if len(s) == 2 {
		return fmt.Sprintf("%dx%d", s[0], s[1])
	}
	return fmt.Sprint([]int(s))
}
