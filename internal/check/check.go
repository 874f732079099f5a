package check

import (
	"math"
	"strconv"

	"github.com/born-ml/revad/internal/dense"
)

// NotNaN fails if any value is NaN.
func NotNaN(function, name string, xs ...float64) error {
	return each(function, name, xs, func(x float64) bool { return !math.IsNaN(x) },
		"is %v, but must not be nan")
}

// Finite fails if any value is NaN or infinite.
func Finite(function, name string, xs ...float64) error {
	return each(function, name, xs, func(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) },
		"is %v, but must be finite")
}

// PositiveFinite fails unless every value is > 0 and finite.
func PositiveFinite(function, name string, xs ...float64) error {
	return each(function, name, xs, func(x float64) bool { return x > 0 && !math.IsInf(x, 1) },
		"is %v, but must be positive finite")
}

// Nonnegative fails if any value is negative or NaN.
func Nonnegative(function, name string, xs ...float64) error {
	return each(function, name, xs, func(x float64) bool { return x >= 0 },
		"is %v, but must be nonnegative")
}

// LessOrEqual fails if any value exceeds high (or is NaN).
func LessOrEqual(function, name string, high float64, xs ...float64) error {
	return each(function, name, xs, func(x float64) bool { return x <= high },
		"is %v, but must be less than or equal to "+strconv.FormatFloat(high, 'g', -1, 64))
}

// MatchingDims fails unless both shapes are identical.
func MatchingDims(function, name1 string, s1 dense.Shape, name2 string, s2 dense.Shape) error {
	if s1.Rows() != s2.Rows() {
		return invalidArgument(function, name2, "rows (%d) must match %s rows (%d)", s2.Rows(), name1, s1.Rows())
	}
	if s1.Cols() != s2.Cols() {
		return invalidArgument(function, name2, "columns (%d) must match %s columns (%d)", s2.Cols(), name1, s1.Cols())
	}
	return nil
}

// MatchingSizes fails unless both containers hold the same number of elements.
func MatchingSizes(function, name1 string, n1 int, name2 string, n2 int) error {
	if n1 != n2 {
		return invalidArgument(function, name2, "size (%d) must match %s size (%d)", n2, name1, n1)
	}
	return nil
}

// ConsistentSizes fails unless every non-scalar argument has the same size.
// Scalars (size 1) broadcast against any size. names and sizes are parallel.
func ConsistentSizes(function string, names []string, sizes []int) error {
	n := MaxSize(sizes...)
	if n <= 1 {
		return nil
	}
	for i, size := range sizes {
		if size != 1 && size != n {
			return invalidArgument(function, names[i], "has size %d, but must have size 1 or %d", size, n)
		}
	}
	return nil
}

// MaxSize returns the largest size, or 0 when no size is given.
func MaxSize(sizes ...int) int {
	n := 0
	for _, s := range sizes {
		n = max(n, s)
	}
	return n
}

func each(function, name string, xs []float64, ok func(float64) bool, format string) error {
	for i, x := range xs {
		if ok(x) {
			continue
		}
		index := i
		if len(xs) == 1 {
			index = -1
		}
		return domainError(function, name, index, format, x)
	}
	return nil
}
