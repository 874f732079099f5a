package autodiff_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/revad/internal/autodiff"
	"github.com/born-ml/revad/internal/dense"
	"github.com/born-ml/revad/internal/parallel"
)

const (
	fdStep      = 1e-6
	fdTolerance = 1e-6
)

// checkGradient compares the reverse-mode gradient of f against centered
// finite differences of its plain float64 twin.
func checkGradient(t *testing.T, f autodiff.Func, plain func([]float64) float64, x []float64) {
	t.Helper()

	value, grad, err := autodiff.Gradient(f, x)
	require.NoError(t, err)
	assert.InDelta(t, plain(x), value, 1e-12)

	numeric := autodiff.FiniteDiffGradient(plain, x, fdStep)
	require.Len(t, grad, len(numeric))
	for i := range grad {
		assert.InDelta(t, numeric[i], grad[i], fdTolerance*math.Max(1, math.Abs(numeric[i])),
			"component %d", i)
	}
}

// TestGradientCheck_Matrix uses f = (A + B + x0·x1) · (A + B) over 2x2 blocks.
func TestGradientCheck_Matrix(t *testing.T) {
	f := func(tape *autodiff.Tape, x []autodiff.Var) (autodiff.Var, error) {
		a, err := dense.FromSlice(x[2:6], 2, 2)
		if err != nil {
			return autodiff.Var{}, err
		}
		b, err := dense.FromSlice(x[6:10], 2, 2)
		if err != nil {
			return autodiff.Var{}, err
		}
		s, err := tape.Add(a, b)
		if err != nil {
			return autodiff.Var{}, err
		}
		c, err := tape.AddScalar(s, tape.Product(x[0], x[1]))
		if err != nil {
			return autodiff.Var{}, err
		}
		return tape.Dot(c.Data(), s.Data())
	}
	plain := func(x []float64) float64 {
		var r float64
		for i := range 4 {
			s := x[2+i] + x[6+i]
			r += (s + x[0]*x[1]) * s
		}
		return r
	}

	checkGradient(t, f, plain, []float64{0.5, -1.5, 1, 2, 3, 4, -0.25, 0.75, 1.25, -2})
}

// TestGradientCheck_MixedConstants mixes constants into the operands of every
// primitive.
func TestGradientCheck_MixedConstants(t *testing.T) {
	f := func(tape *autodiff.Tape, x []autodiff.Var) (autodiff.Var, error) {
		v1 := []autodiff.Var{x[0], autodiff.Const(2), x[1]}
		v2 := []autodiff.Var{x[2], x[0], autodiff.Const(3)}
		d, err := tape.Dot(v1, v2)
		if err != nil {
			return autodiff.Var{}, err
		}

		m, err := dense.FromSlice([]autodiff.Var{x[1], autodiff.Const(-1)}, 1, 2)
		if err != nil {
			return autodiff.Var{}, err
		}
		k := autodiff.ConstMatrix(dense.MustFromRows([][]float64{{0.5, 4}}))
		s, err := tape.Add(m, k)
		if err != nil {
			return autodiff.Var{}, err
		}
		e, err := tape.DotConst(s.Data(), []float64{7, 11})
		if err != nil {
			return autodiff.Var{}, err
		}
		return tape.Product(tape.Sum(d, autodiff.Const(1)), e), nil
	}
	plain := func(x []float64) float64 {
		d := x[0]*x[2] + 2*x[0] + 3*x[1]
		e := 7*(x[1]+0.5) + 11*(-1+4)
		return (d + 1) * e
	}

	checkGradient(t, f, plain, []float64{1.1, -0.7, 2.3})
}

func TestGradientCheck_ScalarChain(t *testing.T) {
	f := func(tape *autodiff.Tape, x []autodiff.Var) (autodiff.Var, error) {
		y := x[0]
		for range 5 {
			y = tape.Sum(tape.Product(y, x[1]), x[0])
		}
		return y, nil
	}
	plain := func(x []float64) float64 {
		y := x[0]
		for range 5 {
			y = y*x[1] + x[0]
		}
		return y
	}

	checkGradient(t, f, plain, []float64{0.9, 1.1})
}

func TestGradient_PropagatesError(t *testing.T) {
	f := func(tape *autodiff.Tape, x []autodiff.Var) (autodiff.Var, error) {
		return tape.Dot(x, x[:1])
	}

	_, grad, err := autodiff.Gradient(f, []float64{1, 2})
	require.Error(t, err)
	assert.True(t, autodiff.IsPrecondition(err))
	assert.Nil(t, grad)
}

func TestGradientBatch(t *testing.T) {
	// f(x) = x·x, ∇f = 2x.
	f := func(tape *autodiff.Tape, x []autodiff.Var) (autodiff.Var, error) {
		return tape.Dot(x, x)
	}

	points := make([][]float64, 37)
	for i := range points {
		points[i] = []float64{float64(i), -float64(i) / 2, 1}
	}

	cfg := parallel.DefaultConfig()
	cfg.NumWorkers = 4
	results, err := autodiff.GradientBatch(f, points, cfg)
	require.NoError(t, err)
	require.Len(t, results, len(points))

	for i, r := range results {
		p := points[i]
		assert.Equal(t, p[0]*p[0]+p[1]*p[1]+1, r.Value, "point %d", i)
		assert.Equal(t, []float64{2 * p[0], 2 * p[1], 2}, r.Grad, "point %d", i)
		assert.NoError(t, r.Err)
	}
}

func TestGradientBatch_MatchesSequential(t *testing.T) {
	f := func(tape *autodiff.Tape, x []autodiff.Var) (autodiff.Var, error) {
		return tape.Product(tape.Sum(x[0], x[1]), x[1]), nil
	}
	points := [][]float64{{1, 2}, {3, 4}, {5, 6}, {7, 8}, {9, 10}, {11, 12}, {13, 14}, {15, 16}}

	par, err := autodiff.GradientBatch(f, points, parallel.Config{Enabled: true, NumWorkers: 3, MinChunkSize: 1})
	require.NoError(t, err)
	seq, err := autodiff.GradientBatch(f, points, parallel.Sequential())
	require.NoError(t, err)

	assert.Equal(t, seq, par)
}

func TestGradientBatch_JoinsErrors(t *testing.T) {
	f := func(tape *autodiff.Tape, x []autodiff.Var) (autodiff.Var, error) {
		return tape.Dot(x, x[:1])
	}
	points := [][]float64{{1}, {1, 2}, {3}}

	results, err := autodiff.GradientBatch(f, points, parallel.Sequential())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "point 1:")

	assert.NoError(t, results[0].Err)
	assert.Equal(t, []float64{2}, results[0].Grad)
	assert.True(t, autodiff.IsPrecondition(results[1].Err))
	assert.NoError(t, results[2].Err)

	var joined interface{ Unwrap() []error }
	require.True(t, errors.As(err, &joined))
	assert.Len(t, joined.Unwrap(), 1)
}

func TestFiniteDiffGradient_RestoresInput(t *testing.T) {
	x := []float64{1, 2, 3}
	grad := autodiff.FiniteDiffGradient(func(x []float64) float64 {
		return x[0] * x[1] * x[2]
	}, x, 1e-5)

	assert.Equal(t, []float64{1, 2, 3}, x)
	assert.InDeltaSlice(t, []float64{6, 3, 2}, grad, 1e-8)
}
