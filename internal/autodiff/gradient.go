package autodiff

import (
	"errors"
	"fmt"

	"github.com/born-ml/revad/internal/parallel"
)

// Func is a differentiable scalar function built on a tape from its
// independent variables.
type Func func(t *Tape, x []Var) (Var, error)

// Gradient evaluates f at x on a fresh tape and returns f(x) and ∇f(x).
func Gradient(f Func, x []float64, opts ...Option) (float64, []float64, error) {
	return gradientOn(NewTape(opts...), f, x)
}

// gradientOn evaluates f at x on t and leaves t reset.
func gradientOn(t *Tape, f Func, x []float64) (float64, []float64, error) {
	var (
		value float64
		grad  []float64
	)
	err := t.Scope(func(t *Tape) error {
		vars := t.Vars(x)
		y, err := f(t, vars)
		if err != nil {
			return err
		}
		if err := t.Grad(y); err != nil {
			return err
		}
		value = y.Value()
		grad = t.Adjoints(vars)
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return value, grad, nil
}

// Result is one evaluation of GradientBatch.
type Result struct {
	Value float64
	Grad  []float64
	Err   error
}

// GradientBatch evaluates f and its gradient at every point.
//
// Points are split across workers; each worker owns one tape, reset between
// points, so no mutable state is shared. f must not retain handles between
// calls. The returned error joins the errors of every failed point; the
// per-point errors are also in Result.Err.
func GradientBatch(f Func, points [][]float64, cfg parallel.Config, opts ...Option) ([]Result, error) {
	results := make([]Result, len(points))
	parallel.ForChunks(len(points), func(start, end int) {
		t := NewTape(opts...)
		for i := start; i < end; i++ {
			v, g, err := gradientOn(t, f, points[i])
			results[i] = Result{Value: v, Grad: g, Err: err}
		}
	}, cfg)

	var errs []error
	for i, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("point %d: %w", i, r.Err))
		}
	}
	return results, errors.Join(errs...)
}

// FiniteDiffGradient approximates ∇f(x) by centered differences with step h:
//
//	∂f/∂x_i ≈ (f(x + h e_i) - f(x - h e_i)) / 2h
//
// x is restored before returning.
func FiniteDiffGradient(f func(x []float64) float64, x []float64, h float64) []float64 {
	grad := make([]float64, len(x))
	for i := range x {
		xi := x[i]
		x[i] = xi + h
		fp := f(x)
		x[i] = xi - h
		fm := f(x)
		x[i] = xi
		grad[i] = (fp - fm) / (2 * h)
	}
	return grad
}
