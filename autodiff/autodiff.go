// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides first-order reverse-mode automatic
// differentiation of scalar float64 functions.
//
// Values are built on a Tape. Each operation computes its result eagerly and
// records how to push adjoints back to its operands; Grad then sweeps the
// tape in reverse. Operand data lives in an arena owned by the tape, so a
// Reset between evaluations frees everything at once.
//
// Example:
//
//	import "github.com/born-ml/revad/autodiff"
//
//	func main() {
//	    tape := autodiff.NewTape()
//	    x := tape.Var(2)
//	    y := tape.Var(3)
//	    z, _ := tape.Dot([]autodiff.Var{x, y}, []autodiff.Var{y, y})
//	    _ = tape.Grad(z)
//	    fmt.Println(tape.Adjoint(x), tape.Adjoint(y)) // 3 8
//	}
package autodiff

import (
	"log/slog"

	"github.com/born-ml/revad/internal/arena"
	"github.com/born-ml/revad/internal/autodiff"
	"github.com/born-ml/revad/internal/dense"
	"github.com/born-ml/revad/internal/parallel"
)

// Tape records operations and runs the reverse sweep.
type Tape = autodiff.Tape

// Var is a differentiable scalar: a handle to a node on a Tape.
type Var = autodiff.Var

// Matrix is a row-major dense matrix.
type Matrix[T any] = dense.Matrix[T]

// Partials builds one node from several inputs and caller-computed partials.
type Partials = autodiff.Partials

// Edge is one input of a Partials.
type Edge = autodiff.Edge

// Func is a differentiable scalar function of its independent variables.
type Func = autodiff.Func

// Result is one evaluation of GradientBatch.
type Result = autodiff.Result

// Option configures a Tape.
type Option = autodiff.Option

// ArenaConfig sets the arena block size and memory ceiling.
type ArenaConfig = arena.Config

// ArenaStats reports arena accounting.
type ArenaStats = arena.Stats

// ParallelConfig controls GradientBatch workers.
type ParallelConfig = parallel.Config

// MaxEdges is the largest number of inputs a Partials accepts.
const MaxEdges = autodiff.MaxEdges

// Errors.
var (
	ErrStaleHandle  = autodiff.ErrStaleHandle
	ErrAlreadySwept = autodiff.ErrAlreadySwept
	ErrTooManyEdges = autodiff.ErrTooManyEdges
	ErrSeedMismatch = autodiff.ErrSeedMismatch
	ErrExhausted    = arena.ErrExhausted
)

// NewTape creates an empty tape.
//
// Example:
//
//	tape := autodiff.NewTape(autodiff.WithArenaConfig(autodiff.ArenaConfig{MaxBytes: 1 << 20}))
func NewTape(opts ...Option) *Tape {
	return autodiff.NewTape(opts...)
}

// WithArenaConfig sets the arena block size and memory ceiling.
func WithArenaConfig(cfg ArenaConfig) Option {
	return autodiff.WithArenaConfig(cfg)
}

// WithLogger enables debug records for sweeps and resets.
func WithLogger(logger *slog.Logger) Option {
	return autodiff.WithLogger(logger)
}

// DefaultArenaConfig returns the default arena configuration.
func DefaultArenaConfig() ArenaConfig {
	return arena.DefaultConfig()
}

// DefaultParallelConfig uses every CPU.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// Const returns a constant handle.
func Const(x float64) Var {
	return autodiff.Const(x)
}

// Consts wraps values as constant handles.
func Consts(xs []float64) []Var {
	return autodiff.Consts(xs)
}

// Values extracts the values of a slice of handles.
func Values(vs []Var) []float64 {
	return autodiff.Values(vs)
}

// NewMatrix wraps row-major data as a rows x cols matrix.
func NewMatrix[T any](data []T, rows, cols int) (Matrix[T], error) {
	return dense.FromSlice(data, rows, cols)
}

// MatrixFromRows builds a matrix from equal-length rows.
func MatrixFromRows[T any](rows [][]T) (Matrix[T], error) {
	return dense.FromRows(rows)
}

// ConstMatrix wraps constant data as a matrix of constant handles.
func ConstMatrix(m Matrix[float64]) Matrix[Var] {
	return autodiff.ConstMatrix(m)
}

// ValueMatrix extracts the values of a matrix of handles.
func ValueMatrix(m Matrix[Var]) Matrix[float64] {
	return autodiff.ValueMatrix(m)
}

// NewPartials creates an accumulator over up to MaxEdges inputs.
func NewPartials(t *Tape, inputs ...[]Var) (*Partials, error) {
	return autodiff.NewPartials(t, inputs...)
}

// Gradient evaluates f and its gradient at x on a fresh tape.
func Gradient(f Func, x []float64, opts ...Option) (float64, []float64, error) {
	return autodiff.Gradient(f, x, opts...)
}

// GradientBatch evaluates f and its gradient at every point, one tape per
// worker.
func GradientBatch(f Func, points [][]float64, cfg ParallelConfig, opts ...Option) ([]Result, error) {
	return autodiff.GradientBatch(f, points, cfg, opts...)
}

// FiniteDiffGradient approximates the gradient of f at x by centered
// differences with step h.
func FiniteDiffGradient(f func(x []float64) float64, x []float64, h float64) []float64 {
	return autodiff.FiniteDiffGradient(f, x, h)
}

// IsPrecondition reports whether err is a shape or domain error raised
// before any node was built.
func IsPrecondition(err error) bool {
	return autodiff.IsPrecondition(err)
}
