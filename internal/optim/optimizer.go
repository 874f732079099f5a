// Package optim implements gradient-based optimizers over a flat parameter
// vector, driven by reverse-mode gradients.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Gradient descent with momentum
//   - Adam: Adaptive Moment Estimation
//   - Minimize: runs an optimizer against an autodiff.Func
//
// Example usage:
//
//	opt := optim.NewAdam(optim.AdamConfig{LR: 0.05})
//	res, err := optim.Minimize(f, x0, opt, optim.MinimizeConfig{MaxSteps: 500})
package optim

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/born-ml/revad/internal/autodiff"
)

// Optimizer updates parameters in place from their gradient.
type Optimizer interface {
	// Step applies one update. params and grad have equal length.
	Step(params, grad []float64)

	// Reset clears internal state (velocities, moments, timestep).
	Reset()

	// GetLR returns the current learning rate.
	GetLR() float64
}

// MinimizeConfig controls Minimize.
type MinimizeConfig struct {
	MaxSteps int     // Maximum optimizer steps (default: 1000)
	GradTol  float64 // Stop when the gradient's max-norm drops below this (default: 1e-8)
	LogEvery int     // Log progress every n steps; 0 disables
	Logger   *slog.Logger
	TapeOpts []autodiff.Option
}

// MinimizeResult is the outcome of Minimize.
type MinimizeResult struct {
	X     []float64 // Final parameters
	Value float64   // f(X)
	Grad  []float64 // ∇f(X)
	Steps int       // Optimizer steps taken
}

// Minimize repeatedly evaluates f and its gradient at x and applies opt until
// the gradient is small or MaxSteps is reached. x is not modified.
//
// One tape is reused for every evaluation and reset in between.
func Minimize(f autodiff.Func, x []float64, opt Optimizer, cfg MinimizeConfig) (MinimizeResult, error) {
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = 1000
	}
	if cfg.GradTol <= 0 {
		cfg.GradTol = 1e-8
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	params := append([]float64(nil), x...)
	tape := autodiff.NewTape(cfg.TapeOpts...)

	res := MinimizeResult{X: params}
	for step := 0; ; step++ {
		value, grad, err := evaluate(tape, f, params)
		if err != nil {
			return res, fmt.Errorf("step %d: %w", step, err)
		}
		res.Value, res.Grad, res.Steps = value, grad, step

		if cfg.LogEvery > 0 && step%cfg.LogEvery == 0 {
			logger.LogAttrs(context.Background(), slog.LevelInfo, "minimize",
				slog.Int("step", step),
				slog.Float64("value", value),
				slog.Float64("grad_norm", maxNorm(grad)))
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return res, fmt.Errorf("step %d: objective is %v", step, value)
		}
		if maxNorm(grad) < cfg.GradTol || step == cfg.MaxSteps {
			return res, nil
		}
		opt.Step(params, grad)
	}
}

func evaluate(tape *autodiff.Tape, f autodiff.Func, x []float64) (float64, []float64, error) {
	var (
		value float64
		grad  []float64
	)
	err := tape.Scope(func(tape *autodiff.Tape) error {
		vars := tape.Vars(x)
		y, err := f(tape, vars)
		if err != nil {
			return err
		}
		if err := tape.Grad(y); err != nil {
			return err
		}
		value, grad = y.Value(), tape.Adjoints(vars)
		return nil
	})
	return value, grad, err
}

func maxNorm(g []float64) float64 {
	var m float64
	for _, v := range g {
		m = max(m, math.Abs(v))
	}
	return m
}
