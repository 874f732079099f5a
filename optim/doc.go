// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides gradient-based optimizers driven by reverse-mode
// gradients.
//
// # Overview
//
// This package contains:
//   - SGD: Gradient descent with momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Optimizer interface for custom optimizers
//   - Minimize: the evaluate-gradient-step loop
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/revad/autodiff"
//	    "github.com/born-ml/revad/optim"
//	)
//
//	func main() {
//	    // f(x) = (x0 - 1)² + (x1 + 2)²
//	    f := func(tape *autodiff.Tape, x []autodiff.Var) (autodiff.Var, error) {
//	        d := []autodiff.Var{
//	            tape.Sum(x[0], autodiff.Const(-1)),
//	            tape.Sum(x[1], autodiff.Const(2)),
//	        }
//	        return tape.Dot(d, d)
//	    }
//
//	    res, err := optim.Minimize(f, []float64{0, 0},
//	        optim.NewAdam(optim.AdamConfig{LR: 0.05}),
//	        optim.MinimizeConfig{MaxSteps: 2000})
//	}
//
// # Custom Loops
//
//	opt := optim.NewSGD(optim.SGDConfig{LR: 0.01, Momentum: 0.9})
//	for range steps {
//	    _, grad, err := autodiff.Gradient(f, x)
//	    if err != nil {
//	        return err
//	    }
//	    opt.Step(x, grad)
//	}
package optim
