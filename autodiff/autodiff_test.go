// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package autodiff_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/born-ml/revad/autodiff"
)

// TestPublicAPI verifies the re-exported tape API end to end.
func TestPublicAPI(t *testing.T) {
	tape := autodiff.NewTape(autodiff.WithArenaConfig(autodiff.DefaultArenaConfig()))

	a, err := autodiff.MatrixFromRows([][]float64{{1, 2}, {3, 4}})
	if err != nil {
		t.Fatalf("MatrixFromRows failed: %v", err)
	}
	va := tape.VarMatrix(a)
	c, err := tape.AddConst(va, a)
	if err != nil {
		t.Fatalf("AddConst failed: %v", err)
	}

	if got := autodiff.ValueMatrix(c).At(1, 1); got != 8 {
		t.Errorf("C[1,1] = %v, want 8", got)
	}
	if err := tape.Backward(c.Data(), []float64{1, 1, 1, 1}); err != nil {
		t.Fatalf("Backward failed: %v", err)
	}
	if got := tape.AdjointMatrix(va).At(0, 1); got != 1 {
		t.Errorf("adj(A[0,1]) = %v, want 1", got)
	}
}

func TestPublicErrors(t *testing.T) {
	tape := autodiff.NewTape()
	x := tape.Var(1)
	_ = tape.Grad(x)

	if err := tape.Grad(x); !errors.Is(err, autodiff.ErrAlreadySwept) {
		t.Errorf("second Grad = %v, want ErrAlreadySwept", err)
	}

	_, err := tape.Dot([]autodiff.Var{x}, nil)
	if !autodiff.IsPrecondition(err) {
		t.Errorf("Dot size mismatch = %v, want precondition error", err)
	}

	parts := make([][]autodiff.Var, autodiff.MaxEdges+1)
	if _, err := autodiff.NewPartials(tape, parts...); !errors.Is(err, autodiff.ErrTooManyEdges) {
		t.Errorf("NewPartials = %v, want ErrTooManyEdges", err)
	}
}

func Example() {
	tape := autodiff.NewTape()
	x := tape.Var(2)
	y := tape.Var(3)

	z, err := tape.Dot([]autodiff.Var{x, y}, []autodiff.Var{y, y}) // xy + y²
	if err != nil {
		panic(err)
	}
	if err := tape.Grad(z); err != nil {
		panic(err)
	}
	fmt.Println(z.Value(), tape.Adjoint(x), tape.Adjoint(y))
	// Output: 15 3 8
}

func ExampleGradient() {
	// f(x) = x0·x1 + x1
	f := func(tape *autodiff.Tape, x []autodiff.Var) (autodiff.Var, error) {
		return tape.Sum(tape.Product(x[0], x[1]), x[1]), nil
	}

	value, grad, err := autodiff.Gradient(f, []float64{4, 5})
	if err != nil {
		panic(err)
	}
	fmt.Println(value, grad)
	// Output: 25 [5 5]
}

func ExampleNewPartials() {
	// f(a, b) = a²b with hand-computed partials 2ab and a².
	tape := autodiff.NewTape()
	a, b := tape.Var(3), tape.Var(2)

	p, err := autodiff.NewPartials(tape, []autodiff.Var{a}, []autodiff.Var{b})
	if err != nil {
		panic(err)
	}
	av, bv := a.Value(), b.Value()
	p.Edge(0).Accumulate(0, 2*av*bv)
	p.Edge(1).Accumulate(0, av*av)
	f := p.Build(av * av * bv)

	if err := tape.Grad(f); err != nil {
		panic(err)
	}
	fmt.Println(f.Value(), tape.Adjoint(a), tape.Adjoint(b))
	// Output: 18 12 9
}
