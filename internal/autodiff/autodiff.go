// Package autodiff implements first-order reverse-mode automatic
// differentiation over scalar float64 values.
//
// Architecture:
//   - Tape: one computation context. Owns an arena for operation data, a node
//     table (value + adjoint per scalar) and the propagating stack of
//     operations in creation order.
//   - Var: a copyable handle to one node, caching the node's value.
//   - Operations (package ops): one node type per primitive; each computes
//     its value at construction and knows how to chain adjoints backward.
//   - Partials: builds one aggregate node from several inputs plus
//     caller-computed partial derivatives.
//
// Usage:
//
//	tape := autodiff.NewTape()
//	x := tape.Var(2)
//	y := tape.Var(3)
//	z, _ := tape.Dot([]autodiff.Var{x, y}, []autodiff.Var{y, y}) // z = xy + y²
//	_ = tape.Grad(z)
//	fmt.Println(tape.Adjoint(x), tape.Adjoint(y)) // 3 8
//	tape.Reset()
//
// A Tape is not safe for concurrent use. Independent computations run in
// parallel with one Tape each (see GradientBatch).
package autodiff

import (
	"github.com/born-ml/revad/internal/autodiff/ops"
)

// Var is a differentiable scalar: a handle to a node on a Tape.
//
// Copying a Var copies the reference, not the node. A constant Var has no
// node; it is never updated by a sweep and its adjoint reads as zero.
type Var struct {
	id  ops.NodeID
	gen uint32
	val float64
}

// Const returns a constant handle. It allocates nothing.
func Const(x float64) Var {
	return Var{id: ops.NoNode, val: x}
}

// Value returns the value computed when the node was built.
func (v Var) Value() float64 {
	return v.val
}

// IsConstant reports whether v has no node.
func (v Var) IsConstant() bool {
	return v.id == ops.NoNode
}

// ID returns the node index (ops.NoNode for constants).
func (v Var) ID() ops.NodeID {
	return v.id
}

// Consts wraps values as constant handles.
func Consts(xs []float64) []Var {
	out := make([]Var, len(xs))
	for i, x := range xs {
		out[i] = Const(x)
	}
	return out
}

// Values extracts the values of a slice of handles.
func Values(vs []Var) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = v.val
	}
	return out
}
