// Package ops defines the operation nodes recorded on the propagating tape.
//
// Each operation is built in two phases:
//   - Forward: the builder on autodiff.Tape validates operands, computes
//     output values, allocates output nodes and copies whatever operand data
//     the backward rule needs into arena storage.
//   - Backward: Chain reads the (fully accumulated) adjoints of the outputs
//     and adds each operand's contribution to that operand's adjoint.
//
// Chain only ever accumulates (+=); it never overwrites an operand adjoint.
//
// Supported operations:
//   - AddOp, AddConstOp: elementwise A + B (d/dA = d/dB = 1)
//   - AddScalarOp: A + c broadcast (c receives the sum of output adjoints)
//   - DotOp, DotConstOp: v1 · v2 (d/dv1 = v2, d/dv2 = v1)
//   - SumOp, ProductOp: scalar a + b and a * b
//   - PartialsOp: generic aggregate with caller-supplied partial derivatives
package ops

// NodeID indexes a node in the tape's node table.
type NodeID int32

// NoNode marks the absent (constant) side of an operation.
const NoNode NodeID = -1

// Node is one scalar entry of the node table.
// Value is fixed at construction; Adjoint only ever accumulates.
type Node struct {
	Value   float64
	Adjoint float64
}

// Operation is a node on the propagating tape.
type Operation interface {
	// Chain propagates this operation's output adjoints to its operands.
	// It is called exactly once per sweep, after every operation built
	// later than this one has been chained.
	Chain(nodes []Node)
}
