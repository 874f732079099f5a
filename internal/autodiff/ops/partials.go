package ops

// PartialsOp is the aggregate node built by autodiff.Partials.
//
// It wires every differentiable element of every edge to one output, with a
// caller-supplied partial derivative per element:
//
//	adj(operands[i]) += adj(out) * partials[i]
//
// Operands and partials are flattened across edges in edge order.
type PartialsOp struct {
	operands []NodeID
	partials []float64
	out      NodeID
}

// NewPartialsOp creates a new PartialsOp. operands and partials are parallel.
func NewPartialsOp(operands []NodeID, partials []float64, out NodeID) *PartialsOp {
	return &PartialsOp{operands: operands, partials: partials, out: out}
}

// Chain applies the chain rule with the recorded partials.
func (op *PartialsOp) Chain(nodes []Node) {
	adj := nodes[op.out].Adjoint
	for i, id := range op.operands {
		nodes[id].Adjoint += adj * op.partials[i]
	}
}

// Len returns the number of wired operands.
func (op *PartialsOp) Len() int {
	return len(op.operands)
}
