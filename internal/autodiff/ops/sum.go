package ops

// SumOp represents scalar addition: out = a + b.
// A constant operand is NoNode.
type SumOp struct {
	a, b NodeID
	out  NodeID
}

// NewSumOp creates a new SumOp.
func NewSumOp(a, b, out NodeID) *SumOp {
	return &SumOp{a: a, b: b, out: out}
}

// Chain passes the output adjoint through to both operands.
func (op *SumOp) Chain(nodes []Node) {
	adj := nodes[op.out].Adjoint
	if op.a != NoNode {
		nodes[op.a].Adjoint += adj
	}
	if op.b != NoNode {
		nodes[op.b].Adjoint += adj
	}
}
