package ops

// ProductOp represents scalar multiplication: out = a * b.
//
// Backward pass:
//   - d(a*b)/da = b, so adj(a) += adj(out) * b
//   - d(a*b)/db = a, so adj(b) += adj(out) * a
//
// A constant operand is NoNode; its value is still kept for the other side.
type ProductOp struct {
	a, b       NodeID
	aVal, bVal float64
	out        NodeID
}

// NewProductOp creates a new ProductOp.
func NewProductOp(a, b NodeID, aVal, bVal float64, out NodeID) *ProductOp {
	return &ProductOp{a: a, b: b, aVal: aVal, bVal: bVal, out: out}
}

// Chain computes operand gradients for multiplication.
func (op *ProductOp) Chain(nodes []Node) {
	adj := nodes[op.out].Adjoint
	if op.a != NoNode {
		nodes[op.a].Adjoint += adj * op.bVal
	}
	if op.b != NoNode {
		nodes[op.b].Adjoint += adj * op.aVal
	}
}
