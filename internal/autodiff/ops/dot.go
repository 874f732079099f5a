package ops

// DotOp represents the dot product of two differentiable vectors: r = v1 · v2.
//
// Backward pass:
//   - adj(v1[i]) += adj(r) * v2[i]
//   - adj(v2[i]) += adj(r) * v1[i]
//
// Operand values are copied at construction so the backward pass reads
// contiguous arena memory instead of chasing node indices. Individual
// constant elements are stored as NoNode and receive no update.
type DotOp struct {
	v1, v2 []NodeID
	val1   []float64
	val2   []float64
	out    NodeID
}

// NewDotOp creates a new DotOp. val1 and val2 hold the operand values.
func NewDotOp(v1, v2 []NodeID, val1, val2 []float64, out NodeID) *DotOp {
	return &DotOp{v1: v1, v2: v2, val1: val1, val2: val2, out: out}
}

// Chain applies the product rule under the reduction.
func (op *DotOp) Chain(nodes []Node) {
	adj := nodes[op.out].Adjoint
	for i := range op.v1 {
		if a := op.v1[i]; a != NoNode {
			nodes[a].Adjoint += adj * op.val2[i]
		}
		if b := op.v2[i]; b != NoNode {
			nodes[b].Adjoint += adj * op.val1[i]
		}
	}
}

// DotConstOp represents r = v · c where c is constant data.
// No node exists for c and it receives no update.
type DotConstOp struct {
	v   []NodeID
	c   []float64
	out NodeID
}

// NewDotConstOp creates a new DotConstOp.
func NewDotConstOp(v []NodeID, c []float64, out NodeID) *DotConstOp {
	return &DotConstOp{v: v, c: c, out: out}
}

// Chain propagates adj(r) * c[i] to each v[i].
func (op *DotConstOp) Chain(nodes []Node) {
	adj := nodes[op.out].Adjoint
	for i, id := range op.v {
		if id != NoNode {
			nodes[id].Adjoint += adj * op.c[i]
		}
	}
}
