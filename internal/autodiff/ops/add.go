package ops

// AddOp represents elementwise matrix addition: C = A + B.
//
// Backward pass:
//   - d(a+b)/da = 1, so adj(a[i]) += adj(c[i])
//   - d(a+b)/db = 1, so adj(b[i]) += adj(c[i])
//
// The outputs are plain nodes with no operation of their own; this op is the
// only entry the sweep visits for the whole matrix. Individual constant
// elements of A or B are stored as NoNode and skipped.
type AddOp struct {
	a, b []NodeID // Operand nodes, same length as out
	out  []NodeID // Nodes holding a[i] + b[i]
}

// NewAddOp creates a new AddOp. All slices must have equal length.
func NewAddOp(a, b, out []NodeID) *AddOp {
	return &AddOp{a: a, b: b, out: out}
}

// Chain propagates output adjoints to both operands.
func (op *AddOp) Chain(nodes []Node) {
	for i, c := range op.out {
		adj := nodes[c].Adjoint
		if a := op.a[i]; a != NoNode {
			nodes[a].Adjoint += adj
		}
		if b := op.b[i]; b != NoNode {
			nodes[b].Adjoint += adj
		}
	}
}

// AddConstOp represents C = A + B where B is constant data.
// Only the differentiable side is stored; B's values are folded into the
// output values at construction.
type AddConstOp struct {
	a   []NodeID
	out []NodeID
}

// NewAddConstOp creates a new AddConstOp.
func NewAddConstOp(a, out []NodeID) *AddConstOp {
	return &AddConstOp{a: a, out: out}
}

// Chain propagates output adjoints to the differentiable operand.
func (op *AddConstOp) Chain(nodes []Node) {
	for i, c := range op.out {
		if a := op.a[i]; a != NoNode {
			nodes[a].Adjoint += nodes[c].Adjoint
		}
	}
}

// AddScalarOp represents broadcast addition C = A + c.
//
// Backward pass:
//   - adj(a[i]) += adj(C[i])
//   - adj(c) += Σ adj(C[i])
//
// Either side may be absent: a is nil when A is constant data and
// scalar is NoNode when c is a constant.
type AddScalarOp struct {
	a      []NodeID
	scalar NodeID
	out    []NodeID
}

// NewAddScalarOp creates a new AddScalarOp.
func NewAddScalarOp(a []NodeID, scalar NodeID, out []NodeID) *AddScalarOp {
	return &AddScalarOp{a: a, scalar: scalar, out: out}
}

// Chain propagates output adjoints to the matrix and reduces them into the scalar.
func (op *AddScalarOp) Chain(nodes []Node) {
	var sum float64
	for i, c := range op.out {
		adj := nodes[c].Adjoint
		if op.a != nil && op.a[i] != NoNode {
			nodes[op.a[i]].Adjoint += adj
		}
		sum += adj
	}
	if op.scalar != NoNode {
		nodes[op.scalar].Adjoint += sum
	}
}
