package autodiff

import (
	"github.com/born-ml/revad/internal/autodiff/ops"
	"github.com/born-ml/revad/internal/check"
	"github.com/born-ml/revad/internal/dense"
)

// VarMatrix creates a matrix of independent variables from constant data.
func (t *Tape) VarMatrix(m dense.Matrix[float64]) dense.Matrix[Var] {
	return dense.Map(m, t.Var)
}

// ConstMatrix wraps constant data as a matrix of constant handles.
func ConstMatrix(m dense.Matrix[float64]) dense.Matrix[Var] {
	return dense.Map(m, Const)
}

// ValueMatrix extracts the values of a matrix of handles.
func ValueMatrix(m dense.Matrix[Var]) dense.Matrix[float64] {
	return dense.Map(m, Var.Value)
}

// AdjointMatrix reads the adjoints of a matrix of handles.
func (t *Tape) AdjointMatrix(m dense.Matrix[Var]) dense.Matrix[float64] {
	return dense.Map(m, t.Adjoint)
}

// Add returns the elementwise sum A + B of two same-shape matrices.
//
// Shape mismatch or a NaN element is a precondition error and nothing is
// allocated. When one side holds only constants, the operation stores the
// differentiable side alone; when both do, the result is constant and no
// node is created.
func (t *Tape) Add(a, b dense.Matrix[Var]) (dense.Matrix[Var], error) {
	const function = "add"
	if err := check.MatchingDims(function, "left-hand side", a.Shape(), "right-hand side", b.Shape()); err != nil {
		return dense.Matrix[Var]{}, err
	}
	if err := notNaN(function, "left-hand side", a.Data()); err != nil {
		return dense.Matrix[Var]{}, err
	}
	if err := notNaN(function, "right-hand side", b.Data()); err != nil {
		return dense.Matrix[Var]{}, err
	}
	t.checkOwned(a.Data())
	t.checkOwned(b.Data())

	ad, bd := a.Data(), b.Data()
	sum := func(i int) float64 { return ad[i].val + bd[i].val }

	var out []Var
	switch aConst, bConst := allConst(ad), allConst(bd); {
	case aConst && bConst:
		out = constsFunc(len(ad), sum)
	case bConst:
		aIDs := t.nodeIDs(ad)
		ids, vars := t.newNodesFunc(len(ad), sum)
		t.record(ops.NewAddConstOp(aIDs, ids))
		out = vars
	case aConst:
		bIDs := t.nodeIDs(bd)
		ids, vars := t.newNodesFunc(len(ad), sum)
		t.record(ops.NewAddConstOp(bIDs, ids))
		out = vars
	default:
		aIDs, bIDs := t.nodeIDs(ad), t.nodeIDs(bd)
		ids, vars := t.newNodesFunc(len(ad), sum)
		t.record(ops.NewAddOp(aIDs, bIDs, ids))
		out = vars
	}
	return reshape(out, a.Shape()), nil
}

// AddConst returns A + B where B is constant data.
// It is equivalent to Add with a constant right-hand side; use it with the
// operands swapped for B + A.
func (t *Tape) AddConst(a dense.Matrix[Var], b dense.Matrix[float64]) (dense.Matrix[Var], error) {
	return t.Add(a, ConstMatrix(b))
}

// AddScalar returns A + c with c broadcast to every element.
// In the backward pass c receives the sum of all output adjoints.
func (t *Tape) AddScalar(a dense.Matrix[Var], c Var) (dense.Matrix[Var], error) {
	const function = "add"
	if err := notNaN(function, "matrix", a.Data()); err != nil {
		return dense.Matrix[Var]{}, err
	}
	if err := check.NotNaN(function, "scalar", c.val); err != nil {
		return dense.Matrix[Var]{}, err
	}
	ad := a.Data()
	t.checkOwned(ad)
	t.checkOwned([]Var{c})

	sum := func(i int) float64 { return ad[i].val + c.val }
	aConst := allConst(ad)
	if (aConst && c.IsConstant()) || len(ad) == 0 {
		return reshape(constsFunc(len(ad), sum), a.Shape()), nil
	}

	var aIDs []ops.NodeID
	if !aConst {
		aIDs = t.nodeIDs(ad)
	}
	ids, vars := t.newNodesFunc(len(ad), sum)
	t.record(ops.NewAddScalarOp(aIDs, c.id, ids))
	return reshape(vars, a.Shape()), nil
}

// newNodesFunc allocates n output nodes with values value(i).
// Callers take every other arena allocation of the operation first; the id
// slice is allocated before any node is appended.
func (t *Tape) newNodesFunc(n int, value func(i int) float64) ([]ops.NodeID, []Var) {
	ids := t.ids.Alloc(n)
	vars := make([]Var, n)
	for i := range n {
		x := value(i)
		ids[i] = t.newNode(x)
		vars[i] = Var{id: ids[i], gen: t.gen, val: x}
	}
	return ids, vars
}

func constsFunc(n int, value func(i int) float64) []Var {
	out := make([]Var, n)
	for i := range out {
		out[i] = Const(value(i))
	}
	return out
}

func allConst(vs []Var) bool {
	for _, v := range vs {
		if !v.IsConstant() {
			return false
		}
	}
	return true
}

func notNaN(function, name string, vs []Var) error {
	return check.NotNaN(function, name, Values(vs)...)
}

// reshape wraps data, which is known to match shape, as a matrix.
func reshape(data []Var, shape dense.Shape) dense.Matrix[Var] {
	rows, cols := shape.Rows(), shape.Cols()
	if len(shape) != 2 {
		rows, cols = len(data), 1
	}
	m, err := dense.FromSlice(data, rows, cols)
	if err != nil {
		panic(err)
	}
	return m
}
