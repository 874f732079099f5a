package autodiff

import "github.com/born-ml/revad/internal/autodiff/ops"

// Sum returns a + b. A constant operand gets no adjoint update; two
// constants give a constant.
func (t *Tape) Sum(a, b Var) Var {
	t.checkOwned([]Var{a, b})
	x := a.val + b.val
	if a.IsConstant() && b.IsConstant() {
		return Const(x)
	}
	out := t.newNode(x)
	t.record(ops.NewSumOp(a.id, b.id, out))
	return Var{id: out, gen: t.gen, val: x}
}

// Product returns a * b. A constant operand gets no adjoint update; two
// constants give a constant.
func (t *Tape) Product(a, b Var) Var {
	t.checkOwned([]Var{a, b})
	x := a.val * b.val
	if a.IsConstant() && b.IsConstant() {
		return Const(x)
	}
	out := t.newNode(x)
	t.record(ops.NewProductOp(a.id, b.id, a.val, b.val, out))
	return Var{id: out, gen: t.gen, val: x}
}
