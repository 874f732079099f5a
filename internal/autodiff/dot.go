package autodiff

import (
	"github.com/born-ml/revad/internal/autodiff/ops"
	"github.com/born-ml/revad/internal/check"
)

// Dot returns the dot product v1 · v2 of two equal-length vectors.
//
// A side made entirely of constants is stored as plain values with no node
// references; when both sides are constant the result is a constant.
func (t *Tape) Dot(v1, v2 []Var) (Var, error) {
	const function = "dot_product"
	if err := check.MatchingSizes(function, "v1", len(v1), "v2", len(v2)); err != nil {
		return Var{}, err
	}
	if err := notNaN(function, "v1", v1); err != nil {
		return Var{}, err
	}
	if err := notNaN(function, "v2", v2); err != nil {
		return Var{}, err
	}
	t.checkOwned(v1)
	t.checkOwned(v2)

	var r float64
	for i := range v1 {
		r += v1[i].val * v2[i].val
	}

	c1, c2 := allConst(v1), allConst(v2)
	if c1 && c2 {
		return Const(r), nil
	}

	// Arena storage is taken before the output node so that an exhausted
	// arena leaves the node table unchanged.
	switch {
	case c2:
		ids, vals := t.nodeIDs(v1), t.valuesOf(v2)
		out := t.newNode(r)
		t.record(ops.NewDotConstOp(ids, vals, out))
		return Var{id: out, gen: t.gen, val: r}, nil
	case c1:
		ids, vals := t.nodeIDs(v2), t.valuesOf(v1)
		out := t.newNode(r)
		t.record(ops.NewDotConstOp(ids, vals, out))
		return Var{id: out, gen: t.gen, val: r}, nil
	default:
		ids1, ids2 := t.nodeIDs(v1), t.nodeIDs(v2)
		vals1, vals2 := t.valuesOf(v1), t.valuesOf(v2)
		out := t.newNode(r)
		t.record(ops.NewDotOp(ids1, ids2, vals1, vals2, out))
		return Var{id: out, gen: t.gen, val: r}, nil
	}
}

// DotConst returns v · c where c is constant data.
func (t *Tape) DotConst(v []Var, c []float64) (Var, error) {
	return t.Dot(v, Consts(c))
}
