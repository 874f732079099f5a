package autodiff

import (
	"fmt"

	"github.com/born-ml/revad/internal/autodiff/ops"
)

// MaxEdges is the largest number of inputs a Partials accepts.
const MaxEdges = 5

// Edge is one input of a multi-input formula paired with its partials.
type Edge struct {
	vars     []Var
	partials []float64 // nil when every element of vars is constant
}

// Partials returns the partial-derivative buffer, one entry per input
// element. It is nil for an all-constant edge; callers must not write
// partials for such an edge (Accumulate is safe to call regardless).
func (e *Edge) Partials() []float64 {
	return e.partials
}

// IsConstant reports whether the edge carries no differentiable element.
func (e *Edge) IsConstant() bool {
	return e.partials == nil
}

// Len returns the number of input elements.
func (e *Edge) Len() int {
	return len(e.vars)
}

// Accumulate adds d to the partial of element n.
// A length-1 edge broadcasts: every n accumulates into its single partial.
func (e *Edge) Accumulate(n int, d float64) {
	if e.partials == nil {
		return
	}
	if len(e.partials) == 1 {
		e.partials[0] += d
		return
	}
	e.partials[n] += d
}

// Scale multiplies every partial by s.
func (e *Edge) Scale(s float64) {
	for i := range e.partials {
		e.partials[i] *= s
	}
}

// Partials builds a single tape node for a formula with several
// differentiable inputs whose partial derivatives the caller computes.
//
// Usage:
//
//	p, err := autodiff.NewPartials(tape, y, mu, sigma)
//	for n := range N {
//	    logp += ...
//	    p.Edge(1).Accumulate(n, dmu)
//	}
//	result := p.Build(logp)
//
// A Partials lives only for one formula evaluation; Build consumes it.
type Partials struct {
	tape  *Tape
	edges []Edge
}

// NewPartials creates an accumulator over up to MaxEdges inputs.
// Edges made only of constants get no buffer.
func NewPartials(t *Tape, inputs ...[]Var) (*Partials, error) {
	if len(inputs) > MaxEdges {
		return nil, fmt.Errorf("%w: %d inputs, at most %d", ErrTooManyEdges, len(inputs), MaxEdges)
	}
	p := &Partials{tape: t, edges: make([]Edge, len(inputs))}
	for k, in := range inputs {
		t.checkOwned(in)
		p.edges[k].vars = in
		if !allConst(in) {
			p.edges[k].partials = make([]float64, len(in))
		}
	}
	return p, nil
}

// Edge returns edge k (0-based, in the order passed to NewPartials).
func (p *Partials) Edge(k int) *Edge {
	return &p.edges[k]
}

// NumEdges returns the number of inputs.
func (p *Partials) NumEdges() int {
	return len(p.edges)
}

// Build records one PartialsOp wired to every differentiable input element
// and returns its output handle with the given value. With no differentiable
// element the result is a constant and nothing is allocated.
//
// Build panics with ErrStaleHandle if the tape was reset after NewPartials.
func (p *Partials) Build(value float64) Var {
	t := p.tape
	n := 0
	for k := range p.edges {
		t.checkOwned(p.edges[k].vars)
		n += p.edges[k].differentiable()
	}
	if n == 0 {
		return Const(value)
	}

	operands := t.ids.Alloc(n)
	partials := t.floats.Alloc(n)
	i := 0
	for k := range p.edges {
		e := &p.edges[k]
		for j, v := range e.vars {
			if v.IsConstant() {
				continue
			}
			operands[i] = v.id
			partials[i] = e.partials[j]
			i++
		}
	}

	out := t.newNode(value)
	t.record(ops.NewPartialsOp(operands, partials, out))
	return Var{id: out, gen: t.gen, val: value}
}

// differentiable counts the non-constant elements of the edge.
func (e *Edge) differentiable() int {
	if e.partials == nil {
		return 0
	}
	n := 0
	for _, v := range e.vars {
		if !v.IsConstant() {
			n++
		}
	}
	return n
}
