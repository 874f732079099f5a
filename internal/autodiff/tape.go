package autodiff

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/born-ml/revad/internal/arena"
	"github.com/born-ml/revad/internal/autodiff/ops"
)

// generations hands out tape generations. Every tape and every Reset takes a
// fresh value, so a handle is valid on exactly one tape generation.
var generations atomic.Uint32

// Tape records operations during the forward pass and propagates adjoints
// during the reverse sweep.
//
// Storage:
//   - nodes: one entry per scalar (independent variables and operation
//     outputs). Nodes without an operation form the non-propagating part of
//     the tape: they accumulate adjoints but have nothing to chain.
//   - stack: operations in creation order (the propagating tape).
//   - arena: operand indices and cached operand values of the operations.
//
// Usage:
//
//	tape := NewTape()
//	// ... build an expression ...
//	err := tape.Grad(result)
//	grad := tape.Adjoint(x)
//	tape.Reset()
type Tape struct {
	arena  *arena.Arena
	floats *arena.Slab[float64]
	ids    *arena.Slab[ops.NodeID]

	nodes []ops.Node
	stack []ops.Operation

	gen    uint32
	swept  bool
	logger *slog.Logger
}

// Option configures a Tape.
type Option func(*tapeConfig)

type tapeConfig struct {
	arena  arena.Config
	logger *slog.Logger
}

// WithArenaConfig sets the arena block size and memory ceiling.
func WithArenaConfig(cfg arena.Config) Option {
	return func(c *tapeConfig) {
		c.arena = cfg
	}
}

// WithLogger enables debug records for sweeps and resets.
func WithLogger(logger *slog.Logger) Option {
	return func(c *tapeConfig) {
		c.logger = logger
	}
}

// NewTape creates an empty tape with its own arena.
func NewTape(opts ...Option) *Tape {
	cfg := tapeConfig{arena: arena.DefaultConfig()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}

	a := arena.New(cfg.arena)
	return &Tape{
		arena:  a,
		floats: arena.NewSlab[float64](a),
		ids:    arena.NewSlab[ops.NodeID](a),
		nodes:  make([]ops.Node, 0, 64), // Pre-allocate for common case
		stack:  make([]ops.Operation, 0, 64),
		gen:    generations.Add(1),
		logger: cfg.logger,
	}
}

// Var creates an independent variable with value x.
func (t *Tape) Var(x float64) Var {
	return Var{id: t.newNode(x), gen: t.gen, val: x}
}

// Vars creates one independent variable per value.
func (t *Tape) Vars(xs []float64) []Var {
	out := make([]Var, len(xs))
	for i, x := range xs {
		out[i] = t.Var(x)
	}
	return out
}

// Value returns the node value behind v. Constants return their own value.
func (t *Tape) Value(v Var) float64 {
	if v.IsConstant() {
		return v.val
	}
	t.mustOwn(v)
	return t.nodes[v.id].Value
}

// Adjoint returns the accumulated adjoint of v (zero for constants).
// It is complete once Grad has returned.
func (t *Tape) Adjoint(v Var) float64 {
	if v.IsConstant() {
		return 0
	}
	t.mustOwn(v)
	return t.nodes[v.id].Adjoint
}

// Adjoints returns the adjoints of a slice of handles.
func (t *Tape) Adjoints(vs []Var) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = t.Adjoint(v)
	}
	return out
}

// Grad runs the reverse sweep from root, seeding adj(root) = 1.
func (t *Tape) Grad(root Var) error {
	return t.Backward([]Var{root}, []float64{1})
}

// Backward runs the reverse sweep with explicit seeds: seeds[i] is added to
// adj(roots[i]) before any operation is chained, so a root listed twice
// receives both seeds. Constant roots are ignored.
//
// Operations are chained from the most recently recorded to the first, each
// exactly once. Every writer to a node's adjoint was built after that node,
// so a node's adjoint is final by the time the sweep reaches it.
func (t *Tape) Backward(roots []Var, seeds []float64) error {
	if len(roots) != len(seeds) {
		return fmt.Errorf("%w: %d roots, %d seeds", ErrSeedMismatch, len(roots), len(seeds))
	}
	if t.swept {
		return ErrAlreadySwept
	}
	for i, r := range roots {
		if r.IsConstant() {
			continue
		}
		t.mustOwn(r)
		t.nodes[r.id].Adjoint += seeds[i]
	}

	for i := len(t.stack) - 1; i >= 0; i-- {
		t.stack[i].Chain(t.nodes)
	}
	t.swept = true

	t.logger.LogAttrs(context.Background(), slog.LevelDebug, "reverse sweep",
		slog.Int("ops", len(t.stack)),
		slog.Int("nodes", len(t.nodes)),
		slog.Int("roots", len(roots)))
	return nil
}

// ZeroAdjoints clears every adjoint, keeping the graph, so another sweep
// can run (for example from a different root).
func (t *Tape) ZeroAdjoints() {
	for i := range t.nodes {
		t.nodes[i].Adjoint = 0
	}
	t.swept = false
}

// Reset discards the graph and rewinds the arena.
// Every handle built before Reset becomes invalid.
func (t *Tape) Reset() {
	st := t.arena.Stats()
	t.logger.LogAttrs(context.Background(), slog.LevelDebug, "tape reset",
		slog.Int("ops", len(t.stack)),
		slog.Int("nodes", len(t.nodes)),
		slog.Int64("arena_bytes", st.Bytes))

	clear(t.stack) // Drop operation references for the GC
	t.stack = t.stack[:0]
	t.nodes = t.nodes[:0]
	t.arena.Reset()
	t.gen = generations.Add(1)
	t.swept = false
}

// Scope runs f on the tape and resets the tape on every exit path,
// including errors and panics. Handles must not escape f.
func (t *Tape) Scope(f func(*Tape) error) error {
	defer t.Reset()
	return f(t)
}

// NumOps returns the number of operations on the propagating tape.
func (t *Tape) NumOps() int {
	return len(t.stack)
}

// NumNodes returns the number of scalar nodes.
func (t *Tape) NumNodes() int {
	return len(t.nodes)
}

// Stats reports the tape's arena accounting.
func (t *Tape) Stats() arena.Stats {
	return t.arena.Stats()
}

// newNode appends a node with the given value and zero adjoint.
func (t *Tape) newNode(x float64) ops.NodeID {
	if len(t.nodes) == math.MaxInt32 {
		panic(&arena.AllocationError{Requested: 1, InUse: math.MaxInt32, Limit: math.MaxInt32})
	}
	t.nodes = append(t.nodes, ops.Node{Value: x})
	return ops.NodeID(len(t.nodes) - 1)
}

// record pushes an operation onto the propagating tape.
func (t *Tape) record(op ops.Operation) {
	t.stack = append(t.stack, op)
}

// mustOwn panics if v was built on another tape or before the last Reset.
func (t *Tape) mustOwn(v Var) {
	if v.gen != t.gen || int(v.id) >= len(t.nodes) {
		panic(fmt.Errorf("%w (handle gen %d, tape gen %d)", ErrStaleHandle, v.gen, t.gen))
	}
}

// nodeIDs copies the node indices of vs into arena storage.
// Constant elements are stored as ops.NoNode.
func (t *Tape) nodeIDs(vs []Var) []ops.NodeID {
	ids := t.ids.Alloc(len(vs))
	for i, v := range vs {
		ids[i] = v.id
	}
	return ids
}

// valuesOf copies the values of vs into arena storage.
func (t *Tape) valuesOf(vs []Var) []float64 {
	vals := t.floats.Alloc(len(vs))
	for i, v := range vs {
		vals[i] = v.val
	}
	return vals
}

// checkOwned validates that every non-constant handle belongs to t.
func (t *Tape) checkOwned(vs []Var) {
	for _, v := range vs {
		if !v.IsConstant() {
			t.mustOwn(v)
		}
	}
}
