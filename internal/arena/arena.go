// Package arena provides bump allocation for computation-graph storage.
//
// An Arena owns a set of typed slabs. Each slab hands out slices carved from
// large backing blocks; nothing is freed individually. Reset rewinds every
// slab so the next computation reuses the same blocks.
//
// Usage:
//
//	a := arena.New(arena.DefaultConfig())
//	floats := arena.NewSlab[float64](a)
//	buf := floats.Alloc(16) // zeroed, valid until a.Reset()
//	a.Reset()
package arena

import (
	"errors"
	"fmt"
)

// ErrExhausted is returned (via AllocationError) when an allocation would
// exceed Config.MaxBytes.
var ErrExhausted = errors.New("arena exhausted")

// AllocationError describes a failed allocation. Slab.Alloc panics with it:
// the graph under construction has no recovery policy for partial nodes.
type AllocationError struct {
	Requested int64 // Bytes requested by the failing call
	InUse     int64 // Bytes already handed out
	Limit     int64 // Config.MaxBytes
}

// Error implements the error interface.
func (e *AllocationError) Error() string {
	return fmt.Sprintf("arena: allocating %d bytes with %d in use exceeds limit %d",
		e.Requested, e.InUse, e.Limit)
}

// Unwrap returns ErrExhausted.
func (e *AllocationError) Unwrap() error {
	return ErrExhausted
}

// Config controls block sizing and the optional memory ceiling.
type Config struct {
	BlockSize int   // Elements per backing block of each slab.
	MaxBytes  int64 // Upper bound on bytes handed out between resets (0 = unlimited).
}

// DefaultConfig returns a block size suited to small and medium graphs.
func DefaultConfig() Config {
	return Config{
		BlockSize: 4096,
		MaxBytes:  0,
	}
}

// Stats reports arena usage since the last Reset, plus retained capacity.
type Stats struct {
	Allocations int   // Alloc calls served
	Elements    int   // Elements handed out
	Bytes       int64 // Bytes handed out
	Blocks      int   // Backing blocks retained across all slabs
	Resets      int   // Number of Reset calls over the arena's life
}

// resetter is the untyped view of a slab the arena needs for bulk operations.
type resetter interface {
	reset()
	blocks() int
}

// Arena groups typed slabs under a single lifetime.
// An Arena is not safe for concurrent use; each worker owns its own.
type Arena struct {
	cfg   Config
	slabs []resetter
	stats Stats
}

// New creates an empty arena. Blocks are allocated lazily.
func New(cfg Config) *Arena {
	if cfg.BlockSize <= 0 {
		cfg.BlockSize = DefaultConfig().BlockSize
	}
	return &Arena{cfg: cfg}
}

// Config returns the configuration the arena was created with.
func (a *Arena) Config() Config {
	return a.cfg
}

// Stats returns a snapshot of the arena's accounting.
func (a *Arena) Stats() Stats {
	s := a.stats
	s.Blocks = 0
	for _, sl := range a.slabs {
		s.Blocks += sl.blocks()
	}
	return s
}

// Reset invalidates every slice handed out by every slab.
// Backing blocks are kept for reuse.
func (a *Arena) Reset() {
	for _, sl := range a.slabs {
		sl.reset()
	}
	resets := a.stats.Resets + 1
	a.stats = Stats{Resets: resets}
}

// charge records an allocation, enforcing MaxBytes.
func (a *Arena) charge(n int, bytes int64) {
	if a.cfg.MaxBytes > 0 && a.stats.Bytes+bytes > a.cfg.MaxBytes {
		panic(&AllocationError{
			Requested: bytes,
			InUse:     a.stats.Bytes,
			Limit:     a.cfg.MaxBytes,
		})
	}
	a.stats.Allocations++
	a.stats.Elements += n
	a.stats.Bytes += bytes
}
