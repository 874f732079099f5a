package arena

import "unsafe"

// Slab is a bump allocator for values of type T.
//
// Blocks are kept in use order: blocks before cur are full, blocks after cur
// are untouched since the last Reset. A request that does not fit in the
// current block moves on to the next one, allocating a new block only when
// none is left. Requests larger than the block size get a dedicated block.
type Slab[T any] struct {
	owner    *Arena
	elemSize int64
	blockLen int
	chunks   [][]T
	cur      int // Index of the block being filled
	off      int // Next free element in chunks[cur]
}

// NewSlab registers a new slab for T with the arena.
// The slab shares the arena's lifetime and accounting.
func NewSlab[T any](a *Arena) *Slab[T] {
	var zero T
	s := &Slab[T]{
		owner:    a,
		elemSize: int64(unsafe.Sizeof(zero)),
		blockLen: a.cfg.BlockSize,
	}
	a.slabs = append(a.slabs, s)
	return s
}

// Alloc returns a zeroed slice of n elements.
// The slice is valid until the owning arena is reset; its capacity is
// clipped to n so appends never spill into a neighbour's storage.
func (s *Slab[T]) Alloc(n int) []T {
	if n <= 0 {
		return nil
	}
	s.owner.charge(n, int64(n)*s.elemSize)

	if len(s.chunks) == 0 {
		s.chunks = append(s.chunks, make([]T, s.blockLen))
	}
	if n > s.blockLen {
		return s.allocOversized(n)
	}

	for s.off+n > len(s.chunks[s.cur]) {
		if s.cur+1 == len(s.chunks) {
			s.chunks = append(s.chunks, make([]T, s.blockLen))
		}
		s.cur++
		s.off = 0
	}

	out := s.chunks[s.cur][s.off : s.off+n : s.off+n]
	s.off += n
	clear(out)
	return out
}

// allocOversized serves a request larger than the block size from a
// dedicated block, reusing a retained one when it is large enough.
func (s *Slab[T]) allocOversized(n int) []T {
	if s.off == 0 && len(s.chunks[s.cur]) >= n {
		out := s.chunks[s.cur][:n:n]
		s.off = len(s.chunks[s.cur])
		clear(out)
		return out
	}
	for j := s.cur + 1; j < len(s.chunks); j++ {
		if len(s.chunks[j]) >= n {
			out := s.chunks[j][:n:n]
			s.retire(j)
			clear(out)
			return out
		}
	}
	s.chunks = append(s.chunks, make([]T, n))
	s.retire(len(s.chunks) - 1)
	return s.chunks[s.cur-1]
}

// retire moves block j in front of the current block, marking it full.
// The current block keeps its fill position.
func (s *Slab[T]) retire(j int) {
	b := s.chunks[j]
	copy(s.chunks[s.cur+1:j+1], s.chunks[s.cur:j])
	s.chunks[s.cur] = b
	s.cur++
}

func (s *Slab[T]) reset() {
	s.cur = 0
	s.off = 0
}

func (s *Slab[T]) blocks() int {
	return len(s.chunks)
}
