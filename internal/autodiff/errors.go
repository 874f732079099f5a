package autodiff

import (
	"errors"

	"github.com/born-ml/revad/internal/check"
)

// Usage errors.
var (
	// ErrStaleHandle is the panic value when a handle from a reset (or a
	// different) tape is used.
	ErrStaleHandle = errors.New("autodiff: handle does not belong to the current tape generation")

	// ErrAlreadySwept is returned by Grad when adjoints from a previous
	// sweep have not been cleared with ZeroAdjoints.
	ErrAlreadySwept = errors.New("autodiff: tape already swept; call ZeroAdjoints or Reset first")

	// ErrTooManyEdges is returned by NewPartials for more than MaxEdges edges.
	ErrTooManyEdges = errors.New("autodiff: too many edges")

	// ErrSeedMismatch is returned by Backward when roots and seeds differ in length.
	ErrSeedMismatch = errors.New("autodiff: roots and seeds differ in length")
)

// IsPrecondition reports whether err is a precondition error raised
// before graph construction (shape mismatch, out-of-domain input).
func IsPrecondition(err error) bool {
	return check.IsPrecondition(err)
}
