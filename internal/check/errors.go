// Package check validates arguments before a computation graph is built.
//
// Every function takes the calling function's name and the argument's name
// so that errors read like "add: Right-hand-side rows (3) must match
// Left-hand-side rows (2)". Checks have no side effects; a failing check
// means the caller must not allocate any graph node.
package check

import (
	"errors"
	"fmt"
)

// Precondition errors.
var (
	// ErrDomain marks a value outside the function's domain
	// (NaN, infinite, negative where positivity is required, ...).
	ErrDomain = errors.New("domain error")

	// ErrInvalidArgument marks a structural mismatch between arguments
	// (dimensions, sizes).
	ErrInvalidArgument = errors.New("invalid argument")
)

// Error provides detailed information about a failed check.
type Error struct {
	Kind     error  // ErrDomain or ErrInvalidArgument
	Function string // Calling function (e.g., "dot_product")
	Argument string // Argument name (e.g., "Scale parameter")
	Index    int    // Offending element, or -1 for a scalar/whole-argument failure
	Details  string // What went wrong
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: %s[%d] %s", e.Function, e.Argument, e.Index+1, e.Details)
	}
	return fmt.Sprintf("%s: %s %s", e.Function, e.Argument, e.Details)
}

// Unwrap returns the error kind so errors.Is matches the sentinels.
func (e *Error) Unwrap() error {
	return e.Kind
}

// IsPrecondition reports whether err is a failed check of either kind.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrDomain) || errors.Is(err, ErrInvalidArgument)
}

func domainError(function, name string, index int, format string, args ...any) error {
	return &Error{
		Kind:     ErrDomain,
		Function: function,
		Argument: name,
		Index:    index,
		Details:  fmt.Sprintf(format, args...),
	}
}

func invalidArgument(function, name string, format string, args ...any) error {
	return &Error{
		Kind:     ErrInvalidArgument,
		Function: function,
		Argument: name,
		Index:    -1,
		Details:  fmt.Sprintf(format, args...),
	}
}
