package each

import "errors"

// Sentinel errors returned by distributed operations.
var (
	// ErrLengthMismatch is returned when two or more non-broadcastable
	// operands disagree on the length to align on, or when a write's value
	// iterator is exhausted before every selected slot has been filled.
	ErrLengthMismatch = errors.New("each: cannot broadcast operands of mismatched lengths")

	// ErrMissingKey is returned when a keyed lookup misses.
	ErrMissingKey = errors.New("each: key not found")

	// ErrIndexOutOfRange is returned when a positional lookup is outside
	// [0, Len()-1] after negative-index normalization.
	ErrIndexOutOfRange = errors.New("each: index out of range")

	// ErrUnsupportedRange is returned for range selectors the engine cannot
	// approximate, such as a negative step.
	ErrUnsupportedRange = errors.New("each: unsupported range selector")

	// ErrUnsupportedOperation is returned when a per-member operation has no
	// defined behavior for the member's type, e.g. adding a bool to a string.
	ErrUnsupportedOperation = errors.New("each: unsupported operation")

	// ErrNotImplemented is returned when an operation is requested on a
	// container variant that has no defined semantics for it, e.g. slot
	// assignment on a set variant.
	ErrNotImplemented = errors.New("each: operation not defined for this container variant")
)
