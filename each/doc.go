// Package each provides a distributed container: a wrapper around an
// ordinary collection (a sequence, a keyed mapping, or a set) whose
// operations (arithmetic, comparison, field access, method invocation,
// indexing and assignment) automatically apply to every member, aligning
// members of multiple operands by position or by key and broadcasting
// scalar or single-element operands across all positions.
//
// # Creating a container
//
//	e := each.New(1, 2, 3)                       // sequence variant
//	e := each.Wrap([]any{1, 2, 3})               // classify an existing value
//	e, _ := each.Combine(keys, values)           // keyed variant
//	e := each.NewSet("red", "green", "blue")     // set variant
//
// # Distributed operations
//
//	sum, _ := each.New(1, 2, 3).Add(each.New(2, 3, 4))   // each(3, 5, 7)
//	big, _ := each.New(1, 2, 3).Gt(1)                    // each(false, true, true)
//	hot, _ := e.At(big)                                  // mask selection
//
// Scalars and single-element operands broadcast: New(1, 2, 3).Add(10) adds
// 10 to every member. Operands of matching length pair up position by
// position; keyed operands pair up key by key. Mismatched lengths fail with
// [ErrLengthMismatch].
//
// # Variants
//
// A sequence container indexes members 0 … n-1. A keyed container indexes
// members by arbitrary keys, which survive through distributed operations:
// adding two keyed containers produces a keyed container with the shared
// keys. A set container treats every member as its own key, so distributed
// operations on a set yield a keyed container mapping each member to its
// result.
//
// # Compound indexing
//
// At and Put accept a domain selector followed by any number of range
// selectors, applied recursively inside each selected member:
//
//	table.At(each.All, 0)          // first cell of every row
//	table.Put(0, each.Span{}, 0)   // zero the first cell of every row
//	e.At([]int{2, 0})              // re-key: each(e[2], e[0])
//	e.At(mask)                     // members where mask is true
//
// # Nesting
//
// The [Nesting] given at construction controls how many further layers of
// member wrapping distributed operations recurse through: [Flat] stops at
// this container, [Levels] wraps a fixed number of layers, [Unlimited]
// wraps all the way down, and [NextLevel] (the Wrap default) adds one layer
// beyond whatever the input already had.
//
// # Errors
//
// All fallible operations return an error rather than panicking. Sentinel
// errors ([ErrLengthMismatch], [ErrMissingKey], [ErrIndexOutOfRange],
// [ErrUnsupportedRange], [ErrUnsupportedOperation], [ErrNotImplemented])
// can be tested with errors.Is. A failing per-member operation terminates
// the whole distributed operation; in-place writes already applied are kept
// (no rollback).
//
// Containers assume the underlying collection is stable for the duration of
// one operation; mutating a wrapped collection from elsewhere while an
// operation iterates it is undefined.
package each
