package each

import (
	"fmt"
	"reflect"
)

// New creates a sequence container over the given members (copied).
//
//	each.New(1, 2, 3)
func New(members ...any) *Container {
	dst := make([]any, len(members))
	copy(dst, members)
	return newSeq(dst, Flat)
}

// NewSet creates a set container over the given members. Each member
// serves as both its own key and its value, so distributed operations on
// the result produce keyed containers. Duplicate members collapse.
func NewSet(members ...any) *Container {
	keys := make([]any, 0, len(members))
	seen := make(map[any]struct{}, len(members))
	for _, m := range members {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		keys = append(keys, m)
	}
	return newKeyed(Set, keys, keys, Flat)
}

// Combine creates a keyed container pairing each key with the value at the
// same position. Returns [ErrLengthMismatch] when the slices disagree.
func Combine(keys, values []any) (*Container, error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf("%w: %d keys and %d values", ErrLengthMismatch, len(keys), len(values))
	}
	ks := make([]any, len(keys))
	copy(ks, keys)
	vs := make([]any, len(values))
	copy(vs, values)
	return newKeyed(Keyed, ks, vs, Flat), nil
}

// Wrap classifies value and constructs the appropriate container variant
// with [NextLevel] nesting: set-likes (Go maps with struct{} values)
// become set containers, other maps become keyed containers, slices and
// arrays become sequence containers, and scalars (strings included)
// become single-element sequences. Wrapping a container again deepens its
// traversal by one layer.
//
// A []any value is aliased rather than copied, so in-place operators and
// indexed writes on the result mutate the caller's slice. Typed slices and
// maps are copied into the container's own storage.
func Wrap(value any) *Container {
	return WrapNested(value, NextLevel)
}

// WrapNested is [Wrap] with an explicit nesting spec.
func WrapNested(value any, nest Nesting) *Container {
	v := wrapValue(value, nest, true)
	c, ok := v.(*Container)
	if !ok {
		// enlist was requested, so wrapValue always returns a container here.
		c = newSeq([]any{v}, Flat)
	}
	return c
}

// WrapValue is the factory underneath [Wrap]: when enlist is false a
// scalar is returned unwrapped instead of becoming a single-element
// sequence, which is how nesting-aware member access leaves plain leaf
// values alone.
func WrapValue(value any, nest Nesting, enlist bool) any {
	return wrapValue(value, nest, enlist)
}

func wrapValue(value any, nest Nesting, enlist bool) any {
	switch x := value.(type) {
	case *Container:
		if nest.kind == nestNext {
			// One level beyond what x already had: keep its storage and let
			// member access keep deepening.
			out := *x
			out.nest = NextLevel
			return &out
		}
		out := *x
		out.nest = deeper(nest, x.nest)
		return &out
	case string:
		if !enlist {
			return x
		}
		return newSeq([]any{x}, Flat)
	case []any:
		return newSeq(x, resolveNest(nest))
	case nil:
		if !enlist {
			return value
		}
		return newSeq([]any{value}, Flat)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		vals := make([]any, rv.Len())
		for i := range vals {
			vals[i] = rv.Index(i).Interface()
		}
		return newSeq(vals, resolveNest(nest))
	case reflect.Map:
		s := newSource(value)
		kind := Keyed
		if rv.Type().Elem() == reflect.TypeOf(struct{}{}) {
			kind = Set
		}
		return newKeyed(kind, s.keys, s.vals, resolveNest(nest))
	}
	if !enlist {
		return value
	}
	return newSeq([]any{value}, Flat)
}

// resolveNest pins NextLevel down once it reaches a raw collection: the
// collection itself is the next layer to distribute over, and its members
// stay unwrapped unless they are already containers.
func resolveNest(nest Nesting) Nesting {
	if nest.kind == nestNext {
		return Flat
	}
	return nest
}
