package each

import (
	"fmt"
	"reflect"
	"sort"
)

// source is an ephemeral read-only view over one alignment operand: sized,
// iterable in a deterministic order, and optionally keyed. It is created
// fresh for each alignment and never persisted.
type source struct {
	scalar bool // raw non-collection value, cardinality 1
	keyed  bool
	con    *Container // set when the operand is a distributed container

	vals []any
	keys []any       // keyed sources only, deterministic order
	pos  map[any]int // keyed sources only
}

// newSource classifies an arbitrary operand. Strings and scalars become
// single-element views; slices and arrays become positional views; Go maps
// become keyed views (set views when the value type is struct{}); a
// *Container contributes its own storage.
func newSource(v any) *source {
	switch x := v.(type) {
	case *Container:
		s := &source{con: x}
		if x.kind == Sequence {
			s.vals = x.seq
		} else {
			s.keyed = true
			s.vals = x.vals
			s.keys = x.keys
			s.pos = x.pos
		}
		return s
	case string:
		return &source{scalar: true, vals: []any{x}}
	case []any:
		return &source{vals: x}
	case nil:
		return &source{scalar: true, vals: []any{x}}
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		vals := make([]any, rv.Len())
		for i := range vals {
			vals[i] = rv.Index(i).Interface()
		}
		return &source{vals: vals}
	case reflect.Map:
		keys := make([]any, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.Interface())
		}
		sortKeys(keys)
		s := &source{keyed: true, keys: keys, pos: make(map[any]int, len(keys)), vals: make([]any, len(keys))}
		isSet := rv.Type().Elem() == reflect.TypeOf(struct{}{})
		for i, k := range keys {
			s.pos[k] = i
			if isSet {
				s.vals[i] = k
			} else {
				s.vals[i] = rv.MapIndex(reflect.ValueOf(k)).Interface()
			}
		}
		return s
	}
	return &source{scalar: true, vals: []any{v}}
}

func (s *source) card() int { return len(s.vals) }

// broadcastable reports whether this source repeats rather than aligns:
// keyed sources never broadcast (their keys carry meaning), everything
// else broadcasts at cardinality 1.
func (s *source) broadcastable() bool {
	return !s.keyed && len(s.vals) == 1
}

// at looks one aligned value up by key (keyed sources) or position.
func (s *source) at(index any) (any, error) {
	if s.keyed {
		i, ok := s.pos[index]
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrMissingKey, index)
		}
		return s.vals[i], nil
	}
	i, ok := asInt(index)
	if !ok || i < 0 || i >= len(s.vals) {
		return nil, fmt.Errorf("%w: %v with length %d", ErrIndexOutOfRange, index, len(s.vals))
	}
	return s.vals[i], nil
}

// sortKeys orders raw Go map keys deterministically: numerics first by
// value, then everything else by string rendering. (Insertion order is
// unobservable on a Go map, unlike on a container built through this
// package, which preserves it.)
func sortKeys(keys []any) {
	sort.SliceStable(keys, func(i, j int) bool {
		if c, err := compareValues(keys[i], keys[j]); err == nil {
			return c < 0
		}
		return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
	})
}

// compareValues orders two scalar values when a defined ordering exists:
// numerics by value, strings lexically. Mixed or unordered types fail.
func compareValues(a, b any) (int, error) {
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			switch {
			case af < bf:
				return -1, nil
			case af > bf:
				return 1, nil
			}
			return 0, nil
		}
	}
	if as, aok := a.(string); aok {
		if bs, bok := b.(string); bok {
			switch {
			case as < bs:
				return -1, nil
			case as > bs:
				return 1, nil
			}
			return 0, nil
		}
	}
	return 0, fmt.Errorf("%w: ordering %T against %T", ErrUnsupportedOperation, a, b)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	if i, ok := asInt(v); ok {
		return float64(i), true
	}
	return 0, false
}

// isCollection reports whether v is distributed over in operations rather
// than broadcast as an atom. Strings are atoms, as are all plain scalars.
func isCollection(v any) bool {
	switch v.(type) {
	case *Container, []any:
		return true
	case string, nil:
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	}
	return false
}
