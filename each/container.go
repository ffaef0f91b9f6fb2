package each

import (
	"fmt"
	"reflect"
	"strings"
)

// Kind identifies which variant of collection a Container wraps.
type Kind int

const (
	// Sequence containers index members by position 0 … n-1.
	Sequence Kind = iota
	// Keyed containers index members by arbitrary unique keys.
	Keyed
	// Set containers treat each member as its own key and value.
	Set
)

func (k Kind) String() string {
	switch k {
	case Keyed:
		return "keyed"
	case Set:
		return "set"
	}
	return "sequence"
}

// Container is a distributed container: most operations on it apply to
// every member, aligning members of multiple operands by position or key
// and broadcasting singleton operands. Construct one with [New], [Wrap],
// [NewSet] or [Combine].
//
// A sequence container built from a []any aliases the caller's slice, so
// in-place operators and the write path of the indexing engine mutate the
// shared backing array ("last writer wins", no aliasing protection).
// Every other input is copied at construction.
type Container struct {
	kind Kind
	nest Nesting

	// Sequence storage.
	seq []any

	// Keyed/Set storage: keys in deterministic order plus a position map.
	// For the set variant vals[i] == keys[i]. Keys must be comparable.
	keys []any
	pos  map[any]int
	vals []any
}

func newSeq(members []any, nest Nesting) *Container {
	return &Container{kind: Sequence, nest: nest, seq: members}
}

func newKeyed(kind Kind, keys, vals []any, nest Nesting) *Container {
	c := &Container{kind: kind, nest: nest, keys: keys, vals: vals, pos: make(map[any]int, len(keys))}
	for i, k := range keys {
		c.pos[k] = i
	}
	return c
}

// ─────────────────────────────────────────────────────────────────────────────
// Accessors
// ─────────────────────────────────────────────────────────────────────────────

// Len returns the number of members.
func (c *Container) Len() int {
	if c.kind == Sequence {
		return len(c.seq)
	}
	return len(c.keys)
}

// Kind reports which collection variant this container wraps.
func (c *Container) Kind() Kind { return c.kind }

// IsEmpty reports whether the container has no members.
func (c *Container) IsEmpty() bool { return c.Len() == 0 }

// All returns a copy of the raw members, in domain order, without any
// nesting-aware wrapping.
func (c *Container) All() []any {
	src := c.seq
	if c.kind != Sequence {
		src = c.vals
	}
	out := make([]any, len(src))
	copy(out, src)
	return out
}

// Values returns the members in domain order, wrapped as containers when
// this container's nesting spec calls for it. This is the view distributed
// operations iterate.
func (c *Container) Values() []any {
	src := c.seq
	if c.kind != Sequence {
		src = c.vals
	}
	out := make([]any, len(src))
	if c.nest.wraps() {
		child := c.nest.child()
		for i, m := range src {
			out[i] = wrapValue(m, child, false)
		}
		return out
	}
	copy(out, src)
	return out
}

// Keys returns the index domain: 0 … n-1 for sequence containers, the keys
// in deterministic order otherwise.
func (c *Container) Keys() []any {
	if c.kind == Sequence {
		out := make([]any, len(c.seq))
		for i := range c.seq {
			out[i] = i
		}
		return out
	}
	out := make([]any, len(c.keys))
	copy(out, c.keys)
	return out
}

// KeyContainer returns the index domain as a container: a set container of
// the keys for keyed variants, a sequence of 0 … n-1 otherwise. Keyed
// variants' key containers align by key, so they can join distributed
// operations with the container itself.
func (c *Container) KeyContainer() *Container {
	keys := c.Keys()
	if c.kind == Sequence {
		return newSeq(keys, Flat)
	}
	return newKeyed(Set, keys, keys, Flat)
}

// Items returns a sequence container of {key, value} pairs in domain order.
func (c *Container) Items() *Container {
	keys := c.Keys()
	members := c.All()
	out := make([]any, len(keys))
	for i := range keys {
		out[i] = Item{Key: keys[i], Value: members[i]}
	}
	return newSeq(out, Flat)
}

// Item is one key/value pairing produced by [Container.Items].
type Item struct {
	Key   any
	Value any
}

func (it Item) String() string { return fmt.Sprintf("(%v, %v)", it.Key, it.Value) }

// Each calls fn(key, value) for every member in domain order, with the
// nesting-aware value view.
func (c *Container) Each(fn func(key, value any)) {
	keys := c.Keys()
	vals := c.Values()
	for i := range keys {
		fn(keys[i], vals[i])
	}
}

// Walk calls fn for every leaf reachable through this container,
// descending into members that the nesting spec wraps (and into members
// that are already containers). A flat container walks its members as-is.
func (c *Container) Walk(fn func(leaf any)) {
	for _, v := range c.Values() {
		if sub, ok := v.(*Container); ok {
			sub.Walk(fn)
			continue
		}
		fn(v)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Raw member access (internal)
// ─────────────────────────────────────────────────────────────────────────────

// member returns the raw member at position i (already bounds-checked by
// callers iterating 0 … Len()-1).
func (c *Container) member(i int) any {
	if c.kind == Sequence {
		return c.seq[i]
	}
	return c.vals[i]
}

// lookup resolves a single plain key or position to its member.
func (c *Container) lookup(key any) (any, error) {
	if c.kind == Sequence {
		i, ok := asInt(key)
		if !ok {
			return nil, fmt.Errorf("%w: sequence index %v (%T)", ErrUnsupportedOperation, key, key)
		}
		if i < 0 {
			i += len(c.seq)
		}
		if i < 0 || i >= len(c.seq) {
			return nil, fmt.Errorf("%w: %v with length %d", ErrIndexOutOfRange, key, len(c.seq))
		}
		return c.seq[i], nil
	}
	i, ok := c.pos[key]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrMissingKey, key)
	}
	return c.vals[i], nil
}

// assign overwrites the slot for a single plain key or position. Keyed
// containers accept new keys (appended at the end of the domain); set
// containers have no assignable slots.
func (c *Container) assign(key, value any) error {
	switch c.kind {
	case Sequence:
		i, ok := asInt(key)
		if !ok {
			return fmt.Errorf("%w: sequence index %v (%T)", ErrUnsupportedOperation, key, key)
		}
		if i < 0 {
			i += len(c.seq)
		}
		if i < 0 || i >= len(c.seq) {
			return fmt.Errorf("%w: %v with length %d", ErrIndexOutOfRange, key, len(c.seq))
		}
		c.seq[i] = value
		return nil
	case Keyed:
		if i, ok := c.pos[key]; ok {
			c.vals[i] = value
			return nil
		}
		c.pos[key] = len(c.keys)
		c.keys = append(c.keys, key)
		c.vals = append(c.vals, value)
		return nil
	}
	return fmt.Errorf("%w: slot assignment on a set", ErrNotImplemented)
}

// Delete removes the member at the given key or position.
func (c *Container) Delete(key any) error {
	if c.kind == Sequence {
		i, ok := asInt(key)
		if !ok {
			return fmt.Errorf("%w: sequence index %v (%T)", ErrUnsupportedOperation, key, key)
		}
		if i < 0 {
			i += len(c.seq)
		}
		if i < 0 || i >= len(c.seq) {
			return fmt.Errorf("%w: %v with length %d", ErrIndexOutOfRange, key, len(c.seq))
		}
		c.seq = append(c.seq[:i], c.seq[i+1:]...)
		return nil
	}
	i, ok := c.pos[key]
	if !ok {
		return fmt.Errorf("%w: %v", ErrMissingKey, key)
	}
	c.keys = append(c.keys[:i], c.keys[i+1:]...)
	c.vals = append(c.vals[:i], c.vals[i+1:]...)
	delete(c.pos, key)
	for j := i; j < len(c.keys); j++ {
		c.pos[c.keys[j]] = j
	}
	return nil
}

// Copy returns a container with the same kind, nesting and members, backed
// by fresh storage.
func (c *Container) Copy() *Container {
	if c.kind == Sequence {
		return newSeq(c.All(), c.nest)
	}
	keys := make([]any, len(c.keys))
	copy(keys, c.keys)
	return newKeyed(c.kind, keys, c.All(), c.nest)
}

// ─────────────────────────────────────────────────────────────────────────────
// Equality & printing
// ─────────────────────────────────────────────────────────────────────────────

// Equal reports deep content equality: same kind, same index domain, and
// pairwise-equal members (nested containers compared recursively).
func (c *Container) Equal(other *Container) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.kind != other.kind || c.Len() != other.Len() {
		return false
	}
	if c.kind != Sequence {
		for i, k := range c.keys {
			if !equalValue(k, other.keys[i]) {
				return false
			}
		}
	}
	for i := 0; i < c.Len(); i++ {
		if !equalValue(c.member(i), other.member(i)) {
			return false
		}
	}
	return true
}

func equalValue(a, b any) bool {
	ac, aok := a.(*Container)
	bc, bok := b.(*Container)
	if aok || bok {
		if !aok || !bok {
			return false
		}
		return ac.Equal(bc)
	}
	return reflect.DeepEqual(a, b)
}

// String renders the container in constructor form, e.g. "each(1, 2, 3)".
// It implements [fmt.Stringer].
func (c *Container) String() string {
	var b strings.Builder
	switch c.kind {
	case Sequence:
		b.WriteString("each(")
		for i, m := range c.seq {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%v", m)
		}
		b.WriteString(")")
	case Keyed:
		b.WriteString("each(")
		for i, k := range c.keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%v: %v", k, c.vals[i])
		}
		b.WriteString(")")
	default:
		b.WriteString("each{")
		for i, k := range c.keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%v", k)
		}
		b.WriteString("}")
	}
	return b.String()
}

// asInt accepts any integer-kinded value as a position.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	}
	return 0, false
}
