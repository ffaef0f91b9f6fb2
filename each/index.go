package each

import (
	"fmt"
	"reflect"
)

// Span is a range selector: it selects the members whose position or key
// falls in [Start, Stop), stepping by Step positions for sequence
// containers. A nil bound is open; a zero Step means one. The zero Span
// selects everything (see [All]).
//
// Sequence containers resolve spans natively: negative bounds count from
// the end and out-of-range bounds clamp. Keyed containers approximate a
// span by filtering keys within the bounds; Step is ignored for them.
// A negative Step is unsupported and fails with [ErrUnsupportedRange].
type Span struct {
	Start any
	Stop  any
	Step  int
}

// All is the identity selector: it selects every member.
var All = Span{}

func (sp Span) full() bool {
	return sp.Start == nil && sp.Stop == nil && (sp.Step == 0 || sp.Step == 1)
}

// bounds normalizes the span against a sequence of length n.
func (sp Span) bounds(n int) (start, stop, step int, err error) {
	step = sp.Step
	if step == 0 {
		step = 1
	}
	if step < 0 {
		return 0, 0, 0, fmt.Errorf("%w: negative step %d", ErrUnsupportedRange, step)
	}
	start, stop = 0, n
	if sp.Start != nil {
		i, ok := asInt(sp.Start)
		if !ok {
			return 0, 0, 0, fmt.Errorf("%w: non-integer start %v on a sequence", ErrUnsupportedRange, sp.Start)
		}
		start = i
	}
	if sp.Stop != nil {
		i, ok := asInt(sp.Stop)
		if !ok {
			return 0, 0, 0, fmt.Errorf("%w: non-integer stop %v on a sequence", ErrUnsupportedRange, sp.Stop)
		}
		stop = i
	}
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	if stop < 0 {
		stop = 0
	}
	if stop > n {
		stop = n
	}
	return start, stop, step, nil
}

// inSpan reports whether a key falls within the span's bounds, the keyed
// approximation of range selection.
func (sp Span) inSpan(key any) (bool, error) {
	if sp.Start != nil {
		c, err := compareValues(sp.Start, key)
		if err != nil {
			return false, err
		}
		if c > 0 {
			return false, nil
		}
	}
	if sp.Stop != nil {
		c, err := compareValues(key, sp.Stop)
		if err != nil {
			return false, err
		}
		if c >= 0 {
			return false, nil
		}
	}
	return true, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Read path
// ─────────────────────────────────────────────────────────────────────────────

// domain is the result of resolving one domain selector: either a single
// member, or a selected sub-collection plus the kind to wrap it in.
type domain struct {
	singular bool
	member   any

	keys []any // nil means a positional result
	vals []any
	kind Kind
}

func (d *domain) container(nest Nesting) *Container {
	if d.keys == nil {
		return newSeq(d.vals, nest)
	}
	return newKeyed(d.kind, d.keys, d.vals, nest)
}

// At resolves a compound index expression: the first component selects
// members of c (the domain), and any further components are applied
// recursively inside each selected member. Selector forms for the domain:
//
//   - [All] or a full [Span]: every member (At(All) returns c itself);
//   - a partial [Span]: native positional slicing, or the keyed
//     approximation filtering keys within the bounds;
//   - a collection of booleans matching c's length or keys (typically a
//     comparison result): the members where the mask is true;
//   - any other collection of positions/keys: a fresh sequence container
//     of c[i] for each listed index, in list order;
//   - a keyed collection whose values are old positions/keys: a keyed
//     container mapping each new key to c[old];
//   - a plain key or position: that single member.
func (c *Container) At(index ...any) (any, error) {
	if len(index) == 0 {
		return c, nil
	}
	sel, ranges := index[0], index[1:]
	if sp, ok := sel.(Span); ok && sp.full() && len(ranges) == 0 {
		return c, nil
	}
	d, err := c.resolveDomain(sel)
	if err != nil {
		return nil, err
	}

	if len(ranges) == 0 {
		if d.singular {
			return d.member, nil
		}
		return d.container(c.nest), nil
	}

	if d.singular {
		return indexValue(d.member, ranges)
	}
	out := make([]any, len(d.vals))
	for i, m := range d.vals {
		if out[i], err = indexValue(m, ranges); err != nil {
			return nil, err
		}
	}
	sub := *d
	sub.vals = out
	return sub.container(Flat), nil
}

// resolveDomain classifies and applies a single domain selector.
func (c *Container) resolveDomain(sel any) (*domain, error) {
	if sp, ok := sel.(Span); ok {
		return c.resolveSpan(sp)
	}
	if isCollection(sel) {
		s := newSource(sel)
		if s.keyed {
			return c.resolveKeyedSelector(s)
		}
		return c.resolveListSelector(s)
	}
	m, err := c.lookup(sel)
	if err != nil {
		return nil, err
	}
	return &domain{singular: true, member: m}, nil
}

func (c *Container) resolveSpan(sp Span) (*domain, error) {
	if c.kind != Sequence {
		if sp.full() {
			return &domain{keys: c.Keys(), vals: c.All(), kind: c.kind}, nil
		}
		d := &domain{kind: c.kind}
		for i, k := range c.keys {
			ok, err := sp.inSpan(k)
			if err != nil {
				return nil, err
			}
			if ok {
				d.keys = append(d.keys, k)
				d.vals = append(d.vals, c.vals[i])
			}
		}
		return d, nil
	}
	start, stop, step, err := sp.bounds(len(c.seq))
	if err != nil {
		return nil, err
	}
	d := &domain{kind: Sequence}
	for i := start; i < stop; i += step {
		d.vals = append(d.vals, c.seq[i])
	}
	return d, nil
}

// resolveKeyedSelector handles keyed selectors: a boolean mask keyed by
// c's own domain, or a key-remap whose values are old positions/keys.
func (c *Container) resolveKeyedSelector(s *source) (*domain, error) {
	if allBools(s.vals) {
		d := &domain{kind: c.kind}
		keys := c.Keys()
		members := c.All()
		for i, k := range keys {
			v, err := s.at(k)
			if err != nil {
				return nil, err
			}
			if v.(bool) {
				d.keys = append(d.keys, k)
				d.vals = append(d.vals, members[i])
			}
		}
		if c.kind == Sequence {
			d.keys = nil
		}
		return d, nil
	}
	d := &domain{kind: Keyed}
	for i, newKey := range s.keys {
		m, err := c.lookup(s.vals[i])
		if err != nil {
			return nil, err
		}
		d.keys = append(d.keys, newKey)
		d.vals = append(d.vals, m)
	}
	return d, nil
}

// resolveListSelector handles positional selectors: a boolean mask of
// matching length, or a list of positions/keys to re-key by. A same-length
// collection holding anything other than booleans is always an index list.
func (c *Container) resolveListSelector(s *source) (*domain, error) {
	if s.card() == c.Len() && allBools(s.vals) {
		d := &domain{kind: c.kind}
		keys := c.Keys()
		members := c.All()
		for i := range keys {
			if s.vals[i].(bool) {
				d.keys = append(d.keys, keys[i])
				d.vals = append(d.vals, members[i])
			}
		}
		if c.kind == Sequence {
			d.keys = nil
		}
		return d, nil
	}
	d := &domain{kind: Sequence}
	for _, old := range s.vals {
		m, err := c.lookup(old)
		if err != nil {
			return nil, err
		}
		d.vals = append(d.vals, m)
	}
	return d, nil
}

func allBools(vals []any) bool {
	if len(vals) == 0 {
		return false
	}
	for _, v := range vals {
		if _, ok := v.(bool); !ok {
			return false
		}
	}
	return true
}

// indexValue applies the remaining selector components inside one selected
// member.
func indexValue(member any, ranges []any) (any, error) {
	if mc, ok := member.(*Container); ok {
		return mc.At(ranges...)
	}
	wrapped := wrapValue(member, Flat, false)
	mc, ok := wrapped.(*Container)
	if !ok {
		return nil, fmt.Errorf("%w: indexing into scalar member %T", ErrUnsupportedOperation, member)
	}
	return mc.At(ranges...)
}

// ─────────────────────────────────────────────────────────────────────────────
// Write path
// ─────────────────────────────────────────────────────────────────────────────

// Put writes through a compound index expression. With range selectors
// present, the domain members are selected as in [Container.At] and the
// write recurses inside each of them, pairing members against value by
// broadcast-or-iterate (a scalar or single-element value repeats; any
// other collection is consumed one element per slot and must not run out).
// With only a domain selector, the container's own slots are overwritten.
//
// The set variant has no assignable slots; writes fail with
// [ErrNotImplemented].
func (c *Container) Put(value any, index ...any) error {
	if len(index) == 0 {
		return fmt.Errorf("%w: write without an index", ErrUnsupportedOperation)
	}
	if c.kind == Set {
		return fmt.Errorf("%w: writing into a set", ErrNotImplemented)
	}
	sel, ranges := index[0], index[1:]

	if len(ranges) > 0 {
		d, err := c.resolveDomain(sel)
		if err != nil {
			return err
		}
		next := broadcastOrIterate(value)
		if d.singular {
			v, err := next()
			if err != nil {
				return err
			}
			return putValue(d.member, ranges, v)
		}
		for _, m := range d.vals {
			v, err := next()
			if err != nil {
				return err
			}
			if err := putValue(m, ranges, v); err != nil {
				return err
			}
		}
		return nil
	}

	// Domain-only writes mutate c's own collection, so the selector is
	// resolved to the keys/positions to overwrite rather than to members.
	if !isCollection(sel) {
		if _, ok := sel.(Span); !ok {
			// A plain key assigns the value as-is, collection or not.
			return c.assign(sel, value)
		}
	}
	keys, spliced, err := c.writeDomain(sel, value)
	if err != nil || spliced {
		return err
	}
	next := broadcastOrIterate(value)
	for _, k := range keys {
		v, err := next()
		if err != nil {
			return err
		}
		if err := c.assign(k, v); err != nil {
			return err
		}
	}
	return nil
}

// writeDomain resolves a plural domain selector into the keys to
// overwrite. Sequence spans with a collection value are spliced natively
// in place (spliced reports that the write already happened).
func (c *Container) writeDomain(sel any, value any) (keys []any, spliced bool, err error) {
	if sp, ok := sel.(Span); ok {
		if c.kind == Keyed {
			if sp.full() {
				return c.Keys(), false, nil
			}
			for _, k := range c.keys {
				ok, err := sp.inSpan(k)
				if err != nil {
					return nil, false, err
				}
				if ok {
					keys = append(keys, k)
				}
			}
			return keys, false, nil
		}
		start, stop, step, err := sp.bounds(len(c.seq))
		if err != nil {
			return nil, false, err
		}
		if !isCollection(value) {
			// Scalar into a span: broadcast across the normalized index range.
			for i := start; i < stop; i += step {
				keys = append(keys, i)
			}
			return keys, false, nil
		}
		return nil, true, c.splice(start, stop, step, value)
	}

	s := newSource(sel)
	if s.keyed {
		if allBools(s.vals) {
			for i, k := range s.keys {
				if s.vals[i].(bool) {
					keys = append(keys, k)
				}
			}
			return keys, false, nil
		}
		// Key-remap mappings write through their values.
		return append(keys, s.vals...), false, nil
	}
	if s.card() == c.Len() && allBools(s.vals) {
		domainKeys := c.Keys()
		for i, v := range s.vals {
			if v.(bool) {
				keys = append(keys, domainKeys[i])
			}
		}
		return keys, false, nil
	}
	return append(keys, s.vals...), false, nil
}

// splice is the native range-assignment of the sequence variant: a
// contiguous span is replaced by the value's members (the sequence may
// grow or shrink); a stepped span requires a value of exactly matching
// length.
func (c *Container) splice(start, stop, step int, value any) error {
	vals := newSource(value).vals
	if step == 1 {
		out := make([]any, 0, len(c.seq)-(stop-start)+len(vals))
		out = append(out, c.seq[:start]...)
		out = append(out, vals...)
		out = append(out, c.seq[stop:]...)
		c.seq = out
		return nil
	}
	count := 0
	for i := start; i < stop; i += step {
		count++
	}
	if len(vals) != count {
		return fmt.Errorf("%w: %d values for %d stepped slots", ErrLengthMismatch, len(vals), count)
	}
	j := 0
	for i := start; i < stop; i += step {
		c.seq[i] = vals[j]
		j++
	}
	return nil
}

// putValue performs the recursive portion of a compound write inside one
// selected member.
func putValue(member any, ranges []any, value any) error {
	if mc, ok := member.(*Container); ok {
		return mc.Put(value, ranges...)
	}
	if alias, ok := member.([]any); ok {
		return newSeq(alias, Flat).Put(value, ranges...)
	}
	sel := ranges[0]
	if isCollection(sel) {
		return fmt.Errorf("%w: compound write into raw %T member", ErrUnsupportedOperation, member)
	}
	if _, ok := sel.(Span); ok {
		return fmt.Errorf("%w: compound write into raw %T member", ErrUnsupportedOperation, member)
	}
	if len(ranges) == 1 {
		return assignInto(member, sel, value)
	}
	sub, err := getFrom(member, sel)
	if err != nil {
		return err
	}
	return putValue(sub, ranges[1:], value)
}

// assignInto writes one slot of a raw Go collection through reflection.
// Slice writes land in the shared backing array; map writes land in the
// shared map.
func assignInto(member, key, value any) error {
	rv := reflect.ValueOf(member)
	switch rv.Kind() {
	case reflect.Slice:
		i, ok := asInt(key)
		if !ok {
			return fmt.Errorf("%w: slice index %v (%T)", ErrUnsupportedOperation, key, key)
		}
		if i < 0 {
			i += rv.Len()
		}
		if i < 0 || i >= rv.Len() {
			return fmt.Errorf("%w: %v with length %d", ErrIndexOutOfRange, key, rv.Len())
		}
		v := reflect.ValueOf(value)
		if !v.IsValid() || !v.Type().AssignableTo(rv.Type().Elem()) {
			if v.IsValid() && v.Type().ConvertibleTo(rv.Type().Elem()) {
				v = v.Convert(rv.Type().Elem())
			} else {
				return fmt.Errorf("%w: storing %T into %s", ErrUnsupportedOperation, value, rv.Type())
			}
		}
		rv.Index(i).Set(v)
		return nil
	case reflect.Map:
		k := reflect.ValueOf(key)
		if !k.Type().AssignableTo(rv.Type().Key()) {
			return fmt.Errorf("%w: key %T for %s", ErrUnsupportedOperation, key, rv.Type())
		}
		v := reflect.ValueOf(value)
		if !v.IsValid() || !v.Type().AssignableTo(rv.Type().Elem()) {
			if v.IsValid() && v.Type().ConvertibleTo(rv.Type().Elem()) {
				v = v.Convert(rv.Type().Elem())
			} else {
				return fmt.Errorf("%w: storing %T into %s", ErrUnsupportedOperation, value, rv.Type())
			}
		}
		rv.SetMapIndex(k, v)
		return nil
	}
	return fmt.Errorf("%w: writing into %T", ErrUnsupportedOperation, member)
}

// getFrom reads one slot of a raw Go collection through reflection.
func getFrom(member, key any) (any, error) {
	rv := reflect.ValueOf(member)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		i, ok := asInt(key)
		if !ok {
			return nil, fmt.Errorf("%w: slice index %v (%T)", ErrUnsupportedOperation, key, key)
		}
		if i < 0 {
			i += rv.Len()
		}
		if i < 0 || i >= rv.Len() {
			return nil, fmt.Errorf("%w: %v with length %d", ErrIndexOutOfRange, key, rv.Len())
		}
		return rv.Index(i).Interface(), nil
	case reflect.Map:
		v := rv.MapIndex(reflect.ValueOf(key))
		if !v.IsValid() {
			return nil, fmt.Errorf("%w: %v", ErrMissingKey, key)
		}
		return v.Interface(), nil
	}
	return nil, fmt.Errorf("%w: indexing into %T", ErrUnsupportedOperation, member)
}

// broadcastOrIterate pairs a write's value against a run of slots: a
// scalar or single-element value repeats indefinitely, any other
// collection yields its members in order and fails when exhausted early.
func broadcastOrIterate(value any) func() (any, error) {
	s := newSource(value)
	if s.scalar || s.card() == 1 {
		var v any
		if s.card() == 1 {
			v = s.vals[0]
		}
		return func() (any, error) { return v, nil }
	}
	i := 0
	return func() (any, error) {
		if i >= len(s.vals) {
			return nil, fmt.Errorf("%w: value with length %d exhausted", ErrLengthMismatch, len(s.vals))
		}
		v := s.vals[i]
		i++
		return v, nil
	}
}
