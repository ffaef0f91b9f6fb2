package each

import "fmt"

// alignment is the computed common index domain for one distributed
// operation: the canonical length n, the index domain (positional 0 … n-1
// when keys is nil, a key set otherwise), and the normalized sources.
// An alignment is created per operation, consumed once, and discarded.
type alignment struct {
	n       int
	keys    []any // nil means the positional domain 0 … n-1
	sources []*source

	// nesting-aware member views for container operands aligned
	// positionally, so nested wrapping survives through the operation.
	views [][]any
}

// align normalizes the operands and computes the domain to pair them on.
//
// The model operand sets the length: the first operand when matchFirst is
// set (in-place operators and field assignment must match the mutated
// operand), otherwise the first non-broadcastable operand (cardinality
// other than one, or keyed), falling back to the first operand when every
// operand broadcasts. If the model is keyed and every other operand is
// keyed or a singleton, the domain is the model's key set; otherwise the
// domain is positional and any keyed operand must accept the integer keys.
func align(matchFirst bool, operands ...any) (*alignment, error) {
	a := &alignment{sources: make([]*source, len(operands))}
	for i, op := range operands {
		a.sources[i] = newSource(op)
	}
	if len(a.sources) == 0 {
		return a, nil
	}

	model := a.sources[0]
	if !matchFirst {
		for _, s := range a.sources {
			if !s.broadcastable() {
				model = s
				break
			}
		}
	}
	a.n = model.card()

	keyedDomain := model.keyed
	for _, s := range a.sources {
		if !s.keyed && s.card() != 1 {
			keyedDomain = false
		}
	}
	if keyedDomain {
		a.keys = model.keys
	} else {
		for _, s := range a.sources {
			if s == model || s.keyed {
				continue // keyed operands are checked per key during iteration
			}
			if n := s.card(); n != 1 && n != a.n {
				return nil, fmt.Errorf("%w: lengths %d and %d", ErrLengthMismatch, a.n, n)
			}
		}
	}

	a.views = make([][]any, len(a.sources))
	for i, s := range a.sources {
		if a.keys == nil && s.con != nil && !s.keyed && s.card() == a.n && s.con.nest.wraps() {
			a.views[i] = s.con.Values()
		}
	}
	return a, nil
}

// key returns the domain index at position i.
func (a *alignment) key(i int) any {
	if a.keys != nil {
		return a.keys[i]
	}
	return i
}

// tuples calls fn once per domain index with the aligned N-tuple: keyed
// operands looked up by key, singletons repeated, everything else paired
// positionally. The first error terminates iteration.
func (a *alignment) tuples(fn func(i int, tup []any) error) error {
	tup := make([]any, len(a.sources))
	for i := 0; i < a.n; i++ {
		key := a.key(i)
		for j, s := range a.sources {
			switch {
			case s.keyed:
				v, err := s.at(key)
				if err != nil {
					return err
				}
				tup[j] = v
			case s.card() == 1:
				tup[j] = s.vals[0]
			case a.views[j] != nil:
				tup[j] = a.views[j][i]
			default:
				tup[j] = s.vals[i]
			}
		}
		if err := fn(i, tup); err != nil {
			return err
		}
	}
	return nil
}

// build packages one output value per domain index into a fresh container:
// a sequence for a positional domain, a keyed container pairing each key
// with its value otherwise. Iteration during the producing operation has
// already applied any member wrapping, so results carry Flat nesting.
func (a *alignment) build(vals []any) *Container {
	if a.keys == nil {
		return newSeq(vals, Flat)
	}
	keys := make([]any, len(a.keys))
	copy(keys, a.keys)
	return newKeyed(Keyed, keys, vals, Flat)
}

// buildInPlace overwrites each aligned slot of the first operand and
// returns that same container, preserving its identity as compound
// assignment requires. A set variant has no assignable slots, so its
// collection is replaced wholesale with the keyed pairing build would have
// produced.
func (a *alignment) buildInPlace(vals []any) (*Container, error) {
	c := a.sources[0].con
	if c == nil {
		return nil, fmt.Errorf("%w: in-place operation on a non-container operand", ErrUnsupportedOperation)
	}
	if c.kind == Set {
		keys := make([]any, len(c.keys))
		copy(keys, c.keys)
		*c = *newKeyed(Keyed, keys, vals, c.nest)
		return c, nil
	}
	for i, v := range vals {
		if err := c.assign(a.key(i), v); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// run is the shared shape of every distributed operation: iterate the
// aligned tuples, map each through op, and collect the outputs.
func (a *alignment) run(op func(tup []any) (any, error)) ([]any, error) {
	out := make([]any, 0, a.n)
	err := a.tuples(func(_ int, tup []any) error {
		v, err := op(tup)
		if err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
