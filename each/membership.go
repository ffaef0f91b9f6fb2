package each

import (
	"fmt"
	"strings"
)

// Contains tests whether each aligned item occurs within each member of c,
// returning a container of booleans. Items may be given separately or as a
// single collection, which aligns against c like any other operand:
//
//	each.New("abc", "xyz").Contains("a")        // each(true, false)
//	each.New("abc", "xyz").Contains("a", "y")   // each(true, true)
//
// To test one collection itself as a single candidate, encapsulate it:
// Contains([]any{candidate}) broadcasts the candidate as-is.
//
// For containers A and B, A.Contains(B) and B.IsIn(A) agree member for
// member; the pair recurses when either side is itself a container.
func (c *Container) Contains(items ...any) (*Container, error) {
	return c.membership(unpackOperand(items), false)
}

// IsIn tests whether each member of c occurs within each aligned
// container, returning a container of booleans. It is the mirror of
// [Container.Contains].
//
//	each.New("a", "x").IsIn("abc")   // each(true, false)
func (c *Container) IsIn(containers ...any) (*Container, error) {
	return c.membership(unpackOperand(containers), true)
}

// unpackOperand unwraps the single-collection calling convention so a
// given collection aligns item by item rather than as one atom.
func unpackOperand(items []any) any {
	if len(items) == 1 && isCollection(items[0]) {
		return items[0]
	}
	return items
}

// membership aligns c with the operand and tests containment pairwise.
// When inverted, c's members are the needles; otherwise they are the
// haystacks.
func (c *Container) membership(operand any, inverted bool) (*Container, error) {
	al, err := align(false, c, operand)
	if err != nil {
		return nil, err
	}
	vals, err := al.run(func(tup []any) (any, error) {
		hay, needle := tup[0], tup[1]
		if inverted {
			hay, needle = tup[1], tup[0]
		}
		return containsValue(hay, needle)
	})
	if err != nil {
		return nil, err
	}
	return al.build(vals), nil
}

// containsValue is the member-level containment test. Nested containers
// re-enter the distributed machinery through the Contains/IsIn duality;
// string haystacks test substring containment.
func containsValue(hay, needle any) (any, error) {
	if hc, ok := hay.(*Container); ok {
		return hc.Contains([]any{needle})
	}
	if nc, ok := needle.(*Container); ok {
		return nc.IsIn([]any{hay})
	}
	if hs, ok := hay.(string); ok {
		ns, ok := needle.(string)
		if !ok {
			return false, nil
		}
		return strings.Contains(hs, ns), nil
	}
	if !isCollection(hay) {
		return nil, fmt.Errorf("%w: containment in %T", ErrUnsupportedOperation, hay)
	}
	for _, m := range newSource(hay).vals {
		if equalValue(m, needle) {
			return true, nil
		}
	}
	return false, nil
}
