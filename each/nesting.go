package each

type nestKind uint8

const (
	nestFlat nestKind = iota
	nestLevels
	nestUnlimited
	nestNext
)

// Nesting controls whether member access recursively re-wraps sub-members
// as containers, and for how many layers.
//
// A container over rows of cells illustrates the choices: [Flat]
// distributes operations over rows only; Levels(2) distributes over rows
// and over each cell within each row, then stops; [Unlimited] keeps
// distributing no matter how deep the structure goes; [NextLevel] adds one
// layer of distribution beyond whatever the wrapped value already had, so
// Wrap(Wrap(rows)) reaches cells while Wrap(rows) reaches rows.
type Nesting struct {
	kind   nestKind
	levels int
}

// Flat never wraps members: operations distribute over this container's
// top-level members only.
var Flat = Nesting{kind: nestFlat}

// Unlimited wraps members at every level, for arbitrary-depth structures.
var Unlimited = Nesting{kind: nestUnlimited}

// NextLevel adds exactly one level of wrapping beyond whatever the input
// already had. It is the default for [Wrap], so wrapping an
// already-distributed container deepens traversal by one layer rather than
// being a no-op.
var NextLevel = Nesting{kind: nestNext}

// Levels wraps members as containers for exactly k further levels.
// Levels(0) is equivalent to [Flat].
func Levels(k int) Nesting {
	if k <= 0 {
		return Flat
	}
	return Nesting{kind: nestLevels, levels: k}
}

// wraps reports whether member access under this spec re-wraps sub-members.
func (n Nesting) wraps() bool {
	switch n.kind {
	case nestLevels:
		return n.levels > 0
	case nestUnlimited, nestNext:
		return true
	}
	return false
}

// child is the spec handed to a wrapped member: Levels loses one layer,
// Unlimited and NextLevel propagate unchanged.
func (n Nesting) child() Nesting {
	if n.kind == nestLevels {
		return Levels(n.levels - 1)
	}
	return n
}

// depth orders specs so that re-wrapping an existing container keeps the
// deeper of the two settings.
func (n Nesting) depth() int {
	switch n.kind {
	case nestUnlimited:
		return int(^uint(0) >> 1)
	case nestLevels:
		return n.levels
	}
	return 0
}

func deeper(a, b Nesting) Nesting {
	if a.kind == nestNext || b.kind == nestNext {
		// NextLevel is resolved at wrap time, before comparison.
		if a.kind == nestNext {
			return b
		}
		return a
	}
	if b.depth() > a.depth() {
		return b
	}
	return a
}
