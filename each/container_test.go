package each_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Justin-Fisher/eachtools/each"
)

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

// mustKeyed builds a keyed container or fails the test.
func mustKeyed(t *testing.T, keys []any, values []any) *each.Container {
	t.Helper()
	c, err := each.Combine(keys, values)
	require.NoError(t, err)
	return c
}

// assertSame asserts deep content equality between two containers,
// reporting a cmp diff on mismatch (cmp honors Container.Equal).
func assertSame(t *testing.T, want, got *each.Container) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("container mismatch (-want +got):\n%s\ngot: %s", diff, got.Sdump())
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Construction & accessors
// ─────────────────────────────────────────────────────────────────────────────

func TestNew(t *testing.T) {
	t.Parallel()

	c := each.New(1, 2, 3)
	assert.Equal(t, each.Sequence, c.Kind())
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []any{1, 2, 3}, c.All())
	assert.Equal(t, []any{0, 1, 2}, c.Keys())
}

func TestNewSetCollapsesDuplicates(t *testing.T) {
	t.Parallel()

	s := each.NewSet("a", "b", "a")
	assert.Equal(t, each.Set, s.Kind())
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []any{"a", "b"}, s.Keys())
	assert.Equal(t, []any{"a", "b"}, s.All())
}

func TestCombine(t *testing.T) {
	t.Parallel()

	c := mustKeyed(t, []any{"x", "y"}, []any{1, 2})
	assert.Equal(t, each.Keyed, c.Kind())
	assert.Equal(t, []any{"x", "y"}, c.Keys())
	assert.Equal(t, []any{1, 2}, c.All())

	_, err := each.Combine([]any{"x"}, []any{1, 2})
	assert.ErrorIs(t, err, each.ErrLengthMismatch)
}

func TestKeyContainer(t *testing.T) {
	t.Parallel()

	t.Run("sequence", func(t *testing.T) {
		t.Parallel()
		k := each.New(10, 20, 30).KeyContainer()
		assert.Equal(t, each.Sequence, k.Kind())
		assert.Equal(t, []any{0, 1, 2}, k.All())
	})

	t.Run("keyed", func(t *testing.T) {
		t.Parallel()
		k := mustKeyed(t, []any{"x", "y"}, []any{1, 2}).KeyContainer()
		assert.Equal(t, each.Set, k.Kind())
		assert.Equal(t, []any{"x", "y"}, k.All())
	})
}

func TestItems(t *testing.T) {
	t.Parallel()

	items := mustKeyed(t, []any{"x", "y"}, []any{1, 2}).Items()
	assert.Equal(t, []any{
		each.Item{Key: "x", Value: 1},
		each.Item{Key: "y", Value: 2},
	}, items.All())
}

func TestEachVisitsInDomainOrder(t *testing.T) {
	t.Parallel()

	var keys, vals []any
	mustKeyed(t, []any{"a", "b"}, []any{1, 2}).Each(func(k, v any) {
		keys = append(keys, k)
		vals = append(vals, v)
	})
	assert.Equal(t, []any{"a", "b"}, keys)
	assert.Equal(t, []any{1, 2}, vals)
}

func TestWalkReachesLeavesThroughNesting(t *testing.T) {
	t.Parallel()

	rows := each.WrapNested([]any{[]any{1, 2}, []any{3}}, each.Levels(2))
	var leaves []any
	rows.Walk(func(v any) { leaves = append(leaves, v) })
	assert.Equal(t, []any{1, 2, 3}, leaves)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	t.Run("sequence position", func(t *testing.T) {
		t.Parallel()
		c := each.New("a", "b", "c")
		require.NoError(t, c.Delete(1))
		assert.Equal(t, []any{"a", "c"}, c.All())
		assert.ErrorIs(t, c.Delete(9), each.ErrIndexOutOfRange)
	})

	t.Run("keyed key", func(t *testing.T) {
		t.Parallel()
		c := mustKeyed(t, []any{"x", "y", "z"}, []any{1, 2, 3})
		require.NoError(t, c.Delete("y"))
		assert.Equal(t, []any{"x", "z"}, c.Keys())
		assert.Equal(t, []any{1, 3}, c.All())
		assert.ErrorIs(t, c.Delete("missing"), each.ErrMissingKey)

		// Remaining keys still resolve after the position map reshuffle.
		v, err := c.At("z")
		require.NoError(t, err)
		assert.Equal(t, 3, v)
	})
}

func TestCopyIsIndependent(t *testing.T) {
	t.Parallel()

	orig := each.New(1, 2, 3)
	dup := orig.Copy()
	require.NoError(t, dup.Put(99, 0))
	assert.Equal(t, []any{99, 2, 3}, dup.All())
	assert.Equal(t, []any{1, 2, 3}, orig.All())
}

func TestEqual(t *testing.T) {
	t.Parallel()

	assert.True(t, each.New(1, 2).Equal(each.New(1, 2)))
	assert.False(t, each.New(1, 2).Equal(each.New(2, 1)))
	assert.False(t, each.New(1).Equal(mustKeyed(t, []any{0}, []any{1})))

	nested := each.New(each.New(1), each.New(2))
	assert.True(t, nested.Equal(each.New(each.New(1), each.New(2))))
	assert.False(t, nested.Equal(each.New(each.New(1), each.New(3))))
}

func TestString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "each(1, 2, 3)", each.New(1, 2, 3).String())
	assert.Equal(t, "each(x: 1, y: 2)", mustKeyed(t, []any{"x", "y"}, []any{1, 2}).String())
	assert.Equal(t, "each{a, b}", each.NewSet("a", "b").String())
}
