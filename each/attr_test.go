package each_test

import (
	"fmt"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Justin-Fisher/eachtools/each"
)

type point struct {
	X, Y int
}

func (p point) Shifted(d int) point {
	return point{X: p.X + d, Y: p.Y + d}
}

// row exposes its columns through the accessor interfaces instead of
// reflection.
type row struct {
	cols map[string]any
}

func (r *row) GetField(name string) (any, error) {
	v, ok := r.cols[name]
	if !ok {
		return nil, fmt.Errorf("no column %q", name)
	}
	return v, nil
}

func (r *row) SetField(name string, value any) error {
	r.cols[name] = value
	return nil
}

func TestFieldReadsStructs(t *testing.T) {
	t.Parallel()

	c := each.New(point{1, 2}, point{3, 4})
	xs, err := c.Field("X")
	require.NoError(t, err)
	assertSame(t, each.New(1, 3), xs)

	// Pointers to structs read the same way.
	p := each.New(&point{5, 6})
	ys, err := p.Field("Y")
	require.NoError(t, err)
	assertSame(t, each.New(6), ys)

	_, err = c.Field("Z")
	assert.ErrorIs(t, err, each.ErrUnsupportedOperation)

	_, err = each.New(1).Field("X")
	assert.ErrorIs(t, err, each.ErrUnsupportedOperation)
}

func TestFieldPreservesKeys(t *testing.T) {
	t.Parallel()

	c := mustKeyed(t, []any{"a", "b"}, []any{point{1, 2}, point{3, 4}})
	xs, err := c.Field("X")
	require.NoError(t, err)
	assertSame(t, mustKeyed(t, []any{"a", "b"}, []any{1, 3}), xs)
}

func TestFieldDistributesThroughNestedContainers(t *testing.T) {
	t.Parallel()

	rows := each.New(each.New(point{1, 0}, point{2, 0}))
	xs, err := rows.Field("X")
	require.NoError(t, err)
	assertSame(t, each.New(each.New(1, 2)), xs)
}

func TestFieldUsesGetter(t *testing.T) {
	t.Parallel()

	c := each.New(
		&row{cols: map[string]any{"name": "Alice"}},
		&row{cols: map[string]any{"name": "Bob"}},
	)
	names, err := c.Field("name")
	require.NoError(t, err)
	assertSame(t, each.New("Alice", "Bob"), names)

	_, err = c.Field("age")
	assert.Error(t, err)
}

func TestSetEachField(t *testing.T) {
	t.Parallel()

	a, b := &point{1, 2}, &point{3, 4}
	c := each.New(a, b)

	// A scalar broadcasts across the members.
	require.NoError(t, c.SetEachField("X", 0))
	assert.Equal(t, 0, a.X)
	assert.Equal(t, 0, b.X)

	// A collection pairs one value per member.
	require.NoError(t, c.SetEachField("Y", []any{10, 20}))
	assert.Equal(t, 10, a.Y)
	assert.Equal(t, 20, b.Y)

	assert.ErrorIs(t, c.SetEachField("Y", []any{1, 2, 3}), each.ErrLengthMismatch)

	// Value structs cannot be written through.
	assert.ErrorIs(t, each.New(point{}).SetEachField("X", 1), each.ErrUnsupportedOperation)
}

func TestSetEachFieldUsesSetter(t *testing.T) {
	t.Parallel()

	r := &row{cols: map[string]any{}}
	require.NoError(t, each.New(r).SetEachField("n", 7))
	assert.Equal(t, 7, r.cols["n"])
}

func TestInvoke(t *testing.T) {
	t.Parallel()

	c := each.New(point{1, 1}, point{2, 2})

	shifted, err := c.Invoke("Shifted", 10)
	require.NoError(t, err)
	assertSame(t, each.New(point{11, 11}, point{12, 12}), shifted)

	// Argument collections align member by member.
	shifted, err = c.Invoke("Shifted", []any{10, 20})
	require.NoError(t, err)
	assertSame(t, each.New(point{11, 11}, point{22, 22}), shifted)

	_, err = c.Invoke("Missing")
	assert.ErrorIs(t, err, each.ErrUnsupportedOperation)
}

func TestInvokeNilMember(t *testing.T) {
	t.Parallel()

	_, err := each.New(nil).Invoke("String")
	assert.ErrorIs(t, err, each.ErrUnsupportedOperation)

	_, err = each.New(point{1, 1}, nil).Invoke("Shifted", 1)
	assert.ErrorIs(t, err, each.ErrUnsupportedOperation)
}

func TestCall(t *testing.T) {
	t.Parallel()

	double := func(x int) int { return 2 * x }
	square := func(x int) int { return x * x }

	c := each.New(double, square)
	got, err := c.Call(5)
	require.NoError(t, err)
	assertSame(t, each.New(10, 25), got)

	_, err = each.New(1).Call()
	assert.ErrorIs(t, err, each.ErrUnsupportedOperation)
}

func TestApply(t *testing.T) {
	t.Parallel()

	roots, err := each.Apply(math.Sqrt, []any{1.0, 4.0, 9.0})
	require.NoError(t, err)
	assertSame(t, each.New(1.0, 2.0, 3.0), roots)

	// Integer members convert to the float64 parameter.
	roots, err = each.Apply(math.Sqrt, []any{16, 25})
	require.NoError(t, err)
	assertSame(t, each.New(4.0, 5.0), roots)

	// Two operand collections align pairwise.
	sums, err := each.Apply(func(a, b int) int { return a + b }, []any{1, 2}, []any{10, 20})
	require.NoError(t, err)
	assertSame(t, each.New(11, 22), sums)
}

func TestApplyUnwrapsTrailingError(t *testing.T) {
	t.Parallel()

	got, err := each.Apply(strconv.Atoi, []any{"1", "2"})
	require.NoError(t, err)
	assertSame(t, each.New(1, 2), got)

	_, err = each.Apply(strconv.Atoi, []any{"1", "oops"})
	assert.Error(t, err)
}

func TestApplyArityMismatch(t *testing.T) {
	t.Parallel()

	_, err := each.Apply(func(a, b int) int { return a + b }, []any{1, 2})
	assert.ErrorIs(t, err, each.ErrUnsupportedOperation)
}
