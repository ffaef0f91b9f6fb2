package each_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Justin-Fisher/eachtools/each"
)

func TestAtPath(t *testing.T) {
	t.Parallel()

	table := each.New(
		map[string]any{"name": "Alice", "age": 30},
		map[string]any{"name": "Bob", "age": 40},
	)

	v, err := table.AtPath("1.name")
	require.NoError(t, err)
	assert.Equal(t, "Bob", v)

	v, err = table.AtPath("0.age")
	require.NoError(t, err)
	assert.Equal(t, 30, v)

	_, err = table.AtPath("2.name")
	assert.ErrorIs(t, err, each.ErrIndexOutOfRange)

	_, err = table.AtPath("0.height")
	assert.ErrorIs(t, err, each.ErrMissingKey)
}

func TestAtPathNumericSegmentsArePositions(t *testing.T) {
	t.Parallel()

	grid := each.New([]any{1, 2}, []any{3, 4})
	v, err := grid.AtPath("1.0")
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestPutPath(t *testing.T) {
	t.Parallel()

	alice := map[string]any{"name": "Alice"}
	table := each.New(alice)

	require.NoError(t, table.PutPath("0.name", "Alicia"))
	assert.Equal(t, "Alicia", alice["name"], "map members share their storage")

	grid := each.New([]any{1, 2})
	require.NoError(t, grid.PutPath("0.1", 9))
	v, err := grid.AtPath("0.1")
	require.NoError(t, err)
	assert.Equal(t, 9, v)
}

func TestPutPathSingleSegment(t *testing.T) {
	t.Parallel()

	c := each.New(1, 2)
	require.NoError(t, c.PutPath("1", 9))
	assertSame(t, each.New(1, 9), c)
}
