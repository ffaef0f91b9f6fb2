package each

import (
	"strconv"
	"strings"
)

// AtPath reads a value from a nested container using a dot-separated key
// path. Each segment addresses one level: a numeric segment resolves as a
// position (or integer key), anything else as a string key.
//
//	table := each.Wrap([]any{
//	    map[string]any{"name": "Alice"},
//	    map[string]any{"name": "Bob"},
//	})
//	table.AtPath("1.name")   // "Bob"
func (c *Container) AtPath(path string) (any, error) {
	return c.At(parsePath(path)...)
}

// PutPath writes a value at a dot-separated key path, the write-side
// counterpart of [Container.AtPath].
func (c *Container) PutPath(path string, value any) error {
	return c.Put(value, parsePath(path)...)
}

// parsePath splits a dot path into index components: numeric segments
// become positions, everything else stays a string key. The components
// feed the compound indexing engine directly, the leading segment as the
// domain selector and the rest as range selectors.
func parsePath(path string) []any {
	segments := strings.Split(path, ".")
	out := make([]any, len(segments))
	for i, seg := range segments {
		if n, err := strconv.Atoi(seg); err == nil {
			out[i] = n
		} else {
			out[i] = seg
		}
	}
	return out
}
