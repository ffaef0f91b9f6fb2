package each

import "github.com/davecgh/go-spew/spew"

var dumper = spew.ConfigState{Indent: "  ", SortKeys: true}

// Dump prints the container's full structure (kind, nesting, storage,
// nested containers included) to stdout and returns c for chaining.
// Intended for debugging; use String for a compact rendering.
func (c *Container) Dump() *Container {
	dumper.Dump(c)
	return c
}

// Sdump returns what [Container.Dump] would print.
func (c *Container) Sdump() string {
	return dumper.Sdump(c)
}
