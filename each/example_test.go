package each_test

import (
	"fmt"
	"math"

	"github.com/Justin-Fisher/eachtools/each"
)

func ExampleNew() {
	c, _ := each.New(1, 2, 3).Add(10)
	fmt.Println(c)
	// Output: each(11, 12, 13)
}

func ExampleCombine() {
	prices, _ := each.Combine([]any{"tea", "coffee"}, []any{2, 3})
	doubled, _ := prices.Mul(2)
	fmt.Println(doubled)
	// Output: each(tea: 4, coffee: 6)
}

func ExampleContainer_Add_pairwise() {
	c, _ := each.New(1, 2, 3).Add([]any{10, 20, 30})
	fmt.Println(c)
	// Output: each(11, 22, 33)
}

func ExampleContainer_At_mask() {
	c := each.New(1, 5, 2, 6)
	big, _ := c.Gt(3)
	picked, _ := c.At(big)
	fmt.Println(picked)
	// Output: each(5, 6)
}

func ExampleContainer_At_span() {
	c := each.New(0, 1, 2, 3, 4)
	mid, _ := c.At(each.Span{Start: 1, Stop: 4})
	fmt.Println(mid)
	// Output: each(1, 2, 3)
}

func ExampleContainer_At_compound() {
	rows := each.New(each.New(1, 2, 3), each.New(4, 5, 6))
	tails, _ := rows.At(each.All, each.Span{Start: 1})
	fmt.Println(tails)
	// Output: each(each(2, 3), each(5, 6))
}

func ExampleContainer_Put() {
	c := each.New(1, 2, 3, 4)
	_ = c.Put(0, each.Span{Start: 1, Stop: 3})
	fmt.Println(c)
	// Output: each(1, 0, 0, 4)
}

func ExampleContainer_Contains() {
	c := each.New("abc", "xyz")
	got, _ := c.Contains("a")
	fmt.Println(got)
	// Output: each(true, false)
}

func ExampleApply() {
	roots, _ := each.Apply(math.Sqrt, []any{1.0, 4.0, 9.0})
	fmt.Println(roots)
	// Output: each(1, 2, 3)
}

func ExampleWrap() {
	flat := each.Wrap([]any{[]any{1, 2}, []any{3, 4}})
	deep := each.Wrap(flat)
	sums, _ := deep.Add(10)
	fmt.Println(sums)
	// Output: each(each(11, 12), each(13, 14))
}

func ExampleContainer_AtPath() {
	table := each.New(
		map[string]any{"name": "Alice"},
		map[string]any{"name": "Bob"},
	)
	name, _ := table.AtPath("1.name")
	fmt.Println(name)
	// Output: Bob
}
