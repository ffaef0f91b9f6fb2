package each

import (
	"fmt"
	"math"
	"strings"
)

// Op tags one member-level binary operation. Forward, reflected, and
// in-place operator forms all dispatch through the same kernel table; they
// differ only in operand order and in how the output is consumed.
type Op uint8

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpFloorDiv
	OpMod
	OpPow
	OpAnd
	OpOr
	OpXor
	OpLShift
	OpRShift
	OpGt
	OpGe
	OpLt
	OpLe
	OpEq
	OpNe
)

var opNames = map[Op]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpFloorDiv: "//",
	OpMod: "%", OpPow: "**", OpAnd: "&", OpOr: "|", OpXor: "^",
	OpLShift: "<<", OpRShift: ">>", OpGt: ">", OpGe: ">=", OpLt: "<",
	OpLe: "<=", OpEq: "==", OpNe: "!=",
}

// ─────────────────────────────────────────────────────────────────────────────
// Distributed operator forms
// ─────────────────────────────────────────────────────────────────────────────

// binary aligns c with other and applies op pairwise, producing a fresh
// container. reflected swaps the operand order inside the loop only.
func (c *Container) binary(op Op, other any, reflected bool) (*Container, error) {
	al, err := align(false, c, other)
	if err != nil {
		return nil, err
	}
	vals, err := al.run(func(tup []any) (any, error) {
		a, b := tup[0], tup[1]
		if reflected {
			a, b = b, a
		}
		return applyOp(op, a, b)
	})
	if err != nil {
		return nil, err
	}
	return al.build(vals), nil
}

// binaryInPlace is the compound-assignment form: the alignment matches c
// itself, and the aligned slots of c are overwritten so that the returned
// container is c.
func (c *Container) binaryInPlace(op Op, other any) (*Container, error) {
	al, err := align(true, c, other)
	if err != nil {
		return nil, err
	}
	vals, err := al.run(func(tup []any) (any, error) {
		return applyOp(op, tup[0], tup[1])
	})
	if err != nil {
		return nil, err
	}
	return al.buildInPlace(vals)
}

func (c *Container) unary(fn func(any) (any, error)) (*Container, error) {
	al, err := align(false, c)
	if err != nil {
		return nil, err
	}
	vals, err := al.run(func(tup []any) (any, error) { return fn(tup[0]) })
	if err != nil {
		return nil, err
	}
	return al.build(vals), nil
}

// Add returns c + other member-wise.
func (c *Container) Add(other any) (*Container, error) { return c.binary(OpAdd, other, false) }

// RAdd returns other + c member-wise.
func (c *Container) RAdd(other any) (*Container, error) { return c.binary(OpAdd, other, true) }

// AddInPlace adds other into c's own slots and returns c.
func (c *Container) AddInPlace(other any) (*Container, error) { return c.binaryInPlace(OpAdd, other) }

// Sub returns c - other member-wise.
func (c *Container) Sub(other any) (*Container, error) { return c.binary(OpSub, other, false) }

// RSub returns other - c member-wise.
func (c *Container) RSub(other any) (*Container, error) { return c.binary(OpSub, other, true) }

// SubInPlace subtracts other from c's own slots and returns c.
func (c *Container) SubInPlace(other any) (*Container, error) { return c.binaryInPlace(OpSub, other) }

// Mul returns c * other member-wise.
func (c *Container) Mul(other any) (*Container, error) { return c.binary(OpMul, other, false) }

// RMul returns other * c member-wise.
func (c *Container) RMul(other any) (*Container, error) { return c.binary(OpMul, other, true) }

// MulInPlace multiplies other into c's own slots and returns c.
func (c *Container) MulInPlace(other any) (*Container, error) { return c.binaryInPlace(OpMul, other) }

// Div returns c / other member-wise. Integer operands promote to float64.
func (c *Container) Div(other any) (*Container, error) { return c.binary(OpDiv, other, false) }

// RDiv returns other / c member-wise.
func (c *Container) RDiv(other any) (*Container, error) { return c.binary(OpDiv, other, true) }

// DivInPlace divides c's own slots by other and returns c.
func (c *Container) DivInPlace(other any) (*Container, error) { return c.binaryInPlace(OpDiv, other) }

// FloorDiv returns c // other member-wise (floored quotient).
func (c *Container) FloorDiv(other any) (*Container, error) { return c.binary(OpFloorDiv, other, false) }

// RFloorDiv returns other // c member-wise.
func (c *Container) RFloorDiv(other any) (*Container, error) { return c.binary(OpFloorDiv, other, true) }

// FloorDivInPlace floor-divides c's own slots by other and returns c.
func (c *Container) FloorDivInPlace(other any) (*Container, error) {
	return c.binaryInPlace(OpFloorDiv, other)
}

// Mod returns c % other member-wise (result takes the divisor's sign, so
// Mod pairs with FloorDiv).
func (c *Container) Mod(other any) (*Container, error) { return c.binary(OpMod, other, false) }

// RMod returns other % c member-wise.
func (c *Container) RMod(other any) (*Container, error) { return c.binary(OpMod, other, true) }

// ModInPlace reduces c's own slots modulo other and returns c.
func (c *Container) ModInPlace(other any) (*Container, error) { return c.binaryInPlace(OpMod, other) }

// Pow returns c ** other member-wise. Integer bases with non-negative
// integer exponents stay integral; everything else promotes to float64.
func (c *Container) Pow(other any) (*Container, error) { return c.binary(OpPow, other, false) }

// RPow returns other ** c member-wise.
func (c *Container) RPow(other any) (*Container, error) { return c.binary(OpPow, other, true) }

// PowInPlace raises c's own slots to other and returns c.
func (c *Container) PowInPlace(other any) (*Container, error) { return c.binaryInPlace(OpPow, other) }

// And returns c & other member-wise (bitwise for integers, logical for bools).
func (c *Container) And(other any) (*Container, error) { return c.binary(OpAnd, other, false) }

// RAnd returns other & c member-wise.
func (c *Container) RAnd(other any) (*Container, error) { return c.binary(OpAnd, other, true) }

// AndInPlace ands other into c's own slots and returns c.
func (c *Container) AndInPlace(other any) (*Container, error) { return c.binaryInPlace(OpAnd, other) }

// Or returns c | other member-wise (bitwise for integers, logical for bools).
func (c *Container) Or(other any) (*Container, error) { return c.binary(OpOr, other, false) }

// ROr returns other | c member-wise.
func (c *Container) ROr(other any) (*Container, error) { return c.binary(OpOr, other, true) }

// OrInPlace ors other into c's own slots and returns c.
func (c *Container) OrInPlace(other any) (*Container, error) { return c.binaryInPlace(OpOr, other) }

// Xor returns c ^ other member-wise (bitwise for integers, logical for bools).
func (c *Container) Xor(other any) (*Container, error) { return c.binary(OpXor, other, false) }

// RXor returns other ^ c member-wise.
func (c *Container) RXor(other any) (*Container, error) { return c.binary(OpXor, other, true) }

// XorInPlace xors other into c's own slots and returns c.
func (c *Container) XorInPlace(other any) (*Container, error) { return c.binaryInPlace(OpXor, other) }

// LShift returns c << other member-wise.
func (c *Container) LShift(other any) (*Container, error) { return c.binary(OpLShift, other, false) }

// RLShift returns other << c member-wise.
func (c *Container) RLShift(other any) (*Container, error) { return c.binary(OpLShift, other, true) }

// LShiftInPlace shifts c's own slots left by other and returns c.
func (c *Container) LShiftInPlace(other any) (*Container, error) {
	return c.binaryInPlace(OpLShift, other)
}

// RShift returns c >> other member-wise.
func (c *Container) RShift(other any) (*Container, error) { return c.binary(OpRShift, other, false) }

// RRShift returns other >> c member-wise.
func (c *Container) RRShift(other any) (*Container, error) { return c.binary(OpRShift, other, true) }

// RShiftInPlace shifts c's own slots right by other and returns c.
func (c *Container) RShiftInPlace(other any) (*Container, error) {
	return c.binaryInPlace(OpRShift, other)
}

// Gt returns a container of booleans: c > other member-wise.
func (c *Container) Gt(other any) (*Container, error) { return c.binary(OpGt, other, false) }

// Ge returns a container of booleans: c >= other member-wise.
func (c *Container) Ge(other any) (*Container, error) { return c.binary(OpGe, other, false) }

// Lt returns a container of booleans: c < other member-wise.
func (c *Container) Lt(other any) (*Container, error) { return c.binary(OpLt, other, false) }

// Le returns a container of booleans: c <= other member-wise.
func (c *Container) Le(other any) (*Container, error) { return c.binary(OpLe, other, false) }

// EqEach returns a container of booleans: c == other member-wise.
// (Equal compares whole containers; EqEach distributes the comparison.)
func (c *Container) EqEach(other any) (*Container, error) { return c.binary(OpEq, other, false) }

// NeEach returns a container of booleans: c != other member-wise.
func (c *Container) NeEach(other any) (*Container, error) { return c.binary(OpNe, other, false) }

// Pos returns +c member-wise: numeric members pass through unchanged into a
// fresh container, non-numeric members fail.
func (c *Container) Pos() (*Container, error) { return c.unary(posValue) }

// Neg returns -c member-wise.
func (c *Container) Neg() (*Container, error) { return c.unary(negValue) }

// Abs returns the absolute value of each member.
func (c *Container) Abs() (*Container, error) { return c.unary(absValue) }

// Invert returns ^m for integer members and !m for boolean members.
func (c *Container) Invert() (*Container, error) { return c.unary(invertValue) }

// ─────────────────────────────────────────────────────────────────────────────
// Member-level kernel
// ─────────────────────────────────────────────────────────────────────────────

// applyOp applies op to two member values. Nested containers re-enter the
// distributed machinery; type errors from the scalar kernel surface as-is.
func applyOp(op Op, a, b any) (any, error) {
	if ac, ok := a.(*Container); ok {
		return ac.binary(op, b, false)
	}
	if bc, ok := b.(*Container); ok {
		return bc.binary(op, a, true)
	}
	return scalarOp(op, a, b)
}

func scalarOp(op Op, a, b any) (any, error) {
	switch op {
	case OpEq:
		return equalValue(a, b), nil
	case OpNe:
		return !equalValue(a, b), nil
	case OpGt, OpGe, OpLt, OpLe:
		cmp, err := compareValues(a, b)
		if err != nil {
			return nil, err
		}
		switch op {
		case OpGt:
			return cmp > 0, nil
		case OpGe:
			return cmp >= 0, nil
		case OpLt:
			return cmp < 0, nil
		default:
			return cmp <= 0, nil
		}
	}

	if as, ok := a.(string); ok {
		return stringOp(op, as, b, false)
	}
	if bs, ok := b.(string); ok {
		return stringOp(op, bs, a, true)
	}
	if ab, ok := a.(bool); ok {
		if bb, ok2 := b.(bool); ok2 {
			return boolOp(op, ab, bb)
		}
	}

	ai, aInt := asInt(a)
	bi, bInt := asInt(b)
	if aInt && bInt && op != OpDiv {
		return intOp(op, ai, bi)
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		return floatOp(op, af, bf)
	}
	return nil, fmt.Errorf("%w: %T %s %T", ErrUnsupportedOperation, a, opNames[op], b)
}

func intOp(op Op, a, b int) (any, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSub:
		return a - b, nil
	case OpMul:
		return a * b, nil
	case OpFloorDiv:
		if b == 0 {
			return nil, fmt.Errorf("%w: integer division by zero", ErrUnsupportedOperation)
		}
		return floorDiv(a, b), nil
	case OpMod:
		if b == 0 {
			return nil, fmt.Errorf("%w: integer modulo by zero", ErrUnsupportedOperation)
		}
		return a - floorDiv(a, b)*b, nil
	case OpPow:
		if b < 0 {
			return math.Pow(float64(a), float64(b)), nil
		}
		out := 1
		for i := 0; i < b; i++ {
			out *= a
		}
		return out, nil
	case OpAnd:
		return a & b, nil
	case OpOr:
		return a | b, nil
	case OpXor:
		return a ^ b, nil
	case OpLShift:
		if b < 0 {
			return nil, fmt.Errorf("%w: negative shift count", ErrUnsupportedOperation)
		}
		return a << b, nil
	case OpRShift:
		if b < 0 {
			return nil, fmt.Errorf("%w: negative shift count", ErrUnsupportedOperation)
		}
		return a >> b, nil
	}
	return nil, fmt.Errorf("%w: int %s int", ErrUnsupportedOperation, opNames[op])
}

// floorDiv rounds the quotient toward negative infinity, matching the
// divisor-signed Mod.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floatOp(op Op, a, b float64) (any, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSub:
		return a - b, nil
	case OpMul:
		return a * b, nil
	case OpDiv:
		return a / b, nil
	case OpFloorDiv:
		return math.Floor(a / b), nil
	case OpMod:
		m := math.Mod(a, b)
		if m != 0 && (m < 0) != (b < 0) {
			m += b
		}
		return m, nil
	case OpPow:
		return math.Pow(a, b), nil
	}
	return nil, fmt.Errorf("%w: float64 %s float64", ErrUnsupportedOperation, opNames[op])
}

// stringOp handles the string cases: concatenation and repetition. swapped
// means s was the right operand.
func stringOp(op Op, s string, other any, swapped bool) (any, error) {
	switch op {
	case OpAdd:
		if o, ok := other.(string); ok {
			if swapped {
				return o + s, nil
			}
			return s + o, nil
		}
	case OpMul:
		if n, ok := asInt(other); ok {
			if n < 0 {
				n = 0
			}
			return strings.Repeat(s, n), nil
		}
	}
	return nil, fmt.Errorf("%w: string %s %T", ErrUnsupportedOperation, opNames[op], other)
}

func boolOp(op Op, a, b bool) (any, error) {
	switch op {
	case OpAnd:
		return a && b, nil
	case OpOr:
		return a || b, nil
	case OpXor:
		return a != b, nil
	}
	return nil, fmt.Errorf("%w: bool %s bool", ErrUnsupportedOperation, opNames[op])
}

func posValue(v any) (any, error) {
	if c, ok := v.(*Container); ok {
		return c.Pos()
	}
	if i, ok := asInt(v); ok {
		return i, nil
	}
	if f, ok := asFloat(v); ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w: +%T", ErrUnsupportedOperation, v)
}

func negValue(v any) (any, error) {
	if c, ok := v.(*Container); ok {
		return c.Neg()
	}
	if i, ok := asInt(v); ok {
		return -i, nil
	}
	if f, ok := asFloat(v); ok {
		return -f, nil
	}
	return nil, fmt.Errorf("%w: -%T", ErrUnsupportedOperation, v)
}

func absValue(v any) (any, error) {
	if c, ok := v.(*Container); ok {
		return c.Abs()
	}
	if i, ok := asInt(v); ok {
		if i < 0 {
			return -i, nil
		}
		return i, nil
	}
	if f, ok := asFloat(v); ok {
		return math.Abs(f), nil
	}
	return nil, fmt.Errorf("%w: abs(%T)", ErrUnsupportedOperation, v)
}

func invertValue(v any) (any, error) {
	if c, ok := v.(*Container); ok {
		return c.Invert()
	}
	if b, ok := v.(bool); ok {
		return !b, nil
	}
	if i, ok := asInt(v); ok {
		return ^i, nil
	}
	return nil, fmt.Errorf("%w: ^%T", ErrUnsupportedOperation, v)
}
