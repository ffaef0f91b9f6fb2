package each

import (
	"fmt"
	"reflect"
)

// FieldGetter lets an element type expose named fields to distributed
// field access without reflection.
type FieldGetter interface {
	GetField(name string) (any, error)
}

// FieldSetter lets an element type accept distributed field assignment
// without reflection.
type FieldSetter interface {
	SetField(name string, value any) error
}

// Field reads the named field of every member: members implementing
// [FieldGetter] are asked directly, struct members (and pointers to
// structs) are read through reflection, and nested containers distribute
// the read a level further. Keyed and set variants produce a keyed
// container preserving their keys; sequences produce a sequence.
func (c *Container) Field(name string) (*Container, error) {
	members := c.All()
	out := make([]any, len(members))
	for i, m := range members {
		v, err := getField(m, name)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	if c.kind == Sequence {
		return newSeq(out, Flat), nil
	}
	keys := make([]any, len(c.keys))
	copy(keys, c.keys)
	return newKeyed(Keyed, keys, out, Flat), nil
}

// SetEachField assigns the named field of every member, aligning the value
// against c with c as the model: a singleton c is not broadcast, a
// singleton value is.
func (c *Container) SetEachField(name string, value any) error {
	al, err := align(true, c, value)
	if err != nil {
		return err
	}
	return al.tuples(func(_ int, tup []any) error {
		return setField(tup[0], name, tup[1])
	})
}

func getField(m any, name string) (any, error) {
	if sub, ok := m.(*Container); ok {
		return sub.Field(name)
	}
	if g, ok := m.(FieldGetter); ok {
		return g.GetField(name)
	}
	rv := reflect.ValueOf(m)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Struct {
		f := rv.FieldByName(name)
		if f.IsValid() && f.CanInterface() {
			return f.Interface(), nil
		}
	}
	return nil, fmt.Errorf("%w: field %q on %T", ErrUnsupportedOperation, name, m)
}

func setField(m any, name string, value any) error {
	if sub, ok := m.(*Container); ok {
		return sub.SetEachField(name, value)
	}
	if s, ok := m.(FieldSetter); ok {
		return s.SetField(name, value)
	}
	rv := reflect.ValueOf(m)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: setting field %q on %T (need a pointer to struct or a FieldSetter)",
			ErrUnsupportedOperation, name, m)
	}
	f := rv.Elem().FieldByName(name)
	if !f.IsValid() || !f.CanSet() {
		return fmt.Errorf("%w: field %q on %T", ErrUnsupportedOperation, name, m)
	}
	v := reflect.ValueOf(value)
	if !v.IsValid() || !v.Type().AssignableTo(f.Type()) {
		if v.IsValid() && v.Type().ConvertibleTo(f.Type()) {
			v = v.Convert(f.Type())
		} else {
			return fmt.Errorf("%w: storing %T into field %q of %T", ErrUnsupportedOperation, value, name, m)
		}
	}
	f.Set(v)
	return nil
}

// Invoke calls the named method on every member with the given arguments,
// aligning members and arguments together and broadcasting singletons, so
// Invoke("Scale", factors) pairs each member with its own factor while
// Invoke("Scale", 2) scales every member by two.
func (c *Container) Invoke(name string, args ...any) (*Container, error) {
	operands := append([]any{c}, args...)
	al, err := align(false, operands...)
	if err != nil {
		return nil, err
	}
	vals, err := al.run(func(tup []any) (any, error) {
		rv := reflect.ValueOf(tup[0])
		if !rv.IsValid() {
			return nil, fmt.Errorf("%w: method %q on %T", ErrUnsupportedOperation, name, tup[0])
		}
		m := rv.MethodByName(name)
		if !m.IsValid() {
			return nil, fmt.Errorf("%w: method %q on %T", ErrUnsupportedOperation, name, tup[0])
		}
		return callValue(m, tup[1:])
	})
	if err != nil {
		return nil, err
	}
	return al.build(vals), nil
}

// Call invokes each member as a function, aligning argument collections
// against the container just as Invoke does. Members must be funcs.
func (c *Container) Call(args ...any) (*Container, error) {
	operands := append([]any{c}, args...)
	al, err := align(false, operands...)
	if err != nil {
		return nil, err
	}
	vals, err := al.run(func(tup []any) (any, error) {
		return callAny(tup[0], tup[1:])
	})
	if err != nil {
		return nil, err
	}
	return al.build(vals), nil
}

// Apply lifts an ordinary function into a distributed one: the function
// (or a container of functions) is aligned with the operand collections
// and called once per aligned tuple.
//
//	roots, _ := each.Apply(math.Sqrt, []any{1, 4, 9})   // each(1, 2, 3)
func Apply(fn any, operands ...any) (*Container, error) {
	all := append([]any{fn}, operands...)
	al, err := align(false, all...)
	if err != nil {
		return nil, err
	}
	vals, err := al.run(func(tup []any) (any, error) {
		return callAny(tup[0], tup[1:])
	})
	if err != nil {
		return nil, err
	}
	return al.build(vals), nil
}

func callAny(fn any, args []any) (any, error) {
	if sub, ok := fn.(*Container); ok {
		return sub.Call(args...)
	}
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: calling %T", ErrUnsupportedOperation, fn)
	}
	return callValue(rv, args)
}

// callValue invokes a func value with loosely typed arguments, converting
// numerics where the signature requires (so integer members can feed
// float64 parameters like math.Sqrt's). A trailing error return is
// unwrapped; a non-nil one fails the whole distributed operation.
func callValue(fn reflect.Value, args []any) (any, error) {
	t := fn.Type()
	want := t.NumIn()
	if t.IsVariadic() {
		if len(args) < want-1 {
			return nil, fmt.Errorf("%w: %d args for %s", ErrUnsupportedOperation, len(args), t)
		}
	} else if len(args) != want {
		return nil, fmt.Errorf("%w: %d args for %s", ErrUnsupportedOperation, len(args), t)
	}
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		pt := t.In(min(i, want-1))
		if t.IsVariadic() && i >= want-1 {
			pt = t.In(want - 1).Elem()
		}
		v := reflect.ValueOf(a)
		if !v.IsValid() {
			v = reflect.Zero(pt)
		} else if !v.Type().AssignableTo(pt) {
			if !v.Type().ConvertibleTo(pt) {
				return nil, fmt.Errorf("%w: arg %d (%T) for %s", ErrUnsupportedOperation, i, a, t)
			}
			v = v.Convert(pt)
		}
		in[i] = v
	}
	out := fn.Call(in)
	if n := len(out); n > 0 && out[n-1].Type() == errType {
		if !out[n-1].IsNil() {
			return nil, out[n-1].Interface().(error)
		}
		out = out[:n-1]
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0].Interface(), nil
}

var errType = reflect.TypeOf((*error)(nil)).Elem()
