package pipe

import (
	"context"
	"fmt"
	"reflect"

	"github.com/kbukum/pipekit/errors"
)

// Lifter is the capability a value implements to control its own lifting.
// Lift checks for it before falling back to the default wrap-function
// behavior, so values that need more than the data key (or that produce an
// operation from configuration) can define bespoke lifting logic.
type Lifter interface {
	Lift(extra ...any) Op
}

// Lift adapts an ordinary value-in/value-out function into a
// context-compliant operation: the returned operation reads the data key,
// calls target(data, extra...), and writes the result back under data,
// leaving every other key untouched. A trailing error return on target is
// honored. If target implements Lifter, lifting is delegated to it.
func Lift(target any, extra ...any) Op {
	if l, ok := target.(Lifter); ok {
		return l.Lift(extra...)
	}

	fn := reflect.ValueOf(target)
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		return func(context.Context, Context) (Context, error) {
			return nil, errors.New(errors.ErrCodeUncallableOperation,
				fmt.Sprintf("lift target %T is not a function", target))
		}
	}

	return func(_ context.Context, c Context) (Context, error) {
		args := make([]any, 0, len(extra)+1)
		args = append(args, c.Data())
		args = append(args, extra...)

		out, err := call(fn, args)
		if err != nil {
			return nil, err
		}
		return c.With(KeyData, out), nil
	}
}

// Invoke dynamically applies target to args, converting numeric arguments
// where needed and honoring an optional trailing error return. It is the
// dispatch point shared by lifted functions and the declarative resolver's
// factory application.
func Invoke(target any, args ...any) (any, error) {
	fn := reflect.ValueOf(target)
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		return nil, fmt.Errorf("%T is not a function", target)
	}
	return call(fn, args)
}

func call(fn reflect.Value, args []any) (any, error) {
	t := fn.Type()

	fixed := t.NumIn()
	if t.IsVariadic() {
		fixed--
		if len(args) < fixed {
			return nil, fmt.Errorf("expected at least %d arguments, got %d", fixed, len(args))
		}
	} else if len(args) != fixed {
		return nil, fmt.Errorf("expected %d arguments, got %d", fixed, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var want reflect.Type
		if t.IsVariadic() && i >= fixed {
			want = t.In(fixed).Elem()
		} else {
			want = t.In(i)
		}
		v, err := coerce(arg, want)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		in[i] = v
	}

	outs := fn.Call(in)
	switch len(outs) {
	case 0:
		return nil, nil
	case 1:
		if isErrorValue(outs[0]) {
			return nil, asError(outs[0])
		}
		return outs[0].Interface(), nil
	default:
		last := outs[len(outs)-1]
		if isErrorValue(last) {
			if err := asError(last); err != nil {
				return nil, err
			}
			outs = outs[:len(outs)-1]
		}
		return outs[0].Interface(), nil
	}
}

// coerce converts arg to the wanted type. Assignable values pass through;
// numeric kinds convert (so YAML integers feed float parameters); nil maps
// to the zero value.
func coerce(arg any, want reflect.Type) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(want), nil
	}
	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(want) {
		return v, nil
	}
	if isNumericKind(v.Kind()) && isNumericKind(want.Kind()) {
		return v.Convert(want), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %T as %s", arg, want)
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

func isErrorValue(v reflect.Value) bool {
	return v.Type().Implements(errType)
}

func asError(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}
	return v.Interface().(error)
}
