package minilisp

import (
	"cmp"
	"fmt"
	"io"
	"math"
)

// SpecialForms are dispatched by spelling before ordinary application.
var SpecialForms = []string{"quote", "cond", "lambda", "let"}

// Builtins returns the root bindings: primitives, constants and markers for
// the special forms. write-line output goes to out.
func Builtins(out io.Writer) map[string]Value {
	m := map[string]Value{
		"t":   BoolVal(true),
		"f":   BoolVal(false),
		"nil": ListVal(nil),
	}
	for _, name := range SpecialForms {
		m[name] = SpecialVal(name)
	}
	prims := []*Builtin{
		{Name: "atom", Arity: 1, Fn: builtinAtom},
		{Name: "car", Arity: 1, Fn: builtinCar},
		{Name: "cdr", Arity: 1, Fn: builtinCdr},
		{Name: "cons", Arity: 2, Fn: builtinCons},
		{Name: "eq", Arity: 2, Fn: builtinEq},
		{Name: "write-line", Arity: 1, Fn: writeLine(out)},
		// Arithmetic
		{Name: "add", Arity: 2, Fn: builtinAdd},
		{Name: "sub", Arity: 2, Fn: builtinSub},
		{Name: "mul", Arity: 2, Fn: builtinMul},
		{Name: "div", Arity: 2, Fn: builtinDiv},
		// Comparison
		{Name: "gt", Arity: 2, Fn: comparison("gt", orderGT)},
		{Name: "lt", Arity: 2, Fn: comparison("lt", orderLT)},
		{Name: "ge", Arity: 2, Fn: comparison("ge", orderGE)},
		{Name: "le", Arity: 2, Fn: comparison("le", orderLE)},
	}
	for _, b := range prims {
		m[b.Name] = BuiltinVal(b)
	}
	return m
}

// RootScope returns a fresh root scope seeded with Builtins(out).
func RootScope(out io.Writer) *Scope {
	return NewScope(Builtins(out), nil)
}

// --- Builtin implementations ---

func builtinAtom(args []Value) (Value, error) {
	return BoolVal(args[0].Kind != ValList), nil
}

func builtinCar(args []Value) (Value, error) {
	if args[0].Kind != ValList {
		return Value{}, typeMismatch("car", "List", args[0])
	}
	if len(args[0].List) == 0 {
		return Value{}, &EmptyListError{Op: "car"}
	}
	return args[0].List[0], nil
}

func builtinCdr(args []Value) (Value, error) {
	if args[0].Kind != ValList {
		return Value{}, typeMismatch("cdr", "List", args[0])
	}
	if len(args[0].List) == 0 {
		return Value{}, &EmptyListError{Op: "cdr"}
	}
	rest := make([]Value, len(args[0].List)-1)
	copy(rest, args[0].List[1:])
	return ListVal(rest), nil
}

func builtinCons(args []Value) (Value, error) {
	if args[1].Kind != ValList {
		return Value{}, typeMismatch("cons", "List as second arg", args[1])
	}
	elems := args[1].List
	result := make([]Value, len(elems)+1)
	result[0] = args[0]
	copy(result[1:], elems)
	return ListVal(result), nil
}

func builtinEq(args []Value) (Value, error) {
	return BoolVal(ValuesEqual(args[0], args[1])), nil
}

func writeLine(out io.Writer) func(args []Value) (Value, error) {
	return func(args []Value) (Value, error) {
		if _, err := fmt.Fprintln(out, args[0].String()); err != nil {
			return Value{}, fmt.Errorf("write-line: %w", err)
		}
		return VoidVal(), nil
	}
}

// --- Arithmetic ---

// numericArgs extracts two numeric args, promoting to float if mixed.
func numericArgs(name string, args []Value) (int64, int64, float64, float64, bool, error) {
	a, b := args[0], args[1]
	if a.Kind == ValInt && b.Kind == ValInt {
		return a.Int, b.Int, 0, 0, false, nil
	}
	fa, ok := asFloat(a)
	if !ok {
		return 0, 0, 0, 0, false, typeMismatch(name, "number", a)
	}
	fb, ok := asFloat(b)
	if !ok {
		return 0, 0, 0, 0, false, typeMismatch(name, "number", b)
	}
	return 0, 0, fa, fb, true, nil
}

// builtinAdd also concatenates two strings or two lists.
func builtinAdd(args []Value) (Value, error) {
	a, b := args[0], args[1]
	switch {
	case a.Kind == ValString && b.Kind == ValString:
		return StringVal(a.Str + b.Str), nil
	case a.Kind == ValList && b.Kind == ValList:
		result := make([]Value, 0, len(a.List)+len(b.List))
		result = append(result, a.List...)
		result = append(result, b.List...)
		return ListVal(result), nil
	}
	ai, bi, af, bf, isFloat, err := numericArgs("add", args)
	if err != nil {
		return Value{}, err
	}
	if isFloat {
		return FloatVal(af + bf), nil
	}
	sum := ai + bi
	if (ai^sum)&(bi^sum) < 0 {
		return Value{}, &IntegerOverflowError{Op: "add"}
	}
	return IntVal(sum), nil
}

func builtinSub(args []Value) (Value, error) {
	ai, bi, af, bf, isFloat, err := numericArgs("sub", args)
	if err != nil {
		return Value{}, err
	}
	if isFloat {
		return FloatVal(af - bf), nil
	}
	diff := ai - bi
	if (ai^bi)&(ai^diff) < 0 {
		return Value{}, &IntegerOverflowError{Op: "sub"}
	}
	return IntVal(diff), nil
}

func builtinMul(args []Value) (Value, error) {
	ai, bi, af, bf, isFloat, err := numericArgs("mul", args)
	if err != nil {
		return Value{}, err
	}
	if isFloat {
		return FloatVal(af * bf), nil
	}
	if ai == 0 || bi == 0 {
		return IntVal(0), nil
	}
	prod := ai * bi
	if prod/bi != ai || (ai == -1 && bi == math.MinInt64) || (bi == -1 && ai == math.MinInt64) {
		return Value{}, &IntegerOverflowError{Op: "mul"}
	}
	return IntVal(prod), nil
}

// builtinDiv is true division: the result is always a Float.
func builtinDiv(args []Value) (Value, error) {
	ai, bi, af, bf, isFloat, err := numericArgs("div", args)
	if err != nil {
		return Value{}, err
	}
	if !isFloat {
		af, bf = float64(ai), float64(bi)
	}
	if bf == 0 {
		return Value{}, &DivisionByZeroError{Op: "div"}
	}
	return FloatVal(af / bf), nil
}

// --- Comparison ---

type ordering int

const (
	orderGT ordering = iota
	orderLT
	orderGE
	orderLE
)

// holds applies the operator directly, so any comparison involving NaN
// is false.
func holds[T cmp.Ordered](o ordering, a, b T) bool {
	switch o {
	case orderGT:
		return a > b
	case orderLT:
		return a < b
	case orderGE:
		return a >= b
	default:
		return a <= b
	}
}

// comparison orders two numbers or two strings. Two Ints compare exactly;
// a mixed pair is widened to Float.
func comparison(name string, o ordering) func(args []Value) (Value, error) {
	return func(args []Value) (Value, error) {
		a, b := args[0], args[1]
		if a.Kind == ValInt && b.Kind == ValInt {
			return BoolVal(holds(o, a.Int, b.Int)), nil
		}
		if fa, fb, ok := numericPair(a, b); ok {
			return BoolVal(holds(o, fa, fb)), nil
		}
		if a.Kind == ValString && b.Kind == ValString {
			return BoolVal(holds(o, a.Str, b.Str)), nil
		}
		if _, ok := asFloat(a); !ok && a.Kind != ValString {
			return Value{}, typeMismatch(name, "number or String", a)
		}
		want := "number"
		if a.Kind == ValString {
			want = "String"
		}
		return Value{}, typeMismatch(name, want, b)
	}
}
