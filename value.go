package minilisp

import (
	"fmt"
	"strconv"
	"strings"
)

type ValueKind int

const (
	ValVoid ValueKind = iota
	ValBool
	ValInt
	ValFloat
	ValString
	ValSymbol
	ValList
	ValLambda
	ValBuiltin
	ValSpecial
)

// Closure is a lambda value: parameter names, a shared body and the scope
// the lambda was created in.
type Closure struct {
	Params []string
	Body   *Node
	Scope  *Scope
}

// Builtin is a primitive implemented in Go, called with evaluated arguments.
// Arity is checked before Fn runs.
type Builtin struct {
	Name  string
	Arity int
	Fn    func(args []Value) (Value, error)
}

type Value struct {
	Kind    ValueKind
	Int     int64
	Float   float64
	Bool    bool
	Str     string // string contents, symbol or special form name
	List    []Value
	Lambda  *Closure
	Builtin *Builtin
}

func VoidVal() Value { return Value{Kind: ValVoid} }
func BoolVal(b bool) Value { return Value{Kind: ValBool, Bool: b} }
func IntVal(n int64) Value { return Value{Kind: ValInt, Int: n} }
func FloatVal(f float64) Value { return Value{Kind: ValFloat, Float: f} }
func StringVal(s string) Value { return Value{Kind: ValString, Str: s} }
func SymbolVal(s string) Value { return Value{Kind: ValSymbol, Str: s} }
func SpecialVal(s string) Value { return Value{Kind: ValSpecial, Str: s} }
func LambdaVal(c *Closure) Value { return Value{Kind: ValLambda, Lambda: c} }
func BuiltinVal(b *Builtin) Value { return Value{Kind: ValBuiltin, Builtin: b} }

func ListVal(elems []Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{Kind: ValList, List: elems}
}

// Callable reports whether v can be applied to arguments.
func (v Value) Callable() bool {
	return v.Kind == ValLambda || v.Kind == ValBuiltin
}

// Truthy: false, the empty list and void are falsy, everything else is truthy.
func (v Value) Truthy() bool {
	switch v.Kind {
	case ValVoid:
		return false
	case ValBool:
		return v.Bool
	case ValList:
		return len(v.List) > 0
	default:
		return true
	}
}

// String renders v for write-line. Strings print bare at the top level
// and quoted inside lists.
func (v Value) String() string {
	if v.Kind == ValString {
		return v.Str
	}
	return v.repr()
}

func (v Value) repr() string {
	switch v.Kind {
	case ValVoid:
		return "<void>"
	case ValBool:
		if v.Bool {
			return "t"
		}
		return "f"
	case ValInt:
		return strconv.FormatInt(v.Int, 10)
	case ValFloat:
		return formatFloat(v.Float)
	case ValString:
		return strconv.Quote(v.Str)
	case ValSymbol:
		return v.Str
	case ValList:
		parts := make([]string, len(v.List))
		for i, e := range v.List {
			parts[i] = e.repr()
		}
		return "(" + strings.Join(parts, " ") + ")"
	case ValLambda:
		return fmt.Sprintf("<lambda (%s)>", strings.Join(v.Lambda.Params, " "))
	case ValBuiltin:
		return fmt.Sprintf("<builtin %s>", v.Builtin.Name)
	case ValSpecial:
		return fmt.Sprintf("<special %s>", v.Str)
	default:
		return fmt.Sprintf("<unknown:%d>", v.Kind)
	}
}

// formatFloat always keeps a decimal point so 2.0 does not print like 2.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEnN") {
		return s
	}
	return s + ".0"
}

func (v Value) KindName() string {
	switch v.Kind {
	case ValVoid:
		return "Void"
	case ValBool:
		return "Bool"
	case ValInt:
		return "Int"
	case ValFloat:
		return "Float"
	case ValString:
		return "String"
	case ValSymbol:
		return "Symbol"
	case ValList:
		return "List"
	case ValLambda:
		return "Lambda"
	case ValBuiltin:
		return "Builtin"
	case ValSpecial:
		return "SpecialForm"
	default:
		return "Unknown"
	}
}

// ValuesEqual compares two Values for deep equality. Ints and floats compare
// numerically; callables compare by identity.
func ValuesEqual(a, b Value) bool {
	if f, g, ok := numericPair(a, b); ok && a.Kind != b.Kind {
		return f == g
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ValVoid:
		return true
	case ValBool:
		return a.Bool == b.Bool
	case ValInt:
		return a.Int == b.Int
	case ValFloat:
		return a.Float == b.Float
	case ValString, ValSymbol, ValSpecial:
		return a.Str == b.Str
	case ValList:
		if len(a.List) != len(b.List) {
			return false
		}
		for i := range a.List {
			if !ValuesEqual(a.List[i], b.List[i]) {
				return false
			}
		}
		return true
	case ValLambda:
		return a.Lambda == b.Lambda
	case ValBuiltin:
		return a.Builtin == b.Builtin
	}
	return false
}

// numericPair widens two numbers to float64. ok is false unless both are numbers.
func numericPair(a, b Value) (float64, float64, bool) {
	fa, ok := asFloat(a)
	if !ok {
		return 0, 0, false
	}
	fb, ok := asFloat(b)
	if !ok {
		return 0, 0, false
	}
	return fa, fb, true
}

func asFloat(v Value) (float64, bool) {
	switch v.Kind {
	case ValInt:
		return float64(v.Int), true
	case ValFloat:
		return v.Float, true
	default:
		return 0, false
	}
}

// nodeToValue converts an unevaluated node to data for quote.
func nodeToValue(n *Node) Value {
	switch n.Kind {
	case NodeInt:
		return IntVal(n.Int)
	case NodeFloat:
		return FloatVal(n.Float)
	case NodeString:
		return StringVal(n.Str)
	case NodeSymbol:
		return SymbolVal(n.Str)
	case NodeList:
		elems := make([]Value, len(n.Children))
		for i, c := range n.Children {
			elems[i] = nodeToValue(c)
		}
		return ListVal(elems)
	default:
		return VoidVal()
	}
}
