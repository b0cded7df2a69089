package minilisp

import "fmt"

// Eval evaluates node in scope.
func Eval(scope *Scope, node *Node) (Value, error) {
	switch node.Kind {
	case NodeInt:
		return IntVal(node.Int), nil
	case NodeFloat:
		return FloatVal(node.Float), nil
	case NodeString:
		return StringVal(node.Str), nil
	case NodeSymbol:
		return scope.Get(node.Str)
	case NodeList:
		return evalList(scope, node)
	default:
		return Value{}, fmt.Errorf("unknown node kind: %d", node.Kind)
	}
}

// EvalString parses a single expression and evaluates it in scope.
func EvalString(scope *Scope, input string) (Value, error) {
	node, err := Parse(input)
	if err != nil {
		return Value{}, fmt.Errorf("parse error: %w", err)
	}
	return Eval(scope, node)
}

// evalList applies the head of a list to its tail. The head is always
// evaluated first. Special forms are then chosen by the head's spelling
// alone, so a local binding named like a special form does not replace it.
func evalList(scope *Scope, node *Node) (Value, error) {
	if len(node.Children) == 0 {
		return ListVal(nil), nil
	}

	head, tail := node.Children[0], node.Children[1:]
	fst, err := Eval(scope, head)
	if err != nil {
		return Value{}, err
	}

	if head.Kind == NodeSymbol {
		switch head.Str {
		case "quote":
			return evalQuote(tail)
		case "cond":
			return evalCond(scope, tail)
		case "lambda":
			return evalLambda(scope, tail)
		case "let":
			return evalLet(scope, tail)
		}
	}

	args := make([]Value, len(tail))
	for i, child := range tail {
		val, err := Eval(scope, child)
		if err != nil {
			return Value{}, err
		}
		args[i] = val
	}

	if fst.Callable() {
		return Apply(fst, args)
	}
	// Applying a non-callable builds data: (1 2 3) is the list (1 2 3).
	elems := make([]Value, 0, len(args)+1)
	elems = append(elems, fst)
	elems = append(elems, args...)
	return ListVal(elems), nil
}

// Apply calls a lambda or builtin with already evaluated arguments.
func Apply(fn Value, args []Value) (Value, error) {
	switch fn.Kind {
	case ValBuiltin:
		b := fn.Builtin
		if b.Arity >= 0 && len(args) != b.Arity {
			return Value{}, &ArityMismatchError{Name: b.Name, Want: b.Arity, Got: len(args)}
		}
		return b.Fn(args)
	case ValLambda:
		c := fn.Lambda
		if len(args) != len(c.Params) {
			return Value{}, &ArityMismatchError{Name: "lambda", Want: len(c.Params), Got: len(args)}
		}
		bindings := make(map[string]Value, len(c.Params))
		for i, param := range c.Params {
			bindings[param] = args[i]
		}
		return Eval(c.Scope.Child(bindings), c.Body)
	default:
		return Value{}, typeMismatch("apply", "callable", fn)
	}
}

// evalQuote: (quote expr) — expr as data, symbols unresolved.
func evalQuote(args []*Node) (Value, error) {
	if len(args) != 1 {
		return Value{}, &FormError{Form: "quote", Msg: fmt.Sprintf("expected 1 arg, got %d", len(args))}
	}
	return nodeToValue(args[0]), nil
}

// evalCond: (cond (test1 expr1) (test2 expr2) ...) — the expr of the first
// truthy test. No match yields the empty list.
func evalCond(scope *Scope, branches []*Node) (Value, error) {
	for _, branch := range branches {
		if branch.Kind != NodeList || len(branch.Children) != 2 {
			return Value{}, &FormError{Form: "cond", Msg: "each branch must be (test expr)"}
		}
		test, err := Eval(scope, branch.Children[0])
		if err != nil {
			return Value{}, err
		}
		if test.Truthy() {
			return Eval(scope, branch.Children[1])
		}
	}
	return ListVal(nil), nil
}

// evalLambda: (lambda (params...) body) — closure over scope.
func evalLambda(scope *Scope, args []*Node) (Value, error) {
	if len(args) != 2 {
		return Value{}, &FormError{Form: "lambda", Msg: "expected (lambda (params...) body)"}
	}
	paramsNode := args[0]
	if paramsNode.Kind != NodeList {
		return Value{}, &FormError{Form: "lambda", Msg: "params must be a list"}
	}
	params := make([]string, len(paramsNode.Children))
	for i, p := range paramsNode.Children {
		if p.Kind != NodeSymbol {
			return Value{}, &FormError{Form: "lambda", Msg: "param names must be symbols"}
		}
		params[i] = p.Str
	}
	return LambdaVal(&Closure{
		Params: params,
		Body:   args[1],
		Scope:  scope,
	}), nil
}

// evalLet: (let ((x expr1) (y expr2)) body) — parallel bindings. Every expr
// is evaluated in the enclosing scope, so y cannot see x.
func evalLet(scope *Scope, args []*Node) (Value, error) {
	if len(args) != 2 {
		return Value{}, &FormError{Form: "let", Msg: "expected bindings and body"}
	}
	bindingsNode := args[0]
	if bindingsNode.Kind != NodeList {
		return Value{}, &FormError{Form: "let", Msg: "bindings must be a list"}
	}
	bindings := make(map[string]Value, len(bindingsNode.Children))
	for _, pair := range bindingsNode.Children {
		if pair.Kind != NodeList || len(pair.Children) != 2 {
			return Value{}, &FormError{Form: "let", Msg: "each binding must be (name expr)"}
		}
		nameNode := pair.Children[0]
		if nameNode.Kind != NodeSymbol {
			return Value{}, &FormError{Form: "let", Msg: "binding name must be a symbol"}
		}
		val, err := Eval(scope, pair.Children[1])
		if err != nil {
			return Value{}, err
		}
		bindings[nameNode.Str] = val
	}
	return Eval(scope.Child(bindings), args[1])
}
