package minilisp

import "testing"

func TestValueTruthy(t *testing.T) {
	tests := []struct {
		name string
		val  Value
		want bool
	}{
		{"true", BoolVal(true), true},
		{"false", BoolVal(false), false},
		{"empty list", ListVal(nil), false},
		{"void", VoidVal(), false},
		{"zero", IntVal(0), true},
		{"zero float", FloatVal(0), true},
		{"empty string", StringVal(""), true},
		{"list", ints(1), true},
		{"symbol", SymbolVal("x"), true},
	}
	for _, tc := range tests {
		if got := tc.val.Truthy(); got != tc.want {
			t.Errorf("%s: Truthy() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		val  Value
		want string
	}{
		{IntVal(-3), "-3"},
		{FloatVal(2), "2.0"},
		{FloatVal(0.25), "0.25"},
		{FloatVal(1e21), "1e+21"},
		{StringVal("bare"), "bare"},
		{ListVal([]Value{StringVal("q"), SymbolVal("s")}), `("q" s)`},
		{ListVal(nil), "()"},
		{BoolVal(true), "t"},
		{BoolVal(false), "f"},
		{VoidVal(), "<void>"},
		{SpecialVal("cond"), "<special cond>"},
		{BuiltinVal(&Builtin{Name: "car", Arity: 1}), "<builtin car>"},
		{LambdaVal(&Closure{Params: []string{"x"}}), "<lambda (x)>"},
	}
	for _, tc := range tests {
		if got := tc.val.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestValuesEqual(t *testing.T) {
	b := &Builtin{Name: "x"}
	c := &Closure{}
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"ints", IntVal(1), IntVal(1), true},
		{"int float", IntVal(2), FloatVal(2), true},
		{"int float differ", IntVal(2), FloatVal(2.5), false},
		{"string symbol", StringVal("a"), SymbolVal("a"), false},
		{"nested lists", ListVal([]Value{ints(1, 2)}), ListVal([]Value{ints(1, 2)}), true},
		{"list lengths", ints(1), ints(1, 2), false},
		{"bool int", BoolVal(true), IntVal(1), false},
		{"same builtin", BuiltinVal(b), BuiltinVal(b), true},
		{"other builtin", BuiltinVal(b), BuiltinVal(&Builtin{Name: "x"}), false},
		{"same closure", LambdaVal(c), LambdaVal(c), true},
		{"other closure", LambdaVal(c), LambdaVal(&Closure{}), false},
		{"void", VoidVal(), VoidVal(), true},
	}
	for _, tc := range tests {
		if got := ValuesEqual(tc.a, tc.b); got != tc.want {
			t.Errorf("%s: ValuesEqual = %v, want %v", tc.name, got, tc.want)
		}
	}
}
