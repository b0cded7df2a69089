package minilisp

import (
	"errors"
	"strings"
	"testing"
)

func TestParseInt(t *testing.T) {
	n, err := Parse("42")
	if err != nil {
		t.Fatal(err)
	}
	if n.Kind != NodeInt || n.Int != 42 {
		t.Fatalf("expected Int 42, got %v", n)
	}
}

func TestParseNegativeInt(t *testing.T) {
	n, err := Parse("-7")
	if err != nil {
		t.Fatal(err)
	}
	if n.Kind != NodeInt || n.Int != -7 {
		t.Fatalf("expected Int -7, got %v", n)
	}
}

func TestParseFloat(t *testing.T) {
	for _, tc := range []struct {
		input string
		val   float64
	}{
		{"3.14", 3.14},
		{"-0.5", -0.5},
		{"1e3", 1000},
	} {
		n, err := Parse(tc.input)
		if err != nil {
			t.Fatal(err)
		}
		if n.Kind != NodeFloat || n.Float != tc.val {
			t.Fatalf("%s: expected Float %v, got %v", tc.input, tc.val, n)
		}
	}
}

func TestParseSymbol(t *testing.T) {
	for _, input := range []string{
		"x", "write-line", "-", "+", "a1",
		"inf", "+Inf", "nan", "NaN", "Infinity",
		"0x10", "0x1p4", "1_000", "1-2", "1.2.3", "1e", "--1",
	} {
		n, err := Parse(input)
		if err != nil {
			t.Fatal(err)
		}
		if n.Kind != NodeSymbol || n.Str != input {
			t.Fatalf("expected Symbol %s, got %v", input, n)
		}
	}
}

func TestParseString(t *testing.T) {
	n, err := Parse(`"hello world"`)
	if err != nil {
		t.Fatal(err)
	}
	if n.Kind != NodeString || n.Str != "hello world" {
		t.Fatalf("expected String, got %v", n)
	}
}

func TestParseStringEscapes(t *testing.T) {
	n, err := Parse(`"a\"b\\c\nd\te"`)
	if err != nil {
		t.Fatal(err)
	}
	if n.Str != "a\"b\\c\nd\te" {
		t.Fatalf("unexpected string: %q", n.Str)
	}
}

func TestParseList(t *testing.T) {
	n, err := Parse(`(add 1 (mul 2 3.5) "s")`)
	if err != nil {
		t.Fatal(err)
	}
	if n.Kind != NodeList || len(n.Children) != 4 {
		t.Fatalf("expected 4-element list, got %v", n)
	}
	inner := n.Children[2]
	if inner.Kind != NodeList || len(inner.Children) != 3 || inner.Children[2].Kind != NodeFloat {
		t.Fatalf("unexpected inner list: %v", inner)
	}
}

func TestParseEmptyList(t *testing.T) {
	n, err := Parse("()")
	if err != nil {
		t.Fatal(err)
	}
	if n.Kind != NodeList || len(n.Children) != 0 {
		t.Fatalf("expected empty list, got %v", n)
	}
}

func TestParseQuoteShorthand(t *testing.T) {
	n, err := Parse("'(a b)")
	if err != nil {
		t.Fatal(err)
	}
	if n.String() != "(quote (a b))" {
		t.Fatalf("unexpected expansion: %s", n)
	}
}

func TestParseComments(t *testing.T) {
	forms, err := ParseProgram("; header\n(a) ; trailing\n; last\nb")
	if err != nil {
		t.Fatal(err)
	}
	if len(forms) != 2 || forms[0].String() != "(a)" || forms[1].String() != "b" {
		t.Fatalf("unexpected forms: %v", forms)
	}
}

func TestParseDelimiters(t *testing.T) {
	forms, err := ParseProgram("x;note\ny'z(a)\"s\"")
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, f := range forms {
		got = append(got, f.String())
	}
	want := []string{"x", "y", "(quote z)", "(a)", `"s"`}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseProgram(t *testing.T) {
	forms, err := ParseProgram(`(write-line "a") 42 (b c)`)
	if err != nil {
		t.Fatal(err)
	}
	if len(forms) != 3 {
		t.Fatalf("expected 3 forms, got %d", len(forms))
	}
	if forms[1].Kind != NodeInt {
		t.Fatalf("expected Int, got %v", forms[1])
	}
}

func TestParseProgramEmpty(t *testing.T) {
	forms, err := ParseProgram("  \n ; only a comment\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(forms) != 0 {
		t.Fatalf("expected no forms, got %d", len(forms))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input      string
		incomplete bool
	}{
		{"(a b", true},
		{`"abc`, true},
		{"'", true},
		{`"a\`, true},
		{")", false},
		{"(a))", false},
		{`"\q"`, false},
		{"1e400", false},
		{"-1e400", false},
		{"99999999999999999999", false},
		{"(add -99999999999999999999 1)", false},
	}
	for _, tc := range tests {
		_, err := ParseProgram(tc.input)
		if err == nil {
			t.Fatalf("expected error for %q", tc.input)
		}
		if errors.Is(err, ErrIncomplete) != tc.incomplete {
			t.Fatalf("%q: incomplete=%v, got %v", tc.input, tc.incomplete, err)
		}
	}
}

func TestParseTrailingInput(t *testing.T) {
	if _, err := Parse("1 2"); err == nil {
		t.Fatal("expected error for trailing input")
	}
	if _, err := Parse("   "); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestNodeStringRoundTrip(t *testing.T) {
	src := `(let ((x 1) (y "two")) (cond ((eq x 1.5) y) (t ())))`
	n, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	again, err := Parse(n.String())
	if err != nil {
		t.Fatal(err)
	}
	if again.String() != n.String() || n.String() != src {
		t.Fatalf("round trip mismatch: %s vs %s", n, again)
	}
}
