package minilisp

import "fmt"

// Trace records the outcome of one top-level form.
type Trace struct {
	Seq       int    // 1-based position of the form within the interpreter's lifetime
	Form      string // source text of the form, as re-printed from the parse tree
	Result    Value  // final value, void on error
	Error     string // non-empty on error
	Timestamp string // ISO 8601
}

// Failed reports whether the form ended in an error.
func (t *Trace) Failed() bool {
	return t.Error != ""
}

// ToValue converts a Trace to an association list for printing:
// ((seq 1) (form "...") (result ...) (error ...) (timestamp "...")).
func (t *Trace) ToValue() Value {
	errVal := ListVal(nil)
	if t.Error != "" {
		errVal = StringVal(t.Error)
	}
	pair := func(key string, v Value) Value {
		return ListVal([]Value{SymbolVal(key), v})
	}
	return ListVal([]Value{
		pair("seq", IntVal(int64(t.Seq))),
		pair("form", StringVal(t.Form)),
		pair("result", t.Result),
		pair("error", errVal),
		pair("timestamp", StringVal(t.Timestamp)),
	})
}

func (t *Trace) String() string {
	if t.Failed() {
		return fmt.Sprintf("#%d %s => error: %s", t.Seq, t.Form, t.Error)
	}
	return fmt.Sprintf("#%d %s => %s", t.Seq, t.Form, t.Result.repr())
}
