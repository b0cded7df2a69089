package minilisp

import "fmt"

// UnboundSymbolError is returned when a symbol is not bound anywhere in
// the scope chain.
type UnboundSymbolError struct {
	Name string
}

func (e *UnboundSymbolError) Error() string {
	return fmt.Sprintf("unbound symbol: %s", e.Name)
}

// TypeMismatchError is returned when an operation receives a value of the
// wrong kind, e.g. car on a number.
type TypeMismatchError struct {
	Op   string
	Want string
	Got  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Op, e.Want, e.Got)
}

// ArityMismatchError is returned when a callable is applied to the wrong
// number of arguments.
type ArityMismatchError struct {
	Name string
	Want int
	Got  int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %d args, got %d", e.Name, e.Want, e.Got)
}

// DivisionByZeroError is returned by div when the divisor is zero.
type DivisionByZeroError struct {
	Op string
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("%s: division by zero", e.Op)
}

// IntegerOverflowError is returned when Int arithmetic leaves the int64
// range. The result is never wrapped around.
type IntegerOverflowError struct {
	Op string
}

func (e *IntegerOverflowError) Error() string {
	return fmt.Sprintf("%s: integer overflow", e.Op)
}

// EmptyListError is returned by car and cdr on ().
type EmptyListError struct {
	Op string
}

func (e *EmptyListError) Error() string {
	return fmt.Sprintf("%s: empty list", e.Op)
}

// FormError reports a special form whose shape is wrong, such as a
// lambda without a parameter list.
type FormError struct {
	Form string
	Msg  string
}

func (e *FormError) Error() string {
	return fmt.Sprintf("%s: %s", e.Form, e.Msg)
}

func typeMismatch(op, want string, got Value) error {
	return &TypeMismatchError{Op: op, Want: want, Got: got.KindName()}
}
