package minilisp

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// Recorder receives a Trace for every evaluated top-level form.
type Recorder interface {
	Record(t Trace) error
}

// RunError summarises a program run in which some forms failed.
type RunError struct {
	Failed int
	Total  int
	First  error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%d of %d forms failed; first: %v", e.Failed, e.Total, e.First)
}

func (e *RunError) Unwrap() error {
	return e.First
}

// Interpreter evaluates programs against one root scope that lives as long
// as the interpreter.
type Interpreter struct {
	root        *Scope
	out         io.Writer
	logger      *log.Logger
	recorder    Recorder
	haltOnError bool
	maxTraces   int
	traces      []Trace
	seq         int
}

type Option func(*Interpreter)

// WithOutput sets where write-line prints. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(ip *Interpreter) { ip.out = w }
}

// WithLogger sets the logger used to report failed forms.
func WithLogger(l *log.Logger) Option {
	return func(ip *Interpreter) { ip.logger = l }
}

func WithRecorder(r Recorder) Option {
	return func(ip *Interpreter) { ip.recorder = r }
}

// WithHaltOnError stops Run at the first failing form instead of
// reporting it and moving on.
func WithHaltOnError(halt bool) Option {
	return func(ip *Interpreter) { ip.haltOnError = halt }
}

// WithMaxTraces caps how many traces are kept in memory. Zero disables
// trace retention.
func WithMaxTraces(n int) Option {
	return func(ip *Interpreter) { ip.maxTraces = n }
}

func New(opts ...Option) *Interpreter {
	ip := &Interpreter{
		out:       os.Stdout,
		logger:    log.New(os.Stderr, "", 0),
		maxTraces: 1000,
	}
	for _, opt := range opts {
		opt(ip)
	}
	ip.root = RootScope(ip.out)
	return ip
}

// Run parses src and evaluates each top-level form in order, discarding
// the results. A parse error aborts before anything is evaluated. An
// evaluation error is logged and the next form runs, unless the
// interpreter halts on error.
func (ip *Interpreter) Run(src string) error {
	forms, err := ParseProgram(src)
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}
	var first error
	failed := 0
	for _, form := range forms {
		tr, err := ip.evalForm(form)
		if err == nil {
			continue
		}
		ip.logger.Printf("form %d %s: %v", tr.Seq, tr.Form, err)
		if ip.haltOnError {
			return fmt.Errorf("form %d: %w", tr.Seq, err)
		}
		if first == nil {
			first = err
		}
		failed++
	}
	if failed > 0 {
		return &RunError{Failed: failed, Total: len(forms), First: first}
	}
	return nil
}

// RunReader reads a whole program from r and runs it.
func (ip *Interpreter) RunReader(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read program: %w", err)
	}
	return ip.Run(string(data))
}

// EvalString evaluates every form in src and returns the value of the last
// one. It stops at the first error. Empty input yields void.
func (ip *Interpreter) EvalString(src string) (Value, error) {
	forms, err := ParseProgram(src)
	if err != nil {
		return Value{}, fmt.Errorf("parse error: %w", err)
	}
	result := VoidVal()
	for _, form := range forms {
		tr, err := ip.evalForm(form)
		if err != nil {
			return Value{}, err
		}
		result = tr.Result
	}
	return result, nil
}

// Traces returns the retained traces, oldest first.
func (ip *Interpreter) Traces() []Trace {
	out := make([]Trace, len(ip.traces))
	copy(out, ip.traces)
	return out
}

func (ip *Interpreter) evalForm(form *Node) (Trace, error) {
	ip.seq++
	val, err := Eval(ip.root, form)
	tr := Trace{
		Seq:       ip.seq,
		Form:      form.String(),
		Result:    val,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if err != nil {
		tr.Result = VoidVal()
		tr.Error = err.Error()
	}
	ip.keepTrace(tr)
	if ip.recorder != nil {
		if rerr := ip.recorder.Record(tr); rerr != nil {
			ip.logger.Printf("record trace %d: %v", tr.Seq, rerr)
		}
	}
	return tr, err
}

func (ip *Interpreter) keepTrace(tr Trace) {
	if ip.maxTraces <= 0 {
		return
	}
	ip.traces = append(ip.traces, tr)
	if len(ip.traces) > ip.maxTraces {
		ip.traces = ip.traces[len(ip.traces)-ip.maxTraces:]
	}
}
