package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/rphilander/minilisp"
	"github.com/rphilander/minilisp/internal/transcript"
)

const (
	promptMain = "minilisp> "
	promptCont = "       .. "
	replHelp   = `:help     show this help
:traces   list the forms evaluated in this session
:trace N  show trace N as an association list
:sessions list the sessions in the transcript database
:quit     leave (Ctrl+D also works)`
)

// runREPL reads and evaluates forms until EOF. store may be nil when no
// transcript database is configured.
func runREPL(ip *minilisp.Interpreter, store *transcript.Store, histPath string) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	// Load history (best-effort)
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}

	for {
		code, ok := readForm(ln)
		if !ok {
			fmt.Println()
			break
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			if done := handleCommand(ip, store, os.Stdout, trimmed); done {
				break
			}
			continue
		}

		v, err := ip.EvalString(code)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		if v.Kind != minilisp.ValVoid {
			fmt.Println(echo(v))
		}
	}

	// Persist history (best-effort)
	if histPath != "" {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}
	return 0
}

// echo prints strings quoted so they are distinguishable from symbols.
func echo(v minilisp.Value) string {
	if v.Kind == minilisp.ValString {
		return fmt.Sprintf("%q", v.Str)
	}
	return v.String()
}

// handleCommand runs a ':' command and reports whether the REPL should exit.
func handleCommand(ip *minilisp.Interpreter, store *transcript.Store, w io.Writer, line string) (exit bool) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q", ":exit":
		return true
	case ":help", ":h":
		fmt.Fprintln(w, replHelp)
	case ":traces":
		for _, tr := range ip.Traces() {
			fmt.Fprintln(w, tr.String())
		}
	case ":trace":
		showTrace(ip, w, fields[1:])
	case ":sessions":
		listSessions(store, w)
	default:
		fmt.Fprintf(w, "unknown command %s (try :help)\n", fields[0])
	}
	return false
}

func showTrace(ip *minilisp.Interpreter, w io.Writer, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(w, "usage: :trace N")
		return
	}
	seq, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(w, "bad trace number %q\n", args[0])
		return
	}
	for _, tr := range ip.Traces() {
		if tr.Seq == seq {
			fmt.Fprintln(w, tr.ToValue().String())
			return
		}
	}
	fmt.Fprintf(w, "no trace #%d\n", seq)
}

// listSessions prints every stored session, marking the current one.
func listSessions(store *transcript.Store, w io.Writer) {
	if store == nil {
		fmt.Fprintln(w, "no transcript database (set transcript_db)")
		return
	}
	names, err := store.Sessions()
	if err != nil {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	for _, name := range names {
		mark := " "
		if name == store.Session() {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %s\n", mark, name)
	}
}

// readForm reads lines until they parse as a complete program or fail
// for a reason other than running out of input.
func readForm(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl+C aborts the current input.
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, perr := minilisp.ParseProgram(src); perr != nil && errors.Is(perr, minilisp.ErrIncomplete) {
			continue
		}
		return src, true
	}
}
