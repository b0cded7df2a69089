// Command minilisp runs a program file, a program read from stdin, or an
// interactive session when started without arguments.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/rphilander/minilisp"
	"github.com/rphilander/minilisp/internal/config"
	"github.com/rphilander/minilisp/internal/transcript"
)

const usage = `usage: minilisp [FILE | -]

  FILE   run the program in FILE
  -      run the program read from stdin
         with no argument, start an interactive session`

func main() {
	log.SetFlags(0)
	log.SetPrefix("minilisp: ")
	os.Exit(realMain(os.Args[1:]))
}

// realMain returns the exit status so deferred cleanup runs before exit.
func realMain(args []string) int {
	if len(args) > 1 {
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		log.Printf("load config: %v", err)
		return 1
	}

	opts := []minilisp.Option{
		minilisp.WithLogger(log.New(os.Stderr, "", 0)),
		minilisp.WithHaltOnError(cfg.HaltOnError),
		minilisp.WithMaxTraces(cfg.MaxTraces),
	}
	var store *transcript.Store
	if cfg.TranscriptDB != "" {
		store, err = transcript.Open(cfg.TranscriptDB, transcript.NewSessionID())
		if err != nil {
			log.Printf("open transcript: %v", err)
			return 1
		}
		defer store.Close()
		opts = append(opts, minilisp.WithRecorder(store))
	}
	ip := minilisp.New(opts...)

	return run(ip, store, cfg, args)
}

func run(ip *minilisp.Interpreter, store *transcript.Store, cfg config.Config, args []string) int {
	if len(args) == 0 {
		return runREPL(ip, store, cfg.HistoryFile)
	}
	switch args[0] {
	case "-h", "--help", "help":
		fmt.Println(usage)
		return 0
	case "-":
		return exitCode(ip.RunReader(os.Stdin))
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		log.Printf("read %s: %v", args[0], err)
		return 1
	}
	return exitCode(ip.Run(string(src)))
}

// exitCode reports a run error. Failed forms were already logged one by
// one as they happened.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	log.Print(err)
	return 1
}
