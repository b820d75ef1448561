/*
Muchki is an interactive REPL for checking formulas against a single LTS
without reloading it between queries.

Usage:

	muchki [flags] <lts-file>

The flags are:

	-n, --naive
	    Use the naive evaluator instead of the default Emerson-Lei evaluator.

	-s, --strict
	    Treat a declared transition count that disagrees with the number of
	    transitions actually read as a fatal error instead of a tolerated
	    discrepancy.

Each line entered at the prompt is parsed as a formula (spec §4.2) and
checked against the loaded LTS's initial state; the verdict is printed
immediately. A malformed or open formula reports an error and leaves the
session open. Type "quit" or send EOF (Ctrl-D) to exit.

Under the Emerson-Lei evaluator (the default), re-entering a formula typed
earlier in the same session reuses that formula's approximant-cell table
instead of rebuilding it from the seed, the same persistent-approximant
design the evaluator already applies within one check extended across
repeated top-level checks in a session.
*/
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dekarrin/muchk"
	"github.com/dekarrin/muchk/internal/eval"
	"github.com/dekarrin/muchk/internal/formula"
	"github.com/dekarrin/muchk/internal/input"
	"github.com/dekarrin/muchk/internal/lts"
	"github.com/spf13/pflag"
)

const (
	ExitSuccess = iota
	ExitUsageError
	ExitInputError
)

var (
	returnCode = ExitSuccess
	flagNaive  = pflag.BoolP("naive", "n", false, "Use the naive evaluator instead of Emerson-Lei")
	flagStrict = pflag.BoolP("strict", "s", false, "Fail on a transition-count mismatch instead of tolerating it")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	args := pflag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "ERROR: expected exactly one positional argument: <lts-file>")
		returnCode = ExitUsageError
		return
	}

	ltsFile, err := os.Open(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: opening LTS file: %s\n", err)
		returnCode = ExitInputError
		return
	}
	l, err := muchk.LoadLTS(ltsFile, *flagStrict)
	ltsFile.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: loading LTS: %s\n", err)
		returnCode = ExitInputError
		return
	}

	alg := muchk.EmersonLei
	if *flagNaive {
		alg = muchk.Naive
	}

	reader, err := input.NewInteractiveReader()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: initializing interactive input: %s\n", err)
		returnCode = ExitInputError
		return
	}
	defer reader.Close()

	sess := newSession(l, alg)

	for {
		line, err := reader.ReadCommand()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			return
		}
		if line == "quit" || line == "exit" {
			return
		}

		root, err := muchk.ParseFormula(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			continue
		}

		fmt.Printf("%t\n", sess.check(line, root))
	}
}

// session holds the REPL's warm Emerson-Lei state across repeated top-level
// checks. Each distinct formula text seen gets its own *eval.EmersonLei,
// kept for the rest of the session, so re-entering the same formula resumes
// approximant iteration from its last converged cells instead of from the
// seed. Formulas checked under --naive, which has no persistent state to
// warm, bypass this cache entirely.
type session struct {
	l       *lts.LTS
	alg     muchk.Algorithm
	warm    map[string]*eval.EmersonLei
	binders map[string]int
}

func newSession(l *lts.LTS, alg muchk.Algorithm) *session {
	return &session{
		l:       l,
		alg:     alg,
		warm:    make(map[string]*eval.EmersonLei),
		binders: make(map[string]int),
	}
}

func (s *session) check(src string, root *formula.Node) bool {
	if s.alg != muchk.EmersonLei {
		return muchk.Check(s.l, root, s.alg, nil)
	}

	numBinders := formula.NumBinders(root)
	ev, ok := s.warm[src]
	if !ok || s.binders[src] != numBinders {
		ev = eval.NewEmersonLei(s.l, numBinders, nil)
		s.warm[src] = ev
		s.binders[src] = numBinders
	}

	return ev.Eval(root).Has(s.l.Initial())
}
