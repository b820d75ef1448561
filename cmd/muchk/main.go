/*
Muchk checks whether a Labeled Transition System satisfies a modal
mu-calculus formula.

It reads an LTS file in the Aldebaran textual format and a formula file in
the grammar documented in the muchk package, evaluates the formula against
the LTS's initial state, and prints the boolean verdict.

Usage:

	muchk [flags] <lts-file> <formula-file>

The flags are:

	-n, --naive
	    Use the naive evaluator instead of the default Emerson-Lei evaluator.

	-s, --strict
	    Treat a declared transition count that disagrees with the number of
	    transitions actually read as a fatal error instead of a tolerated
	    discrepancy.

	--dual-check
	    Also evaluate the formula's negation against the same LTS and treat
	    it as an error if the two verdicts agree (they never should).

	--formula-lib DIR
	    A directory of named .mcf formula files. If <formula-file> is not a
	    path to an existing file, it is looked up by name in this directory
	    instead.

	-V, --version
	    Print the current version and exit.

	-h, --help
	    Print usage and exit.

The exit code is 0 on a successful check, regardless of the boolean verdict;
non-zero on a parse or semantic error, or on a dual-check disagreement
failure.
*/
package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/muchk"
	"github.com/dekarrin/muchk/internal/formulalib"
	"github.com/dekarrin/muchk/internal/version"
	"github.com/dekarrin/rosed"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful check (regardless of verdict).
	ExitSuccess = iota

	// ExitUsageError indicates the command line itself was malformed.
	ExitUsageError

	// ExitInputError indicates the LTS or formula file could not be parsed.
	ExitInputError
)

var (
	returnCode     = ExitSuccess
	flagVersion    = pflag.BoolP("version", "V", false, "Print the current version and exit")
	flagNaive      = pflag.BoolP("naive", "n", false, "Use the naive evaluator instead of Emerson-Lei")
	flagStrict     = pflag.BoolP("strict", "s", false, "Fail on a transition-count mismatch instead of tolerating it")
	flagDualCheck  = pflag.Bool("dual-check", false, "Also check the negated formula and fail if both verdicts agree")
	flagFormulaLib = pflag.String("formula-lib", "", "Directory of named .mcf formulas; used when <formula-file> isn't a path that exists")
	flagHelp       = pflag.BoolP("help", "h", false, "Print usage and exit")
)

var commandHelp = [][2]string{
	{"-n, --naive", "Use the naive evaluator instead of the default Emerson-Lei evaluator."},
	{"-s, --strict", "Treat a declared transition count that disagrees with the actual count as a fatal error."},
	{"--dual-check", "Also check the formula's negation and fail if it does not disagree with the primary verdict."},
	{"--formula-lib DIR", "Directory of named .mcf formulas to search when <formula-file> isn't a path."},
	{"-V, --version", "Print the current version and exit."},
	{"-h, --help", "Print this usage text and exit."},
}

func printUsage() {
	ed := rosed.
		Edit("").
		WithOptions(rosed.Options{ParagraphSeparator: "\n"}).
		InsertDefinitionsTable(0, commandHelp, 80)
	out := ed.
		Insert(0, "Usage: muchk [flags] <lts-file> <formula-file>\n\n").
		String()
	fmt.Fprint(os.Stderr, out)
}

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagHelp {
		printUsage()
		return
	}

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	args := pflag.Args()
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "ERROR: expected exactly two positional arguments: <lts-file> <formula-file>")
		printUsage()
		returnCode = ExitUsageError
		return
	}
	ltsPath, formulaPath := args[0], args[1]

	verdict, err := run(ltsPath, formulaPath, *flagFormulaLib, *flagNaive, *flagStrict, *flagDualCheck)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInputError
		return
	}

	fmt.Printf("%t\n", verdict)
}

func run(ltsPath, formulaPath, formulaLibDir string, naive, strict, dualCheck bool) (bool, error) {
	ltsFile, err := os.Open(ltsPath)
	if err != nil {
		return false, fmt.Errorf("opening LTS file: %w", err)
	}
	defer ltsFile.Close()

	l, err := muchk.LoadLTS(ltsFile, strict)
	if err != nil {
		return false, fmt.Errorf("loading LTS: %w", err)
	}

	formulaSrc, err := resolveFormulaSource(formulaPath, formulaLibDir)
	if err != nil {
		return false, err
	}

	root, err := muchk.ParseFormula(formulaSrc)
	if err != nil {
		return false, fmt.Errorf("parsing formula: %w", err)
	}

	alg := muchk.EmersonLei
	if naive {
		alg = muchk.Naive
	}

	verdict := muchk.Check(l, root, alg, nil)

	if dualCheck {
		negated := muchk.Negate(root)
		dualVerdict := muchk.Check(l, negated, alg, nil)
		if verdict == dualVerdict {
			return verdict, fmt.Errorf("dual-check failed: formula and its negation both evaluated to %t", verdict)
		}
	}

	return verdict, nil
}

// resolveFormulaSource reads formulaPath as a file if it exists; otherwise,
// if libDir is set, it treats formulaPath as a name in that formula library.
func resolveFormulaSource(formulaPath, libDir string) (string, error) {
	if data, err := os.ReadFile(formulaPath); err == nil {
		return string(data), nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("reading formula file: %w", err)
	}

	if libDir == "" {
		return "", fmt.Errorf("reading formula file: no such file %q", formulaPath)
	}

	src, err := formulalib.Open(libDir).Resolve(formulaPath)
	if err != nil {
		return "", fmt.Errorf("resolving formula from library: %w", err)
	}
	return src, nil
}
