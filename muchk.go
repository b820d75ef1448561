// Package muchk is a model checker for finite Labeled Transition Systems
// against properties expressed in a fragment of the modal mu-calculus. Given
// an LTS and a closed formula, Check decides whether the LTS's initial state
// satisfies the formula.
package muchk

import (
	"io"

	"github.com/dekarrin/muchk/internal/eval"
	"github.com/dekarrin/muchk/internal/formula"
	"github.com/dekarrin/muchk/internal/lts"
)

// Algorithm selects which evaluator Check uses internally.
type Algorithm = eval.Algorithm

// The two evaluators in scope (spec §4.4, §4.5).
const (
	Naive      = eval.Naive
	EmersonLei = eval.EmersonLeiAlgorithm
)

// Stats exposes the per-binder iteration counts recorded during a Check
// call, for callers that want to measure Emerson-Lei's approximant-reuse
// savings over the naive algorithm.
type Stats = eval.Stats

// LoadLTS parses the Aldebaran textual format (spec §6) from r into an
// indexed LTS. If strict is true, a declared transition count that
// disagrees with the number of transitions actually read is a fatal error
// instead of a tolerated discrepancy.
func LoadLTS(r io.Reader, strict bool) (*lts.LTS, error) {
	var opts []lts.LoadOption
	if strict {
		opts = append(opts, lts.Strict())
	}
	return lts.Load(r, opts...)
}

// ParseFormula parses s as a mu-calculus formula (spec §4.2), verifies it is
// closed, and annotates its binders. This is the input contract Check
// expects; constructing formula.Node values any other way is unsupported.
func ParseFormula(s string) (*formula.Node, error) {
	return formula.Prepare(s)
}

// Check decides whether l's initial state satisfies root, using alg. root
// must come from ParseFormula. stats may be nil if the caller does not need
// iteration counts.
func Check(l *lts.LTS, root *formula.Node, alg Algorithm, stats *Stats) bool {
	return eval.Check(l, root, alg, stats)
}

// Negate returns the dual of root: pushing negation down through the formula
// so that the result is itself a valid (negation-free) formula whose
// verdict, for any LTS, is the logical complement of root's. Useful as a
// cross-check: Check(l, root, ...) and Check(l, Negate(root), ...) should
// never both report true.
func Negate(root *formula.Node) *formula.Node {
	negated := formula.Negate(root)
	formula.Annotate(negated)
	return negated
}
