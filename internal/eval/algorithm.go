package eval

import (
	"fmt"

	"github.com/dekarrin/muchk/internal/bitset"
	"github.com/dekarrin/muchk/internal/formula"
	"github.com/dekarrin/muchk/internal/lts"
)

// Algorithm selects which evaluator Check uses.
type Algorithm int

const (
	// Naive selects the naive evaluator (spec §4.4).
	Naive Algorithm = iota
	// EmersonLeiAlgorithm selects the Emerson-Lei evaluator (spec §4.5).
	EmersonLeiAlgorithm
)

func (a Algorithm) String() string {
	switch a {
	case Naive:
		return "naive"
	case EmersonLeiAlgorithm:
		return "emerson-lei"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// Check reports whether the LTS's initial state satisfies root, using the
// requested algorithm. root must already be prepared (parsed, checked
// closed, and annotated) via formula.Prepare. stats may be nil.
func Check(l *lts.LTS, root *formula.Node, alg Algorithm, stats *Stats) bool {
	sat := Satisfying(l, root, alg, stats)
	return sat.Has(l.Initial())
}

// Satisfying returns the full set of states satisfying root, using the
// requested algorithm. root must already be prepared via formula.Prepare.
func Satisfying(l *lts.LTS, root *formula.Node, alg Algorithm, stats *Stats) bitset.Set {
	switch alg {
	case EmersonLeiAlgorithm:
		ev := NewEmersonLei(l, formula.NumBinders(root), stats)
		return ev.Eval(root)
	default:
		ev := NewNaive(l, stats)
		return ev.Eval(root)
	}
}
