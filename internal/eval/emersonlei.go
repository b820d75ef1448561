package eval

import (
	"github.com/dekarrin/muchk/internal/bitset"
	"github.com/dekarrin/muchk/internal/env"
	"github.com/dekarrin/muchk/internal/formula"
	"github.com/dekarrin/muchk/internal/lts"
)

// EmersonLei is the evaluator of spec §4.5. It maintains one persistent
// approximant cell per binder, indexed by the binder's annotated node ID,
// living across the whole top-level evaluation. On re-entering a binder it
// applies the reset rule: the cell is reset to the seed only if the binder
// has no surrounding binder, or its surrounding binder has the opposite
// polarity. When the surrounding binder shares the same polarity, the cell
// is left as-is, so the nested fixed point resumes from where it last
// converged instead of recomputing it from scratch.
type EmersonLei struct {
	L     *lts.LTS
	Env   *env.Env
	Stats *Stats

	cells       []bitset.Set
	initialized []bool
}

// NewEmersonLei returns a ready-to-use Emerson-Lei evaluator. numBinders
// should be formula.NumBinders(root) for the formula about to be
// evaluated, so every binder node's ID has a cell slot reserved for it.
func NewEmersonLei(l *lts.LTS, numBinders int, stats *Stats) *EmersonLei {
	return &EmersonLei{
		L:           l,
		Env:         &env.Env{},
		Stats:       stats,
		cells:       make([]bitset.Set, numBinders),
		initialized: make([]bool, numBinders),
	}
}

// Eval computes S[[f]], the denotation of f under the evaluator's current
// environment.
func (e *EmersonLei) Eval(f *formula.Node) bitset.Set {
	switch f.Kind {
	case formula.KindFalse:
		empty, _ := e.L.Universe()
		return empty

	case formula.KindTrue:
		_, full := e.L.Universe()
		return full

	case formula.KindVar:
		return e.Env.MustLookup(f.VarName)

	case formula.KindAnd:
		l := e.Eval(f.Left)
		r := e.Eval(f.Right)
		return bitset.IntersectionOf(l, r)

	case formula.KindOr:
		l := e.Eval(f.Left)
		r := e.Eval(f.Right)
		return bitset.UnionOf(l, r)

	case formula.KindDiamond:
		x := e.Eval(f.Child)
		return e.L.Diamond(resolveAction(e.L, f.Action), x)

	case formula.KindBox:
		x := e.Eval(f.Child)
		return e.L.Box(resolveAction(e.L, f.Action), x)

	case formula.KindMu:
		return e.fixpoint(f, false)

	case formula.KindNu:
		return e.fixpoint(f, true)

	default:
		panic("eval: invalid node kind")
	}
}

// shouldReset decides whether f's approximant cell must go back to the seed
// on this entry, per the reset rule in spec §4.5: an outermost binder
// (Surrounding == nil) is treated as if surrounded by the opposite
// polarity, which always resets; otherwise reset iff the surrounding
// binder's polarity differs from f's own.
func shouldReset(f *formula.Node, greatest bool) bool {
	if f.Surrounding == nil {
		return true
	}
	return f.Surrounding.IsGreatest() != greatest
}

// fixpoint runs Tarski iteration for binder f, starting from either the
// seed (on first entry, or whenever shouldReset applies) or the cell left
// behind by the binder's previous convergence.
func (e *EmersonLei) fixpoint(f *formula.Node, greatest bool) bitset.Set {
	var start bitset.Set
	if shouldReset(f, greatest) || !e.initialized[f.ID] {
		empty, full := e.L.Universe()
		start = empty
		if greatest {
			start = full
		}
	} else {
		start = e.cells[f.ID]
	}

	e.Env.Bind(f.VarName, start)
	e.cells[f.ID] = start
	e.initialized[f.ID] = true

	for {
		e.Stats.record(f.ID)
		cur, _ := e.Env.Lookup(f.VarName)
		next := e.Eval(f.Child)
		if next.Equal(cur) {
			e.Env.Unbind()
			e.cells[f.ID] = next
			return next
		}
		e.Env.Set(f.VarName, next)
		e.cells[f.ID] = next
	}
}
