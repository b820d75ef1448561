// Package lts holds the indexed, in-memory representation of a finite
// Labeled Transition System and the loader that builds one from the
// Aldebaran textual format.
package lts

import (
	"github.com/dekarrin/muchk/internal/bitset"
)

// LTS is a 4-tuple (S, A, T, s0): a finite state set S = {0, ..., n-1}, a set
// of interned action labels A, a transition relation T, and an initial state
// s0. Once loaded, an LTS is immutable.
//
// Only the inverse (predecessor) index is kept: for each action, and for each
// target state, the set of source states with an edge to it under that
// action. This is sufficient to evaluate both <a> and [a] efficiently (see
// Diamond and Box), and it is what the predecessor-driven fixed-point
// iteration in the evaluator packages actually needs.
type LTS struct {
	numStates int
	initial   int

	actionNames []string
	actionIndex map[string]int

	// pred[actionID][t] is the set of source states s with (s, actionName, t)
	// in T. A missing actionID (not a key in pred) means the action never
	// occurs in the LTS at all.
	pred map[int][]bitset.Set

	numTransitions int
}

// NumStates returns n, the size of the state universe [0, n).
func (l *LTS) NumStates() int {
	return l.numStates
}

// Initial returns the initial state s0.
func (l *LTS) Initial() int {
	return l.initial
}

// NumTransitions returns the number of transitions actually recorded, which
// may be used by callers wanting to cross-check against a declared count.
func (l *LTS) NumTransitions() int {
	return l.numTransitions
}

// Actions returns the set of action labels that occur in the LTS, in the
// order they were first seen.
func (l *LTS) Actions() []string {
	out := make([]string, len(l.actionNames))
	copy(out, l.actionNames)
	return out
}

// ActionID returns the interned id for action name a and whether it occurs
// in the LTS at all. Action ids are stable for the lifetime of the LTS and
// are what Diamond and Box expect.
func (l *LTS) ActionID(a string) (int, bool) {
	id, ok := l.actionIndex[a]
	return id, ok
}

func (l *LTS) internAction(a string) int {
	if id, ok := l.actionIndex[a]; ok {
		return id
	}
	id := len(l.actionNames)
	l.actionNames = append(l.actionNames, a)
	l.actionIndex[a] = id
	return id
}

func (l *LTS) addTransition(src int, actionID, dst int) {
	preds, ok := l.pred[actionID]
	if !ok {
		preds = make([]bitset.Set, l.numStates)
		for i := range preds {
			preds[i] = bitset.New(l.numStates)
		}
		l.pred[actionID] = preds
	}
	if preds[dst].Has(src) {
		// duplicate transition; T is a set, so this is a no-op (idempotent).
		return
	}
	preds[dst].Add(src)
	l.numTransitions++
}

// Universe returns a fresh empty Set and a fresh full Set sized to the
// LTS's state universe, for evaluators to seed Mu/Nu approximants with.
func (l *LTS) Universe() (empty, full bitset.Set) {
	return bitset.New(l.numStates), bitset.Full(l.numStates)
}

// Diamond computes { s : exists s'. (s, a, s') in T and s' in x }, where a is
// given as an interned action id (see ActionID). An action id that never
// occurs in the LTS yields the empty set, matching the vacuous case in
// spec §4.5: a state with no a-successors can never satisfy <a>f.
func (l *LTS) Diamond(actionID int, x bitset.Set) bitset.Set {
	result := bitset.New(l.numStates)
	preds, ok := l.pred[actionID]
	if !ok {
		return result
	}
	for _, t := range x.Elements() {
		result.Union(preds[t])
	}
	return result
}

// Transition is an exported (source, action, destination) triple. It exists
// only so that internal/cache can serialize an LTS's transition relation
// without reaching into the unexported pred index directly.
type Transition struct {
	Src      int
	ActionID int
	Dst      int
}

// Transitions returns every transition in T as (source, action, destination)
// triples, in an unspecified order.
func (l *LTS) Transitions() []Transition {
	out := make([]Transition, 0, l.numTransitions)
	for actionID, preds := range l.pred {
		for dst, srcs := range preds {
			for _, src := range srcs.Elements() {
				out = append(out, Transition{Src: src, ActionID: actionID, Dst: dst})
			}
		}
	}
	return out
}

// FromParts reconstructs an LTS from the pieces produced by NumStates,
// Initial, Actions, and Transitions. It is the inverse of those accessors,
// used by internal/cache to rebuild a cached LTS without re-parsing its
// source Aldebaran text.
func FromParts(numStates, initial int, actionNames []string, transitions []Transition) *LTS {
	l := &LTS{
		numStates:   numStates,
		initial:     initial,
		actionNames: make([]string, 0, len(actionNames)),
		actionIndex: make(map[string]int, len(actionNames)),
		pred:        make(map[int][]bitset.Set),
	}
	for _, a := range actionNames {
		l.internAction(a)
	}
	for _, t := range transitions {
		l.addTransition(t.Src, t.ActionID, t.Dst)
	}
	return l
}

// Box computes { s : forall s'. (s, a, s') in T => s' in x }, via the dual
// identity Box(a, x) = complement(Diamond(a, complement(x))). Because
// Diamond's predecessor sets only ever contain states that truly have an
// a-edge, a state with no a-successors at all can never appear in
// Diamond(a, anything) and therefore always ends up in Box's result,
// matching the vacuous-truth case in spec §4.5.
func (l *LTS) Box(actionID int, x bitset.Set) bitset.Set {
	notX := x.Complement()
	d := l.Diamond(actionID, notX)
	return d.Complement()
}
