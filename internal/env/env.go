// Package env implements the evaluator's recursion-variable environment: a
// stack of bindings from variable name to state set, with innermost-wins
// lookup. Spec §4.3 and §9 call for a mutable binder stack rather than a
// map threaded functionally through recursive calls, since evaluation is
// single-threaded and a binder's push/pop is perfectly lexical.
package env

import "github.com/dekarrin/muchk/internal/bitset"

// Env is a stack of recursion-variable bindings. The zero value is ready to
// use.
type Env struct {
	names  []string
	values []bitset.Set
}

// Bind pushes a new binding of name to value. If name is already bound
// (which should not happen given the no-shadowing assumption in spec §1),
// the new binding shadows the old one until Unbind is called.
func (e *Env) Bind(name string, value bitset.Set) {
	e.names = append(e.names, name)
	e.values = append(e.values, value)
}

// Unbind pops the most recently pushed binding. It panics if the stack is
// empty, which would indicate a push/pop mismatch in the evaluator.
func (e *Env) Unbind() {
	if len(e.names) == 0 {
		panic("env: Unbind called on empty environment")
	}
	e.names = e.names[:len(e.names)-1]
	e.values = e.values[:len(e.values)-1]
}

// Lookup returns the innermost binding of name and whether it is bound at
// all. Spec §4.3: lookup of an unbound variable is a fatal error in the
// evaluator, so callers should treat a false ok as a programming-contract
// violation (an open formula that slipped past the pre-evaluation check),
// not a recoverable condition.
func (e *Env) Lookup(name string) (bitset.Set, bool) {
	for i := len(e.names) - 1; i >= 0; i-- {
		if e.names[i] == name {
			return e.values[i], true
		}
	}
	return bitset.Set{}, false
}

// MustLookup is Lookup but panics instead of returning ok=false. The naive
// and Emerson-Lei evaluators use this, since Prepare's free-variable check
// guarantees every Var node they visit is bound by the time evaluation
// happens.
func (e *Env) MustLookup(name string) bitset.Set {
	v, ok := e.Lookup(name)
	if !ok {
		panic("env: variable " + name + " is unbound (open formula reached the evaluator)")
	}
	return v
}

// Set mutates the innermost binding of name in place, used by the
// evaluators to install a new approximant during fixed-point iteration. It
// panics if name is not bound.
func (e *Env) Set(name string, value bitset.Set) {
	for i := len(e.names) - 1; i >= 0; i-- {
		if e.names[i] == name {
			e.values[i] = value
			return
		}
	}
	panic("env: Set called on unbound variable " + name)
}

// Depth returns the number of bindings currently on the stack.
func (e *Env) Depth() int {
	return len(e.names)
}
