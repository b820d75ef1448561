// Package bitset provides a dense, fixed-universe set of small unsigned
// integers, used by the evaluator to represent state sets S[[f]] ⊆ S for an
// LTS with a known, finite number of states.
package bitset

import (
	"math/bits"
	"strconv"
	"strings"
)

const wordBits = 64

// Set is a packed-word bitset over a fixed universe [0, n). The zero value is
// not usable; create one with New.
type Set struct {
	n     int
	words []uint64
}

// New returns an empty Set over the universe [0, n).
func New(n int) Set {
	if n < 0 {
		n = 0
	}
	return Set{
		n:     n,
		words: make([]uint64, (n+wordBits-1)/wordBits),
	}
}

// Full returns a Set over the universe [0, n) containing every element.
func Full(n int) Set {
	s := New(n)
	for i := range s.words {
		s.words[i] = ^uint64(0)
	}
	s.maskTail()
	return s
}

// Len returns the size of the universe the Set was created over.
func (s Set) Len() int {
	return s.n
}

// maskTail clears any bits in the final word beyond n-1, which matters after
// Full and after bitwise-complement style operations.
func (s Set) maskTail() {
	if s.n == 0 || len(s.words) == 0 {
		return
	}
	rem := s.n % wordBits
	if rem == 0 {
		return
	}
	last := len(s.words) - 1
	s.words[last] &= (uint64(1) << uint(rem)) - 1
}

// Add puts i into the set. Panics if i is out of [0, n).
func (s Set) Add(i int) {
	s.checkRange(i)
	s.words[i/wordBits] |= uint64(1) << uint(i%wordBits)
}

// Remove takes i out of the set.
func (s Set) Remove(i int) {
	s.checkRange(i)
	s.words[i/wordBits] &^= uint64(1) << uint(i%wordBits)
}

// Has returns whether i is a member of the set. Panics if i is out of
// [0, n).
func (s Set) Has(i int) bool {
	s.checkRange(i)
	return s.words[i/wordBits]&(uint64(1)<<uint(i%wordBits)) != 0
}

func (s Set) checkRange(i int) {
	if i < 0 || i >= s.n {
		panic("bitset: index " + strconv.Itoa(i) + " out of range [0, " + strconv.Itoa(s.n) + ")")
	}
}

// Copy returns an independent copy of the Set.
func (s Set) Copy() Set {
	cp := New(s.n)
	copy(cp.words, s.words)
	return cp
}

// Clear resets every bit to 0 in place.
func (s Set) Clear() {
	for i := range s.words {
		s.words[i] = 0
	}
}

// Fill sets every bit to 1 in place.
func (s Set) Fill() {
	for i := range s.words {
		s.words[i] = ^uint64(0)
	}
	s.maskTail()
}

// CopyFrom overwrites the receiver's contents with o's, in place. Both sets
// must share the same universe size.
func (s Set) CopyFrom(o Set) {
	copy(s.words, o.words)
}

// Union sets the receiver to the union of itself and o, in place.
func (s Set) Union(o Set) {
	for i := range s.words {
		s.words[i] |= o.words[i]
	}
}

// Intersect sets the receiver to the intersection of itself and o, in place.
func (s Set) Intersect(o Set) {
	for i := range s.words {
		s.words[i] &= o.words[i]
	}
}

// UnionOf returns a new Set holding the union of a and b, leaving both
// unmodified.
func UnionOf(a, b Set) Set {
	r := New(a.n)
	for i := range r.words {
		r.words[i] = a.words[i] | b.words[i]
	}
	return r
}

// IntersectionOf returns a new Set holding the intersection of a and b,
// leaving both unmodified.
func IntersectionOf(a, b Set) Set {
	r := New(a.n)
	for i := range r.words {
		r.words[i] = a.words[i] & b.words[i]
	}
	return r
}

// Complement returns a new Set holding the members of [0, n) not in s,
// leaving s unmodified.
func (s Set) Complement() Set {
	r := New(s.n)
	for i := range r.words {
		r.words[i] = ^s.words[i]
	}
	r.maskTail()
	return r
}

// Equal reports whether s and o contain exactly the same elements. Used as
// the fixed-point convergence check during Tarski iteration.
func (s Set) Equal(o Set) bool {
	if s.n != o.n {
		return false
	}
	for i := range s.words {
		if s.words[i] != o.words[i] {
			return false
		}
	}
	return true
}

// Empty reports whether the set has no members.
func (s Set) Empty() bool {
	for _, w := range s.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of members in the set.
func (s Set) Count() int {
	total := 0
	for _, w := range s.words {
		total += bits.OnesCount64(w)
	}
	return total
}

// Elements returns the members of the set in ascending order.
func (s Set) Elements() []int {
	out := make([]int, 0, s.Count())
	for wi, w := range s.words {
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			out = append(out, wi*wordBits+tz)
			w &= w - 1
		}
	}
	return out
}

// String renders the set as a sorted, comma-separated list of members
// enclosed in braces, e.g. "{0, 2, 3}".
func (s Set) String() string {
	elems := s.Elements()
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = strconv.Itoa(e)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
