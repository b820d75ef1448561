package bitset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Set_AddHasRemove(t *testing.T) {
	testCases := []struct {
		name    string
		n       int
		adds    []int
		removes []int
		check   int
		expect  bool
	}{
		{name: "added element is present", n: 8, adds: []int{3}, check: 3, expect: true},
		{name: "unadded element is absent", n: 8, adds: []int{3}, check: 4, expect: false},
		{name: "removed element is absent", n: 8, adds: []int{3}, removes: []int{3}, check: 3, expect: false},
		{name: "spans multiple words", n: 130, adds: []int{0, 64, 129}, check: 129, expect: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := New(tc.n)
			for _, a := range tc.adds {
				s.Add(a)
			}
			for _, r := range tc.removes {
				s.Remove(r)
			}

			assert.Equal(t, tc.expect, s.Has(tc.check))
		})
	}
}

func Test_Full_containsEverything(t *testing.T) {
	assert := assert.New(t)

	s := Full(5)
	for i := 0; i < 5; i++ {
		assert.True(s.Has(i), "element %d should be present", i)
	}
	assert.Equal(5, s.Count())
}

func Test_Full_maskTail_doesNotLeakBitsBeyondN(t *testing.T) {
	assert := assert.New(t)

	// n not a multiple of 64 so the final word has unused high bits.
	s := Full(70)
	assert.Equal(70, s.Count())

	full128 := Full(128)
	assert.Equal(128, full128.Count())
}

func Test_Set_UnionIntersect(t *testing.T) {
	assert := assert.New(t)

	a := New(8)
	a.Add(1)
	a.Add(2)

	b := New(8)
	b.Add(2)
	b.Add(3)

	u := UnionOf(a, b)
	assert.ElementsMatch([]int{1, 2, 3}, u.Elements())

	i := IntersectionOf(a, b)
	assert.ElementsMatch([]int{2}, i.Elements())
}

func Test_Set_Union_inPlace(t *testing.T) {
	assert := assert.New(t)

	a := New(8)
	a.Add(1)

	b := New(8)
	b.Add(2)

	a.Union(b)
	assert.ElementsMatch([]int{1, 2}, a.Elements())
}

func Test_Set_Equal(t *testing.T) {
	assert := assert.New(t)

	a := New(8)
	a.Add(1)
	a.Add(5)

	b := New(8)
	b.Add(5)
	b.Add(1)

	assert.True(a.Equal(b))

	b.Add(2)
	assert.False(a.Equal(b))
}

func Test_Set_CopyIsIndependent(t *testing.T) {
	assert := assert.New(t)

	a := New(8)
	a.Add(1)

	b := a.Copy()
	b.Add(2)

	assert.False(a.Has(2))
	assert.True(b.Has(2))
}

func Test_Set_Empty(t *testing.T) {
	assert := assert.New(t)

	s := New(4)
	assert.True(s.Empty())

	s.Add(2)
	assert.False(s.Empty())
}

func Test_Set_String(t *testing.T) {
	assert := assert.New(t)

	s := New(8)
	s.Add(3)
	s.Add(1)

	assert.Equal("{1, 3}", s.String())
}
