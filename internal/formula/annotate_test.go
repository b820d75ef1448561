package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Annotate_alternationDepth(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect int // alternation depth of the outermost (root) binder
	}{
		{name: "single mu, no coupling", input: "mu X. <a>X", expect: 1},
		{name: "single nu, no coupling", input: "nu X. <a>X", expect: 1},
		{name: "sibling binders don't couple", input: "(mu X. <a>X) ", expect: 1},
		{name: "alternating mu/nu coupled through shared var", input: "nu Y. mu X. ((<a>X) || (<b>Y))", expect: 2},
		{name: "nested same-polarity binders stay depth 1", input: "mu Y. mu X. ((<a>X) || (<b>Y))", expect: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := Parse(tc.input)
			assert.NoError(t, err)
			Annotate(n)
			assert.Equal(t, tc.expect, n.AlternationDepth)
		})
	}
}

func Test_Annotate_outermostBinderHasNoSurrounding(t *testing.T) {
	assert := assert.New(t)

	n, err := Parse("nu Y. mu X. ((<a>X) || (<b>Y))")
	assert.NoError(err)
	Annotate(n)

	assert.Nil(n.Surrounding)
}

func Test_Annotate_innerBinderSurroundingIsOuter(t *testing.T) {
	assert := assert.New(t)

	n, err := Parse("nu Y. mu X. <a>X")
	assert.NoError(err)
	Annotate(n)

	muX := n.Child // mu X. <a>X
	assert.Equal(KindMu, muX.Kind)
	assert.Equal(n, muX.Surrounding)
}

func Test_Annotate_assignsDenseBinderIDs(t *testing.T) {
	assert := assert.New(t)

	n, err := Parse("nu Y. mu X. <a>X")
	assert.NoError(err)
	Annotate(n)

	ids := map[int]bool{n.ID: true, n.Child.ID: true}
	assert.Len(ids, 2)
	assert.Equal(2, NumBinders(n))
}
