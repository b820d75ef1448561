package lts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Load_wellFormed(t *testing.T) {
	assert := assert.New(t)

	src := `des (0, 2, 2)
(0, "a", 1)
(1, "a", 0)
`
	l, err := Load(strings.NewReader(src))
	assert.NoError(err)
	if err != nil {
		return
	}

	assert.Equal(2, l.NumStates())
	assert.Equal(0, l.Initial())
	assert.Equal(2, l.NumTransitions())

	aID, ok := l.ActionID("a")
	assert.True(ok)

	empty, _ := l.Universe()
	x := empty.Copy()
	x.Add(1)
	d := l.Diamond(aID, x)
	assert.ElementsMatch([]int{0}, d.Elements())
}

func Test_Load_toleratesBlankLinesAndTrailingWhitespace(t *testing.T) {
	assert := assert.New(t)

	src := "des (0, 1, 1)  \n\n(0, \"a\", 0)  \n\n"
	l, err := Load(strings.NewReader(src))
	assert.NoError(err)
	if err != nil {
		return
	}
	assert.Equal(1, l.NumTransitions())
}

func Test_Load_duplicateTransitionsAreIdempotent(t *testing.T) {
	assert := assert.New(t)

	src := `des (0, 2, 2)
(0, "a", 1)
(0, "a", 1)
`
	l, err := Load(strings.NewReader(src))
	assert.Error(err) // declared 2, actual 1; non-strict CountMismatch
	assert.NotNil(l)
	if l != nil {
		assert.Equal(1, l.NumTransitions())
	}
}

func Test_Load_missingHeader(t *testing.T) {
	assert := assert.New(t)

	_, err := Load(strings.NewReader(""))
	assert.Error(err)
	var malformed *MalformedLTSError
	assert.ErrorAs(err, &malformed)
}

func Test_Load_malformedHeader(t *testing.T) {
	assert := assert.New(t)

	_, err := Load(strings.NewReader("not a header\n"))
	assert.Error(err)
	var malformed *MalformedLTSError
	assert.ErrorAs(err, &malformed)
}

func Test_Load_transitionOutOfRange(t *testing.T) {
	assert := assert.New(t)

	src := `des (0, 1, 2)
(0, "a", 5)
`
	_, err := Load(strings.NewReader(src))
	assert.Error(err)
	var malformed *MalformedLTSError
	assert.ErrorAs(err, &malformed)
}

func Test_Load_initialOutOfRange(t *testing.T) {
	assert := assert.New(t)

	_, err := Load(strings.NewReader("des (5, 0, 2)\n"))
	assert.Error(err)
	var malformed *MalformedLTSError
	assert.ErrorAs(err, &malformed)
}

func Test_Load_invalidActionSyntax(t *testing.T) {
	assert := assert.New(t)

	src := `des (0, 1, 2)
(0, "Bad!", 1)
`
	_, err := Load(strings.NewReader(src))
	assert.Error(err)
}

func Test_Load_strictMode_failsOnCountMismatch(t *testing.T) {
	assert := assert.New(t)

	src := `des (0, 2, 2)
(0, "a", 1)
`
	_, err := Load(strings.NewReader(src), Strict())
	assert.Error(err)
	var malformed *MalformedLTSError
	assert.ErrorAs(err, &malformed)
}

func Test_LTS_BoxVacuity_noSuccessorsUnderAction(t *testing.T) {
	assert := assert.New(t)

	// state 0 has no "b" successors
	src := `des (0, 1, 2)
(0, "a", 1)
`
	l, err := Load(strings.NewReader(src))
	assert.NoError(err)
	if err != nil {
		return
	}

	bID, ok := l.ActionID("b")
	assert.False(ok, "action b should never have been interned")
	_ = bID

	empty, _ := l.Universe()
	// Box on an action that doesn't occur anywhere should be true everywhere.
	box := l.Box(-1, empty)
	assert.Equal(l.NumStates(), box.Count())
}
