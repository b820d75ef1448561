package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testSystemSrc = `des (0, 2, 2)
(0, "a", 1)
(1, "a", 0)
`

func Test_Dir_LoadSystem_missCreatesEntry(t *testing.T) {
	assert := assert.New(t)

	dir, err := Open(filepath.Join(t.TempDir(), "cache"))
	assert.NoError(err)
	if err != nil {
		return
	}

	l, err := dir.LoadSystem(testSystemSrc)
	assert.NoError(err)
	if err != nil {
		return
	}
	assert.Equal(2, l.NumStates())
	assert.Equal(0, l.Initial())
	assert.Equal(2, l.NumTransitions())
}

func Test_Dir_LoadSystem_hitReturnsEquivalentLTS(t *testing.T) {
	assert := assert.New(t)

	dir, err := Open(filepath.Join(t.TempDir(), "cache"))
	assert.NoError(err)
	if err != nil {
		return
	}

	first, err := dir.LoadSystem(testSystemSrc)
	assert.NoError(err)
	if err != nil {
		return
	}

	second, err := dir.LoadSystem(testSystemSrc)
	assert.NoError(err)
	if err != nil {
		return
	}

	assert.Equal(first.NumStates(), second.NumStates())
	assert.Equal(first.Initial(), second.Initial())
	assert.ElementsMatch(first.Transitions(), second.Transitions())
}
