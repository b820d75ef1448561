package env

import (
	"testing"

	"github.com/dekarrin/muchk/internal/bitset"
	"github.com/stretchr/testify/assert"
)

func Test_Env_bindLookupUnbind(t *testing.T) {
	assert := assert.New(t)

	var e Env
	x := bitset.New(4)
	x.Add(1)
	e.Bind("X", x)

	got, ok := e.Lookup("X")
	assert.True(ok)
	assert.True(got.Has(1))

	e.Unbind()
	_, ok = e.Lookup("X")
	assert.False(ok)
}

func Test_Env_innermostWins(t *testing.T) {
	assert := assert.New(t)

	var e Env
	outer := bitset.New(4)
	outer.Add(0)
	inner := bitset.New(4)
	inner.Add(1)

	e.Bind("X", outer)
	e.Bind("X", inner)

	got, ok := e.Lookup("X")
	assert.True(ok)
	assert.True(got.Has(1))
	assert.False(got.Has(0))

	e.Unbind()
	got, ok = e.Lookup("X")
	assert.True(ok)
	assert.True(got.Has(0))
}

func Test_Env_setMutatesInnermost(t *testing.T) {
	assert := assert.New(t)

	var e Env
	e.Bind("X", bitset.New(4))

	updated := bitset.New(4)
	updated.Add(2)
	e.Set("X", updated)

	got, _ := e.Lookup("X")
	assert.True(got.Has(2))
}

func Test_Env_setUnboundPanics(t *testing.T) {
	var e Env
	assert.Panics(t, func() {
		e.Set("X", bitset.New(1))
	})
}

func Test_Env_mustLookupPanicsWhenUnbound(t *testing.T) {
	var e Env
	assert.Panics(t, func() {
		e.MustLookup("X")
	})
}

func Test_Env_depth(t *testing.T) {
	assert := assert.New(t)

	var e Env
	assert.Equal(0, e.Depth())
	e.Bind("X", bitset.New(1))
	assert.Equal(1, e.Depth())
	e.Bind("Y", bitset.New(1))
	assert.Equal(2, e.Depth())
	e.Unbind()
	assert.Equal(1, e.Depth())
}
