package buffer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPool_Fixed(t *testing.T) {
	assert := assert.New(t)

	p := NewPool()

	for _, which := range []Purpose{Pattern, Strings, Input, Output, Unformatted, Formatted, Edit} {
		h := p.Fixed(which)
		assert.Equal(0, p.Index(h))
		assert.Equal(InitialSize, p.Size(h))
	}
}

func TestPool_GetPut(t *testing.T) {
	assert := assert.New(t)

	p := NewPool()

	h, err := p.Get()
	assert.NoError(err)
	assert.Equal(0, p.Index(h))

	p.AddString(h, "abc")
	assert.Equal("abc", p.String(h))

	p.Put(h)

	// A fresh claim of the same slot must not honour the old handle.
	h2, err := p.Get()
	assert.NoError(err)
	assert.Equal(0, p.Index(h2))
	assert.Panics(func() { p.Index(h) })
}

func TestPool_Get_Exhausted(t *testing.T) {
	assert := assert.New(t)

	p := NewPool()

	for n := fixedBuffers; n < MaxBuffers; n++ {
		_, err := p.Get()
		assert.NoError(err)
	}

	_, err := p.Get()
	assert.Equal(ErrTooManyFiles, err)
}

func TestPool_AddChar_Invariant(t *testing.T) {
	assert := assert.New(t)

	p := NewPool()
	h := p.Fixed(Edit)

	for n := 0; n < 3*InitialSize; n++ {
		p.AddChar(h, rune('a'+n%26))

		b := &p.bufs[h.slot]
		assert.Greater(p.Size(h), p.Index(h))
		assert.Equal(rune(0), b.data[b.index])
	}

	assert.Equal(3*InitialSize, p.Index(h))
}

func TestPool_Enlarge_PreservesContent(t *testing.T) {
	assert := assert.New(t)

	p := NewPool()
	h := p.Fixed(Unformatted)

	p.AddString(h, "+3.14")
	index := p.Index(h)

	p.Enlarge(h, 10*InitialSize)
	assert.Equal(10*InitialSize, p.Size(h))
	assert.Equal(index, p.Index(h))
	assert.Equal("+3.14", p.String(h))

	// Shrinking is a no-op.
	p.Enlarge(h, 1)
	assert.Equal(10*InitialSize, p.Size(h))
}

func TestPool_AddString_Growth(t *testing.T) {
	assert := assert.New(t)

	p := NewPool()
	h, err := p.Get()
	assert.NoError(err)

	long := strings.Repeat("x", 4*InitialSize)
	p.AddString(h, long)
	assert.Equal(long, p.String(h))
	assert.Equal(4*InitialSize, p.Index(h))
}

func TestPool_PopChar(t *testing.T) {
	assert := assert.New(t)

	p := NewPool()
	h := p.Fixed(Input)

	p.AddString(h, "ab")

	ch, ok := p.PopChar(h)
	assert.True(ok)
	assert.Equal('a', ch)

	ch, ok = p.PopChar(h)
	assert.True(ok)
	assert.Equal('b', ch)

	_, ok = p.PopChar(h)
	assert.False(ok)
}

func TestPool_TrimChar(t *testing.T) {
	assert := assert.New(t)

	p := NewPool()
	h := p.Fixed(Output)

	p.AddString(h, "ab")

	ch, ok := p.TrimChar(h)
	assert.True(ok)
	assert.Equal('b', ch)
	assert.Equal("a", p.String(h))

	_, ok = p.TrimChar(h)
	assert.True(ok)
	_, ok = p.TrimChar(h)
	assert.False(ok)
	assert.Equal(0, p.Index(h))
}

func TestPool_UnChar(t *testing.T) {
	assert := assert.New(t)

	p := NewPool()
	h := p.Fixed(Input)

	p.AddString(h, "23")
	p.UnChar(h, '1')

	assert.Equal("123", p.String(h))

	ch, ok := p.PopChar(h)
	assert.True(ok)
	assert.Equal('1', ch)
	assert.Equal("23", p.String(h))
}

func TestPool_Reset(t *testing.T) {
	assert := assert.New(t)

	p := NewPool()
	h := p.Fixed(Output)

	p.AddString(h, "stale")
	p.Reset(h)

	assert.Equal(0, p.Index(h))
	assert.Equal("", p.String(h))
}

func TestPool_Put_Fixed(t *testing.T) {
	assert := assert.New(t)

	p := NewPool()
	assert.Panics(func() { p.Put(p.Fixed(Pattern)) })
}
