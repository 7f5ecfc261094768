// Copyright 2025, the transput authors.

package transput

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NevilleDNZ/a68/conv"
	"github.com/NevilleDNZ/a68/mode"
)

func TestFile_Get(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	rt, err := New(Config{Program: "test"})
	assert.NoError(err)
	defer rt.Close()

	text := " +42 +3.25 T"
	f, err := rt.Associate(&text)
	assert.NoError(err)

	var (
		i int
		x float64
		b bool
	)
	assert.NoError(f.Get(&i, &x, &b))
	assert.Equal(42, i)
	assert.Equal(3.25, x)
	assert.True(b)
}

func TestFile_GetComplex(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	rt, err := New(Config{Program: "test"})
	assert.NoError(err)
	defer rt.Close()

	text := " +1.5I-2.25"
	f, err := rt.Associate(&text)
	assert.NoError(err)

	var z complex128
	assert.NoError(f.Get(&z))
	assert.Equal(complex(1.5, -2.25), z)
}

func TestFile_GetBits(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	rt, err := New(Config{Program: "test"})
	assert.NoError(err)
	defer rt.Close()

	table := map[string]uint64{
		"16rff": 0xff,
		"8r17":  0o17,
		"TFT":   5,
	}
	for input, want := range table {
		text := input
		f, err := rt.Associate(&text)
		assert.NoError(err)

		var w uint64
		assert.NoError(f.Get(&w))
		assert.Equal(want, w)
		assert.NoError(f.Close())
	}
}

func TestFile_GetString(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	rt, err := New(Config{Program: "test"})
	assert.NoError(err)
	defer rt.Close()

	text := "one two\nrest"
	f, err := rt.Associate(&text)
	assert.NoError(err)

	// A string takes the rest of the line.
	var s string
	assert.NoError(f.Get(&s))
	assert.Equal("one two", s)

	assert.NoError(f.Get(NewLine, &s))
	assert.Equal("rest", s)
}

func TestFile_GetLong(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	rt, err := New(Config{Program: "test"})
	assert.NoError(err)
	defer rt.Close()

	text := " +123456789012345678901234567890 -0.5"
	f, err := rt.Associate(&text)
	assert.NoError(err)

	n := new(big.Int)
	x := new(big.Float)
	assert.NoError(f.Get(n, x))

	want, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	assert.Zero(n.Cmp(want))
	assert.Zero(x.Cmp(big.NewFloat(-0.5)))
}

func TestFile_GetRow(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	rt, err := New(Config{Program: "test"})
	assert.NoError(err)
	defer rt.Close()

	text := " 1 2 3"
	f, err := rt.Associate(&text)
	assert.NoError(err)

	row := mode.NewRow(mode.INT, [2]int{1, 3})
	assert.NoError(f.Get(row))
	assert.Equal(int64(1), row.Elems[0].Int())
	assert.Equal(int64(2), row.Elems[1].Int())
	assert.Equal(int64(3), row.Elems[2].Int())
}

func TestFile_GetValueError(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	rt, err := New(Config{Program: "test"})
	assert.NoError(err)
	defer rt.Close()

	text := "abc"
	f, err := rt.Associate(&text)
	assert.NoError(err)

	i := 99
	assert.ErrorIs(f.Get(&i), conv.ErrDenotation)

	// A mended value error leaves the item untouched and the input
	// where it stood.
	f.OnValueError(func(*File) bool { return true })
	assert.NoError(f.Get(&i))
	assert.Equal(99, i)

	var s string
	assert.NoError(f.Get(&s))
	assert.Equal("abc", s)
}

func TestFile_GetWidens(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	rt, err := New(Config{Program: "test"})
	assert.NoError(err)
	defer rt.Close()

	// "12." is the INT 12 followed by a point, which stays on the
	// input.
	text := "12."
	f, err := rt.Associate(&text)
	assert.NoError(err)

	var i int
	var ch rune
	assert.NoError(f.Get(&i, &ch))
	assert.Equal(12, i)
	assert.Equal('.', ch)
}
