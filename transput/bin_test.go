// Copyright 2025, the transput authors.

package transput

import (
	"math/big"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFile_BinRoundTrip(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	rt, err := New(Config{Program: "test"})
	assert.NoError(err)
	defer rt.Close()

	f, err := rt.Open(filepath.Join(t.TempDir(), "back.bin"), StandBackChannel)
	assert.NoError(err)

	assert.NoError(f.PutBin(int64(123456789), 3.25, 'q', "hello", complex(1.5, -2.5), uint64(0xDEADBEEF)))
	assert.NoError(f.Reset())

	var (
		i  int64
		x  float64
		ch rune
		s  string
		z  complex128
		w  uint64
	)
	assert.NoError(f.GetBin(&i, &x, &ch, &s, &z, &w))
	assert.Equal(int64(123456789), i)
	assert.Equal(3.25, x)
	assert.Equal('q', ch)
	assert.Equal("hello", s)
	assert.Equal(complex(1.5, -2.5), z)
	assert.Equal(uint64(0xDEADBEEF), w)
}

func TestFile_BinLong(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	rt, err := New(Config{Program: "test"})
	assert.NoError(err)
	defer rt.Close()

	f, err := rt.Open(filepath.Join(t.TempDir(), "long.bin"), StandBackChannel)
	assert.NoError(err)

	n, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	x := big.NewFloat(2.5)

	assert.NoError(f.PutBin(n, x))
	assert.NoError(f.Reset())

	m := new(big.Int)
	y := new(big.Float)
	assert.NoError(f.GetBin(m, y))
	assert.Zero(m.Cmp(n))
	assert.Zero(y.Cmp(x))
}

func TestFile_BinErrors(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	rt, err := New(Config{Program: "test"})
	assert.NoError(err)
	defer rt.Close()

	// Layout items have no binary shape.
	f, err := rt.Open(filepath.Join(t.TempDir(), "back.bin"), StandBackChannel)
	assert.NoError(err)
	assert.ErrorIs(f.PutBin(NewLine), ErrItem)

	// Binary transput needs a bin channel.
	g, err := rt.Establish(filepath.Join(t.TempDir(), "plain"), StandOutChannel)
	assert.NoError(err)
	assert.ErrorIs(g.PutBin(int64(1)), ErrChannel)

	// A file in binary write mood refuses a binary read until it
	// rewinds.
	var i int64
	err = f.GetBin(&i)
	var em ErrMood
	assert.ErrorAs(err, &em)
	assert.Equal(MOOD_WRITE_BIN, em.Have)
}
