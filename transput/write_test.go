// Copyright 2025, the transput authors.

package transput

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NevilleDNZ/a68/conv"
	"github.com/NevilleDNZ/a68/mode"
)

func TestFile_Put(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	rt, err := New(Config{Program: "test"})
	assert.NoError(err)
	defer rt.Close()

	text := ""
	f, err := rt.Associate(&text)
	assert.NoError(err)

	assert.NoError(f.Put(42))
	assert.Equal(" +42", text)

	assert.NoError(f.Put(-6))
	assert.Equal(" +42 -6", text)

	assert.NoError(f.Put(true, false))
	assert.Equal(" +42 -6TF", text)

	assert.NoError(f.Put('x', "yz"))
	assert.Equal(" +42 -6TFxyz", text)
}

func TestFile_PutSpellings(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	rt, err := New(Config{Program: "test"})
	assert.NoError(err)
	defer rt.Close()

	table := map[string]any{
		" +2.5":  2.5,
		" -0.5":  -0.5,
		" +1I-2": complex(1, -2),
		" +7":    big.NewInt(7),
		" +0.25": big.NewFloat(0.25),
	}
	for want, item := range table {
		text := ""
		f, err := rt.Associate(&text)
		assert.NoError(err)
		assert.NoError(f.Put(item))
		assert.Equal(want, text)
		assert.NoError(f.Close())
	}

	// Plain bits spell as a full-width flip and flop row.
	text := ""
	f, err := rt.Associate(&text)
	assert.NoError(err)
	assert.NoError(f.Put(uint64(5)))
	assert.Equal(strings.Repeat("F", 29)+"TFT", text)
}

func TestFile_PutCompound(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	rt, err := New(Config{Program: "test"})
	assert.NoError(err)
	defer rt.Close()

	text := ""
	f, err := rt.Associate(&text)
	assert.NoError(err)

	assert.NoError(f.Put(mode.CharRow("hi")))
	assert.Equal("hi", text)

	pair := mode.NewStructure(mode.StructOf(
		mode.Field{Name: "n", Mode: mode.INT},
		mode.Field{Name: "tag", Mode: mode.STRING},
	))
	pair.Fields[0] = mode.IntValue(3)
	pair.Fields[1] = mode.StringValue("up")

	text = ""
	assert.NoError(f.Reset())
	assert.NoError(f.Put(pair))
	assert.Equal(" +3up", text)
}

func TestFile_PutErrors(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	rt, err := New(Config{Program: "test"})
	assert.NoError(err)
	defer rt.Close()

	text := ""
	f, err := rt.Associate(&text)
	assert.NoError(err)

	assert.ErrorIs(f.Put(mode.Empty(mode.INT)), conv.ErrUninitialised)
	assert.ErrorIs(f.Put(struct{}{}), ErrItem)
	assert.Equal("", text)
}
