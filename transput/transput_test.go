// Copyright 2025, the transput authors.

package transput

import (
	"maps"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NevilleDNZ/a68/format"
)

func TestRuntime_Print(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	out := filepath.Join(t.TempDir(), "out")
	rt, err := New(Config{Program: "test", StandOutPath: out})
	assert.NoError(err)
	defer rt.Close()

	assert.NoError(rt.Print(42))
	assert.NoError(rt.Close())

	text, err := os.ReadFile(out)
	assert.NoError(err)
	assert.Equal(" +42", string(text))
}

func TestRuntime_ReadBack(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "doc")

	wrt, err := New(Config{Program: "test", StandOutPath: path})
	assert.NoError(err)
	assert.NoError(wrt.Print(42, NewLine, 3.25, NewLine, true, NewLine, "abc", NewLine))
	assert.NoError(wrt.Close())

	rt, err := New(Config{Program: "test", StandInPath: path})
	assert.NoError(err)
	defer rt.Close()

	var (
		i int
		x float64
		b bool
		s string
	)
	assert.NoError(rt.Read(&i, &x, &b))
	assert.NoError(rt.Read(NewLine, &s))
	assert.Equal(42, i)
	assert.Equal(3.25, x)
	assert.True(b)
	assert.Equal("abc", s)
}

func TestRuntime_Formatted(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "doc")
	form, err := format.Compile("$3zd$")
	assert.NoError(err)

	wrt, err := New(Config{Program: "test", StandOutPath: path})
	assert.NoError(err)
	assert.NoError(wrt.Printf(form, 42))
	assert.NoError(wrt.Close())

	text, err := os.ReadFile(path)
	assert.NoError(err)
	assert.Equal("  42", string(text))

	rt, err := New(Config{Program: "test", StandInPath: path})
	assert.NoError(err)
	defer rt.Close()

	var i int
	assert.NoError(rt.Readf(form, &i))
	assert.Equal(42, i)
}

func TestRuntime_BinConveniences(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	rt, err := New(Config{Program: "test"})
	assert.NoError(err)
	defer rt.Close()

	assert.NoError(rt.WriteBin(int64(-7), 2.5, true))

	// Stand back has to rewind before it can change direction.
	assert.NoError(rt.StandBack.Reset())

	var (
		i int64
		x float64
		b bool
	)
	assert.NoError(rt.ReadBin(&i, &x, &b))
	assert.Equal(int64(-7), i)
	assert.Equal(2.5, x)
	assert.True(b)
}

func TestRuntime_CloseTwice(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	rt, err := New(Config{Program: "test"})
	assert.NoError(err)

	assert.NoError(rt.Close())
	assert.NoError(rt.Close())
}

func TestRuntime_Defines(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	rt, err := New(Config{Program: "test"})
	assert.NoError(err)
	defer rt.Close()

	defines := maps.Collect(rt.Defines())
	assert.Equal("19", defines["int width"])
	assert.Equal("T", defines["flip"])
	assert.Equal(" ", defines["blank"])
}
