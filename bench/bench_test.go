package bench

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.starlark.net/starlark"

	"github.com/NevilleDNZ/a68/transput"
)

func TestBench(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	b, err := New(transput.Config{Program: "test"})
	assert.NoError(err)
	defer b.Close()

	assert.False(b.Verbose)
	assert.NotNil(b.Runtime)
	assert.NotNil(b.Runtime.StandOut)
}

func doScript(b *Bench, lines []string, t *testing.T) {
	assert := assert.New(t)

	err := b.Run("script", strings.Join(lines, "\n")+"\n")
	assert.NoError(err)
}

func TestBench_Run(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	b, err := New(transput.Config{Program: "test"})
	assert.NoError(err)
	defer b.Close()

	doScript(b, []string{
		`f = associate("")`,
		`put(f, 42, newline, True)`,
		`c = contents(f)`,
		`reset(f)`,
		`i = get(f, "int")`,
		`ok = get(f, "bool")`,
	}, t)

	v, bound := b.Global("c")
	assert.True(bound)
	text, isStr := starlark.AsString(v)
	assert.True(isStr)
	assert.Equal(" +42\nT", text)

	v, bound = b.Global("i")
	assert.True(bound)
	assert.Equal("42", v.String())

	v, bound = b.Global("ok")
	assert.True(bound)
	assert.Equal("True", v.String())

	_, bound = b.Global("missing")
	assert.False(bound)
}

func TestBench_RunChunks(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	b, err := New(transput.Config{Program: "test"})
	assert.NoError(err)
	defer b.Close()

	// The file and the replicator width bind in the first chunk; the
	// second chunk still sees both.
	doScript(b, []string{
		`f = associate("")`,
		`k = 2`,
	}, t)
	doScript(b, []string{
		`putf(f, "$n(k)d$", 7)`,
		`c = contents(f)`,
	}, t)

	v, bound := b.Global("f")
	assert.True(bound)
	assert.Equal("file", v.Type())

	v, _ = b.Global("c")
	text, _ := starlark.AsString(v)
	assert.Equal("07", text)
}

func TestBench_Interact(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	b, err := New(transput.Config{Program: "test"})
	assert.NoError(err)
	defer b.Close()

	out, err := b.Interact("2 + 3")
	assert.NoError(err)
	assert.Equal("5", out)

	out, err = b.Interact("x = 7")
	assert.NoError(err)
	assert.Empty(out)

	out, err = b.Interact("x * 6")
	assert.NoError(err)
	assert.Equal("42", out)

	out, err = b.Interact(`f = associate("")`)
	assert.NoError(err)
	assert.Empty(out)

	out, err = b.Interact("put(f, x)")
	assert.NoError(err)
	assert.Empty(out)

	out, err = b.Interact("reset(f)")
	assert.NoError(err)
	assert.Empty(out)

	out, err = b.Interact(`get(f, "int")`)
	assert.NoError(err)
	assert.Equal("7", out)
}

func TestBench_InteractError(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	b, err := New(transput.Config{Program: "test"})
	assert.NoError(err)
	defer b.Close()

	out, err := b.Interact("quux")
	assert.Error(err)
	assert.Empty(out)

	out, err = b.Interact("wibble wobble")
	assert.Error(err)
	assert.Empty(out)

	// The dialogue survives a bad line.
	out, err = b.Interact("1 + 1")
	assert.NoError(err)
	assert.Equal("2", out)
}

func TestBench_Print(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	b, err := New(transput.Config{Program: "test", StandErrorPath: "diag"})
	assert.NoError(err)

	doScript(b, []string{`print("note")`}, t)
	assert.NoError(b.Close())

	text, err := os.ReadFile("diag")
	assert.NoError(err)
	assert.Equal("note\n", string(text))
}
