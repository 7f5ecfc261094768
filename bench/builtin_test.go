package bench

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.starlark.net/starlark"

	"github.com/NevilleDNZ/a68/transput"
)

func TestBench_Associate(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	b, err := New(transput.Config{Program: "test"})
	assert.NoError(err)
	defer b.Close()

	doScript(b, []string{
		`f = associate("abcdef")`,
		`c1 = get(f, "char")`,
		`p = set(f, 2)`,
		`c2 = get(f, "char")`,
	}, t)

	v, _ := b.Global("c1")
	text, _ := starlark.AsString(v)
	assert.Equal("a", text)

	v, _ = b.Global("p")
	assert.Equal("3", v.String())

	v, _ = b.Global("c2")
	text, _ = starlark.AsString(v)
	assert.Equal("d", text)
}

func TestBench_Establish(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	b, err := New(transput.Config{Program: "test"})
	assert.NoError(err)
	defer b.Close()

	doScript(b, []string{
		`f = establish("out.dat")`,
		`put(f, "hello", newline)`,
		`c = contents(f)`,
		`close(f)`,
	}, t)

	v, _ := b.Global("c")
	text, _ := starlark.AsString(v)
	assert.Equal("hello\n", text)

	disk, err := os.ReadFile("out.dat")
	assert.NoError(err)
	assert.Equal("hello\n", string(disk))
}

func TestBench_Layout(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	b, err := New(transput.Config{Program: "test"})
	assert.NoError(err)
	defer b.Close()

	doScript(b, []string{
		`f = associate("")`,
		`put(f, 1, newline, 2)`,
		`reset(f)`,
		`r = get(f, "int", newline, "int")`,
	}, t)

	v, _ := b.Global("r")
	assert.Equal("(1, 2)", v.String())
}

func TestBench_Formatted(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	b, err := New(transput.Config{Program: "test"})
	assert.NoError(err)
	defer b.Close()

	doScript(b, []string{
		`f = associate("")`,
		`define("w", 4)`,
		`putf(f, "$n(w)d$", 56)`,
		`r = contents(f)`,
		`reset(f)`,
		`v = getf(f, "$n(w)d$", "int")`,
		`g = associate("")`,
		`putf(g, '$c("yes","no")$', 2)`,
		`s = contents(g)`,
	}, t)

	v, _ := b.Global("r")
	text, _ := starlark.AsString(v)
	assert.Equal("0056", text)

	v, _ = b.Global("v")
	assert.Equal("56", v.String())

	v, _ = b.Global("s")
	text, _ = starlark.AsString(v)
	assert.Equal("no", text)
}

func TestBench_Compl(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	b, err := New(transput.Config{Program: "test"})
	assert.NoError(err)
	defer b.Close()

	doScript(b, []string{
		`f = associate("")`,
		`put(f, (1.5, -2.0))`,
		`c = contents(f)`,
		`reset(f)`,
		`z = get(f, "compl")`,
	}, t)

	v, _ := b.Global("c")
	text, _ := starlark.AsString(v)
	assert.Equal(" +1.5I-2", text)

	v, _ = b.Global("z")
	assert.Equal("(1.5, -2.0)", v.String())
}

func TestBench_LongInt(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	b, err := New(transput.Config{Program: "test"})
	assert.NoError(err)
	defer b.Close()

	doScript(b, []string{
		`f = associate("")`,
		`put(f, 123456789012345678901234567890)`,
		`reset(f)`,
		`n = get(f, "long int")`,
	}, t)

	v, _ := b.Global("n")
	assert.Equal("123456789012345678901234567890", v.String())
}

func TestBench_Bits(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	b, err := New(transput.Config{Program: "test"})
	assert.NoError(err)
	defer b.Close()

	doScript(b, []string{
		`f = associate("16rff")`,
		`w = get(f, "bits")`,
	}, t)

	v, _ := b.Global("w")
	assert.Equal("255", v.String())
}

func TestBench_Bin(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	b, err := New(transput.Config{Program: "test"})
	assert.NoError(err)
	defer b.Close()

	doScript(b, []string{
		`f = create()`,
		`put_bin(f, 7, 2.5)`,
		`reset(f)`,
		`vals = get_bin(f, "int", "real")`,
	}, t)

	v, _ := b.Global("vals")
	assert.Equal("(7, 2.5)", v.String())
}

func TestBench_MakeTerm(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	b, err := New(transput.Config{Program: "test"})
	assert.NoError(err)
	defer b.Close()

	doScript(b, []string{
		`f = associate("one;rest")`,
		`make_term(f, ";")`,
		`a = get(f, "string")`,
		`c = get(f, "char")`,
	}, t)

	v, _ := b.Global("a")
	text, _ := starlark.AsString(v)
	assert.Equal("one", text)

	v, _ = b.Global("c")
	text, _ = starlark.AsString(v)
	assert.Equal(";", text)
}

func TestBench_Endfile(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	b, err := New(transput.Config{Program: "test"})
	assert.NoError(err)
	defer b.Close()

	doScript(b, []string{
		`f = associate("ab")`,
		`s = get(f, "string")`,
		`e = endfile(f)`,
	}, t)

	v, _ := b.Global("s")
	text, _ := starlark.AsString(v)
	assert.Equal("ab", text)

	v, _ = b.Global("e")
	assert.Equal("True", v.String())
}

func TestBench_WriteRead(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	err := os.WriteFile("in", []byte(" +5 T\n"), 0o644)
	assert.NoError(err)

	b, err := New(transput.Config{Program: "test", StandInPath: "in", StandOutPath: "out"})
	assert.NoError(err)

	doScript(b, []string{
		`v = read("int", "bool")`,
		`write(v[0], space, v[1])`,
	}, t)
	assert.NoError(b.Close())

	text, err := os.ReadFile("out")
	assert.NoError(err)
	assert.Equal(" +5 T", string(text))
}

func TestBench_Writef(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	b, err := New(transput.Config{Program: "test", StandOutPath: "out"})
	assert.NoError(err)

	doScript(b, []string{
		`writef("$3d,x,3d$", 1, 2)`,
	}, t)
	assert.NoError(b.Close())

	text, err := os.ReadFile("out")
	assert.NoError(err)
	assert.Equal("001 002", string(text))
}

func TestBench_Defines(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	b, err := New(transput.Config{Program: "test"})
	assert.NoError(err)
	defer b.Close()

	doScript(b, []string{
		`d = defines()`,
		`w = d["int width"]`,
		`fl = d["flip"]`,
	}, t)

	w, _ := b.Global("w")
	text, ok := starlark.AsString(w)
	assert.True(ok)
	assert.Equal("19", text)

	fl, _ := b.Global("fl")
	text, ok = starlark.AsString(fl)
	assert.True(ok)
	assert.Equal("T", text)
}

func TestBench_Errors(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	b, err := New(transput.Config{Program: "test"})
	assert.NoError(err)
	defer b.Close()

	err = b.Run("bad-mode", `get(associate(""), "quux")`+"\n")
	var em ErrModeName
	assert.ErrorAs(err, &em)
	assert.Equal("quux", em.Name)

	err = b.Run("bad-item", `put(associate(""), None)`+"\n")
	var ei ErrItemArg
	assert.ErrorAs(err, &ei)
	assert.Equal("NoneType", ei.Type)

	err = b.Run("no-file", `put(1, 2)`+"\n")
	var eu ErrUsage
	assert.ErrorAs(err, &eu)

	err = b.Run("no-contents", `contents(create())`+"\n")
	assert.ErrorIs(err, ErrContents)

	err = b.Run("mood", strings.Join([]string{
		`f = associate("x")`,
		`c = get(f, "char")`,
		`put(f, 1)`,
	}, "\n")+"\n")
	var emo transput.ErrMood
	assert.ErrorAs(err, &emo)
	assert.Equal(transput.MOOD_READ, emo.Have)
}
