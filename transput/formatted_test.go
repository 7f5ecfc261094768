// Copyright 2025, the transput authors.

package transput

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.starlark.net/starlark"

	"github.com/NevilleDNZ/a68/conv"
	"github.com/NevilleDNZ/a68/format"
	"github.com/NevilleDNZ/a68/mode"
)

// testForm compiles a format text or fails the test.
func testForm(t *testing.T, text string) *format.Format {
	t.Helper()
	form, err := format.Compile(text)
	if err != nil {
		t.Fatalf("compile %v: %v", text, err)
	}
	return form
}

func TestFile_PutFormat(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	rt, err := New(Config{Program: "test"})
	assert.NoError(err)
	defer rt.Close()
	rt.Environ["k"] = starlark.MakeInt(4)

	table := []struct {
		form string
		item any
		want string
	}{
		{"$3zd$", 7, "   7"},
		{"$zd$", 42, "42"},
		{"$+zzd$", -4, "  -4"},
		{"$4z$", 0, "    "},
		{"$n(k)d$", 5, "0005"},
		{"$16r4d$", uint64(0xbeef), "beef"},
		{"$+d.2de+2d$", 3.14159, "+3.14e+00"},
		{"$+d.2di+d.2d$", complex(1.25, -2.5), "+1.25I-2.50"},
		{"$5a$", "ab", "ab   "},
		{"$b$", true, "T"},
		{`$b("on","off")$`, false, "off"},
		{`$c("yes","no")$`, 2, "no"},
		{`$"total: "3d$`, 42, "total: 042"},
		{"$ld$", 5, "\n5"},
		{"$g$", 42, " +42"},
		{"$g(6)$", 42, "   +42"},
		{"$g(8,2)$", 3.14159, "   +3.14"},
		{"$%5d$", 42, "   42"},
		{"$%+5d$", 42, "  +42"},
		{"$%8.2f$", 3.14159, "    3.14"},
		{"$%10.2e$", 2.5, "  2.50e+00"},
		{"$%s$", "ok", "ok"},
		{"$%5s$", "ok", "   ok"},
	}
	for _, tc := range table {
		form := testForm(t, tc.form)

		text := ""
		f, err := rt.Associate(&text)
		assert.NoError(err)
		assert.NoError(f.PutFormat(form, tc.item), tc.form)
		assert.Equal(tc.want, text, tc.form)
		assert.NoError(f.Close())
	}
}

func TestFile_PutFormat_Collection(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	rt, err := New(Config{Program: "test"})
	assert.NoError(err)
	defer rt.Close()

	form := testForm(t, "$3(dx)$")
	text := ""
	f, err := rt.Associate(&text)
	assert.NoError(err)

	assert.NoError(f.PutFormat(form, 1, 2, 3))
	assert.Equal("1 2 3 ", text)
}

func TestFile_PutFormat_Layout(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	rt, err := New(Config{Program: "test"})
	assert.NoError(err)
	defer rt.Close()

	form := testForm(t, "$d,d$")
	text := ""
	f, err := rt.Associate(&text)
	assert.NoError(err)

	assert.NoError(f.PutFormat(form, 1, NewLine, 2))
	assert.Equal("1\n2", text)
}

func TestFile_PutFormat_Embedded(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	rt, err := New(Config{Program: "test"})
	assert.NoError(err)
	defer rt.Close()
	rt.Environ["inner"] = starlark.String("$d$")

	form := testForm(t, "$f(inner)$")
	ends := 0
	text := ""
	f, err := rt.Associate(&text)
	assert.NoError(err)
	f.OnFormatEnd(func(*File) bool { ends++; return false })

	assert.NoError(f.PutFormat(form, 5))
	assert.Equal("5", text)

	// The embedded format pops silently; only the outer one ends.
	assert.Equal(1, ends)

	// The outer format resumes behind an exhausted embedded one.
	form = testForm(t, "$f(inner),d$")
	text = ""
	f2, err := rt.Associate(&text)
	assert.NoError(err)
	assert.NoError(f2.PutFormat(form, 5, 6))
	assert.Equal("56", text)
}

func TestFile_PutFormat_FormatItem(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	rt, err := New(Config{Program: "test"})
	assert.NoError(err)
	defer rt.Close()

	// A FORMAT value among the items takes force like a format.
	form := testForm(t, "$d$")
	text := ""
	f, err := rt.Associate(&text)
	assert.NoError(err)
	assert.NoError(f.PutFormat(mode.FormatValue(form), 7))
	assert.Equal("7", text)

	input := "8"
	g, err := rt.Associate(&input)
	assert.NoError(err)

	var i int
	assert.NoError(g.GetFormat(mode.FormatValue(form), &i))
	assert.Equal(8, i)
}

func TestFile_PutFormat_Errors(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	rt, err := New(Config{Program: "test"})
	assert.NoError(err)
	defer rt.Close()

	// A value item with no format in force.
	text := ""
	f, err := rt.Associate(&text)
	assert.NoError(err)
	assert.ErrorIs(f.PutFormat(42), ErrNoFormat)

	// More values than patterns.
	form := testForm(t, "$d$")
	text2 := ""
	f2, err := rt.Associate(&text2)
	assert.NoError(err)
	assert.ErrorIs(f2.PutFormat(form, 1, 2), ErrExhausted)
	assert.Equal("1", text2)

	// A TRUE vote from the format end event restarts the format.
	text3 := ""
	f3, err := rt.Associate(&text3)
	assert.NoError(err)
	f3.OnFormatEnd(func(*File) bool { return true })
	assert.NoError(f3.PutFormat(form, 1, 2, 3))
	assert.Equal("123", text3)

	// A pattern left unmatched at the end of the call.
	pair := testForm(t, "$d,d$")
	text4 := ""
	f4, err := rt.Associate(&text4)
	assert.NoError(err)
	assert.ErrorIs(f4.PutFormat(pair, 5), ErrResidual)
	assert.Equal("5", text4)

	text5 := ""
	f5, err := rt.Associate(&text5)
	assert.NoError(err)
	f5.OnFormatError(func(*File) bool { return true })
	assert.NoError(f5.PutFormat(pair, 5))

	// Digits that cannot fit fill the mould with error characters.
	narrow := testForm(t, "$2d$")
	text6 := ""
	f6, err := rt.Associate(&text6)
	assert.NoError(err)
	assert.ErrorIs(f6.PutFormat(narrow, 12345), conv.ErrOutOfRange)
	assert.Equal("", text6)

	text7 := ""
	f7, err := rt.Associate(&text7)
	assert.NoError(err)
	f7.OnValueError(func(*File) bool { return true })
	assert.NoError(f7.PutFormat(narrow, 12345))
	assert.Equal("**", text7)

	// Choice and string moulds police their operands too.
	choice := testForm(t, `$c("yes","no")$`)
	text8 := ""
	f8, err := rt.Associate(&text8)
	assert.NoError(err)
	assert.ErrorIs(f8.PutFormat(choice, 3), ErrChoice)

	str := testForm(t, "$2a$")
	text9 := ""
	f9, err := rt.Associate(&text9)
	assert.NoError(err)
	assert.ErrorIs(f9.PutFormat(str, "xyz"), conv.ErrOutOfRange)
}

func TestFile_GetFormat(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	rt, err := New(Config{Program: "test"})
	assert.NoError(err)
	defer rt.Close()

	table := []struct {
		form  string
		input string
		want  int
	}{
		{"$3zd$", "   7", 7},
		{"$+zzd$", "  -4", -4},
		{`$"id: "3d$`, "id: 042", 42},
		{"$%5d$", "   42", 42},
	}
	for _, tc := range table {
		form := testForm(t, tc.form)

		text := tc.input
		f, err := rt.Associate(&text)
		assert.NoError(err)

		var i int
		assert.NoError(f.GetFormat(form, &i), tc.form)
		assert.Equal(tc.want, i, tc.form)
		assert.NoError(f.Close())
	}

	// A real mould assembles its parts back into one denotation.
	text := "+3.14e+00"
	f, err := rt.Associate(&text)
	assert.NoError(err)

	var x float64
	assert.NoError(f.GetFormat(testForm(t, "$+d.2de+2d$"), &x))
	assert.Equal(3.14, x)

	// Layout items move the input position between patterns.
	text2 := "1\n2"
	f2, err := rt.Associate(&text2)
	assert.NoError(err)

	var a, b int
	assert.NoError(f2.GetFormat(testForm(t, "$d,d$"), &a, NewLine, &b))
	assert.Equal(1, a)
	assert.Equal(2, b)

	text3 := "beef"
	f3, err := rt.Associate(&text3)
	assert.NoError(err)

	var w uint64
	assert.NoError(f3.GetFormat(testForm(t, "$16r4d$"), &w))
	assert.Equal(uint64(0xbeef), w)
}

func TestFile_GetFormat_Choice(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	rt, err := New(Config{Program: "test"})
	assert.NoError(err)
	defer rt.Close()

	choice := testForm(t, `$c("yes","no")$`)

	table := map[string]int{
		"yes": 1,
		"no":  2,
	}
	for input, want := range table {
		text := input
		f, err := rt.Associate(&text)
		assert.NoError(err)

		var k int
		assert.NoError(f.GetFormat(choice, &k))
		assert.Equal(want, k, input)
		assert.NoError(f.Close())
	}

	// Input matching no branch is pushed back whole.
	text := "maybe"
	f, err := rt.Associate(&text)
	assert.NoError(err)

	var k int
	assert.ErrorIs(f.GetFormat(choice, &k), ErrNoChoice)

	var s string
	assert.NoError(f.Get(&s))
	assert.Equal("maybe", s)

	// Boolean choices pick their branch by truth value.
	text2 := "off"
	f2, err := rt.Associate(&text2)
	assert.NoError(err)

	flag := true
	assert.NoError(f2.GetFormat(testForm(t, `$b("on","off")$`), &flag))
	assert.False(flag)

	text3 := "T"
	f3, err := rt.Associate(&text3)
	assert.NoError(err)

	flag = false
	assert.NoError(f3.GetFormat(testForm(t, "$b$"), &flag))
	assert.True(flag)
}

func TestFile_GetFormat_String(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	rt, err := New(Config{Program: "test"})
	assert.NoError(err)
	defer rt.Close()

	text := "hello"
	f, err := rt.Associate(&text)
	assert.NoError(err)

	var s string
	assert.NoError(f.GetFormat(testForm(t, "$5a$"), &s))
	assert.Equal("hello", s)

	// A single character mould reads into CHAR.
	text2 := "q"
	f2, err := rt.Associate(&text2)
	assert.NoError(err)

	var ch rune
	assert.NoError(f2.GetFormat(testForm(t, "$a$"), &ch))
	assert.Equal('q', ch)
}

func TestFile_GetFormat_Insertion(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	rt, err := New(Config{Program: "test"})
	assert.NoError(err)
	defer rt.Close()

	form := testForm(t, `$"id: "3d$`)

	// A literal insertion must be present on the input.
	text := "xx: 042"
	f, err := rt.Associate(&text)
	assert.NoError(err)

	var i int
	assert.ErrorIs(f.GetFormat(form, &i), ErrInsertion)

	// Space insertions consume input inside a collection.
	text2 := "1 2 3 "
	f2, err := rt.Associate(&text2)
	assert.NoError(err)

	var a, b, c int
	assert.NoError(f2.GetFormat(testForm(t, "$3(dx)$"), &a, &b, &c))
	assert.Equal(1, a)
	assert.Equal(2, b)
	assert.Equal(3, c)
}

func TestFile_GetFormat_CStyle(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	rt, err := New(Config{Program: "test"})
	assert.NoError(err)
	defer rt.Close()

	text := "   ok"
	f, err := rt.Associate(&text)
	assert.NoError(err)

	var s string
	assert.NoError(f.GetFormat(testForm(t, "$%5s$"), &s))
	assert.Equal("ok", s)

	text2 := "    3.14"
	f2, err := rt.Associate(&text2)
	assert.NoError(err)

	var x float64
	assert.NoError(f2.GetFormat(testForm(t, "$%8.2f$"), &x))
	assert.Equal(3.14, x)
}

func TestFile_GetFormat_CharRow(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	rt, err := New(Config{Program: "test"})
	assert.NoError(err)
	defer rt.Close()

	form := testForm(t, "$5a$")

	// A fixed row keeps its bounds.
	text := "world"
	f, err := rt.Associate(&text)
	assert.NoError(err)

	row := mode.NewRow(mode.CHAR, [2]int{1, 5})
	assert.NoError(f.GetFormat(form, row))
	assert.Equal("world", row.String())

	// A flexible row takes the bounds of what was read.
	text2 := "hello"
	f2, err := rt.Associate(&text2)
	assert.NoError(err)

	flex := mode.CharRow("xy")
	flex.Flex = true
	assert.NoError(f2.GetFormat(form, flex))
	assert.Equal("hello", flex.String())
	assert.True(flex.Flex)
	assert.Len(flex.Elems, 5)
}

func TestFile_GetFormat_Errors(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	rt, err := New(Config{Program: "test"})
	assert.NoError(err)
	defer rt.Close()

	// A target with no format in force.
	text := "5"
	f, err := rt.Associate(&text)
	assert.NoError(err)

	var i int
	assert.ErrorIs(f.GetFormat(&i), ErrNoFormat)

	// Reading past the end of the document.
	empty := ""
	f2, err := rt.Associate(&empty)
	assert.NoError(err)
	assert.ErrorIs(f2.GetFormat(testForm(t, "$d$"), &i), ErrFileEnd)

	// A format bound and never used still purges.
	text3 := "77"
	f3, err := rt.Associate(&text3)
	assert.NoError(err)
	assert.ErrorIs(f3.GetFormat(testForm(t, "$d,d$")), ErrResidual)

	// Input that does not fit the mould.
	text4 := "x"
	f4, err := rt.Associate(&text4)
	assert.NoError(err)
	assert.ErrorIs(f4.GetFormat(testForm(t, "$d$"), &i), conv.ErrDenotation)
}

func TestFile_Formatted_RoundTrip(t *testing.T) {
	assert := assert.New(t)
	t.Chdir(t.TempDir())

	rt, err := New(Config{Program: "test"})
	assert.NoError(err)
	defer rt.Close()

	// The same format serves writing and reading back.
	form := testForm(t, "$16r4d$")
	text := ""
	f, err := rt.Associate(&text)
	assert.NoError(err)

	assert.NoError(f.PutFormat(form, uint64(0xbeef)))
	assert.Equal("beef", text)

	assert.NoError(f.Reset())

	var w uint64
	assert.NoError(f.GetFormat(form, &w))
	assert.Equal(uint64(0xbeef), w)
}
