// Copyright 2025, the transput authors.

package bench

import (
	"os"
	"strings"

	"go.starlark.net/starlark"

	"github.com/NevilleDNZ/a68/format"
	"github.com/NevilleDNZ/a68/mode"
	"github.com/NevilleDNZ/a68/transput"
)

// The modes a reading request may name.
var _bench_modes = map[string]*mode.Mode{
	"int":    mode.INT,
	"real":   mode.REAL,
	"bool":   mode.BOOL,
	"char":   mode.CHAR,
	"bits":   mode.BITS,
	"bytes":  mode.BYTES,
	"string": mode.STRING,
	"compl":  mode.COMPL,

	"long int":       mode.LONG_INT,
	"long real":      mode.LONG_REAL,
	"long bits":      mode.LONG_BITS,
	"long long int":  mode.LONG_LONG_INT,
	"long long real": mode.LONG_LONG_REAL,
}

// fileValue wraps an open file for the script.
type fileValue struct {
	file *transput.File
	text *string // backing string of an associated document
}

func (fv *fileValue) String() string {
	if name := fv.file.Name(); name != "" {
		return "<file " + name + ">"
	}
	if fv.text != nil {
		return "<associated file>"
	}
	return "<file>"
}

func (fv *fileValue) Type() string          { return "file" }
func (fv *fileValue) Freeze()               {}
func (fv *fileValue) Truth() starlark.Bool  { return starlark.True }
func (fv *fileValue) Hash() (uint32, error) { return 0, ErrNoHash }

// layoutValue is a layout item under a script name.
type layoutValue struct {
	lay transput.Layout
}

func (lv *layoutValue) String() string        { return lv.lay.String() }
func (lv *layoutValue) Type() string          { return "layout" }
func (lv *layoutValue) Freeze()               {}
func (lv *layoutValue) Truth() starlark.Bool  { return starlark.True }
func (lv *layoutValue) Hash() (uint32, error) { return uint32(lv.lay) + 1, nil }

// builtins is the predeclared environment of every chunk.
func (b *Bench) builtins() starlark.StringDict {
	env := starlark.StringDict{
		"newline":   &layoutValue{lay: transput.NewLine},
		"newpage":   &layoutValue{lay: transput.NewPage},
		"space":     &layoutValue{lay: transput.Space},
		"backspace": &layoutValue{lay: transput.Backspace},
	}

	for name, impl := range map[string]func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error){
		"open":      b.open,
		"establish": b.establish,
		"create":    b.create,
		"associate": b.associate,
		"close":     b.close,
		"reset":     b.reset,
		"set":       b.set,
		"put":       b.put,
		"get":       b.get,
		"putf":      b.putf,
		"getf":      b.getf,
		"put_bin":   b.putBin,
		"get_bin":   b.getBin,
		"contents":  b.contents,
		"make_term": b.makeTerm,
		"endfile":   b.endfile,
		"define":    b.define,
		"defines":   b.defines,
		"write":     b.write,
		"writef":    b.writef,
		"read":      b.read,
		"readf":     b.readf,
	} {
		env[name] = starlark.NewBuiltin(name, impl)
	}

	return env
}

// fileArg unwraps the leading file argument of a builtin.
func fileArg(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (fv *fileValue, rest starlark.Tuple, err error) {
	if len(kwargs) != 0 || len(args) == 0 {
		err = ErrUsage{Fn: fn.Name(), Want: "a file first"}
		return
	}

	fv, ok := args[0].(*fileValue)
	if !ok {
		err = ErrUsage{Fn: fn.Name(), Want: "a file, not a " + args[0].Type()}
		return
	}

	rest = args[1:]
	return
}

func (b *Bench) open(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &name); err != nil {
		return nil, err
	}

	file, err := b.Runtime.Open(name, transput.StandBackChannel)
	if err != nil {
		return nil, err
	}
	return &fileValue{file: file}, nil
}

func (b *Bench) establish(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &name); err != nil {
		return nil, err
	}

	file, err := b.Runtime.Establish(name, transput.StandBackChannel)
	if err != nil {
		return nil, err
	}
	return &fileValue{file: file}, nil
}

func (b *Bench) create(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}

	file, err := b.Runtime.Create(transput.StandBackChannel)
	if err != nil {
		return nil, err
	}
	return &fileValue{file: file}, nil
}

func (b *Bench) associate(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var text string
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0, &text); err != nil {
		return nil, err
	}

	fv := &fileValue{text: &text}
	var err error
	fv.file, err = b.Runtime.Associate(fv.text)
	if err != nil {
		return nil, err
	}
	return fv, nil
}

func (b *Bench) close(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fv, rest, err := fileArg(fn, args, kwargs)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, ErrUsage{Fn: fn.Name(), Want: "a file"}
	}

	if err = fv.file.Close(); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func (b *Bench) reset(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fv, rest, err := fileArg(fn, args, kwargs)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, ErrUsage{Fn: fn.Name(), Want: "a file"}
	}

	if err = fv.file.Reset(); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func (b *Bench) set(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fv, rest, err := fileArg(fn, args, kwargs)
	if err != nil {
		return nil, err
	}
	if len(rest) != 1 {
		return nil, ErrUsage{Fn: fn.Name(), Want: "a file and a character distance"}
	}

	delta, err := starlark.AsInt32(rest[0])
	if err != nil {
		return nil, err
	}

	pos, err := fv.file.Set(int64(delta))
	if err != nil {
		return nil, err
	}
	return starlark.MakeInt64(pos), nil
}

func (b *Bench) put(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fv, rest, err := fileArg(fn, args, kwargs)
	if err != nil {
		return nil, err
	}

	items, err := itemsOut(rest, false)
	if err != nil {
		return nil, err
	}

	if err = fv.file.Put(items...); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func (b *Bench) putf(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fv, rest, err := fileArg(fn, args, kwargs)
	if err != nil {
		return nil, err
	}

	items, err := itemsOut(rest, true)
	if err != nil {
		return nil, err
	}

	if err = fv.file.PutFormat(items...); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func (b *Bench) putBin(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fv, rest, err := fileArg(fn, args, kwargs)
	if err != nil {
		return nil, err
	}

	items, err := itemsOut(rest, false)
	if err != nil {
		return nil, err
	}

	if err = fv.file.PutBin(items...); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func (b *Bench) get(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fv, rest, err := fileArg(fn, args, kwargs)
	if err != nil {
		return nil, err
	}

	items, vals, err := itemsIn(rest, false)
	if err != nil {
		return nil, err
	}

	if err = fv.file.Get(items...); err != nil {
		return nil, err
	}
	return handBack(vals)
}

func (b *Bench) getf(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fv, rest, err := fileArg(fn, args, kwargs)
	if err != nil {
		return nil, err
	}

	items, vals, err := itemsIn(rest, true)
	if err != nil {
		return nil, err
	}

	if err = fv.file.GetFormat(items...); err != nil {
		return nil, err
	}
	return handBack(vals)
}

func (b *Bench) getBin(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fv, rest, err := fileArg(fn, args, kwargs)
	if err != nil {
		return nil, err
	}

	items, vals, err := itemsIn(rest, false)
	if err != nil {
		return nil, err
	}

	if err = fv.file.GetBin(items...); err != nil {
		return nil, err
	}
	return handBack(vals)
}

func (b *Bench) contents(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fv, rest, err := fileArg(fn, args, kwargs)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, ErrUsage{Fn: fn.Name(), Want: "a file"}
	}

	if fv.text != nil {
		return starlark.String(*fv.text), nil
	}
	if fv.file.Name() == "" {
		return nil, ErrContents
	}

	if err = fv.file.Flush(); err != nil {
		return nil, err
	}
	text, err := os.ReadFile(fv.file.Name())
	if err != nil {
		return nil, err
	}
	return starlark.String(text), nil
}

func (b *Bench) makeTerm(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fv, rest, err := fileArg(fn, args, kwargs)
	if err != nil {
		return nil, err
	}
	if len(rest) != 1 {
		return nil, ErrUsage{Fn: fn.Name(), Want: "a file and a terminator string"}
	}

	term, ok := starlark.AsString(rest[0])
	if !ok {
		return nil, ErrUsage{Fn: fn.Name(), Want: "a terminator string, not a " + rest[0].Type()}
	}

	fv.file.MakeTerm(term)
	return starlark.None, nil
}

func (b *Bench) endfile(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fv, rest, err := fileArg(fn, args, kwargs)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, ErrUsage{Fn: fn.Name(), Want: "a file"}
	}

	return starlark.Bool(fv.file.Endfile()), nil
}

// define binds a name the expressions of dynamic replicators and
// embedded formats may mention.
func (b *Bench) define(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var value starlark.Value
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 2, &name, &value); err != nil {
		return nil, err
	}

	b.Runtime.Environ[name] = value
	return starlark.None, nil
}

func (b *Bench) defines(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}

	d := starlark.NewDict(0)
	for name, value := range b.Runtime.Defines() {
		if err := d.SetKey(starlark.String(name), starlark.String(value)); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (b *Bench) write(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) != 0 {
		return nil, ErrUsage{Fn: fn.Name(), Want: "items only"}
	}

	items, err := itemsOut(args, false)
	if err != nil {
		return nil, err
	}

	if err = b.Runtime.Print(items...); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func (b *Bench) writef(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) != 0 {
		return nil, ErrUsage{Fn: fn.Name(), Want: "items only"}
	}

	items, err := itemsOut(args, true)
	if err != nil {
		return nil, err
	}

	if err = b.Runtime.Printf(items...); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func (b *Bench) read(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) != 0 {
		return nil, ErrUsage{Fn: fn.Name(), Want: "mode names only"}
	}

	items, vals, err := itemsIn(args, false)
	if err != nil {
		return nil, err
	}

	if err = b.Runtime.Read(items...); err != nil {
		return nil, err
	}
	return handBack(vals)
}

func (b *Bench) readf(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) != 0 {
		return nil, ErrUsage{Fn: fn.Name(), Want: "format texts and mode names only"}
	}

	items, vals, err := itemsIn(args, true)
	if err != nil {
		return nil, err
	}

	if err = b.Runtime.Readf(items...); err != nil {
		return nil, err
	}
	return handBack(vals)
}

// itemOut turns one script value into a transput item.
func itemOut(v starlark.Value) (item any, err error) {
	switch x := v.(type) {
	case *layoutValue:
		return x.lay, nil
	case starlark.Bool:
		return bool(x), nil
	case starlark.Int:
		if i, ok := x.Int64(); ok {
			return i, nil
		}
		return x.BigInt(), nil
	case starlark.Float:
		return float64(x), nil
	case starlark.String:
		return string(x), nil
	case starlark.Tuple:
		if z, ok := complexOf(x); ok {
			return z, nil
		}
	}
	return nil, ErrItemArg{Type: v.Type()}
}

// complexOf reads a two-number tuple as a COMPL item.
func complexOf(t starlark.Tuple) (z complex128, ok bool) {
	if len(t) != 2 {
		return
	}
	re, ok := starlark.AsFloat(t[0])
	if !ok {
		return
	}
	im, ok := starlark.AsFloat(t[1])
	if !ok {
		return
	}
	return complex(re, im), true
}

// itemsOut converts writing arguments. Under formatted, a string
// opening with '$' compiles as a format text.
func itemsOut(args starlark.Tuple, formatted bool) (items []any, err error) {
	items = make([]any, 0, len(args))
	for _, arg := range args {
		if s, ok := arg.(starlark.String); formatted && ok && strings.HasPrefix(string(s), "$") {
			var form *format.Format
			if form, err = format.Compile(string(s)); err != nil {
				return
			}
			items = append(items, form)
			continue
		}

		var item any
		if item, err = itemOut(arg); err != nil {
			return
		}
		items = append(items, item)
	}
	return
}

// itemsIn builds reading requests: a mode name becomes an empty value
// to fill, layout passes through, and under formatted a '$' string is
// a format text.
func itemsIn(args starlark.Tuple, formatted bool) (items []any, vals []*mode.Value, err error) {
	items = make([]any, 0, len(args))
	for _, arg := range args {
		switch x := arg.(type) {
		case *layoutValue:
			items = append(items, x.lay)

		case starlark.String:
			if formatted && strings.HasPrefix(string(x), "$") {
				var form *format.Format
				if form, err = format.Compile(string(x)); err != nil {
					return
				}
				items = append(items, form)
				continue
			}

			m, ok := _bench_modes[string(x)]
			if !ok {
				err = ErrModeName{Name: string(x)}
				return
			}
			v := mode.Empty(m)
			vals = append(vals, &v)
			items = append(items, &v)

		default:
			err = ErrItemArg{Type: arg.Type()}
			return
		}
	}
	return
}

// itemIn hands one read value back to the script. A value a mended
// event left uninitialised comes back as None.
func itemIn(v *mode.Value) (starlark.Value, error) {
	if !v.Initialised() {
		return starlark.None, nil
	}

	switch v.Mode.Kind {
	case mode.KIND_INT:
		if v.Mode.Prec == mode.PREC_SINGLE {
			return starlark.MakeInt64(v.Int()), nil
		}
		return starlark.MakeBigInt(v.BigInt()), nil

	case mode.KIND_REAL:
		if v.Mode.Prec == mode.PREC_SINGLE {
			return starlark.Float(v.Real()), nil
		}
		x, _ := v.BigReal().Float64()
		return starlark.Float(x), nil

	case mode.KIND_BOOL:
		return starlark.Bool(v.Bool()), nil

	case mode.KIND_CHAR:
		return starlark.String(string(v.Char())), nil

	case mode.KIND_BITS:
		if v.Mode.Prec == mode.PREC_LONG_LONG {
			return starlark.MakeBigInt(v.BigInt()), nil
		}
		return starlark.MakeUint64(v.Bits()), nil

	case mode.KIND_BYTES, mode.KIND_STRING:
		return starlark.String(v.Str()), nil

	case mode.KIND_COMPLEX:
		z := v.Complex()
		return starlark.Tuple{starlark.Float(real(z)), starlark.Float(imag(z))}, nil
	}

	return nil, ErrModeName{Name: v.Mode.String()}
}

// handBack spells results: one alone, several as a tuple, none as
// None.
func handBack(vals []*mode.Value) (starlark.Value, error) {
	out := make(starlark.Tuple, 0, len(vals))
	for _, v := range vals {
		sv, err := itemIn(v)
		if err != nil {
			return nil, err
		}
		out = append(out, sv)
	}

	switch len(out) {
	case 0:
		return starlark.None, nil
	case 1:
		return out[0], nil
	}
	return out, nil
}
