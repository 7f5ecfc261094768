package transput

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/NevilleDNZ/a68/buffer"
	"github.com/NevilleDNZ/a68/conv"
	"github.com/NevilleDNZ/a68/mode"
)

// Put writes the items to the file in readable form: numbers as a
// blank then a signed minimal denotation, truth values as flip or
// flop, characters and strings as themselves. Rows, structures and
// unions are written element by element. A Layout value among the
// items moves the position instead.
func (file *File) Put(items ...any) (err error) {
	if err = file.transition("put", MOOD_WRITE); err != nil {
		return
	}

	for _, item := range items {
		if lay, ok := item.(Layout); ok {
			if err = file.doLayout(lay); err != nil {
				return
			}
			continue
		}

		v, ok := mode.Of(item)
		if !ok {
			return ErrItemType{Item: item}
		}

		if err = file.putValue(v); err != nil {
			return
		}
	}

	return
}

// putValue stages one value's spelling in the unformatted buffer and
// purges it to the document.
func (file *File) putValue(v mode.Value) (err error) {
	if !v.Initialised() {
		return ErrValue{Mode: v.Mode, Err: conv.ErrUninitialised}
	}

	switch v.Mode.Kind {
	case mode.KIND_ROW:
		for elem := range v.Row().All() {
			if err = file.putValue(*elem); err != nil {
				return
			}
		}
		return

	case mode.KIND_STRUCT:
		for _, field := range v.Struct().Fields {
			if err = file.putValue(field); err != nil {
				return
			}
		}
		return

	case mode.KIND_UNION:
		return file.putValue(*v.United().Value)
	}

	text, err := file.itemText(v)
	if err != nil {
		return
	}

	pool := file.rt.Pool
	unf := pool.Fixed(buffer.Unformatted)
	pool.Reset(unf)
	pool.AddString(unf, text)
	err = file.emit(pool.String(unf))
	pool.Reset(unf)
	return
}

// itemText spells a scalar value for unformatted output.
func (file *File) itemText(v mode.Value) (text string, err error) {
	m := v.Mode

	switch m.Kind {
	case mode.KIND_INT:
		if m.Prec == mode.PREC_SINGLE {
			return " " + signed(conv.WholeInt(v.Int(), 0)), nil
		}
		return " " + signed(conv.WholeBig(v.BigInt(), 0)), nil

	case mode.KIND_REAL:
		if m.Prec == mode.PREC_SINGLE {
			return " " + realText(v.Real()), nil
		}
		return " " + bigText(v.BigReal()), nil

	case mode.KIND_BOOL:
		if v.Bool() {
			return string(conv.Flip), nil
		}
		return string(conv.Flop), nil

	case mode.KIND_CHAR:
		return string(v.Char()), nil

	case mode.KIND_STRING, mode.KIND_BYTES:
		return v.Str(), nil

	case mode.KIND_BITS:
		if m.Prec == mode.PREC_LONG_LONG {
			return conv.FlopsBig(v.BigInt(), m.BitsWidth()), nil
		}
		return conv.Flops(v.Bits(), m.BitsWidth()), nil

	case mode.KIND_COMPLEX:
		if m.Prec == mode.PREC_SINGLE {
			z := v.Complex()
			return " " + realText(real(z)) + "I" + realText(imag(z)), nil
		}
		z := v.Data.(mode.LongComplex)
		return " " + bigText(z.Re) + "I" + bigText(z.Im), nil
	}

	err = ErrMode{Mode: m}
	return
}

// signed forces an explicit sign onto a rendered number.
func signed(s string) string {
	if strings.HasPrefix(s, "-") {
		return s
	}
	return "+" + s
}

func realText(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return signed(strconv.FormatFloat(x, 'g', -1, 64))
}

func bigText(x *big.Float) string {
	if x.IsInf() {
		return x.Text('g', -1)
	}
	return signed(x.Text('g', -1))
}
