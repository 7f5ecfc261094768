package transput

import (
	"errors"
	"math/big"
	"strings"

	"github.com/NevilleDNZ/a68/buffer"
	"github.com/NevilleDNZ/a68/conv"
	"github.com/NevilleDNZ/a68/mode"
)

// Get reads the items from the file. An item is a pointer receiving
// the value read; a Layout value among the items moves the position
// instead. A value error mended by the file's event procedure leaves
// the item untouched.
func (file *File) Get(items ...any) (err error) {
	if err = file.transition("get", MOOD_READ); err != nil {
		return
	}

	for _, item := range items {
		if lay, ok := item.(Layout); ok {
			if err = file.doLayout(lay); err != nil {
				return
			}
			continue
		}

		if err = file.getItem(item, file.getValue); err != nil {
			return
		}
	}

	return
}

// getItem reads into one pointer item through get, which supplies the
// unformatted, binary or formatted reading of a value.
func (file *File) getItem(item any, get func(*mode.Value) error) (err error) {
	switch x := item.(type) {
	case *mode.Value:
		return get(x)

	case *int:
		v := mode.Empty(mode.INT)
		if err = get(&v); err == nil && v.Initialised() {
			*x = int(v.Int())
		}

	case *int64:
		v := mode.Empty(mode.INT)
		if err = get(&v); err == nil && v.Initialised() {
			*x = v.Int()
		}

	case *float64:
		v := mode.Empty(mode.REAL)
		if err = get(&v); err == nil && v.Initialised() {
			*x = v.Real()
		}

	case *bool:
		v := mode.Empty(mode.BOOL)
		if err = get(&v); err == nil && v.Initialised() {
			*x = v.Bool()
		}

	case *rune:
		v := mode.Empty(mode.CHAR)
		if err = get(&v); err == nil && v.Initialised() {
			*x = v.Char()
		}

	case *string:
		v := mode.Empty(mode.STRING)
		if err = get(&v); err == nil && v.Initialised() {
			*x = v.Str()
		}

	case *complex128:
		v := mode.Empty(mode.COMPL)
		if err = get(&v); err == nil && v.Initialised() {
			*x = v.Complex()
		}

	case *uint64:
		v := mode.Empty(mode.BITS)
		if err = get(&v); err == nil && v.Initialised() {
			*x = v.Bits()
		}

	case *big.Int:
		v := mode.Empty(mode.LONG_INT)
		if err = get(&v); err == nil && v.Initialised() {
			x.Set(v.BigInt())
		}

	case *big.Float:
		v := mode.Empty(mode.LONG_REAL)
		if err = get(&v); err == nil && v.Initialised() {
			x.Set(v.BigReal())
		}

	case *mode.Row:
		v := mode.RowValue(x)
		return get(&v)

	case *mode.Structure:
		v := mode.StructValue(x)
		return get(&v)

	default:
		return ErrItemType{Item: item}
	}

	return
}

func (file *File) getValue(v *mode.Value) (err error) {
	m := v.Mode

	switch m.Kind {
	case mode.KIND_ROW:
		if !v.Initialised() {
			return ErrValue{Mode: m, Err: conv.ErrUninitialised}
		}
		for elem := range v.Row().All() {
			if err = file.getValue(elem); err != nil {
				return
			}
		}
		return

	case mode.KIND_STRUCT:
		if !v.Initialised() {
			return ErrValue{Mode: m, Err: conv.ErrUninitialised}
		}
		s := v.Struct()
		for n := range s.Fields {
			if err = file.getValue(&s.Fields[n]); err != nil {
				return
			}
		}
		return

	case mode.KIND_UNION:
		if !v.Initialised() {
			return ErrValue{Mode: m, Err: conv.ErrUninitialised}
		}
		return file.getValue(v.United().Value)

	case mode.KIND_STRING:
		text, e := file.readString()
		if e != nil {
			return e
		}
		v.Set(text)
		return

	case mode.KIND_BYTES:
		text, e := file.readString()
		if e != nil {
			return e
		}
		v.Set(mode.BytesValue(text).Data)
		return

	case mode.KIND_CHAR:
		ch, e := file.expectChar()
		if e != nil {
			return e
		}
		v.Set(ch)
		return

	case mode.KIND_BOOL:
		if err = file.skipLayout(); err != nil {
			return
		}
		ch, e := file.expectChar()
		if e != nil {
			return e
		}
		switch ch {
		case conv.Flip:
			v.Set(true)
		case conv.Flop:
			v.Set(false)
		default:
			file.backChar(ch)
			return file.valueError(m, string(ch), conv.ErrDenotation)
		}
		return

	case mode.KIND_INT:
		if err = file.skipLayout(); err != nil {
			return
		}
		text, e := file.gather(intChar)
		if e != nil {
			return e
		}
		if m.Prec == mode.PREC_SINGLE {
			return file.backoff(v, text, func(s string) (any, error) {
				return conv.ScanInt(s)
			})
		}
		return file.backoff(v, text, func(s string) (any, error) {
			return conv.ScanIntBig(s)
		})

	case mode.KIND_REAL:
		if err = file.skipLayout(); err != nil {
			return
		}
		text, e := file.gather(realChar)
		if e != nil {
			return e
		}
		if m.Prec == mode.PREC_SINGLE {
			return file.backoff(v, text, func(s string) (any, error) {
				return conv.ScanReal(s)
			})
		}
		prec := mode.FloatBits(m)
		return file.backoff(v, text, func(s string) (any, error) {
			return conv.ScanRealBig(s, prec)
		})

	case mode.KIND_BITS:
		if err = file.skipLayout(); err != nil {
			return
		}
		text, e := file.gather(bitsChar)
		if e != nil {
			return e
		}
		width := m.BitsWidth()
		if m.Prec == mode.PREC_LONG_LONG {
			return file.backoff(v, text, func(s string) (any, error) {
				return conv.ParseBitsBig(s, width)
			})
		}
		return file.backoff(v, text, func(s string) (any, error) {
			return conv.ParseBits(s, width)
		})

	case mode.KIND_COMPLEX:
		return file.getComplex(v)
	}

	return ErrMode{Mode: m}
}

func (file *File) getComplex(v *mode.Value) (err error) {
	m := v.Mode

	part := mode.REAL
	switch m.Prec {
	case mode.PREC_LONG:
		part = mode.LONG_REAL
	case mode.PREC_LONG_LONG:
		part = mode.LONG_LONG_REAL
	}

	re := mode.Empty(part)
	if err = file.getValue(&re); err != nil || !re.Initialised() {
		return
	}

	if err = file.skipLayout(); err != nil {
		return
	}

	ch, e := file.expectChar()
	if e != nil {
		return e
	}
	if ch != 'I' && ch != 'i' {
		file.backChar(ch)
		return file.valueError(m, string(ch), conv.ErrDenotation)
	}

	im := mode.Empty(part)
	if err = file.getValue(&im); err != nil || !im.Initialised() {
		return
	}

	if m.Prec == mode.PREC_SINGLE {
		v.Set(complex(re.Real(), im.Real()))
		return
	}
	v.Set(mode.LongComplex{Re: re.BigReal(), Im: im.BigReal()})
	return
}

// readString collects characters up to a line end, page end or one of
// the file's terminators, which stays unconsumed.
func (file *File) readString() (text string, err error) {
	pool := file.rt.Pool
	sb := pool.Fixed(buffer.Strings)
	pool.Reset(sb)

	for {
		ch, e := file.readChar()
		if e == ErrFileEnd {
			if pool.Index(sb) > 0 {
				break
			}
			if !file.raise(EVT_FILE_END) || file.eof {
				err = e
				return
			}
			continue
		}
		if e != nil {
			err = e
			return
		}

		if ch == NEWLINE_CHAR || ch == FORMFEED_CHAR || strings.ContainsRune(file.term, ch) {
			file.backChar(ch)
			break
		}

		pool.AddChar(sb, ch)
	}

	text = pool.String(sb)
	pool.Reset(sb)
	return
}

// gather collects the longest input prefix the viability predicate
// admits, stopping short of the first character it does not.
func (file *File) gather(viable func(prefix []rune, ch rune) bool) (text string, err error) {
	pool := file.rt.Pool
	in := pool.Fixed(buffer.Input)
	pool.Reset(in)

	for {
		ch, e := file.readChar()
		if e == ErrFileEnd {
			break
		}
		if e != nil {
			err = e
			return
		}

		if !viable(pool.Runes(in), ch) {
			file.backChar(ch)
			break
		}

		pool.AddChar(in, ch)
	}

	text = pool.String(in)
	pool.Reset(in)
	return
}

// backoff parses text, shedding characters back onto the input until
// a denotation parses or nothing is left. Reading a prefix narrower
// than the gathered field covers denotations that widen: "12." reads
// as the INT 12 followed by a point.
func (file *File) backoff(v *mode.Value, text string, parse func(string) (any, error)) (err error) {
	runes := []rune(text)

	for len(runes) > 0 {
		data, e := parse(string(runes))
		if e == nil {
			v.Set(data)
			return
		}
		if !errors.Is(e, conv.ErrDenotation) {
			return file.valueError(v.Mode, string(runes), e)
		}

		last := runes[len(runes)-1]
		runes = runes[:len(runes)-1]
		file.backChar(last)
	}

	return file.valueError(v.Mode, text, conv.ErrDenotation)
}

// valueError reports input that makes no value of the wanted mode,
// giving the value error event a chance to mend it. A mended error
// leaves the item unassigned.
func (file *File) valueError(m *mode.Mode, text string, cause error) error {
	if file.raise(EVT_VALUE_ERROR) {
		return nil
	}
	return ErrValue{Mode: m, Text: text, Err: cause}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// intChar admits the next character of an integral denotation.
func intChar(prefix []rune, ch rune) bool {
	if ch == '+' || ch == '-' {
		return len(prefix) == 0
	}
	return isDigit(ch)
}

// realChar admits the next character of a real denotation: one point
// before the exponent, one exponent after a digit, signs leading
// either part.
func realChar(prefix []rune, ch rune) bool {
	seenPoint, seenExp, seenDigit := false, false, false
	for _, p := range prefix {
		switch {
		case p == '.':
			seenPoint = true
		case p == 'e' || p == 'E':
			seenExp = true
		case isDigit(p):
			seenDigit = true
		}
	}

	switch {
	case ch == '+' || ch == '-':
		if len(prefix) == 0 {
			return true
		}
		last := prefix[len(prefix)-1]
		return last == 'e' || last == 'E'
	case ch == '.':
		return !seenPoint && !seenExp
	case ch == 'e' || ch == 'E':
		return !seenExp && seenDigit
	default:
		return isDigit(ch)
	}
}

// bitsChar admits the next character of a bits denotation: a flip or
// flop row, or a radix denotation like 16rff.
func bitsChar(prefix []rune, ch rune) bool {
	seenRadix := false
	digitsOnly := len(prefix) > 0
	for _, p := range prefix {
		if p == 'r' {
			seenRadix = true
		}
		if !isDigit(p) {
			digitsOnly = false
		}
	}

	switch {
	case isDigit(ch):
		return true
	case ch == 'r':
		return !seenRadix && digitsOnly
	case seenRadix:
		return (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
	default:
		return ch == conv.Flip || ch == conv.Flop
	}
}
