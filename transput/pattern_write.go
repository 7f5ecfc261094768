// Copyright 2025, the transput authors.

package transput

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/NevilleDNZ/a68/buffer"
	"github.com/NevilleDNZ/a68/conv"
	"github.com/NevilleDNZ/a68/format"
	"github.com/NevilleDNZ/a68/mode"
)

// writePattern renders one value through one pattern into the staged
// formatted text.
func (file *File) writePattern(pat *format.Pattern, v mode.Value) (err error) {
	if err = file.insertion(pat.Pre, false); err != nil {
		return
	}

	switch pat.Kind {
	case format.PAT_GENERAL:
		err = file.writeGeneral(pat, v)
	case format.PAT_INTEGRAL:
		err = file.writeIntegral(pat, v)
	case format.PAT_REAL:
		err = file.writeReal(pat, v)
	case format.PAT_COMPLEX:
		err = file.writeComplex(pat, v)
	case format.PAT_BITS:
		err = file.writeBits(pat, v)
	case format.PAT_STRING:
		err = file.writeString(pat, v)
	case format.PAT_BOOL:
		err = file.writeBool(pat, v)
	case format.PAT_CHOICE:
		err = file.writeChoice(pat, v)
	case format.PAT_CSTYLE:
		err = file.writeCStyle(pat, v)
	}

	return
}

// misfit reports a value whose mode the pattern cannot serve. A TRUE
// vote from the format error event skips the item.
func (file *File) misfit(pat *format.Pattern, m *mode.Mode) error {
	if file.raise(EVT_FORMAT_ERROR) {
		return nil
	}

	return ErrPattern{Kind: pat.Kind, Mode: m}
}

// slot is one expanded frame position of a mould. The insertion of a
// replicated frame runs before its first position only.
type slot struct {
	kind format.FrameKind
	ins  *format.Insertion
}

// expand flattens mould frames into slots, evaluating the
// replicators.
func (file *File) expand(frames []*format.Frame) (slots []slot, err error) {
	for _, fr := range frames {
		n, e := fr.Rep.Value(file.rt.Environ)
		if e != nil {
			return nil, e
		}
		if n < 0 {
			n = 0
		}
		ins := fr.Ins
		for ; n > 0; n-- {
			slots = append(slots, slot{kind: fr.Kind, ins: ins})
			ins = nil
		}
	}

	return
}

// roomOf counts the digit positions of a mould and reports whether it
// carries a sign frame.
func roomOf(slots []slot) (room int, signed bool) {
	for _, sl := range slots {
		switch sl.kind {
		case format.FRAME_Z, format.FRAME_D, format.FRAME_S:
			room++
		case format.FRAME_PLUS, format.FRAME_MINUS:
			signed = true
		}
	}

	return
}

// edit drives a digit string through the slots of a mould, appending
// to field. The caller supplies exactly as many digits as the mould
// has digit positions. Z blanks non-significant zeros, D prints every
// digit, S consumes its digit silently. signAt is the index of the
// sign character in the returned field, -1 when the mould has no sign
// frame.
func (file *File) edit(field []rune, slots []slot, digits string, neg, sig bool) (out []rune, signAt int, err error) {
	out = field
	signAt = -1
	ds := []rune(digits)
	di := 0

	for _, sl := range slots {
		if sl.ins != nil {
			if out, err = file.fieldIns(out, sl.ins); err != nil {
				return
			}
		}

		switch sl.kind {
		case format.FRAME_Z:
			d := ds[di]
			di++
			if d == '0' && !sig {
				out = append(out, BLANK_CHAR)
				continue
			}
			out = append(out, d)
			if d != '0' {
				sig = true
			}
		case format.FRAME_D:
			d := ds[di]
			di++
			out = append(out, d)
			if d != '0' {
				sig = true
			}
		case format.FRAME_S:
			di++
		case format.FRAME_PLUS:
			signAt = len(out)
			if neg {
				out = append(out, '-')
			} else {
				out = append(out, '+')
			}
		case format.FRAME_MINUS:
			signAt = len(out)
			if neg {
				out = append(out, '-')
			} else {
				out = append(out, BLANK_CHAR)
			}
		}
	}

	return
}

// editError fills the visible positions of a mould with error
// characters.
func (file *File) editError(field []rune, slots []slot) (out []rune, err error) {
	out = field
	for _, sl := range slots {
		if sl.ins != nil {
			if out, err = file.fieldIns(out, sl.ins); err != nil {
				return
			}
		}
		if sl.kind != format.FRAME_S {
			out = append(out, conv.ErrorChar)
		}
	}

	return
}

// shift moves the sign rightward through the blanks of suppressed
// zeros until it abuts the first digit.
func shift(field []rune, signAt int) {
	if signAt < 0 {
		return
	}
	for signAt+1 < len(field) && field[signAt+1] == BLANK_CHAR {
		field[signAt+1] = field[signAt]
		field[signAt] = BLANK_CHAR
		signAt++
	}
}

// fieldIns renders an insertion into a mould field rather than the
// staged stream, so a later sign shift sees the whole mould.
func (file *File) fieldIns(field []rune, ins *format.Insertion) (out []rune, err error) {
	out = field
	for _, item := range ins.Items {
		n, e := item.Rep.Value(file.rt.Environ)
		if e != nil {
			return out, e
		}
		if n < 0 {
			n = 0
		}

		switch item.Kind {
		case format.INS_LITERAL:
			for ; n > 0; n-- {
				out = append(out, []rune(item.Text)...)
			}
		case format.INS_SPACE, format.INS_BLANK:
			for ; n > 0; n-- {
				out = append(out, BLANK_CHAR)
			}
		case format.INS_BACKSPACE:
			for ; n > 0 && len(out) > 0; n-- {
				out = out[:len(out)-1]
			}
		case format.INS_NEWLINE:
			for ; n > 0; n-- {
				out = append(out, NEWLINE_CHAR)
			}
		case format.INS_NEWPAGE:
			for ; n > 0; n-- {
				out = append(out, FORMFEED_CHAR)
			}
		case format.INS_COLUMN:
			for file.colIn()+len(out) < n-1 {
				out = append(out, BLANK_CHAR)
			}
		}
	}

	return
}

// frameChar renders a point, exponent or imaginary frame: its leading
// insertion, then its character.
func (file *File) frameChar(field []rune, fr *format.Frame, ch rune) (out []rune, err error) {
	out = field
	if fr.Ins != nil {
		if out, err = file.fieldIns(out, fr.Ins); err != nil {
			return
		}
	}
	out = append(out, ch)

	return
}

func pad0(digits string, room int) string {
	return strings.Repeat("0", room-len(digits)) + digits
}

// mouldNumber stages a digit string through a whole mould. Digits
// that cannot fit, and a negative value in an unsigned mould, fill
// the field with error characters and raise the value error event.
func (file *File) mouldNumber(m *mode.Mode, frames []*format.Frame, digits string, neg bool, cause error) (err error) {
	slots, err := file.expand(frames)
	if err != nil {
		return
	}
	room, signed := roomOf(slots)

	pool := file.rt.Pool
	fed := pool.Fixed(buffer.Formatted)

	if len(digits) > room || (neg && !signed) {
		var field []rune
		if field, err = file.editError(nil, slots); err != nil {
			return
		}
		pool.AddRunes(fed, field)
		return file.valueError(m, string(field), cause)
	}

	field, signAt, err := file.edit(nil, slots, pad0(digits, room), neg, false)
	if err != nil {
		return
	}
	shift(field, signAt)
	pool.AddRunes(fed, field)

	return
}

func (file *File) writeIntegral(pat *format.Pattern, v mode.Value) (err error) {
	if v.Mode.Kind != mode.KIND_INT {
		return file.misfit(pat, v.Mode)
	}

	var digits string
	neg := false
	if v.Mode.Prec == mode.PREC_SINGLE {
		n := v.Int()
		neg = n < 0
		digits = strings.TrimPrefix(strconv.FormatInt(n, 10), "-")
	} else {
		x := v.BigInt()
		neg = x.Sign() < 0
		digits = new(big.Int).Abs(x).Text(10)
	}

	return file.mouldNumber(v.Mode, pat.Frames, digits, neg, conv.ErrOutOfRange)
}

// splitReal cuts the frames of a real pattern into the integral part,
// the fraction behind the point frame, and the exponent mould behind
// the e frame.
func splitReal(frames []*format.Frame) (intg, frac, expo []*format.Frame, point, ef *format.Frame) {
	part := 0
	for _, fr := range frames {
		switch {
		case fr.Kind == format.FRAME_POINT && part == 0:
			point = fr
			part = 1
		case fr.Kind == format.FRAME_EXP && part <= 1:
			ef = fr
			part = 2
		case part == 0:
			intg = append(intg, fr)
		case part == 1:
			frac = append(frac, fr)
		default:
			expo = append(expo, fr)
		}
	}

	return
}

// realParts renders the magnitude of a numeric operand as plain
// decimal digit strings for a real mould: bi digits before the point
// and ai after it, with the display exponent that completes them in
// the scientific form. numeric is false for NaN and infinities.
func realParts(v mode.Value, bi, ai int, sci bool) (ints, fracs string, dexp int, neg, numeric bool) {
	var x *big.Float
	switch {
	case v.Mode.Kind == mode.KIND_INT && v.Mode.Prec == mode.PREC_SINGLE:
		x = new(big.Float).SetInt64(v.Int())
	case v.Mode.Kind == mode.KIND_INT:
		x = new(big.Float).SetInt(v.BigInt())
	case v.Mode.Prec == mode.PREC_SINGLE:
		r := v.Real()
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return
		}
		x = big.NewFloat(r)
	default:
		if v.BigReal().IsInf() {
			return
		}
		x = v.BigReal()
	}

	numeric = true
	neg = x.Signbit()
	x = new(big.Float).Abs(x)

	if !sci {
		text := x.Text('f', ai)
		ints, fracs, _ = strings.Cut(text, ".")
		ints = strings.TrimLeft(ints, "0")
		return
	}

	room := bi + ai
	if room < 1 || x.Sign() == 0 {
		ints = strings.Repeat("0", bi)
		fracs = strings.Repeat("0", ai)
		return
	}

	text := x.Text('e', room-1)
	mant, es, _ := strings.Cut(text, "e")
	e10, _ := strconv.Atoi(es)
	digits := strings.Replace(mant, ".", "", 1)
	dexp = e10 - bi + 1
	ints, fracs = digits[:bi], digits[bi:]

	return
}

// writeRealFrames stages one real operand through a real mould; the
// complex writer reuses it for each of its two parts.
func (file *File) writeRealFrames(m *mode.Mode, frames []*format.Frame, v mode.Value) (err error) {
	intg, frac, expo, point, ef := splitReal(frames)

	iSlots, err := file.expand(intg)
	if err != nil {
		return
	}
	fSlots, err := file.expand(frac)
	if err != nil {
		return
	}
	eSlots, err := file.expand(expo)
	if err != nil {
		return
	}

	bi, iSigned := roomOf(iSlots)
	ai, _ := roomOf(fSlots)
	ei, eSigned := roomOf(eSlots)

	ints, fracs, dexp, neg, numeric := realParts(v, bi, ai, ef != nil)

	cause := error(conv.ErrOutOfRange)
	if !numeric {
		cause = conv.ErrNotNumeric
	}
	bad := !numeric || len(ints) > bi || (neg && !iSigned)

	eInts := ""
	eNeg := false
	if ef != nil && !bad {
		eNeg = dexp < 0
		eInts = strings.TrimPrefix(strconv.Itoa(dexp), "-")
		if len(eInts) > ei || (eNeg && !eSigned) {
			bad = true
		}
	}

	pool := file.rt.Pool
	fed := pool.Fixed(buffer.Formatted)

	if bad {
		var field []rune
		if field, err = file.editError(nil, iSlots); err != nil {
			return
		}
		if point != nil {
			if field, err = file.frameChar(field, point, conv.ErrorChar); err != nil {
				return
			}
		}
		if field, err = file.editError(field, fSlots); err != nil {
			return
		}
		if ef != nil {
			if field, err = file.frameChar(field, ef, conv.ErrorChar); err != nil {
				return
			}
			if field, err = file.editError(field, eSlots); err != nil {
				return
			}
		}
		pool.AddRunes(fed, field)
		return file.valueError(m, string(field), cause)
	}

	field, signAt, err := file.edit(nil, iSlots, pad0(ints, bi), neg, false)
	if err != nil {
		return
	}
	shift(field, signAt)
	if point != nil {
		if field, err = file.frameChar(field, point, '.'); err != nil {
			return
		}
	}
	if field, _, err = file.edit(field, fSlots, fracs, false, true); err != nil {
		return
	}
	if ef != nil {
		if field, err = file.frameChar(field, ef, 'e'); err != nil {
			return
		}
		if field, signAt, err = file.edit(field, eSlots, pad0(eInts, ei), eNeg, false); err != nil {
			return
		}
		shift(field, signAt)
	}
	pool.AddRunes(fed, field)

	return
}

func (file *File) writeReal(pat *format.Pattern, v mode.Value) (err error) {
	if v.Mode.Kind != mode.KIND_REAL && v.Mode.Kind != mode.KIND_INT {
		return file.misfit(pat, v.Mode)
	}

	return file.writeRealFrames(v.Mode, pat.Frames, v)
}

// splitComplex cuts the frames of a complex pattern at the i frame.
func splitComplex(frames []*format.Frame) (re, im []*format.Frame, iFrame *format.Frame) {
	for _, fr := range frames {
		switch {
		case fr.Kind == format.FRAME_IMAG && iFrame == nil:
			iFrame = fr
		case iFrame == nil:
			re = append(re, fr)
		default:
			im = append(im, fr)
		}
	}

	return
}

func (file *File) writeComplex(pat *format.Pattern, v mode.Value) (err error) {
	re, im, iFrame := splitComplex(pat.Frames)

	var rv, iv mode.Value
	switch v.Mode.Kind {
	case mode.KIND_COMPLEX:
		if v.Mode.Prec == mode.PREC_SINGLE {
			z := v.Complex()
			rv, iv = mode.RealValue(real(z)), mode.RealValue(imag(z))
		} else {
			z := v.Data.(mode.LongComplex)
			rv, _ = mode.Of(z.Re)
			iv, _ = mode.Of(z.Im)
		}
	case mode.KIND_REAL, mode.KIND_INT:
		rv, iv = v, mode.RealValue(0)
	default:
		return file.misfit(pat, v.Mode)
	}

	if err = file.writeRealFrames(v.Mode, re, rv); err != nil {
		return
	}

	var field []rune
	if iFrame != nil && iFrame.Ins != nil {
		if field, err = file.fieldIns(field, iFrame.Ins); err != nil {
			return
		}
	}
	field = append(field, 'I')
	pool := file.rt.Pool
	pool.AddRunes(pool.Fixed(buffer.Formatted), field)

	return file.writeRealFrames(v.Mode, im, iv)
}

func (file *File) writeBits(pat *format.Pattern, v mode.Value) (err error) {
	if v.Mode.Kind != mode.KIND_BITS {
		return file.misfit(pat, v.Mode)
	}

	radix, err := pat.Radix.Value(file.rt.Environ)
	if err != nil {
		return
	}

	var digits string
	var e error
	if v.Mode.Prec == mode.PREC_LONG_LONG {
		digits, e = conv.RadixBig(v.BigInt(), radix)
	} else {
		digits, e = conv.Radix(v.Bits(), radix)
	}
	if e != nil {
		slots, e2 := file.expand(pat.Frames)
		if e2 != nil {
			return e2
		}
		var field []rune
		if field, err = file.editError(nil, slots); err != nil {
			return
		}
		pool := file.rt.Pool
		pool.AddRunes(pool.Fixed(buffer.Formatted), field)
		return file.valueError(v.Mode, string(field), e)
	}

	return file.mouldNumber(v.Mode, pat.Frames, digits, false, conv.ErrOutOfRange)
}

// writeString lays a string over the A and S frames of a string
// pattern: A takes the next character, S drops it. A short string is
// blank padded; characters beyond the mould raise the value error
// event.
func (file *File) writeString(pat *format.Pattern, v mode.Value) (err error) {
	var text string
	switch v.Mode.Kind {
	case mode.KIND_STRING, mode.KIND_BYTES:
		text = v.Str()
	case mode.KIND_CHAR:
		text = string(v.Char())
	default:
		return file.misfit(pat, v.Mode)
	}

	slots, err := file.expand(pat.Frames)
	if err != nil {
		return
	}

	runes := []rune(text)
	var field []rune
	n := 0
	for _, sl := range slots {
		if sl.ins != nil {
			if field, err = file.fieldIns(field, sl.ins); err != nil {
				return
			}
		}
		switch sl.kind {
		case format.FRAME_A:
			ch := rune(BLANK_CHAR)
			if n < len(runes) {
				ch = runes[n]
			}
			n++
			field = append(field, ch)
		case format.FRAME_S:
			n++
		}
	}

	pool := file.rt.Pool
	pool.AddRunes(pool.Fixed(buffer.Formatted), field)

	if n < len(runes) {
		return file.valueError(v.Mode, text, conv.ErrOutOfRange)
	}

	return
}

func (file *File) writeBool(pat *format.Pattern, v mode.Value) (err error) {
	if v.Mode.Kind != mode.KIND_BOOL {
		return file.misfit(pat, v.Mode)
	}

	if len(pat.Choices) == 0 {
		ch := rune(conv.Flop)
		if v.Bool() {
			ch = conv.Flip
		}
		pool := file.rt.Pool
		pool.AddChar(pool.Fixed(buffer.Formatted), ch)
		return
	}

	k := 2
	if v.Bool() {
		k = 1
	}

	return file.choose(pat, k, v.Mode)
}

// choose performs branch k, 1 based, of a choice pattern.
func (file *File) choose(pat *format.Pattern, k int, m *mode.Mode) error {
	if k < 1 || k > len(pat.Choices) {
		return file.valueError(m, strconv.Itoa(k), ErrChoice)
	}

	return file.insertion(pat.Choices[k-1], false)
}

func (file *File) writeChoice(pat *format.Pattern, v mode.Value) (err error) {
	if v.Mode.Kind != mode.KIND_INT || v.Mode.Prec != mode.PREC_SINGLE {
		return file.misfit(pat, v.Mode)
	}

	return file.choose(pat, int(v.Int()), v.Mode)
}

// writeGeneral renders a value with the unformatted converter, or
// with whole, fixed or real when the pattern carries arguments.
func (file *File) writeGeneral(pat *format.Pattern, v mode.Value) (err error) {
	pool := file.rt.Pool
	fed := pool.Fixed(buffer.Formatted)

	if len(pat.Args) == 0 {
		text, e := file.itemText(v)
		if e != nil {
			return e
		}
		pool.AddString(fed, text)
		return
	}

	args := make([]int, 0, len(pat.Args))
	for _, rep := range pat.Args {
		n, e := rep.Value(file.rt.Environ)
		if e != nil {
			return e
		}
		args = append(args, n)
	}

	var text string
	var e error
	switch len(args) {
	case 1:
		text, e = conv.Whole(v, args[0])
	case 2:
		text, e = conv.Fixed(v, args[0], args[1])
	case 3:
		text, e = conv.Real(v, args[0], args[1], args[2], 1)
	default:
		text, e = conv.Real(v, args[0], args[1], args[2], args[3])
	}
	if e != nil {
		return file.misfit(pat, v.Mode)
	}

	pool.AddString(fed, text)
	if strings.ContainsRune(text, conv.ErrorChar) {
		return file.valueError(v.Mode, text, conv.ErrOutOfRange)
	}

	return
}

// writeCStyle implements the printf-like patterns on top of whole,
// fixed and real. Width is a fixed field as the conversion routines
// have it, not the C minimum.
func (file *File) writeCStyle(pat *format.Pattern, v mode.Value) (err error) {
	pool := file.rt.Pool
	fed := pool.Fixed(buffer.Formatted)

	width := pat.Width
	if !pat.Plus {
		width = -width
	}

	var text string
	switch pat.Conv {
	case 'd':
		if v.Mode.Kind != mode.KIND_INT {
			return file.misfit(pat, v.Mode)
		}
		text, err = conv.Whole(v, width)
	case 'f':
		if v.Mode.Kind != mode.KIND_REAL && v.Mode.Kind != mode.KIND_INT {
			return file.misfit(pat, v.Mode)
		}
		text, err = conv.Fixed(v, width, pat.After)
	case 'e':
		if v.Mode.Kind != mode.KIND_REAL && v.Mode.Kind != mode.KIND_INT {
			return file.misfit(pat, v.Mode)
		}
		text, err = conv.Real(v, width, pat.After, 2, 1)
	case 's':
		switch v.Mode.Kind {
		case mode.KIND_STRING, mode.KIND_BYTES:
			text = v.Str()
		case mode.KIND_CHAR:
			text = string(v.Char())
		default:
			return file.misfit(pat, v.Mode)
		}
		if n := pat.Width - len([]rune(text)); n > 0 {
			text = strings.Repeat(string(BLANK_CHAR), n) + text
		}
	}
	if err != nil {
		return file.misfit(pat, v.Mode)
	}

	if pat.Plus && pat.Width == 0 && pat.Conv != 's' && !strings.HasPrefix(text, "-") {
		text = "+" + text
	}

	pool.AddString(fed, text)
	if pat.Conv != 's' && strings.ContainsRune(text, conv.ErrorChar) {
		return file.valueError(v.Mode, text, conv.ErrOutOfRange)
	}

	return
}
