// Copyright 2025, the transput authors.

package transput

import (
	"strings"

	"github.com/NevilleDNZ/a68/conv"
	"github.com/NevilleDNZ/a68/format"
	"github.com/NevilleDNZ/a68/mode"
)

// readPattern matches one pattern against the input and assigns the
// value it spells. The pattern has already been fetched from the
// format walk; a character the pattern cannot place goes back onto
// the input and raises the value error event, and a mended event
// leaves the target unassigned.
func (file *File) readPattern(pat *format.Pattern, v *mode.Value) (err error) {
	if err = file.insertion(pat.Pre, true); err != nil {
		return
	}

	switch pat.Kind {
	case format.PAT_GENERAL:
		err = file.readGeneral(pat, v)
	case format.PAT_INTEGRAL:
		err = file.readIntegral(pat, v)
	case format.PAT_REAL:
		err = file.readReal(pat, v)
	case format.PAT_COMPLEX:
		err = file.readComplex(pat, v)
	case format.PAT_BITS:
		err = file.readBits(pat, v)
	case format.PAT_STRING:
		err = file.readStringPattern(pat, v)
	case format.PAT_BOOL:
		err = file.readBool(pat, v)
	case format.PAT_CHOICE:
		err = file.readChoice(pat, v)
	case format.PAT_CSTYLE:
		err = file.readCStyle(pat, v)
	default:
		err = ErrPattern{Kind: pat.Kind, Mode: v.Mode}
	}

	return
}

// collectMould reads the characters a mould spans off the input,
// checking each against its frame. Zero-suppressed positions and sign
// frames admit blanks, so a shifted sign is collected wherever the
// matching write put it. An S frame consumes no input and supplies
// the digit its writer swallowed, which can only have been zero. A
// character no frame admits goes back onto the input and clears ok.
func (file *File) collectMould(slots []slot, digit func(rune) bool) (field []rune, ok bool, err error) {
	for _, sl := range slots {
		if sl.ins != nil {
			if err = file.insertion(sl.ins, true); err != nil {
				return
			}
		}

		if sl.kind == format.FRAME_S {
			field = append(field, '0')
			continue
		}

		ch, e := file.expectChar()
		if e != nil {
			err = e
			return
		}

		valid := false
		switch sl.kind {
		case format.FRAME_Z:
			valid = digit(ch) || ch == BLANK_CHAR || ch == '+' || ch == '-'
		case format.FRAME_D:
			valid = digit(ch)
		case format.FRAME_PLUS, format.FRAME_MINUS:
			valid = ch == '+' || ch == '-' || ch == BLANK_CHAR
		}
		if !valid {
			file.backChar(ch)
			return field, false, nil
		}

		field = append(field, ch)
	}

	ok = true
	return
}

// sift strips a collected field to its digits, dropping the blanks of
// suppressed zeros and noting the sign.
func sift(field []rune) (neg bool, digits string) {
	var b strings.Builder
	for _, ch := range field {
		switch ch {
		case BLANK_CHAR, '+':
		case '-':
			neg = true
		default:
			b.WriteRune(ch)
		}
	}
	digits = b.String()
	return
}

// setParsed scans an assembled field as a denotation of the target's
// mode and assigns it. The field is already consumed, so a failed
// scan raises the value error event rather than shedding characters.
func (file *File) setParsed(v *mode.Value, text string) (err error) {
	var data any
	var e error

	m := v.Mode
	switch {
	case m.Kind == mode.KIND_INT && m.Prec == mode.PREC_SINGLE:
		data, e = conv.ScanInt(text)
	case m.Kind == mode.KIND_INT:
		data, e = conv.ScanIntBig(text)
	case m.Kind == mode.KIND_REAL && m.Prec == mode.PREC_SINGLE:
		data, e = conv.ScanReal(text)
	case m.Kind == mode.KIND_REAL:
		data, e = conv.ScanRealBig(text, mode.FloatBits(m))
	case m.Kind == mode.KIND_BOOL:
		data, e = conv.ScanBool(text)
	case m.Kind == mode.KIND_BITS && m.Prec == mode.PREC_LONG_LONG:
		data, e = conv.ParseBitsBig(text, m.BitsWidth())
	case m.Kind == mode.KIND_BITS:
		data, e = conv.ParseBits(text, m.BitsWidth())
	case m.Kind == mode.KIND_CHAR, m.Kind == mode.KIND_STRING, m.Kind == mode.KIND_BYTES:
		return file.storeText(v, text)
	default:
		return ErrMode{Mode: m}
	}
	if e != nil {
		return file.valueError(m, text, e)
	}

	v.Set(data)
	return
}

// storeText assigns collected characters to a character-mode target.
func (file *File) storeText(v *mode.Value, text string) (err error) {
	switch v.Mode.Kind {
	case mode.KIND_CHAR:
		runes := []rune(text)
		if len(runes) != 1 {
			return file.valueError(v.Mode, text, conv.ErrDenotation)
		}
		v.Set(runes[0])
	case mode.KIND_BYTES:
		v.Set(mode.BytesValue(text).Data)
	default:
		v.Set(text)
	}
	return
}

func (file *File) readIntegral(pat *format.Pattern, v *mode.Value) (err error) {
	if v.Mode.Kind != mode.KIND_INT {
		return file.misfit(pat, v.Mode)
	}

	slots, err := file.expand(pat.Frames)
	if err != nil {
		return
	}
	field, ok, err := file.collectMould(slots, isDigit)
	if err != nil {
		return
	}
	if !ok {
		return file.valueError(v.Mode, string(field), conv.ErrDenotation)
	}

	neg, digits := sift(field)
	if digits == "" {
		digits = "0"
	}
	if neg {
		digits = "-" + digits
	}
	return file.setParsed(v, digits)
}

// readFrameChar verifies the input holds one of the characters a
// separator frame stands for, running the frame's insertion first.
func (file *File) readFrameChar(fr *format.Frame, accept string) (ok bool, err error) {
	if fr.Ins != nil {
		if err = file.insertion(fr.Ins, true); err != nil {
			return
		}
	}

	ch, e := file.expectChar()
	if e != nil {
		err = e
		return
	}
	if !strings.ContainsRune(accept, ch) {
		file.backChar(ch)
		return
	}

	ok = true
	return
}

// readRealFrames collects a real mould off the input and assembles
// the denotation text it spells.
func (file *File) readRealFrames(frames []*format.Frame) (text string, ok bool, err error) {
	intg, frac, expo, point, ef := splitReal(frames)

	iSlots, err := file.expand(intg)
	if err != nil {
		return
	}
	field, ok, err := file.collectMould(iSlots, isDigit)
	if err != nil || !ok {
		text = string(field)
		return
	}
	neg, ints := sift(field)
	if ints == "" {
		ints = "0"
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(ints)

	if point != nil {
		if ok, err = file.readFrameChar(point, "."); err != nil || !ok {
			text = b.String()
			return
		}
		fSlots, e := file.expand(frac)
		if e != nil {
			err = e
			return
		}
		field, ok, err = file.collectMould(fSlots, isDigit)
		if err != nil || !ok {
			text = b.String() + "." + string(field)
			return
		}
		_, fracs := sift(field)
		if fracs == "" {
			fracs = "0"
		}
		b.WriteByte('.')
		b.WriteString(fracs)
	}

	if ef != nil {
		if ok, err = file.readFrameChar(ef, "eE"); err != nil || !ok {
			text = b.String()
			return
		}
		eSlots, e := file.expand(expo)
		if e != nil {
			err = e
			return
		}
		field, ok, err = file.collectMould(eSlots, isDigit)
		if err != nil || !ok {
			text = b.String() + "e" + string(field)
			return
		}
		eneg, exps := sift(field)
		if exps == "" {
			exps = "0"
		}
		b.WriteByte('e')
		if eneg {
			b.WriteByte('-')
		}
		b.WriteString(exps)
	}

	text = b.String()
	ok = true
	return
}

func (file *File) readReal(pat *format.Pattern, v *mode.Value) (err error) {
	if v.Mode.Kind != mode.KIND_REAL && v.Mode.Kind != mode.KIND_INT {
		return file.misfit(pat, v.Mode)
	}

	text, ok, err := file.readRealFrames(pat.Frames)
	if err != nil {
		return
	}
	if !ok {
		return file.valueError(v.Mode, text, conv.ErrDenotation)
	}
	return file.setParsed(v, text)
}

func (file *File) readComplex(pat *format.Pattern, v *mode.Value) (err error) {
	if v.Mode.Kind != mode.KIND_COMPLEX {
		return file.misfit(pat, v.Mode)
	}

	re, im, iFrame := splitComplex(pat.Frames)

	rtext, ok, err := file.readRealFrames(re)
	if err != nil {
		return
	}
	if !ok {
		return file.valueError(v.Mode, rtext, conv.ErrDenotation)
	}

	if iFrame != nil {
		ok, err = file.readFrameChar(iFrame, "Ii")
	} else {
		var ch rune
		if ch, err = file.expectChar(); err == nil {
			if ok = ch == 'I' || ch == 'i'; !ok {
				file.backChar(ch)
			}
		}
	}
	if err != nil {
		return
	}
	if !ok {
		return file.valueError(v.Mode, rtext, conv.ErrDenotation)
	}

	itext, ok, err := file.readRealFrames(im)
	if err != nil {
		return
	}
	if !ok {
		return file.valueError(v.Mode, itext, conv.ErrDenotation)
	}

	if v.Mode.Prec == mode.PREC_SINGLE {
		rex, e := conv.ScanReal(rtext)
		if e != nil {
			return file.valueError(v.Mode, rtext, e)
		}
		imx, e := conv.ScanReal(itext)
		if e != nil {
			return file.valueError(v.Mode, itext, e)
		}
		v.Set(complex(rex, imx))
		return
	}

	prec := mode.FloatBits(v.Mode)
	rex, e := conv.ScanRealBig(rtext, prec)
	if e != nil {
		return file.valueError(v.Mode, rtext, e)
	}
	imx, e := conv.ScanRealBig(itext, prec)
	if e != nil {
		return file.valueError(v.Mode, itext, e)
	}
	v.Set(mode.LongComplex{Re: rex, Im: imx})
	return
}

// radixDigit admits the digit characters of the given radix, in
// either letter case.
func radixDigit(radix int) func(rune) bool {
	return func(ch rune) bool {
		d := -1
		switch {
		case ch >= '0' && ch <= '9':
			d = int(ch - '0')
		case ch >= 'a' && ch <= 'f':
			d = int(ch-'a') + 10
		case ch >= 'A' && ch <= 'F':
			d = int(ch-'A') + 10
		}
		return d >= 0 && d < radix
	}
}

func (file *File) readBits(pat *format.Pattern, v *mode.Value) (err error) {
	if v.Mode.Kind != mode.KIND_BITS {
		return file.misfit(pat, v.Mode)
	}

	radix, err := pat.Radix.Value(file.rt.Environ)
	if err != nil {
		return
	}

	slots, err := file.expand(pat.Frames)
	if err != nil {
		return
	}
	field, ok, err := file.collectMould(slots, radixDigit(radix))
	if err != nil {
		return
	}
	if !ok {
		return file.valueError(v.Mode, string(field), conv.ErrDenotation)
	}

	neg, digits := sift(field)
	if neg {
		return file.valueError(v.Mode, string(field), conv.ErrDenotation)
	}
	if digits == "" {
		digits = "0"
	}

	width := v.Mode.BitsWidth()
	if v.Mode.Prec == mode.PREC_LONG_LONG {
		data, e := conv.ParseRadixBig(digits, radix, width)
		if e != nil {
			return file.valueError(v.Mode, digits, e)
		}
		v.Set(data)
		return
	}

	data, e := conv.ParseRadix(digits, radix, width)
	if e != nil {
		return file.valueError(v.Mode, digits, e)
	}
	v.Set(data)
	return
}

func (file *File) readStringPattern(pat *format.Pattern, v *mode.Value) (err error) {
	switch v.Mode.Kind {
	case mode.KIND_STRING, mode.KIND_CHAR, mode.KIND_BYTES:
	default:
		return file.misfit(pat, v.Mode)
	}

	slots, err := file.expand(pat.Frames)
	if err != nil {
		return
	}

	var field []rune
	for _, sl := range slots {
		if sl.ins != nil {
			if err = file.insertion(sl.ins, true); err != nil {
				return
			}
		}
		switch sl.kind {
		case format.FRAME_A:
			ch, e := file.expectChar()
			if e != nil {
				return e
			}
			field = append(field, ch)
		case format.FRAME_S:
			field = append(field, BLANK_CHAR)
		}
	}

	return file.storeText(v, string(field))
}

func (file *File) readBool(pat *format.Pattern, v *mode.Value) (err error) {
	if v.Mode.Kind != mode.KIND_BOOL {
		return file.misfit(pat, v.Mode)
	}

	if len(pat.Choices) == 0 {
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
			return file.valueError(v.Mode, string(ch), conv.ErrDenotation)
		}
		return
	}

	k, err := file.matchChoice(pat)
	if err != nil {
		return
	}
	switch k {
	case 1:
		v.Set(true)
	case 2:
		v.Set(false)
	default:
		return file.valueError(v.Mode, "", ErrNoChoice)
	}
	return
}

func (file *File) readChoice(pat *format.Pattern, v *mode.Value) (err error) {
	if v.Mode.Kind != mode.KIND_INT || v.Mode.Prec != mode.PREC_SINGLE {
		return file.misfit(pat, v.Mode)
	}

	k, err := file.matchChoice(pat)
	if err != nil {
		return
	}
	if k == 0 {
		return file.valueError(v.Mode, "", ErrNoChoice)
	}

	v.Set(int64(k))
	return
}

// branchText flattens a choice branch to the text it spells on the
// document. Layout items have no textual shape and match nothing.
func (file *File) branchText(ins *format.Insertion) (text []rune, err error) {
	for _, item := range ins.Items {
		n, e := item.Rep.Value(file.rt.Environ)
		if e != nil {
			return nil, e
		}
		if n < 0 {
			n = 0
		}
		switch item.Kind {
		case format.INS_LITERAL:
			for ; n > 0; n-- {
				text = append(text, []rune(item.Text)...)
			}
		case format.INS_SPACE, format.INS_BLANK:
			for ; n > 0; n-- {
				text = append(text, BLANK_CHAR)
			}
		}
	}
	return
}

// matchChoice reads the longest branch literal the input spells and
// returns its 1-based index, or zero when no branch matches.
// Characters beyond the winning branch go back onto the input.
func (file *File) matchChoice(pat *format.Pattern) (k int, err error) {
	texts := make([][]rune, len(pat.Choices))
	for n, branch := range pat.Choices {
		if texts[n], err = file.branchText(branch); err != nil {
			return
		}
	}

	var got []rune
	best, bestLen := 0, -1
	for {
		longer := false
		for n, t := range texts {
			if len(t) == len(got) && string(t) == string(got) && len(got) > bestLen {
				best, bestLen = n+1, len(got)
			}
			if len(t) > len(got) && string(t[:len(got)]) == string(got) {
				longer = true
			}
		}
		if !longer {
			break
		}

		ch, e := file.readChar()
		if e == ErrFileEnd {
			break
		}
		if e != nil {
			err = e
			return
		}
		got = append(got, ch)
	}

	keep := bestLen
	if keep < 0 {
		keep = 0
	}
	for n := len(got) - 1; n >= keep; n-- {
		file.backChar(got[n])
	}

	if bestLen < 0 {
		return 0, nil
	}
	return best, nil
}

// readGeneral reads an item the way unformatted transput would, or,
// given a width argument, scans a fixed field of that many characters.
func (file *File) readGeneral(pat *format.Pattern, v *mode.Value) (err error) {
	if len(pat.Args) == 0 {
		return file.getValue(v)
	}

	w, err := pat.Args[0].Value(file.rt.Environ)
	if err != nil {
		return
	}
	if w < 0 {
		w = -w
	}
	if w == 0 {
		return file.getValue(v)
	}

	field := make([]rune, 0, w)
	for n := 0; n < w; n++ {
		ch, e := file.expectChar()
		if e != nil {
			return e
		}
		field = append(field, ch)
	}

	return file.setParsed(v, strings.TrimSpace(string(field)))
}

func (file *File) readCStyle(pat *format.Pattern, v *mode.Value) (err error) {
	m := v.Mode
	switch pat.Conv {
	case 'd':
		if m.Kind != mode.KIND_INT {
			return file.misfit(pat, m)
		}
	case 'f', 'e':
		if m.Kind != mode.KIND_REAL && m.Kind != mode.KIND_INT {
			return file.misfit(pat, m)
		}
	case 's':
		switch m.Kind {
		case mode.KIND_STRING, mode.KIND_CHAR, mode.KIND_BYTES:
		default:
			return file.misfit(pat, m)
		}
	}

	if pat.Width == 0 {
		if pat.Conv != 's' {
			return file.getValue(v)
		}
		text, e := file.gather(func(prefix []rune, ch rune) bool {
			return ch != BLANK_CHAR && ch != NEWLINE_CHAR && ch != FORMFEED_CHAR
		})
		if e != nil {
			return e
		}
		return file.storeText(v, text)
	}

	field := make([]rune, 0, pat.Width)
	for n := 0; n < pat.Width; n++ {
		ch, e := file.expectChar()
		if e != nil {
			return e
		}
		field = append(field, ch)
	}

	text := string(field)
	if pat.Conv == 's' {
		return file.storeText(v, strings.TrimLeft(text, " "))
	}
	return file.setParsed(v, strings.TrimSpace(text))
}
