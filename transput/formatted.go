// Copyright 2025, the transput authors.

package transput

import (
	"github.com/NevilleDNZ/a68/buffer"
	"github.com/NevilleDNZ/a68/conv"
	"github.com/NevilleDNZ/a68/format"
	"github.com/NevilleDNZ/a68/mode"
)

// notUsed marks a collection whose replicator has not been evaluated
// on the current visit.
const notUsed = -1

// formatFrame is one activation of a format body: the format in force
// on the file, or an embedded format opened by a format pattern.
// counts holds the per-picture use counters, indexed by picture
// ordinal.
type formatFrame struct {
	body   *format.Format
	counts []int
	outer  bool
}

// prime resets the use counters of the pictures in pics and of every
// picture below them. Collections are marked for replicator
// evaluation on their next visit.
func (fr *formatFrame) prime(pics []*format.Picture) {
	for _, pic := range pics {
		if pic.Kind == format.PIC_COLLECTION {
			fr.counts[pic.Ordinal] = notUsed
			fr.prime(pic.Coll)
		} else {
			fr.counts[pic.Ordinal] = 1
		}
	}
}

// openFrame activates a format body on the file.
func (file *File) openFrame(body *format.Format, outer bool) *formatFrame {
	fr := &formatFrame{body: body, counts: make([]int, body.Count), outer: outer}
	fr.prime(body.Pictures)
	file.frames = append(file.frames, fr)

	return fr
}

func (file *File) dropFrame() {
	file.frames = file.frames[:len(file.frames)-1]
}

// bind associates a new format with the file. The format in force is
// purged first, so its pending insertions land before the new format
// takes over.
func (file *File) bind(body *format.Format, read bool) (err error) {
	if err = file.purge(read); err != nil {
		return
	}
	file.form = body
	file.openFrame(body, true)

	return
}

// nextPattern walks the format in force to its next pattern,
// performing the insertions on the way. A format associated by an
// earlier call is reactivated from the top on the first demand of a
// call. Exhaustion of the outer format fires the format end event: a
// TRUE vote restarts the format, otherwise nil is returned and the
// caller reports exhaustion. Embedded formats pop silently.
func (file *File) nextPattern(read bool) (pat *format.Pattern, err error) {
	if len(file.frames) == 0 && file.form != nil {
		file.openFrame(file.form, true)
	}

	for len(file.frames) > 0 {
		fr := file.frames[len(file.frames)-1]

		if pat, err = file.walk(fr, fr.body.Pictures, read); pat != nil || err != nil {
			return
		}

		if !fr.outer {
			file.dropFrame()
			continue
		}
		if file.raise(EVT_FORMAT_END) {
			fr.prime(fr.body.Pictures)
			continue
		}

		return nil, nil
	}

	return nil, nil
}

// walk advances through a picture list under the use counters of
// frame fr, executing insertions and descending into collections and
// embedded formats, until a pattern is due or the list is exhausted.
func (file *File) walk(fr *formatFrame, pics []*format.Picture, read bool) (pat *format.Pattern, err error) {
	for _, pic := range pics {
		if fr.counts[pic.Ordinal] == 0 {
			continue
		}

		switch pic.Kind {
		case format.PIC_PATTERN:
			fr.counts[pic.Ordinal] = 0
			return pic.Pattern, nil

		case format.PIC_INSERTION:
			fr.counts[pic.Ordinal] = 0
			if err = file.insertion(pic.Ins, read); err != nil {
				return
			}

		case format.PIC_COLLECTION:
			if fr.counts[pic.Ordinal] == notUsed {
				n, e := pic.Rep.Value(file.rt.Environ)
				if e != nil {
					return nil, e
				}
				if n < 0 {
					n = 0
				}
				fr.counts[pic.Ordinal] = n
				fr.prime(pic.Coll)
			}
			for fr.counts[pic.Ordinal] > 0 {
				if pat, err = file.walk(fr, pic.Coll, read); pat != nil || err != nil {
					return
				}
				fr.counts[pic.Ordinal]--
				if fr.counts[pic.Ordinal] > 0 {
					fr.prime(pic.Coll)
				}
			}

		case format.PIC_FORMAT:
			fr.counts[pic.Ordinal] = 0
			var body *format.Format
			if body, err = file.evalFormat(pic.Expr); err != nil {
				return
			}
			sub := file.openFrame(body, false)
			if pat, err = file.walk(sub, body.Pictures, read); pat != nil || err != nil {
				return
			}
			file.dropFrame()
		}
	}

	return nil, nil
}

// evalFormat evaluates the unit of an embedded-format pattern and
// compiles the text it yields.
func (file *File) evalFormat(expr string) (body *format.Format, err error) {
	text, err := format.EvalText(expr, file.rt.Environ)
	if err != nil {
		return
	}

	return format.Compile(text)
}

// purge plays out the remainder of the format in force at the end of
// a call: pending insertions execute, and every pattern never matched
// to a value raises the format error event. Exhaustion of the outer
// format fires the format end event as a notification; a restart vote
// means nothing when no value is waiting.
func (file *File) purge(read bool) (err error) {
	for len(file.frames) > 0 {
		fr := file.frames[len(file.frames)-1]

		pat, e := file.walk(fr, fr.body.Pictures, read)
		if e != nil {
			return e
		}
		if pat != nil {
			if !file.raise(EVT_FORMAT_ERROR) {
				return ErrResidual
			}
			continue
		}

		if fr.outer {
			file.raise(EVT_FORMAT_END)
		}
		file.dropFrame()
	}

	return
}

// push purges the staged formatted text to the file.
func (file *File) push() (err error) {
	pool := file.rt.Pool
	fed := pool.Fixed(buffer.Formatted)
	if pool.Empty(fed) {
		return
	}

	err = file.emit(pool.String(fed))
	pool.Reset(fed)

	return
}

// colIn is the column the next staged character lands in, counting
// both emitted and staged-but-unemitted text.
func (file *File) colIn() int {
	pool := file.rt.Pool
	runes := pool.Runes(pool.Fixed(buffer.Formatted))
	for n := len(runes) - 1; n >= 0; n-- {
		if runes[n] == NEWLINE_CHAR || runes[n] == FORMFEED_CHAR {
			return len(runes) - 1 - n
		}
	}

	return file.col + len(runes)
}

// insertion performs the items of ins in the given mood. A nil
// insertion is empty.
func (file *File) insertion(ins *format.Insertion, read bool) (err error) {
	if ins == nil {
		return
	}
	for _, item := range ins.Items {
		n, e := item.Rep.Value(file.rt.Environ)
		if e != nil {
			return e
		}
		if n < 0 {
			n = 0
		}
		if read {
			err = file.readInsItem(item, n)
		} else {
			err = file.writeInsItem(item, n)
		}
		if err != nil {
			return
		}
	}

	return
}

// writeInsItem stages one insertion item n times.
func (file *File) writeInsItem(item format.InsItem, n int) (err error) {
	pool := file.rt.Pool
	fed := pool.Fixed(buffer.Formatted)

	switch item.Kind {
	case format.INS_LITERAL:
		for ; n > 0; n-- {
			pool.AddString(fed, item.Text)
		}
	case format.INS_SPACE, format.INS_BLANK:
		for ; n > 0; n-- {
			pool.AddChar(fed, BLANK_CHAR)
		}
	case format.INS_BACKSPACE:
		for ; n > 0; n-- {
			if _, ok := pool.TrimChar(fed); ok {
				continue
			}
			if err = file.Backspace(); err != nil {
				return
			}
		}
	case format.INS_NEWLINE:
		for ; n > 0; n-- {
			pool.AddChar(fed, NEWLINE_CHAR)
		}
	case format.INS_NEWPAGE:
		for ; n > 0; n-- {
			pool.AddChar(fed, FORMFEED_CHAR)
		}
	case format.INS_COLUMN:
		for file.colIn() < n-1 {
			pool.AddChar(fed, BLANK_CHAR)
		}
	}

	return
}

// readInsItem consumes one insertion item n times from the input.
// Literal and blank insertions must match what the input holds;
// a mismatch raises the value error event with the offending
// character pushed back.
func (file *File) readInsItem(item format.InsItem, n int) (err error) {
	switch item.Kind {
	case format.INS_LITERAL:
		for ; n > 0; n-- {
			for _, want := range item.Text {
				ch, e := file.expectChar()
				if e != nil {
					return e
				}
				if ch != want {
					file.backChar(ch)
					return file.valueError(nil, string(ch), ErrInsertion)
				}
			}
		}
	case format.INS_SPACE:
		for ; n > 0; n-- {
			if _, err = file.expectChar(); err != nil {
				return
			}
		}
	case format.INS_BLANK:
		for ; n > 0; n-- {
			ch, e := file.expectChar()
			if e != nil {
				return e
			}
			if ch != BLANK_CHAR {
				file.backChar(ch)
				return file.valueError(nil, string(ch), ErrInsertion)
			}
		}
	case format.INS_BACKSPACE:
		for ; n > 0; n-- {
			if err = file.Backspace(); err != nil {
				return
			}
		}
	case format.INS_NEWLINE:
		for ; n > 0; n-- {
			if err = file.skipPast(NEWLINE_CHAR); err != nil {
				return
			}
		}
	case format.INS_NEWPAGE:
		for ; n > 0; n-- {
			if err = file.skipPast(FORMFEED_CHAR); err != nil {
				return
			}
		}
	case format.INS_COLUMN:
		for file.col < n-1 {
			ch, e := file.expectChar()
			if e != nil {
				return e
			}
			if ch == NEWLINE_CHAR || ch == FORMFEED_CHAR {
				file.backChar(ch)
				break
			}
		}
	}

	return
}

// PutFormat writes the items to the file under format control. A
// format item takes force for the patterns that follow; each value
// item consumes one pattern per scalar. At the end of the call the
// remaining format is purged.
func (file *File) PutFormat(items ...any) (err error) {
	if err = file.transition("putf", MOOD_WRITE); err != nil {
		return
	}

	pool := file.rt.Pool
	pool.Reset(pool.Fixed(buffer.Formatted))
	file.frames = file.frames[:0]

	for _, item := range items {
		switch x := item.(type) {
		case *format.Format:
			err = file.bind(x, false)
		case Layout:
			err = file.doLayout(x)
		default:
			v, ok := mode.Of(item)
			if !ok {
				return ErrItemType{Item: item}
			}
			err = file.putfValue(v)
		}
		if err != nil {
			return
		}
		if err = file.push(); err != nil {
			return
		}
	}

	if err = file.purge(false); err != nil {
		return
	}

	return file.push()
}

// GetFormat reads the items from the file under format control,
// mirroring PutFormat.
func (file *File) GetFormat(items ...any) (err error) {
	if err = file.transition("getf", MOOD_READ); err != nil {
		return
	}

	file.frames = file.frames[:0]

	for _, item := range items {
		switch x := item.(type) {
		case *format.Format:
			err = file.bind(x, true)
		case Layout:
			err = file.doLayout(x)
		default:
			if v, ok := mode.Of(item); ok && v.Mode != nil && v.Mode.Kind == mode.KIND_FORMAT {
				err = file.bind(v.Data.(*format.Format), true)
				break
			}
			err = file.getItem(item, file.getfValue)
		}
		if err != nil {
			return
		}
	}

	return file.purge(true)
}

// putfValue writes one value under pattern control. A row of CHAR is
// one string item; other rows, structures and unions dissect into one
// pattern per scalar.
func (file *File) putfValue(v mode.Value) (err error) {
	if !v.Initialised() {
		return ErrValue{Mode: v.Mode, Err: conv.ErrUninitialised}
	}

	switch v.Mode.Kind {
	case mode.KIND_FORMAT:
		return file.bind(v.Data.(*format.Format), false)

	case mode.KIND_ROW:
		r := v.Row()
		if v.Mode.Dim == 1 && v.Mode.Elem.Kind == mode.KIND_CHAR {
			return file.putfScalar(mode.StringValue(r.String()))
		}
		for elem := range r.All() {
			if err = file.putfValue(*elem); err != nil {
				return
			}
		}

	case mode.KIND_STRUCT:
		s := v.Struct()
		for n := range s.Fields {
			if err = file.putfValue(s.Fields[n]); err != nil {
				return
			}
		}

	case mode.KIND_UNION:
		u := v.United()
		if u.Value == nil {
			return ErrValue{Mode: v.Mode, Err: conv.ErrUninitialised}
		}
		return file.putfValue(*u.Value)

	default:
		return file.putfScalar(v)
	}

	return
}

// putfScalar matches one scalar to the next pattern of the format in
// force.
func (file *File) putfScalar(v mode.Value) (err error) {
	pat, err := file.nextPattern(false)
	if err != nil {
		return
	}
	if pat == nil {
		if file.form == nil {
			return ErrNoFormat
		}
		return ErrExhausted
	}

	return file.writePattern(pat, v)
}

// getfValue reads one value under pattern control, mirroring
// putfValue. A FORMAT value in a read list takes force like a format
// item.
func (file *File) getfValue(v *mode.Value) (err error) {
	switch v.Mode.Kind {
	case mode.KIND_FORMAT:
		if !v.Initialised() {
			return ErrValue{Mode: v.Mode, Err: conv.ErrUninitialised}
		}
		return file.bind(v.Data.(*format.Format), true)

	case mode.KIND_ROW:
		if !v.Initialised() {
			return ErrValue{Mode: v.Mode, Err: conv.ErrUninitialised}
		}
		r := v.Row()
		if v.Mode.Dim == 1 && v.Mode.Elem.Kind == mode.KIND_CHAR {
			return file.getfCharRow(r)
		}
		for elem := range r.All() {
			if err = file.getfValue(elem); err != nil {
				return
			}
		}

	case mode.KIND_STRUCT:
		if !v.Initialised() {
			return ErrValue{Mode: v.Mode, Err: conv.ErrUninitialised}
		}
		s := v.Struct()
		for n := range s.Fields {
			if err = file.getfValue(&s.Fields[n]); err != nil {
				return
			}
		}

	case mode.KIND_UNION:
		if !v.Initialised() {
			return ErrValue{Mode: v.Mode, Err: conv.ErrUninitialised}
		}
		u := v.United()
		if u.Value == nil {
			return ErrValue{Mode: v.Mode, Err: conv.ErrUninitialised}
		}
		return file.getfValue(u.Value)

	default:
		return file.getfScalar(v)
	}

	return
}

// getfScalar matches one scalar target to the next pattern of the
// format in force.
func (file *File) getfScalar(v *mode.Value) (err error) {
	pat, err := file.nextPattern(true)
	if err != nil {
		return
	}
	if pat == nil {
		if file.form == nil {
			return ErrNoFormat
		}
		return ErrExhausted
	}

	return file.readPattern(pat, v)
}

// getfCharRow reads one string pattern into a row of CHAR. A flexible
// row takes the bounds of what was read; a fixed row keeps its own,
// blank padded or truncated.
func (file *File) getfCharRow(r *mode.Row) (err error) {
	v := mode.Empty(mode.STRING)
	if err = file.getfScalar(&v); err != nil || !v.Initialised() {
		return
	}

	runes := []rune(v.Str())
	if r.Flex && len(runes) != len(r.Elems) {
		*r = *mode.CharRow(string(runes))
		r.Flex = true
		return
	}
	for n := range r.Elems {
		ch := rune(BLANK_CHAR)
		if n < len(runes) {
			ch = runes[n]
		}
		r.Elems[n] = mode.CharValue(ch)
	}

	return
}
