package transput

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"math/big"

	"github.com/NevilleDNZ/a68/conv"
	"github.com/NevilleDNZ/a68/mode"
)

// Binary transput writes values in a fixed little endian shape, so
// that a file written on one machine reads back on any other:
//
//	INT      8 bytes, two's complement
//	REAL     8 bytes, IEEE 754 binary64
//	BOOL     1 byte
//	CHAR     4 bytes
//	BITS     8 bytes (single and LONG)
//	BYTES    32 characters of 4 bytes each
//	COMPL    two REAL fields
//	STRING   4 byte character count, then 4 bytes per character
//
// LONG INT, LONG REAL and their doubles carry a 4 byte length and the
// gob encoding of the multiprecision value. Rows, structures and
// unions write their elements in order with no framing.

// PutBin writes the items to the file in binary shape.
func (file *File) PutBin(items ...any) (err error) {
	if err = file.transition("put bin", MOOD_WRITE_BIN); err != nil {
		return
	}

	for _, item := range items {
		if lay, ok := item.(Layout); ok {
			return ErrItemType{Item: lay}
		}

		v, ok := mode.Of(item)
		if !ok {
			return ErrItemType{Item: item}
		}

		if err = file.putBinValue(v); err != nil {
			return
		}
	}

	return
}

// GetBin reads the items back from their binary shape.
func (file *File) GetBin(items ...any) (err error) {
	if err = file.transition("get bin", MOOD_READ_BIN); err != nil {
		return
	}

	for _, item := range items {
		if lay, ok := item.(Layout); ok {
			return ErrItemType{Item: lay}
		}

		if err = file.getItem(item, file.getBinValue); err != nil {
			return
		}
	}

	return
}

func le64(w uint64) []byte {
	p := make([]byte, 8)
	binary.LittleEndian.PutUint64(p, w)
	return p
}

func le32(w uint32) []byte {
	p := make([]byte, 4)
	binary.LittleEndian.PutUint32(p, w)
	return p
}

// binEmit writes raw bytes, outside the line and page accounts.
func (file *File) binEmit(p []byte) (err error) {
	if file.w == nil {
		file.w = bufio.NewWriter(file.osf)
	}

	if _, e := file.w.Write(p); e != nil {
		return file.wound("put bin", e)
	}
	return
}

// binBytes reads exactly n bytes, giving the file end event a chance
// to supply further input. A partial item abandoned at end of file is
// re-read whole if the event mends it.
func (file *File) binBytes(n int) (p []byte, err error) {
	if file.eof {
		err = ErrFileEnd
		return
	}

	if file.r == nil {
		file.r = bufio.NewReader(file.osf)
	}

	p = make([]byte, n)
	for {
		_, e := io.ReadFull(file.r, p)
		if e == nil {
			return
		}
		if e == io.EOF || e == io.ErrUnexpectedEOF {
			file.eof = true
			if !file.raise(EVT_FILE_END) || file.eof {
				err = ErrFileEnd
				return
			}
			continue
		}

		file.raise(EVT_TRANSPUT_ERROR)
		err = ErrTransput{Op: "get bin", Name: file.title(), Err: e}
		return
	}
}

func (file *File) putBinBig(x *big.Int) (err error) {
	p, e := x.GobEncode()
	if e != nil {
		return file.wound("put bin", e)
	}

	if err = file.binEmit(le32(uint32(len(p)))); err != nil {
		return
	}
	return file.binEmit(p)
}

func (file *File) putBinBigFloat(x *big.Float) (err error) {
	p, e := x.GobEncode()
	if e != nil {
		return file.wound("put bin", e)
	}

	if err = file.binEmit(le32(uint32(len(p)))); err != nil {
		return
	}
	return file.binEmit(p)
}

func (file *File) getBinBig(m *mode.Mode) (x *big.Int, err error) {
	p, err := file.binBytes(4)
	if err != nil {
		return
	}
	q, err := file.binBytes(int(binary.LittleEndian.Uint32(p)))
	if err != nil {
		return
	}

	x = new(big.Int)
	if e := x.GobDecode(q); e != nil {
		x = nil
		err = ErrValue{Mode: m, Err: e}
	}
	return
}

func (file *File) getBinBigFloat(m *mode.Mode) (x *big.Float, err error) {
	p, err := file.binBytes(4)
	if err != nil {
		return
	}
	q, err := file.binBytes(int(binary.LittleEndian.Uint32(p)))
	if err != nil {
		return
	}

	x = new(big.Float)
	if e := x.GobDecode(q); e != nil {
		x = nil
		err = ErrValue{Mode: m, Err: e}
	}
	return
}

func (file *File) putBinValue(v mode.Value) (err error) {
	if !v.Initialised() {
		return ErrValue{Mode: v.Mode, Err: conv.ErrUninitialised}
	}

	m := v.Mode
	switch m.Kind {
	case mode.KIND_ROW:
		for elem := range v.Row().All() {
			if err = file.putBinValue(*elem); err != nil {
				return
			}
		}
		return

	case mode.KIND_STRUCT:
		for _, field := range v.Struct().Fields {
			if err = file.putBinValue(field); err != nil {
				return
			}
		}
		return

	case mode.KIND_UNION:
		return file.putBinValue(*v.United().Value)

	case mode.KIND_INT:
		if m.Prec == mode.PREC_SINGLE {
			return file.binEmit(le64(uint64(v.Int())))
		}
		return file.putBinBig(v.BigInt())

	case mode.KIND_REAL:
		if m.Prec == mode.PREC_SINGLE {
			return file.binEmit(le64(math.Float64bits(v.Real())))
		}
		return file.putBinBigFloat(v.BigReal())

	case mode.KIND_BOOL:
		b := byte(0)
		if v.Bool() {
			b = 1
		}
		return file.binEmit([]byte{b})

	case mode.KIND_CHAR:
		return file.binEmit(le32(uint32(v.Char())))

	case mode.KIND_BITS:
		if m.Prec == mode.PREC_LONG_LONG {
			return file.putBinBig(v.BigInt())
		}
		return file.binEmit(le64(v.Bits()))

	case mode.KIND_BYTES:
		for _, ch := range v.Str() {
			if err = file.binEmit(le32(uint32(ch))); err != nil {
				return
			}
		}
		return

	case mode.KIND_COMPLEX:
		if m.Prec == mode.PREC_SINGLE {
			z := v.Complex()
			if err = file.binEmit(le64(math.Float64bits(real(z)))); err != nil {
				return
			}
			return file.binEmit(le64(math.Float64bits(imag(z))))
		}
		z := v.Data.(mode.LongComplex)
		if err = file.putBinBigFloat(z.Re); err != nil {
			return
		}
		return file.putBinBigFloat(z.Im)

	case mode.KIND_STRING:
		runes := []rune(v.Str())
		if err = file.binEmit(le32(uint32(len(runes)))); err != nil {
			return
		}
		for _, ch := range runes {
			if err = file.binEmit(le32(uint32(ch))); err != nil {
				return
			}
		}
		return
	}

	return ErrMode{Mode: m}
}

func (file *File) getBinValue(v *mode.Value) (err error) {
	m := v.Mode

	switch m.Kind {
	case mode.KIND_ROW:
		if !v.Initialised() {
			return ErrValue{Mode: m, Err: conv.ErrUninitialised}
		}
		for elem := range v.Row().All() {
			if err = file.getBinValue(elem); err != nil {
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
			if err = file.getBinValue(&s.Fields[n]); err != nil {
				return
			}
		}
		return

	case mode.KIND_UNION:
		if !v.Initialised() {
			return ErrValue{Mode: m, Err: conv.ErrUninitialised}
		}
		return file.getBinValue(v.United().Value)

	case mode.KIND_INT:
		if m.Prec == mode.PREC_SINGLE {
			p, e := file.binBytes(8)
			if e != nil {
				return e
			}
			v.Set(int64(binary.LittleEndian.Uint64(p)))
			return
		}
		x, e := file.getBinBig(m)
		if e != nil {
			return e
		}
		v.Set(x)
		return

	case mode.KIND_REAL:
		if m.Prec == mode.PREC_SINGLE {
			p, e := file.binBytes(8)
			if e != nil {
				return e
			}
			v.Set(math.Float64frombits(binary.LittleEndian.Uint64(p)))
			return
		}
		x, e := file.getBinBigFloat(m)
		if e != nil {
			return e
		}
		v.Set(x)
		return

	case mode.KIND_BOOL:
		p, e := file.binBytes(1)
		if e != nil {
			return e
		}
		v.Set(p[0] != 0)
		return

	case mode.KIND_CHAR:
		p, e := file.binBytes(4)
		if e != nil {
			return e
		}
		v.Set(rune(binary.LittleEndian.Uint32(p)))
		return

	case mode.KIND_BITS:
		if m.Prec == mode.PREC_LONG_LONG {
			x, e := file.getBinBig(m)
			if e != nil {
				return e
			}
			v.Set(x)
			return
		}
		p, e := file.binBytes(8)
		if e != nil {
			return e
		}
		v.Set(binary.LittleEndian.Uint64(p))
		return

	case mode.KIND_BYTES:
		p, e := file.binBytes(4 * mode.BYTES_WIDTH)
		if e != nil {
			return e
		}
		runes := make([]rune, mode.BYTES_WIDTH)
		for n := range runes {
			runes[n] = rune(binary.LittleEndian.Uint32(p[4*n:]))
		}
		v.Set(string(runes))
		return

	case mode.KIND_COMPLEX:
		if m.Prec == mode.PREC_SINGLE {
			p, e := file.binBytes(16)
			if e != nil {
				return e
			}
			re := math.Float64frombits(binary.LittleEndian.Uint64(p))
			im := math.Float64frombits(binary.LittleEndian.Uint64(p[8:]))
			v.Set(complex(re, im))
			return
		}
		re, e := file.getBinBigFloat(m)
		if e != nil {
			return e
		}
		im, e := file.getBinBigFloat(m)
		if e != nil {
			return e
		}
		v.Set(mode.LongComplex{Re: re, Im: im})
		return

	case mode.KIND_STRING:
		p, e := file.binBytes(4)
		if e != nil {
			return e
		}
		count := int(binary.LittleEndian.Uint32(p))

		runes := make([]rune, 0, min(count, 4096))
		for n := 0; n < count; n++ {
			q, e := file.binBytes(4)
			if e != nil {
				return e
			}
			runes = append(runes, rune(binary.LittleEndian.Uint32(q)))
		}
		v.Set(string(runes))
		return
	}

	return ErrMode{Mode: m}
}
