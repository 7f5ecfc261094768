package mode

import (
	"math/big"
)

// Status carries the flag bits of a runtime value.
type Status uint8

const (
	INITIALISED = Status(1 << 0)
)

// Mantissa precision, in bits, of the multiprecision reals.
const (
	LONG_REAL_BITS      = 128
	LONG_LONG_REAL_BITS = 256
)

// FloatBits returns the big.Float mantissa precision of a real mode.
func FloatBits(m *Mode) uint {
	switch m.Prec {
	case PREC_LONG_LONG:
		return LONG_LONG_REAL_BITS
	default:
		return LONG_REAL_BITS
	}
}

// Value is a runtime value: a descriptor, a payload and status bits.
// The payload type depends on the descriptor:
//
//	INT        int64, or *big.Int when LONG or LONG LONG
//	REAL       float64, or *big.Float when LONG or LONG LONG
//	BOOL       bool
//	CHAR       rune
//	BITS       uint64, or *big.Int when LONG LONG
//	BYTES      string, blank padded to BYTES_WIDTH
//	COMPL      complex128, or LongComplex when LONG
//	STRING     string
//	ROW        *Row
//	STRUCT     *Structure
//	UNION      *United
//	FORMAT     opaque, owned by the format package
//	PROC       opaque closure
type Value struct {
	Status Status
	Mode   *Mode
	Data   any
}

// LongComplex is the payload of a LONG COMPL value.
type LongComplex struct {
	Re, Im *big.Float
}

// Initialised reports whether the value has been assigned to.
func (v *Value) Initialised() bool {
	return v.Status&INITIALISED != 0
}

// Clear marks the value as uninitialised and drops its payload.
func (v *Value) Clear() {
	v.Status &^= INITIALISED
	v.Data = nil
}

// Set installs a payload and marks the value initialised.
func (v *Value) Set(data any) {
	v.Status |= INITIALISED
	v.Data = data
}

// Empty returns an uninitialised value of mode m, ready to be read
// into.
func Empty(m *Mode) Value {
	return Value{Mode: m}
}

func made(m *Mode, data any) Value {
	return Value{Status: INITIALISED, Mode: m, Data: data}
}

func IntValue(i int64) Value          { return made(INT, i) }
func RealValue(x float64) Value       { return made(REAL, x) }
func BoolValue(b bool) Value          { return made(BOOL, b) }
func CharValue(c rune) Value          { return made(CHAR, c) }
func BitsValue(w uint64) Value        { return made(BITS, w) }
func ComplexValue(z complex128) Value { return made(COMPL, z) }
func StringValue(s string) Value      { return made(STRING, s) }

// BytesValue blank pads or truncates s to the fixed BYTES width.
func BytesValue(s string) Value {
	runes := []rune(s)
	if len(runes) > BYTES_WIDTH {
		runes = runes[:BYTES_WIDTH]
	}
	for len(runes) < BYTES_WIDTH {
		runes = append(runes, ' ')
	}

	return made(BYTES, string(runes))
}

func LongIntValue(m *Mode, x *big.Int) Value     { return made(m, x) }
func LongRealValue(m *Mode, x *big.Float) Value  { return made(m, x) }
func LongBitsValue(w uint64) Value               { return made(LONG_BITS, w) }
func LongLongBitsValue(x *big.Int) Value         { return made(LONG_LONG_BITS, x) }
func LongComplexValue(re, im *big.Float) Value   { return made(LONG_COMPL, LongComplex{Re: re, Im: im}) }
func FormatValue(compiled any) Value             { return made(FORMAT, compiled) }
func RowValue(r *Row) Value                      { return made(RowOf(r.Elem, len(r.Tuples)), r) }
func StructValue(s *Structure) Value             { return made(s.Mode, s) }
func UnitedValue(m *Mode, actual *Value) Value   { return made(m, &United{Value: actual}) }

// Int returns the payload of a single precision INT value.
func (v *Value) Int() int64 { return v.Data.(int64) }

// BigInt returns the payload of a LONG or LONG LONG INT value.
func (v *Value) BigInt() *big.Int { return v.Data.(*big.Int) }

// Real returns the payload of a single precision REAL value.
func (v *Value) Real() float64 { return v.Data.(float64) }

// BigReal returns the payload of a LONG or LONG LONG REAL value.
func (v *Value) BigReal() *big.Float { return v.Data.(*big.Float) }

func (v *Value) Bool() bool         { return v.Data.(bool) }
func (v *Value) Char() rune         { return v.Data.(rune) }
func (v *Value) Bits() uint64       { return v.Data.(uint64) }
func (v *Value) Complex() complex128 { return v.Data.(complex128) }
func (v *Value) Str() string        { return v.Data.(string) }
func (v *Value) Row() *Row          { return v.Data.(*Row) }
func (v *Value) Struct() *Structure { return v.Data.(*Structure) }
func (v *Value) United() *United    { return v.Data.(*United) }

// Of wraps a native Go datum as a Value. It recognises the types a
// transput item list is likely to contain; the second result is false
// for anything else.
func Of(datum any) (Value, bool) {
	switch x := datum.(type) {
	case Value:
		return x, true
	case *Value:
		return *x, true
	case int:
		return IntValue(int64(x)), true
	case int64:
		return IntValue(x), true
	case int32:
		return CharValue(x), true
	case uint64:
		return BitsValue(x), true
	case float64:
		return RealValue(x), true
	case bool:
		return BoolValue(x), true
	case string:
		return StringValue(x), true
	case complex128:
		return ComplexValue(x), true
	case *big.Int:
		return LongIntValue(LONG_INT, x), true
	case *big.Float:
		return LongRealValue(LONG_REAL, x), true
	case *Row:
		return RowValue(x), true
	case *Structure:
		return StructValue(x), true
	default:
		return Value{}, false
	}
}
