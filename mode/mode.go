// Package mode describes Algol 68 modes and carries tagged runtime
// values of those modes. A Mode is an interned descriptor (scalar
// kinds, rows, structures, unions); a Value pairs a descriptor with a
// payload and a status word whose initialised bit gates every read.
package mode

import (
	"fmt"
	"iter"
	"maps"
	"strings"

	"github.com/NevilleDNZ/a68/translate"
)

var f = translate.From

// Kind classifies a mode.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_VOID    = Kind(0)  // VOID
	KIND_INT     = Kind(1)  // INT
	KIND_REAL    = Kind(2)  // REAL
	KIND_BOOL    = Kind(3)  // BOOL
	KIND_CHAR    = Kind(4)  // CHAR
	KIND_BITS    = Kind(5)  // BITS
	KIND_BYTES   = Kind(6)  // BYTES
	KIND_COMPLEX = Kind(7)  // COMPL
	KIND_STRING  = Kind(8)  // STRING
	KIND_ROW     = Kind(9)  // ROW
	KIND_STRUCT  = Kind(10) // STRUCT
	KIND_UNION   = Kind(11) // UNION
	KIND_FORMAT  = Kind(12) // FORMAT
	KIND_PROC    = Kind(13) // PROC
)

// Prec is the precision of a numeric or bits mode.
type Prec int

const (
	PREC_SINGLE    = Prec(0)
	PREC_LONG      = Prec(1)
	PREC_LONG_LONG = Prec(2)
)

// String returns the precision prefix, empty for single precision.
func (p Prec) String() string {
	switch p {
	case PREC_LONG:
		return "LONG"
	case PREC_LONG_LONG:
		return "LONG LONG"
	default:
		return ""
	}
}

// Default widths of the scalar modes. Numeric widths are decimal
// digits; bits widths are binary digits.
const (
	INT_WIDTH           = 19
	LONG_INT_WIDTH      = 38
	LONG_LONG_INT_WIDTH = 77

	REAL_WIDTH           = 15
	LONG_REAL_WIDTH      = 28
	LONG_LONG_REAL_WIDTH = 63

	EXP_WIDTH           = 3
	LONG_EXP_WIDTH      = 4
	LONG_LONG_EXP_WIDTH = 5

	BITS_WIDTH           = 32
	LONG_BITS_WIDTH      = 64
	LONG_LONG_BITS_WIDTH = 128

	BYTES_WIDTH = 32
)

// Mode is a mode descriptor. Scalar descriptors are the package-level
// singletons; composite descriptors come from RowOf, StructOf and
// UnionOf. Descriptors are never mutated after construction.
type Mode struct {
	Kind     Kind
	Prec     Prec
	Elem     *Mode   // row element
	Dim      int     // row dimensions
	Fields   []Field // structure fields, declaration order
	Variants []*Mode // union variants
}

// Field is one structure field.
type Field struct {
	Name string
	Mode *Mode
}

var (
	VOID   = &Mode{Kind: KIND_VOID}
	INT    = &Mode{Kind: KIND_INT}
	REAL   = &Mode{Kind: KIND_REAL}
	BOOL   = &Mode{Kind: KIND_BOOL}
	CHAR   = &Mode{Kind: KIND_CHAR}
	BITS   = &Mode{Kind: KIND_BITS}
	BYTES  = &Mode{Kind: KIND_BYTES}
	COMPL  = &Mode{Kind: KIND_COMPLEX}
	STRING = &Mode{Kind: KIND_STRING}
	FORMAT = &Mode{Kind: KIND_FORMAT}

	LONG_INT       = &Mode{Kind: KIND_INT, Prec: PREC_LONG}
	LONG_LONG_INT  = &Mode{Kind: KIND_INT, Prec: PREC_LONG_LONG}
	LONG_REAL      = &Mode{Kind: KIND_REAL, Prec: PREC_LONG}
	LONG_LONG_REAL = &Mode{Kind: KIND_REAL, Prec: PREC_LONG_LONG}
	LONG_COMPL     = &Mode{Kind: KIND_COMPLEX, Prec: PREC_LONG}
	LONG_BITS      = &Mode{Kind: KIND_BITS, Prec: PREC_LONG}
	LONG_LONG_BITS = &Mode{Kind: KIND_BITS, Prec: PREC_LONG_LONG}
)

// The width enquiries of the standard environment.
var _mode_defines = map[string]string{
	"int width":           fmt.Sprintf("%v", INT_WIDTH),
	"long int width":      fmt.Sprintf("%v", LONG_INT_WIDTH),
	"long long int width": fmt.Sprintf("%v", LONG_LONG_INT_WIDTH),

	"real width":           fmt.Sprintf("%v", REAL_WIDTH),
	"long real width":      fmt.Sprintf("%v", LONG_REAL_WIDTH),
	"long long real width": fmt.Sprintf("%v", LONG_LONG_REAL_WIDTH),

	"exp width":           fmt.Sprintf("%v", EXP_WIDTH),
	"long exp width":      fmt.Sprintf("%v", LONG_EXP_WIDTH),
	"long long exp width": fmt.Sprintf("%v", LONG_LONG_EXP_WIDTH),

	"bits width":           fmt.Sprintf("%v", BITS_WIDTH),
	"long bits width":      fmt.Sprintf("%v", LONG_BITS_WIDTH),
	"long long bits width": fmt.Sprintf("%v", LONG_LONG_BITS_WIDTH),

	"bytes width": fmt.Sprintf("%v", BYTES_WIDTH),
}

// Defines yields the width enquiries of the plain modes.
func Defines() iter.Seq2[string, string] {
	return maps.All(_mode_defines)
}

// RowOf describes a dim-dimensional row of elem.
func RowOf(elem *Mode, dim int) *Mode {
	if dim < 1 {
		dim = 1
	}

	return &Mode{Kind: KIND_ROW, Elem: elem, Dim: dim}
}

// StructOf describes a structure with the given fields.
func StructOf(fields ...Field) *Mode {
	return &Mode{Kind: KIND_STRUCT, Fields: fields}
}

// UnionOf describes a union over the given variants.
func UnionOf(variants ...*Mode) *Mode {
	return &Mode{Kind: KIND_UNION, Variants: variants}
}

// String spells the mode the way a diagnostic names it.
func (m *Mode) String() string {
	if m == nil {
		return f("(NIL mode)")
	}

	name := m.Kind.String()
	if m.Prec != PREC_SINGLE {
		name = m.Prec.String() + " " + name
	}

	switch m.Kind {
	case KIND_ROW:
		return "[" + strings.Repeat(",", m.Dim-1) + "] " + m.Elem.String()
	case KIND_STRUCT:
		parts := make([]string, len(m.Fields))
		for n, field := range m.Fields {
			parts[n] = field.Mode.String() + " " + field.Name
		}
		return "STRUCT (" + strings.Join(parts, ", ") + ")"
	case KIND_UNION:
		parts := make([]string, len(m.Variants))
		for n, variant := range m.Variants {
			parts[n] = variant.String()
		}
		return "UNION (" + strings.Join(parts, ", ") + ")"
	default:
		return name
	}
}

// BitsWidth returns the number of binary digits of a bits mode.
func (m *Mode) BitsWidth() int {
	switch m.Prec {
	case PREC_LONG:
		return LONG_BITS_WIDTH
	case PREC_LONG_LONG:
		return LONG_LONG_BITS_WIDTH
	default:
		return BITS_WIDTH
	}
}

// Digits returns the default number of significant decimal digits of a
// numeric mode.
func (m *Mode) Digits() int {
	switch m.Kind {
	case KIND_INT:
		switch m.Prec {
		case PREC_LONG:
			return LONG_INT_WIDTH
		case PREC_LONG_LONG:
			return LONG_LONG_INT_WIDTH
		default:
			return INT_WIDTH
		}
	default:
		switch m.Prec {
		case PREC_LONG:
			return LONG_REAL_WIDTH
		case PREC_LONG_LONG:
			return LONG_LONG_REAL_WIDTH
		default:
			return REAL_WIDTH
		}
	}
}

// ExpDigits returns the default exponent width of a real mode.
func (m *Mode) ExpDigits() int {
	switch m.Prec {
	case PREC_LONG:
		return LONG_EXP_WIDTH
	case PREC_LONG_LONG:
		return LONG_LONG_EXP_WIDTH
	default:
		return EXP_WIDTH
	}
}

// Numeric reports whether the mode is acceptable where a NUMBER is
// required.
func (m *Mode) Numeric() bool {
	return m.Kind == KIND_INT || m.Kind == KIND_REAL
}
