package conv

import (
	"math/big"
	"strconv"

	"github.com/NevilleDNZ/a68/mode"
)

// Whole renders an integral value in the given width. A real value is
// rendered as Fixed with no digits after the point, as the Revised
// Report prescribes.
func Whole(v mode.Value, width int) (string, error) {
	if !v.Initialised() {
		return "", ErrUninitialised
	}

	switch v.Mode.Kind {
	case mode.KIND_INT:
		if v.Mode.Prec == mode.PREC_SINGLE {
			return WholeInt(v.Int(), width), nil
		}
		return WholeBig(v.BigInt(), width), nil
	case mode.KIND_REAL:
		return Fixed(v, width, 0)
	default:
		return "", ErrNotNumeric
	}
}

// WholeInt renders n per the package width conventions.
func WholeInt(n int64, width int) string {
	digits := strconv.FormatInt(n, 10)
	neg := n < 0
	if neg {
		digits = digits[1:]
	}

	return wholeField(neg, digits, width)
}

// WholeBig renders a multiprecision integer per the package width
// conventions.
func WholeBig(x *big.Int, width int) string {
	digits := x.String()
	neg := x.Sign() < 0
	if neg {
		digits = digits[1:]
	}

	return wholeField(neg, digits, width)
}

func wholeField(neg bool, digits string, width int) string {
	if width == 0 {
		if neg {
			return "-" + digits
		}
		return digits
	}

	sign := ""
	switch {
	case neg:
		sign = "-"
	case width > 0:
		sign = "+"
	}

	return justify(sign, digits, abs(width))
}
