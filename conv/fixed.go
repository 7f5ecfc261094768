package conv

import (
	"math"
	"math/big"
	"strconv"

	"github.com/NevilleDNZ/a68/mode"
)

// Fixed renders a numeric value in fixed point with after digits
// following the point. When the integral part does not fit, digits
// after the point are given up one at a time; only when the value
// still does not fit with none left does the field fill with error
// characters.
func Fixed(v mode.Value, width, after int) (string, error) {
	if !v.Initialised() {
		return "", ErrUninitialised
	}

	switch v.Mode.Kind {
	case mode.KIND_INT:
		if v.Mode.Prec == mode.PREC_SINGLE {
			return FixedFloat(float64(v.Int()), width, after), nil
		}
		x := new(big.Float).SetPrec(mode.FloatBits(v.Mode)).SetInt(v.BigInt())
		return FixedBig(x, width, after), nil
	case mode.KIND_REAL:
		if v.Mode.Prec == mode.PREC_SINGLE {
			return FixedFloat(v.Real(), width, after), nil
		}
		return FixedBig(v.BigReal(), width, after), nil
	default:
		return "", ErrNotNumeric
	}
}

// FixedFloat renders x per the package width conventions.
func FixedFloat(x float64, width, after int) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return specialField(x, width)
	}
	if after < 0 {
		after = 0
	}

	neg := x < 0
	a := math.Abs(x)

	if width == 0 {
		body := strconv.FormatFloat(a, 'f', after, 64)
		if neg {
			return "-" + body
		}
		return body
	}

	size := abs(width)
	sign := ""
	switch {
	case neg:
		sign = "-"
	case width > 0:
		sign = "+"
	}

	for d := after; d >= 0; d-- {
		body := strconv.FormatFloat(a, 'f', d, 64)
		if len(sign)+len(body) <= size {
			return spaces(size-len(sign)-len(body)) + sign + body
		}
	}

	return errorField(size)
}

// FixedBig renders a multiprecision real per the package width
// conventions.
func FixedBig(x *big.Float, width, after int) string {
	if x.IsInf() {
		inf := math.Inf(1)
		if x.Signbit() {
			inf = math.Inf(-1)
		}
		return specialField(inf, width)
	}
	if after < 0 {
		after = 0
	}

	neg := x.Sign() < 0
	a := new(big.Float).Abs(x)

	if width == 0 {
		body := a.Text('f', after)
		if neg {
			return "-" + body
		}
		return body
	}

	size := abs(width)
	sign := ""
	switch {
	case neg:
		sign = "-"
	case width > 0:
		sign = "+"
	}

	for d := after; d >= 0; d-- {
		body := a.Text('f', d)
		if len(sign)+len(body) <= size {
			return spaces(size-len(sign)-len(body)) + sign + body
		}
	}

	return errorField(size)
}

// specialField renders a NaN or infinity as its word string.
// Infinities follow the sign convention of the width; a NaN is never
// signed.
func specialField(x float64, width int) string {
	body := "NaN"
	switch {
	case math.IsInf(x, 1):
		body = "Inf"
		if width > 0 {
			body = "+Inf"
		}
	case math.IsInf(x, -1):
		body = "-Inf"
	}

	if width == 0 {
		return body
	}
	size := abs(width)
	if len(body) > size {
		return errorField(size)
	}

	return spaces(size-len(body)) + body
}
