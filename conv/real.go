package conv

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/NevilleDNZ/a68/mode"
)

// Real renders a numeric value in floating point: a fixed-point
// mantissa, the times-ten character 'e', and a signed exponent of at
// least expo digits. frmt standardises the mantissa: for frmt > 0 the
// exponent is forced to a multiple of frmt (1 gives scientific
// notation, 3 engineering), for frmt <= 0 the mantissa is scaled into
// [10^(-frmt-1), 10^(-frmt)). Digits after the point are given up one
// at a time when the field is too narrow, as in Fixed.
func Real(v mode.Value, width, after, expo, frmt int) (string, error) {
	if !v.Initialised() {
		return "", ErrUninitialised
	}

	switch v.Mode.Kind {
	case mode.KIND_INT:
		if v.Mode.Prec == mode.PREC_SINGLE {
			return RealFloat(float64(v.Int()), width, after, expo, frmt), nil
		}
		x := new(big.Float).SetPrec(mode.FloatBits(v.Mode)).SetInt(v.BigInt())
		return RealBig(x, width, after, expo, frmt), nil
	case mode.KIND_REAL:
		if v.Mode.Prec == mode.PREC_SINGLE {
			return RealFloat(v.Real(), width, after, expo, frmt), nil
		}
		return RealBig(v.BigReal(), width, after, expo, frmt), nil
	default:
		return "", ErrNotNumeric
	}
}

// RealFloat renders x per the package width conventions.
func RealFloat(x float64, width, after, expo, frmt int) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return specialField(x, width)
	}
	if after < 0 {
		after = 0
	}

	neg := x < 0
	mant, exp := frexp10(math.Abs(x))
	if x != 0 {
		mant, exp = standardise(mant, exp, frmt)
	}

	for d := after; d >= 0; d-- {
		m, e := mant, exp
		// Rounding at d digits can push the mantissa past its range.
		for x != 0 && tooWide(strconv.FormatFloat(m, 'f', d, 64), frmt) {
			step := 1
			if frmt > 0 {
				step = frmt
			}
			m /= math.Pow(10, float64(step))
			e += step
		}

		field := assembleReal(neg, strconv.FormatFloat(m, 'f', d, 64), e, width, expo)
		if field != "" {
			return field
		}
	}

	return errorField(abs(width))
}

// RealBig renders a multiprecision real per the package width
// conventions.
func RealBig(x *big.Float, width, after, expo, frmt int) string {
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
	mant, exp := frexp10Big(new(big.Float).Abs(x))
	if x.Sign() != 0 {
		mant, exp = standardiseBig(mant, exp, frmt)
	}

	for d := after; d >= 0; d-- {
		m, e := new(big.Float).Copy(mant), exp
		for x.Sign() != 0 && tooWide(m.Text('f', d), frmt) {
			step := 1
			if frmt > 0 {
				step = frmt
			}
			m.Quo(m, pow10Big(step, m.Prec()))
			e += step
		}

		field := assembleReal(neg, m.Text('f', d), e, width, expo)
		if field != "" {
			return field
		}
	}

	return errorField(abs(width))
}

// assembleReal joins mantissa and exponent in the overall field, or
// returns "" when the width cannot hold them.
func assembleReal(neg bool, body string, exp, width, expo int) string {
	tail := "e" + expField(exp, expo)

	if width == 0 {
		if neg {
			return "-" + body + tail
		}
		return body + tail
	}

	size := abs(width)
	sign := ""
	switch {
	case neg:
		sign = "-"
	case width > 0:
		sign = "+"
	}
	if len(sign)+len(body)+len(tail) > size {
		return ""
	}

	return spaces(size-len(sign)-len(body)-len(tail)) + sign + body + tail
}

// expField renders a signed exponent, zero padded to at least expo
// digits.
func expField(exp, expo int) string {
	sign := "+"
	if exp < 0 {
		sign, exp = "-", -exp
	}

	digits := strconv.Itoa(exp)
	if expo > len(digits) {
		digits = strings.Repeat("0", expo-len(digits)) + digits
	}

	return sign + digits
}

// tooWide reports whether a rendered mantissa has outgrown the range
// frmt standardises to.
func tooWide(body string, frmt int) bool {
	intLen := strings.IndexByte(body, '.')
	if intLen < 0 {
		intLen = len(body)
	}

	if frmt > 0 {
		return intLen > frmt
	}
	if frmt == 0 {
		return intLen != 1 || body[0] != '0'
	}

	return intLen > -frmt
}

// frexp10 splits a non-negative a into mant*10^exp with mant in
// [1, 10).
func frexp10(a float64) (float64, int) {
	if a == 0 {
		return 0, 0
	}

	exp := int(math.Floor(math.Log10(a)))
	mant := a / math.Pow(10, float64(exp))
	for mant >= 10 {
		mant /= 10
		exp++
	}
	for mant < 1 {
		mant *= 10
		exp--
	}

	return mant, exp
}

func standardise(mant float64, exp, frmt int) (float64, int) {
	if frmt > 0 {
		r := ((exp % frmt) + frmt) % frmt
		return mant * math.Pow(10, float64(r)), exp - r
	}

	s := -frmt - 1
	return mant * math.Pow(10, float64(s)), exp - s
}

func frexp10Big(a *big.Float) (*big.Float, int) {
	if a.Sign() == 0 {
		return a, 0
	}

	t := a.Text('e', 1)
	exp, _ := strconv.Atoi(t[strings.IndexByte(t, 'e')+1:])

	mant := new(big.Float).Quo(a, pow10Big(exp, a.Prec()))
	ten := new(big.Float).SetPrec(a.Prec()).SetInt64(10)
	one := new(big.Float).SetPrec(a.Prec()).SetInt64(1)
	for mant.Cmp(ten) >= 0 {
		mant.Quo(mant, ten)
		exp++
	}
	for mant.Cmp(one) < 0 {
		mant.Mul(mant, ten)
		exp--
	}

	return mant, exp
}

func standardiseBig(mant *big.Float, exp, frmt int) (*big.Float, int) {
	if frmt > 0 {
		r := ((exp % frmt) + frmt) % frmt
		if r != 0 {
			mant.Mul(mant, pow10Big(r, mant.Prec()))
		}
		return mant, exp - r
	}

	s := -frmt - 1
	if s != 0 {
		mant.Mul(mant, pow10Big(s, mant.Prec()))
	}

	return mant, exp - s
}

func pow10Big(n int, prec uint) *big.Float {
	if prec == 0 {
		prec = mode.LONG_REAL_BITS
	}

	p := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(abs(n))), nil)
	r := new(big.Float).SetPrec(prec).SetInt(p)
	if n < 0 {
		r.Quo(new(big.Float).SetPrec(prec).SetInt64(1), r)
	}

	return r
}
