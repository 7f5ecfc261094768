package conv

import (
	"errors"
	"math/big"
	"strconv"
)

// ScanInt scans an integral denotation: an optional sign and at least
// one digit.
func ScanInt(text string) (int64, error) {
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, ErrOutOfRange
		}
		return 0, ErrDenotation
	}

	return n, nil
}

// ScanIntBig scans an integral denotation of any length.
func ScanIntBig(text string) (*big.Int, error) {
	if !intShape(text) {
		return nil, ErrDenotation
	}

	x, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return nil, ErrDenotation
	}

	return x, nil
}

// ScanReal scans a real denotation: sign, digits with an optional
// fractional part, and an optional exponent part. A plain integral
// denotation is accepted, widened.
func ScanReal(text string) (float64, error) {
	if !realShape(text) {
		return 0, ErrDenotation
	}

	x, err := strconv.ParseFloat(text, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, ErrOutOfRange
		}
		return 0, ErrDenotation
	}

	return x, nil
}

// ScanRealBig scans a real denotation at the given mantissa precision.
func ScanRealBig(text string, prec uint) (*big.Float, error) {
	if !realShape(text) {
		return nil, ErrDenotation
	}

	x, _, err := big.ParseFloat(text, 10, prec, big.ToNearestEven)
	if err != nil {
		return nil, ErrDenotation
	}

	return x, nil
}

// ScanBool scans a truth value: the flip or flop character, nothing
// else.
func ScanBool(text string) (bool, error) {
	if len(text) == 1 {
		switch rune(text[0]) {
		case Flip:
			return true, nil
		case Flop:
			return false, nil
		}
	}

	return false, ErrDenotation
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func intShape(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for n := 0; n < len(s); n++ {
		if !isDigit(s[n]) {
			return false
		}
	}

	return true
}

// realShape admits the denotation grammar and nothing the platform
// parser would additionally take, such as inf, nan or hex floats.
func realShape(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	before := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		before++
	}

	after := -1
	if i < len(s) && s[i] == '.' {
		i++
		after = 0
		for i < len(s) && isDigit(s[i]) {
			i++
			after++
		}
	}

	if before == 0 && after <= 0 {
		return false
	}
	if after == 0 {
		return false
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for i < len(s) && isDigit(s[i]) {
			i++
			exp++
		}
		if exp == 0 {
			return false
		}
	}

	return i == len(s)
}
