package conv

import (
	"errors"
	"math/big"
	"strconv"
	"strings"
)

// Flip and flop are the character images of the two truth values, as
// in the standard prelude.
const (
	Flip = 'T'
	Flop = 'F'
)

// Flops renders the low width bits of w as a flip/flop row, most
// significant bit first.
func Flops(w uint64, width int) string {
	out := make([]byte, width)
	for n := range out {
		if w&(1<<uint(width-1-n)) != 0 {
			out[n] = Flip
		} else {
			out[n] = Flop
		}
	}

	return string(out)
}

// FlopsBig renders the low width bits of x as a flip/flop row.
func FlopsBig(x *big.Int, width int) string {
	out := make([]byte, width)
	for n := range out {
		if x.Bit(width-1-n) != 0 {
			out[n] = Flip
		} else {
			out[n] = Flop
		}
	}

	return string(out)
}

// Radix renders w as minimal digits in the given radix. Bits patterns
// admit any radix from 2 to 16; denotations stick to 2, 4, 8 and 16.
func Radix(w uint64, radix int) (string, error) {
	if radix < 2 || radix > 16 {
		return "", ErrRadix
	}

	return strconv.FormatUint(w, radix), nil
}

// RadixBig renders a multiprecision bits value as minimal digits in
// the given radix.
func RadixBig(x *big.Int, radix int) (string, error) {
	if radix < 2 || radix > 16 {
		return "", ErrRadix
	}

	return x.Text(radix), nil
}

// ParseRadix scans bare digits in the given radix, as read by a bits
// pattern whose replicator names the radix.
func ParseRadix(digits string, radix, width int) (uint64, error) {
	if radix < 2 || radix > 16 {
		return 0, ErrRadix
	}

	w, err := strconv.ParseUint(strings.ToLower(digits), radix, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, ErrBitsOverflow
		}
		return 0, ErrDenotation
	}
	if width < 64 && w>>uint(width) != 0 {
		return 0, ErrBitsOverflow
	}

	return w, nil
}

// ParseRadixBig scans bare digits in the given radix into a
// multiprecision bits value.
func ParseRadixBig(digits string, radix, width int) (*big.Int, error) {
	if radix < 2 || radix > 16 {
		return nil, ErrRadix
	}

	x := new(big.Int)
	if _, ok := x.SetString(strings.ToLower(digits), radix); !ok {
		return nil, ErrDenotation
	}
	if x.Sign() < 0 || x.BitLen() > width {
		return nil, ErrBitsOverflow
	}

	return x, nil
}

func radixOK(radix int) bool {
	return radix == 2 || radix == 4 || radix == 8 || radix == 16
}

// ParseBits scans a bits image of the given width: either a flip/flop
// row or a radix denotation such as 2r1010 or 16rff. A value needing
// more than width bits is an overflow.
func ParseBits(text string, width int) (uint64, error) {
	if r := strings.IndexByte(text, 'r'); r >= 0 {
		radix, digits, err := splitRadix(text, r)
		if err != nil {
			return 0, err
		}
		w, err := strconv.ParseUint(digits, radix, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return 0, ErrBitsOverflow
			}
			return 0, ErrDenotation
		}
		if width < 64 && w>>uint(width) != 0 {
			return 0, ErrBitsOverflow
		}
		return w, nil
	}

	if text == "" {
		return 0, ErrDenotation
	}
	var w uint64
	for _, c := range text {
		if w&(1<<63) != 0 {
			return 0, ErrBitsOverflow
		}
		switch c {
		case Flip:
			w = w<<1 | 1
		case Flop:
			w = w << 1
		default:
			return 0, ErrDenotation
		}
	}
	if width < 64 && w>>uint(width) != 0 {
		return 0, ErrBitsOverflow
	}

	return w, nil
}

// ParseBitsBig scans a bits image into a multiprecision value.
func ParseBitsBig(text string, width int) (*big.Int, error) {
	x := new(big.Int)

	if r := strings.IndexByte(text, 'r'); r >= 0 {
		radix, digits, err := splitRadix(text, r)
		if err != nil {
			return nil, err
		}
		if _, ok := x.SetString(strings.ToLower(digits), radix); !ok {
			return nil, ErrDenotation
		}
	} else {
		if text == "" {
			return nil, ErrDenotation
		}
		for n, c := range text {
			switch c {
			case Flip:
				x.SetBit(x, len(text)-1-n, 1)
			case Flop:
			default:
				return nil, ErrDenotation
			}
		}
	}

	if x.Sign() < 0 || x.BitLen() > width {
		return nil, ErrBitsOverflow
	}

	return x, nil
}

func splitRadix(text string, r int) (int, string, error) {
	radix, err := strconv.Atoi(text[:r])
	if err != nil || !radixOK(radix) {
		return 0, "", ErrRadix
	}
	digits := text[r+1:]
	if digits == "" {
		return 0, "", ErrDenotation
	}

	return radix, digits, nil
}
