package conv

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlops(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("FFFFTFTF", Flops(0b1010, 8))
	assert.Equal("TTTT", Flops(0b1111, 4))
	assert.Equal("FFFF", Flops(0, 4))
}

func TestFlopsBig(t *testing.T) {
	assert := assert.New(t)

	x := new(big.Int).Lsh(big.NewInt(1), 70)
	row := FlopsBig(x, 72)
	assert.Len(row, 72)
	assert.Equal(byte(Flip), row[1])
	assert.Equal(byte(Flop), row[0])
	assert.Equal(byte(Flop), row[71])
}

func TestRadix(t *testing.T) {
	assert := assert.New(t)

	s, err := Radix(255, 16)
	assert.NoError(err)
	assert.Equal("ff", s)

	s, err = Radix(10, 2)
	assert.NoError(err)
	assert.Equal("1010", s)

	s, err = Radix(0, 8)
	assert.NoError(err)
	assert.Equal("0", s)

	s, err = Radix(100, 10)
	assert.NoError(err)
	assert.Equal("100", s)

	_, err = Radix(1, 17)
	assert.ErrorIs(err, ErrRadix)

	_, err = Radix(1, 1)
	assert.ErrorIs(err, ErrRadix)
}

func TestParseRadix(t *testing.T) {
	assert := assert.New(t)

	w, err := ParseRadix("FF", 16, 32)
	assert.NoError(err)
	assert.Equal(uint64(255), w)

	w, err = ParseRadix("777", 8, 32)
	assert.NoError(err)
	assert.Equal(uint64(0o777), w)

	_, err = ParseRadix("102", 2, 32)
	assert.ErrorIs(err, ErrDenotation)

	_, err = ParseRadix("ff", 16, 4)
	assert.ErrorIs(err, ErrBitsOverflow)

	x, err := ParseRadixBig("ffff", 16, 128)
	assert.NoError(err)
	assert.Equal("65535", x.String())

	_, err = ParseRadixBig("2", 2, 128)
	assert.ErrorIs(err, ErrDenotation)
}

func TestParseBits_Denotation(t *testing.T) {
	assert := assert.New(t)

	w, err := ParseBits("2r1010", 32)
	assert.NoError(err)
	assert.Equal(uint64(10), w)

	w, err = ParseBits("16rFF", 32)
	assert.NoError(err)
	assert.Equal(uint64(255), w)

	w, err = ParseBits("8r777", 32)
	assert.NoError(err)
	assert.Equal(uint64(511), w)

	_, err = ParseBits("3r12", 32)
	assert.ErrorIs(err, ErrRadix)

	_, err = ParseBits("2r", 32)
	assert.ErrorIs(err, ErrDenotation)

	_, err = ParseBits("2r99", 32)
	assert.ErrorIs(err, ErrDenotation)
}

func TestParseBits_Flops(t *testing.T) {
	assert := assert.New(t)

	w, err := ParseBits("TFTF", 8)
	assert.NoError(err)
	assert.Equal(uint64(10), w)

	// Leading flops widen the image, not the value.
	w, err = ParseBits("FFFFTT", 2)
	assert.NoError(err)
	assert.Equal(uint64(3), w)

	_, err = ParseBits("TFX", 8)
	assert.ErrorIs(err, ErrDenotation)

	_, err = ParseBits("", 8)
	assert.ErrorIs(err, ErrDenotation)
}

func TestParseBits_Overflow(t *testing.T) {
	assert := assert.New(t)

	_, err := ParseBits("16rff", 4)
	assert.ErrorIs(err, ErrBitsOverflow)

	_, err = ParseBits("TTTTT", 4)
	assert.ErrorIs(err, ErrBitsOverflow)
}

func TestParseBitsBig(t *testing.T) {
	assert := assert.New(t)

	x, err := ParseBitsBig("16rffffffffffffffffff", 128)
	assert.NoError(err)
	assert.Equal(72, x.BitLen())

	x, err = ParseBitsBig("TTFF", 64)
	assert.NoError(err)
	assert.Equal(int64(12), x.Int64())

	_, err = ParseBitsBig("2r111", 2)
	assert.ErrorIs(err, ErrBitsOverflow)
}

func TestBits_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	for _, w := range []uint64{0, 1, 10, 255, 0xdeadbeef} {
		row := Flops(w, 32)
		back, err := ParseBits(row, 32)
		assert.NoError(err)
		assert.Equal(w, back)
	}
}
