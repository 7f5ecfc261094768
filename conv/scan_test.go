package conv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanInt(t *testing.T) {
	assert := assert.New(t)

	n, err := ScanInt("+42")
	assert.NoError(err)
	assert.Equal(int64(42), n)

	n, err = ScanInt("-007")
	assert.NoError(err)
	assert.Equal(int64(-7), n)

	_, err = ScanInt("")
	assert.ErrorIs(err, ErrDenotation)

	_, err = ScanInt("4 2")
	assert.ErrorIs(err, ErrDenotation)

	_, err = ScanInt("99999999999999999999")
	assert.ErrorIs(err, ErrOutOfRange)
}

func TestScanIntBig(t *testing.T) {
	assert := assert.New(t)

	x, err := ScanIntBig("-99999999999999999999")
	assert.NoError(err)
	assert.Equal("-99999999999999999999", x.String())

	_, err = ScanIntBig("12x")
	assert.ErrorIs(err, ErrDenotation)
}

func TestScanReal(t *testing.T) {
	assert := assert.New(t)

	x, err := ScanReal("3.14")
	assert.NoError(err)
	assert.InDelta(3.14, x, 1e-12)

	x, err = ScanReal("-2e-3")
	assert.NoError(err)
	assert.InDelta(-0.002, x, 1e-15)

	x, err = ScanReal(".5")
	assert.NoError(err)
	assert.InDelta(0.5, x, 1e-15)

	// Integral denotations widen.
	x, err = ScanReal("42")
	assert.NoError(err)
	assert.InDelta(42.0, x, 0)
}

func TestScanReal_RejectsPlatformExtras(t *testing.T) {
	assert := assert.New(t)

	for _, text := range []string{"inf", "+Inf", "nan", "0x1p3", "1_000", "4.", ".", "e5", "1e", ""} {
		_, err := ScanReal(text)
		assert.ErrorIs(err, ErrDenotation, text)
	}
}

func TestScanRealBig(t *testing.T) {
	assert := assert.New(t)

	x, err := ScanRealBig("1.5e2", 128)
	assert.NoError(err)
	assert.Equal("150", x.Text('f', 0))

	_, err = ScanRealBig("abc", 128)
	assert.ErrorIs(err, ErrDenotation)
}

func TestScanBool(t *testing.T) {
	assert := assert.New(t)

	b, err := ScanBool("T")
	assert.NoError(err)
	assert.True(b)

	b, err = ScanBool("F")
	assert.NoError(err)
	assert.False(b)

	_, err = ScanBool("true")
	assert.ErrorIs(err, ErrDenotation)
}
