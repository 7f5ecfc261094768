// Copyright 2025, the transput authors.

// Package conv renders runtime values as character strings and scans
// character strings back into values, following the Revised Report
// conversion routines: whole, fixed and real formatting with their
// field-width conventions, radix conversion for bits, and the
// denotation grammars used when reading. All functions here are pure;
// file state, events and layout live in package transput.
//
// Width conventions, shared by Whole, Fixed and Real: a positive width
// yields a field of exactly width characters carrying an explicit sign;
// a negative width yields a field of -width characters whose sign
// appears only for negative values; width zero yields the shortest
// field that represents the value. A value that cannot be represented
// in the requested field yields a field of error characters rather
// than an error.
package conv

import (
	"errors"
	"iter"
	"maps"
	"math"
	"strconv"
	"strings"

	"github.com/NevilleDNZ/a68/translate"
)

var f = translate.From

// ErrorChar fills fields whose value cannot be represented in the
// width asked for.
const ErrorChar = '*'

// The character and bound enquiries of the standard environment.
var _conv_defines = map[string]string{
	"flip":       string(Flip),
	"flop":       string(Flop),
	"error char": string(ErrorChar),

	"max int":    strconv.FormatInt(math.MaxInt64, 10),
	"max real":   strconv.FormatFloat(math.MaxFloat64, 'g', -1, 64),
	"small real": strconv.FormatFloat(0x1p-52, 'g', -1, 64),
}

// Defines yields the character and bound enquiries of the conversion
// routines.
func Defines() iter.Seq2[string, string] {
	return maps.All(_conv_defines)
}

var (
	ErrUninitialised = errors.New(f("uninitialised value in transput"))
	ErrNotNumeric    = errors.New(f("value is not numeric"))
	ErrDenotation    = errors.New(f("malformed denotation"))
	ErrOutOfRange    = errors.New(f("denotation out of range"))
	ErrRadix         = errors.New(f("unsupported radix"))
	ErrBitsOverflow  = errors.New(f("bits value wider than its mode"))
)

func abs(n int) int {
	if n < 0 {
		return -n
	}

	return n
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}

	return strings.Repeat(" ", n)
}

// errorField is the Revised Report's answer to an impossible width
// request: the field arrives, filled with error characters.
func errorField(size int) string {
	if size <= 0 {
		size = 1
	}

	return strings.Repeat(string(ErrorChar), size)
}

func errorred(s string) bool {
	return strings.ContainsRune(s, ErrorChar)
}

// justify right-aligns sign+body in a field of size characters.
func justify(sign, body string, size int) string {
	if len(sign)+len(body) > size {
		return errorField(size)
	}

	return spaces(size-len(sign)-len(body)) + sign + body
}
