package format

import (
	"errors"

	"github.com/NevilleDNZ/a68/translate"
)

var f = translate.From

var (
	ErrUnterminated = errors.New(f("unterminated format text"))
	ErrUnbalanced   = errors.New(f("unbalanced parentheses in format text"))
	ErrQuote        = errors.New(f("unterminated string insertion"))
	ErrEmptyPicture = errors.New(f("empty picture"))
	ErrDanglingRep  = errors.New(f("replicator precedes nothing"))
	ErrRadixPrefix  = errors.New(f("radix frame needs a replicator"))
	ErrMixedPicture = errors.New(f("picture holds more than one pattern"))
	ErrChoiceBranch = errors.New(f("choice pattern needs branches"))
	ErrBoolChoice   = errors.New(f("boolean pattern needs two branches"))
	ErrGeneralArgs  = errors.New(f("too many general pattern arguments"))
)

type ErrUnknownFrame rune

func (err ErrUnknownFrame) Error() string {
	return f("unknown format frame %q", rune(err))
}

type ErrRadixRange int

func (err ErrRadixRange) Error() string {
	return f("format radix %v out of range 2..16", int(err))
}

type ErrExpression string

func (err ErrExpression) Error() string {
	return f("format expression %q did not yield a value", string(err))
}

// ErrFormat wraps a compile error with the position it arose at.
type ErrFormat struct {
	Pos  int
	Text string
	Err  error
}

func (e *ErrFormat) Error() string {
	return f("format text %q, position %v: %v", e.Text, e.Pos, e.Err)
}

func (e *ErrFormat) Unwrap() error {
	return e.Err
}
