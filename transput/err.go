package transput

import (
	"errors"

	"github.com/NevilleDNZ/a68/format"
	"github.com/NevilleDNZ/a68/mode"
	"github.com/NevilleDNZ/a68/translate"
)

var f = translate.From

var (
	// Lifecycle errors
	ErrNotOpen = errors.New(f("file is not open"))
	ErrChannel = errors.New(f("channel does not allow this operation"))

	// Input errors
	ErrFileEnd   = errors.New(f("end of file"))
	ErrInsertion = errors.New(f("input does not match the insertion"))

	// Item list errors
	ErrItem = errors.New(f("item is not a transput value"))

	// Format errors
	ErrNoFormat  = errors.New(f("no format is associated with the file"))
	ErrExhausted = errors.New(f("format exhausted"))
	ErrResidual  = errors.New(f("purged format still held a pattern"))
	ErrChoice    = errors.New(f("choice is out of range"))
	ErrNoChoice  = errors.New(f("input matches no choice"))
)

// ErrMood reports a transput operation against a file whose mood does
// not admit it.
type ErrMood struct {
	Op   string
	Have Mood
}

func (err ErrMood) Error() string {
	return f("%v on a file in %v mood", err.Op, err.Have)
}

// ErrOpen reports a failed physical open.
type ErrOpen struct {
	Name string
	Err  error
}

func (err ErrOpen) Error() string {
	return f("cannot open %v: %v", err.Name, err.Err)
}

func (err ErrOpen) Unwrap() error {
	return err.Err
}

// ErrTransput reports a failed operation on the underlying file.
type ErrTransput struct {
	Op   string
	Name string
	Err  error
}

func (err ErrTransput) Error() string {
	return f("%v %v: %v", err.Op, err.Name, err.Err)
}

func (err ErrTransput) Unwrap() error {
	return err.Err
}

// ErrValue reports input text or an output value no conversion
// accepts.
type ErrValue struct {
	Mode *mode.Mode
	Text string
	Err  error
}

func (err ErrValue) Error() string {
	return f("cannot transput %q as %v: %v", err.Text, err.Mode, err.Err)
}

func (err ErrValue) Unwrap() error {
	return err.Err
}

// ErrItemType reports a Get or Put item outside the transput types.
type ErrItemType struct {
	Item any
}

func (err ErrItemType) Error() string {
	return f("cannot transput a %T", err.Item)
}

func (err ErrItemType) Unwrap() error {
	return ErrItem
}

// ErrMode reports an item whose mode has no transput.
type ErrMode struct {
	Mode *mode.Mode
}

func (err ErrMode) Error() string {
	return f("no transput for mode %v", err.Mode)
}

// ErrPattern reports a pattern applied to a value outside its kind.
type ErrPattern struct {
	Kind format.PatternKind
	Mode *mode.Mode
}

func (err ErrPattern) Error() string {
	return f("a %v pattern cannot transput %v", err.Kind, err.Mode)
}
