package bench

import (
	"errors"

	"github.com/NevilleDNZ/a68/translate"
)

var f = translate.From

// ErrNoHash reports a file value used as a mapping key.
var ErrNoHash = errors.New(f("a file is unhashable"))

// ErrContents reports a contents query on a document holding no
// retrievable text.
var ErrContents = errors.New(f("file holds no retrievable contents"))

// ErrUsage reports a builtin called with the wrong shape of
// arguments.
type ErrUsage struct {
	Fn   string
	Want string
}

func (err ErrUsage) Error() string {
	return f("%v wants %v", err.Fn, err.Want)
}

// ErrItemArg reports a script value no transput item stands for.
type ErrItemArg struct {
	Type string
}

func (err ErrItemArg) Error() string {
	return f("no transput item for a %v", err.Type)
}

// ErrModeName reports a reading request naming no known mode.
type ErrModeName struct {
	Name string
}

func (err ErrModeName) Error() string {
	return f("no mode is called %q", err.Name)
}
