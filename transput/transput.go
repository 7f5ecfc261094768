// Copyright 2025, the transput authors.

// Package transput is the Algol 68 transput runtime: files attached
// to channels, unformatted, formatted and binary transput of the
// plain modes, and the event regime through which a program mends
// transput conditions.
package transput

import (
	"iter"
	"maps"
	"os"

	"github.com/mattn/go-isatty"
	"go.starlark.net/starlark"

	"github.com/NevilleDNZ/a68/buffer"
	"github.com/NevilleDNZ/a68/conv"
	"github.com/NevilleDNZ/a68/internal"
	"github.com/NevilleDNZ/a68/mode"
)

// Environment variables redirecting the standard files.
const (
	STANDIN_ENV    = "A68G_STANDIN"
	STANDOUT_ENV   = "A68G_STANDOUT"
	STANDERROR_ENV = "A68G_STANDERROR"
)

// Config shapes a Runtime. The zero value adopts the standard streams
// of the process.
type Config struct {
	// Program names the running program; scratch files are named
	// after it.
	Program string

	// Paths replacing the standard streams. An empty path falls back
	// to the redirecting environment variable, then to the stream of
	// the process.
	StandInPath    string
	StandOutPath   string
	StandErrorPath string

	Verbose bool
}

// Runtime owns the buffer pool, the set of open files and the four
// standard files.
type Runtime struct {
	Config

	// Environ binds the names format expressions may mention.
	Environ starlark.StringDict

	Pool *buffer.Pool

	StandIn    *File
	StandOut   *File
	StandError *File
	StandBack  *File

	files []*File
}

// New builds a transput runtime and opens the standard files.
func New(config Config) (rt *Runtime, err error) {
	if config.Program == "" {
		config.Program = "a68"
	}

	rt = &Runtime{
		Config:  config,
		Environ: starlark.StringDict{},
		Pool:    buffer.NewPool(),
	}

	rt.StandIn, err = rt.standFile(config.StandInPath, STANDIN_ENV, StandInChannel, os.Stdin, MOOD_READ)
	if err != nil {
		return
	}

	rt.StandOut, err = rt.standFile(config.StandOutPath, STANDOUT_ENV, StandOutChannel, os.Stdout, MOOD_WRITE)
	if err != nil {
		return
	}

	rt.StandError, err = rt.standFile(config.StandErrorPath, STANDERROR_ENV, StandErrChannel, os.Stderr, MOOD_WRITE)
	if err != nil {
		return
	}

	rt.StandBack, err = rt.Create(StandBackChannel)
	if err != nil {
		return
	}

	if rt.StandOut.adopted {
		rt.StandOut.flushLine = isatty.IsTerminal(os.Stdout.Fd())
	}
	rt.StandError.flushLine = true

	return
}

// standFile resolves one standard file: a configured path, then the
// environment, then the adopted stream of the process.
func (rt *Runtime) standFile(path, envKey string, ch *Channel, std *os.File, preset Mood) (file *File, err error) {
	if path == "" {
		path = os.Getenv(envKey)
	}

	if path != "" {
		return rt.Open(path, ch)
	}

	file, err = rt.attach("", ch)
	if err != nil {
		return
	}

	file.osf = std
	file.adopted = true
	file.mood = preset
	return
}

// The layout character enquiries of the standard environment.
var _transput_defines = map[string]string{
	"blank":    string(BLANK_CHAR),
	"newline":  string(NEWLINE_CHAR),
	"formfeed": string(FORMFEED_CHAR),
}

// Defines yields the environment enquiries: the layout characters,
// the mode widths and the conversion characters and bounds.
func (rt *Runtime) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_transput_defines),
		mode.Defines(),
		conv.Defines(),
	)
}

// Flush forces pending output on every open file.
func (rt *Runtime) Flush() (err error) {
	for _, file := range rt.files {
		if e := file.Flush(); e != nil && err == nil {
			err = e
		}
	}
	return
}

// Close closes every open file, scratch documents included.
func (rt *Runtime) Close() (err error) {
	for len(rt.files) > 0 {
		if e := rt.files[0].Close(); e != nil && err == nil {
			err = e
		}
	}
	return
}

// Layout is a transput item that moves the position on the document
// instead of moving a value.
type Layout int

//go:generate go tool stringer -linecomment -type=Layout
const (
	NewLine   = Layout(0) // new line
	NewPage   = Layout(1) // new page
	Space     = Layout(2) // space
	Backspace = Layout(3) // backspace
)

// Print writes the items to stand out.
func (rt *Runtime) Print(items ...any) error {
	return rt.StandOut.Put(items...)
}

// Read reads the items from stand in.
func (rt *Runtime) Read(items ...any) error {
	return rt.StandIn.Get(items...)
}

// Printf writes the items to stand out under the formats among them.
func (rt *Runtime) Printf(items ...any) error {
	return rt.StandOut.PutFormat(items...)
}

// Readf reads the items from stand in under the formats among them.
func (rt *Runtime) Readf(items ...any) error {
	return rt.StandIn.GetFormat(items...)
}

// WriteBin writes the items to stand back in binary.
func (rt *Runtime) WriteBin(items ...any) error {
	return rt.StandBack.PutBin(items...)
}

// ReadBin reads the items from stand back in binary.
func (rt *Runtime) ReadBin(items ...any) error {
	return rt.StandBack.GetBin(items...)
}
