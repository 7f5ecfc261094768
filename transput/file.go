// Copyright 2025, the transput authors.

package transput

import (
	"bufio"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/NevilleDNZ/a68/buffer"
	"github.com/NevilleDNZ/a68/format"
)

// Mood is the transput direction a file has committed to. A freshly
// opened file is in undetermined mood and commits on its first
// transput operation; Reset returns it to undetermined.
type Mood int

//go:generate go tool stringer -linecomment -type=Mood
const (
	MOOD_NONE      = Mood(0) // undetermined
	MOOD_READ      = Mood(1) // read
	MOOD_WRITE     = Mood(2) // write
	MOOD_READ_BIN  = Mood(3) // read bin
	MOOD_WRITE_BIN = Mood(4) // write bin
	MOOD_DRAW      = Mood(5) // draw
)

// Characters carrying layout meaning on character channels.
const (
	NEWLINE_CHAR  = '\n'
	FORMFEED_CHAR = '\f'
	BLANK_CHAR    = ' '
)

// File is an open transput document: an operating system file, an
// associated string in memory, or an adopted standard stream.
type File struct {
	rt      *Runtime
	channel *Channel
	name    string
	term    string

	open      bool
	exclusive bool
	tmp       bool
	adopted   bool

	mood Mood
	eof  bool

	// Operating system backing. The reader and writer are created on
	// first use; at most one is live at a time.
	osf       *os.File
	r         *bufio.Reader
	w         *bufio.Writer
	flushLine bool

	// Associated string backing, with a rune cursor.
	text *string
	pos  int

	// Pushed-back input characters, drained before fresh input.
	queue buffer.Handle

	line, page, col int

	// Formatted transput state: the associated format body, which
	// persists across calls, and the activation frames of the call in
	// progress.
	form   *format.Format
	frames []*formatFrame

	events [EVT_COUNT]Proc
}

func (rt *Runtime) attach(name string, ch *Channel) (file *File, err error) {
	queue, err := rt.Pool.Get()
	if err != nil {
		return
	}

	file = &File{
		rt:      rt,
		channel: ch,
		name:    name,
		queue:   queue,
		line:    1,
		page:    1,
	}
	file.open = true

	rt.files = append(rt.files, file)

	if rt.Verbose {
		log.Printf("transput: open %v on %v", file.title(), ch)
	}

	return
}

// Open attaches the named document to a channel. The operating system
// file is not touched until the first transput operation commits the
// file to a mood.
func (rt *Runtime) Open(name string, ch *Channel) (*File, error) {
	return rt.attach(name, ch)
}

// Establish makes the named document anew. The first write creates it
// exclusively; an existing file of the same name is an open error.
func (rt *Runtime) Establish(name string, ch *Channel) (file *File, err error) {
	if !ch.Put {
		err = ErrChannel
		return
	}

	file, err = rt.attach(name, ch)
	if err != nil {
		return
	}

	file.exclusive = true
	return
}

// Create makes a scratch file. It is named on first physical open and
// removed again when the file is closed.
func (rt *Runtime) Create(ch *Channel) (file *File, err error) {
	if !ch.Put {
		err = ErrChannel
		return
	}

	file, err = rt.attach("", ch)
	if err != nil {
		return
	}

	file.tmp = true
	return
}

// Associate attaches a string in memory as a transput document. Reads
// consume it from the cursor; a write at the cursor replaces the tail.
func (rt *Runtime) Associate(text *string) (file *File, err error) {
	file, err = rt.attach("", AssociateChannel)
	if err != nil {
		return
	}

	file.text = text
	return
}

// title names the file for diagnostics.
func (file *File) title() string {
	switch {
	case file.name != "":
		return file.name
	case file.text != nil:
		return f("an associated string")
	}
	return file.channel.Name
}

// transition commits the file to a mood, physically opening the
// document if this is its first transput operation.
func (file *File) transition(op string, want Mood) (err error) {
	if !file.open {
		return ErrNotOpen
	}
	if file.mood == want {
		return
	}
	if file.mood != MOOD_NONE {
		return ErrMood{Op: op, Have: file.mood}
	}

	allowed := false
	switch want {
	case MOOD_READ:
		allowed = file.channel.Get
	case MOOD_WRITE:
		allowed = file.channel.Put
	case MOOD_READ_BIN:
		allowed = file.channel.Get && file.channel.Bin
	case MOOD_WRITE_BIN:
		allowed = file.channel.Put && file.channel.Bin
	case MOOD_DRAW:
		allowed = file.channel.Draw
	}
	if !allowed {
		return ErrChannel
	}

	if file.text == nil && file.osf == nil {
		if err = file.physOpen(want); err != nil {
			return
		}
	}

	file.mood = want
	return
}

func (file *File) physOpen(want Mood) (err error) {
	if file.tmp && file.name == "" {
		if file.name, err = file.rt.tempName(); err != nil {
			return
		}
	}

	flags := os.O_RDONLY
	if want == MOOD_WRITE || want == MOOD_WRITE_BIN {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
		if file.exclusive {
			flags |= os.O_EXCL
		}
	}

	osf, e := os.OpenFile(file.name, flags, 0o644)
	if e != nil && file.raise(EVT_OPEN_ERROR) {
		osf, e = os.OpenFile(file.name, flags, 0o644)
	}
	if e != nil {
		return ErrOpen{Name: file.name, Err: e}
	}

	file.osf = osf
	// Exclusivity binds creation only; Reset may reopen the file.
	file.exclusive = false
	return
}

const temp_alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// tempName generates an unused scratch file name of the shape
// <program>.XXXXXXXX.tmp.
func (rt *Runtime) tempName() (name string, err error) {
	for try := 0; try < 32; try++ {
		tag := make([]byte, 8)
		for n := range tag {
			tag[n] = temp_alphabet[rand.IntN(len(temp_alphabet))]
		}

		name = rt.Program + "." + string(tag) + ".tmp"
		if _, e := os.Lstat(name); e != nil {
			return
		}
	}

	name = ""
	err = ErrOpen{Name: rt.Program + ".*.tmp", Err: os.ErrExist}
	return
}

// Close detaches the file, flushing pending output and removing a
// scratch document. Closing a closed file does nothing.
func (file *File) Close() (err error) {
	if !file.open {
		return
	}

	err = file.shut()

	if file.tmp && file.name != "" {
		os.Remove(file.name)
	}

	file.detach()
	return
}

// Lock closes the file and bars the document from further access.
func (file *File) Lock() (err error) {
	if !file.open {
		return ErrNotOpen
	}

	if file.w != nil {
		if e := file.w.Flush(); e != nil {
			err = ErrTransput{Op: "flush", Name: file.title(), Err: e}
		}
		file.w = nil
	}

	if file.osf != nil && !file.adopted {
		if e := lockFile(file.osf); e != nil && err == nil {
			err = ErrTransput{Op: "lock", Name: file.title(), Err: e}
		}
	}

	if e := file.shut(); e != nil && err == nil {
		err = e
	}

	file.detach()
	return
}

// Erase deletes the document and detaches the file. An associated
// string is emptied in place.
func (file *File) Erase() (err error) {
	if !file.open {
		return ErrNotOpen
	}

	err = file.shut()

	switch {
	case file.text != nil:
		*file.text = ""
	case file.name != "" && !file.adopted:
		if e := os.Remove(file.name); e != nil && err == nil {
			err = ErrTransput{Op: "erase", Name: file.title(), Err: e}
		}
	}

	file.detach()
	return
}

// shut releases the operating system backing without detaching.
func (file *File) shut() (err error) {
	if file.w != nil {
		if e := file.w.Flush(); e != nil {
			err = ErrTransput{Op: "flush", Name: file.title(), Err: e}
		}
		file.w = nil
	}

	file.r = nil

	if file.osf != nil && !file.adopted {
		if e := file.osf.Close(); e != nil && err == nil {
			err = ErrTransput{Op: "close", Name: file.title(), Err: e}
		}
	}
	file.osf = nil

	return
}

func (file *File) detach() {
	file.open = false
	file.mood = MOOD_NONE
	file.eof = false
	file.frames = nil

	file.rt.Pool.Put(file.queue)

	files := file.rt.files
	for n, known := range files {
		if known == file {
			file.rt.files = append(files[:n], files[n+1:]...)
			break
		}
	}
}

// Reset rewinds the file to its beginning and returns it to
// undetermined mood. An operating system file is closed; the next
// transput operation reopens it, truncating on a write.
func (file *File) Reset() (err error) {
	if !file.open {
		return ErrNotOpen
	}
	if !file.channel.Reset {
		return ErrChannel
	}

	err = file.shut()

	file.mood = MOOD_NONE
	file.eof = false
	file.pos = 0
	file.line, file.page, file.col = 1, 1, 0
	file.frames = file.frames[:0]
	file.rt.Pool.Reset(file.queue)
	return
}

// Set moves the transput position by delta and returns the new
// absolute position. Moving outside the document raises the file end
// event; if mended the position is clamped to the nearer boundary.
// Positions count characters on an associated string and bytes on an
// operating system file.
func (file *File) Set(delta int64) (pos int64, err error) {
	if !file.open {
		err = ErrNotOpen
		return
	}
	if !file.channel.Set {
		err = ErrChannel
		return
	}

	if file.text != nil {
		return file.setText(delta)
	}
	if file.osf == nil {
		err = ErrMood{Op: "set", Have: file.mood}
		return
	}
	return file.setPhys(delta)
}

func (file *File) setText(delta int64) (pos int64, err error) {
	runes := []rune(*file.text)

	at := int64(file.pos - file.rt.Pool.Index(file.queue))
	pos = at + delta
	if pos < 0 || pos > int64(len(runes)) {
		if !file.raise(EVT_FILE_END) {
			pos = at
			err = ErrFileEnd
			return
		}
		pos = min(max(pos, 0), int64(len(runes)))
	}

	file.pos = int(pos)
	file.eof = false
	file.rt.Pool.Reset(file.queue)
	return
}

func (file *File) setPhys(delta int64) (pos int64, err error) {
	if file.w != nil {
		if e := file.w.Flush(); e != nil {
			err = ErrTransput{Op: "set", Name: file.title(), Err: e}
			return
		}
		file.w = nil
	}

	at, e := file.osf.Seek(0, io.SeekCurrent)
	if e != nil {
		err = ErrTransput{Op: "set", Name: file.title(), Err: e}
		return
	}
	if file.r != nil {
		at -= int64(file.r.Buffered())
	}
	at -= int64(file.rt.Pool.Index(file.queue))

	end, e := file.osf.Seek(0, io.SeekEnd)
	if e != nil {
		err = ErrTransput{Op: "set", Name: file.title(), Err: e}
		return
	}

	pos = at + delta
	if pos < 0 || pos > end {
		if !file.raise(EVT_FILE_END) {
			// The end probe moved the descriptor; going back to at
			// makes the buffered input stale.
			file.osf.Seek(at, io.SeekStart)
			file.r = nil
			file.rt.Pool.Reset(file.queue)
			pos = at
			err = ErrFileEnd
			return
		}
		pos = min(max(pos, 0), end)
	}

	if _, e = file.osf.Seek(pos, io.SeekStart); e != nil {
		err = ErrTransput{Op: "set", Name: file.title(), Err: e}
		return
	}

	file.r = nil
	file.eof = false
	file.rt.Pool.Reset(file.queue)
	return
}

// Backspace steps the transput position back one character.
func (file *File) Backspace() (err error) {
	_, err = file.Set(-1)
	return
}

// MakeTerm installs the terminator characters ending a string read.
func (file *File) MakeTerm(term string) {
	file.term = term
}

// Flush forces pending output to the operating system.
func (file *File) Flush() (err error) {
	if file.w == nil {
		return
	}
	if e := file.w.Flush(); e != nil {
		err = file.wound("flush", e)
	}
	return
}

// The capability queries of the standard prelude.

func (file *File) GetPossible() bool   { return file.channel.Get }
func (file *File) PutPossible() bool   { return file.channel.Put }
func (file *File) BinPossible() bool   { return file.channel.Bin }
func (file *File) ResetPossible() bool { return file.channel.Reset }
func (file *File) SetPossible() bool   { return file.channel.Set }
func (file *File) DrawPossible() bool  { return file.channel.Draw }
func (file *File) Compressible() bool  { return file.channel.Compress }

// Endfile reports whether input is exhausted. It holds until a Reset
// or Set clears it.
func (file *File) Endfile() bool { return file.eof }

func (file *File) Name() string { return file.name }
func (file *File) Mood() Mood   { return file.mood }

// Line, Page and Col report the current position on the document:
// page and line count from one, Col counts characters written to or
// read from the current line.
func (file *File) Line() int { return file.line }
func (file *File) Page() int { return file.page }
func (file *File) Col() int  { return file.col }

// emit writes text to the document in write mood, keeping the
// line, page and column accounts.
func (file *File) emit(text string) (err error) {
	for _, ch := range text {
		file.account(ch)
	}

	if file.text != nil {
		runes := []rune(*file.text)
		if file.pos > len(runes) {
			file.pos = len(runes)
		}
		*file.text = string(runes[:file.pos]) + text
		file.pos += len([]rune(text))
		return
	}

	if file.w == nil {
		file.w = bufio.NewWriter(file.osf)
	}

	if _, e := file.w.WriteString(text); e != nil {
		return file.wound("put", e)
	}

	if file.flushLine && strings.ContainsRune(text, NEWLINE_CHAR) {
		if e := file.w.Flush(); e != nil {
			return file.wound("put", e)
		}
	}

	return
}

// wound reports a failed operation on the backing document, giving
// the transput error event a chance to mend it.
func (file *File) wound(op string, e error) (err error) {
	if file.raise(EVT_TRANSPUT_ERROR) {
		return
	}
	return ErrTransput{Op: op, Name: file.title(), Err: e}
}
