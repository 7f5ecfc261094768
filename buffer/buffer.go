// Package buffer provides the transput buffer pool: a fixed set of
// growable character buffers addressed by generational handles. Seven
// buffers serve fixed purposes for the runtime; the remainder form a
// free list claimed by open files and released on close.
package buffer

import (
	"errors"

	"github.com/NevilleDNZ/a68/translate"
)

var f = translate.From

var (
	// ErrTooManyFiles is returned when the free list is exhausted.
	ErrTooManyFiles = errors.New(f("too many open files"))
)

// Purpose identifies one of the fixed-purpose buffers.
type Purpose int

//go:generate go tool stringer -linecomment -type=Purpose
const (
	Pattern     = Purpose(0) // pattern
	Strings     = Purpose(1) // string
	Input       = Purpose(2) // input
	Output      = Purpose(3) // output
	Unformatted = Purpose(4) // unformatted
	Formatted   = Purpose(5) // formatted
	Edit        = Purpose(6) // edit

	fixedBuffers = 7
)

const (
	// MaxBuffers bounds the pool; fixedBuffers slots are reserved,
	// the rest are the free list shared by all open files.
	MaxBuffers = 64

	// InitialSize is the character capacity of a fresh buffer.
	InitialSize = 1024
)

// freeMarker flags an unclaimed free-list slot.
const freeMarker = -1

// Handle addresses one buffer in a pool. The generation field detects
// use of a handle whose slot has since been released and reclaimed.
type Handle struct {
	slot int
	gen  uint32
}

// buf is one pooled buffer. The character at [index] is always the NUL
// terminator, so cap(data) strictly exceeds index while claimed.
type buf struct {
	gen   uint32
	index int
	data  []rune
}

// Pool is the transput buffer pool. The zero value is not usable; call
// NewPool.
type Pool struct {
	bufs [MaxBuffers]buf
}

// NewPool creates a pool with the fixed-purpose buffers claimed and all
// free-list slots unclaimed.
func NewPool() (p *Pool) {
	p = &Pool{}

	for n := range p.bufs {
		b := &p.bufs[n]
		b.index = freeMarker
		if n < fixedBuffers {
			b.data = make([]rune, InitialSize)
			b.index = 0
		}
	}

	return
}

// Fixed returns the handle of a fixed-purpose buffer.
func (p *Pool) Fixed(which Purpose) Handle {
	return Handle{slot: int(which)}
}

// Get claims a free-list slot and returns its handle. The claimed
// buffer is reset. Exhaustion of the free list is an error.
func (p *Pool) Get() (h Handle, err error) {
	for n := fixedBuffers; n < MaxBuffers; n++ {
		b := &p.bufs[n]
		if b.index != freeMarker {
			continue
		}

		if b.data == nil {
			b.data = make([]rune, InitialSize)
		}
		b.index = 0
		b.data[0] = 0

		h = Handle{slot: n, gen: b.gen}
		return
	}

	err = ErrTooManyFiles
	return
}

// Put releases a claimed free-list slot back to the free list. The
// handle and any copies of it become stale. Fixed-purpose buffers
// cannot be released.
func (p *Pool) Put(h Handle) {
	b := p.claimed(h)
	if h.slot < fixedBuffers {
		panic(f("release of fixed transput buffer %v", Purpose(h.slot)))
	}

	b.index = freeMarker
	b.gen++
}

// claimed resolves a handle to its buffer, or panics: a stale or
// unclaimed handle is a caller contract violation.
func (p *Pool) claimed(h Handle) *buf {
	if h.slot < 0 || h.slot >= MaxBuffers {
		panic(f("transput buffer handle out of range"))
	}

	b := &p.bufs[h.slot]
	if b.gen != h.gen || b.index == freeMarker {
		panic(f("stale transput buffer handle"))
	}

	return b
}

// Size returns the buffer's current character capacity.
func (p *Pool) Size(h Handle) int {
	return len(p.claimed(h).data)
}

// Index returns the number of characters held.
func (p *Pool) Index(h Handle) int {
	return p.claimed(h).index
}

// Empty reports whether the buffer holds no characters.
func (p *Pool) Empty(h Handle) bool {
	return p.claimed(h).index == 0
}

// String returns the held characters as a string.
func (p *Pool) String(h Handle) string {
	b := p.claimed(h)
	return string(b.data[:b.index])
}

// Runes returns the held characters. The slice aliases pool storage
// and is valid only until the next operation on the same buffer.
func (p *Pool) Runes(h Handle) []rune {
	b := p.claimed(h)
	return b.data[:b.index]
}

// Reset discards the buffer's contents.
func (p *Pool) Reset(h Handle) {
	b := p.claimed(h)
	b.index = 0
	b.data[0] = 0
}

// Enlarge grows the buffer to at least size characters, preserving the
// held characters and the current index.
func (p *Pool) Enlarge(h Handle, size int) {
	b := p.claimed(h)
	if size <= len(b.data) {
		return
	}

	data := make([]rune, size)
	copy(data, b.data[:b.index+1])
	b.data = data
}

// AddChar appends one character. On overflow the buffer is enlarged
// tenfold and the append retried, keeping appends amortised constant.
func (p *Pool) AddChar(h Handle, ch rune) {
	b := p.claimed(h)
	if b.index+1 >= len(b.data) {
		p.Enlarge(h, len(b.data)*10)
		p.AddChar(h, ch)
		return
	}

	b.data[b.index] = ch
	b.index++
	b.data[b.index] = 0
}

// AddString appends every character of s in order.
func (p *Pool) AddString(h Handle, s string) {
	for _, ch := range s {
		p.AddChar(h, ch)
	}
}

// AddRunes appends every character of chars in order.
func (p *Pool) AddRunes(h Handle, chars []rune) {
	for _, ch := range chars {
		p.AddChar(h, ch)
	}
}

// PopChar removes and returns the first held character. It reports
// false on an empty buffer.
func (p *Pool) PopChar(h Handle) (ch rune, ok bool) {
	b := p.claimed(h)
	if b.index == 0 {
		return
	}

	ch = b.data[0]
	ok = true

	copy(b.data, b.data[1:b.index])
	b.index--
	b.data[b.index] = 0

	return
}

// TrimChar removes the last held character. It reports false on an
// empty buffer.
func (p *Pool) TrimChar(h Handle) (ch rune, ok bool) {
	b := p.claimed(h)
	if b.index == 0 {
		return
	}

	b.index--
	ch = b.data[b.index]
	ok = true
	b.data[b.index] = 0

	return
}

// UnChar prepends one character, so that it is the next PopChar result.
func (p *Pool) UnChar(h Handle, ch rune) {
	b := p.claimed(h)
	if b.index+1 >= len(b.data) {
		p.Enlarge(h, len(b.data)*10)
	}

	copy(b.data[1:b.index+1], b.data[:b.index])
	b.data[0] = ch
	b.index++
	b.data[b.index] = 0
}
