// Copyright 2025, the transput authors.

// Package format compiles FORMAT texts into trees of pictures,
// patterns, frames and insertions, the shape the format interpreter
// walks. A compiled Format is immutable and shareable between files;
// all interpretation state (picture counters, replication counts)
// lives with the file that is walking it.
package format

// PictureKind classifies what a picture holds.
type PictureKind int

const (
	PIC_PATTERN    = PictureKind(0)
	PIC_INSERTION  = PictureKind(1)
	PIC_COLLECTION = PictureKind(2)
	PIC_FORMAT     = PictureKind(3)
)

// PatternKind classifies a pattern.
type PatternKind int

//go:generate go tool stringer -linecomment -type=PatternKind
const (
	PAT_GENERAL  = PatternKind(0) // general
	PAT_INTEGRAL = PatternKind(1) // integral
	PAT_REAL     = PatternKind(2) // real
	PAT_COMPLEX  = PatternKind(3) // complex
	PAT_BITS     = PatternKind(4) // bits
	PAT_STRING   = PatternKind(5) // string
	PAT_BOOL     = PatternKind(6) // boolean
	PAT_CHOICE   = PatternKind(7) // choice
	PAT_CSTYLE   = PatternKind(8) // c-style
)

// FrameKind classifies a mould frame.
type FrameKind int

//go:generate go tool stringer -linecomment -type=FrameKind
const (
	FRAME_Z     = FrameKind(0) // z
	FRAME_D     = FrameKind(1) // d
	FRAME_S     = FrameKind(2) // s
	FRAME_A     = FrameKind(3) // a
	FRAME_PLUS  = FrameKind(4) // +
	FRAME_MINUS = FrameKind(5) // -
	FRAME_POINT = FrameKind(6) // .
	FRAME_EXP   = FrameKind(7) // e
	FRAME_IMAG  = FrameKind(8) // i
)

// InsKind classifies an insertion item.
type InsKind int

const (
	INS_LITERAL   = InsKind(0)
	INS_SPACE     = InsKind(1) // x: any character on read
	INS_BLANK     = InsKind(2) // q: must be a blank on read
	INS_BACKSPACE = InsKind(3) // y
	INS_NEWLINE   = InsKind(4) // l
	INS_NEWPAGE   = InsKind(5) // p
	INS_COLUMN    = InsKind(6) // k: replicator is the column
)

// Format is a compiled format text: its top-level picture list and the
// size of the picture ordinal space, which sizes the per-file counter
// array.
type Format struct {
	Text     string
	Pictures []*Picture
	Count    int
}

// Picture is one element of a picture list. Ordinal numbers the
// pictures of the whole tree in depth-first order; Span is the number
// of ordinals the picture's subtree covers, itself included.
type Picture struct {
	Ordinal int
	Span    int
	Kind    PictureKind

	Rep     *Replicator // collection replicator
	Pattern *Pattern
	Ins     *Insertion
	Coll    []*Picture
	Expr    string // unit of an embedded-format pattern
}

// Pattern consumes or produces exactly one value. Pre is the insertion
// before the pattern; frames carry their own preceding insertions, and
// an insertion after a pattern compiles as a picture of its own.
type Pattern struct {
	Kind   PatternKind
	Pre    *Insertion
	Frames []*Frame

	Radix   *Replicator   // bits pattern
	Choices []*Insertion  // choice and boolean branches
	Args    []*Replicator // general pattern arguments

	// C-style pattern fields.
	Conv  byte
	Plus  bool
	Width int
	After int
}

// Frame is one mould frame, replicated Rep times (nil means once).
type Frame struct {
	Kind FrameKind
	Rep  *Replicator
	Ins  *Insertion // executed before the frame
}

// Insertion is a sequence of insertion items executed for their effect
// on the stream.
type Insertion struct {
	Items []InsItem
}

// InsItem is one insertion item.
type InsItem struct {
	Kind InsKind
	Rep  *Replicator
	Text string // literal text
}

// number walks the tree assigning picture ordinals and spans, and
// returns the first free ordinal.
func number(pics []*Picture, next int) int {
	for _, pic := range pics {
		pic.Ordinal = next
		next++
		if pic.Kind == PIC_COLLECTION {
			next = number(pic.Coll, next)
		}
		pic.Span = next - pic.Ordinal
	}

	return next
}

// Digits returns the effective digit capacity of the frames of kind k,
// static replicators summed. Dynamic replicators count once.
func (p *Pattern) Digits(k FrameKind) int {
	total := 0
	for _, frame := range p.Frames {
		if frame.Kind != k {
			continue
		}
		if frame.Rep == nil || frame.Rep.Expr != "" {
			total++
			continue
		}
		total += frame.Rep.N
	}

	return total
}
