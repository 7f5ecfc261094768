package format

import (
	"log"
	"strconv"
	"strings"
	"unicode"
)

// Compiler compiles format texts into Format trees. The zero value is
// ready to use.
type Compiler struct {
	Verbose bool // If set, verbosely logs compiled formats.

	text []rune
	pos  int
}

// Compile compiles a format text with a throwaway Compiler.
func Compile(text string) (*Format, error) {
	c := Compiler{}
	return c.Compile(text)
}

// Compile compiles a format text, with or without its surrounding
// dollar delimiters.
func (c *Compiler) Compile(text string) (form *Format, err error) {
	defer func() {
		if err != nil {
			err = &ErrFormat{Pos: c.pos, Text: text, Err: err}
		}
	}()

	body := text
	if strings.HasPrefix(body, "$") {
		if len(body) < 2 || !strings.HasSuffix(body, "$") {
			return nil, ErrUnterminated
		}
		body = body[1 : len(body)-1]
	}

	c.text = []rune(body)
	c.pos = 0

	pics, err := c.list(0)
	if err != nil {
		return nil, err
	}

	form = &Format{Text: text, Pictures: pics}
	form.Count = number(pics, 0)

	if c.Verbose {
		log.Printf("format: compiled %q into %v pictures", text, form.Count)
	}

	return form, nil
}

func (c *Compiler) eof() bool { return c.pos >= len(c.text) }

func (c *Compiler) peek() rune {
	if c.eof() {
		return 0
	}

	return c.text[c.pos]
}

func (c *Compiler) skip() {
	for !c.eof() && unicode.IsSpace(c.text[c.pos]) {
		c.pos++
	}
}

// list parses comma separated sections up to term; term 0 is the end
// of the text.
func (c *Compiler) list(term rune) ([]*Picture, error) {
	var pics []*Picture

	for {
		sect, err := c.section(term)
		if err != nil {
			return nil, err
		}
		if len(sect) == 0 {
			return nil, ErrEmptyPicture
		}
		pics = append(pics, sect...)

		c.skip()
		if c.eof() {
			if term != 0 {
				return nil, ErrUnbalanced
			}
			return pics, nil
		}
		switch c.peek() {
		case term:
			c.pos++
			return pics, nil
		case ',':
			c.pos++
		default:
			// A stray closer at the wrong level.
			return nil, ErrUnbalanced
		}
	}
}

// section parses one comma section into its pictures: at most one
// pattern or collection, with standalone insertions around it.
func (c *Compiler) section(term rune) ([]*Picture, error) {
	var (
		out    []*Picture
		float  []InsItem
		frames []*Frame
		radix  *Replicator
		done   bool
		point  bool
		exp    bool
		imag   bool
		str    bool
	)

	flushIns := func() *Insertion {
		if len(float) == 0 {
			return nil
		}
		ins := &Insertion{Items: float}
		float = nil
		return ins
	}
	flushInsPicture := func() {
		if ins := flushIns(); ins != nil {
			out = append(out, &Picture{Kind: PIC_INSERTION, Ins: ins})
		}
	}
	emit := func(p *Pattern) {
		p.Pre = flushIns()
		out = append(out, &Picture{Kind: PIC_PATTERN, Pattern: p})
		done = true
	}
	finishFrames := func() {
		if len(frames) == 0 && radix == nil {
			return
		}
		kind := PAT_INTEGRAL
		switch {
		case radix != nil:
			kind = PAT_BITS
		case imag:
			kind = PAT_COMPLEX
		case point || exp:
			kind = PAT_REAL
		case str:
			kind = PAT_STRING
		}
		out = append(out, &Picture{Kind: PIC_PATTERN, Pattern: &Pattern{
			Kind:   kind,
			Frames: frames,
			Radix:  radix,
		}})
		frames, radix = nil, nil
	}

	for {
		c.skip()
		if c.eof() || c.peek() == ',' || c.peek() == ')' || c.peek() == term {
			break
		}

		rep, err := c.maybeRep()
		if err != nil {
			return nil, err
		}
		c.skip()
		if c.eof() {
			return nil, ErrDanglingRep
		}

		frame := func(kind FrameKind) {
			c.pos++
			frames = append(frames, &Frame{Kind: kind, Rep: rep, Ins: flushIns()})
		}
		item := func(kind InsKind) {
			c.pos++
			float = append(float, InsItem{Kind: kind, Rep: rep})
		}

		switch r := unicode.ToLower(c.peek()); r {
		case '"':
			text, err := c.literal()
			if err != nil {
				return nil, err
			}
			float = append(float, InsItem{Kind: INS_LITERAL, Rep: rep, Text: text})

		case 'x':
			item(INS_SPACE)
		case 'q':
			item(INS_BLANK)
		case 'y':
			item(INS_BACKSPACE)
		case 'l':
			item(INS_NEWLINE)
		case 'p':
			item(INS_NEWPAGE)
		case 'k':
			item(INS_COLUMN)

		case 'z':
			if done {
				return nil, ErrMixedPicture
			}
			frame(FRAME_Z)
		case 'd':
			if done {
				return nil, ErrMixedPicture
			}
			frame(FRAME_D)
		case 's':
			if done {
				return nil, ErrMixedPicture
			}
			frame(FRAME_S)
		case 'a':
			if done {
				return nil, ErrMixedPicture
			}
			str = true
			frame(FRAME_A)
		case '+':
			if done {
				return nil, ErrMixedPicture
			}
			frame(FRAME_PLUS)
		case '-':
			if done {
				return nil, ErrMixedPicture
			}
			frame(FRAME_MINUS)
		case '.':
			if done {
				return nil, ErrMixedPicture
			}
			point = true
			frame(FRAME_POINT)
		case 'e':
			if done {
				return nil, ErrMixedPicture
			}
			exp = true
			frame(FRAME_EXP)
		case 'i':
			if done {
				return nil, ErrMixedPicture
			}
			imag = true
			frame(FRAME_IMAG)

		case 'r':
			if done || radix != nil {
				return nil, ErrMixedPicture
			}
			if rep == nil {
				return nil, ErrRadixPrefix
			}
			if rep.Expr == "" && (rep.N < 2 || rep.N > 16) {
				return nil, ErrRadixRange(rep.N)
			}
			c.pos++
			radix = rep

		case '(':
			if done || len(frames) > 0 {
				return nil, ErrMixedPicture
			}
			flushInsPicture()
			c.pos++
			coll, err := c.list(')')
			if err != nil {
				return nil, err
			}
			out = append(out, &Picture{Kind: PIC_COLLECTION, Rep: rep, Coll: coll})
			done = true

		case 'b':
			if done || len(frames) > 0 {
				return nil, ErrMixedPicture
			}
			if rep != nil {
				return nil, ErrDanglingRep
			}
			c.pos++
			p := &Pattern{Kind: PAT_BOOL}
			c.skip()
			if c.peek() == '(' {
				branches, err := c.branches()
				if err != nil {
					return nil, err
				}
				if len(branches) != 2 {
					return nil, ErrBoolChoice
				}
				p.Choices = branches
			}
			emit(p)

		case 'c':
			if done || len(frames) > 0 {
				return nil, ErrMixedPicture
			}
			if rep != nil {
				return nil, ErrDanglingRep
			}
			c.pos++
			c.skip()
			if c.peek() != '(' {
				return nil, ErrChoiceBranch
			}
			branches, err := c.branches()
			if err != nil {
				return nil, err
			}
			emit(&Pattern{Kind: PAT_CHOICE, Choices: branches})

		case 'g', 'h':
			if done || len(frames) > 0 {
				return nil, ErrMixedPicture
			}
			if rep != nil {
				return nil, ErrDanglingRep
			}
			c.pos++
			p := &Pattern{Kind: PAT_GENERAL, Conv: byte(r)}
			c.skip()
			if c.peek() == '(' {
				args, err := c.arguments()
				if err != nil {
					return nil, err
				}
				limit := 3
				if r == 'h' {
					limit = 4
				}
				if len(args) > limit {
					return nil, ErrGeneralArgs
				}
				p.Args = args
			}
			emit(p)

		case '%':
			if done || len(frames) > 0 {
				return nil, ErrMixedPicture
			}
			if rep != nil {
				return nil, ErrDanglingRep
			}
			p, err := c.cstyle()
			if err != nil {
				return nil, err
			}
			emit(p)

		case 'f':
			if done || len(frames) > 0 {
				return nil, ErrMixedPicture
			}
			if rep != nil {
				return nil, ErrDanglingRep
			}
			c.pos++
			c.skip()
			if c.peek() != '(' {
				return nil, ErrUnknownFrame('f')
			}
			expr, err := c.capture()
			if err != nil {
				return nil, err
			}
			flushInsPicture()
			out = append(out, &Picture{Kind: PIC_FORMAT, Expr: expr})
			done = true

		default:
			return nil, ErrUnknownFrame(r)
		}
	}

	finishFrames()
	flushInsPicture()

	return out, nil
}

// maybeRep parses a replicator if one is present: digits, or a
// dynamic n(expr).
func (c *Compiler) maybeRep() (*Replicator, error) {
	c.skip()
	if c.eof() {
		return nil, nil
	}

	if unicode.IsDigit(c.peek()) {
		start := c.pos
		for !c.eof() && unicode.IsDigit(c.peek()) {
			c.pos++
		}
		n, err := strconv.Atoi(string(c.text[start:c.pos]))
		if err != nil {
			return nil, ErrDanglingRep
		}
		return &Replicator{N: n}, nil
	}

	if unicode.ToLower(c.peek()) == 'n' {
		save := c.pos
		c.pos++
		c.skip()
		if c.peek() != '(' {
			// Not a replicator after all.
			c.pos = save
			return nil, nil
		}
		expr, err := c.capture()
		if err != nil {
			return nil, err
		}
		return &Replicator{Expr: strings.TrimSpace(expr)}, nil
	}

	return nil, nil
}

// literal parses a quoted insertion; a doubled quote is a quote.
func (c *Compiler) literal() (string, error) {
	c.pos++

	var sb strings.Builder
	for {
		if c.eof() {
			return "", ErrQuote
		}
		r := c.text[c.pos]
		c.pos++
		if r != '"' {
			sb.WriteRune(r)
			continue
		}
		if !c.eof() && c.peek() == '"' {
			sb.WriteRune('"')
			c.pos++
			continue
		}
		return sb.String(), nil
	}
}

// capture consumes a parenthesised expression, returning its text.
func (c *Compiler) capture() (string, error) {
	c.pos++
	start := c.pos
	depth := 1

	for !c.eof() {
		switch c.text[c.pos] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				expr := string(c.text[start:c.pos])
				c.pos++
				return expr, nil
			}
		}
		c.pos++
	}

	return "", ErrUnbalanced
}

// branches parses the parenthesised branches of a choice or boolean
// pattern; each branch is an insertion.
func (c *Compiler) branches() ([]*Insertion, error) {
	c.pos++

	var out []*Insertion
	var items []InsItem

	for {
		c.skip()
		if c.eof() {
			return nil, ErrUnbalanced
		}

		switch c.peek() {
		case ',':
			c.pos++
			out = append(out, &Insertion{Items: items})
			items = nil
			continue
		case ')':
			c.pos++
			out = append(out, &Insertion{Items: items})
			return out, nil
		}

		rep, err := c.maybeRep()
		if err != nil {
			return nil, err
		}
		c.skip()
		if c.eof() {
			return nil, ErrUnbalanced
		}

		switch r := unicode.ToLower(c.peek()); r {
		case '"':
			text, err := c.literal()
			if err != nil {
				return nil, err
			}
			items = append(items, InsItem{Kind: INS_LITERAL, Rep: rep, Text: text})
		case 'x':
			c.pos++
			items = append(items, InsItem{Kind: INS_SPACE, Rep: rep})
		case 'q':
			c.pos++
			items = append(items, InsItem{Kind: INS_BLANK, Rep: rep})
		case 'y':
			c.pos++
			items = append(items, InsItem{Kind: INS_BACKSPACE, Rep: rep})
		case 'l':
			c.pos++
			items = append(items, InsItem{Kind: INS_NEWLINE, Rep: rep})
		case 'p':
			c.pos++
			items = append(items, InsItem{Kind: INS_NEWPAGE, Rep: rep})
		case 'k':
			c.pos++
			items = append(items, InsItem{Kind: INS_COLUMN, Rep: rep})
		default:
			return nil, ErrUnknownFrame(r)
		}
	}
}

// arguments parses the argument list of a general pattern; each
// argument is an expression evaluated at interpretation time.
func (c *Compiler) arguments() ([]*Replicator, error) {
	text, err := c.capture()
	if err != nil {
		return nil, err
	}

	var args []*Replicator
	depth := 0
	start := 0
	for n, r := range text {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, &Replicator{Expr: strings.TrimSpace(text[start:n])})
				start = n + 1
			}
		}
	}
	args = append(args, &Replicator{Expr: strings.TrimSpace(text[start:])})

	return args, nil
}

// cstyle parses a printf-like pattern: %[+][width][.after]{d,f,e,s}.
func (c *Compiler) cstyle() (*Pattern, error) {
	c.pos++
	p := &Pattern{Kind: PAT_CSTYLE, After: -1}

	if c.peek() == '+' {
		p.Plus = true
		c.pos++
	}
	for !c.eof() && unicode.IsDigit(c.peek()) {
		p.Width = p.Width*10 + int(c.peek()-'0')
		c.pos++
	}
	if c.peek() == '.' {
		c.pos++
		p.After = 0
		for !c.eof() && unicode.IsDigit(c.peek()) {
			p.After = p.After*10 + int(c.peek()-'0')
			c.pos++
		}
	}

	switch r := unicode.ToLower(c.peek()); r {
	case 'd', 'f', 'e', 's':
		c.pos++
		p.Conv = byte(r)
	default:
		return nil, ErrUnknownFrame(r)
	}

	if p.After < 0 {
		p.After = 0
		if p.Conv == 'f' || p.Conv == 'e' {
			p.After = 6
		}
	}

	return p, nil
}
