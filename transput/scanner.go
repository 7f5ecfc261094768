package transput

import (
	"bufio"
	"io"
)

// account moves the position bookkeeping over one transput character.
func (file *File) account(ch rune) {
	switch ch {
	case NEWLINE_CHAR:
		file.line++
		file.col = 0
	case FORMFEED_CHAR:
		file.page++
		file.line = 1
		file.col = 0
	default:
		file.col++
	}
}

// readChar returns the next input character, draining pushed-back
// characters before fresh input. End of input is the sticky ErrFileEnd.
func (file *File) readChar() (ch rune, err error) {
	if ch, ok := file.rt.Pool.PopChar(file.queue); ok {
		file.account(ch)
		return ch, nil
	}

	if file.eof {
		err = ErrFileEnd
		return
	}

	if file.text != nil {
		runes := []rune(*file.text)
		if file.pos >= len(runes) {
			file.eof = true
			err = ErrFileEnd
			return
		}

		ch = runes[file.pos]
		file.pos++
		file.account(ch)
		return
	}

	if file.r == nil {
		file.r = bufio.NewReader(file.osf)
	}

	ch, _, e := file.r.ReadRune()
	if e == io.EOF {
		file.eof = true
		err = ErrFileEnd
		return
	}
	if e != nil {
		// No character to mend the read with, so the event here is
		// notification only.
		file.raise(EVT_TRANSPUT_ERROR)
		err = ErrTransput{Op: "get", Name: file.title(), Err: e}
		return
	}

	file.account(ch)
	return
}

// backChar pushes ch back onto the input, to be re-read before fresh
// input. Pushing back clears the end-of-file condition.
func (file *File) backChar(ch rune) {
	file.eof = false
	file.rt.Pool.UnChar(file.queue, ch)

	switch ch {
	case NEWLINE_CHAR:
		if file.line > 1 {
			file.line--
		}
		file.col = 0
	case FORMFEED_CHAR:
		if file.page > 1 {
			file.page--
		}
		file.line = 1
		file.col = 0
	default:
		if file.col > 0 {
			file.col--
		}
	}
}

// expectChar reads one character, giving the file end event a chance
// to supply further input at end of file.
func (file *File) expectChar() (ch rune, err error) {
	for {
		ch, err = file.readChar()
		if err != ErrFileEnd {
			return
		}
		if !file.raise(EVT_FILE_END) || file.eof {
			return
		}
	}
}

// skipLayout consumes blanks and line and page ends up to the first
// character of a value.
func (file *File) skipLayout() (err error) {
	for {
		ch, e := file.readChar()
		if e == ErrFileEnd {
			if !file.raise(EVT_FILE_END) || file.eof {
				return e
			}
			continue
		}
		if e != nil {
			return e
		}

		switch ch {
		case BLANK_CHAR:
		case NEWLINE_CHAR:
			file.raise(EVT_LINE_END)
		case FORMFEED_CHAR:
			file.raise(EVT_PAGE_END)
		default:
			file.backChar(ch)
			return
		}
	}
}

// skipPast consumes input until mark has been consumed, counting the
// line and page ends crossed on the way.
func (file *File) skipPast(mark rune) (err error) {
	for {
		ch, e := file.readChar()
		if e == ErrFileEnd {
			if !file.raise(EVT_FILE_END) || file.eof {
				return e
			}
			continue
		}
		if e != nil {
			return e
		}

		if ch == mark {
			return
		}

		switch ch {
		case NEWLINE_CHAR:
			file.raise(EVT_LINE_END)
		case FORMFEED_CHAR:
			file.raise(EVT_PAGE_END)
		}
	}
}

// pick commits an undetermined file to the channel's natural mood, so
// that a layout operation can stand on its own.
func (file *File) pick() error {
	if file.mood != MOOD_NONE {
		return nil
	}
	if file.channel.Put {
		return file.transition("layout", MOOD_WRITE)
	}
	return file.transition("layout", MOOD_READ)
}

func (file *File) doLayout(item Layout) (err error) {
	if err = file.pick(); err != nil {
		return
	}

	switch file.mood {
	case MOOD_READ:
		switch item {
		case NewLine:
			return file.skipPast(NEWLINE_CHAR)
		case NewPage:
			return file.skipPast(FORMFEED_CHAR)
		case Space:
			return file.skipPast(BLANK_CHAR)
		case Backspace:
			return file.Backspace()
		}
	case MOOD_WRITE:
		switch item {
		case NewLine:
			return file.emit("\n")
		case NewPage:
			return file.emit("\f")
		case Space:
			return file.emit(" ")
		case Backspace:
			return file.Backspace()
		}
	default:
		return ErrMood{Op: item.String(), Have: file.mood}
	}
	return
}

// NewLine ends the current line: written as a newline character, read
// as a skip to just past the next one.
func (file *File) NewLine() error {
	return file.doLayout(NewLine)
}

// NewPage ends the current page.
func (file *File) NewPage() error {
	return file.doLayout(NewPage)
}

// Space writes one blank, or skips input to just past the next one.
func (file *File) Space() error {
	return file.doLayout(Space)
}
