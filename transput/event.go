package transput

import "log"

// Event identifies a transput condition a file-local procedure can
// mend before the condition becomes an error.
type Event int

//go:generate go tool stringer -linecomment -type=Event
const (
	EVT_FILE_END       = Event(0) // file end
	EVT_PAGE_END       = Event(1) // page end
	EVT_LINE_END       = Event(2) // line end
	EVT_FORMAT_END     = Event(3) // format end
	EVT_VALUE_ERROR    = Event(4) // value error
	EVT_OPEN_ERROR     = Event(5) // open error
	EVT_TRANSPUT_ERROR = Event(6) // transput error
	EVT_FORMAT_ERROR   = Event(7) // format error
)

// EVT_COUNT sizes the per-file event table.
const EVT_COUNT = 8

// Proc is an event procedure. Returning true votes to continue: the
// condition counts as mended and the operation carries on. Returning
// false lets the operation fail with the condition's error.
type Proc func(*File) bool

// On installs proc for the given event, replacing any earlier
// procedure. A nil proc restores the default, which votes false.
func (file *File) On(event Event, proc Proc) {
	file.events[event] = proc
}

func (file *File) OnFileEnd(proc Proc)       { file.On(EVT_FILE_END, proc) }
func (file *File) OnPageEnd(proc Proc)       { file.On(EVT_PAGE_END, proc) }
func (file *File) OnLineEnd(proc Proc)       { file.On(EVT_LINE_END, proc) }
func (file *File) OnFormatEnd(proc Proc)     { file.On(EVT_FORMAT_END, proc) }
func (file *File) OnValueError(proc Proc)    { file.On(EVT_VALUE_ERROR, proc) }
func (file *File) OnOpenError(proc Proc)     { file.On(EVT_OPEN_ERROR, proc) }
func (file *File) OnTransputError(proc Proc) { file.On(EVT_TRANSPUT_ERROR, proc) }
func (file *File) OnFormatError(proc Proc)   { file.On(EVT_FORMAT_ERROR, proc) }

// raise consults the installed event procedure. An absent procedure
// votes false.
func (file *File) raise(event Event) bool {
	proc := file.events[event]
	if proc == nil {
		return false
	}

	if file.rt.Verbose {
		log.Printf("transput: %v event on %v", event, file.title())
	}

	return proc(file)
}
