package transput

// Channel is the capability set of a class of files: which operations
// are legal on any file attached to it. Channels are compared by
// identity; a program normally uses the standard channels below and
// builds its own only for special devices.
type Channel struct {
	Name string

	// Reset allows rewinding, Set random positioning.
	Reset bool
	Set   bool

	// Get allows reading, Put writing, Bin binary transput on top of
	// either.
	Get bool
	Put bool
	Bin bool

	// Draw marks a display surface. No transput operation is legal on
	// a file in draw mood.
	Draw bool

	// Compress marks a channel whose lines may be stripped of
	// trailing blanks.
	Compress bool
}

func (ch *Channel) String() string {
	return ch.Name
}

// The standard channels.
var (
	StandInChannel   = &Channel{Name: "stand in channel", Get: true, Compress: true}
	StandOutChannel  = &Channel{Name: "stand out channel", Put: true, Compress: true}
	StandErrChannel  = &Channel{Name: "stand error channel", Put: true, Compress: true}
	StandBackChannel = &Channel{Name: "stand back channel", Reset: true, Set: true, Get: true, Put: true, Bin: true, Compress: true}
	StandDrawChannel = &Channel{Name: "stand draw channel", Draw: true}
	AssociateChannel = &Channel{Name: "associate channel", Reset: true, Set: true, Get: true, Put: true, Compress: true}
)
