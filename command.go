package svg2gcode

// Command is one motion or mode command of a program. The set of
// commands is closed: LinearMove, ArcMove, ToolOn, ToolOff, SetMode,
// Comment and Raw.
type Command interface {
	isCommand()
}

// DistanceMode is how coordinates of later moves are interpreted.
type DistanceMode int

// Distance modes. The zero value means the mode is not known yet.
const (
	Absolute DistanceMode = iota + 1
	Relative
)

func (m DistanceMode) String() string {
	switch m {
	case Absolute:
		return "absolute"
	case Relative:
		return "relative"
	}
	return "unknown"
}

// Direction is the turning direction of an arc.
type Direction int

// Arc directions, seen with y pointing up.
const (
	Clockwise Direction = iota + 1
	CounterClockwise
)

func (d Direction) String() string {
	if d == Clockwise {
		return "cw"
	}
	return "ccw"
}

// LinearMove moves in a straight line. A nil Feedrate is a rapid move
// with the tool off.
type LinearMove struct {
	To       Point
	Feedrate *float64
}

// ArcMove moves along a circular arc. Center is relative to the start of
// the arc.
type ArcMove struct {
	To        Point
	Center    Point
	Direction Direction
	Feedrate  *float64
}

// ToolOn engages the tool. Sequence holds the machine specific lines.
type ToolOn struct {
	Sequence []string
}

// ToolOff disengages the tool.
type ToolOff struct {
	Sequence []string
}

// SetMode switches the distance mode.
type SetMode struct {
	Mode DistanceMode
}

// Comment carries text from the document into the output.
type Comment struct {
	Text string
}

// Raw is literal program text, such as begin and end sequences.
type Raw struct {
	Lines []string
}

func (LinearMove) isCommand() {}
func (ArcMove) isCommand()    {}
func (ToolOn) isCommand()     {}
func (ToolOff) isCommand()    {}
func (SetMode) isCommand()    {}
func (Comment) isCommand()    {}
func (Raw) isCommand()        {}
