package svg2gcode

// GCodeTurtle turns drawing calls into machine commands. Mode and tool
// changes go through the Machine so none of them is ever repeated.
type GCodeTurtle struct {
	machine   *Machine
	tolerance float64
	feed      *float64

	program []Command
	start   Point
	pos     Point
}

// NewGCodeTurtle returns a turtle emitting commands for machine. Drawing
// moves carry feedrate; curves are approximated within tolerance.
func NewGCodeTurtle(machine *Machine, tolerance, feedrate float64) *GCodeTurtle {
	feed := feedrate
	return &GCodeTurtle{
		machine:   machine,
		tolerance: tolerance,
		feed:      &feed,
	}
}

// Program returns the commands emitted so far.
func (t *GCodeTurtle) Program() []Command {
	return t.program
}

func (t *GCodeTurtle) emit(cmds ...Command) {
	t.program = append(t.program, cmds...)
}

// Begin implements Turtle.
func (t *GCodeTurtle) Begin() {
	t.emit(t.machine.ProgramBegin()...)
	t.emit(t.machine.SetMode(Absolute)...)
	t.emit(t.machine.SetTool(false)...)
}

// End implements Turtle.
func (t *GCodeTurtle) End() {
	t.emit(t.machine.SetTool(false)...)
	t.emit(t.machine.SetMode(Absolute)...)
	t.emit(t.machine.ProgramEnd()...)
}

// Comment implements Turtle.
func (t *GCodeTurtle) Comment(text string) {
	t.emit(Comment{Text: text})
}

// MoveTo implements Turtle.
func (t *GCodeTurtle) MoveTo(to Point) {
	t.emit(t.machine.SetTool(false)...)
	t.emit(t.machine.SetMode(Absolute)...)
	t.emit(LinearMove{To: to})
	t.start, t.pos = to, to
}

func (t *GCodeTurtle) engage() {
	t.emit(t.machine.SetTool(true)...)
	t.emit(t.machine.SetMode(Absolute)...)
}

// LineTo implements Turtle.
func (t *GCodeTurtle) LineTo(to Point) {
	t.engage()
	t.emit(LinearMove{To: to, Feedrate: t.feed})
	t.pos = to
}

// CubicTo implements Turtle.
func (t *GCodeTurtle) CubicTo(c1, c2, to Point) {
	t.engage()
	curve := CubicBez{P0: t.pos, P1: c1, P2: c2, P3: to}
	t.emit(ApproximateCubic(curve, t.tolerance, t.machine.ArcCapable(), t.feed)...)
	t.pos = to
}

// Close implements Turtle. It lifts the tool once the subpath is closed.
func (t *GCodeTurtle) Close() {
	if !almostEqualPoint(t.pos, t.start) {
		t.LineTo(t.start)
	}
	t.emit(t.machine.SetTool(false)...)
}
