package svg2gcode

// Turtle is a cursor based drawing interface. The path tracker resolves
// every segment into these calls; implementations decide what drawing
// means.
type Turtle interface {
	Begin()
	End()
	Comment(text string)
	MoveTo(to Point)
	LineTo(to Point)
	CubicTo(c1, c2, to Point)
	// Close draws back to the start of the current subpath.
	Close()
}

// ScalingTurtle converts document units into device units before handing
// every call to the wrapped turtle.
type ScalingTurtle struct {
	inner  Turtle
	factor float64
}

// NewScalingTurtle wraps inner, multiplying every coordinate by factor.
func NewScalingTurtle(inner Turtle, factor float64) *ScalingTurtle {
	return &ScalingTurtle{inner: inner, factor: factor}
}

func (s *ScalingTurtle) scale(p Point) Point {
	return p.Mul(s.factor)
}

// Begin implements Turtle.
func (s *ScalingTurtle) Begin() { s.inner.Begin() }

// End implements Turtle.
func (s *ScalingTurtle) End() { s.inner.End() }

// Comment implements Turtle.
func (s *ScalingTurtle) Comment(text string) { s.inner.Comment(text) }

// MoveTo implements Turtle.
func (s *ScalingTurtle) MoveTo(to Point) { s.inner.MoveTo(s.scale(to)) }

// LineTo implements Turtle.
func (s *ScalingTurtle) LineTo(to Point) { s.inner.LineTo(s.scale(to)) }

// CubicTo implements Turtle.
func (s *ScalingTurtle) CubicTo(c1, c2, to Point) {
	s.inner.CubicTo(s.scale(c1), s.scale(c2), s.scale(to))
}

// Close implements Turtle.
func (s *ScalingTurtle) Close() { s.inner.Close() }
