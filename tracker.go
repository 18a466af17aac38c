package svg2gcode

type ctrlKind int

const (
	ctrlNone ctrlKind = iota
	ctrlCubic
	ctrlQuad
)

// pathTracker follows the pen through the segments of one element and
// resolves them into turtle calls. Segments arrive in global coordinates.
type pathTracker struct {
	turtle  Turtle
	element string
	warn    func(GeometryWarning)

	pos, start Point
	ctrl       Point
	ctrlKind   ctrlKind
}

func newPathTracker(turtle Turtle, element string, warn func(GeometryWarning)) *pathTracker {
	return &pathTracker{turtle: turtle, element: element, warn: warn}
}

func (pt *pathTracker) skip(reason string) {
	if pt.warn != nil {
		pt.warn(GeometryWarning{Element: pt.element, Reason: reason, At: pt.pos})
	}
}

// reflected returns the first control point of a smooth curve: the
// previous control point of the same kind mirrored through the pen, or
// the pen itself.
func (pt *pathTracker) reflected(kind ctrlKind) Point {
	if pt.ctrlKind != kind {
		return pt.pos
	}
	return pt.ctrl.Reflect(pt.pos)
}

func (pt *pathTracker) curve(c1, c2, to Point) {
	if almostEqualPoint(pt.pos, c1) && almostEqualPoint(pt.pos, c2) && almostEqualPoint(pt.pos, to) {
		pt.skip("zero-length curve")
		return
	}
	pt.turtle.CubicTo(c1, c2, to)
	pt.pos = to
}

func (pt *pathTracker) quad(c, to Point) {
	cb := QuadBez{P0: pt.pos, P1: c, P2: to}.Raise()
	pt.curve(cb.P1, cb.P2, to)
}

// Draw applies one segment.
func (pt *pathTracker) Draw(seg Segment) {
	kind, ctrl := ctrlNone, Point{}

	switch s := seg.(type) {
	case MoveTo:
		pt.turtle.MoveTo(s.To)
		pt.pos, pt.start = s.To, s.To
	case LineTo:
		if almostEqualPoint(pt.pos, s.To) {
			pt.skip("zero-length line")
			break
		}
		pt.turtle.LineTo(s.To)
		pt.pos = s.To
	case CubicTo:
		pt.curve(s.C1, s.C2, s.To)
		kind, ctrl = ctrlCubic, s.C2
	case SmoothCubicTo:
		pt.curve(pt.reflected(ctrlCubic), s.C2, s.To)
		kind, ctrl = ctrlCubic, s.C2
	case QuadraticTo:
		pt.quad(s.C, s.To)
		kind, ctrl = ctrlQuad, s.C
	case SmoothQuadraticTo:
		c := pt.reflected(ctrlQuad)
		pt.quad(c, s.To)
		kind, ctrl = ctrlQuad, c
	case ArcTo:
		curves := s.Curves()
		if len(curves) == 0 {
			pt.skip("zero-length arc")
			break
		}
		for _, c := range curves {
			pt.curve(c.C1, c.C2, c.To)
		}
		pt.pos = s.To
	case ClosePath:
		pt.turtle.Close()
		pt.pos = pt.start
	}

	pt.ctrlKind, pt.ctrl = kind, ctrl
}
