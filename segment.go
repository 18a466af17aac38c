package svg2gcode

import mt "github.com/rustyoz/Mtransform"

// Segment is one command of a path outline. The set of segments is
// closed: MoveTo, LineTo, CubicTo, QuadraticTo, SmoothCubicTo,
// SmoothQuadraticTo, ArcTo and ClosePath.
type Segment interface {
	isSegment()
}

// MoveTo starts a new subpath.
type MoveTo struct {
	To Point
}

// LineTo draws a straight line.
type LineTo struct {
	To Point
}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	C1, C2, To Point
}

// QuadraticTo draws a quadratic Bezier curve.
type QuadraticTo struct {
	C, To Point
}

// SmoothCubicTo draws a cubic Bezier curve whose first control point is
// the reflection of the previous curve's second control point.
type SmoothCubicTo struct {
	C2, To Point
}

// SmoothQuadraticTo draws a quadratic Bezier curve whose control point is
// the reflection of the previous quadratic control point.
type SmoothQuadraticTo struct {
	To Point
}

// ArcTo draws an elliptical arc. Once a document is compiled the arc also
// carries its cubic approximation in global coordinates.
type ArcTo struct {
	Radii    Point
	Rotation float64 // degrees
	LargeArc bool
	Sweep    bool
	To       Point

	curves []CubicTo
}

// ClosePath draws a line back to the start of the subpath.
type ClosePath struct{}

func (MoveTo) isSegment()            {}
func (LineTo) isSegment()            {}
func (CubicTo) isSegment()           {}
func (QuadraticTo) isSegment()       {}
func (SmoothCubicTo) isSegment()     {}
func (SmoothQuadraticTo) isSegment() {}
func (ArcTo) isSegment()             {}
func (ClosePath) isSegment()         {}

// Curves returns the cubic pieces of a compiled arc.
func (a ArcTo) Curves() []CubicTo {
	return a.curves
}

// endPoint returns where the pen is after seg, given the subpath start.
func endPoint(seg Segment, start Point) Point {
	switch s := seg.(type) {
	case MoveTo:
		return s.To
	case LineTo:
		return s.To
	case CubicTo:
		return s.To
	case QuadraticTo:
		return s.To
	case SmoothCubicTo:
		return s.To
	case SmoothQuadraticTo:
		return s.To
	case ArcTo:
		return s.To
	}
	return start
}

// transformSegment maps every point of seg through t. The start of an
// arc is needed to split it into cubics before it leaves local space.
func transformSegment(t mt.Transform, seg Segment, from Point) Segment {
	switch s := seg.(type) {
	case MoveTo:
		return MoveTo{applyTransform(t, s.To)}
	case LineTo:
		return LineTo{applyTransform(t, s.To)}
	case CubicTo:
		return CubicTo{applyTransform(t, s.C1), applyTransform(t, s.C2), applyTransform(t, s.To)}
	case QuadraticTo:
		return QuadraticTo{applyTransform(t, s.C), applyTransform(t, s.To)}
	case SmoothCubicTo:
		return SmoothCubicTo{applyTransform(t, s.C2), applyTransform(t, s.To)}
	case SmoothQuadraticTo:
		return SmoothQuadraticTo{applyTransform(t, s.To)}
	case ArcTo:
		local := arcToCubics(from, s)
		out := s
		out.To = applyTransform(t, s.To)
		out.curves = make([]CubicTo, len(local))
		for i, c := range local {
			out.curves[i] = CubicTo{applyTransform(t, c.C1), applyTransform(t, c.C2), applyTransform(t, c.To)}
		}
		return out
	}
	return seg
}
