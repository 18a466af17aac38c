package svg2gcode

import (
	"math"

	"github.com/tdewolff/canvas"
)

// arcToCubics converts an endpoint-parameterised elliptical arc starting
// at from into cubic Bezier pieces of at most 90 degrees each.
//
// Zero radii degrade to a straight line and coincident endpoints to
// nothing, following the SVG implementation notes.
func arcToCubics(from Point, a ArcTo) []CubicTo {
	if almostEqualPoint(from, a.To) {
		return nil
	}
	rx, ry := math.Abs(a.Radii.X), math.Abs(a.Radii.Y)
	if rx == 0 || ry == 0 {
		return []CubicTo{{C1: from, C2: a.To, To: a.To}}
	}

	p := &canvas.Path{}
	p.MoveTo(from.X, from.Y)
	p.ArcTo(rx, ry, a.Rotation, a.LargeArc, a.Sweep, a.To.X, a.To.Y)

	var curves []CubicTo
	noop2 := func(canvas.Point, canvas.Point) {}
	p.ReplaceArcs().Iterate(
		noop2,
		func(segStart, segEnd canvas.Point) {
			// closing line the arc replacement leaves behind
			end := Pt(segEnd.X, segEnd.Y)
			if len(curves) > 0 && almostEqualPoint(curves[len(curves)-1].To, end) {
				return
			}
			start := Pt(segStart.X, segStart.Y)
			curves = append(curves, CubicTo{C1: start, C2: end, To: end})
		},
		func(canvas.Point, canvas.Point, canvas.Point) {},
		func(_, cp1, cp2, segEnd canvas.Point) {
			curves = append(curves, CubicTo{
				C1: Pt(cp1.X, cp1.Y),
				C2: Pt(cp2.X, cp2.Y),
				To: Pt(segEnd.X, segEnd.Y),
			})
		},
		func(canvas.Point, float64, float64, float64, bool, bool, canvas.Point) {},
		noop2,
	)
	if len(curves) == 0 {
		return nil
	}
	// land exactly on the requested end point
	curves[len(curves)-1].To = a.To
	return curves
}
