package svg2gcode

import "math"

const (
	// A curve whose midpoint sagitta is below this fraction of its squared
	// chord length is treated as straight and never fitted with an arc.
	arcFlatnessRatio = 1e-6
	// Chords shorter than this cannot anchor an arc.
	minArcChord = 1e-9
	// The fitted arc is checked at t = k/arcSamples for k in 1..arcSamples-1.
	arcSamples = 16
	// Flattening stops halving here even if the tolerance is not met.
	maxFlattenDepth = 16
)

// ApproximateCubic turns a curve in device coordinates into motion
// commands: one ArcMove when arcs are allowed and a single circular arc
// stays within tolerance of the curve, otherwise a polyline whose segments
// each stay within tolerance.
func ApproximateCubic(c CubicBez, tolerance float64, arcs bool, feed *float64) []Command {
	if arcs {
		if arc, ok := fitArc(c, tolerance); ok {
			arc.Feedrate = feed
			return []Command{arc}
		}
	}
	pts := flattenCubic(c, tolerance)
	cmds := make([]Command, len(pts))
	for i, p := range pts {
		cmds[i] = LinearMove{To: p, Feedrate: feed}
	}
	return cmds
}

// ApproximateQuad is ApproximateCubic for quadratic curves.
func ApproximateQuad(q QuadBez, tolerance float64, arcs bool, feed *float64) []Command {
	return ApproximateCubic(q.Raise(), tolerance, arcs, feed)
}

// fitArc tries the circle through the start, middle and end of c.
func fitArc(c CubicBez, tolerance float64) (ArcMove, bool) {
	p0, pm, p1 := c.P0, c.Eval(0.5), c.P3
	chord := p1.Sub(p0)
	l2 := chord.Dot(chord)
	if l2 < minArcChord*minArcChord {
		return ArcMove{}, false
	}
	b := pm.Sub(p0)
	if math.Abs(b.Cross(chord)) <= arcFlatnessRatio*l2 {
		return ArcMove{}, false
	}

	// circumcentre relative to p0
	d := 2 * b.Cross(chord)
	bb, cc := b.Dot(b), chord.Dot(chord)
	offset := Point{
		X: (chord.Y*bb - b.Y*cc) / d,
		Y: (b.X*cc - chord.X*bb) / d,
	}
	center := p0.Add(offset)
	r := offset.Length()
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return ArcMove{}, false
	}

	dir := Clockwise
	if b.Cross(p1.Sub(pm)) > 0 {
		dir = CounterClockwise
	}

	prev := p0.Sub(center)
	for k := 1; k <= arcSamples; k++ {
		p := p1
		if k < arcSamples {
			p = c.Eval(float64(k) / arcSamples)
			if math.Abs(p.Distance(center)-r) > tolerance {
				return ArcMove{}, false
			}
		}
		// samples must keep turning the same way around the centre
		v := p.Sub(center)
		turn := prev.Cross(v)
		if (dir == CounterClockwise && turn < 0) || (dir == Clockwise && turn > 0) {
			return ArcMove{}, false
		}
		prev = v
	}

	return ArcMove{To: p1, Center: offset, Direction: dir}, true
}

// flattenCubic returns the end points of a polyline approximating c, not
// including c.P0.
func flattenCubic(c CubicBez, tolerance float64) []Point {
	var out []Point
	flattenInto(c, tolerance, 0, &out)
	return out
}

// flattenInto halves c until both inner control points are within
// tolerance of the chord. The curve lies inside the hull of its control
// points, so the chord is then within tolerance of the curve.
func flattenInto(c CubicBez, tolerance float64, depth int, out *[]Point) {
	if depth >= maxFlattenDepth ||
		(distPointToSegment(c.P1, c.P0, c.P3) <= tolerance && distPointToSegment(c.P2, c.P0, c.P3) <= tolerance) {
		*out = append(*out, c.P3)
		return
	}
	a, b := c.Subdivide()
	flattenInto(a, tolerance, depth+1, out)
	flattenInto(b, tolerance, depth+1, out)
}
