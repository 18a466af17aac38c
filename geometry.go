package svg2gcode

import (
	"math"
	"sort"
)

// Point is an X,Y coordinate.
type Point struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Mul scales p by s.
func (p Point) Mul(s float64) Point { return Point{p.X * s, p.Y * s} }

// Dot is the scalar product of p and q.
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Cross is the z component of the cross product of p and q. It is
// positive when q lies counter-clockwise of p.
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }

// Length is the distance of p from the origin.
func (p Point) Length() float64 { return math.Hypot(p.X, p.Y) }

// Distance is the distance between p and q.
func (p Point) Distance(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Lerp interpolates linearly between p and q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Reflect returns p mirrored through center.
func (p Point) Reflect(center Point) Point {
	return Point{2*center.X - p.X, 2*center.Y - p.Y}
}

func almostEqualPoint(a, b Point) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

// distPointToSegment is the distance from p to the closed segment a-b.
func distPointToSegment(p, a, b Point) float64 {
	d := b.Sub(a)
	l2 := d.Dot(d)
	if l2 == 0 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(d) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Distance(a.Add(d.Mul(t)))
}

// BoundingBox is an axis-aligned box. The zero value is empty.
type BoundingBox struct {
	Min, Max Point
	valid    bool
}

// Empty reports whether no point has been added yet.
func (b BoundingBox) Empty() bool {
	return !b.valid
}

// Add grows the box to include p.
func (b *BoundingBox) Add(p Point) {
	if !b.valid {
		b.Min, b.Max, b.valid = p, p, true
		return
	}
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
}

// Union grows the box to include o.
func (b *BoundingBox) Union(o BoundingBox) {
	if o.Empty() {
		return
	}
	b.Add(o.Min)
	b.Add(o.Max)
}

// Width is the horizontal extent of the box.
func (b BoundingBox) Width() float64 { return b.Max.X - b.Min.X }

// Height is the vertical extent of the box.
func (b BoundingBox) Height() float64 { return b.Max.Y - b.Min.Y }

// Center returns the middle of the box.
func (b BoundingBox) Center() Point {
	return b.Min.Lerp(b.Max, 0.5)
}

// CubicBez is a cubic Bezier curve. P0 and P3 are the end points.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Eval evaluates the curve at t in [0, 1].
func (c CubicBez) Eval(t float64) Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	d := 3 * mt * t * t
	e := t * t * t
	return Point{
		X: a*c.P0.X + b*c.P1.X + d*c.P2.X + e*c.P3.X,
		Y: a*c.P0.Y + b*c.P1.Y + d*c.P2.Y + e*c.P3.Y,
	}
}

// Subdivide splits the curve at t=0.5 using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	p01 := c.P0.Lerp(c.P1, 0.5)
	p12 := c.P1.Lerp(c.P2, 0.5)
	p23 := c.P2.Lerp(c.P3, 0.5)
	p012 := p01.Lerp(p12, 0.5)
	p123 := p12.Lerp(p23, 0.5)
	mid := p012.Lerp(p123, 0.5)
	return CubicBez{c.P0, p01, p012, mid}, CubicBez{mid, p123, p23, c.P3}
}

// Extrema returns the sorted parameters in (0, 1) where either coordinate
// has a zero derivative.
func (c CubicBez) Extrema() []float64 {
	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)

	ts := solveQuadraticUnit(d0.X-2*d1.X+d2.X, 2*(d1.X-d0.X), d0.X)
	ts = append(ts, solveQuadraticUnit(d0.Y-2*d1.Y+d2.Y, 2*(d1.Y-d0.Y), d0.Y)...)
	sort.Float64s(ts)
	return ts
}

// Bounds returns the tight bounding box of the curve.
func (c CubicBez) Bounds() BoundingBox {
	var b BoundingBox
	b.Add(c.P0)
	b.Add(c.P3)
	for _, t := range c.Extrema() {
		b.Add(c.Eval(t))
	}
	return b
}

// QuadBez is a quadratic Bezier curve.
type QuadBez struct {
	P0, P1, P2 Point
}

// Eval evaluates the curve at t in [0, 1].
func (q QuadBez) Eval(t float64) Point {
	mt := 1 - t
	return Point{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// Raise returns the exact cubic equivalent of q.
func (q QuadBez) Raise() CubicBez {
	return CubicBez{
		P0: q.P0,
		P1: q.P0.Lerp(q.P1, 2.0/3.0),
		P2: q.P2.Lerp(q.P1, 2.0/3.0),
		P3: q.P2,
	}
}

// solveQuadraticUnit returns the roots of a*t^2 + b*t + c in the open
// interval (0, 1).
func solveQuadraticUnit(a, b, c float64) []float64 {
	var roots []float64
	keep := func(t float64) {
		if t > 0 && t < 1 {
			roots = append(roots, t)
		}
	}
	if math.Abs(a) < 1e-12 {
		if math.Abs(b) > 1e-12 {
			keep(-c / b)
		}
		return roots
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return roots
	}
	sq := math.Sqrt(disc)
	keep((-b + sq) / (2 * a))
	if sq > 0 {
		keep((-b - sq) / (2 * a))
	}
	return roots
}
