package svg2gcode

import (
	"encoding/xml"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// length reads a numeric attribute in user units. Missing attributes
// yield def.
func (n *Node) length(name string, def float64) (float64, error) {
	v := strings.TrimSpace(n.Attrs[name])
	if v == "" {
		return def, nil
	}
	l, err := ParseLength(v)
	if err != nil {
		return 0, errors.Wrapf(err, "attribute %s", name)
	}
	return l.UserUnits(), nil
}

// lengths reads several attributes at once; the first failure wins.
func (n *Node) lengths(names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, name := range names {
		v, err := n.length(name, 0)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Rect is an SVG rect element
type Rect struct {
	Node
}

func (r *Rect) name() string { return "rect" }

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
func (r *Rect) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	r.readAttrs(start)
	return decoder.Skip()
}

// Outline implements Shape.
func (r *Rect) Outline() ([]Segment, error) {
	v, err := r.lengths("x", "y", "width", "height")
	if err != nil {
		return nil, err
	}
	x, y, w, h := v[0], v[1], v[2], v[3]
	if w < 0 || h < 0 {
		return nil, errors.New("negative width or height")
	}
	if w == 0 || h == 0 {
		return nil, nil
	}

	rx, err := r.length("rx", -1)
	if err != nil {
		return nil, err
	}
	ry, err := r.length("ry", -1)
	if err != nil {
		return nil, err
	}
	// a missing radius takes the value of the other one
	switch {
	case rx < 0 && ry < 0:
		rx, ry = 0, 0
	case rx < 0:
		rx = ry
	case ry < 0:
		ry = rx
	}
	rx = math.Min(rx, w/2)
	ry = math.Min(ry, h/2)

	if rx == 0 || ry == 0 {
		return []Segment{
			MoveTo{Point{x, y}},
			LineTo{Point{x + w, y}},
			LineTo{Point{x + w, y + h}},
			LineTo{Point{x, y + h}},
			ClosePath{},
		}, nil
	}

	radii := Point{rx, ry}
	corner := func(to Point) ArcTo {
		return ArcTo{Radii: radii, Sweep: true, To: to}
	}
	return []Segment{
		MoveTo{Point{x + rx, y}},
		LineTo{Point{x + w - rx, y}},
		corner(Point{x + w, y + ry}),
		LineTo{Point{x + w, y + h - ry}},
		corner(Point{x + w - rx, y + h}),
		LineTo{Point{x + rx, y + h}},
		corner(Point{x, y + h - ry}),
		LineTo{Point{x, y + ry}},
		corner(Point{x + rx, y}),
		ClosePath{},
	}, nil
}

// Circle is an SVG circle element
type Circle struct {
	Node
}

func (c *Circle) name() string { return "circle" }

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
func (c *Circle) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	c.readAttrs(start)
	return decoder.Skip()
}

// Outline implements Shape.
func (c *Circle) Outline() ([]Segment, error) {
	v, err := c.lengths("cx", "cy", "r")
	if err != nil {
		return nil, err
	}
	return ellipseOutline(v[0], v[1], v[2], v[2])
}

// Ellipse is an SVG ellipse element
type Ellipse struct {
	Node
}

func (e *Ellipse) name() string { return "ellipse" }

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
func (e *Ellipse) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	e.readAttrs(start)
	return decoder.Skip()
}

// Outline implements Shape.
func (e *Ellipse) Outline() ([]Segment, error) {
	v, err := e.lengths("cx", "cy", "rx", "ry")
	if err != nil {
		return nil, err
	}
	return ellipseOutline(v[0], v[1], v[2], v[3])
}

// ellipseOutline draws an ellipse as four quarter arcs, starting at the
// rightmost point and turning the same way as the SVG specification.
func ellipseOutline(cx, cy, rx, ry float64) ([]Segment, error) {
	if rx < 0 || ry < 0 {
		return nil, errors.New("negative radius")
	}
	if rx == 0 || ry == 0 {
		return nil, nil
	}
	radii := Point{rx, ry}
	quarter := func(to Point) ArcTo {
		return ArcTo{Radii: radii, Sweep: true, To: to}
	}
	return []Segment{
		MoveTo{Point{cx + rx, cy}},
		quarter(Point{cx, cy + ry}),
		quarter(Point{cx - rx, cy}),
		quarter(Point{cx, cy - ry}),
		quarter(Point{cx + rx, cy}),
		ClosePath{},
	}, nil
}

// Line is an SVG line element
type Line struct {
	Node
}

func (l *Line) name() string { return "line" }

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
func (l *Line) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	l.readAttrs(start)
	return decoder.Skip()
}

// Outline implements Shape.
func (l *Line) Outline() ([]Segment, error) {
	v, err := l.lengths("x1", "y1", "x2", "y2")
	if err != nil {
		return nil, err
	}
	return []Segment{
		MoveTo{Point{v[0], v[1]}},
		LineTo{Point{v[2], v[3]}},
	}, nil
}

// Polyline is a set of connected line segments.
type Polyline struct {
	Node
}

func (p *Polyline) name() string { return "polyline" }

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
func (p *Polyline) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	p.readAttrs(start)
	return decoder.Skip()
}

// Outline implements Shape.
func (p *Polyline) Outline() ([]Segment, error) {
	return pointsOutline(p.Attr("points"), false)
}

// Polygon is a closed Polyline.
type Polygon struct {
	Node
}

func (p *Polygon) name() string { return "polygon" }

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
func (p *Polygon) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	p.readAttrs(start)
	return decoder.Skip()
}

// Outline implements Shape.
func (p *Polygon) Outline() ([]Segment, error) {
	return pointsOutline(p.Attr("points"), true)
}

func pointsOutline(points string, closed bool) ([]Segment, error) {
	nums, err := parseNumberList(points)
	if err != nil {
		return nil, errors.Wrap(err, "attribute points")
	}
	if len(nums)%2 != 0 {
		return nil, errors.New("attribute points: odd number of coordinates")
	}
	if len(nums) == 0 {
		return nil, nil
	}
	segs := make([]Segment, 0, len(nums)/2+1)
	segs = append(segs, MoveTo{Point{nums[0], nums[1]}})
	for i := 2; i < len(nums); i += 2 {
		segs = append(segs, LineTo{Point{nums[i], nums[i+1]}})
	}
	if closed {
		segs = append(segs, ClosePath{})
	}
	return segs, nil
}
