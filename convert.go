package svg2gcode

import (
	"fmt"
	"math"

	hclog "github.com/hashicorp/go-hclog"
	mt "github.com/rustyoz/Mtransform"
)

// Options carries what a conversion needs besides the document and the
// settings.
type Options struct {
	// Dimensions overrides the document width and height. A nil entry
	// keeps the document's value.
	Dimensions [2]*Length
	Logger     hclog.Logger
}

// Program is the result of a conversion.
type Program struct {
	Commands []Command
	// Bounds is the extent of the drawing in device units, before the
	// origin offset.
	Bounds   BoundingBox
	Offset   Point
	Warnings []GeometryWarning
}

// Lines postprocesses the program into output lines.
func (p *Program) Lines(cfg PostprocessConfig) []string {
	return Postprocess(p.Commands, cfg, p.Offset)
}

// OriginOffset returns the translation that moves the anchor point of box
// chosen by policy onto origin.
func OriginOffset(box BoundingBox, policy OriginPolicy, origin Point) Point {
	if box.Empty() {
		return Point{}
	}
	switch policy {
	case OriginLowerLeft:
		return origin.Sub(box.Min)
	case OriginCenter:
		return origin.Sub(box.Center())
	case OriginUpperLeft:
		return origin.Sub(Point{X: box.Min.X, Y: box.Max.Y})
	}
	return Point{}
}

// drawItem is one drawable element with its outline in global document
// coordinates.
type drawItem struct {
	element  string
	comment  string
	segments []Segment
}

// drawing is a compiled document. It is never modified once built, so
// both passes can trace it.
type drawing []drawItem

func (d drawing) trace(turtle Turtle, warn func(GeometryWarning)) {
	turtle.Begin()
	for _, item := range d {
		if item.comment != "" {
			turtle.Comment(item.comment)
		}
		tracker := newPathTracker(turtle, item.element, warn)
		for _, seg := range item.segments {
			tracker.Draw(seg)
		}
	}
	turtle.End()
}

// Convert turns doc into machine commands.
func Convert(doc *Document, s Settings, opts Options) (*Program, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	log := orNullLogger(opts.Logger)

	root, err := rootTransform(doc, opts.Dimensions)
	if err != nil {
		return nil, err
	}

	c := compiler{attr: s.Conversion.ExtraAttributeName, log: log}
	if err := c.walk(doc.Elements, root); err != nil {
		return nil, err
	}
	log.Debug("compiled document", "elements", len(c.items))

	resolution := s.Conversion.Resolution

	log.Debug("pre-pass start")
	pre := NewPreprocessTurtle()
	c.items.trace(NewScalingTurtle(pre, resolution), nil)
	bounds := pre.Bounds()
	log.Debug("pre-pass done", "min", bounds.Min, "max", bounds.Max, "empty", bounds.Empty())

	warnings := c.warnings
	warn := func(w GeometryWarning) {
		log.Warn("skipped geometry", "element", w.Element, "reason", w.Reason, "at", w.At)
		warnings = append(warnings, w)
	}

	log.Debug("emission pass start")
	gcode := NewGCodeTurtle(NewMachine(s.Machine), s.Conversion.Tolerance, s.Conversion.Feedrate)
	c.items.trace(NewScalingTurtle(gcode, resolution), warn)

	offset := OriginOffset(bounds, s.Conversion.OriginPolicy, s.Conversion.Origin)
	log.Debug("emission pass done", "commands", len(gcode.Program()), "offset", offset)

	return &Program{
		Commands: gcode.Program(),
		Bounds:   bounds,
		Offset:   offset,
		Warnings: warnings,
	}, nil
}

// rootTransform maps document user units onto the device plane: the
// viewBox onto the viewport, then y flipped to grow upwards.
func rootTransform(doc *Document, overrides [2]*Length) (mt.Transform, error) {
	width, height := doc.Width, doc.Height
	if overrides[0] != nil {
		width = overrides[0]
	}
	if overrides[1] != nil {
		height = overrides[1]
	}

	vb := doc.ViewBox
	var vw, vh float64
	switch {
	case width != nil:
		vw = width.UserUnits()
	case vb != nil:
		vw = vb.Width
	default:
		return mt.Transform{}, &ConfigError{Field: "width", Reason: "document has no width or viewBox and no override was given"}
	}
	switch {
	case height != nil:
		vh = height.UserUnits()
	case vb != nil:
		vh = vb.Height
	default:
		return mt.Transform{}, &ConfigError{Field: "height", Reason: "document has no height or viewBox and no override was given"}
	}
	if vw <= 0 || math.IsNaN(vw) {
		return mt.Transform{}, &ConfigError{Field: "width", Reason: fmt.Sprintf("must be positive, got %v", vw)}
	}
	if vh <= 0 || math.IsNaN(vh) {
		return mt.Transform{}, &ConfigError{Field: "height", Reason: fmt.Sprintf("must be positive, got %v", vh)}
	}

	view := mt.Identity()
	if vb != nil {
		sx, sy := vw/vb.Width, vh/vb.Height
		if doc.PreserveAspectRatio != "none" {
			// xMidYMid meet
			s := math.Min(sx, sy)
			sx, sy = s, s
		}
		tx := (vw-vb.Width*sx)/2 - vb.MinX*sx
		ty := (vh-vb.Height*sy)/2 - vb.MinY*sy
		view = affine(sx, 0, 0, sy, tx, ty)
	}
	return compose(flipTransform(), view), nil
}

// compiler walks the element tree once and records every drawable
// element with its outline already in global coordinates.
type compiler struct {
	attr     string
	log      hclog.Logger
	items    drawing
	warnings []GeometryWarning
}

func (c *compiler) walk(elements []Element, parent mt.Transform) error {
	for _, e := range elements {
		n := e.node()
		if n.Hidden() {
			continue
		}
		local, err := parseTransform(n.TransformString)
		if err != nil {
			return documentError(e.name(), n.ID, err)
		}
		t := compose(parent, local)

		switch e := e.(type) {
		case *Group:
			if err := c.walk(e.Elements, t); err != nil {
				return err
			}
		case *Unsupported:
			w := GeometryWarning{Element: e.name(), Reason: "element has no outline"}
			c.log.Warn("skipped element", "element", e.name(), "id", n.ID)
			c.warnings = append(c.warnings, w)
		case Shape:
			segs, err := e.Outline()
			if err != nil {
				return documentError(e.name(), n.ID, err)
			}
			if len(segs) == 0 {
				continue
			}
			c.items = append(c.items, drawItem{
				element:  e.name(),
				comment:  c.comment(n),
				segments: globalize(t, segs),
			})
		}
	}
	return nil
}

func (c *compiler) comment(n *Node) string {
	if c.attr != "" {
		if v := n.Attr(c.attr); v != "" {
			return v
		}
	}
	if n.ID != "" {
		return "svg#" + n.ID
	}
	return ""
}

// globalize maps segments given in local coordinates through t.
func globalize(t mt.Transform, segs []Segment) []Segment {
	out := make([]Segment, 0, len(segs))
	var pos, start Point
	for _, seg := range segs {
		out = append(out, transformSegment(t, seg, pos))
		pos = endPoint(seg, start)
		if m, ok := seg.(MoveTo); ok {
			start = m.To
		}
	}
	return out
}
