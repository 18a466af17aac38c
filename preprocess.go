package svg2gcode

// PreprocessTurtle measures the extent of everything that is drawn. Moves
// alone do not count; a subpath contributes once it draws something.
type PreprocessTurtle struct {
	bounds BoundingBox
	pos    Point
}

// NewPreprocessTurtle returns a turtle with an empty bounding box.
func NewPreprocessTurtle() *PreprocessTurtle {
	return &PreprocessTurtle{}
}

// Bounds returns the accumulated bounding box.
func (t *PreprocessTurtle) Bounds() BoundingBox {
	return t.bounds
}

// Begin implements Turtle.
func (t *PreprocessTurtle) Begin() {}

// End implements Turtle.
func (t *PreprocessTurtle) End() {}

// Comment implements Turtle.
func (t *PreprocessTurtle) Comment(string) {}

// MoveTo implements Turtle.
func (t *PreprocessTurtle) MoveTo(to Point) {
	t.pos = to
}

// LineTo implements Turtle.
func (t *PreprocessTurtle) LineTo(to Point) {
	t.bounds.Add(t.pos)
	t.bounds.Add(to)
	t.pos = to
}

// CubicTo implements Turtle.
func (t *PreprocessTurtle) CubicTo(c1, c2, to Point) {
	t.bounds.Union(CubicBez{t.pos, c1, c2, to}.Bounds())
	t.pos = to
}

// Close implements Turtle. The closing line ends at a point that is
// already part of the box.
func (t *PreprocessTurtle) Close() {}
