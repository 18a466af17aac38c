package svg2gcode

import (
	"encoding/xml"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
	gl "github.com/rustyoz/genericlexer"
)

// Path is an SVG XML path element
type Path struct {
	Node
	D string
}

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
func (p *Path) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	p.readAttrs(start)
	p.D = p.Attr("d")
	return decoder.Skip()
}

func (p *Path) name() string { return "path" }

// Outline parses the path description into segments in the element's
// local coordinate system. Relative commands are resolved to absolute
// coordinates and H/V become LineTo.
func (p *Path) Outline() ([]Segment, error) {
	return parsePathData(p.ID, p.D)
}

type pathDescriptionParser struct {
	lex      *gl.Lexer
	cur      Point
	start    Point
	started  bool
	segments []Segment
}

// parsePathData interprets a path description attribute.
func parsePathData(name, d string) ([]Segment, error) {
	l, _ := gl.Lex(name, normalizePathData(d))
	pdp := &pathDescriptionParser{lex: l}
	for {
		i := pdp.lex.NextItem()
		switch {
		case i.Type == gl.ItemEOS:
			return pdp.finish(d)
		case i.Type == gl.ItemNumber:
			pdp.drain()
			return nil, errors.Errorf("path data: number %q without a command", i.Value)
		case i.Type == gl.ItemWSP || i.Type == gl.ItemComma:
		case isCommandWord(i.Value):
			// a run of letters is a run of commands; only the last one
			// can take arguments
			for _, r := range i.Value {
				if err := pdp.parseCommand(r); err != nil {
					pdp.drain()
					return nil, err
				}
			}
		default:
			pdp.drain()
			return nil, errors.Errorf("path data: unexpected %q", i.Value)
		}
	}
}

// finish runs after the first end-of-input item. The lexer sends a second
// one only when it consumed the whole input; when it stops on a character
// it cannot read, the channel closes right after the first.
func (pdp *pathDescriptionParser) finish(d string) ([]Segment, error) {
	if _, ok := <-pdp.lex.Items; !ok {
		if i := strings.IndexFunc(d, unlexable); i >= 0 {
			r, _ := utf8.DecodeRuneInString(d[i:])
			return nil, errors.Errorf("path data: unexpected %q at offset %d", r, i)
		}
		return nil, errors.New("path data: unreadable input")
	}
	pdp.drain()
	return pdp.segments, nil
}

func isCommandWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// drain lets the lexer goroutine run to completion.
func (pdp *pathDescriptionParser) drain() {
	for range pdp.lex.Items {
	}
}

// unlexable reports runes the path lexer stops at.
func unlexable(r rune) bool {
	switch {
	case unicode.IsLetter(r), unicode.IsNumber(r), unicode.IsSpace(r):
		return false
	}
	return !strings.ContainsRune("+-.,()", r)
}

// normalizePathData rewrites number forms the lexer cannot read on its
// own: a leading dot gets a zero, a second dot inside a number starts the
// next number, and E exponents become e. Carriage returns and form feeds
// become spaces.
func normalizePathData(d string) string {
	var b strings.Builder
	b.Grow(len(d) + 8)
	inNumber, dot, exp := false, false, false
	var prev rune
	for _, r := range d {
		switch {
		case r >= '0' && r <= '9':
			inNumber = true
		case r == '.':
			if inNumber && (dot || exp) {
				b.WriteByte(' ')
				inNumber, exp = false, false
			}
			if !inNumber {
				b.WriteByte('0')
			}
			inNumber, dot = true, true
		case (r == 'e' || r == 'E') && inNumber:
			r = 'e'
			exp = true
		case (r == '-' || r == '+') && prev == 'e' && inNumber:
			// exponent sign
		case r == '\r' || r == '\f':
			r = ' '
			inNumber, dot, exp = false, false, false
		default:
			inNumber, dot, exp = false, false, false
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

func (pdp *pathDescriptionParser) parseCommand(cmd rune) error {
	rel := unicode.IsLower(cmd)
	if !pdp.started && unicode.ToUpper(cmd) != 'M' {
		return errors.Errorf("path data: must start with a moveto, got %q", string(cmd))
	}

	var err error
	switch unicode.ToUpper(cmd) {
	case 'M':
		err = pdp.parseMoveTo(rel)
	case 'L':
		err = pdp.parseLineTo(rel)
	case 'H':
		err = pdp.parseHLineTo(rel)
	case 'V':
		err = pdp.parseVLineTo(rel)
	case 'C':
		err = pdp.parseCurveTo(rel)
	case 'S':
		err = pdp.parseSmoothCurveTo(rel)
	case 'Q':
		err = pdp.parseQuadTo(rel)
	case 'T':
		err = pdp.parseSmoothQuadTo(rel)
	case 'A':
		err = pdp.parseArcTo(rel)
	case 'Z':
		pdp.parseClose()
	default:
		err = errors.Errorf("path data: unsupported command %q", string(cmd))
	}
	if err != nil {
		return errors.Wrapf(err, "command %q", string(cmd))
	}
	return nil
}

// hasNumber skips separators and reports whether another argument follows.
func (pdp *pathDescriptionParser) hasNumber() bool {
	pdp.lex.ConsumeWhiteSpace()
	pdp.lex.ConsumeComma()
	pdp.lex.ConsumeWhiteSpace()
	return pdp.lex.PeekItem().Type == gl.ItemNumber
}

func (pdp *pathDescriptionParser) parseNumber() (float64, error) {
	if !pdp.hasNumber() {
		i := pdp.lex.PeekItem()
		return 0, errors.Errorf("expected number, got %q", i.Value)
	}
	i := pdp.lex.NextItem()
	n, err := strconv.ParseFloat(i.Value, 64)
	if err != nil {
		return 0, errors.Errorf("invalid number %q", i.Value)
	}
	return n, nil
}

// parseTuple reads an x,y pair, resolved against the current point when
// rel is set.
func (pdp *pathDescriptionParser) parseTuple(rel bool) (Point, error) {
	x, err := pdp.parseNumber()
	if err != nil {
		return Point{}, err
	}
	y, err := pdp.parseNumber()
	if err != nil {
		return Point{}, err
	}
	if rel {
		return Point{pdp.cur.X + x, pdp.cur.Y + y}, nil
	}
	return Point{x, y}, nil
}

func (pdp *pathDescriptionParser) parseFlag() (bool, error) {
	n, err := pdp.parseNumber()
	if err != nil {
		return false, err
	}
	switch n {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, errors.Errorf("arc flag must be 0 or 1, got %g", n)
}

func (pdp *pathDescriptionParser) add(seg Segment, to Point) {
	pdp.segments = append(pdp.segments, seg)
	pdp.cur = to
}

func (pdp *pathDescriptionParser) parseMoveTo(rel bool) error {
	p, err := pdp.parseTuple(rel)
	if err != nil {
		return err
	}
	pdp.started = true
	pdp.start = p
	pdp.add(MoveTo{p}, p)

	// further pairs are implicit lineto commands
	for pdp.hasNumber() {
		p, err := pdp.parseTuple(rel)
		if err != nil {
			return err
		}
		pdp.add(LineTo{p}, p)
	}
	return nil
}

func (pdp *pathDescriptionParser) parseLineTo(rel bool) error {
	for first := true; first || pdp.hasNumber(); first = false {
		p, err := pdp.parseTuple(rel)
		if err != nil {
			return err
		}
		pdp.add(LineTo{p}, p)
	}
	return nil
}

func (pdp *pathDescriptionParser) parseHLineTo(rel bool) error {
	for first := true; first || pdp.hasNumber(); first = false {
		n, err := pdp.parseNumber()
		if err != nil {
			return err
		}
		p := Point{n, pdp.cur.Y}
		if rel {
			p.X = pdp.cur.X + n
		}
		pdp.add(LineTo{p}, p)
	}
	return nil
}

func (pdp *pathDescriptionParser) parseVLineTo(rel bool) error {
	for first := true; first || pdp.hasNumber(); first = false {
		n, err := pdp.parseNumber()
		if err != nil {
			return err
		}
		p := Point{pdp.cur.X, n}
		if rel {
			p.Y = pdp.cur.Y + n
		}
		pdp.add(LineTo{p}, p)
	}
	return nil
}

func (pdp *pathDescriptionParser) parseCurveTo(rel bool) error {
	for first := true; first || pdp.hasNumber(); first = false {
		var pts [3]Point
		for i := range pts {
			p, err := pdp.parseTuple(rel)
			if err != nil {
				return err
			}
			pts[i] = p
		}
		pdp.add(CubicTo{pts[0], pts[1], pts[2]}, pts[2])
	}
	return nil
}

func (pdp *pathDescriptionParser) parseSmoothCurveTo(rel bool) error {
	for first := true; first || pdp.hasNumber(); first = false {
		c2, err := pdp.parseTuple(rel)
		if err != nil {
			return err
		}
		to, err := pdp.parseTuple(rel)
		if err != nil {
			return err
		}
		pdp.add(SmoothCubicTo{c2, to}, to)
	}
	return nil
}

func (pdp *pathDescriptionParser) parseQuadTo(rel bool) error {
	for first := true; first || pdp.hasNumber(); first = false {
		c, err := pdp.parseTuple(rel)
		if err != nil {
			return err
		}
		to, err := pdp.parseTuple(rel)
		if err != nil {
			return err
		}
		pdp.add(QuadraticTo{c, to}, to)
	}
	return nil
}

func (pdp *pathDescriptionParser) parseSmoothQuadTo(rel bool) error {
	for first := true; first || pdp.hasNumber(); first = false {
		to, err := pdp.parseTuple(rel)
		if err != nil {
			return err
		}
		pdp.add(SmoothQuadraticTo{to}, to)
	}
	return nil
}

func (pdp *pathDescriptionParser) parseArcTo(rel bool) error {
	for first := true; first || pdp.hasNumber(); first = false {
		rx, err := pdp.parseNumber()
		if err != nil {
			return err
		}
		ry, err := pdp.parseNumber()
		if err != nil {
			return err
		}
		rot, err := pdp.parseNumber()
		if err != nil {
			return err
		}
		large, err := pdp.parseFlag()
		if err != nil {
			return err
		}
		sweep, err := pdp.parseFlag()
		if err != nil {
			return err
		}
		to, err := pdp.parseTuple(rel)
		if err != nil {
			return err
		}
		pdp.add(ArcTo{
			Radii:    Point{rx, ry},
			Rotation: rot,
			LargeArc: large,
			Sweep:    sweep,
			To:       to,
		}, to)
	}
	return nil
}

func (pdp *pathDescriptionParser) parseClose() {
	pdp.add(ClosePath{}, pdp.start)
}
