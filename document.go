package svg2gcode

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Element is a node of a parsed document. Groups, paths and basic shapes
// implement it.
type Element interface {
	node() *Node
	name() string
}

// Shape is an element with an outline.
type Shape interface {
	Element
	Outline() ([]Segment, error)
}

// Node holds the attributes every element shares.
type Node struct {
	ID              string
	TransformString string
	Attrs           map[string]string
}

func (n *Node) node() *Node { return n }

// Attr returns the named attribute, or "" if it is not set. Presentation
// attributes given in a style attribute are included.
func (n *Node) Attr(name string) string {
	return n.Attrs[name]
}

// Hidden reports whether the element is not rendered.
func (n *Node) Hidden() bool {
	return strings.TrimSpace(n.Attrs["display"]) == "none"
}

func (n *Node) readAttrs(start xml.StartElement) {
	n.Attrs = make(map[string]string, len(start.Attr))
	for _, attr := range start.Attr {
		n.Attrs[attr.Name.Local] = attr.Value
	}
	for key, val := range splitStyle(n.Attrs["style"]) {
		if _, ok := n.Attrs[key]; !ok {
			n.Attrs[key] = val
		}
	}
	n.ID = n.Attrs["id"]
	n.TransformString = n.Attrs["transform"]
}

// splitStyle splits "stroke:#000;display:none" into its properties.
func splitStyle(style string) map[string]string {
	props := make(map[string]string)
	for _, decl := range strings.Split(style, ";") {
		kv := strings.SplitN(decl, ":", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.TrimSpace(kv[0])
		if key == "" {
			continue
		}
		props[key] = strings.TrimSpace(kv[1])
	}
	return props
}

// ViewBox is the user coordinate rectangle mapped onto the viewport.
type ViewBox struct {
	MinX, MinY, Width, Height float64
}

// Document is a parsed SVG document
type Document struct {
	Width    *Length
	Height   *Length
	ViewBox  *ViewBox
	Elements []Element

	// PreserveAspectRatio is kept verbatim; only "none" changes how the
	// viewBox is mapped.
	PreserveAspectRatio string
}

// Group represents an SVG group (usually located in a 'g' XML element)
type Group struct {
	Node
	Elements []Element
}

func (g *Group) name() string { return "g" }

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
func (g *Group) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	g.readAttrs(start)
	elements, err := decodeChildren(decoder)
	g.Elements = elements
	return err
}

// Unsupported stands for an element that is kept in the tree only so the
// conversion can report that it was skipped.
type Unsupported struct {
	Node
	Tag string
}

func (u *Unsupported) name() string { return u.Tag }

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
func (u *Unsupported) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	u.readAttrs(start)
	u.Tag = start.Name.Local
	return decoder.Skip()
}

// decodeChildren decodes the children of the current element up to its
// end tag.
func decodeChildren(decoder *xml.Decoder) ([]Element, error) {
	var elements []Element
	for {
		token, err := decoder.Token()
		if err != nil {
			return elements, err
		}

		switch tok := token.(type) {
		case xml.StartElement:
			var element Element

			switch tok.Name.Local {
			case "g", "a", "switch":
				element = &Group{}
			case "path":
				element = &Path{}
			case "rect":
				element = &Rect{}
			case "circle":
				element = &Circle{}
			case "ellipse":
				element = &Ellipse{}
			case "line":
				element = &Line{}
			case "polyline":
				element = &Polyline{}
			case "polygon":
				element = &Polygon{}
			case "text", "image", "svg", "foreignObject":
				element = &Unsupported{}
			case "use":
				id := ""
				for _, attr := range tok.Attr {
					if attr.Name.Local == "id" {
						id = attr.Value
					}
				}
				return elements, documentError("use", id, errors.New("unsupported element"))
			default:
				// defs, metadata, styles and anything else without an
				// outline of its own
				if err := decoder.Skip(); err != nil {
					return elements, err
				}
				continue
			}

			if err = decoder.DecodeElement(element, &tok); err != nil {
				return elements, err
			}
			elements = append(elements, element)

		case xml.EndElement:
			return elements, nil
		}
	}
}

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
func (d *Document) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	if start.Name.Local != "svg" {
		return documentError(start.Name.Local, "", errors.New("root element is not <svg>"))
	}
	for _, attr := range start.Attr {
		var err error
		switch attr.Name.Local {
		case "width":
			d.Width, err = parseDimension(attr.Value)
		case "height":
			d.Height, err = parseDimension(attr.Value)
		case "viewBox":
			d.ViewBox, err = parseViewBox(attr.Value)
		case "preserveAspectRatio":
			d.PreserveAspectRatio = strings.TrimSpace(attr.Value)
		}
		if err != nil {
			return documentError("svg", "", errors.Wrapf(err, "attribute %s", attr.Name.Local))
		}
	}

	elements, err := decodeChildren(decoder)
	d.Elements = elements
	return err
}

// parseDimension parses a root width or height. Percentages depend on a
// viewport we do not have and count as absent.
func parseDimension(s string) (*Length, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasSuffix(s, "%") {
		return nil, nil
	}
	l, err := ParseLength(s)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func parseViewBox(s string) (*ViewBox, error) {
	nums, err := parseNumberList(s)
	if err != nil {
		return nil, err
	}
	if len(nums) != 4 {
		return nil, errors.Errorf("viewBox %q: want 4 numbers", s)
	}
	if nums[2] <= 0 || nums[3] <= 0 {
		return nil, errors.Errorf("viewBox %q: width and height must be positive", s)
	}
	return &ViewBox{MinX: nums[0], MinY: nums[1], Width: nums[2], Height: nums[3]}, nil
}

// ParseDocument parses an SVG document from an io.Reader
func ParseDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		if de, ok := err.(*DocumentError); ok {
			return nil, de
		}
		return nil, documentError("svg", "", errors.Wrap(err, "decode"))
	}
	return &doc, nil
}

// ParseDocumentString parses an SVG document held in a string
func ParseDocumentString(s string) (*Document, error) {
	return ParseDocument(strings.NewReader(s))
}
