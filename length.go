package svg2gcode

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Unit is an SVG length unit.
type Unit string

// Supported length units. UnitNone is a bare number in user units.
const (
	UnitNone Unit = ""
	UnitPx   Unit = "px"
	UnitMm   Unit = "mm"
	UnitCm   Unit = "cm"
	UnitIn   Unit = "in"
	UnitPt   Unit = "pt"
	UnitPc   Unit = "pc"
)

// user units (CSS pixels) per unit, at 96 px per inch
var userUnitsPer = map[Unit]float64{
	UnitNone: 1,
	UnitPx:   1,
	UnitMm:   96 / 25.4,
	UnitCm:   96 / 2.54,
	UnitIn:   96,
	UnitPt:   96.0 / 72.0,
	UnitPc:   16,
}

// Length is a number with a unit, e.g. the width and height of a
// document.
type Length struct {
	Value float64
	Unit  Unit
}

// ParseLength parses strings like "210mm", "8.5in" or "100".
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(s)
	i := len(s)
	for i > 0 {
		c := s[i-1]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '%' {
			i--
			continue
		}
		break
	}
	num, unit := s[:i], Unit(strings.ToLower(s[i:]))
	if _, ok := userUnitsPer[unit]; !ok {
		return Length{}, errors.Errorf("length %q: unsupported unit %q", s, unit)
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, errors.Errorf("length %q: invalid number", s)
	}
	return Length{Value: v, Unit: unit}, nil
}

// UserUnits converts l to document user units.
func (l Length) UserUnits() float64 {
	return l.Value * userUnitsPer[l.Unit]
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'g', -1, 64) + string(l.Unit)
}
