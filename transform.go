package svg2gcode

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	mt "github.com/rustyoz/Mtransform"
)

// affine builds the matrix
//
//	| a c e |
//	| b d f |
//	| 0 0 1 |
//
// using the SVG argument order of matrix(a b c d e f).
func affine(a, b, c, d, e, f float64) mt.Transform {
	t := mt.Identity()
	t[0][0], t[0][1], t[0][2] = a, c, e
	t[1][0], t[1][1], t[1][2] = b, d, f
	return t
}

func translateTransform(tx, ty float64) mt.Transform {
	return affine(1, 0, 0, 1, tx, ty)
}

func scaleTransform(sx, sy float64) mt.Transform {
	return affine(sx, 0, 0, sy, 0, 0)
}

func rotateTransform(deg float64) mt.Transform {
	r := deg * math.Pi / 180
	sin, cos := math.Sin(r), math.Cos(r)
	return affine(cos, sin, -sin, cos, 0, 0)
}

// flipTransform mirrors the y axis: documents grow downwards, machines
// grow upwards.
func flipTransform() mt.Transform {
	return scaleTransform(1, -1)
}

// compose returns the transform that applies child first, then parent.
func compose(parent, child mt.Transform) mt.Transform {
	return mt.MultiplyTransforms(parent, child)
}

func applyTransform(t mt.Transform, p Point) Point {
	x, y := t.Apply(p.X, p.Y)
	return Point{X: x, Y: y}
}

// parseTransform parses the value of a transform attribute. An empty
// string is the identity.
func parseTransform(s string) (mt.Transform, error) {
	result := mt.Identity()
	rest := strings.TrimSpace(s)
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		if open < 0 {
			return result, errors.Errorf("transform %q: expected '(' after %q", s, rest)
		}
		name := strings.TrimSpace(rest[:open])
		close := strings.IndexByte(rest[open:], ')')
		if close < 0 {
			return result, errors.Errorf("transform %q: missing ')'", s)
		}
		close += open
		args, err := parseNumberList(rest[open+1 : close])
		if err != nil {
			return result, errors.Wrapf(err, "transform %q", s)
		}
		t, err := transformFunction(name, args)
		if err != nil {
			return result, errors.Wrapf(err, "transform %q", s)
		}
		result = compose(result, t)
		rest = strings.TrimLeftFunc(rest[close+1:], func(r rune) bool {
			return unicode.IsSpace(r) || r == ','
		})
	}
	return result, nil
}

func transformFunction(name string, args []float64) (mt.Transform, error) {
	arity := func(allowed ...int) error {
		for _, n := range allowed {
			if len(args) == n {
				return nil
			}
		}
		return errors.Errorf("%s takes %v arguments, got %d", name, allowed, len(args))
	}

	switch name {
	case "matrix":
		if err := arity(6); err != nil {
			return mt.Identity(), err
		}
		return affine(args[0], args[1], args[2], args[3], args[4], args[5]), nil
	case "translate":
		if err := arity(1, 2); err != nil {
			return mt.Identity(), err
		}
		if len(args) == 1 {
			return translateTransform(args[0], 0), nil
		}
		return translateTransform(args[0], args[1]), nil
	case "scale":
		if err := arity(1, 2); err != nil {
			return mt.Identity(), err
		}
		if len(args) == 1 {
			return scaleTransform(args[0], args[0]), nil
		}
		return scaleTransform(args[0], args[1]), nil
	case "rotate":
		if err := arity(1, 3); err != nil {
			return mt.Identity(), err
		}
		r := rotateTransform(args[0])
		if len(args) == 3 {
			cx, cy := args[1], args[2]
			r = compose(translateTransform(cx, cy), compose(r, translateTransform(-cx, -cy)))
		}
		return r, nil
	case "skewX":
		if err := arity(1); err != nil {
			return mt.Identity(), err
		}
		return affine(1, 0, math.Tan(args[0]*math.Pi/180), 1, 0, 0), nil
	case "skewY":
		if err := arity(1); err != nil {
			return mt.Identity(), err
		}
		return affine(1, math.Tan(args[0]*math.Pi/180), 0, 1, 0, 0), nil
	}
	return mt.Identity(), errors.Errorf("unknown transform function %q", name)
}

// parseNumberList splits a comma and/or whitespace separated list of
// numbers, as used by transform arguments, points and viewBox.
func parseNumberList(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
	nums := make([]float64, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, errors.Errorf("invalid number %q", f)
		}
		nums = append(nums, n)
	}
	return nums, nil
}
