package svg2gcode

import (
	"fmt"
	"strings"
	"testing"

	mt "github.com/rustyoz/Mtransform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTurtle writes every call down.
type recordingTurtle struct {
	calls []string
}

func (r *recordingTurtle) add(format string, args ...interface{}) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recordingTurtle) Begin()              { r.add("begin") }
func (r *recordingTurtle) End()                { r.add("end") }
func (r *recordingTurtle) Comment(text string) { r.add("comment %s", text) }
func (r *recordingTurtle) MoveTo(to Point)     { r.add("move %v", to) }
func (r *recordingTurtle) LineTo(to Point)     { r.add("line %v", to) }
func (r *recordingTurtle) Close()              { r.add("close") }
func (r *recordingTurtle) CubicTo(c1, c2, to Point) {
	r.add("cubic %v %v %v", c1, c2, to)
}

func trackAll(segs []Segment) (*recordingTurtle, []GeometryWarning) {
	rec := &recordingTurtle{}
	var warnings []GeometryWarning
	tr := newPathTracker(rec, "path", func(w GeometryWarning) { warnings = append(warnings, w) })
	for _, s := range segs {
		tr.Draw(s)
	}
	return rec, warnings
}

func TestTrackerReflectsCubicControlPoint(t *testing.T) {
	rec, _ := trackAll([]Segment{
		MoveTo{Pt(0, 0)},
		CubicTo{Pt(0, 10), Pt(10, 10), Pt(10, 0)},
		SmoothCubicTo{Pt(20, -10), Pt(20, 0)},
	})
	require.Len(t, rec.calls, 3)
	assert.Equal(t, fmt.Sprintf("cubic %v %v %v", Pt(10, -10), Pt(20, -10), Pt(20, 0)), rec.calls[2])
}

func TestTrackerSmoothWithoutPriorCurve(t *testing.T) {
	rec, _ := trackAll([]Segment{
		MoveTo{Pt(0, 0)},
		LineTo{Pt(5, 0)},
		SmoothCubicTo{Pt(10, 5), Pt(10, 10)},
	})
	assert.Equal(t, fmt.Sprintf("cubic %v %v %v", Pt(5, 0), Pt(10, 5), Pt(10, 10)), rec.calls[2])
}

func TestTrackerQuadraticReflection(t *testing.T) {
	rec, _ := trackAll([]Segment{
		MoveTo{Pt(0, 0)},
		QuadraticTo{Pt(3, 6), Pt(6, 0)},
		SmoothQuadraticTo{Pt(12, 0)},
	})
	require.Len(t, rec.calls, 3)
	// reflected control point is (9, -6), raised to cubic form
	want := QuadBez{Pt(6, 0), Pt(9, -6), Pt(12, 0)}.Raise()
	assert.Equal(t, fmt.Sprintf("cubic %v %v %v", want.P1, want.P2, want.P3), rec.calls[2])
}

func TestTrackerCubicControlDoesNotFeedQuadratic(t *testing.T) {
	rec, _ := trackAll([]Segment{
		MoveTo{Pt(0, 0)},
		CubicTo{Pt(0, 10), Pt(10, 10), Pt(10, 0)},
		SmoothQuadraticTo{Pt(20, 0)},
	})
	want := QuadBez{Pt(10, 0), Pt(10, 0), Pt(20, 0)}.Raise()
	assert.Equal(t, fmt.Sprintf("cubic %v %v %v", want.P1, want.P2, want.P3), rec.calls[2])
}

func TestTrackerClose(t *testing.T) {
	rec, _ := trackAll([]Segment{
		MoveTo{Pt(1, 1)},
		LineTo{Pt(5, 1)},
		ClosePath{},
		LineTo{Pt(1, 5)},
	})
	assert.Equal(t, []string{
		fmt.Sprintf("move %v", Pt(1, 1)),
		fmt.Sprintf("line %v", Pt(5, 1)),
		"close",
		fmt.Sprintf("line %v", Pt(1, 5)),
	}, rec.calls)
}

func TestTrackerSkipsZeroLengthSegments(t *testing.T) {
	rec, warnings := trackAll([]Segment{
		MoveTo{Pt(1, 1)},
		LineTo{Pt(1, 1)},
		CubicTo{Pt(1, 1), Pt(1, 1), Pt(1, 1)},
		ArcTo{Radii: Pt(1, 1), To: Pt(1, 1)},
		LineTo{Pt(2, 1)},
	})
	assert.Len(t, rec.calls, 2)
	require.Len(t, warnings, 3)
	assert.Equal(t, "path", warnings[0].Element)
	assert.Equal(t, Pt(1, 1), warnings[0].At)
}

func TestTrackerDrawsCompiledArcs(t *testing.T) {
	arc := transformSegment(mt.Identity(), ArcTo{Radii: Pt(10, 10), Sweep: true, To: Pt(20, 0)}, Pt(0, 0))
	rec, _ := trackAll([]Segment{MoveTo{Pt(0, 0)}, arc})
	require.True(t, len(rec.calls) >= 3)
	assert.Equal(t, len(arc.(ArcTo).Curves())+1, len(rec.calls))
	assert.True(t, strings.HasSuffix(rec.calls[len(rec.calls)-1], fmt.Sprint(Pt(20, 0))))
}
