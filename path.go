package tess

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/tess/geom"
)

// PathVerb represents a path construction command.
type PathVerb uint8

// Path verb constants.
const (
	// VerbMoveTo moves the current point without drawing.
	VerbMoveTo PathVerb = iota
	// VerbLineTo draws a line to the specified point.
	VerbLineTo
	// VerbQuadTo draws a quadratic Bezier curve.
	VerbQuadTo
	// VerbConicTo draws a rational quadratic (conic) curve with a weight.
	VerbConicTo
	// VerbCubicTo draws a cubic Bezier curve.
	VerbCubicTo
	// VerbClose closes the current subpath.
	VerbClose
)

// String returns a human-readable name for the verb.
func (v PathVerb) String() string {
	switch v {
	case VerbMoveTo:
		return "MoveTo"
	case VerbLineTo:
		return "LineTo"
	case VerbQuadTo:
		return "QuadTo"
	case VerbConicTo:
		return "ConicTo"
	case VerbCubicTo:
		return "CubicTo"
	case VerbClose:
		return "Close"
	default:
		return "Unknown"
	}
}

// PointCount returns the number of coordinates this verb consumes.
func (v PathVerb) PointCount() int {
	switch v {
	case VerbMoveTo, VerbLineTo:
		return 2 // x, y
	case VerbQuadTo, VerbConicTo:
		return 4 // cx, cy, x, y
	case VerbCubicTo:
		return 6 // c1x, c1y, c2x, c2y, x, y
	default:
		return 0
	}
}

// Path represents a vector path for tessellation.
// It stores path commands (verbs) and coordinate data separately
// for efficient processing. Conic weights are stored in verb order in a
// side array.
type Path struct {
	verbs   []PathVerb
	points  []float32
	weights []float32
	bounds  geom.Rect
	start   geom.Vector2 // Start of current subpath for Close
	cursor  geom.Vector2 // Current position
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		verbs:  make([]PathVerb, 0, 16),
		points: make([]float32, 0, 64),
		bounds: geom.EmptyRect(),
	}
}

// Reset clears the path for reuse without deallocating memory.
func (p *Path) Reset() {
	p.verbs = p.verbs[:0]
	p.points = p.points[:0]
	p.weights = p.weights[:0]
	p.bounds = geom.EmptyRect()
	p.start = geom.Vector2{}
	p.cursor = geom.Vector2{}
}

// MoveTo begins a new subpath at the specified point.
func (p *Path) MoveTo(x, y float32) *Path {
	p.verbs = append(p.verbs, VerbMoveTo)
	p.points = append(p.points, x, y)
	p.bounds = p.bounds.UnionPoint(geom.V2(x, y))
	p.start = geom.V2(x, y)
	p.cursor = p.start
	return p
}

// LineTo draws a line from the current point to (x, y).
func (p *Path) LineTo(x, y float32) *Path {
	p.verbs = append(p.verbs, VerbLineTo)
	p.points = append(p.points, x, y)
	p.bounds = p.bounds.UnionPoint(geom.V2(x, y))
	p.cursor = geom.V2(x, y)
	return p
}

// QuadTo draws a quadratic Bezier curve.
// The curve goes from the current point to (x, y) using (cx, cy) as control point.
func (p *Path) QuadTo(cx, cy, x, y float32) *Path {
	p.verbs = append(p.verbs, VerbQuadTo)
	p.points = append(p.points, cx, cy, x, y)
	// Union with control points is a conservative bounds approximation.
	p.bounds = p.bounds.UnionPoint(geom.V2(cx, cy))
	p.bounds = p.bounds.UnionPoint(geom.V2(x, y))
	p.cursor = geom.V2(x, y)
	return p
}

// ConicTo draws a rational quadratic curve with the given weight.
// A weight of 1 is an ordinary quadratic; sqrt(2)/2 traces a quarter
// circle when the control polygon is a square corner.
func (p *Path) ConicTo(cx, cy, x, y, weight float32) *Path {
	p.verbs = append(p.verbs, VerbConicTo)
	p.points = append(p.points, cx, cy, x, y)
	p.weights = append(p.weights, weight)
	p.bounds = p.bounds.UnionPoint(geom.V2(cx, cy))
	p.bounds = p.bounds.UnionPoint(geom.V2(x, y))
	p.cursor = geom.V2(x, y)
	return p
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float32) *Path {
	p.verbs = append(p.verbs, VerbCubicTo)
	p.points = append(p.points, c1x, c1y, c2x, c2y, x, y)
	p.bounds = p.bounds.UnionPoint(geom.V2(c1x, c1y))
	p.bounds = p.bounds.UnionPoint(geom.V2(c2x, c2y))
	p.bounds = p.bounds.UnionPoint(geom.V2(x, y))
	p.cursor = geom.V2(x, y)
	return p
}

// Close closes the current subpath.
func (p *Path) Close() *Path {
	p.verbs = append(p.verbs, VerbClose)
	p.cursor = p.start
	return p
}

// Rectangle adds a rectangle path.
func (p *Path) Rectangle(x, y, w, h float32) *Path {
	return p.MoveTo(x, y).
		LineTo(x+w, y).
		LineTo(x+w, y+h).
		LineTo(x, y+h).
		Close()
}

// arcMagic is the control point factor for approximating circular arcs
// with cubic beziers: 4 * (sqrt(2) - 1) / 3.
const arcMagic float32 = 0.5522847498

// RoundedRectangle adds a rounded rectangle path.
func (p *Path) RoundedRectangle(x, y, w, h, r float32) *Path {
	// Clamp radius to half the minimum dimension
	maxR := math32.Min(w, h) / 2
	if r > maxR {
		r = maxR
	}
	if r <= 0 {
		return p.Rectangle(x, y, w, h)
	}

	kr := arcMagic * r

	// Start from top-left corner (after the rounded corner)
	p.MoveTo(x+r, y)

	// Top edge and top-right corner
	p.LineTo(x+w-r, y)
	p.CubicTo(x+w-r+kr, y, x+w, y+r-kr, x+w, y+r)

	// Right edge and bottom-right corner
	p.LineTo(x+w, y+h-r)
	p.CubicTo(x+w, y+h-r+kr, x+w-r+kr, y+h, x+w-r, y+h)

	// Bottom edge and bottom-left corner
	p.LineTo(x+r, y+h)
	p.CubicTo(x+r-kr, y+h, x, y+h-r+kr, x, y+h-r)

	// Left edge and top-left corner
	p.LineTo(x, y+r)
	p.CubicTo(x, y+r-kr, x+r-kr, y, x+r, y)

	return p.Close()
}

// Circle adds a circle path.
func (p *Path) Circle(cx, cy, r float32) *Path {
	return p.Ellipse(cx, cy, r, r)
}

// Ellipse adds an ellipse path.
func (p *Path) Ellipse(cx, cy, rx, ry float32) *Path {
	kx := arcMagic * rx
	ky := arcMagic * ry

	// Start at the right edge
	p.MoveTo(cx+rx, cy)

	// Four quarter-circle arcs
	p.CubicTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry) // to bottom
	p.CubicTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy) // to left
	p.CubicTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry) // to top
	p.CubicTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy) // to right (start)

	return p.Close()
}

// Bounds returns the bounding rectangle of the path.
// This is a conservative approximation that includes control points.
func (p *Path) Bounds() geom.Rect {
	return p.bounds
}

// IsEmpty returns true if the path has no commands.
func (p *Path) IsEmpty() bool {
	return len(p.verbs) == 0
}

// Verbs returns the path's verb sequence. The slice aliases the path.
func (p *Path) Verbs() []PathVerb {
	return p.verbs
}

// Points returns the path's coordinate data. The slice aliases the path.
func (p *Path) Points() []float32 {
	return p.points
}
