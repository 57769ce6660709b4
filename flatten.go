package tess

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/tess/geom"
)

// OutlineRefineThreshold is the maximum screen-space error, in device
// pixels, allowed between a Bezier curve and its polyline approximation.
const OutlineRefineThreshold = 0.5

// maxBezierDepth caps recursive curve subdivision. At depth 15 a curve has
// been split into 32768 segments; further refinement is numerically
// meaningless in float32.
const maxBezierDepth = 15

// conicWeightTolerance is how close a conic weight must be to 1 before
// the curve is treated as an ordinary quadratic.
const conicWeightTolerance = 0.01

// maxConicDepth caps conic-to-quadratic subdivision.
const maxConicDepth = 5

// ApproximatePath flattens a path into an ordered perimeter under the
// given transform, refining curves until the screen-space error stays
// below OutlineRefineThreshold. The returned closed flag reports whether
// the path was closed, either explicitly or by coincident endpoints.
//
// A zero-length path returns an empty perimeter; callers must treat that
// as "nothing to draw". The perimeter is returned in clockwise order
// (non-negative signed area) regardless of input winding, so downstream
// offsetting can assume consistent normal directions.
func ApproximatePath(path *Path, transform geom.Matrix) ([]geom.Vector2, bool) {
	sx, sy := transform.ScaleFactors()
	invX, invY := float32(1), float32(1)
	if sx != 0 {
		invX = 1 / sx
	}
	if sy != 0 {
		invY = 1 / sy
	}
	return approximatePathOutline(path, OutlineRefineThreshold*OutlineRefineThreshold, invX*invX, invY*invY)
}

// approximatePathOutline is the scale-explicit flattening entry point.
// thresholdSq is the squared allowed error in device pixels; sqrInvScaleX/Y
// are the squared inverse transform scales that convert it to local units.
func approximatePathOutline(path *Path, thresholdSq, sqrInvScaleX, sqrInvScaleY float32) ([]geom.Vector2, bool) {
	if path.IsEmpty() {
		return nil, false
	}

	var verts []geom.Vector2
	var cursor geom.Vector2
	closed := false
	pts := path.points
	pi := 0
	wi := 0

	for _, verb := range path.verbs {
		switch verb {
		case VerbMoveTo:
			cursor = geom.V2(pts[pi], pts[pi+1])
			verts = append(verts, cursor)
		case VerbLineTo:
			cursor = geom.V2(pts[pi], pts[pi+1])
			verts = append(verts, cursor)
		case VerbQuadTo:
			control := geom.V2(pts[pi], pts[pi+1])
			end := geom.V2(pts[pi+2], pts[pi+3])
			recursiveQuadratic(cursor, control, end, thresholdSq, sqrInvScaleX, sqrInvScaleY, &verts, 0)
			cursor = end
		case VerbConicTo:
			control := geom.V2(pts[pi], pts[pi+1])
			end := geom.V2(pts[pi+2], pts[pi+3])
			conicAsQuads(cursor, control, end, path.weights[wi],
				thresholdSq, sqrInvScaleX, sqrInvScaleY, &verts, 0)
			wi++
			cursor = end
		case VerbCubicTo:
			c1 := geom.V2(pts[pi], pts[pi+1])
			c2 := geom.V2(pts[pi+2], pts[pi+3])
			end := geom.V2(pts[pi+4], pts[pi+5])
			recursiveCubic(cursor, c1, c2, end, thresholdSq, sqrInvScaleX, sqrInvScaleY, &verts, 0)
			cursor = end
		case VerbClose:
			closed = true
		}
		pi += verb.PointCount()
	}

	// A path that returns to its start is closed whether or not it said so.
	if len(verts) >= 2 && verts[0] == verts[len(verts)-1] {
		verts = verts[:len(verts)-1]
		closed = true
	}

	enforceClockwise(verts)
	return verts, closed
}

// recursiveQuadratic subdivides a quadratic Bezier at its midpoint until
// the control point's perpendicular deviation from the chord is within
// the scaled threshold, then emits the endpoint as a line.
func recursiveQuadratic(start, control, end geom.Vector2,
	thresholdSq, sqrInvScaleX, sqrInvScaleY float32,
	verts *[]geom.Vector2, depth int) {
	chord := end.Sub(start)
	d := control.Sub(start).Cross(chord)

	if depth >= maxBezierDepth ||
		d*d <= thresholdSq*chord.LengthSq()*sqrInvScaleX*sqrInvScaleY {
		*verts = append(*verts, end)
		return
	}

	q0 := start.Lerp(control, 0.5)
	q1 := control.Lerp(end, 0.5)
	mid := q0.Lerp(q1, 0.5)

	recursiveQuadratic(start, q0, mid, thresholdSq, sqrInvScaleX, sqrInvScaleY, verts, depth+1)
	recursiveQuadratic(mid, q1, end, thresholdSq, sqrInvScaleX, sqrInvScaleY, verts, depth+1)
}

// recursiveCubic subdivides a cubic Bezier by de Casteljau until both
// control points deviate from the chord by less than the scaled
// threshold, then emits the endpoint as a line.
func recursiveCubic(start, c1, c2, end geom.Vector2,
	thresholdSq, sqrInvScaleX, sqrInvScaleY float32,
	verts *[]geom.Vector2, depth int) {
	chord := end.Sub(start)
	d1 := math32.Abs(c1.Sub(start).Cross(chord))
	d2 := math32.Abs(c2.Sub(start).Cross(chord))
	d := d1 + d2

	if depth >= maxBezierDepth ||
		d*d <= thresholdSq*chord.LengthSq()*sqrInvScaleX*sqrInvScaleY {
		*verts = append(*verts, end)
		return
	}

	q0 := start.Lerp(c1, 0.5)
	q1 := c1.Lerp(c2, 0.5)
	q2 := c2.Lerp(end, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	mid := r0.Lerp(r1, 0.5)

	recursiveCubic(start, q0, r0, mid, thresholdSq, sqrInvScaleX, sqrInvScaleY, verts, depth+1)
	recursiveCubic(mid, r1, q2, end, thresholdSq, sqrInvScaleX, sqrInvScaleY, verts, depth+1)
}

// conicAsQuads approximates a rational quadratic by recursive midpoint
// subdivision. Once the weight is near 1 (or the depth cap is reached)
// the remaining piece is flattened as an ordinary quadratic, bounding the
// number of generated segments.
func conicAsQuads(start, control, end geom.Vector2, weight float32,
	thresholdSq, sqrInvScaleX, sqrInvScaleY float32,
	verts *[]geom.Vector2, depth int) {
	if depth >= maxConicDepth || math32.Abs(weight-1) < conicWeightTolerance {
		recursiveQuadratic(start, control, end, thresholdSq, sqrInvScaleX, sqrInvScaleY, verts, 0)
		return
	}

	// Standard rational midpoint split: both halves share the weighted
	// midpoint and the square-rooted weight.
	wc := control.Mul(weight)
	denom := 1 + weight
	mid := start.Add(wc.Mul(2)).Add(end).Div(2 * denom)
	leftControl := start.Add(wc).Div(denom)
	rightControl := wc.Add(end).Div(denom)
	halfWeight := math32.Sqrt((1 + weight) / 2)

	conicAsQuads(start, leftControl, mid, halfWeight, thresholdSq, sqrInvScaleX, sqrInvScaleY, verts, depth+1)
	conicAsQuads(mid, rightControl, end, halfWeight, thresholdSq, sqrInvScaleX, sqrInvScaleY, verts, depth+1)
}

// enforceClockwise reverses the vertex list in place when its winding is
// counter-clockwise, so offsetting math downstream can rely on normal
// directions.
func enforceClockwise(verts []geom.Vector2) {
	if geom.SignedArea(verts) >= 0 {
		return
	}
	for i, j := 0, len(verts)-1; i < j; i, j = i+1, j-1 {
		verts[i], verts[j] = verts[j], verts[i]
	}
}
