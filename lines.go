package tess

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/tess/geom"
	"github.com/gogpu/tess/mesh"
)

// TessellateLines converts a flat coordinate array of independent line
// segments (x0, y0, x1, y1 per line) into a single batched mesh. Each
// line becomes its own buffer region, so one strip draw renders the whole
// batch; the separator vertices between regions produce only degenerate
// triangles.
//
// A zero-length line draws its cap dot for round and square caps and
// nothing for butt caps. Trailing coordinates that do not form a full
// line are ignored.
func TessellateLines(points []float32, paint *Paint, transform geom.Matrix, out *mesh.VertexBuffer) {
	// Lines are always stroked, whatever the paint style says.
	strokePaint := *paint
	strokePaint.Style = StyleStroke
	info := derivePaintInfo(&strokePaint, transform)

	bounds := geom.EmptyRect()
	lineCount := len(points) / 4
	for i := 0; i < lineCount; i++ {
		p0 := geom.V2(points[i*4], points[i*4+1])
		p1 := geom.V2(points[i*4+2], points[i*4+3])

		if p0 == p1 {
			if info.cap == CapButt {
				continue
			}
			outline := pointOutline(&info, p0)
			emitOutlineRegion(&info, outline, out)
			bounds = bounds.Union(boundsOf(outline))
			continue
		}

		seg := []geom.Vector2{p0, p1}
		if info.isAA {
			outline := buildStrokeOutline(&info, seg)
			emitConvexFillAA(&info, outline, out)
		} else {
			emitOpenStroke(&info, seg, out)
		}
		bounds = bounds.Union(info.expandBoundsForStroke(boundsOf(seg)))
	}

	if out.Empty() {
		return
	}
	if info.isAA {
		bounds = bounds.Outset(0.5 * info.inverseScaleX)
	}
	out.SetBounds(bounds)
	out.SetMode(mesh.ModeStandard)
}

// TessellatePoints converts a flat coordinate array of points (x, y per
// point) into a batched mesh of dots. Round-cap paints draw circles of
// half the stroke width; other caps draw axis-aligned squares, matching
// line endpoint geometry.
func TessellatePoints(points []float32, paint *Paint, transform geom.Matrix, out *mesh.VertexBuffer) {
	strokePaint := *paint
	strokePaint.Style = StyleStroke
	info := derivePaintInfo(&strokePaint, transform)

	bounds := geom.EmptyRect()
	pointCount := len(points) / 2
	for i := 0; i < pointCount; i++ {
		center := geom.V2(points[i*2], points[i*2+1])
		outline := pointOutline(&info, center)
		emitOutlineRegion(&info, outline, out)
		bounds = bounds.Union(boundsOf(outline))
	}

	if out.Empty() {
		return
	}
	if info.isAA {
		bounds = bounds.Outset(0.5 * info.inverseScaleX)
	}
	out.SetBounds(bounds)
	out.SetMode(mesh.ModeStandard)
}

// emitOutlineRegion fills a convex outline into its own buffer region,
// anti-aliased or not per the paint.
func emitOutlineRegion(info *paintInfo, outline []geom.Vector2, out *mesh.VertexBuffer) {
	if len(outline) < 3 {
		return
	}
	if info.isAA {
		emitConvexFillAA(info, outline, out)
	} else {
		emitConvexFill(outline, out)
	}
}

// pointOutline builds the convex outline of a single dot: a circle
// approximation for round caps, otherwise a square. The radius is half
// the stroke width, or half a device pixel for hairlines.
func pointOutline(info *paintInfo, center geom.Vector2) []geom.Vector2 {
	if info.cap == CapRound {
		divisions := 2 * (info.capExtraDivisions() + 1)
		outline := make([]geom.Vector2, divisions)
		dTheta := 2 * math32.Pi / float32(divisions)
		for i := range outline {
			a := dTheta * float32(i)
			outline[i] = center.Add(info.scaleOffsetForStrokeWidth(geom.V2(math32.Cos(a), math32.Sin(a))))
		}
		return outline
	}

	ox := info.scaleOffsetForStrokeWidth(geom.V2(1, 0))
	oy := info.scaleOffsetForStrokeWidth(geom.V2(0, 1))
	return []geom.Vector2{
		center.Sub(ox).Sub(oy),
		center.Add(ox).Sub(oy),
		center.Add(ox).Add(oy),
		center.Sub(ox).Add(oy),
	}
}
