package tess

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/tess/geom"
	"github.com/gogpu/tess/mesh"
)

// TessellatePath converts a path plus paint attributes into a triangle
// strip written into out. Vertices are produced in the path's local
// coordinate space; the transform is only consulted for scale so that
// curve refinement, hairlines, and AA ramps stay constant in screen
// space.
//
// Fill tessellation assumes the path outline is convex; that is a caller
// precondition, not a runtime-checked invariant. Degenerate paths write
// nothing and leave out empty.
func TessellatePath(path *Path, paint *Paint, transform geom.Matrix, out *mesh.VertexBuffer) {
	info := derivePaintInfo(paint, transform)
	perimeter, closed := approximatePathOutline(path,
		OutlineRefineThreshold*OutlineRefineThreshold,
		info.inverseScaleX*info.inverseScaleX,
		info.inverseScaleY*info.inverseScaleY)

	if len(perimeter) == 0 {
		if !path.IsEmpty() {
			Logger().Warn("path produced no outline vertices, skipping", "verbs", len(path.verbs))
		}
		return
	}

	bounds := boundsOf(perimeter)

	if info.style == StyleStroke {
		if len(perimeter) < 2 {
			Logger().Warn("stroke needs at least 2 outline vertices", "got", len(perimeter))
			return
		}
		if closed {
			if info.isAA {
				emitClosedStrokeAA(&info, perimeter, out)
			} else {
				emitClosedStroke(&info, perimeter, out)
			}
		} else {
			if info.isAA {
				outline := buildStrokeOutline(&info, perimeter)
				emitConvexFillAA(&info, outline, out)
			} else {
				emitOpenStroke(&info, perimeter, out)
			}
		}
		bounds = info.expandBoundsForStroke(bounds)
	} else {
		if len(perimeter) < 3 {
			Logger().Warn("fill needs at least 3 outline vertices", "got", len(perimeter))
			return
		}
		if info.style == StyleStrokeAndFill && info.halfStrokeWidth > 0 {
			extrusions := perimeterExtrusions(perimeter, true)
			for i := range perimeter {
				perimeter[i] = perimeter[i].Add(info.scaleOffsetForStrokeWidth(extrusions[i]))
			}
			bounds = bounds.Outset(info.halfStrokeWidth)
		}
		if info.isAA {
			emitConvexFillAA(&info, perimeter, out)
			bounds = bounds.Outset(0.5 * info.inverseScaleX)
		} else {
			emitConvexFill(perimeter, out)
		}
	}

	out.SetBounds(bounds)
	out.SetMode(mesh.ModeStandard)
}

// boundsOf returns the bounding box of a vertex list.
func boundsOf(verts []geom.Vector2) geom.Rect {
	r := geom.EmptyRect()
	for _, v := range verts {
		r = r.UnionPoint(v)
	}
	return r
}

// edgeNormal returns the unit normal of the edge from a to b pointing
// outward for a clockwise (non-negative signed area) perimeter. A
// zero-length edge yields the zero vector, which callers must tolerate.
func edgeNormal(a, b geom.Vector2) geom.Vector2 {
	e := b.Sub(a)
	return geom.V2(e.Y, -e.X).Normalize()
}

// totalOffsetFromNormals combines the unit normals of two adjacent edges
// into a single extrusion vector for their shared vertex. The result is
// scaled by 1/cos(theta/2) so that offsetting by it yields a uniform
// ribbon width even at sharp corners.
func totalOffsetFromNormals(normalA, normalB geom.Vector2) geom.Vector2 {
	return normalA.Add(normalB).Div(1 + math32.Abs(normalA.Dot(normalB)))
}

// scaleOffsetForStrokeWidth scales a unit-space extrusion to half the
// stroke width, or to half a device pixel for hairlines.
func (info *paintInfo) scaleOffsetForStrokeWidth(offset geom.Vector2) geom.Vector2 {
	if info.halfStrokeWidth == 0 {
		return geom.V2(offset.X*0.5*info.inverseScaleX, offset.Y*0.5*info.inverseScaleY)
	}
	return offset.Mul(info.halfStrokeWidth)
}

// scaleOffsetForAARamp scales a unit-space extrusion to half a device
// pixel, the half-width of the anti-alias coverage ramp.
func (info *paintInfo) scaleOffsetForAARamp(offset geom.Vector2) geom.Vector2 {
	return geom.V2(offset.X*0.5*info.inverseScaleX, offset.Y*0.5*info.inverseScaleY)
}

// perimeterExtrusions computes the per-vertex extrusion vectors of a
// perimeter: the angle-compensated average of the two adjacent edge
// normals. For open polylines the first and last vertices use their
// single adjacent edge normal. Degenerate (coincident-point) edges
// contribute zero normals rather than NaN.
func perimeterExtrusions(verts []geom.Vector2, closed bool) []geom.Vector2 {
	n := len(verts)
	extrusions := make([]geom.Vector2, n)
	if n < 2 {
		return extrusions
	}

	normals := make([]geom.Vector2, n)
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		normals[i] = edgeNormal(verts[i], verts[next])
	}

	for i := 0; i < n; i++ {
		if !closed && i == 0 {
			extrusions[i] = normals[0]
			continue
		}
		if !closed && i == n-1 {
			extrusions[i] = normals[n-2]
			continue
		}
		prev := (i + n - 1) % n
		extrusions[i] = totalOffsetFromNormals(normals[prev], normals[i])
	}
	return extrusions
}

// emitConvexFill writes a non-AA fill strip for a convex perimeter using
// over-and-under traversal: alternating vertices from both ends of the
// perimeter inward produces a valid strip for any convex polygon.
func emitConvexFill(perimeter []geom.Vector2, out *mesh.VertexBuffer) {
	buffer := mesh.Alloc[mesh.Vertex](out, len(perimeter))

	currentIndex := 0
	srcA := 0
	srcB := len(perimeter) - 1
	for srcA <= srcB {
		buffer[currentIndex] = mesh.Vertex{X: perimeter[srcA].X, Y: perimeter[srcA].Y}
		currentIndex++
		if srcA == srcB {
			break
		}
		buffer[currentIndex] = mesh.Vertex{X: perimeter[srcB].X, Y: perimeter[srcB].Y}
		currentIndex++
		srcA++
		srcB--
	}
}

// emitConvexFillAA writes an anti-aliased fill for a convex perimeter: a
// ring strip with an outer zero-alpha ring offset half a pixel outward
// and an inner full-alpha ring offset half a pixel inward, followed by an
// over-and-under fill of the inner ring. Total 3n+2 vertices.
func emitConvexFillAA(info *paintInfo, perimeter []geom.Vector2, out *mesh.VertexBuffer) {
	n := len(perimeter)
	extrusions := perimeterExtrusions(perimeter, true)

	buffer := mesh.Alloc[mesh.AlphaVertex](out, 3*n+2)

	inner := make([]geom.Vector2, n)
	idx := 0
	for i := 0; i < n; i++ {
		offset := info.scaleOffsetForAARamp(extrusions[i])
		outer := perimeter[i].Add(offset)
		inner[i] = perimeter[i].Sub(offset)
		buffer[idx] = mesh.AlphaVertex{X: outer.X, Y: outer.Y, Alpha: 0}
		buffer[idx+1] = mesh.AlphaVertex{X: inner[i].X, Y: inner[i].Y, Alpha: info.maxAlpha}
		idx += 2
	}
	// Wrap the ring strip back to its start.
	buffer[idx] = buffer[0]
	buffer[idx+1] = buffer[1]
	idx += 2

	// Fill the interior with the inner ring; the transition triangles are
	// degenerate because the positions coincide with the ring's last pair.
	srcA := 0
	srcB := n - 1
	for srcA <= srcB {
		buffer[idx] = mesh.AlphaVertex{X: inner[srcA].X, Y: inner[srcA].Y, Alpha: info.maxAlpha}
		idx++
		if srcA == srcB {
			break
		}
		buffer[idx] = mesh.AlphaVertex{X: inner[srcB].X, Y: inner[srcB].Y, Alpha: info.maxAlpha}
		idx++
		srcA++
		srcB--
	}
}

// emitClosedStroke writes a non-AA ribbon around a closed perimeter:
// each vertex is offset to both sides along its extrusion, and the strip
// wraps around by repeating the first pair. 2(n+1) vertices.
func emitClosedStroke(info *paintInfo, perimeter []geom.Vector2, out *mesh.VertexBuffer) {
	n := len(perimeter)
	extrusions := perimeterExtrusions(perimeter, true)

	buffer := mesh.Alloc[mesh.Vertex](out, 2*(n+1))
	idx := 0
	for i := 0; i < n; i++ {
		offset := info.scaleOffsetForStrokeWidth(extrusions[i])
		buffer[idx] = mesh.Vertex{X: perimeter[i].X + offset.X, Y: perimeter[i].Y + offset.Y}
		buffer[idx+1] = mesh.Vertex{X: perimeter[i].X - offset.X, Y: perimeter[i].Y - offset.Y}
		idx += 2
	}
	buffer[idx] = buffer[0]
	buffer[idx+1] = buffer[1]
}

// emitClosedStrokeAA writes an anti-aliased ribbon around a closed
// perimeter as three concatenated ring strips: outer AA ramp, stroke
// core, inner AA ramp. 6(n+1) vertices. For hairlines the core collapses
// and only the two ramps carry coverage.
func emitClosedStrokeAA(info *paintInfo, perimeter []geom.Vector2, out *mesh.VertexBuffer) {
	n := len(perimeter)
	extrusions := perimeterExtrusions(perimeter, true)

	buffer := mesh.Alloc[mesh.AlphaVertex](out, 6*(n+1))

	outerCore := make([]mesh.AlphaVertex, n)
	innerCore := make([]mesh.AlphaVertex, n)
	outerAA := make([]mesh.AlphaVertex, n)
	innerAA := make([]mesh.AlphaVertex, n)
	for i := 0; i < n; i++ {
		stroke := info.scaleOffsetForStrokeWidth(extrusions[i])
		ramp := info.scaleOffsetForAARamp(extrusions[i])
		po := perimeter[i].Add(stroke)
		pi := perimeter[i].Sub(stroke)
		outerCore[i] = mesh.AlphaVertex{X: po.X, Y: po.Y, Alpha: info.maxAlpha}
		innerCore[i] = mesh.AlphaVertex{X: pi.X, Y: pi.Y, Alpha: info.maxAlpha}
		outerAA[i] = mesh.AlphaVertex{X: po.X + ramp.X, Y: po.Y + ramp.Y, Alpha: 0}
		innerAA[i] = mesh.AlphaVertex{X: pi.X - ramp.X, Y: pi.Y - ramp.Y, Alpha: 0}
	}

	idx := 0
	writeRing := func(a, b []mesh.AlphaVertex) {
		start := idx
		for i := 0; i < n; i++ {
			buffer[idx] = a[i]
			buffer[idx+1] = b[i]
			idx += 2
		}
		buffer[idx] = buffer[start]
		buffer[idx+1] = buffer[start+1]
		idx += 2
	}
	writeRing(outerAA, outerCore)
	writeRing(outerCore, innerCore)
	writeRing(innerCore, innerAA)
}

// emitOpenStroke writes a non-AA ribbon for an open polyline, with cap
// geometry at both ends. Butt caps repeat the end pairs (degenerate, but
// they keep cap handling uniform); square caps extend the end pairs
// outward by half the stroke width; round caps insert a zipper fan whose
// density comes from capExtraDivisions.
func emitOpenStroke(info *paintInfo, poly []geom.Vector2, out *mesh.VertexBuffer) {
	n := len(poly)
	extrusions := perimeterExtrusions(poly, false)
	extra := info.capExtraDivisions()

	offsets := make([]geom.Vector2, n)
	for i := range offsets {
		offsets[i] = info.scaleOffsetForStrokeWidth(extrusions[i])
	}

	capVerts := 4 // begin + end duplicate pairs for butt/square
	if info.cap == CapRound {
		capVerts = (2*extra + 4) + (2*extra + 4)
	}
	buffer := mesh.Alloc[mesh.Vertex](out, 2*n+capVerts)
	idx := 0
	push := func(v geom.Vector2) {
		buffer[idx] = mesh.Vertex{X: v.X, Y: v.Y}
		idx++
	}

	backDir := poly[0].Sub(poly[1]).Normalize()
	forwardDir := poly[n-1].Sub(poly[n-2]).Normalize()

	switch info.cap {
	case CapRound:
		emitRoundCap(info, poly[0], offsets[0], backDir, extra, true, push)
	case CapSquare:
		ext := info.scaleOffsetForStrokeWidth(backDir)
		push(poly[0].Add(offsets[0]).Add(ext))
		push(poly[0].Sub(offsets[0]).Add(ext))
	default: // CapButt
		push(poly[0].Add(offsets[0]))
		push(poly[0].Sub(offsets[0]))
	}

	for i := 0; i < n; i++ {
		push(poly[i].Add(offsets[i]))
		push(poly[i].Sub(offsets[i]))
	}

	switch info.cap {
	case CapRound:
		emitRoundCap(info, poly[n-1], offsets[n-1], forwardDir, extra, false, push)
	case CapSquare:
		ext := info.scaleOffsetForStrokeWidth(forwardDir)
		push(poly[n-1].Add(offsets[n-1]).Add(ext))
		push(poly[n-1].Sub(offsets[n-1]).Add(ext))
	default:
		push(poly[n-1].Add(offsets[n-1]))
		push(poly[n-1].Sub(offsets[n-1]))
	}
}

// emitRoundCap writes a strip-compatible half-circle fan around an
// endpoint. The fan pairs each arc vertex with the endpoint itself; the
// triangles between consecutive pairs are alternately wedges and
// degenerates, tiling the half disc without overlap. begin caps are
// emitted before the ribbon and end caps after it, with the pair order
// arranged so the junction triangles are degenerate.
func emitRoundCap(info *paintInfo, center, offset, capDir geom.Vector2, extra int, begin bool, push func(geom.Vector2)) {
	offDir := offset.Normalize()
	if offDir == (geom.Vector2{}) {
		offDir = geom.V2(capDir.Y, -capDir.X)
	}

	// Sweep from one ribbon edge to the other, passing through the cap
	// direction.
	startDir, endDir := offDir, offDir.Neg()
	if !begin {
		startDir, endDir = endDir, startDir
	}
	sweep := math32.Pi
	if startDir.Cross(capDir) < 0 {
		sweep = -sweep
	}
	startAngle := startDir.Angle()
	dTheta := sweep / float32(extra+1)

	radial := func(j int) geom.Vector2 {
		a := startAngle + dTheta*float32(j)
		return center.Add(info.scaleOffsetForStrokeWidth(geom.V2(math32.Cos(a), math32.Sin(a))))
	}

	if begin {
		push(center.Add(startDir.Mul(offset.Length())))
		push(center)
		for j := 1; j <= extra; j++ {
			push(radial(j))
			push(center)
		}
		push(center.Add(endDir.Mul(offset.Length())))
		push(center)
	} else {
		push(center)
		push(center.Add(startDir.Mul(offset.Length())))
		for j := 1; j <= extra; j++ {
			push(center)
			push(radial(j))
		}
		push(center)
		push(center.Add(endDir.Mul(offset.Length())))
	}
}

// buildStrokeOutline constructs the closed outline polygon of a stroked
// open polyline: the offset side going forward, cap vertices around the
// far end, the opposite side going backward, and cap vertices around the
// start. The result is a convex polygon for single segments and convex
// polylines, suitable for fill tessellation. This is the same strategy
// stroke expanders use to reduce strokes to fills.
func buildStrokeOutline(info *paintInfo, poly []geom.Vector2) []geom.Vector2 {
	n := len(poly)
	extrusions := perimeterExtrusions(poly, false)
	extra := info.capExtraDivisions()

	offsets := make([]geom.Vector2, n)
	for i := range offsets {
		offsets[i] = info.scaleOffsetForStrokeWidth(extrusions[i])
	}

	backDir := poly[0].Sub(poly[1]).Normalize()
	forwardDir := poly[n-1].Sub(poly[n-2]).Normalize()

	outline := make([]geom.Vector2, 0, 2*n+2*extra+4)

	appendCapArc := func(center, fromOffset, capDir geom.Vector2) {
		// Arc from +offset around capDir to -offset.
		offDir := fromOffset.Normalize()
		if offDir == (geom.Vector2{}) {
			offDir = geom.V2(capDir.Y, -capDir.X)
		}
		sweep := math32.Pi
		if offDir.Cross(capDir) < 0 {
			sweep = -sweep
		}
		startAngle := offDir.Angle()
		dTheta := sweep / float32(extra+1)
		for j := 1; j <= extra; j++ {
			a := startAngle + dTheta*float32(j)
			outline = append(outline, center.Add(info.scaleOffsetForStrokeWidth(geom.V2(math32.Cos(a), math32.Sin(a)))))
		}
	}

	switch info.cap {
	case CapSquare:
		begExt := info.scaleOffsetForStrokeWidth(backDir)
		endExt := info.scaleOffsetForStrokeWidth(forwardDir)
		for i := 0; i < n; i++ {
			v := poly[i].Add(offsets[i])
			if i == 0 {
				v = v.Add(begExt)
			} else if i == n-1 {
				v = v.Add(endExt)
			}
			outline = append(outline, v)
		}
		for i := n - 1; i >= 0; i-- {
			v := poly[i].Sub(offsets[i])
			if i == 0 {
				v = v.Add(begExt)
			} else if i == n-1 {
				v = v.Add(endExt)
			}
			outline = append(outline, v)
		}
	case CapRound:
		for i := 0; i < n; i++ {
			outline = append(outline, poly[i].Add(offsets[i]))
		}
		appendCapArc(poly[n-1], offsets[n-1], forwardDir)
		for i := n - 1; i >= 0; i-- {
			outline = append(outline, poly[i].Sub(offsets[i]))
		}
		appendCapArc(poly[0], offsets[0].Neg(), backDir)
	default: // CapButt
		for i := 0; i < n; i++ {
			outline = append(outline, poly[i].Add(offsets[i]))
		}
		for i := n - 1; i >= 0; i-- {
			outline = append(outline, poly[i].Sub(offsets[i]))
		}
	}
	return outline
}
