package shadow

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/tess/geom"
	"github.com/gogpu/tess/mesh"
)

// transformAlpha maps a linear coverage value in [0,1] into the angular
// domain stored in shadow vertices. The renderer reconstructs coverage
// with (1 - cos(a)) / 2 after interpolation; interpolating the angle
// instead of the opacity keeps the nonlinear falloff smooth and avoids
// visible banding across long triangles.
func transformAlpha(a float32) float32 {
	return math32.Acos(1 - 2*a)
}

// createAmbientShadow tessellates the ambient (overhead, diffuse) shadow
// of a caster polygon. Each caster vertex contributes an inner ring
// vertex at its own position, with alpha derived from its height, and
// one or more outer ring vertices pushed outward by a height-derived
// spread, with zero alpha; corners insert arc vertices so the outer ring
// reads as a round bevel. The rings are connected by an index strip. A
// translucent caster additionally gets a centroid fan so the shadow is
// visible through the caster itself.
func createAmbientShadow(isCasterOpaque bool, caster []geom.Vector3, centroid geom.Vector3, out *mesh.VertexBuffer) {
	n := len(caster)
	outline := make([]geom.Vector2, n)
	for i, v := range caster {
		outline[i] = v.XY()
	}

	normals := make([]geom.Vector2, n)
	for i := range outline {
		normals[i] = outwardNormal(outline[i], outline[(i+1)%n])
	}

	inner := make([]mesh.AlphaVertex, n)
	var outer []mesh.AlphaVertex
	var pairedInner []uint16
	for i := 0; i < n; i++ {
		z := math32.Max(caster[i].Z, 0)
		alpha := 1 / (1 + z*heightFactor)
		inner[i] = mesh.AlphaVertex{X: outline[i].X, Y: outline[i].Y, Alpha: transformAlpha(alpha)}

		spread := z * heightFactor * geomFactor
		prev := normals[(i+n-1)%n]
		curr := normals[i]

		emit := func(dir geom.Vector2) {
			p := outline[i].Add(dir.Mul(spread))
			outer = append(outer, mesh.AlphaVertex{X: p.X, Y: p.Y, Alpha: 0})
			pairedInner = append(pairedInner, uint16(i))
		}
		emit(prev)
		for _, dir := range cornerArcDirections(prev, curr) {
			emit(dir)
		}
	}

	vertexCount := n + len(outer)
	if !isCasterOpaque {
		vertexCount++
	}
	verts := mesh.Alloc[mesh.AlphaVertex](out, vertexCount)
	copy(verts, inner)
	copy(verts[n:], outer)

	outerBase := uint16(n)
	indices := make([]uint16, 0, 2*len(outer)+2+2+2*n+1)
	for k := range outer {
		indices = append(indices, outerBase+uint16(k), pairedInner[k])
	}
	indices = append(indices, outerBase, pairedInner[0])

	if !isCasterOpaque {
		centroidIdx := uint16(n + len(outer))
		cz := math32.Max(centroid.Z, 0)
		verts[centroidIdx] = mesh.AlphaVertex{
			X: centroid.X, Y: centroid.Y,
			Alpha: transformAlpha(1 / (1 + cz*heightFactor)),
		}
		// Degenerate bridge into the centroid fan over the inner ring.
		indices = append(indices, pairedInner[0], 0)
		for i := 0; i < n; i++ {
			indices = append(indices, uint16(i), centroidIdx)
		}
		indices = append(indices, 0)
	}

	idx := out.AllocIndices(len(indices))
	copy(idx, indices)

	bounds := geom.EmptyRect()
	for _, v := range verts {
		bounds = bounds.UnionPoint(geom.V2(v.X, v.Y))
	}
	out.SetBounds(bounds)
	out.SetMode(mesh.ModeOnePolyRingShadow)
}
